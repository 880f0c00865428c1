package models

import (
	"time"

	"github.com/facilityhub/maintenance-backend/pkg/enums"
)

// Maintenance is a single maintenance request ticket.
//
// CompletionDate is non-nil exactly while Status is COMPLETED; the maintenance
// service is the only writer of that field.
type Maintenance struct {
	ID             uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Equipment      string         `gorm:"column:equipment;not null" json:"equipment"`
	Description    string         `gorm:"column:description;not null" json:"description"`
	Requestor      string         `gorm:"column:requestor;not null" json:"requestor"`
	Responsible    string         `gorm:"column:responsible;not null" json:"responsible"`
	Priority       enums.Priority `gorm:"column:priority;not null;default:'LOW'" json:"priority"`
	Status         enums.Status   `gorm:"column:status;not null;default:'PENDING'" json:"status"`
	Location       *string        `gorm:"column:location" json:"location"`
	Sector         *string        `gorm:"column:sector" json:"sector"`
	Department     *string        `gorm:"column:department" json:"department"`
	Notes          *string        `gorm:"column:notes" json:"notes"`
	StartDate      *time.Time     `gorm:"column:start_date" json:"startDate"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      *time.Time     `gorm:"column:updated_at" json:"updatedAt"`
	CompletionDate *time.Time     `gorm:"column:completion_date" json:"completionDate"`
}

// TableName pins the table name used by migrations.
func (Maintenance) TableName() string {
	return "maintenances"
}
