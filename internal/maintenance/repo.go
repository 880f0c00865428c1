package maintenance

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/facilityhub/maintenance-backend/pkg/db/models"
)

// Repository exposes maintenance persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a maintenance repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new maintenance row.
func (r *Repository) Create(ctx context.Context, row *models.Maintenance) (*models.Maintenance, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// List returns every maintenance record, most recent first.
func (r *Repository) List(ctx context.Context) ([]models.Maintenance, error) {
	var rows []models.Maintenance
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID returns one record or gorm.ErrRecordNotFound.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Maintenance, error) {
	var row models.Maintenance
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Save persists the full row.
func (r *Repository) Save(ctx context.Context, row *models.Maintenance) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// Delete removes the row permanently. Returns gorm.ErrRecordNotFound when no
// row matched.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Maintenance{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListTouchingWindow returns records created or completed on/after since.
func (r *Repository) ListTouchingWindow(ctx context.Context, since time.Time) ([]models.Maintenance, error) {
	var rows []models.Maintenance
	err := r.db.WithContext(ctx).
		Where("created_at >= ? OR completion_date >= ?", since, since).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
