package maintenance

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/facilityhub/maintenance-backend/pkg/db/models"
	"github.com/facilityhub/maintenance-backend/pkg/enums"
	pkgerrors "github.com/facilityhub/maintenance-backend/pkg/errors"
)

type repository interface {
	Create(ctx context.Context, row *models.Maintenance) (*models.Maintenance, error)
	List(ctx context.Context) ([]models.Maintenance, error)
	FindByID(ctx context.Context, id uint) (*models.Maintenance, error)
	Save(ctx context.Context, row *models.Maintenance) error
	Delete(ctx context.Context, id uint) error
}

// Service owns the maintenance lifecycle rules. It is the only writer of
// CompletionDate.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Maintenance, error)
	List(ctx context.Context) ([]models.Maintenance, error)
	GetByID(ctx context.Context, id uint) (*models.Maintenance, error)
	Update(ctx context.Context, id uint, input UpdateInput) (*models.Maintenance, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo repository
	now  func() time.Time
}

// NewService builds a maintenance service over the provided repository.
func NewService(repo repository) Service {
	return &service{repo: repo, now: time.Now}
}

// CreateInput holds the fields accepted on record creation. Priority and
// Status default to LOW and PENDING when left empty.
type CreateInput struct {
	Equipment   string
	Description string
	Requestor   string
	Responsible string
	Priority    enums.Priority
	Status      enums.Status
	Location    *string
	Sector      *string
	Department  *string
	Notes       *string
	StartDate   *time.Time
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Equipment   *string
	Description *string
	Requestor   *string
	Responsible *string
	Priority    *enums.Priority
	Status      *enums.Status
	Location    *string
	Sector      *string
	Department  *string
	Notes       *string
	StartDate   *time.Time
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Maintenance, error) {
	required := []struct {
		field string
		value string
	}{
		{"equipment", input.Equipment},
		{"description", input.Description},
		{"requestor", input.Requestor},
		{"responsible", input.Responsible},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, f.field+" is required")
		}
	}

	priority := input.Priority
	if priority == "" {
		priority = enums.PriorityLow
	}
	if !priority.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid priority")
	}

	status := input.Status
	if status == "" {
		status = enums.StatusPending
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	row := &models.Maintenance{
		Equipment:   strings.TrimSpace(input.Equipment),
		Description: strings.TrimSpace(input.Description),
		Requestor:   strings.TrimSpace(input.Requestor),
		Responsible: strings.TrimSpace(input.Responsible),
		Priority:    priority,
		Status:      status,
		Location:    input.Location,
		Sector:      input.Sector,
		Department:  input.Department,
		Notes:       input.Notes,
		StartDate:   input.StartDate,
	}
	if status == enums.StatusCompleted {
		now := s.now()
		row.CompletionDate = &now
	}

	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create maintenance")
	}
	return created, nil
}

func (s *service) List(ctx context.Context) ([]models.Maintenance, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list maintenances")
	}
	return rows, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*models.Maintenance, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "maintenance not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup maintenance")
	}
	return row, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateInput) (*models.Maintenance, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "maintenance not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup maintenance")
	}

	applyString := func(dst *string, src *string, field string) error {
		if src == nil {
			return nil
		}
		if strings.TrimSpace(*src) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, field+" must not be empty")
		}
		*dst = strings.TrimSpace(*src)
		return nil
	}

	if err := applyString(&row.Equipment, input.Equipment, "equipment"); err != nil {
		return nil, err
	}
	if err := applyString(&row.Description, input.Description, "description"); err != nil {
		return nil, err
	}
	if err := applyString(&row.Requestor, input.Requestor, "requestor"); err != nil {
		return nil, err
	}
	if err := applyString(&row.Responsible, input.Responsible, "responsible"); err != nil {
		return nil, err
	}

	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid priority")
		}
		row.Priority = *input.Priority
	}

	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
		}
		row.Status = *input.Status
		if *input.Status == enums.StatusCompleted {
			now := s.now()
			row.CompletionDate = &now
		} else {
			row.CompletionDate = nil
		}
	}

	if input.Location != nil {
		row.Location = input.Location
	}
	if input.Sector != nil {
		row.Sector = input.Sector
	}
	if input.Department != nil {
		row.Department = input.Department
	}
	if input.Notes != nil {
		row.Notes = input.Notes
	}
	if input.StartDate != nil {
		row.StartDate = input.StartDate
	}

	now := s.now()
	row.UpdatedAt = &now

	if err := s.repo.Save(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update maintenance")
	}
	return row, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "maintenance not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete maintenance")
	}
	return nil
}

// ParseDate accepts the wire formats clients send for dates: a bare day or a
// full RFC3339 timestamp.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid date, expected YYYY-MM-DD or RFC3339")
	}
	return t, nil
}
