package dashboard

import (
	"context"
	"time"

	"github.com/facilityhub/maintenance-backend/pkg/db/models"
	pkgerrors "github.com/facilityhub/maintenance-backend/pkg/errors"
)

type repository interface {
	List(ctx context.Context) ([]models.Maintenance, error)
	ListTouchingWindow(ctx context.Context, since time.Time) ([]models.Maintenance, error)
}

// Service computes the dashboard read models. Both computations are pure
// functions of the record set; the repository only fetches rows.
type Service interface {
	Stats(ctx context.Context) (*Stats, error)
	Flow(ctx context.Context, reference time.Time) ([]FlowBucket, error)
}

type service struct {
	repo repository
}

// NewService builds a dashboard service over the maintenance repository.
func NewService(repo repository) Service {
	return &service{repo: repo}
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load maintenances for stats")
	}
	stats := ComputeStats(rows)
	return &stats, nil
}

func (s *service) Flow(ctx context.Context, reference time.Time) ([]FlowBucket, error) {
	start := WindowStart(reference)
	rows, err := s.repo.ListTouchingWindow(ctx, start)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load maintenances for flow")
	}
	return ComputeFlow(reference, rows), nil
}
