package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/facilityhub/maintenance-backend/pkg/db/models"
	"github.com/facilityhub/maintenance-backend/pkg/enums"
	pkgerrors "github.com/facilityhub/maintenance-backend/pkg/errors"
)

type stubRepo struct {
	rows      []models.Maintenance
	windowed  []models.Maintenance
	lastSince time.Time
	err       error
}

func (s *stubRepo) List(ctx context.Context) ([]models.Maintenance, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func (s *stubRepo) ListTouchingWindow(ctx context.Context, since time.Time) ([]models.Maintenance, error) {
	s.lastSince = since
	if s.err != nil {
		return nil, s.err
	}
	return s.windowed, nil
}

func strPtr(v string) *string { return &v }

func datePtr(t time.Time) *time.Time { return &t }

func record(id uint, status enums.Status, priority enums.Priority, startDate *time.Time) models.Maintenance {
	return models.Maintenance{
		ID:        id,
		Equipment: "Pump",
		Status:    status,
		Priority:  priority,
		StartDate: startDate,
	}
}

func TestComputeStatsEmptySet(t *testing.T) {
	stats := ComputeStats(nil)

	if stats.OpenCount != 0 || stats.HighPriorityCount != 0 {
		t.Fatalf("expected zero counts, got %+v", stats)
	}
	if stats.HighPriorityRequests == nil || len(stats.HighPriorityRequests) != 0 {
		t.Fatalf("expected empty, non-nil high priority list")
	}
}

func TestComputeStatsCountsOpenStates(t *testing.T) {
	rows := []models.Maintenance{
		record(1, enums.StatusPending, enums.PriorityLow, nil),
		record(2, enums.StatusInProgress, enums.PriorityHigh, nil),
		record(3, enums.StatusCompleted, enums.PriorityHigh, nil),
		record(4, enums.StatusCanceled, enums.PriorityHigh, nil),
	}

	stats := ComputeStats(rows)

	if stats.OpenCount != 2 {
		t.Fatalf("expected openCount 2 (PENDING + IN_PROGRESS), got %d", stats.OpenCount)
	}
	if stats.HighPriorityCount != 1 {
		t.Fatalf("expected highPriorityCount 1, got %d", stats.HighPriorityCount)
	}
	if len(stats.HighPriorityRequests) != 1 || stats.HighPriorityRequests[0].ID != 2 {
		t.Fatalf("unexpected high priority projection %+v", stats.HighPriorityRequests)
	}
}

func TestComputeStatsSortsByStartDateNilLast(t *testing.T) {
	early := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	rows := []models.Maintenance{
		record(1, enums.StatusPending, enums.PriorityHigh, nil),
		record(2, enums.StatusPending, enums.PriorityHigh, datePtr(late)),
		record(3, enums.StatusPending, enums.PriorityHigh, datePtr(early)),
	}

	stats := ComputeStats(rows)

	got := []uint{}
	for _, req := range stats.HighPriorityRequests {
		got = append(got, req.ID)
	}
	want := []uint{3, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestComputeStatsProjection(t *testing.T) {
	row := record(9, enums.StatusPending, enums.PriorityHigh, nil)
	row.Location = strPtr("Building 2")

	stats := ComputeStats([]models.Maintenance{row})

	req := stats.HighPriorityRequests[0]
	if req.ID != 9 || req.Equipment != "Pump" || req.Location == nil || *req.Location != "Building 2" {
		t.Fatalf("unexpected projection %+v", req)
	}
}

func TestWindowStart(t *testing.T) {
	reference := time.Date(2024, 1, 15, 17, 45, 12, 0, time.UTC)
	start := WindowStart(reference)

	want := time.Date(2023, 12, 17, 0, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Fatalf("expected window start %v, got %v", want, start)
	}
}

func TestComputeFlowAlwaysThirtyBuckets(t *testing.T) {
	buckets := ComputeFlow(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), nil)

	if len(buckets) != 30 {
		t.Fatalf("expected 30 buckets, got %d", len(buckets))
	}
	if buckets[0].Date != "Dec 17" {
		t.Fatalf("expected first bucket Dec 17, got %s", buckets[0].Date)
	}
	if buckets[29].Date != "Jan 15" {
		t.Fatalf("expected last bucket Jan 15, got %s", buckets[29].Date)
	}
	for _, b := range buckets {
		if b.Criados != 0 || b.Concluidos != 0 {
			t.Fatalf("expected empty buckets, got %+v", b)
		}
	}
}

func TestComputeFlowBucketsCreatedAndCompleted(t *testing.T) {
	reference := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	created := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	completed := time.Date(2024, 1, 12, 16, 0, 0, 0, time.UTC)

	row := models.Maintenance{
		ID:             1,
		Status:         enums.StatusCompleted,
		CreatedAt:      created,
		CompletionDate: &completed,
	}

	buckets := ComputeFlow(reference, []models.Maintenance{row})

	// window starts Dec 17, so Jan 10 is index 24 and Jan 12 is index 26
	if buckets[24].Criados != 1 {
		t.Fatalf("expected Criados=1 at Jan 10 bucket, got %d", buckets[24].Criados)
	}
	if buckets[26].Concluidos != 1 {
		t.Fatalf("expected Concluídos=1 at Jan 12 bucket, got %d", buckets[26].Concluidos)
	}
}

func TestComputeFlowCountsIndependently(t *testing.T) {
	reference := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	// created before the window, completed inside it
	created := time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)
	completed := time.Date(2024, 1, 14, 8, 0, 0, 0, time.UTC)
	row := models.Maintenance{
		ID:             1,
		Status:         enums.StatusCompleted,
		CreatedAt:      created,
		CompletionDate: &completed,
	}

	buckets := ComputeFlow(reference, []models.Maintenance{row})

	totalCriados := 0
	totalConcluidos := 0
	for _, b := range buckets {
		totalCriados += b.Criados
		totalConcluidos += b.Concluidos
	}
	if totalCriados != 0 {
		t.Fatalf("creation outside the window must not count, got %d", totalCriados)
	}
	if totalConcluidos != 1 {
		t.Fatalf("expected one completion inside the window, got %d", totalConcluidos)
	}
}

func TestComputeFlowIgnoresCompletionDateOnOpenRecords(t *testing.T) {
	reference := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	stale := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	row := models.Maintenance{
		ID:             1,
		Status:         enums.StatusInProgress,
		CreatedAt:      time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC),
		CompletionDate: &stale,
	}

	buckets := ComputeFlow(reference, []models.Maintenance{row})

	for _, b := range buckets {
		if b.Concluidos != 0 {
			t.Fatalf("open record must not count as completed, got %+v", b)
		}
	}
}

func TestComputeFlowDropsOutOfRangeIndices(t *testing.T) {
	reference := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	future := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)
	row := models.Maintenance{
		ID:             1,
		Status:         enums.StatusCompleted,
		CreatedAt:      future,
		CompletionDate: &future,
	}

	buckets := ComputeFlow(reference, []models.Maintenance{row})
	for _, b := range buckets {
		if b.Criados != 0 || b.Concluidos != 0 {
			t.Fatalf("out-of-window timestamps must be dropped, got %+v", b)
		}
	}
}

func TestServiceStatsWrapsRepoFailure(t *testing.T) {
	svc := NewService(&stubRepo{err: errors.New("connection refused")})

	_, err := svc.Stats(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestServiceFlowQueriesFromWindowStart(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)

	reference := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	buckets, err := svc.Flow(context.Background(), reference)
	if err != nil {
		t.Fatalf("Flow returned unexpected error: %v", err)
	}
	if len(buckets) != 30 {
		t.Fatalf("expected 30 buckets, got %d", len(buckets))
	}
	if !repo.lastSince.Equal(WindowStart(reference)) {
		t.Fatalf("repository queried from %v, want %v", repo.lastSince, WindowStart(reference))
	}
}
