package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/facilityhub/maintenance-backend/internal/maintenance"
	"github.com/facilityhub/maintenance-backend/pkg/db/models"
	"github.com/facilityhub/maintenance-backend/pkg/enums"
	pkgerrors "github.com/facilityhub/maintenance-backend/pkg/errors"
)

type stubMaintenanceService struct {
	created   *models.Maintenance
	listRows  []models.Maintenance
	found     *models.Maintenance
	updated   *models.Maintenance
	err       error
	lastInput maintenance.CreateInput
	lastID    uint
}

func (s *stubMaintenanceService) Create(_ context.Context, input maintenance.CreateInput) (*models.Maintenance, error) {
	s.lastInput = input
	return s.created, s.err
}

func (s *stubMaintenanceService) List(context.Context) ([]models.Maintenance, error) {
	return s.listRows, s.err
}

func (s *stubMaintenanceService) GetByID(_ context.Context, id uint) (*models.Maintenance, error) {
	s.lastID = id
	return s.found, s.err
}

func (s *stubMaintenanceService) Update(_ context.Context, id uint, _ maintenance.UpdateInput) (*models.Maintenance, error) {
	s.lastID = id
	return s.updated, s.err
}

func (s *stubMaintenanceService) Delete(_ context.Context, id uint) error {
	s.lastID = id
	return s.err
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestMaintenanceCreateSuccess(t *testing.T) {
	created := &models.Maintenance{
		ID:        7,
		Equipment: "Hydraulic press",
		Priority:  enums.PriorityHigh,
		Status:    enums.StatusPending,
	}
	svc := &stubMaintenanceService{created: created}
	handler := MaintenanceCreate(svc, nil)

	payload := []byte(`{
		"equipment": "Hydraulic press",
		"description": "Oil leak on main seal",
		"requestor": "Ana",
		"responsible": "Carlos",
		"priority": "HIGH",
		"startDate": "2026-01-10"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/maintenance", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", rec.Code, rec.Body.String())
	}
	if svc.lastInput.Priority != enums.PriorityHigh {
		t.Fatalf("expected HIGH priority forwarded, got %q", svc.lastInput.Priority)
	}
	if svc.lastInput.StartDate == nil || !svc.lastInput.StartDate.Equal(time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected parsed start date, got %v", svc.lastInput.StartDate)
	}

	var body models.Maintenance
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.ID != 7 {
		t.Fatalf("expected id 7 got %d", body.ID)
	}
}

func TestMaintenanceCreateMissingField(t *testing.T) {
	handler := MaintenanceCreate(&stubMaintenanceService{}, nil)

	payload := []byte(`{"equipment": "Pump"}`)
	req := httptest.NewRequest(http.MethodPost, "/maintenance", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error == "" {
		t.Fatal("expected error message in body")
	}
}

func TestMaintenanceCreateBadPriority(t *testing.T) {
	handler := MaintenanceCreate(&stubMaintenanceService{}, nil)

	payload := []byte(`{
		"equipment": "Pump",
		"description": "Noise",
		"requestor": "Ana",
		"responsible": "Carlos",
		"priority": "URGENT"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/maintenance", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestMaintenanceCreateBadStartDate(t *testing.T) {
	handler := MaintenanceCreate(&stubMaintenanceService{}, nil)

	payload := []byte(`{
		"equipment": "Pump",
		"description": "Noise",
		"requestor": "Ana",
		"responsible": "Carlos",
		"startDate": "10/01/2026"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/maintenance", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestMaintenanceListSuccess(t *testing.T) {
	rows := []models.Maintenance{
		{ID: 2, Equipment: "Lathe"},
		{ID: 1, Equipment: "Compressor"},
	}
	handler := MaintenanceList(&stubMaintenanceService{listRows: rows}, nil)

	req := httptest.NewRequest(http.MethodGet, "/maintenance", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var body []models.Maintenance
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body) != 2 || body[0].ID != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestMaintenanceGetNotFound(t *testing.T) {
	svc := &stubMaintenanceService{err: pkgerrors.New(pkgerrors.CodeNotFound, "maintenance record not found")}
	handler := MaintenanceGet(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/maintenance/42", nil)
	req = withURLParam(req, "id", "42")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
	if svc.lastID != 42 {
		t.Fatalf("expected id 42 forwarded, got %d", svc.lastID)
	}
	if !strings.Contains(rec.Body.String(), "not found") {
		t.Fatalf("expected not-found message, got %s", rec.Body.String())
	}
}

func TestMaintenanceGetBadID(t *testing.T) {
	handler := MaintenanceGet(&stubMaintenanceService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/maintenance/abc", nil)
	req = withURLParam(req, "id", "abc")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestMaintenanceUpdateSuccess(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	updated := &models.Maintenance{
		ID:             3,
		Equipment:      "Boiler",
		Status:         enums.StatusCompleted,
		CompletionDate: &now,
	}
	svc := &stubMaintenanceService{updated: updated}
	handler := MaintenanceUpdate(svc, nil)

	payload := []byte(`{"status": "COMPLETED"}`)
	req := httptest.NewRequest(http.MethodPut, "/maintenance/3", bytes.NewReader(payload))
	req = withURLParam(req, "id", "3")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", rec.Code, rec.Body.String())
	}

	var body models.Maintenance
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != enums.StatusCompleted || body.CompletionDate == nil {
		t.Fatalf("expected completed record, got %+v", body)
	}
}

func TestMaintenanceUpdateUnknownField(t *testing.T) {
	handler := MaintenanceUpdate(&stubMaintenanceService{}, nil)

	payload := []byte(`{"serial": "X9"}`)
	req := httptest.NewRequest(http.MethodPut, "/maintenance/3", bytes.NewReader(payload))
	req = withURLParam(req, "id", "3")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestMaintenanceDeleteSuccess(t *testing.T) {
	svc := &stubMaintenanceService{}
	handler := MaintenanceDelete(svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/maintenance/9", nil)
	req = withURLParam(req, "id", "9")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %s", rec.Body.String())
	}
	if svc.lastID != 9 {
		t.Fatalf("expected id 9 forwarded, got %d", svc.lastID)
	}
}

func TestMaintenanceDeleteNotFound(t *testing.T) {
	svc := &stubMaintenanceService{err: pkgerrors.New(pkgerrors.CodeNotFound, "maintenance record not found")}
	handler := MaintenanceDelete(svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/maintenance/9", nil)
	req = withURLParam(req, "id", "9")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}
