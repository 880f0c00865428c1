package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/facilityhub/maintenance-backend/api/responses"
	"github.com/facilityhub/maintenance-backend/api/validators"
	"github.com/facilityhub/maintenance-backend/internal/maintenance"
	"github.com/facilityhub/maintenance-backend/pkg/enums"
	pkgerrors "github.com/facilityhub/maintenance-backend/pkg/errors"
	"github.com/facilityhub/maintenance-backend/pkg/logger"
)

type maintenanceCreateRequest struct {
	Equipment   string  `json:"equipment" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Requestor   string  `json:"requestor" validate:"required"`
	Responsible string  `json:"responsible" validate:"required"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Status      string  `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELED"`
	Location    *string `json:"location"`
	Sector      *string `json:"sector"`
	Department  *string `json:"department"`
	Notes       *string `json:"notes"`
	StartDate   *string `json:"startDate"`
}

func (r maintenanceCreateRequest) toInput() (maintenance.CreateInput, error) {
	input := maintenance.CreateInput{
		Equipment:   r.Equipment,
		Description: r.Description,
		Requestor:   r.Requestor,
		Responsible: r.Responsible,
		Priority:    enums.Priority(r.Priority),
		Status:      enums.Status(r.Status),
		Location:    r.Location,
		Sector:      r.Sector,
		Department:  r.Department,
		Notes:       r.Notes,
	}
	if r.StartDate != nil && *r.StartDate != "" {
		parsed, err := maintenance.ParseDate(*r.StartDate)
		if err != nil {
			return maintenance.CreateInput{}, err
		}
		input.StartDate = &parsed
	}
	return input, nil
}

type maintenanceUpdateRequest struct {
	Equipment   *string `json:"equipment"`
	Description *string `json:"description"`
	Requestor   *string `json:"requestor"`
	Responsible *string `json:"responsible"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Status      *string `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELED"`
	Location    *string `json:"location"`
	Sector      *string `json:"sector"`
	Department  *string `json:"department"`
	Notes       *string `json:"notes"`
	StartDate   *string `json:"startDate"`
}

func (r maintenanceUpdateRequest) toInput() (maintenance.UpdateInput, error) {
	input := maintenance.UpdateInput{
		Equipment:   r.Equipment,
		Description: r.Description,
		Requestor:   r.Requestor,
		Responsible: r.Responsible,
		Location:    r.Location,
		Sector:      r.Sector,
		Department:  r.Department,
		Notes:       r.Notes,
	}
	if r.Priority != nil {
		p := enums.Priority(*r.Priority)
		input.Priority = &p
	}
	if r.Status != nil {
		s := enums.Status(*r.Status)
		input.Status = &s
	}
	if r.StartDate != nil && *r.StartDate != "" {
		parsed, err := maintenance.ParseDate(*r.StartDate)
		if err != nil {
			return maintenance.UpdateInput{}, err
		}
		input.StartDate = &parsed
	}
	return input, nil
}

// MaintenanceList serves every record, newest first.
func MaintenanceList(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// MaintenanceCreate validates and persists a new record.
func MaintenanceCreate(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload maintenanceCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// MaintenanceGet serves a single record by id.
func MaintenanceGet(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := maintenanceID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

// MaintenanceUpdate applies a partial update, including the completion-date rule.
func MaintenanceUpdate(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := maintenanceID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload maintenanceUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// MaintenanceDelete removes a record permanently.
func MaintenanceDelete(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := maintenanceID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

func maintenanceID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid maintenance id")
	}
	return uint(id), nil
}
