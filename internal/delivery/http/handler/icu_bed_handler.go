package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"medimitra-backend/internal/delivery/dto"
	"medimitra-backend/internal/domain/entity"
	"medimitra-backend/internal/service"
	"medimitra-backend/internal/usecase"
	"medimitra-backend/pkg/response"
	"medimitra-backend/pkg/schedule"
	"medimitra-backend/pkg/validator"
)

type ICUBedHandler struct {
	bedUsecase usecase.ICUBedUsecase
	validator  *validator.CustomValidator
}

func NewICUBedHandler(bedUsecase usecase.ICUBedUsecase, validator *validator.CustomValidator) *ICUBedHandler {
	return &ICUBedHandler{
		bedUsecase: bedUsecase,
		validator:  validator,
	}
}

func (h *ICUBedHandler) ReserveBed(w http.ResponseWriter, r *http.Request) {
	var req dto.ReserveBedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	bed, err := h.bedUsecase.ReserveBed(r.Context(), &req)
	if err != nil {
		h.writeTransitionError(w, err, "Failed to reserve bed")
		return
	}

	response.Success(w, http.StatusOK, "Bed reserved successfully", bed)
}

func (h *ICUBedHandler) OccupyBed(w http.ResponseWriter, r *http.Request) {
	var req dto.OccupyBedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	bed, err := h.bedUsecase.OccupyBed(r.Context(), &req)
	if err != nil {
		h.writeTransitionError(w, err, "Failed to occupy bed")
		return
	}

	response.Success(w, http.StatusOK, "Bed occupied successfully", bed)
}

func (h *ICUBedHandler) ReleaseBed(w http.ResponseWriter, r *http.Request) {
	bedID, ok := parseIDVar(w, r, "id", "Invalid bed ID")
	if !ok {
		return
	}

	bed, err := h.bedUsecase.ReleaseBed(r.Context(), bedID)
	if err != nil {
		h.writeTransitionError(w, err, "Failed to release bed")
		return
	}

	response.Success(w, http.StatusOK, "Bed released successfully", bed)
}

func (h *ICUBedHandler) SetMaintenance(w http.ResponseWriter, r *http.Request) {
	bedID, ok := parseIDVar(w, r, "id", "Invalid bed ID")
	if !ok {
		return
	}

	bed, err := h.bedUsecase.SetMaintenance(r.Context(), bedID)
	if err != nil {
		h.writeTransitionError(w, err, "Failed to set bed to maintenance")
		return
	}

	response.Success(w, http.StatusOK, "Bed set to maintenance successfully", bed)
}

func (h *ICUBedHandler) GetBed(w http.ResponseWriter, r *http.Request) {
	bedID, ok := parseIDVar(w, r, "id", "Invalid bed ID")
	if !ok {
		return
	}

	bed, err := h.bedUsecase.GetBed(r.Context(), bedID)
	if err != nil {
		if errors.Is(err, usecase.ErrBedNotFound) {
			response.NotFound(w, "Bed not found")
			return
		}
		response.InternalServerError(w, "Failed to get bed")
		return
	}

	response.Success(w, http.StatusOK, "Bed retrieved successfully", bed)
}

func (h *ICUBedHandler) GetAvailableBeds(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	beds, err := h.bedUsecase.ListAvailableBeds(r.Context(), query.Get("icu_type"), query.Get("hospital"))
	if err != nil {
		response.InternalServerError(w, "Failed to get available beds")
		return
	}

	response.Success(w, http.StatusOK, "Available beds retrieved successfully", beds)
}

func (h *ICUBedHandler) GetPatientBeds(w http.ResponseWriter, r *http.Request) {
	patientID, ok := parseIDVar(w, r, "patientId", "Invalid patient ID")
	if !ok {
		return
	}

	beds, err := h.bedUsecase.GetPatientBeds(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to get patient beds")
		return
	}

	response.Success(w, http.StatusOK, "Patient beds retrieved successfully", beds)
}

func (h *ICUBedHandler) GetHospitals(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.bedUsecase.ListHospitals(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get hospitals")
		return
	}

	response.Success(w, http.StatusOK, "Hospitals retrieved successfully", hospitals)
}

func (h *ICUBedHandler) GetICUTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.bedUsecase.ListICUTypes(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get ICU types")
		return
	}

	response.Success(w, http.StatusOK, "ICU types retrieved successfully", types)
}

func (h *ICUBedHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.bedUsecase.GetStats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get ICU bed stats")
		return
	}

	response.Success(w, http.StatusOK, "ICU bed stats retrieved successfully", stats)
}

func (h *ICUBedHandler) writeTransitionError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrBedNotFound):
		response.NotFound(w, "Bed not found")
	case errors.Is(err, schedule.ErrInvalidTimeFormat):
		response.Error(w, http.StatusBadRequest, "Invalid reservation time format", nil)
	case errors.Is(err, entity.ErrBedReservationWindow):
		response.Error(w, http.StatusBadRequest, "Reservation start must not be after end", nil)
	case errors.Is(err, entity.ErrBedInvalidTransition):
		response.Error(w, http.StatusBadRequest, "Bed state transition not permitted", nil)
	case errors.Is(err, service.ErrLockNotAcquired):
		response.Conflict(w, "Another change for this bed is in progress, please retry")
	default:
		response.InternalServerError(w, fallback)
	}
}
