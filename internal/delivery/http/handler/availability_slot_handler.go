package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"medimitra-backend/internal/delivery/dto"
	"medimitra-backend/internal/service"
	"medimitra-backend/internal/usecase"
	"medimitra-backend/pkg/response"
	"medimitra-backend/pkg/schedule"
	"medimitra-backend/pkg/validator"
)

type AvailabilitySlotHandler struct {
	slotUsecase usecase.AvailabilitySlotUsecase
	validator   *validator.CustomValidator
}

func NewAvailabilitySlotHandler(slotUsecase usecase.AvailabilitySlotUsecase, validator *validator.CustomValidator) *AvailabilitySlotHandler {
	return &AvailabilitySlotHandler{
		slotUsecase: slotUsecase,
		validator:   validator,
	}
}

func (h *AvailabilitySlotHandler) AddSlot(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAvailabilitySlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.slotUsecase.AddSlot(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDayOfWeek):
			response.Error(w, http.StatusBadRequest, "Invalid day of week", nil)
		case errors.Is(err, schedule.ErrInvalidTimeFormat):
			response.Error(w, http.StatusBadRequest, "Invalid time format, expected HH:MM", nil)
		case errors.Is(err, usecase.ErrInvalidTimeWindow):
			response.Error(w, http.StatusBadRequest, "Start time must be before end time", nil)
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.Error(w, http.StatusBadRequest, "Doctor not found", nil)
		case errors.Is(err, usecase.ErrSlotOverlap):
			response.Error(w, http.StatusBadRequest, "Slot overlaps an existing slot", nil)
		case errors.Is(err, service.ErrLockNotAcquired):
			response.Conflict(w, "Another slot change for this doctor is in progress, please retry")
		default:
			response.InternalServerError(w, "Failed to create slot")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Slot created successfully", slot)
}

func (h *AvailabilitySlotHandler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	slotID, ok := parseIDVar(w, r, "id", "Invalid slot ID")
	if !ok {
		return
	}

	var req dto.UpdateAvailabilitySlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.slotUsecase.UpdateSlot(r.Context(), slotID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrSlotNotFound):
			response.NotFound(w, "Slot not found")
		case errors.Is(err, schedule.ErrInvalidTimeFormat):
			response.Error(w, http.StatusBadRequest, "Invalid time format, expected HH:MM", nil)
		case errors.Is(err, usecase.ErrInvalidTimeWindow):
			response.Error(w, http.StatusBadRequest, "Start time must be before end time", nil)
		case errors.Is(err, usecase.ErrSlotOverlap):
			response.Error(w, http.StatusBadRequest, "Slot overlaps an existing slot", nil)
		default:
			response.InternalServerError(w, "Failed to update slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slot updated successfully", slot)
}

func (h *AvailabilitySlotHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	slotID, ok := parseIDVar(w, r, "id", "Invalid slot ID")
	if !ok {
		return
	}

	if err := h.slotUsecase.DeleteSlot(r.Context(), slotID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrSlotNotFound):
			response.NotFound(w, "Slot not found")
		case errors.Is(err, usecase.ErrSlotInUse):
			response.Conflict(w, "Slot has future scheduled appointments")
		default:
			response.InternalServerError(w, "Failed to delete slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slot deleted successfully", nil)
}

func (h *AvailabilitySlotHandler) GetDoctorSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := parseIDVar(w, r, "doctorId", "Invalid doctor ID")
	if !ok {
		return
	}

	slots, err := h.slotUsecase.GetDoctorSlots(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get slots")
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

func (h *AvailabilitySlotHandler) GetOpenSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := parseIDVar(w, r, "doctorId", "Invalid doctor ID")
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter date is required (YYYY-MM-DD)", nil)
		return
	}

	slots, err := h.slotUsecase.ListOpenSlots(r.Context(), doctorID, date)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidTimeFormat) {
			response.Error(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD", nil)
			return
		}
		response.InternalServerError(w, "Failed to get open slots")
		return
	}

	response.Success(w, http.StatusOK, "Open slots retrieved successfully", slots)
}
