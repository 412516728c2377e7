package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"medimitra-backend/internal/delivery/dto"
	"medimitra-backend/internal/domain/entity"
	"medimitra-backend/internal/service"
	"medimitra-backend/internal/usecase"
	"medimitra-backend/pkg/response"
	"medimitra-backend/pkg/validator"

	"github.com/google/uuid"
)

type AmbulanceHandler struct {
	ambulanceUsecase usecase.AmbulanceUsecase
	validator        *validator.CustomValidator
}

func NewAmbulanceHandler(ambulanceUsecase usecase.AmbulanceUsecase, validator *validator.CustomValidator) *AmbulanceHandler {
	return &AmbulanceHandler{
		ambulanceUsecase: ambulanceUsecase,
		validator:        validator,
	}
}

func (h *AmbulanceHandler) RequestBooking(w http.ResponseWriter, r *http.Request) {
	var req dto.RequestAmbulanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.ambulanceUsecase.RequestBooking(r.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidPriority) {
			response.Error(w, http.StatusBadRequest, "Invalid priority", nil)
			return
		}
		response.InternalServerError(w, "Failed to request ambulance")
		return
	}

	response.Success(w, http.StatusCreated, "Ambulance requested successfully", booking)
}

func (h *AmbulanceHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := parseIDVar(w, r, "id", "Invalid booking ID")
	if !ok {
		return
	}

	var req dto.DispatchAmbulanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.ambulanceUsecase.Dispatch(r.Context(), bookingID, &req)
	if err != nil {
		h.writeTransitionError(w, err, "Failed to dispatch ambulance")
		return
	}

	response.Success(w, http.StatusOK, "Ambulance dispatched successfully", booking)
}

func (h *AmbulanceHandler) MarkEnRoute(w http.ResponseWriter, r *http.Request) {
	h.simpleTransition(w, r, "Ambulance marked en route", h.ambulanceUsecase.MarkEnRoute)
}

func (h *AmbulanceHandler) MarkArrived(w http.ResponseWriter, r *http.Request) {
	h.simpleTransition(w, r, "Ambulance marked arrived", h.ambulanceUsecase.MarkArrived)
}

func (h *AmbulanceHandler) Complete(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := parseIDVar(w, r, "id", "Invalid booking ID")
	if !ok {
		return
	}

	// Body is optional; an empty request falls back to the estimated cost.
	var req dto.CompleteAmbulanceRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
	}

	booking, err := h.ambulanceUsecase.Complete(r.Context(), bookingID, &req)
	if err != nil {
		h.writeTransitionError(w, err, "Failed to complete ambulance booking")
		return
	}

	response.Success(w, http.StatusOK, "Ambulance booking completed successfully", booking)
}

func (h *AmbulanceHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := parseIDVar(w, r, "id", "Invalid booking ID")
	if !ok {
		return
	}

	var req dto.CancelAmbulanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.ambulanceUsecase.Cancel(r.Context(), bookingID, &req)
	if err != nil {
		h.writeTransitionError(w, err, "Failed to cancel ambulance booking")
		return
	}

	response.Success(w, http.StatusOK, "Ambulance booking cancelled successfully", booking)
}

func (h *AmbulanceHandler) GetActiveBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.ambulanceUsecase.ListActive(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get active bookings")
		return
	}

	response.Success(w, http.StatusOK, "Active bookings retrieved successfully", bookings)
}

func (h *AmbulanceHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := parseIDVar(w, r, "id", "Invalid booking ID")
	if !ok {
		return
	}

	booking, err := h.ambulanceUsecase.GetBooking(r.Context(), bookingID)
	if err != nil {
		if errors.Is(err, usecase.ErrAmbulanceBookingNotFound) {
			response.NotFound(w, "Booking not found")
			return
		}
		response.InternalServerError(w, "Failed to get booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", booking)
}

func (h *AmbulanceHandler) GetPatientBookings(w http.ResponseWriter, r *http.Request) {
	patientID, ok := parseIDVar(w, r, "patientId", "Invalid patient ID")
	if !ok {
		return
	}

	bookings, err := h.ambulanceUsecase.GetPatientBookings(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to get patient bookings")
		return
	}

	response.Success(w, http.StatusOK, "Patient bookings retrieved successfully", bookings)
}

func (h *AmbulanceHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ambulanceUsecase.GetStats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get ambulance stats")
		return
	}

	response.Success(w, http.StatusOK, "Ambulance stats retrieved successfully", stats)
}

func (h *AmbulanceHandler) simpleTransition(w http.ResponseWriter, r *http.Request, message string, fn func(ctx context.Context, id uuid.UUID) (*dto.AmbulanceBookingResponse, error)) {
	bookingID, ok := parseIDVar(w, r, "id", "Invalid booking ID")
	if !ok {
		return
	}

	booking, err := fn(r.Context(), bookingID)
	if err != nil {
		h.writeTransitionError(w, err, "Failed to update ambulance booking")
		return
	}

	response.Success(w, http.StatusOK, message, booking)
}

func (h *AmbulanceHandler) writeTransitionError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrAmbulanceBookingNotFound):
		response.NotFound(w, "Booking not found")
	case errors.Is(err, entity.ErrAmbulanceInvalidTransition):
		response.Error(w, http.StatusBadRequest, "Booking status transition not permitted", nil)
	case errors.Is(err, service.ErrLockNotAcquired):
		response.Conflict(w, "Another change for this booking is in progress, please retry")
	default:
		response.InternalServerError(w, fallback)
	}
}
