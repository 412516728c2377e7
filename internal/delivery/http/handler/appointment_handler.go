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

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.BookAppointment(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidTimeFormat):
			response.Error(w, http.StatusBadRequest, "Invalid date or time format", nil)
		case errors.Is(err, usecase.ErrInvalidAppointmentType):
			response.Error(w, http.StatusBadRequest, "Invalid appointment type", nil)
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.Error(w, http.StatusBadRequest, "Doctor not found", nil)
		case errors.Is(err, usecase.ErrSlotNotFound):
			response.Error(w, http.StatusBadRequest, "Availability slot not found", nil)
		case errors.Is(err, usecase.ErrSlotUnavailable):
			response.Error(w, http.StatusBadRequest, "Requested time slot is unavailable", nil)
		case errors.Is(err, service.ErrLockNotAcquired):
			response.Conflict(w, "Another booking for this doctor is in progress, please retry")
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := parseIDVar(w, r, "id", "Invalid appointment ID")
	if !ok {
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateStatus(r.Context(), appointmentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			response.NotFound(w, "Appointment not found")
		case errors.Is(err, usecase.ErrInvalidStatusTransition):
			response.Error(w, http.StatusBadRequest, "Status transition not permitted", nil)
		default:
			response.InternalServerError(w, "Failed to update appointment status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := parseIDVar(w, r, "id", "Invalid appointment ID")
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.CancelAppointment(r.Context(), appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			response.NotFound(w, "Appointment not found")
		case errors.Is(err, usecase.ErrInvalidStatusTransition):
			response.Error(w, http.StatusBadRequest, "Appointment can no longer be cancelled", nil)
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := parseIDVar(w, r, "id", "Invalid appointment ID")
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), appointmentID)
	if err != nil {
		if errors.Is(err, usecase.ErrAppointmentNotFound) {
			response.NotFound(w, "Appointment not found")
			return
		}
		response.InternalServerError(w, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) GetPatientAppointments(w http.ResponseWriter, r *http.Request) {
	patientID, ok := parseIDVar(w, r, "patientId", "Invalid patient ID")
	if !ok {
		return
	}

	appointments, err := h.appointmentUsecase.GetPatientAppointments(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetDoctorAppointments(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := parseIDVar(w, r, "doctorId", "Invalid doctor ID")
	if !ok {
		return
	}

	appointments, err := h.appointmentUsecase.GetDoctorAppointments(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetUpcomingAppointments(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDVar(w, r, "userId", "Invalid user ID")
	if !ok {
		return
	}

	role := mux.Vars(r)["role"]
	if role != "patient" && role != "doctor" {
		response.Error(w, http.StatusBadRequest, "Role must be patient or doctor", nil)
		return
	}

	appointments, err := h.appointmentUsecase.GetUpcomingAppointments(r.Context(), userID, role)
	if err != nil {
		response.InternalServerError(w, "Failed to get upcoming appointments")
		return
	}

	response.Success(w, http.StatusOK, "Upcoming appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAvailableTimes(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := parseIDVar(w, r, "doctorId", "Invalid doctor ID")
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter date is required (YYYY-MM-DD)", nil)
		return
	}

	times, err := h.appointmentUsecase.ListAvailableTimes(r.Context(), doctorID, date)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidTimeFormat):
			response.Error(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD", nil)
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.Error(w, http.StatusBadRequest, "Doctor not found", nil)
		default:
			response.InternalServerError(w, "Failed to get available times")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available times retrieved successfully", times)
}

// parseIDVar pulls a UUID path variable, writing a 400 on failure.
func parseIDVar(w http.ResponseWriter, r *http.Request, name, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.Error(w, http.StatusBadRequest, message, nil)
		return uuid.Nil, false
	}
	return id, true
}
