package converter

import (
	"medimitra-backend/internal/delivery/dto"
	"medimitra-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                 appointment.ID,
		PatientID:          appointment.PatientID,
		DoctorID:           appointment.DoctorID,
		AvailabilitySlotID: appointment.AvailabilitySlotID,
		DateTime:           appointment.DateTime,
		EndTime:            appointment.EndTime(),
		DurationMinutes:    appointment.DurationMinutes,
		Type:               string(appointment.Type),
		Status:             string(appointment.Status),
		Symptoms:           appointment.Symptoms,
		Notes:              appointment.Notes,
		Fee:                appointment.Fee,
		CreatedAt:          appointment.CreatedAt,
		UpdatedAt:          appointment.UpdatedAt,
	}

	// Include doctor info if preloaded
	if appointment.Doctor.ID != uuid.Nil {
		response.DoctorName = appointment.Doctor.FullName
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to response DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		resp := AppointmentToResponse(&appointments[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
