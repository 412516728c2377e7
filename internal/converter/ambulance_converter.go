package converter

import (
	"medimitra-backend/internal/delivery/dto"
	"medimitra-backend/internal/domain/entity"
)

// AmbulanceBookingToResponse converts an AmbulanceBooking entity to its DTO
func AmbulanceBookingToResponse(booking *entity.AmbulanceBooking) *dto.AmbulanceBookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.AmbulanceBookingResponse{
		ID:                      booking.ID,
		PatientID:               booking.PatientID,
		EmergencyType:           booking.EmergencyType,
		Priority:                string(booking.Priority),
		PickupAddress:           booking.PickupAddress,
		Destination:             booking.Destination,
		ContactPhone:            booking.ContactPhone,
		Symptoms:                booking.Symptoms,
		AdditionalInfo:          booking.AdditionalInfo,
		Status:                  string(booking.Status),
		AmbulanceID:             booking.AmbulanceID,
		DriverID:                booking.DriverID,
		ParamedicsIDs:           booking.ParamedicsIDs,
		EstimatedCost:           booking.EstimatedCost,
		EstimatedArrivalMinutes: booking.EstimatedArrivalMinutes,
		CancellationReason:      booking.CancellationReason,
		RequestTime:             booking.RequestTime,
		DispatchTime:            booking.DispatchTime,
		ArrivalTime:             booking.ArrivalTime,
		CompletionTime:          booking.CompletionTime,
		CreatedAt:               booking.CreatedAt,
		UpdatedAt:               booking.UpdatedAt,
	}

	if booking.FinalCost.Valid {
		finalCost := booking.FinalCost.Decimal
		response.FinalCost = &finalCost
	}

	return response
}

// AmbulanceBookingsToResponses converts a slice of bookings to response DTOs
func AmbulanceBookingsToResponses(bookings []entity.AmbulanceBooking) []dto.AmbulanceBookingResponse {
	responses := make([]dto.AmbulanceBookingResponse, len(bookings))
	for i := range bookings {
		resp := AmbulanceBookingToResponse(&bookings[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
