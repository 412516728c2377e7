package converter

import (
	"medimitra-backend/internal/delivery/dto"
	"medimitra-backend/internal/domain/entity"
)

// AvailabilitySlotToResponse converts an AvailabilitySlot entity to its DTO
func AvailabilitySlotToResponse(slot *entity.AvailabilitySlot) *dto.AvailabilitySlotResponse {
	if slot == nil {
		return nil
	}

	return &dto.AvailabilitySlotResponse{
		ID:                  slot.ID,
		DoctorID:            slot.DoctorID,
		DayOfWeek:           string(slot.DayOfWeek),
		StartTime:           slot.StartTime,
		EndTime:             slot.EndTime,
		SlotDurationMinutes: slot.SlotDurationMinutes,
		MaxPatientsPerSlot:  slot.MaxPatientsPerSlot,
		IsAvailable:         slot.IsAvailable,
		CreatedAt:           slot.CreatedAt,
		UpdatedAt:           slot.UpdatedAt,
	}
}

// AvailabilitySlotsToResponses converts a slice of slots to response DTOs
func AvailabilitySlotsToResponses(slots []entity.AvailabilitySlot) []dto.AvailabilitySlotResponse {
	responses := make([]dto.AvailabilitySlotResponse, len(slots))
	for i := range slots {
		resp := AvailabilitySlotToResponse(&slots[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// AvailabilitySlotToOpenSlot builds the per-date occurrence view of a slot
// with its remaining capacity.
func AvailabilitySlotToOpenSlot(slot *entity.AvailabilitySlot, date string, booked int) *dto.OpenSlotResponse {
	if slot == nil {
		return nil
	}

	return &dto.OpenSlotResponse{
		AvailabilitySlotResponse: *AvailabilitySlotToResponse(slot),
		Date:                     date,
		BookedCount:              booked,
		RemainingCapacity:        slot.RemainingCapacity(booked),
	}
}
