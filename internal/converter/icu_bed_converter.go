package converter

import (
	"medimitra-backend/internal/delivery/dto"
	"medimitra-backend/internal/domain/entity"
)

// ICUBedToResponse converts an ICUBed entity to ICUBedResponse DTO
func ICUBedToResponse(bed *entity.ICUBed) *dto.ICUBedResponse {
	if bed == nil {
		return nil
	}

	return &dto.ICUBedResponse{
		ID:                   bed.ID,
		BedNumber:            bed.BedNumber,
		Hospital:             bed.Hospital,
		HospitalAddress:      bed.HospitalAddress,
		ICUType:              bed.ICUType,
		Status:               string(bed.Status),
		DailyRate:            bed.DailyRate,
		Equipment:            bed.Equipment,
		AssignedPatientID:    bed.AssignedPatientID,
		ReservationStartTime: bed.ReservationStartTime,
		ReservationEndTime:   bed.ReservationEndTime,
		CreatedAt:            bed.CreatedAt,
		UpdatedAt:            bed.UpdatedAt,
	}
}

// ICUBedsToResponses converts a slice of ICUBed entities to response DTOs
func ICUBedsToResponses(beds []entity.ICUBed) []dto.ICUBedResponse {
	responses := make([]dto.ICUBedResponse, len(beds))
	for i := range beds {
		resp := ICUBedToResponse(&beds[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
