package domain

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// AvailableSlot represents a free [StartTime, EndTime) interval offered for booking
type AvailableSlot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}
