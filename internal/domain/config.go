package domain

import "time"

// ProviderSchedulingConfig represents per-provider booking configuration.
// Absent rows fall back to the defaults in constants.go.
type ProviderSchedulingConfig struct {
	ID                      int64
	ProviderID              int64
	SlotDurationMinutes     int // Шаг сетки слотов по умолчанию
	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c *ProviderSchedulingConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// DefaultSchedulingConfig returns the configuration used when a provider
// has not customized scheduling.
func DefaultSchedulingConfig(providerID int64) *ProviderSchedulingConfig {
	return &ProviderSchedulingConfig{
		ProviderID:              providerID,
		SlotDurationMinutes:     DefaultSlotDurationMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}
