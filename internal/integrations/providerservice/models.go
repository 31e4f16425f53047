package providerservice

import "time"

// Provider профиль специалиста из ProviderService
type Provider struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Specialization string         `json:"specialization"`
	HourlyRate     float64        `json:"hourly_rate"`
	IsActive       bool           `json:"is_active"`
	IsVerified     bool           `json:"is_verified"`
	WeeklySchedule WeeklySchedule `json:"weekly_schedule"`
}

// WeeklySchedule недельный шаблон доступности специалиста
type WeeklySchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule доступность специалиста в конкретный день недели
type DaySchedule struct {
	IsAvailable bool    `json:"is_available"`
	StartTime   *string `json:"start_time,omitempty"` // "HH:MM"
	EndTime     *string `json:"end_time,omitempty"`   // "HH:MM"
}

// ForWeekday возвращает расписание на указанный день недели
func (s WeeklySchedule) ForWeekday(day time.Weekday) DaySchedule {
	switch day {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	case time.Sunday:
		return s.Sunday
	default:
		return DaySchedule{IsAvailable: false}
	}
}

// PlatformStats сводные показатели платформы из ProviderService
type PlatformStats struct {
	TotalUsers         int64 `json:"total_users"`
	ActiveUsers        int64 `json:"active_users"`
	TotalProviders     int64 `json:"total_providers"`
	ActiveProviders    int64 `json:"active_providers"`
	VerifiedProviders  int64 `json:"verified_providers"`
}

// ErrorResponse модель ошибки от ProviderService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
