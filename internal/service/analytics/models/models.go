package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// ProviderReportRequest запрос отчета специалиста
type ProviderReportRequest struct {
	Actor      domain.Actor           `json:"-"`
	ProviderID int64                  `json:"providerId"`
	Period     domain.AnalyticsPeriod `json:"period,omitempty"`
}

// PlatformReportRequest запрос платформенного отчета
type PlatformReportRequest struct {
	Actor  domain.Actor           `json:"-"`
	Period domain.AnalyticsPeriod `json:"period,omitempty"`
}

// Response модели

// TimeBucket точка временного ряда. Ряды упорядочены хронологически
// по началу интервала, метка производна от него.
type TimeBucket struct {
	PeriodStart time.Time `json:"periodStart"`
	Label       string    `json:"label"` // "2025-10-15" для дней, "2025-10" для месяцев
	Count       int64     `json:"count"`
	Amount      float64   `json:"amount"`
}

// ProviderReportResponse отчет по записям специалиста за период
type ProviderReportResponse struct {
	ProviderID  int64  `json:"providerId"`
	Period      string `json:"period"`
	WindowStart string `json:"windowStart"` // "2025-10-01"
	WindowEnd   string `json:"windowEnd"`

	TotalAppointments     int64 `json:"totalAppointments"`
	CompletedAppointments int64 `json:"completedAppointments"`
	CancelledAppointments int64 `json:"cancelledAppointments"`
	NoShowAppointments    int64 `json:"noShowAppointments"`

	// Заработок учитывает только завершенные записи
	TotalEarnings float64 `json:"totalEarnings"`

	AverageRating *float64 `json:"averageRating,omitempty"`
	RatingsCount  int64    `json:"ratingsCount"`

	NewClients       int64 `json:"newClients"`
	ReturningClients int64 `json:"returningClients"`

	SessionTypeDistribution map[string]int64 `json:"sessionTypeDistribution"`

	EarningsSeries     []TimeBucket `json:"earningsSeries"`
	AppointmentsSeries []TimeBucket `json:"appointmentsSeries"`
}

// PlatformReportResponse сводный отчет по платформе за период
type PlatformReportResponse struct {
	Period      string `json:"period"`
	WindowStart string `json:"windowStart"`
	WindowEnd   string `json:"windowEnd"`

	// Показатели пользователей и специалистов из ProviderService
	TotalUsers        int64 `json:"totalUsers"`
	ActiveUsers       int64 `json:"activeUsers"`
	TotalProviders    int64 `json:"totalProviders"`
	ActiveProviders   int64 `json:"activeProviders"`
	VerifiedProviders int64 `json:"verifiedProviders"`

	// Показатели записей, созданных в окне отчета
	TotalAppointments int64 `json:"totalAppointments"`

	// Выручка учитывает только завершенные записи
	TotalRevenue float64 `json:"totalRevenue"`

	StatusHistogram         map[string]int64 `json:"statusHistogram"`
	SessionTypeDistribution map[string]int64 `json:"sessionTypeDistribution"`

	EarningsSeries     []TimeBucket `json:"earningsSeries"`
	AppointmentsSeries []TimeBucket `json:"appointmentsSeries"`
}
