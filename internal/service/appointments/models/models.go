package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	Actor              domain.Actor `json:"-"`
	CancellationReason *string      `json:"cancellationReason,omitempty"`
}

// UpdateStatusRequest запрос на перевод записи в новый статус.
// CancellationReason учитывается только при переводе в cancelled.
type UpdateStatusRequest struct {
	Actor              domain.Actor `json:"-"`
	Status             string       `json:"status"`
	Notes              *string      `json:"notes,omitempty"`
	CancellationReason *string      `json:"cancellationReason,omitempty"`
}

// SubmitReviewRequest запрос на добавление отзыва к завершенной записи
type SubmitReviewRequest struct {
	Actor  domain.Actor `json:"-"`
	Rating int          `json:"rating"`
	Review *string      `json:"review,omitempty"`
}

// GetClientAppointmentsRequest запрос истории записей клиента
type GetClientAppointmentsRequest struct {
	Actor    domain.Actor `json:"-"`
	ClientID int64        `json:"clientId"`
	Status   *string      `json:"status,omitempty"`
}

// GetProviderAppointmentsRequest запрос расписания специалиста с фильтрацией
type GetProviderAppointmentsRequest struct {
	Actor           domain.Actor `json:"-"`
	ProviderID      int64        `json:"providerId"`
	Date            *time.Time   `json:"date,omitempty"`
	StartDate       *time.Time   `json:"startDate,omitempty"`
	EndDate         *time.Time   `json:"endDate,omitempty"`
	Status          *string      `json:"status,omitempty"`
	IncludeInactive bool         `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetProviderAppointmentsRequest) ToDomainFilter() (domain.ProviderAppointmentsFilter, error) {
	filter := domain.ProviderAppointmentsFilter{
		ProviderID:      r.ProviderID,
		Date:            r.Date,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	ProviderID      int64   `json:"providerId"`
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "10:00"
	EndTime         string  `json:"endTime"`   // "11:00"
	DurationMinutes int     `json:"durationMinutes"`
	SessionType     string  `json:"sessionType"`
	SessionMode     string  `json:"sessionMode"`
	Status          string  `json:"status"`
	Amount          float64 `json:"amount"`
	PaymentStatus   string  `json:"paymentStatus"`

	// Денормализованные данные специалиста
	ProviderName       string  `json:"providerName"`
	ProviderHourlyRate float64 `json:"providerHourlyRate"`

	Rating *int    `json:"rating,omitempty"`
	Review *string `json:"review,omitempty"`
	Notes  *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		ClientID:           a.ClientID,
		ProviderID:         a.ProviderID,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		EndTime:            a.EndTime.String(),
		DurationMinutes:    a.DurationMinutes,
		SessionType:        string(a.SessionType),
		SessionMode:        string(a.SessionMode),
		Status:             string(a.Status),
		Amount:             a.Amount,
		PaymentStatus:      string(a.PaymentStatus),
		ProviderName:       a.ProviderName,
		ProviderHourlyRate: a.ProviderHourlyRate,
		Rating:             a.Rating,
		Review:             a.Review,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, apt := range appointments {
		if aptResp := FromDomainAppointment(apt); aptResp != nil {
			resp.Appointments[i] = *aptResp
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !domain.ValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
