package book_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	ProviderID      int64   `json:"providerId"`
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	SessionType     string  `json:"sessionType"`
	SessionMode     string  `json:"sessionMode"`
	Notes           *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                 int64   `json:"id"`
	ClientID           int64   `json:"clientId"`
	ProviderID         int64   `json:"providerId"`
	Date               string  `json:"date"`
	StartTime          string  `json:"startTime"`
	EndTime            string  `json:"endTime"`
	DurationMinutes    int     `json:"durationMinutes"`
	SessionType        string  `json:"sessionType"`
	SessionMode        string  `json:"sessionMode"`
	Status             string  `json:"status"`
	Amount             float64 `json:"amount"`
	PaymentStatus      string  `json:"paymentStatus"`
	ProviderName       string  `json:"providerName"`
	ProviderHourlyRate float64 `json:"providerHourlyRate"`
	Notes              *string `json:"notes,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookAppointmentRequest) ToUseCaseRequest(clientID int64) (bookAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return bookAppointment.Request{}, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return bookAppointment.Request{}, err
	}

	return bookAppointment.Request{
		ClientID:    clientID,
		ProviderID:  r.ProviderID,
		Date:        date,
		StartTime:   startTime,
		Duration:    r.DurationMinutes,
		SessionType: domain.SessionType(r.SessionType),
		SessionMode: domain.SessionMode(r.SessionMode),
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 resp.ID,
		ClientID:           resp.ClientID,
		ProviderID:         resp.ProviderID,
		Date:               resp.Date.Format(domain.DateFormat),
		StartTime:          resp.StartTime.String(),
		EndTime:            resp.EndTime.String(),
		DurationMinutes:    resp.DurationMinutes,
		SessionType:        resp.SessionType,
		SessionMode:        resp.SessionMode,
		Status:             resp.Status,
		Amount:             resp.Amount,
		PaymentStatus:      resp.PaymentStatus,
		ProviderName:       resp.ProviderName,
		ProviderHourlyRate: resp.ProviderHourlyRate,
		Notes:              resp.Notes,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}
