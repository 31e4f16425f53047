package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service управление жизненным циклом записей на приём
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID.
// Клиент видит только свои записи, специалист - записи к себе, администратор - любые.
// Для чужих записей возвращается ErrAppointmentNotFound, а не отказ в доступе.
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for %s=%d", id, actor.Role, actor.ID)

	apt, err := s.fetchVisible(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(apt), nil
}

// GetClientAppointments получает историю записей клиента.
// Клиент может запрашивать только свою историю, администратор - любую.
func (s *Service) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for client=%d, status=%v", req.ClientID, req.Status)

	if req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: client id must be positive", ErrInvalidInput)
	}

	switch req.Actor.Role {
	case domain.RoleAdmin:
	case domain.RoleClient:
		if req.Actor.ID != req.ClientID {
			s.logger.Warn("GetClientAppointments: client=%d requested history of client=%d", req.Actor.ID, req.ClientID)
			return nil, ErrAccessDenied
		}
	default:
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientAppointments: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: successfully fetched %d appointments for client=%d", len(appointments), req.ClientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetProviderAppointments получает расписание специалиста с гибкой фильтрацией.
// Специалист видит только свое расписание, администратор - любое.
//
// Примеры использования:
//   - Все активные записи: указать только ProviderID
//   - Записи на дату: указать Date
//   - Записи за период: StartDate и EndDate
//   - Включая отменённые и завершённые: IncludeInactive = true
func (s *Service) GetProviderAppointments(ctx context.Context, req *models.GetProviderAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetProviderAppointments: fetching appointments for provider=%d", req.ProviderID)

	if req.ProviderID <= 0 {
		return nil, fmt.Errorf("%w: provider id must be positive", ErrInvalidInput)
	}

	switch req.Actor.Role {
	case domain.RoleAdmin:
	case domain.RoleProvider:
		if req.Actor.ID != req.ProviderID {
			s.logger.Warn("GetProviderAppointments: provider=%d requested schedule of provider=%d", req.Actor.ID, req.ProviderID)
			return nil, ErrAccessDenied
		}
	default:
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProviderAppointments: invalid filter for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderAppointments: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProviderAppointments: successfully fetched %d appointments for provider=%d", len(appointments), req.ProviderID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись.
// Клиент и специалист могут отменить только свою запись, администратор - любую.
// Отмена возможна только из активных статусов (pending, confirmed).
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by %s=%d", id, req.Actor.Role, req.Actor.ID)

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	apt, err := s.fetchVisible(ctx, id, req.Actor)
	if err != nil {
		return err
	}

	if !apt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, apt.Status)
		return ErrCannotCancel
	}

	err = s.appointmentRepo.UpdateStatusFrom(ctx, id, apt.Status, domain.StatusCancelled, nil, req.CancellationReason)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotUpdated) {
			s.logger.Warn("Cancel: appointment id=%d was modified concurrently", id)
			return ErrConcurrentUpdate
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return nil
}

// UpdateStatus переводит запись в новый статус.
// Доступно специалисту, к которому сделана запись, и администратору.
// Переход проверяется по таблице допустимых переходов: из активных статусов
// можно перейти в confirmed, cancelled, completed или no_show; терминальные
// статусы финальны.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by %s=%d",
		id, req.Status, req.Actor.Role, req.Actor.ID)

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, id)
		return fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	apt, err := s.fetchVisible(ctx, id, req.Actor)
	if err != nil {
		return err
	}

	// Статусы меняет принимающая сторона, клиенту доступна только отмена
	switch req.Actor.Role {
	case domain.RoleAdmin:
	case domain.RoleProvider:
	default:
		s.logger.Warn("UpdateStatus: %s=%d is not allowed to change status of appointment id=%d",
			req.Actor.Role, req.Actor.ID, id)
		return ErrAccessDenied
	}

	if !apt.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: invalid transition %s -> %s for appointment id=%d", apt.Status, newStatus, id)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, apt.Status, newStatus)
	}

	err = s.appointmentRepo.UpdateStatusFrom(ctx, id, apt.Status, newStatus, req.Notes, req.CancellationReason)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotUpdated) {
			s.logger.Warn("UpdateStatus: appointment id=%d was modified concurrently", id)
			return ErrConcurrentUpdate
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", id, newStatus)
	return nil
}

// SubmitReview сохраняет оценку и отзыв клиента по завершенной записи
func (s *Service) SubmitReview(ctx context.Context, id int64, req *models.SubmitReviewRequest) error {
	s.logger.Info("SubmitReview: review for appointment id=%d by %s=%d", id, req.Actor.Role, req.Actor.ID)

	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	if req.Review != nil && len(*req.Review) > domain.MaxReviewLength {
		return fmt.Errorf("%w: review must not exceed %d characters", ErrInvalidInput, domain.MaxReviewLength)
	}

	apt, err := s.fetchVisible(ctx, id, req.Actor)
	if err != nil {
		return err
	}

	// Отзыв оставляет только клиент по своей записи
	if req.Actor.Role != domain.RoleClient || apt.ClientID != req.Actor.ID {
		s.logger.Warn("SubmitReview: %s=%d is not the client of appointment id=%d", req.Actor.Role, req.Actor.ID, id)
		return ErrAccessDenied
	}

	if !apt.CanBeReviewed() {
		s.logger.Warn("SubmitReview: appointment id=%d is not reviewable, status=%s", id, apt.Status)
		return ErrNotReviewable
	}

	err = s.appointmentRepo.SetReview(ctx, id, req.Rating, req.Review)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotUpdated) {
			// Статус ушёл из completed между чтением и обновлением
			s.logger.Warn("SubmitReview: appointment id=%d left completed state concurrently", id)
			return ErrNotReviewable
		}
		s.logger.Error("SubmitReview: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: SubmitReview - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SubmitReview: successfully saved review for appointment id=%d", id)
	return nil
}

// Вспомогательные методы

// fetchVisible загружает запись и проверяет, что она видна актору.
// Чужая запись неотличима от несуществующей.
func (s *Service) fetchVisible(ctx context.Context, id int64, actor domain.Actor) (*domain.Appointment, error) {
	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("fetchVisible: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("fetchVisible: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: fetchVisible - repository error: %v", ErrInternal, err)
	}

	if !s.canSee(apt, actor) {
		s.logger.Warn("fetchVisible: appointment id=%d is not visible to %s=%d", id, actor.Role, actor.ID)
		return nil, ErrAppointmentNotFound
	}

	return apt, nil
}

func (s *Service) canSee(apt *domain.Appointment, actor domain.Actor) bool {
	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleClient:
		return apt.ClientID == actor.ID
	case domain.RoleProvider:
		return apt.ProviderID == actor.ID
	default:
		return false
	}
}
