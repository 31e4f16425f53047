package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	configRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedconfig"
	"github.com/m04kA/SMC-AppointmentService/internal/service/config/models"
)

type stubRepo struct {
	cfg      *domain.ProviderSchedulingConfig
	upserted *domain.ProviderSchedulingConfig
}

func (r *stubRepo) GetByProvider(_ context.Context, _ int64) (*domain.ProviderSchedulingConfig, error) {
	if r.cfg == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return r.cfg, nil
}

func (r *stubRepo) Upsert(_ context.Context, cfg *domain.ProviderSchedulingConfig) (*domain.ProviderSchedulingConfig, error) {
	out := *cfg
	out.ID = 10
	r.upserted = &out
	return &out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	providerActor = domain.Actor{ID: 7, Role: domain.RoleProvider}
	adminActor    = domain.Actor{ID: 1, Role: domain.RoleAdmin}
	clientActor   = domain.Actor{ID: 42, Role: domain.RoleClient}
)

func TestGetByProvider_DefaultWhenMissing(t *testing.T) {
	svc := NewService(&stubRepo{}, nopLogger{})

	resp, err := svc.GetByProvider(context.Background(), 7, providerActor)
	require.NoError(t, err)

	assert.True(t, resp.IsDefault)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.SlotDurationMinutes)
	assert.Equal(t, domain.DefaultMinBookingNoticeMinutes, resp.MinBookingNoticeMinutes)
}

func TestGetByProvider_StoredConfig(t *testing.T) {
	svc := NewService(&stubRepo{cfg: &domain.ProviderSchedulingConfig{
		ID:                      3,
		ProviderID:              7,
		SlotDurationMinutes:     30,
		AdvanceBookingDays:      14,
		MinBookingNoticeMinutes: 120,
	}}, nopLogger{})

	resp, err := svc.GetByProvider(context.Background(), 7, adminActor)
	require.NoError(t, err)

	assert.False(t, resp.IsDefault)
	assert.Equal(t, 30, resp.SlotDurationMinutes)
	assert.Equal(t, 14, resp.AdvanceBookingDays)
}

func TestGetByProvider_AccessDenied(t *testing.T) {
	svc := NewService(&stubRepo{}, nopLogger{})

	_, err := svc.GetByProvider(context.Background(), 7, clientActor)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByProvider(context.Background(), 7, domain.Actor{ID: 8, Role: domain.RoleProvider})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdate_Success(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateConfigRequest{
		Actor:                   providerActor,
		ProviderID:              7,
		SlotDurationMinutes:     45,
		AdvanceBookingDays:      30,
		MinBookingNoticeMinutes: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, 45, resp.SlotDurationMinutes)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, int64(7), repo.upserted.ProviderID)
}

func TestUpdate_Validation(t *testing.T) {
	svc := NewService(&stubRepo{}, nopLogger{})

	tests := []struct {
		name   string
		mutate func(r *models.UpdateConfigRequest)
	}{
		{name: "slot too short", mutate: func(r *models.UpdateConfigRequest) { r.SlotDurationMinutes = 10 }},
		{name: "slot too long", mutate: func(r *models.UpdateConfigRequest) { r.SlotDurationMinutes = 300 }},
		{name: "slot not multiple of 15", mutate: func(r *models.UpdateConfigRequest) { r.SlotDurationMinutes = 50 }},
		{name: "negative advance days", mutate: func(r *models.UpdateConfigRequest) { r.AdvanceBookingDays = -1 }},
		{name: "advance days over a year", mutate: func(r *models.UpdateConfigRequest) { r.AdvanceBookingDays = 400 }},
		{name: "negative notice", mutate: func(r *models.UpdateConfigRequest) { r.MinBookingNoticeMinutes = -1 }},
		{name: "notice over a week", mutate: func(r *models.UpdateConfigRequest) { r.MinBookingNoticeMinutes = domain.MaxBookingNoticeMinutes + 1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := &models.UpdateConfigRequest{
				Actor:                   providerActor,
				ProviderID:              7,
				SlotDurationMinutes:     60,
				AdvanceBookingDays:      30,
				MinBookingNoticeMinutes: 60,
			}
			tc.mutate(req)

			_, err := svc.Update(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdate_MultiDayNoticeAllowed(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, nopLogger{})

	// Предупреждение больше суток, но в пределах недели - допустимо
	_, err := svc.Update(context.Background(), &models.UpdateConfigRequest{
		Actor:                   providerActor,
		ProviderID:              7,
		SlotDurationMinutes:     60,
		AdvanceBookingDays:      30,
		MinBookingNoticeMinutes: 2000,
	})
	require.NoError(t, err)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, 2000, repo.upserted.MinBookingNoticeMinutes)
}

func TestUpdate_AccessDenied(t *testing.T) {
	svc := NewService(&stubRepo{}, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateConfigRequest{
		Actor:               clientActor,
		ProviderID:          7,
		SlotDurationMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
