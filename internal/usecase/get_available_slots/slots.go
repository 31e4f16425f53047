package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/providerservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// generateTimeSlots генерирует сетку слотов на день с фиксированным шагом slotDuration,
// начиная с начала рабочего окна специалиста.
// Для сегодняшней даты слоты дополнительно фильтруются по minBookingNoticeMinutes.
func generateTimeSlots(
	workingHours providerservice.DaySchedule,
	slotDuration int,
	requestDate time.Time,
	now time.Time,
	minBookingNoticeMinutes int,
) ([]types.TimeString, error) {
	// Даты в прошлом свободных слотов не имеют
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}, nil
	}

	if !workingHours.IsAvailable {
		return []types.TimeString{}, nil
	}

	// При отсутствии явного окна в шаблоне используем окно по умолчанию
	workStart := types.TimeString(domain.DefaultWorkDayStart)
	workEnd := types.TimeString(domain.DefaultWorkDayEnd)
	if workingHours.StartTime != nil {
		parsed, err := types.NewTimeStringFromString(*workingHours.StartTime)
		if err != nil {
			return nil, err
		}
		workStart = parsed
	}
	if workingHours.EndTime != nil {
		parsed, err := types.NewTimeStringFromString(*workingHours.EndTime)
		if err != nil {
			return nil, err
		}
		workEnd = parsed
	}

	// Генерируем все слоты, целиком помещающиеся в рабочее окно
	allSlots := make([]types.TimeString, 0)
	current := workStart

	for current.IsBefore(workEnd) {
		slotEnd, err := current.AddMinutes(slotDuration)
		if err != nil {
			break
		}
		if slotEnd.IsAfter(workEnd) {
			break
		}

		allSlots = append(allSlots, current)

		current, err = current.AddMinutes(slotDuration)
		if err != nil {
			break
		}
	}

	if !isSameDay(requestDate, now) {
		return allSlots, nil
	}

	// Сегодняшние слоты должны начинаться не раньше now + minBookingNoticeMinutes
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		// Минимальное время начала перевалило за полночь - на сегодня слотов нет
		return []types.TimeString{}, nil
	}

	available := make([]types.TimeString, 0, len(allSlots))
	for _, slot := range allSlots {
		if !slot.IsBefore(minAllowedTime) {
			available = append(available, slot)
		}
	}

	return available, nil
}

// filterBookedSlots убирает слоты, пересекающиеся с активными записями.
// Граничащие интервалы (конец одного равен началу другого) пересечением не считаются.
func filterBookedSlots(
	slots []types.TimeString,
	slotDuration int,
	appointments []*domain.Appointment,
) []domain.AvailableSlot {
	result := make([]domain.AvailableSlot, 0, len(slots))

	for _, slotStart := range slots {
		slotEnd, err := slotStart.AddMinutes(slotDuration)
		if err != nil {
			continue
		}

		if hasOverlappingAppointment(slotStart, slotEnd, appointments) {
			continue
		}

		result = append(result, domain.AvailableSlot{
			StartTime:       slotStart,
			EndTime:         slotEnd,
			DurationMinutes: slotDuration,
		})
	}

	return result
}

func hasOverlappingAppointment(slotStart, slotEnd types.TimeString, appointments []*domain.Appointment) bool {
	for _, apt := range appointments {
		if !apt.IsActive() {
			continue
		}
		if types.Overlaps(slotStart, slotEnd, apt.StartTime, apt.EndTime) {
			return true
		}
	}
	return false
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
