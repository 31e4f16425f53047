package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "09:30"},
		{name: "valid midnight", input: "00:00"},
		{name: "valid last minute", input: "23:59"},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "missing leading zero", input: "9:30", wantErr: true},
		{name: "no separator", input: "0930", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "trailing seconds", input: "09:30:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		minutes int
		want    string
		wantErr error
	}{
		{name: "simple add", start: "09:00", minutes: 60, want: "10:00"},
		{name: "across hour", start: "09:45", minutes: 30, want: "10:15"},
		{name: "exactly end of day", start: "22:00", minutes: 120, want: "24:00"},
		{name: "crosses midnight", start: "23:00", minutes: 90, wantErr: ErrCrossesMidnight},
		{name: "negative below zero", start: "00:30", minutes: -60, wantErr: ErrCrossesMidnight},
		{name: "invalid base", start: "25:00", minutes: 10, wantErr: ErrInvalidTimeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeString(tt.start).AddMinutes(tt.minutes)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{name: "partial overlap", aStart: "09:00", aEnd: "10:00", bStart: "09:30", bEnd: "10:30", want: true},
		{name: "contained", aStart: "09:00", aEnd: "12:00", bStart: "10:00", bEnd: "11:00", want: true},
		{name: "identical", aStart: "09:00", aEnd: "10:00", bStart: "09:00", bEnd: "10:00", want: true},
		{name: "back to back after", aStart: "09:00", aEnd: "10:00", bStart: "10:00", bEnd: "11:00", want: false},
		{name: "back to back before", aStart: "10:00", aEnd: "11:00", bStart: "09:00", bEnd: "10:00", want: false},
		{name: "disjoint", aStart: "09:00", aEnd: "10:00", bStart: "14:00", bEnd: "15:00", want: false},
		{name: "end of day bound", aStart: "23:00", aEnd: "24:00", bStart: "23:30", bEnd: "24:00", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(
				TimeString(tt.aStart), TimeString(tt.aEnd),
				TimeString(tt.bStart), TimeString(tt.bEnd),
			)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, "10:30", ts.String())

	require.NoError(t, ts.Scan([]byte("08:15")))
	assert.Equal(t, "08:15", ts.String())

	require.NoError(t, ts.Scan(time.Date(2026, 3, 1, 14, 45, 0, 0, time.UTC)))
	assert.Equal(t, "14:45", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_EndOfDayRoundTrip(t *testing.T) {
	// Запись 21:00+180 заканчивается ровно в полночь
	end, err := TimeString("21:00").AddMinutes(180)
	require.NoError(t, err)
	assert.Equal(t, EndOfDay, end)

	// Граница дня переживает запись в БД и чтение обратно
	v, err := end.Value()
	require.NoError(t, err)
	assert.Equal(t, "24:00", v)

	var ts TimeString
	require.NoError(t, ts.Scan("24:00:00"))
	assert.Equal(t, EndOfDay, ts)

	require.NoError(t, ts.Scan([]byte("24:00")))
	assert.Equal(t, EndOfDay, ts)

	// Как время суток 24:00 по-прежнему невалидно
	_, err = NewTimeStringFromString("24:00")
	assert.Error(t, err)
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	got, err := NewTimeStringFromMinutes(9*60 + 5)
	require.NoError(t, err)
	assert.Equal(t, "09:05", got.String())

	_, err = NewTimeStringFromMinutes(minutesPerDay)
	assert.Error(t, err)

	_, err = NewTimeStringFromMinutes(-1)
	assert.Error(t, err)
}
