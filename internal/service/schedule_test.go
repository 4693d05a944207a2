package service

import (
	"testing"
	"time"

	"github.com/muhammadarssy/backend-finances/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRunAtDaily(t *testing.T) {
	from := time.Date(2026, time.March, 15, 13, 45, 0, 0, time.UTC)

	next, err := NextRunAt(models.ScheduleDaily, "", from)
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.March, 16), next, "must advance one day and land on midnight")
}

func TestNextRunAtWeekly(t *testing.T) {
	// 2026-03-16 is a Monday
	monday := day(2026, time.March, 16)

	next, err := NextRunAt(models.ScheduleWeekly, "FRI", monday)
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.March, 20), next)

	// same weekday advances a full week, never zero days
	next, err = NextRunAt(models.ScheduleWeekly, "MON", monday)
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.March, 23), next)
}

func TestNextRunAtWeeklyInvalidDay(t *testing.T) {
	_, err := NextRunAt(models.ScheduleWeekly, "FUNDAY", day(2026, time.March, 16))
	assert.Error(t, err)
}

func TestNextRunAtMonthlyClampsToShortMonth(t *testing.T) {
	next, err := NextRunAt(models.ScheduleMonthly, "31", day(2026, time.January, 31))
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.February, 28), next)

	// leap year February keeps the 29th
	next, err = NextRunAt(models.ScheduleMonthly, "31", day(2028, time.January, 31))
	require.NoError(t, err)
	assert.Equal(t, day(2028, time.February, 29), next)
}

func TestNextRunAtMonthlyRegularDay(t *testing.T) {
	next, err := NextRunAt(models.ScheduleMonthly, "5", day(2026, time.June, 5))
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.July, 5), next)
}

func TestNextRunAtYearly(t *testing.T) {
	next, err := NextRunAt(models.ScheduleYearly, "02-29", day(2026, time.February, 28))
	require.NoError(t, err)
	// 2027 is not a leap year, clamp to the 28th
	assert.Equal(t, day(2027, time.February, 28), next)

	next, err = NextRunAt(models.ScheduleYearly, "12-25", day(2026, time.December, 25))
	require.NoError(t, err)
	assert.Equal(t, day(2027, time.December, 25), next)
}

func TestNextRunAtUnknownType(t *testing.T) {
	_, err := NextRunAt("HOURLY", "", day(2026, time.March, 16))
	assert.Error(t, err)
}

func TestValidateScheduleValue(t *testing.T) {
	assert.True(t, ValidateScheduleValue(models.ScheduleDaily, ""))
	assert.True(t, ValidateScheduleValue(models.ScheduleWeekly, "mon"))
	assert.False(t, ValidateScheduleValue(models.ScheduleWeekly, "someday"))
	assert.True(t, ValidateScheduleValue(models.ScheduleMonthly, "28"))
	assert.False(t, ValidateScheduleValue(models.ScheduleMonthly, "32"))
	assert.True(t, ValidateScheduleValue(models.ScheduleYearly, "06-15"))
	assert.False(t, ValidateScheduleValue(models.ScheduleYearly, "13-01"))
}
