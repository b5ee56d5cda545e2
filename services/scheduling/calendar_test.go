package scheduling

import (
	"testing"

	"medicore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-08-31 is a Monday.
const monday = "2026-08-31"

func mondayDoctor(windows ...models.VisitingWindow) models.Doctor {
	return models.Doctor{
		ID:        "doc-1",
		FirstName: "Asha",
		LastName:  "Patel",
		Status:    models.DoctorStatusActive,
		WeeklyVisitingHours: map[string]models.DaySchedule{
			"Monday": {IsAvailable: true, Windows: windows},
		},
	}
}

func TestSlotsForDaySingleWindow(t *testing.T) {
	doc := mondayDoctor(models.VisitingWindow{Start: "09:00", End: "10:00"})

	slots, err := SlotsForDay(doc, monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:15", "09:30", "09:45"}, slots)
}

func TestSlotsForDayWindowEndExcluded(t *testing.T) {
	doc := mondayDoctor(models.VisitingWindow{Start: "09:00", End: "09:15"})

	slots, err := SlotsForDay(doc, monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, slots)
}

func TestSlotsForDayMultipleWindowsKeepOrder(t *testing.T) {
	doc := mondayDoctor(
		models.VisitingWindow{Start: "09:00", End: "09:30"},
		models.VisitingWindow{Start: "14:00", End: "14:30"},
	)

	slots, err := SlotsForDay(doc, monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:15", "14:00", "14:15"}, slots)
}

func TestSlotsForDayCustomGranularity(t *testing.T) {
	doc := mondayDoctor(models.VisitingWindow{Start: "09:00", End: "10:00"})
	doc.SlotGranularityMinutes = 30

	slots, err := SlotsForDay(doc, monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, slots)
}

func TestSlotsForDayOffWeekday(t *testing.T) {
	doc := mondayDoctor(models.VisitingWindow{Start: "09:00", End: "10:00"})

	// 2026-09-01 is a Tuesday, not in the schedule at all.
	slots, err := SlotsForDay(doc, "2026-09-01")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestSlotsForDayUnavailableWeekday(t *testing.T) {
	doc := mondayDoctor(models.VisitingWindow{Start: "09:00", End: "10:00"})
	doc.WeeklyVisitingHours["Monday"] = models.DaySchedule{
		IsAvailable: false,
		Windows:     []models.VisitingWindow{{Start: "09:00", End: "10:00"}},
	}

	slots, err := SlotsForDay(doc, monday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestSlotsForDayBlockedDate(t *testing.T) {
	doc := mondayDoctor(models.VisitingWindow{Start: "09:00", End: "10:00"})
	doc.BlockedDates = []models.BlockedDateRange{
		{From: "2026-08-30", To: "2026-09-02", Reason: "conference"},
	}

	slots, err := SlotsForDay(doc, monday)
	require.NoError(t, err)
	assert.Empty(t, slots)

	assert.True(t, IsBlocked(doc, monday))
	assert.Equal(t, "conference", BlockReason(doc, monday))
}

func TestIsBlockedInclusiveBounds(t *testing.T) {
	doc := mondayDoctor(models.VisitingWindow{Start: "09:00", End: "10:00"})
	doc.BlockedDates = []models.BlockedDateRange{{From: "2026-08-31", To: "2026-08-31"}}

	assert.True(t, IsBlocked(doc, "2026-08-31"))
	assert.False(t, IsBlocked(doc, "2026-08-30"))
	assert.False(t, IsBlocked(doc, "2026-09-01"))
}

func TestSlotsForDayDeterministic(t *testing.T) {
	doc := mondayDoctor(models.VisitingWindow{Start: "09:00", End: "11:00"})

	first, err := SlotsForDay(doc, monday)
	require.NoError(t, err)
	second, err := SlotsForDay(doc, monday)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestIsAvailableWeekday(t *testing.T) {
	doc := mondayDoctor(models.VisitingWindow{Start: "09:00", End: "10:00"})

	assert.True(t, IsAvailableWeekday(doc, monday))
	assert.False(t, IsAvailableWeekday(doc, "2026-09-01"))
	assert.False(t, IsAvailableWeekday(doc, "bad-date"))
}
