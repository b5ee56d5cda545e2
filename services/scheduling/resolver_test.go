package scheduling

import (
	"context"
	"testing"
	"time"

	"medicore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(date string, clock string) func() time.Time {
	return func() time.Time {
		t, _ := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
		return t
	}
}

func TestResolvePartitionsBookedPastAvailable(t *testing.T) {
	doc := mondayDoctor(models.VisitingWindow{Start: "09:00", End: "10:00"})

	appts := newMemAppointmentRepo()
	require.NoError(t, appts.ReserveSlot(context.Background(), &models.Appointment{
		ID: "a1", DoctorID: doc.ID, PatientID: "pat-1",
		AppointmentDate: monday, AppointmentTime: "09:30",
		Status: models.AppointmentStatusConfirmed,
	}))

	resolver := &AvailabilityResolver{
		Appointments: appts,
		Now:          fixedClock(monday, "09:20"),
	}

	day, err := resolver.Resolve(context.Background(), doc, monday, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:15", "09:30", "09:45"}, day.AllSlots)
	assert.Equal(t, []string{"09:30"}, day.BookedSlots)
	assert.Equal(t, []string{"09:00", "09:15"}, day.PastSlots)
	assert.Equal(t, []string{"09:45"}, day.AvailableSlots)
}

func TestResolvePartitionsAreDisjointAndCover(t *testing.T) {
	doc := mondayDoctor(models.VisitingWindow{Start: "09:00", End: "12:00"})

	appts := newMemAppointmentRepo()
	for _, slot := range []string{"09:15", "10:30", "11:45"} {
		require.NoError(t, appts.ReserveSlot(context.Background(), &models.Appointment{
			ID: "a-" + slot, DoctorID: doc.ID, PatientID: "pat-1",
			AppointmentDate: monday, AppointmentTime: slot,
			Status: models.AppointmentStatusConfirmed,
		}))
	}

	resolver := &AvailabilityResolver{
		Appointments: appts,
		Now:          fixedClock(monday, "10:05"),
	}

	day, err := resolver.Resolve(context.Background(), doc, monday, "")
	require.NoError(t, err)

	// A booked slot may also be past; an available slot overlaps neither.
	for _, slot := range day.AvailableSlots {
		assert.NotContains(t, day.BookedSlots, slot)
		assert.NotContains(t, day.PastSlots, slot)
	}

	// Every slot lands in at least one of booked/past/available.
	inPartition := make(map[string]bool)
	for _, slot := range day.BookedSlots {
		inPartition[slot] = true
	}
	for _, slot := range day.PastSlots {
		inPartition[slot] = true
	}
	for _, slot := range day.AvailableSlots {
		inPartition[slot] = true
	}
	for _, slot := range day.AllSlots {
		assert.True(t, inPartition[slot], "slot %s missing from every partition", slot)
	}
}

func TestResolveFutureDateHasNoPastSlots(t *testing.T) {
	doc := mondayDoctor(models.VisitingWindow{Start: "09:00", End: "10:00"})

	resolver := &AvailabilityResolver{
		Appointments: newMemAppointmentRepo(),
		Now:          fixedClock("2026-08-28", "12:00"),
	}

	day, err := resolver.Resolve(context.Background(), doc, monday, "")
	require.NoError(t, err)
	assert.Empty(t, day.PastSlots)
	assert.Equal(t, day.AllSlots, day.AvailableSlots)
}

func TestResolveOffDayReturnsEmptyPartitions(t *testing.T) {
	doc := mondayDoctor(models.VisitingWindow{Start: "09:00", End: "10:00"})

	resolver := &AvailabilityResolver{
		Appointments: newMemAppointmentRepo(),
		Now:          fixedClock("2026-08-28", "12:00"),
	}

	day, err := resolver.Resolve(context.Background(), doc, "2026-09-01", "")
	require.NoError(t, err)
	assert.Empty(t, day.AllSlots)
	assert.Empty(t, day.AvailableSlots)
}

func TestResolveDuplicateAdvisory(t *testing.T) {
	doc := mondayDoctor(models.VisitingWindow{Start: "09:00", End: "10:00"})

	appts := newMemAppointmentRepo()
	require.NoError(t, appts.ReserveSlot(context.Background(), &models.Appointment{
		ID: "a1", DoctorID: doc.ID, PatientID: "pat-1",
		AppointmentDate: monday, AppointmentTime: "09:00",
		Status: models.AppointmentStatusConfirmed,
	}))

	resolver := &AvailabilityResolver{
		Appointments: appts,
		Now:          fixedClock("2026-08-28", "12:00"),
	}

	day, err := resolver.Resolve(context.Background(), doc, monday, "pat-1")
	require.NoError(t, err)
	assert.True(t, day.HasExistingAppointment)
	assert.Equal(t, "09:00", day.ExistingAppointmentAt)

	// The advisory never removes slots from the bookable set.
	assert.Contains(t, day.AvailableSlots, "09:15")

	other, err := resolver.Resolve(context.Background(), doc, monday, "pat-2")
	require.NoError(t, err)
	assert.False(t, other.HasExistingAppointment)
}
