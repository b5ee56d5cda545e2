package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"medicore/models"
	"medicore/services/scheduling"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDoctorDirectory struct {
	doctors map[string]models.Doctor
}

func (r *stubDoctorDirectory) GetByID(_ context.Context, id string) (*models.Doctor, error) {
	if d, ok := r.doctors[id]; ok {
		copied := d
		return &copied, nil
	}
	return nil, nil
}

func (r *stubDoctorDirectory) ListActive(_ context.Context) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range r.doctors {
		if d.Status == models.DoctorStatusActive {
			out = append(out, d)
		}
	}
	return out, nil
}

type stubApptStore struct {
	byID      map[string]models.Appointment
	confirmed []models.Appointment
}

func (r *stubApptStore) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	if a, ok := r.byID[id]; ok {
		copied := a
		return &copied, nil
	}
	return nil, nil
}

func (r *stubApptStore) ConfirmedForDoctorDate(_ context.Context, doctorID, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.confirmed {
		if a.DoctorID == doctorID && a.AppointmentDate == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubApptStore) ConfirmedForPatientDoctorDate(_ context.Context, doctorID, date, patientID string) (*models.Appointment, error) {
	for _, a := range r.confirmed {
		if a.DoctorID == doctorID && a.AppointmentDate == date && a.PatientID == patientID {
			copied := a
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *stubApptStore) ListForPatient(_ context.Context, patientID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.byID {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubApptStore) ReserveSlot(_ context.Context, _ *models.Appointment) error { return nil }
func (r *stubApptStore) ReleaseSlot(_ context.Context, id, newStatus string) error {
	a := r.byID[id]
	a.Status = newStatus
	r.byID[id] = a
	return nil
}

type stubBookingEngine struct {
	reserveErr error
	cancelled  []string
	completed  []string
}

func (e *stubBookingEngine) Reserve(_ context.Context, req scheduling.ReserveRequest) (*models.Appointment, error) {
	if e.reserveErr != nil {
		return nil, e.reserveErr
	}
	return &models.Appointment{
		ID:              "appt-1",
		DoctorID:        req.DoctorID,
		PatientID:       req.PatientID,
		AppointmentDate: req.Date,
		AppointmentTime: req.Time,
		Status:          models.AppointmentStatusConfirmed,
		BookedVia:       req.Via,
	}, nil
}

func (e *stubBookingEngine) Cancel(_ context.Context, id string) error {
	e.cancelled = append(e.cancelled, id)
	return nil
}

func (e *stubBookingEngine) Complete(_ context.Context, id string) error {
	e.completed = append(e.completed, id)
	return nil
}

func testMondayDoctor() models.Doctor {
	return models.Doctor{
		ID: "doc-1", FirstName: "Asha", LastName: "Patel", Status: models.DoctorStatusActive,
		WeeklyVisitingHours: map[string]models.DaySchedule{
			"Monday": {IsAvailable: true, Windows: []models.VisitingWindow{{Start: "09:00", End: "10:00"}}},
		},
	}
}

func appointmentRouter(doctors *stubDoctorDirectory, appts *stubApptStore, engine *stubBookingEngine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	resolver := &scheduling.AvailabilityResolver{
		Appointments: appts,
		Now: func() time.Time {
			t, _ := time.ParseInLocation("2006-01-02 15:04", "2026-08-28 12:00", time.Local)
			return t
		},
	}
	h := NewAppointmentHandler(doctors, appts, resolver, engine)
	r := gin.New()
	r.GET("/api/appointments/availability", h.GetAvailability)
	r.POST("/api/appointments", h.BookAppointment)
	r.PUT("/api/appointments/:id/cancel", h.CancelAppointment)
	r.PUT("/api/appointments/:id/complete", h.CompleteAppointment)
	r.GET("/api/appointments/patient/:patientId", h.ListPatientAppointments)
	return r
}

func TestGetAvailability(t *testing.T) {
	doctors := &stubDoctorDirectory{doctors: map[string]models.Doctor{"doc-1": testMondayDoctor()}}
	appts := &stubApptStore{
		byID: map[string]models.Appointment{},
		confirmed: []models.Appointment{
			{DoctorID: "doc-1", PatientID: "pat-2", AppointmentDate: "2026-08-31",
				AppointmentTime: "09:30", Status: models.AppointmentStatusConfirmed},
		},
	}
	r := appointmentRouter(doctors, appts, &stubBookingEngine{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/appointments/availability?doctorId=doc-1&date=2026-08-31", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var day models.DayAvailability
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &day))
	assert.Equal(t, []string{"09:00", "09:15", "09:30", "09:45"}, day.AllSlots)
	assert.Equal(t, []string{"09:30"}, day.BookedSlots)
	assert.Equal(t, []string{"09:00", "09:15", "09:45"}, day.AvailableSlots)
	assert.False(t, day.HasExistingAppointment)
}

func TestGetAvailabilityRequiresParams(t *testing.T) {
	r := appointmentRouter(
		&stubDoctorDirectory{doctors: map[string]models.Doctor{}},
		&stubApptStore{byID: map[string]models.Appointment{}},
		&stubBookingEngine{},
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments/availability?doctorId=doc-1", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAvailabilityUnknownDoctor(t *testing.T) {
	r := appointmentRouter(
		&stubDoctorDirectory{doctors: map[string]models.Doctor{}},
		&stubApptStore{byID: map[string]models.Appointment{}},
		&stubBookingEngine{},
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/appointments/availability?doctorId=ghost&date=2026-08-31", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookAppointment(t *testing.T) {
	r := appointmentRouter(
		&stubDoctorDirectory{doctors: map[string]models.Doctor{"doc-1": testMondayDoctor()}},
		&stubApptStore{byID: map[string]models.Appointment{}},
		&stubBookingEngine{},
	)

	body := `{"doctorId":"doc-1","patientId":"pat-1","date":"2026-08-31","time":"09:15"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "appt-1")
}

func TestBookAppointmentMissingFields(t *testing.T) {
	r := appointmentRouter(
		&stubDoctorDirectory{doctors: map[string]models.Doctor{}},
		&stubApptStore{byID: map[string]models.Appointment{}},
		&stubBookingEngine{},
	)

	body := `{"doctorId":"doc-1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookAppointmentErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{scheduling.ErrSlotAlreadyBooked, http.StatusConflict},
		{scheduling.ErrInvalidTimeFormat, http.StatusBadRequest},
		{scheduling.ErrDoctorNotFound, http.StatusNotFound},
		{scheduling.ErrPatientNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		r := appointmentRouter(
			&stubDoctorDirectory{doctors: map[string]models.Doctor{}},
			&stubApptStore{byID: map[string]models.Appointment{}},
			&stubBookingEngine{reserveErr: tc.err},
		)

		body := `{"doctorId":"doc-1","patientId":"pat-1","date":"2026-08-31","time":"09:15"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, tc.code, w.Code, "error %v", tc.err)
	}
}

func TestCancelAppointment(t *testing.T) {
	engine := &stubBookingEngine{}
	appts := &stubApptStore{byID: map[string]models.Appointment{
		"appt-1": {ID: "appt-1", Status: models.AppointmentStatusConfirmed},
	}}
	r := appointmentRouter(&stubDoctorDirectory{doctors: map[string]models.Doctor{}}, appts, engine)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/appointments/appt-1/cancel", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"appt-1"}, engine.cancelled)
}

func TestCancelRejectsNonConfirmed(t *testing.T) {
	engine := &stubBookingEngine{}
	appts := &stubApptStore{byID: map[string]models.Appointment{
		"appt-1": {ID: "appt-1", Status: models.AppointmentStatusCancelled},
	}}
	r := appointmentRouter(&stubDoctorDirectory{doctors: map[string]models.Doctor{}}, appts, engine)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/appointments/appt-1/cancel", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, engine.cancelled)
}

func TestCancelUnknownAppointment(t *testing.T) {
	r := appointmentRouter(
		&stubDoctorDirectory{doctors: map[string]models.Doctor{}},
		&stubApptStore{byID: map[string]models.Appointment{}},
		&stubBookingEngine{},
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/appointments/ghost/cancel", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompleteAppointment(t *testing.T) {
	engine := &stubBookingEngine{}
	appts := &stubApptStore{byID: map[string]models.Appointment{
		"appt-1": {ID: "appt-1", Status: models.AppointmentStatusConfirmed},
	}}
	r := appointmentRouter(&stubDoctorDirectory{doctors: map[string]models.Doctor{}}, appts, engine)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/appointments/appt-1/complete", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"appt-1"}, engine.completed)
}

func TestListPatientAppointments(t *testing.T) {
	appts := &stubApptStore{byID: map[string]models.Appointment{
		"appt-1": {ID: "appt-1", PatientID: "pat-1", Status: models.AppointmentStatusConfirmed},
		"appt-2": {ID: "appt-2", PatientID: "pat-2", Status: models.AppointmentStatusConfirmed},
	}}
	r := appointmentRouter(&stubDoctorDirectory{doctors: map[string]models.Doctor{}}, appts, &stubBookingEngine{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments/patient/pat-1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "appt-1")
	assert.NotContains(t, w.Body.String(), "appt-2")
}
