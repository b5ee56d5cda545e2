package conversation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	doctorRepo "medicore/database/repository/doctor"
	followupRepo "medicore/database/repository/followup"
	patientRepo "medicore/database/repository/patient"
	"medicore/models"
	"medicore/services/scheduling"
	"medicore/utils"

	"go.uber.org/zap"
)

// Flow limits. Dates are scanned over a two-week horizon and at most seven
// offered; at most ten times are listed per day.
const (
	dateScanHorizonDays = 14
	maxDateOptions      = 7
	maxTimeOptions      = 10
)

// Direct time entry is accepted only inside the hospital's business window.
const (
	businessWindowStart = "09:00"
	businessWindowEnd   = "17:00"
)

var (
	defaultBookTriggers      = []string{"book", "book appointment", "schedule", "appointment"}
	defaultRecheckupTriggers = []string{"recheckup", "re-checkup", "follow up", "followup", "follow-up"}
	cancelCommands           = []string{"cancel", "restart", "start over"}
	yesReplies               = []string{"yes", "confirm"}
	noReplies                = []string{"no", "cancel"}
)

// Machine walks a chat user through doctor -> date -> time -> confirmation.
// One instance exists per webhook integration, differing only in Sender and
// Channel; all state lives in the SessionStore, never in the process.
type Machine struct {
	Sessions  SessionStore
	Doctors   doctorRepo.DoctorRepository
	Patients  patientRepo.PatientRepository
	FollowUps followupRepo.FollowUpRepository
	Resolver  *scheduling.AvailabilityResolver
	Engine    scheduling.BookingEngine
	Sender    OutboundSender

	// Channel tags appointments booked through this integration ("meta",
	// "twilio").
	Channel string

	// BookTriggers and RecheckupTriggers override the trigger phrases,
	// normally from config; empty means the defaults.
	BookTriggers      []string
	RecheckupTriggers []string

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (m *Machine) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *Machine) bookTriggers() []string {
	if len(m.BookTriggers) > 0 {
		return m.BookTriggers
	}
	return defaultBookTriggers
}

func (m *Machine) recheckupTriggers() []string {
	if len(m.RecheckupTriggers) > 0 {
		return m.RecheckupTriggers
	}
	return defaultRecheckupTriggers
}

func matchesAny(input string, phrases []string) bool {
	for _, p := range phrases {
		if input == p {
			return true
		}
	}
	return false
}

// HandleMessage processes one inbound message against the caller's session.
// Every outcome, including rejections, is communicated through the Sender;
// the returned error is only for infrastructure failures.
func (m *Machine) HandleMessage(ctx context.Context, msg InboundMessage) error {
	logger := utils.GetLogger()
	phone := msg.From
	input := strings.TrimSpace(msg.Input())
	lower := strings.ToLower(input)

	session, err := m.Sessions.Get(ctx, phone)
	if err != nil {
		logger.Error("session load failed", zap.String("phone", phone), zap.Error(err))
		m.send(ctx, phone, msgInternal)
		return err
	}

	// Cancel commands work from any state.
	if matchesAny(lower, cancelCommands) {
		if session != nil {
			if err := m.Sessions.Delete(ctx, phone); err != nil {
				logger.Error("session delete failed", zap.String("phone", phone), zap.Error(err))
				m.send(ctx, phone, msgInternal)
				return err
			}
		}
		m.send(ctx, phone, msgCancelled)
		return nil
	}

	// Trigger phrases start fresh even mid-flow, so a stale session never
	// blocks a new attempt.
	if matchesAny(lower, m.recheckupTriggers()) {
		if session != nil {
			_ = m.Sessions.Delete(ctx, phone)
		}
		return m.startRecheckup(ctx, phone)
	}
	if matchesAny(lower, m.bookTriggers()) {
		if session != nil {
			_ = m.Sessions.Delete(ctx, phone)
		}
		return m.startBooking(ctx, phone, "")
	}

	if session == nil {
		m.send(ctx, phone, msgIdleHint)
		return nil
	}

	switch session.State {
	case models.SessionStateSelectingDoctor:
		return m.handleSelectingDoctor(ctx, session, input)
	case models.SessionStateSelectingDate:
		return m.handleSelectingDate(ctx, session, input)
	case models.SessionStateSelectingTime:
		return m.handleSelectingTime(ctx, session, input)
	case models.SessionStateConfirming:
		return m.handleConfirming(ctx, session, lower)
	default:
		return m.expireSession(ctx, session.Phone)
	}
}

// startBooking enters selecting_doctor. An optional header line (set by the
// re-checkup fallback) explains why the user landed here.
func (m *Machine) startBooking(ctx context.Context, phone, header string) error {
	logger := utils.GetLogger()

	patient, err := m.Patients.GetByPhone(ctx, phone)
	if err != nil {
		logger.Error("patient lookup failed", zap.String("phone", phone), zap.Error(err))
		m.send(ctx, phone, msgInternal)
		return err
	}
	if patient == nil {
		m.send(ctx, phone, msgNotRegistered)
		return nil
	}

	doctors, err := m.Doctors.ListActive(ctx)
	if err != nil {
		logger.Error("doctor listing failed", zap.Error(err))
		m.send(ctx, phone, msgInternal)
		return err
	}
	if len(doctors) == 0 {
		m.send(ctx, phone, msgNoDoctors)
		return nil
	}

	options := make([]models.DoctorOption, 0, len(doctors))
	for _, d := range doctors {
		options = append(options, models.DoctorOption{ID: d.ID, Name: d.FullName()})
	}

	session := &models.BookingSession{
		Phone:         phone,
		State:         models.SessionStateSelectingDoctor,
		PatientID:     patient.ID,
		PatientName:   patient.FullName(),
		DoctorOptions: options,
		CreatedAt:     m.now(),
	}
	if err := m.Sessions.Save(ctx, session); err != nil {
		logger.Error("session save failed", zap.String("phone", phone), zap.Error(err))
		m.send(ctx, phone, msgInternal)
		return err
	}

	m.send(ctx, phone, doctorListMessage(header, options))
	return nil
}

// startRecheckup resolves the caller's latest pending follow-up and, when its
// doctor still has upcoming dates, skips straight to date selection.
// Otherwise it falls back to normal doctor selection with an explanation.
func (m *Machine) startRecheckup(ctx context.Context, phone string) error {
	logger := utils.GetLogger()

	patient, err := m.Patients.GetByPhone(ctx, phone)
	if err != nil {
		logger.Error("patient lookup failed", zap.String("phone", phone), zap.Error(err))
		m.send(ctx, phone, msgInternal)
		return err
	}
	if patient == nil {
		m.send(ctx, phone, msgNotRegistered)
		return nil
	}

	followUp, err := m.FollowUps.LatestPendingForPatient(ctx, patient.ID)
	if err != nil {
		logger.Error("follow-up lookup failed", zap.String("patientId", patient.ID), zap.Error(err))
		m.send(ctx, phone, msgInternal)
		return err
	}
	if followUp == nil {
		return m.startBooking(ctx, phone, "We couldn't find a pending follow-up request for you, so let's book a regular appointment.")
	}

	doctor, err := m.Doctors.GetByID(ctx, followUp.DoctorID)
	if err != nil {
		logger.Error("doctor lookup failed", zap.String("doctorId", followUp.DoctorID), zap.Error(err))
		m.send(ctx, phone, msgInternal)
		return err
	}
	if doctor == nil || doctor.Status != models.DoctorStatusActive {
		return m.startBooking(ctx, phone, "Your previous doctor is no longer taking appointments, so let's pick another doctor.")
	}

	dates := m.upcomingDates(*doctor)
	if len(dates) == 0 {
		return m.startBooking(ctx, phone,
			fmt.Sprintf("Dr. %s has no available dates in the next two weeks, so let's pick another doctor.", doctor.FullName()))
	}

	session := &models.BookingSession{
		Phone:              phone,
		State:              models.SessionStateSelectingDate,
		PatientID:          patient.ID,
		PatientName:        patient.FullName(),
		SelectedDoctorID:   doctor.ID,
		SelectedDoctorName: doctor.FullName(),
		DateOptions:        dates,
		IsRecheckup:        true,
		FollowUpID:         followUp.ID,
		CreatedAt:          m.now(),
	}
	if err := m.Sessions.Save(ctx, session); err != nil {
		logger.Error("session save failed", zap.String("phone", phone), zap.Error(err))
		m.send(ctx, phone, msgInternal)
		return err
	}

	m.send(ctx, phone, dateListMessage(doctor.FullName(), dates))
	return nil
}

func (m *Machine) handleSelectingDoctor(ctx context.Context, session *models.BookingSession, input string) error {
	phone := session.Phone

	selected, ok := m.resolveDoctorChoice(session.DoctorOptions, input)
	if !ok {
		m.send(ctx, phone, doctorListMessage("Sorry, I didn't catch that.", session.DoctorOptions))
		return nil
	}

	doctor, err := m.Doctors.GetByID(ctx, selected.ID)
	if err != nil {
		m.send(ctx, phone, msgInternal)
		return err
	}
	if doctor == nil {
		return m.expireSession(ctx, phone)
	}

	dates := m.upcomingDates(*doctor)
	if len(dates) == 0 {
		m.send(ctx, phone, doctorListMessage(
			fmt.Sprintf("Dr. %s has no available dates in the next two weeks. Please choose another doctor.", doctor.FullName()),
			session.DoctorOptions))
		return nil
	}

	session.State = models.SessionStateSelectingDate
	session.SelectedDoctorID = doctor.ID
	session.SelectedDoctorName = doctor.FullName()
	session.DateOptions = dates
	if err := m.Sessions.Save(ctx, session); err != nil {
		m.send(ctx, phone, msgInternal)
		return err
	}

	m.send(ctx, phone, dateListMessage(doctor.FullName(), dates))
	return nil
}

func (m *Machine) handleSelectingDate(ctx context.Context, session *models.BookingSession, input string) error {
	phone := session.Phone

	if session.SelectedDoctorID == "" {
		return m.expireSession(ctx, phone)
	}

	idx, ok := parseOrdinal(input, len(session.DateOptions))
	if !ok {
		m.send(ctx, phone, dateListMessage(session.SelectedDoctorName, session.DateOptions))
		return nil
	}
	date := session.DateOptions[idx]

	doctor, err := m.Doctors.GetByID(ctx, session.SelectedDoctorID)
	if err != nil {
		m.send(ctx, phone, msgInternal)
		return err
	}
	if doctor == nil {
		return m.expireSession(ctx, phone)
	}

	availability, err := m.Resolver.Resolve(ctx, *doctor, date, session.PatientID)
	if err != nil {
		m.send(ctx, phone, msgInternal)
		return err
	}
	if len(availability.AvailableSlots) == 0 {
		m.send(ctx, phone, fmt.Sprintf("No free times left on %s. Please pick a different date:\n%s",
			scheduling.FormatDate(date), dateListMessage(session.SelectedDoctorName, session.DateOptions)))
		return nil
	}

	times := availability.AvailableSlots
	if len(times) > maxTimeOptions {
		times = times[:maxTimeOptions]
	}

	session.State = models.SessionStateSelectingTime
	session.SelectedDate = date
	session.TimeOptions = times
	if err := m.Sessions.Save(ctx, session); err != nil {
		m.send(ctx, phone, msgInternal)
		return err
	}

	m.send(ctx, phone, timeListMessage(date, times, availability.ExistingAppointmentAt))
	return nil
}

func (m *Machine) handleSelectingTime(ctx context.Context, session *models.BookingSession, input string) error {
	phone := session.Phone

	if session.SelectedDoctorID == "" || session.SelectedDate == "" {
		return m.expireSession(ctx, phone)
	}

	chosen, errMsg, err := m.resolveTimeChoice(ctx, session, input)
	if errors.Is(err, ErrSessionExpired) {
		return m.expireSession(ctx, phone)
	}
	if err != nil {
		m.send(ctx, phone, msgInternal)
		return err
	}
	if chosen == "" {
		if errMsg == "" {
			errMsg = "Sorry, I didn't catch that."
		}
		m.send(ctx, phone, errMsg+"\n\n"+timeListMessage(session.SelectedDate, session.TimeOptions, ""))
		return nil
	}

	session.State = models.SessionStateConfirming
	session.SelectedTime = chosen
	if err := m.Sessions.Save(ctx, session); err != nil {
		m.send(ctx, phone, msgInternal)
		return err
	}

	m.send(ctx, phone, confirmMessage(session.SelectedDoctorName, session.SelectedDate, chosen))
	return nil
}

func (m *Machine) handleConfirming(ctx context.Context, session *models.BookingSession, lower string) error {
	logger := utils.GetLogger()
	phone := session.Phone

	if session.SelectedDoctorID == "" || session.SelectedDate == "" || session.SelectedTime == "" {
		return m.expireSession(ctx, phone)
	}

	switch {
	case matchesAny(lower, yesReplies):
		appt, err := m.Engine.Reserve(ctx, scheduling.ReserveRequest{
			DoctorID:  session.SelectedDoctorID,
			PatientID: session.PatientID,
			Date:      session.SelectedDate,
			Time:      session.SelectedTime,
			Reason:    reasonFor(session),
			Via:       m.Channel,
		})
		if err != nil {
			if errors.Is(err, scheduling.ErrSlotAlreadyBooked) {
				// The anchoring context is gone; terminate rather than re-prompt.
				_ = m.Sessions.Delete(ctx, phone)
				m.send(ctx, phone, msgSlotTaken)
				return nil
			}
			logger.Error("chat booking failed", zap.String("phone", phone), zap.Error(err))
			m.send(ctx, phone, msgInternal)
			return err
		}

		if session.IsRecheckup && session.FollowUpID != "" {
			if err := m.FollowUps.MarkBooked(ctx, session.FollowUpID); err != nil {
				logger.Warn("failed to mark follow-up booked", zap.String("followUpId", session.FollowUpID), zap.Error(err))
			}
		}

		if err := m.Sessions.Delete(ctx, phone); err != nil {
			logger.Warn("session cleanup failed after booking", zap.String("phone", phone), zap.Error(err))
		}
		m.send(ctx, phone, bookedMessage(session.SelectedDoctorName, session.SelectedDate, session.SelectedTime, appt.ID))
		return nil

	case matchesAny(lower, noReplies):
		if err := m.Sessions.Delete(ctx, phone); err != nil {
			m.send(ctx, phone, msgInternal)
			return err
		}
		m.send(ctx, phone, msgCancelled)
		return nil

	default:
		m.send(ctx, phone, confirmMessage(session.SelectedDoctorName, session.SelectedDate, session.SelectedTime))
		return nil
	}
}

// resolveDoctorChoice accepts a 1-based ordinal into the presented list or a
// case-insensitive substring of a doctor's full name; an ambiguous name match
// counts as no match.
func (m *Machine) resolveDoctorChoice(options []models.DoctorOption, input string) (models.DoctorOption, bool) {
	if idx, ok := parseOrdinal(input, len(options)); ok {
		return options[idx], true
	}

	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return models.DoctorOption{}, false
	}
	var matches []models.DoctorOption
	for _, opt := range options {
		if strings.Contains(strings.ToLower(opt.Name), needle) {
			matches = append(matches, opt)
		}
	}
	if len(matches) == 1 {
		return matches[0], true
	}
	return models.DoctorOption{}, false
}

// resolveTimeChoice accepts an ordinal into the presented times or a direct
// time entry, which must fall in the business window and still be available.
// Returns the canonical time, or a user-facing rejection message.
func (m *Machine) resolveTimeChoice(ctx context.Context, session *models.BookingSession, input string) (string, string, error) {
	if idx, ok := parseOrdinal(input, len(session.TimeOptions)); ok {
		return session.TimeOptions[idx], "", nil
	}

	normalized, err := scheduling.NormalizeTime(input)
	if err != nil {
		return "", "", nil
	}
	if normalized < businessWindowStart || normalized > businessWindowEnd {
		return "", fmt.Sprintf("Appointments run between %s and %s.",
			scheduling.FormatClock(businessWindowStart), scheduling.FormatClock(businessWindowEnd)), nil
	}

	doctor, err := m.Doctors.GetByID(ctx, session.SelectedDoctorID)
	if err != nil {
		return "", "", err
	}
	if doctor == nil {
		return "", "", ErrSessionExpired
	}
	availability, err := m.Resolver.Resolve(ctx, *doctor, session.SelectedDate, "")
	if err != nil {
		return "", "", err
	}
	for _, slot := range availability.AvailableSlots {
		if slot == normalized {
			return normalized, "", nil
		}
	}
	return "", fmt.Sprintf("%s is not available on %s.",
		scheduling.FormatClock(normalized), scheduling.FormatDate(session.SelectedDate)), nil
}

// upcomingDates scans the horizon for dates the doctor's weekly schedule
// covers and that are not explicitly blocked.
func (m *Machine) upcomingDates(doctor models.Doctor) []string {
	var dates []string
	start := m.now()
	for i := 0; i < dateScanHorizonDays && len(dates) < maxDateOptions; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		if scheduling.IsAvailableWeekday(doctor, date) && !scheduling.IsBlocked(doctor, date) {
			dates = append(dates, date)
		}
	}
	return dates
}

func (m *Machine) expireSession(ctx context.Context, phone string) error {
	if err := m.Sessions.Delete(ctx, phone); err != nil {
		m.send(ctx, phone, msgInternal)
		return err
	}
	m.send(ctx, phone, msgExpired)
	return nil
}

// send delivers a message, logging but swallowing transport failures: the
// business outcome is already decided by the time we reply.
func (m *Machine) send(ctx context.Context, to, message string) {
	if err := m.Sender.Send(ctx, to, message); err != nil {
		utils.GetLogger().Warn("outbound chat send failed", zap.String("to", to), zap.Error(err))
	}
}

func reasonFor(session *models.BookingSession) string {
	if session.IsRecheckup {
		return "Follow-up visit (re-checkup)"
	}
	return ""
}

// parseOrdinal interprets input as a 1-based index into a list of size max.
func parseOrdinal(input string, max int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > max {
		return 0, false
	}
	return n - 1, true
}
