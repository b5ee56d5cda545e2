package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"medicore/config"
	"medicore/models"

	"github.com/hibiken/asynq"
)

const TypeAppointmentReminder = "reminder:appointment"

// ReminderLeadTime is how long before the appointment the reminder fires.
const ReminderLeadTime = 24 * time.Hour

// NewReminderTask builds the asynq task for a scheduled appointment reminder.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAppointmentReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// ReminderScheduler enqueues delayed reminder tasks on the Redis-backed queue.
type ReminderScheduler struct {
	client *asynq.Client
}

func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		}),
	}
}

// ScheduleAppointmentReminder enqueues a reminder 24 hours before the
// appointment. Appointments booked inside the lead time get no reminder.
func (s *ReminderScheduler) ScheduleAppointmentReminder(payload models.ReminderPayload) error {
	instant, err := time.ParseInLocation("2006-01-02 15:04", payload.Date+" "+payload.Time, time.Local)
	if err != nil {
		return fmt.Errorf("invalid appointment instant: %w", err)
	}

	fireAt := instant.Add(-ReminderLeadTime)
	if fireAt.Before(time.Now()) {
		return nil
	}

	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}
