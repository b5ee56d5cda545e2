package conversation

import (
	"fmt"
	"strings"

	"medicore/models"
	"medicore/services/scheduling"
)

const (
	msgNotRegistered = "We couldn't find a patient record for this number. Please register at the hospital front desk or on the patient portal first."
	msgNoDoctors     = "No doctors are available for booking right now. Please try again later."
	msgCancelled     = "Okay, your booking request has been cancelled. Send \"book\" whenever you want to start again."
	msgSlotTaken     = "Sorry, that time was just taken by another patient. Send \"book\" to start again and pick a new time."
	msgExpired       = "Your booking session is no longer valid. Send \"book\" to start over."
	msgInternal      = "Something went wrong on our side. Please try again in a moment."
	msgIdleHint      = "Hi! Send \"book\" to schedule an appointment, or \"recheckup\" to book a follow-up visit."
)

func doctorListMessage(header string, options []models.DoctorOption) string {
	var b strings.Builder
	if header != "" {
		b.WriteString(header)
		b.WriteString("\n\n")
	}
	b.WriteString("Please choose a doctor by replying with a number or name:\n")
	for i, opt := range options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, opt.Name)
	}
	b.WriteString("\nReply \"cancel\" at any time to stop.")
	return b.String()
}

func dateListMessage(doctorName string, dates []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Great, Dr. %s it is. Reply with a number to pick a date:\n", doctorName)
	for i, d := range dates {
		fmt.Fprintf(&b, "%d. %s\n", i+1, scheduling.FormatDate(d))
	}
	return b.String()
}

func timeListMessage(date string, times []string, duplicateAt string) string {
	var b strings.Builder
	if duplicateAt != "" {
		fmt.Fprintf(&b, "Note: you already have an appointment with this doctor on %s at %s.\n\n",
			scheduling.FormatDate(date), scheduling.FormatClock(duplicateAt))
	}
	fmt.Fprintf(&b, "Available times on %s. Reply with a number, or type a time like 14:30:\n", scheduling.FormatDate(date))
	for i, t := range times {
		fmt.Fprintf(&b, "%d. %s\n", i+1, scheduling.FormatClock(t))
	}
	return b.String()
}

func confirmMessage(doctorName, date, timeSlot string) string {
	return fmt.Sprintf(
		"Please confirm your appointment:\n\nDoctor: Dr. %s\nDate: %s\nTime: %s\n\nReply \"Yes\" to confirm or \"No\" to cancel.",
		doctorName, scheduling.FormatDate(date), scheduling.FormatClock(timeSlot))
}

func bookedMessage(doctorName, date, timeSlot, appointmentID string) string {
	return fmt.Sprintf(
		"Your appointment is confirmed!\n\nDoctor: Dr. %s\nDate: %s\nTime: %s\nBooking reference: %s\n\nWe'll send you a reminder before your visit.",
		doctorName, scheduling.FormatDate(date), scheduling.FormatClock(timeSlot), appointmentID)
}
