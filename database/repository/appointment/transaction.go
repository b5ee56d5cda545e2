package appointmentRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medicore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SlotKey builds the deterministic reservation id for one (doctor, date, time)
// triple. Separators are stripped so the key is storage-safe; the time must
// already be in canonical "HH:MM" form.
func SlotKey(doctorID, date, normalizedTime string) string {
	d := strings.ReplaceAll(date, "-", "")
	t := strings.ReplaceAll(normalizedTime, ":", "")
	return fmt.Sprintf("%s_%s_%s", doctorID, d, t)
}

// ReserveSlot performs the atomic check-and-reserve. The reservation read and
// both inserts run inside one Mongo transaction; its isolation guarantee is
// the sole mechanism preventing double-booking. Availability computed earlier
// by the resolver is advisory only.
func (repo *MongoAppointmentRepo) ReserveSlot(ctx context.Context, appt *models.Appointment) error {
	key := SlotKey(appt.DoctorID, appt.AppointmentDate, appt.AppointmentTime)

	client := repo.apptColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		var existing models.SlotReservation
		err := repo.reservationColl.FindOne(sc, bson.M{"_id": key}).Decode(&existing)
		if err == nil {
			return ErrSlotTaken
		}
		if err != mongo.ErrNoDocuments {
			return fmt.Errorf("reservation lookup failed: %w", err)
		}

		if _, err := repo.apptColl.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}

		reservation := models.SlotReservation{
			SlotKey:       key,
			DoctorID:      appt.DoctorID,
			Date:          appt.AppointmentDate,
			Time:          appt.AppointmentTime,
			AppointmentID: appt.ID,
			CreatedAt:     time.Now(),
		}
		if _, err := repo.reservationColl.InsertOne(sc, reservation); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("insert reservation failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrSlotTaken {
			return ErrSlotTaken
		}
		return fmt.Errorf("reservation transaction failed: %w", err)
	}

	return nil
}

// ReleaseSlot moves an appointment to a terminal status and deletes its
// reservation in the same transaction, freeing the slot for rebooking.
func (repo *MongoAppointmentRepo) ReleaseSlot(ctx context.Context, appointmentID, newStatus string) error {
	client := repo.apptColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		var appt models.Appointment
		if err := repo.apptColl.FindOne(sc, bson.M{"id": appointmentID}).Decode(&appt); err != nil {
			return fmt.Errorf("appointment %s not found: %w", appointmentID, err)
		}

		update := bson.M{"$set": bson.M{
			"status":    newStatus,
			"updatedAt": time.Now(),
		}}
		if _, err := repo.apptColl.UpdateOne(sc, bson.M{"id": appointmentID}, update); err != nil {
			return fmt.Errorf("status update failed: %w", err)
		}

		key := SlotKey(appt.DoctorID, appt.AppointmentDate, appt.AppointmentTime)
		if _, err := repo.reservationColl.DeleteOne(sc, bson.M{"_id": key}); err != nil {
			return fmt.Errorf("reservation delete failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("release transaction failed: %w", err)
	}

	return nil
}
