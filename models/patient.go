package models

import "time"

// Patient represents a registered patient record.
//
// Phone numbers have historically been stored under three different field
// names (phone, phoneNumber, contact) depending on which portal created the
// record; lookups must try all of them. See PatientRepository.GetByPhone.
type Patient struct {
	ID          string    `bson:"id" json:"id"`
	FirstName   string    `bson:"firstName" json:"firstName"`
	LastName    string    `bson:"lastName" json:"lastName"`
	Email       string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone       string    `bson:"phone,omitempty" json:"phone,omitempty"`
	PhoneNumber string    `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Contact     string    `bson:"contact,omitempty" json:"contact,omitempty"`
	FCMToken    string    `bson:"fcmToken,omitempty" json:"fcmToken,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// FullName returns "First Last".
func (p Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
