package models

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const AppointmentCollection = "appointments"

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// allowed[from] lists the statuses an appointment may move to.
var allowed = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusConfirmed, StatusCancelled},
	StatusCancelled: {},
}

// Normalize maps the empty value stored by older records to pending.
func (s AppointmentStatus) Normalize() AppointmentStatus {
	if s == "" {
		return StatusPending
	}
	return s
}

func (s AppointmentStatus) Valid() bool {
	_, ok := allowed[s.Normalize()]
	return ok
}

func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, to := range allowed[s.Normalize()] {
		if to == next {
			return true
		}
	}
	return false
}

type Appointment struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	PatientID primitive.ObjectID `json:"patientId" bson:"patient"`
	DoctorID  primitive.ObjectID `json:"doctorId" bson:"doctor"`
	Date      time.Time          `json:"date" bson:"date"`
	Reason    string             `json:"reason" bson:"reason"`
	Status    AppointmentStatus  `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`

	Patient *Patient `json:"patient,omitempty" bson:"-"`
	Doctor  *Doctor  `json:"doctor,omitempty" bson:"-"`
}

func (a *Appointment) TransitionTo(next AppointmentStatus, now time.Time) error {
	if !a.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status.Normalize(), next)
	}
	a.Status = next
	a.UpdatedAt = now
	return nil
}
