package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const PatientCollection = "patients"

type AdmissionState string

const (
	Admitted   AdmissionState = "admitted"
	Discharged AdmissionState = "discharged"
)

type Patient struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"user"`
	Admitted  bool               `json:"admitted" bson:"admitted"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`

	User *User `json:"user,omitempty" bson:"-"`
}

func (p *Patient) State() AdmissionState {
	if p.Admitted {
		return Admitted
	}
	return Discharged
}

// Admit and Discharge are both legal from either state.
func (p *Patient) Admit(now time.Time) {
	p.Admitted = true
	p.UpdatedAt = now
}

func (p *Patient) Discharge(now time.Time) {
	p.Admitted = false
	p.UpdatedAt = now
}
