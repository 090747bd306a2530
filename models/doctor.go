package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DoctorCollection = "doctors"

type Doctor struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID         primitive.ObjectID `json:"userId" bson:"user"`
	Specialization string             `json:"specialization" bson:"specialization"`
	Approved       bool               `json:"approved" bson:"approved"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`

	// Populated from UserID, never persisted.
	User *User `json:"user,omitempty" bson:"-"`
}

/*
* A doctor is fully approved only when the doctor record and its linked
* user are both approved
 */
func (d *Doctor) IsApproved() bool {
	return d.Approved && d.User != nil && d.User.Approved
}

// Approve requires the linked user to be populated.
func (d *Doctor) Approve(now time.Time) {
	d.Approved = true
	d.UpdatedAt = now
	if d.User != nil {
		d.User.Approved = true
		d.User.UpdatedAt = now
	}
}
