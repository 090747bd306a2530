package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatus_Transitions(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		ok   bool
	}{
		{"", StatusConfirmed, true},
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusCancelled, StatusConfirmed, false},
		{StatusConfirmed, StatusPending, false},
		{"archived", StatusConfirmed, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to), "%q -> %q", tt.from, tt.to)
	}
}

func TestAppointmentStatus_Valid(t *testing.T) {
	assert.True(t, AppointmentStatus("").Valid())
	assert.True(t, StatusConfirmed.Valid())
	assert.False(t, AppointmentStatus("archived").Valid())
}

func TestAppointment_TransitionTo(t *testing.T) {
	now := time.Now()
	a := &Appointment{}
	assert.NoError(t, a.TransitionTo(StatusConfirmed, now))
	assert.Equal(t, StatusConfirmed, a.Status)
	assert.Equal(t, now, a.UpdatedAt)

	c := &Appointment{Status: StatusCancelled}
	err := c.TransitionTo(StatusConfirmed, now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusCancelled, c.Status)
}

func TestDoctor_Approve(t *testing.T) {
	d := &Doctor{User: &User{}}
	assert.False(t, d.IsApproved())
	d.Approve(time.Now())
	assert.True(t, d.Approved)
	assert.True(t, d.User.Approved)
	assert.True(t, d.IsApproved())

	orphan := &Doctor{Approved: true}
	assert.False(t, orphan.IsApproved())
}

func TestPatient_AdmitDischarge(t *testing.T) {
	p := &Patient{}
	assert.Equal(t, Discharged, p.State())
	p.Admit(time.Now())
	assert.Equal(t, Admitted, p.State())
	p.Discharge(time.Now())
	p.Discharge(time.Now())
	assert.Equal(t, Discharged, p.State())
}
