// Package repository provides per-kind access to the clinic record store.
// Records are plain structs; reference fields are expanded on request with
// Populate, the same way a document store resolves relationships.
package repository

import (
	"context"

	"ClinicAdmin/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FindOption func(*findOptions)

type findOptions struct {
	populate map[string]bool
}

// Populate expands the named reference fields ("user", "patient", "doctor").
func Populate(fields ...string) FindOption {
	return func(o *findOptions) {
		for _, f := range fields {
			o.populate[f] = true
		}
	}
}

func buildFindOptions(opts []FindOption) findOptions {
	o := findOptions{populate: map[string]bool{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// A missing record is reported as a nil result with a nil error.
// Save writes only the fields the admin operations change, plus updatedAt.
type UserRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Save(ctx context.Context, user *models.User) error
}

type DoctorRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID, opts ...FindOption) (*models.Doctor, error)
	FindAll(ctx context.Context, opts ...FindOption) ([]models.Doctor, error)
	Save(ctx context.Context, doctor *models.Doctor) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error)
}

type PatientRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID, opts ...FindOption) (*models.Patient, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Patient, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Patient, error)
	Save(ctx context.Context, patient *models.Patient) error
}

type AppointmentRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID, opts ...FindOption) (*models.Appointment, error)
	FindAll(ctx context.Context, opts ...FindOption) ([]models.Appointment, error)
	Save(ctx context.Context, appointment *models.Appointment) error
}

type InvoiceRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error)
	// FindOneByPatient returns the first invoice referencing the patient.
	FindOneByPatient(ctx context.Context, patientID primitive.ObjectID) (*models.Invoice, error)
}

// Store bundles the repositories the admin surface needs.
type Store struct {
	Users        UserRepository
	Doctors      DoctorRepository
	Patients     PatientRepository
	Appointments AppointmentRepository
	Invoices     InvoiceRepository
}
