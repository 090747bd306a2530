package repository

import (
	"context"

	"ClinicAdmin/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AppointmentRepo struct {
	appointments collection[models.Appointment]
	patients     *PatientRepo
	doctors      *DoctorRepo
}

func NewAppointmentRepo(database *mongo.Database, patients *PatientRepo, doctors *DoctorRepo) *AppointmentRepo {
	return &AppointmentRepo{
		appointments: newCollection[models.Appointment](database, models.AppointmentCollection),
		patients:     patients,
		doctors:      doctors,
	}
}

func (r *AppointmentRepo) FindByID(ctx context.Context, id primitive.ObjectID, opts ...FindOption) (*models.Appointment, error) {
	appointment, err := r.appointments.findOne(ctx, bson.M{"_id": id})
	if err != nil || appointment == nil {
		return nil, err
	}
	if err := r.populate(ctx, []*models.Appointment{appointment}, buildFindOptions(opts)); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (r *AppointmentRepo) FindAll(ctx context.Context, opts ...FindOption) ([]models.Appointment, error) {
	appointments, err := r.appointments.find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	refs := make([]*models.Appointment, len(appointments))
	for i := range appointments {
		refs[i] = &appointments[i]
	}
	if err := r.populate(ctx, refs, buildFindOptions(opts)); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *AppointmentRepo) Save(ctx context.Context, appointment *models.Appointment) error {
	return r.appointments.set(ctx, appointment.ID, bson.M{
		"status":    appointment.Status,
		"updatedAt": appointment.UpdatedAt,
	})
}

// populate expands one level only: a populated patient or doctor keeps its
// own references unresolved.
func (r *AppointmentRepo) populate(ctx context.Context, appointments []*models.Appointment, o findOptions) error {
	if o.populate["patient"] {
		ids := make([]primitive.ObjectID, 0, len(appointments))
		for _, a := range appointments {
			ids = append(ids, a.PatientID)
		}
		patients, err := r.patients.FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		for _, a := range appointments {
			a.Patient = patients[a.PatientID]
		}
	}
	if o.populate["doctor"] {
		ids := make([]primitive.ObjectID, 0, len(appointments))
		for _, a := range appointments {
			ids = append(ids, a.DoctorID)
		}
		doctors, err := r.doctors.FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		for _, a := range appointments {
			a.Doctor = doctors[a.DoctorID]
		}
	}
	return nil
}
