package repository

import (
	"context"

	"ClinicAdmin/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PatientRepo struct {
	patients collection[models.Patient]
	users    *UserRepo
}

func NewPatientRepo(database *mongo.Database, users *UserRepo) *PatientRepo {
	return &PatientRepo{
		patients: newCollection[models.Patient](database, models.PatientCollection),
		users:    users,
	}
}

func (r *PatientRepo) FindByID(ctx context.Context, id primitive.ObjectID, opts ...FindOption) (*models.Patient, error) {
	patient, err := r.patients.findOne(ctx, bson.M{"_id": id})
	if err != nil || patient == nil {
		return nil, err
	}
	if buildFindOptions(opts).populate["user"] {
		user, err := r.users.FindByID(ctx, patient.UserID)
		if err != nil {
			return nil, err
		}
		patient.User = user
	}
	return patient, nil
}

func (r *PatientRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Patient, error) {
	found, err := r.patients.findByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]*models.Patient, len(found))
	for i := range found {
		out[found[i].ID] = &found[i]
	}
	return out, nil
}

func (r *PatientRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Patient, error) {
	return r.patients.findOne(ctx, bson.M{"user": userID})
}

func (r *PatientRepo) Save(ctx context.Context, patient *models.Patient) error {
	return r.patients.set(ctx, patient.ID, bson.M{
		"admitted":  patient.Admitted,
		"updatedAt": patient.UpdatedAt,
	})
}
