package repository

import (
	"context"

	"ClinicAdmin/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type DoctorRepo struct {
	doctors collection[models.Doctor]
	users   *UserRepo
}

func NewDoctorRepo(database *mongo.Database, users *UserRepo) *DoctorRepo {
	return &DoctorRepo{
		doctors: newCollection[models.Doctor](database, models.DoctorCollection),
		users:   users,
	}
}

func (r *DoctorRepo) FindByID(ctx context.Context, id primitive.ObjectID, opts ...FindOption) (*models.Doctor, error) {
	doctor, err := r.doctors.findOne(ctx, bson.M{"_id": id})
	if err != nil || doctor == nil {
		return nil, err
	}
	if buildFindOptions(opts).populate["user"] {
		if err := r.populateUsers(ctx, []*models.Doctor{doctor}); err != nil {
			return nil, err
		}
	}
	return doctor, nil
}

func (r *DoctorRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Doctor, error) {
	found, err := r.doctors.findByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]*models.Doctor, len(found))
	for i := range found {
		out[found[i].ID] = &found[i]
	}
	return out, nil
}

func (r *DoctorRepo) FindAll(ctx context.Context, opts ...FindOption) ([]models.Doctor, error) {
	doctors, err := r.doctors.find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	if buildFindOptions(opts).populate["user"] {
		refs := make([]*models.Doctor, len(doctors))
		for i := range doctors {
			refs[i] = &doctors[i]
		}
		if err := r.populateUsers(ctx, refs); err != nil {
			return nil, err
		}
	}
	return doctors, nil
}

func (r *DoctorRepo) Save(ctx context.Context, doctor *models.Doctor) error {
	return r.doctors.set(ctx, doctor.ID, bson.M{
		"approved":  doctor.Approved,
		"updatedAt": doctor.UpdatedAt,
	})
}

func (r *DoctorRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	return r.doctors.deleteByID(ctx, id)
}

// Dangling references leave User nil.
func (r *DoctorRepo) populateUsers(ctx context.Context, doctors []*models.Doctor) error {
	ids := make([]primitive.ObjectID, 0, len(doctors))
	for _, d := range doctors {
		ids = append(ids, d.UserID)
	}
	users, err := r.users.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, d := range doctors {
		d.User = users[d.UserID]
	}
	return nil
}
