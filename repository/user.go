package repository

import (
	"context"

	"ClinicAdmin/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepo struct {
	users collection[models.User]
}

func NewUserRepo(database *mongo.Database) *UserRepo {
	return &UserRepo{users: newCollection[models.User](database, models.UserCollection)}
}

func (r *UserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.users.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	found, err := r.users.findByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]*models.User, len(found))
	for i := range found {
		out[found[i].ID] = &found[i]
	}
	return out, nil
}

func (r *UserRepo) FindAll(ctx context.Context) ([]models.User, error) {
	return r.users.find(ctx, bson.M{})
}

func (r *UserRepo) Save(ctx context.Context, user *models.User) error {
	return r.users.set(ctx, user.ID, bson.M{
		"approved":  user.Approved,
		"updatedAt": user.UpdatedAt,
	})
}
