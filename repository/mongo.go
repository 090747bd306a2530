package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrMissingID is returned when saving a record that was never stored.
var ErrMissingID = errors.New("save requires a stored record id")

// collection wraps a mongo collection decoding into T.
type collection[T any] struct {
	coll *mongo.Collection
}

func newCollection[T any](database *mongo.Database, name string) collection[T] {
	return collection[T]{coll: database.Collection(name)}
}

func (c collection[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var out T
	err := c.coll.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c collection[T]) find(ctx context.Context, filter bson.M) ([]T, error) {
	cursor, err := c.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c collection[T]) findByIDs(ctx context.Context, ids []primitive.ObjectID) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	return c.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// set writes only the given fields; the rest of the stored document,
// including fields these models do not map, is left untouched.
func (c collection[T]) set(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	if id.IsZero() {
		return ErrMissingID
	}
	_, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

func (c collection[T]) deleteByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var out T
	err := c.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if id.IsZero() {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// NewMongoStore builds every repository over the same database.
func NewMongoStore(database *mongo.Database) Store {
	users := NewUserRepo(database)
	patients := NewPatientRepo(database, users)
	doctors := NewDoctorRepo(database, users)
	return Store{
		Users:        users,
		Doctors:      doctors,
		Patients:     patients,
		Appointments: NewAppointmentRepo(database, patients, doctors),
		Invoices:     NewInvoiceRepo(database),
	}
}
