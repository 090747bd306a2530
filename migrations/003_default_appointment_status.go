package migrations

import (
	"context"

	"ClinicAdmin/models"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Appointments created without a status are pending.
func DefaultAppointmentStatus(ctx context.Context, database *mongo.Database) error {
	result, err := database.Collection(models.AppointmentCollection).UpdateMany(
		ctx,
		bson.M{"$or": bson.A{
			bson.M{"status": bson.M{"$exists": false}},
			bson.M{"status": ""},
		}},
		bson.M{"$set": bson.M{"status": models.StatusPending}},
	)
	if err != nil {
		log.Error().Err(err).Msg("Migration failed")
		return err
	}
	log.Info().Int64("modified", result.ModifiedCount).Msg("Migration applied: appointment status defaulted")
	return nil
}
