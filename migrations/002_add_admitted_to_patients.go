package migrations

import (
	"context"

	"ClinicAdmin/models"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func AddAdmittedFlag(ctx context.Context, database *mongo.Database) error {
	result, err := database.Collection(models.PatientCollection).UpdateMany(
		ctx,
		bson.M{"admitted": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"admitted": false}},
	)
	if err != nil {
		log.Error().Err(err).Msg("Migration failed")
		return err
	}
	log.Info().Int64("modified", result.ModifiedCount).Msg("Migration applied: admitted backfilled")
	return nil
}
