package migrations

import (
	"context"

	"ClinicAdmin/models"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func AddApprovedFlags(ctx context.Context, database *mongo.Database) error {
	for _, coll := range []string{models.UserCollection, models.DoctorCollection} {
		result, err := database.Collection(coll).UpdateMany(
			ctx,
			bson.M{"approved": bson.M{"$exists": false}},
			bson.M{"$set": bson.M{"approved": false}},
		)
		if err != nil {
			log.Error().Err(err).Str("collection", coll).Msg("Migration failed")
			return err
		}
		log.Info().Str("collection", coll).Int64("modified", result.ModifiedCount).Msg("Migration applied: approved backfilled")
	}
	return nil
}
