package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

type Migration func(ctx context.Context, database *mongo.Database) error

// All lists the migrations in the order they must run.
var All = []Migration{
	AddApprovedFlags,
	AddAdmittedFlag,
	DefaultAppointmentStatus,
}

func Run(ctx context.Context, database *mongo.Database) error {
	for _, m := range All {
		if err := m(ctx, database); err != nil {
			return err
		}
	}
	return nil
}
