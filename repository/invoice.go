package repository

import (
	"context"

	"ClinicAdmin/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type InvoiceRepo struct {
	invoices collection[models.Invoice]
}

func NewInvoiceRepo(database *mongo.Database) *InvoiceRepo {
	return &InvoiceRepo{invoices: newCollection[models.Invoice](database, models.InvoiceCollection)}
}

func (r *InvoiceRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	return r.invoices.findOne(ctx, bson.M{"_id": id})
}

// Which invoice comes first is up to the store when several match.
func (r *InvoiceRepo) FindOneByPatient(ctx context.Context, patientID primitive.ObjectID) (*models.Invoice, error) {
	return r.invoices.findOne(ctx, bson.M{"patient": patientID})
}
