package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const InvoiceCollection = "invoices"

type InvoiceItem struct {
	Description string  `json:"description" bson:"description"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	UnitPrice   float64 `json:"unitPrice" bson:"unitPrice"`
}

// Invoice fields are produced by the billing subsystem and passed through
// to the renderer unchanged.
type Invoice struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	PatientID primitive.ObjectID `json:"patientId" bson:"patient"`
	Number    string             `json:"number" bson:"number"`
	Items     []InvoiceItem      `json:"items" bson:"items"`
	Total     float64            `json:"total" bson:"total"`
	Status    string             `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
