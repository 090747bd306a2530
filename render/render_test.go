package render

import (
	"bytes"
	"testing"
	"time"

	"ClinicAdmin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestInvoicePDF(t *testing.T) {
	invoice := &models.Invoice{
		ID:        primitive.NewObjectID(),
		Number:    "INV-001",
		CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Items: []models.InvoiceItem{
			{Description: "Consultation", Quantity: 1, UnitPrice: 50},
			{Description: "Bed night", Quantity: 2, UnitPrice: 35.5},
		},
		Total: 121,
	}
	patient := &models.Patient{
		ID:   primitive.NewObjectID(),
		User: &models.User{Name: "José Pérez", Email: "jose@example.com"},
	}

	var buf bytes.Buffer
	require.NoError(t, InvoicePDF(&buf, invoice, patient))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestInvoicePDF_NilPatient(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InvoicePDF(&buf, &models.Invoice{ID: primitive.NewObjectID()}, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPatientName(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, "Unknown patient", patientName(nil))
	assert.Equal(t, id.Hex(), patientName(&models.Patient{ID: id}))
	assert.Equal(t, "Ana", patientName(&models.Patient{User: &models.User{Name: "Ana"}}))
}

func TestUsersWorkbook(t *testing.T) {
	users := []models.User{
		{ID: primitive.NewObjectID(), Name: "Ana", Email: "ana@example.com", Role: "doctor", Approved: true},
		{ID: primitive.NewObjectID(), Name: "Ben", Email: "ben@example.com", Role: "patient"},
	}

	data, err := UsersWorkbook(users)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{UsersSheet}, f.GetSheetList())
	rows, err := f.GetRows(UsersSheet)
	require.NoError(t, err)
	require.Len(t, rows, len(users)+1)
	assert.Equal(t, []string{"_id", "name", "email", "role", "approved", "createdAt"}, rows[0])
	assert.Equal(t, users[0].ID.Hex(), rows[1][0])
	assert.Equal(t, "Ben", rows[2][1])
	assert.Equal(t, "TRUE", rows[1][4])
}

func TestUsersWorkbook_Empty(t *testing.T) {
	data, err := UsersWorkbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{UsersSheet}, f.GetSheetList())
	rows, err := f.GetRows(UsersSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
