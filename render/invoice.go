// Package render produces the binary documents served by the admin surface.
package render

import (
	"fmt"
	"io"

	"ClinicAdmin/models"

	"github.com/go-pdf/fpdf"
)

const PDFContentType = "application/pdf"

// InvoicePDF writes the invoice straight to w. A nil patient is rendered as
// an unknown patient rather than rejected.
func InvoicePDF(w io.Writer, invoice *models.Invoice, patient *models.Patient) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Invoice "+invoiceNumber(invoice), true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "Invoice "+tr(invoiceNumber(invoice)), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, "Date: "+invoice.CreatedAt.Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Patient: "+tr(patientName(patient)), "", 1, "L", false, 0, "")
	if patient != nil && patient.User != nil && patient.User.Email != "" {
		pdf.CellFormat(0, 7, "Email: "+tr(patient.User.Email), "", 1, "L", false, 0, "")
	}
	if invoice.Status != "" {
		pdf.CellFormat(0, 7, "Status: "+tr(invoice.Status), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(100, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Unit price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, item := range invoice.Items {
		pdf.CellFormat(100, 8, tr(item.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, money(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, money(float64(item.Quantity)*item.UnitPrice), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(155, 10, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 10, money(invoice.Total), "1", 1, "R", false, 0, "")

	return pdf.Output(w)
}

func invoiceNumber(invoice *models.Invoice) string {
	if invoice.Number != "" {
		return invoice.Number
	}
	return invoice.ID.Hex()
}

func patientName(patient *models.Patient) string {
	switch {
	case patient == nil:
		return "Unknown patient"
	case patient.User != nil && patient.User.Name != "":
		return patient.User.Name
	default:
		return patient.ID.Hex()
	}
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
