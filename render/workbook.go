package render

import (
	"ClinicAdmin/models"

	"github.com/xuri/excelize/v2"
)

const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	UsersSheet      = "users"
)

var userColumns = []interface{}{"_id", "name", "email", "role", "approved", "createdAt"}

// UsersWorkbook builds a single sheet workbook: a header row followed by one
// row per user, in the order given.
func UsersWorkbook(users []models.User) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), UsersSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(UsersSheet, "A1", &userColumns); err != nil {
		return nil, err
	}
	for i, u := range users {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			u.ID.Hex(),
			u.Name,
			u.Email,
			u.Role,
			u.Approved,
			u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := f.SetSheetRow(UsersSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
