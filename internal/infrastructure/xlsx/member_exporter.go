package xlsx

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jhoicas/academy-api/internal/application/admin"
	"github.com/jhoicas/academy-api/internal/application/dto"
	"github.com/xuri/excelize/v2"
)

var _ admin.MemberExporter = (*MemberExporter)(nil)

// MemberExporter genera el libro XLSX de miembros para la vista admin.
type MemberExporter struct{}

// NewMemberExporter construye el exportador.
func NewMemberExporter() *MemberExporter {
	return &MemberExporter{}
}

const sheetName = "Members"

// Export serializa los miembros a un XLSX de una sola hoja con fila de encabezado.
func (e *MemberExporter) Export(members []dto.MemberResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"ID", "Email", "Name", "Phone", "Role", "Created At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("xlsx header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx header: %w", err)
		}
	}

	for row, m := range members {
		values := []any{m.ID, m.Email, m.Name, m.PhoneNumber, m.Role, m.CreatedAt.Format("2006-01-02 15:04:05")}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("xlsx cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("xlsx row %s: %w", strconv.Itoa(row+2), err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
