package xlsx_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/academy-api/internal/application/dto"
	"github.com/jhoicas/academy-api/internal/infrastructure/xlsx"
)

func TestExport_LibroConEncabezadoYFilas(t *testing.T) {
	exp := xlsx.NewMemberExporter()
	createdAt := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)

	data, err := exp.Export([]dto.MemberResponse{
		{
			ID: "u-1", Email: "hong@example.com", Name: "홍길동",
			PhoneNumber: "010-1234-5678", Role: "USER", CreatedAt: createdAt,
		},
		{
			ID: "u-2", Email: "admin@example.com", Name: "Admin", Role: "ADMIN", CreatedAt: createdAt,
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err, "el resultado debe ser un XLSX válido")
	defer f.Close()

	rows, err := f.GetRows("Members")
	require.NoError(t, err)
	require.Len(t, rows, 3, "encabezado + 2 miembros")

	assert.Equal(t, []string{"ID", "Email", "Name", "Phone", "Role", "Created At"}, rows[0])
	assert.Equal(t, "hong@example.com", rows[1][1])
	assert.Equal(t, "홍길동", rows[1][2])
	assert.Equal(t, "2026-01-15 09:30:00", rows[1][5])
	assert.Equal(t, "ADMIN", rows[2][4])
}

func TestExport_SinMiembros_SoloEncabezado(t *testing.T) {
	exp := xlsx.NewMemberExporter()

	data, err := exp.Export(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Members")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
