package sheets_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/envos-stock/internal/domain"
	"github.com/jhoicas/envos-stock/internal/infrastructure/sheets"
)

func workbook(t *testing.T, sheet string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParse_CabecerasYConsumos(t *testing.T) {
	buf := workbook(t, "Sheet1", [][]interface{}{
		{"Ref Carga", "Fecha", "Flete", "Precinto", "Duplicado", "CIN-N-001", "FLE-U-010"},
		{"C-1", "2024-01-15", "T1", "1234ABC", "", 900, 0},
		{"C-2", 45306, "T2", "", "sí", "", 3},
		{"", "", "", "", "", "", ""},
	})

	recs, err := sheets.NewLoadParser().Parse(buf)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "C-1", recs[0].RefCarga)
	assert.Equal(t, "2024-01-15", recs[0].Fecha)
	assert.Equal(t, "T1", recs[0].Equipo)
	assert.Equal(t, "1234ABC", recs[0].Matricula)
	assert.Nil(t, recs[0].Duplicado)
	assert.Equal(t, map[string]int64{"CIN-N-001": 900}, recs[0].Consumos)

	assert.Equal(t, "2024-01-15", recs[1].Fecha)
	require.NotNil(t, recs[1].Duplicado)
	assert.True(t, *recs[1].Duplicado)
	assert.Equal(t, map[string]int64{"FLE-U-010": 3}, recs[1].Consumos)
}

func TestParse_PrefiereHojaCargas(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("Cargas")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"otra", "cosa"}))
	require.NoError(t, f.SetSheetRow("Cargas", "A1", &[]interface{}{"ref_carga", "fecha", "SKU-1"}))
	require.NoError(t, f.SetSheetRow("Cargas", "A2", &[]interface{}{"C-9", "2024-03-01", 4}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	recs, err := sheets.NewLoadParser().Parse(buf)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "C-9", recs[0].RefCarga)
	assert.Equal(t, int64(4), recs[0].Consumos["SKU-1"])
}

func TestParse_Errores(t *testing.T) {
	t.Run("sin columna fecha", func(t *testing.T) {
		buf := workbook(t, "Sheet1", [][]interface{}{{"ref_carga", "SKU-1"}, {"C-1", 2}})
		_, err := sheets.NewLoadParser().Parse(buf)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
	t.Run("cantidad no entera", func(t *testing.T) {
		buf := workbook(t, "Sheet1", [][]interface{}{{"ref_carga", "fecha", "SKU-1"}, {"C-1", "2024-01-02", "dos"}})
		_, err := sheets.NewLoadParser().Parse(buf)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), "fila 2")
	})
	t.Run("no es xlsx", func(t *testing.T) {
		_, err := sheets.NewLoadParser().Parse(bytes.NewBufferString("ref_carga,fecha"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
