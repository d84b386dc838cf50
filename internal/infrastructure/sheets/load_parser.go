// Package sheets lee la hoja de cargas exportada de Google Sheets (.xlsx) y la convierte
// en registros de sincronización.
package sheets

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/envos-stock/internal/application/dto"
	"github.com/jhoicas/envos-stock/internal/domain"
)

// PreferredSheet nombre de la pestaña de cargas. Si no existe se usa la primera.
const PreferredSheet = "Cargas"

const (
	colRef        = "ref_carga"
	colDate       = "fecha"
	colEquipment  = "equipo"
	colPlate      = "matricula"
	colDuplicate  = "duplicado"
	colModified   = "modificada"
	dateLayoutOut = "2006-01-02"
)

// headerAliases normaliza cabeceras habituales de la hoja a la columna interna.
var headerAliases = map[string]string{
	"ref_carga":  colRef,
	"ref carga":  colRef,
	"referencia": colRef,
	"fecha":      colDate,
	"equipo":     colEquipment,
	"flete":      colEquipment,
	"matricula":  colPlate,
	"matrícula":  colPlate,
	"precinto":   colPlate,
	"duplicado":  colDuplicate,
	"modificada": colModified,
}

// LoadParser convierte un libro .xlsx en registros de carga.
// Fila 1 = cabeceras; toda cabecera no reconocida es un SKU con su consumo.
type LoadParser struct{}

// NewLoadParser construye el parser.
func NewLoadParser() *LoadParser {
	return &LoadParser{}
}

// Parse lee el libro completo. Errores de formato devuelven domain.ErrInvalidInput con la fila.
func (p *LoadParser) Parse(r io.Reader) ([]dto.SyncLoadRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("leer xlsx: %v: %w", err, domain.ErrInvalidInput)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("el libro no tiene hojas: %w", domain.ErrInvalidInput)
	}
	sheet := sheets[0]
	for _, s := range sheets {
		if strings.EqualFold(s, PreferredSheet) {
			sheet = s
			break
		}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("leer hoja %s: %v: %w", sheet, err, domain.ErrInvalidInput)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("hoja %s vacía: %w", sheet, domain.ErrInvalidInput)
	}

	header := make([]string, len(rows[0]))
	hasRef, hasDate := false, false
	for i, h := range rows[0] {
		name := strings.TrimSpace(h)
		if col, ok := headerAliases[strings.ToLower(name)]; ok {
			name = col
		}
		header[i] = name
		hasRef = hasRef || name == colRef
		hasDate = hasDate || name == colDate
	}
	if !hasRef || !hasDate {
		return nil, fmt.Errorf("faltan columnas ref_carga/fecha: %w", domain.ErrInvalidInput)
	}

	var out []dto.SyncLoadRecord
	for i, row := range rows[1:] {
		rec, ok, err := parseRow(header, row)
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", i+2, err)
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// parseRow devuelve ok=false para filas sin ref_carga (huecos de la hoja).
func parseRow(header, row []string) (dto.SyncLoadRecord, bool, error) {
	rec := dto.SyncLoadRecord{Consumos: map[string]int64{}}
	for i, raw := range row {
		if i >= len(header) || header[i] == "" {
			continue
		}
		val := strings.TrimSpace(raw)
		switch header[i] {
		case colRef:
			rec.RefCarga = val
		case colDate:
			d, err := cellDate(val)
			if err != nil {
				return rec, false, err
			}
			rec.Fecha = d
		case colEquipment:
			rec.Equipo = val
		case colPlate:
			rec.Matricula = val
		case colDuplicate:
			rec.Duplicado = cellBool(val)
		case colModified:
			rec.Modificada = cellBool(val)
		default:
			if val == "" {
				continue
			}
			qty, err := cellQuantity(val)
			if err != nil {
				return rec, false, fmt.Errorf("sku %s: %w", header[i], err)
			}
			if qty > 0 {
				rec.Consumos[header[i]] = qty
			}
		}
	}
	if rec.RefCarga == "" {
		return rec, false, nil
	}
	return rec, true, nil
}

// cellDate acepta número de serie de Excel o texto; el texto lo valida la ingesta.
func cellDate(val string) (string, error) {
	if val == "" {
		return "", nil
	}
	serial, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return val, nil
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return "", fmt.Errorf("fecha %q: %v: %w", val, err, domain.ErrInvalidInput)
	}
	return t.Format(dateLayoutOut), nil
}

func cellQuantity(val string) (int64, error) {
	f, err := strconv.ParseFloat(val, 64)
	if err != nil || f < 0 || f != float64(int64(f)) {
		return 0, fmt.Errorf("cantidad %q no es un entero >= 0: %w", val, domain.ErrInvalidInput)
	}
	return int64(f), nil
}

// cellBool nil = celda vacía (se conserva el valor previo de la carga).
func cellBool(val string) *bool {
	switch strings.ToLower(val) {
	case "":
		return nil
	case "1", "true", "verdadero", "si", "sí", "x", "yes":
		b := true
		return &b
	default:
		b := false
		return &b
	}
}
