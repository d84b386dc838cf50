// Package period maneja los periodos contables mensuales con formato "YYYY-MM".
package period

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Layout formato canónico de un periodo.
const Layout = "2006-01"

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var titleES = cases.Title(language.Spanish)

// Of devuelve el periodo al que pertenece t.
func Of(t time.Time) string {
	return t.Format(Layout)
}

// FromDate extrae el periodo de una fecha en texto ("2024-01-15" -> "2024-01").
// Acepta cualquier cadena que empiece por un periodo válido.
func FromDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < len(Layout) {
		return "", fmt.Errorf("fecha %q sin periodo", s)
	}
	p := s[:len(Layout)]
	if err := Validate(p); err != nil {
		return "", err
	}
	return p, nil
}

// Validate comprueba que p tenga formato YYYY-MM.
func Validate(p string) error {
	if len(p) != len(Layout) {
		return fmt.Errorf("periodo %q: se espera YYYY-MM", p)
	}
	if _, err := time.Parse(Layout, p); err != nil {
		return fmt.Errorf("periodo %q: se espera YYYY-MM", p)
	}
	return nil
}

// Start devuelve el primer instante del periodo en UTC.
func Start(p string) (time.Time, error) {
	if err := Validate(p); err != nil {
		return time.Time{}, err
	}
	t, _ := time.Parse(Layout, p)
	return t, nil
}

// Bounds devuelve [inicio, fin) del periodo.
func Bounds(p string) (time.Time, time.Time, error) {
	from, err := Start(p)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, from.AddDate(0, 1, 0), nil
}

// After indica si a es posterior a b. Ambos deben estar validados.
func After(a, b string) bool {
	return a > b
}

// Label devuelve la etiqueta legible: "2024-01" -> "2024 - Enero".
// Si p no es válido lo devuelve tal cual.
func Label(p string) string {
	t, err := Start(p)
	if err != nil {
		return p
	}
	return fmt.Sprintf("%d - %s", t.Year(), titleES.String(monthNames[t.Month()-1]))
}
