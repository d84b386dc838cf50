package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"
)

// OperationalLoad carga operativa sincronizada desde la hoja externa.
// RefCarga es también el load_uid usado en facturación.
type OperationalLoad struct {
	RefCarga            string
	Date                time.Time
	Equipment           string // flete
	Plate               string // precinto / matrícula
	Consumptions        map[string]int64
	Duplicate           bool
	Modified            bool
	OriginalFingerprint string
	UpdatedAt           time.Time
}

// Month devuelve el periodo (YYYY-MM) de la carga.
func (l OperationalLoad) Month() string {
	return l.Date.Format("2006-01")
}

// SortedSKUs devuelve los SKU de la carga en orden estable.
func (l OperationalLoad) SortedSKUs() []string {
	skus := make([]string, 0, len(l.Consumptions))
	for sku := range l.Consumptions {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	return skus
}

// Fingerprint huella determinista de los consumos con cantidad > 0.
func (l OperationalLoad) Fingerprint() string {
	var b strings.Builder
	for _, sku := range l.SortedSKUs() {
		qty := l.Consumptions[sku]
		if qty <= 0 {
			continue
		}
		b.WriteString(sku)
		b.WriteByte('=')
		b.WriteString(strconv.FormatInt(qty, 10))
		b.WriteByte(';')
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
