package entity

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Ubicaciones del sistema: se crean al arrancar y no se pueden eliminar.
const (
	LocationMainStore          = "Main Store"
	LocationProductionFacility = "Production Facility"
)

// Tipos de ubicación.
const (
	LocationKindStore    = "store"
	LocationKindFacility = "facility"
)

// Location es un sitio que mantiene stock: una tienda o una planta de producción.
type Location struct {
	ID        string
	Name      string
	NameKey   string // nombre normalizado, único
	Kind      string
	Address   string
	IsSystem  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LocationNameKey normaliza un nombre de ubicación para compararlo sin importar
// mayúsculas, tildes compuestas ni espacios repetidos.
func LocationNameKey(name string) string {
	folded := cases.Fold().String(strings.TrimSpace(name))
	return strings.Join(strings.Fields(folded), " ")
}

// IsFacility indica si la ubicación es una planta de producción.
func (l *Location) IsFacility() bool {
	return l.Kind == LocationKindFacility
}
