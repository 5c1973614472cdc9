// Package validation normaliza cuerpos JSON crudos contra un esquema por operación:
// campos requeridos, coerción de tipos (fechas, enteros, decimales), valores por
// defecto y referencias opcionales. Es puro: no hace I/O.
package validation

// Kind tipo primitivo esperado de un campo.
type Kind int

const (
	KindString Kind = iota
	KindEmail
	KindDate
	KindInt
	KindDecimal
	KindBool
	KindEnum
	KindRef        // clave foránea opcional: string recortado, vacío = omitido
	KindObject     // objeto anidado validado con Field.Object
	KindObjectList // lista de objetos validados con Field.Object
)

// Mode distingue creación (requeridos + defaults) de actualización parcial.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

// Field describe un campo del esquema.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// Nullable permite que un null explícito limpie el valor en actualizaciones.
	Nullable bool
	// Default ya normalizado (string, int, decimal.Decimal, bool). Solo en ModeCreate.
	Default     any
	Enum        []string
	MaxLen      int
	Positive    bool // numéricos: > 0
	NonNegative bool // numéricos: >= 0
	Object      *Schema
}

// Schema conjunto fijo de campos de una operación.
type Schema struct {
	Name   string
	Fields []Field
}
