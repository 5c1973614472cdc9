package validation

import (
	"strings"

	"go.uber.org/multierr"

	"github.com/jhoicas/fieldservice-api/internal/domain"
)

// Razones de error por campo.
const (
	ReasonMissing  = "requerido"
	ReasonType     = "tipo inválido"
	ReasonFormat   = "formato inválido"
	ReasonEnum     = "valor no permitido"
	ReasonRange    = "fuera de rango"
	ReasonTooLong  = "demasiado largo"
	ReasonNotNull  = "no admite null"
	ReasonNotEmpty = "no puede estar vacío"
)

// FieldError problema de un campo concreto. Field usa notación de ruta
// (address.street, lineItems[1].quantity).
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// Error agrupa todos los problemas de un payload. errors.Is(err, domain.ErrInvalidInput) es true.
type Error struct {
	errs error
}

func (e *Error) Error() string {
	parts := make([]string, 0)
	for _, fe := range e.Fields() {
		parts = append(parts, fe.Error())
	}
	return domain.ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error { return domain.ErrInvalidInput }

// Fields devuelve los errores por campo en el orden del esquema.
func (e *Error) Fields() []FieldError {
	all := multierr.Errors(e.errs)
	out := make([]FieldError, 0, len(all))
	for _, err := range all {
		if fe, ok := err.(*FieldError); ok {
			out = append(out, *fe)
		}
	}
	return out
}

// Missing devuelve los campos requeridos ausentes.
func (e *Error) Missing() []string {
	var out []string
	for _, fe := range e.Fields() {
		if fe.Reason == ReasonMissing {
			out = append(out, fe.Field)
		}
	}
	return out
}

// NewError construye un *Error a partir de problemas detectados fuera del esquema
// (reglas que cruzan campos, p. ej. fin anterior al inicio).
func NewError(fields ...FieldError) *Error {
	var errs error
	for i := range fields {
		errs = multierr.Append(errs, &fields[i])
	}
	return &Error{errs: errs}
}
