// Package patch modela campos de actualizaciones parciales con tres estados:
// ausente (no tocar), nulo (limpiar explícitamente) o con valor.
package patch

type state uint8

const (
	absent state = iota
	null
	set
)

// Value es un campo opcional de un patch. El valor cero es "ausente".
type Value[T any] struct {
	st state
	v  T
}

// Set construye un campo presente con valor.
func Set[T any](v T) Value[T] {
	return Value[T]{st: set, v: v}
}

// Null construye un campo presente que pide limpiar el valor almacenado.
func Null[T any]() Value[T] {
	return Value[T]{st: null}
}

// IsSet informa si el campo trae un valor.
func (p Value[T]) IsSet() bool { return p.st == set }

// IsNull informa si el campo pide limpiar el valor.
func (p Value[T]) IsNull() bool { return p.st == null }

// IsPresent informa si el caller envió el campo (con valor o nulo).
func (p Value[T]) IsPresent() bool { return p.st != absent }

// Get devuelve el valor y si estaba definido.
func (p Value[T]) Get() (T, bool) {
	return p.v, p.st == set
}

// OrElse devuelve el valor o def si el campo no trae valor.
func (p Value[T]) OrElse(def T) T {
	if p.st == set {
		return p.v
	}
	return def
}

// Apply escribe el campo sobre dst: valor si está definido, cero si es nulo.
// Un campo ausente no modifica dst.
func (p Value[T]) Apply(dst *T) {
	switch p.st {
	case set:
		*dst = p.v
	case null:
		var zero T
		*dst = zero
	}
}

// ApplyPtr escribe el campo sobre una referencia opcional: nil si es nulo.
func (p Value[T]) ApplyPtr(dst **T) {
	switch p.st {
	case set:
		v := p.v
		*dst = &v
	case null:
		*dst = nil
	}
}

// Ptr devuelve un puntero al valor, o nil si no está definido.
func (p Value[T]) Ptr() *T {
	if p.st != set {
		return nil
	}
	v := p.v
	return &v
}
