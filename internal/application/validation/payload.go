package validation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fieldservice-api/pkg/patch"
)

// Payload resultado normalizado de Validate. Cada accesor distingue
// ausente / null explícito / valor.
type Payload struct {
	values map[string]any
	nulls  map[string]bool
}

func newPayload() *Payload {
	return &Payload{values: map[string]any{}, nulls: map[string]bool{}}
}

// Has indica si el campo quedó en el payload (con valor o null).
func (p *Payload) Has(name string) bool {
	_, ok := p.values[name]
	return ok || p.nulls[name]
}

func value[T any](p *Payload, name string) patch.Value[T] {
	if p == nil {
		return patch.Value[T]{}
	}
	if p.nulls[name] {
		return patch.Null[T]()
	}
	if v, ok := p.values[name].(T); ok {
		return patch.Set(v)
	}
	return patch.Value[T]{}
}

// String para KindString, KindEmail, KindEnum y KindRef.
func (p *Payload) String(name string) patch.Value[string] { return value[string](p, name) }

// Time para KindDate.
func (p *Payload) Time(name string) patch.Value[time.Time] { return value[time.Time](p, name) }

// Int para KindInt.
func (p *Payload) Int(name string) patch.Value[int] { return value[int](p, name) }

// Decimal para KindDecimal.
func (p *Payload) Decimal(name string) patch.Value[decimal.Decimal] {
	return value[decimal.Decimal](p, name)
}

// Bool para KindBool.
func (p *Payload) Bool(name string) patch.Value[bool] { return value[bool](p, name) }

// Object para KindObject; nil si ausente.
func (p *Payload) Object(name string) *Payload {
	if p == nil {
		return nil
	}
	child, _ := p.values[name].(*Payload)
	return child
}

// Objects para KindObjectList.
func (p *Payload) Objects(name string) patch.Value[[]*Payload] { return value[[]*Payload](p, name) }
