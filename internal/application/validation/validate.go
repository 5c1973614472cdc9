package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// Formatos de fecha aceptados, en orden.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Validate normaliza raw contra el esquema. Devuelve *Error con todos los problemas
// encontrados, o el payload normalizado.
func (s *Schema) Validate(raw map[string]any, mode Mode) (*Payload, error) {
	p, errs := s.validate(raw, mode, "")
	if errs != nil {
		return nil, &Error{errs: errs}
	}
	return p, nil
}

func (s *Schema) validate(raw map[string]any, mode Mode, prefix string) (*Payload, error) {
	p := newPayload()
	var errs error
	for i := range s.Fields {
		f := &s.Fields[i]
		path := prefix + f.Name
		v, present := raw[f.Name]

		if present && v == nil {
			switch {
			case f.Nullable && mode == ModeUpdate:
				p.nulls[f.Name] = true
				continue
			case f.Nullable || (!f.Required && mode == ModeCreate):
				present = false
			case f.Required && mode == ModeCreate:
				errs = multierr.Append(errs, &FieldError{Field: path, Reason: ReasonMissing})
				continue
			default:
				errs = multierr.Append(errs, &FieldError{Field: path, Reason: ReasonNotNull})
				continue
			}
		}

		if !present {
			if mode == ModeCreate {
				if f.Required {
					errs = multierr.Append(errs, &FieldError{Field: path, Reason: ReasonMissing})
				} else if f.Default != nil {
					p.values[f.Name] = f.Default
				}
			}
			continue
		}

		norm, omit, err := f.coerce(v, mode, path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if omit {
			if mode == ModeCreate && f.Required {
				errs = multierr.Append(errs, &FieldError{Field: path, Reason: ReasonMissing})
			} else if mode == ModeCreate && f.Default != nil {
				p.values[f.Name] = f.Default
			}
			continue
		}
		p.values[f.Name] = norm
	}
	return p, errs
}

// coerce convierte v al tipo del campo. omit=true indica que el valor debe tratarse
// como ausente (strings vacíos en referencias y opcionales de creación).
func (f *Field) coerce(v any, mode Mode, path string) (norm any, omit bool, err error) {
	fail := func(reason string) (any, bool, error) {
		return nil, false, &FieldError{Field: path, Reason: reason}
	}

	switch f.Kind {
	case KindString, KindEmail, KindRef, KindEnum:
		s, ok := v.(string)
		if !ok {
			return fail(ReasonType)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			switch {
			case f.Kind == KindRef:
				return nil, true, nil
			case f.Required && mode == ModeUpdate:
				return fail(ReasonNotEmpty)
			case mode == ModeCreate:
				return nil, true, nil
			case f.Kind == KindEnum:
				return fail(ReasonEnum)
			}
			return "", false, nil
		}
		if f.MaxLen > 0 && len(s) > f.MaxLen {
			return fail(ReasonTooLong)
		}
		switch f.Kind {
		case KindEmail:
			addr, perr := mail.ParseAddress(s)
			if perr != nil || addr.Address != s {
				return fail(ReasonFormat)
			}
			return strings.ToLower(s), false, nil
		case KindEnum:
			for _, e := range f.Enum {
				if strings.EqualFold(e, s) {
					return e, false, nil
				}
			}
			return fail(ReasonEnum)
		}
		return s, false, nil

	case KindDate:
		s, ok := v.(string)
		if !ok {
			return fail(ReasonType)
		}
		t, perr := ParseDate(s)
		if perr != nil {
			return fail(ReasonFormat)
		}
		return t, false, nil

	case KindInt:
		n, perr := toInt(v)
		if errors.Is(perr, errIntRange) {
			return fail(ReasonRange)
		}
		if perr != nil {
			return fail(ReasonType)
		}
		if (f.Positive && n <= 0) || (f.NonNegative && n < 0) {
			return fail(ReasonRange)
		}
		return n, false, nil

	case KindDecimal:
		d, perr := toDecimal(v)
		if perr != nil {
			return fail(ReasonType)
		}
		if (f.Positive && !d.IsPositive()) || (f.NonNegative && d.IsNegative()) {
			return fail(ReasonRange)
		}
		return d, false, nil

	case KindBool:
		switch b := v.(type) {
		case bool:
			return b, false, nil
		case string:
			pb, perr := strconv.ParseBool(strings.TrimSpace(b))
			if perr != nil {
				return fail(ReasonType)
			}
			return pb, false, nil
		}
		return fail(ReasonType)

	case KindObject:
		m, ok := v.(map[string]any)
		if !ok {
			return fail(ReasonType)
		}
		child, cerr := f.Object.validate(m, ModeCreate, path+".")
		if cerr != nil {
			return nil, false, cerr
		}
		return child, false, nil

	case KindObjectList:
		list, ok := v.([]any)
		if !ok {
			return fail(ReasonType)
		}
		if len(list) == 0 && f.Required {
			return fail(ReasonMissing)
		}
		out := make([]*Payload, 0, len(list))
		var errs error
		for i, item := range list {
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			m, ok := item.(map[string]any)
			if !ok {
				errs = multierr.Append(errs, &FieldError{Field: itemPath, Reason: ReasonType})
				continue
			}
			child, cerr := f.Object.validate(m, ModeCreate, itemPath+".")
			if cerr != nil {
				errs = multierr.Append(errs, cerr)
				continue
			}
			out = append(out, child)
		}
		if errs != nil {
			return nil, false, errs
		}
		return out, false, nil
	}
	return fail(ReasonType)
}

// ParseDate acepta RFC3339, fecha-hora sin zona (UTC) y fecha simple.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha inválida: %q", s)
}

// errIntRange entero bien formado pero fuera del rango de int.
var errIntRange = errors.New("entero fuera de rango")

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return intFrom64(i)
		}
		f, err := n.Float64()
		if errors.Is(err, strconv.ErrRange) {
			return 0, errIntRange
		}
		if err != nil {
			return 0, fmt.Errorf("entero inválido: %s", n)
		}
		return intFromFloat(f)
	case float64:
		return intFromFloat(n)
	case int:
		return n, nil
	case int64:
		return intFrom64(n)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			return 0, errIntRange
		}
		if err != nil {
			return 0, err
		}
		return intFrom64(i)
	}
	return 0, fmt.Errorf("entero inválido: %T", v)
}

func intFromFloat(f float64) (int, error) {
	if math.IsNaN(f) || f != math.Trunc(f) {
		return 0, fmt.Errorf("entero inválido: %v", f)
	}
	// float64(math.MaxInt) redondea hacia arriba: el límite superior es exclusivo.
	if f < math.MinInt || f >= math.MaxInt {
		return 0, errIntRange
	}
	return int(f), nil
}

func intFrom64(i int64) (int, error) {
	if i < math.MinInt || i > math.MaxInt {
		return 0, errIntRange
	}
	return int(i), nil
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case json.Number:
		return decimal.NewFromString(n.String())
	case float64:
		return decimal.NewFromFloat(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case string:
		return decimal.NewFromString(strings.TrimSpace(n))
	}
	return decimal.Zero, fmt.Errorf("decimal inválido: %T", v)
}
