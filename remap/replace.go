package remap

import (
	"fmt"
	"reflect"

	"remapper/internal/match"
)

// ReplaceTransformation converts a source field with a function of the shape
// func(S) D or func(S) (D, error) and writes the result.
type ReplaceTransformation struct {
	rule

	fn      reflect.Value
	skipNil bool
}

func newReplace(r rule, fn any, skipNil bool) *ReplaceTransformation {
	r.kind = KindReplace
	return &ReplaceTransformation{rule: r, fn: reflect.ValueOf(fn), skipNil: skipNil}
}

func (t *ReplaceTransformation) ValidateTransformation() error {
	if !t.fn.IsValid() || t.fn.Kind() != reflect.Func || t.fn.IsNil() {
		return t.invalid("invalid_function", "conversion must be a non-nil function")
	}

	ft := t.fn.Type()

	if ft.NumIn() != 1 || ft.IsVariadic() {
		return t.invalid("invalid_function", "%s must take exactly one argument", ft)
	}

	if !t.source.Type.AssignableTo(ft.In(0)) {
		return t.invalid("invalid_function", "%s cannot accept %s", ft, t.source.Type)
	}

	if ft.NumOut() != 1 && (ft.NumOut() != 2 || ft.Out(1) != errorType) {
		return t.invalid("invalid_function", "%s must return D or (D, error)", ft)
	}

	if !match.Compatibility(ft.Out(0), t.destination.Type).Direct() {
		return t.invalid("incompatible_types", "%s returns %s, which cannot be stored in %s",
			ft, ft.Out(0), t.destination.Type)
	}

	return nil
}

func (t *ReplaceTransformation) PerformTransformation(source, destination reflect.Value) error {
	v, err := t.readOrFail(source)
	if err != nil {
		return err
	}

	if t.skipNil && isNil(v) {
		return nil
	}

	out, err := t.call(v)
	if err != nil {
		return t.fail("conversion failed", err)
	}

	return t.writeOrFail(destination, out)
}

func (t *ReplaceTransformation) call(v reflect.Value) (out reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("%w in %s: %w", ErrConversionPanic, funcName(t.fn), e)
			} else {
				err = fmt.Errorf("%w in %s: %v", ErrConversionPanic, funcName(t.fn), r)
			}
		}
	}()

	results := t.fn.Call([]reflect.Value{v})

	if len(results) == 2 {
		if err, _ := results[1].Interface().(error); err != nil {
			return reflect.Value{}, err
		}
	}

	return results[0], nil
}

func (t *ReplaceTransformation) Describe(detailed bool) string {
	s := t.describe("Replacing", "with", detailed)

	if detailed {
		return s + "\n" + indent("Replacing") + "using function: " + funcName(t.fn) + " (" + funcType(t.fn) + ")"
	}

	return s + " using function " + funcName(t.fn)
}

func (t *ReplaceTransformation) Equal(other Transformation) bool {
	o, ok := other.(*ReplaceTransformation)
	return ok && t.sameAs(other) && t.skipNil == o.skipNil && sameFunc(t.fn, o.fn)
}
