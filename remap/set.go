package remap

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"remapper/internal/match"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// SetTransformation writes a constant, or the result of a supplier of the
// shape func() D or func() (D, error), to the destination field.
type SetTransformation struct {
	rule

	value    reflect.Value // constant, invalid for nil
	supplier reflect.Value
}

func newSet(r rule, value any) *SetTransformation {
	r.kind = KindSet
	r.source = Field{}

	t := &SetTransformation{rule: r}

	if v := reflect.ValueOf(value); v.Kind() == reflect.Func && r.destination.Type.Kind() != reflect.Func {
		t.supplier = v
	} else {
		t.value = v
	}

	return t
}

func (t *SetTransformation) ValidateTransformation() error {
	if t.supplier.IsValid() {
		st := t.supplier.Type()

		if t.supplier.IsNil() || st.NumIn() != 0 ||
			(st.NumOut() != 1 && (st.NumOut() != 2 || st.Out(1) != errorType)) {
			return t.invalid("invalid_function", "supplier %s must have the shape func() D or func() (D, error)", st)
		}

		if !match.Compatibility(st.Out(0), t.destination.Type).Direct() {
			return t.invalid("incompatible_types", "supplier returns %s, which cannot be stored in %s",
				st.Out(0), t.destination.Type)
		}

		return nil
	}

	if !t.value.IsValid() {
		if !canBeNil(t.destination.Type) {
			return t.invalid("incompatible_types", "nil cannot be stored in %s", t.destination.Type)
		}

		return nil
	}

	if !match.Compatibility(t.value.Type(), t.destination.Type).Direct() {
		return t.invalid("incompatible_types", "%s cannot be stored in %s", t.value.Type(), t.destination.Type)
	}

	return nil
}

func (t *SetTransformation) PerformTransformation(_, destination reflect.Value) error {
	v := t.value

	if t.supplier.IsValid() {
		results := t.supplier.Call(nil)

		if len(results) == 2 {
			if err, _ := results[1].Interface().(error); err != nil {
				return t.fail("supplier failed", err)
			}
		}

		v = results[0]
	}

	return t.writeOrFail(destination, v)
}

func (t *SetTransformation) Describe(detailed bool) string {
	if t.supplier.IsValid() {
		if detailed {
			return fmt.Sprintf("Setting %s\n%susing supplier: %s (%s)",
				t.destination.Detailed(), indent("Setting"), funcName(t.supplier), funcType(t.supplier))
		}

		return fmt.Sprintf("Setting %s using supplier %s", t.destination, funcName(t.supplier))
	}

	if detailed {
		return fmt.Sprintf("Setting %s\n%sto: %s",
			t.destination.Detailed(), indent("Setting"), strings.TrimSpace(dumper.Sdump(t.constant())))
	}

	return fmt.Sprintf("Setting %s to %v", t.destination, t.constant())
}

func (t *SetTransformation) constant() any {
	if !t.value.IsValid() {
		return nil
	}

	return t.value.Interface()
}

func (t *SetTransformation) Equal(other Transformation) bool {
	o, ok := other.(*SetTransformation)
	if !ok || !t.sameAs(other) {
		return false
	}

	if t.supplier.IsValid() || o.supplier.IsValid() {
		return sameFunc(t.supplier, o.supplier)
	}

	return reflect.DeepEqual(t.constant(), o.constant())
}

func canBeNil(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
