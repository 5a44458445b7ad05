package remap

import (
	"fmt"
	"reflect"
)

// NestedMapper maps struct values of one type to another. It is implemented
// by *Mapper and *Mapping and registered on a Builder with UseMapper.
type NestedMapper interface {
	fmt.Stringer

	mappingName() string
	sourceStruct() reflect.Type
	destinationStruct() reflect.Type
	mapStruct(src reflect.Value) (reflect.Value, error)
}

// shape is how a field type wraps the struct type a nested mapper handles.
type shape int

const (
	shapeNone shape = iota
	shapeValue
	shapePointer
	shapeSlice
	shapePointerSlice
)

func shapeOf(t, base reflect.Type) shape {
	switch {
	case t == base:
		return shapeValue
	case t.Kind() == reflect.Pointer && t.Elem() == base:
		return shapePointer
	case t.Kind() == reflect.Slice && t.Elem() == base:
		return shapeSlice
	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Pointer && t.Elem().Elem() == base:
		return shapePointerSlice
	default:
		return shapeNone
	}
}

func (s shape) single() bool { return s == shapeValue || s == shapePointer }

func (s shape) many() bool { return s == shapeSlice || s == shapePointerSlice }

// fits reports whether a nested mapper can carry a field of type source into
// a field of type destination.
func fits(m NestedMapper, source, destination reflect.Type) bool {
	from, to := shapeOf(source, m.sourceStruct()), shapeOf(destination, m.destinationStruct())
	return (from.single() && to.single()) || (from.many() && to.many())
}

// NestedTransformation maps a struct-typed field (T, *T, []T or []*T)
// through another mapper. The nested value is always freshly allocated, so
// mapping into an existing destination replaces the nested value instead of
// merging into it.
type NestedTransformation struct {
	rule

	mapper NestedMapper
}

func newNested(r rule, mapper NestedMapper) *NestedTransformation {
	r.kind = KindNested
	return &NestedTransformation{rule: r, mapper: mapper}
}

func (t *NestedTransformation) ValidateTransformation() error {
	if t.mapper == nil {
		return t.invalid("missing_mapper", "no mapper for %s -> %s", t.source.Type, t.destination.Type)
	}

	if !fits(t.mapper, t.source.Type, t.destination.Type) {
		return t.invalid("incompatible_types", "mapper %s cannot map %s to %s",
			t.mapper.mappingName(), t.source.Type, t.destination.Type)
	}

	return nil
}

func (t *NestedTransformation) PerformTransformation(source, destination reflect.Value) error {
	v, err := t.readOrFail(source)
	if err != nil {
		return err
	}

	out, err := t.convert(v, t.destination.Type)
	if err != nil {
		return err
	}

	return t.writeOrFail(destination, out)
}

func (t *NestedTransformation) convert(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	if isNil(v) {
		return reflect.Zero(to), nil
	}

	if to.Kind() != reflect.Slice {
		out, err := t.element(v, to)
		if err != nil {
			return reflect.Value{}, t.fail("nested mapping failed", err)
		}

		return out, nil
	}

	out := reflect.MakeSlice(to, v.Len(), v.Len())

	for i := range v.Len() {
		elem, err := t.element(v.Index(i), to.Elem())
		if err != nil {
			return reflect.Value{}, t.fail(fmt.Sprintf("nested mapping failed at index %d", i), err)
		}

		out.Index(i).Set(elem)
	}

	return out, nil
}

// element maps one struct or pointer to struct into a value of type to.
func (t *NestedTransformation) element(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	if isNil(v) {
		return reflect.Zero(to), nil
	}

	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	mapped, err := t.mapper.mapStruct(v)
	if err != nil {
		return reflect.Value{}, err
	}

	if to.Kind() != reflect.Pointer {
		return mapped, nil
	}

	ptr := reflect.New(to.Elem())
	ptr.Elem().Set(mapped)

	return ptr, nil
}

func (t *NestedTransformation) Describe(detailed bool) string {
	name := "<none>"
	if t.mapper != nil {
		name = t.mapper.mappingName()
	}

	s := t.describe("Mapping", "to", detailed)

	if detailed {
		return s + "\n" + indent("Mapping") + "using mapper: " + name
	}

	return s + " using mapper " + name
}

func (t *NestedTransformation) Equal(other Transformation) bool {
	o, ok := other.(*NestedTransformation)
	return ok && t.sameAs(other) && t.mapper == o.mapper
}
