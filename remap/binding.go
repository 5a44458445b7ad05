package remap

import (
	"fmt"
	"math"
	"reflect"
	"slices"

	"remapper/config"
	"remapper/internal/match"
)

// FromFile builds a Mapper from the mapping for S and D in the YAML mapping
// file at path. Transform names resolve through registry.
func FromFile[S, D any](path string, registry *config.Registry, opts ...Option) (*Mapper[S, D], error) {
	mf, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}

	return FromMappingFile[S, D](mf, registry, opts...)
}

// FromMappingFile builds a Mapper from the mapping for S and D in mf.
func FromMappingFile[S, D any](mf *config.MappingFile, registry *config.Registry, opts ...Option) (*Mapper[S, D], error) {
	source, destination := reflect.TypeFor[S](), reflect.TypeFor[D]()
	for source.Kind() == reflect.Pointer {
		source = source.Elem()
	}

	tm := mf.Find(qualifiedName(source), qualifiedName(destination))
	if tm == nil {
		return nil, fmt.Errorf("%w: no mapping from %s to %s",
			ErrInvalidConfiguration, qualifiedName(source), qualifiedName(destination))
	}

	return NewBuilder[S, D](opts...).Apply(tm, registry).Build()
}

// Apply adds the rules of a mapping file entry. Transform names resolve
// through registry, which may be nil when the entry uses none.
func (b *Builder[S, D]) Apply(tm *config.TypeMapping, registry *config.Registry) *Builder[S, D] {
	if tm == nil {
		b.diags.AddError("missing_mapping", "no type mapping given", b.pair.String(), "")
		return b
	}

	if tm.Implicit != nil {
		b.opts.implicit = *tm.Implicit
	}

	sources := make([]string, 0, len(tm.OneToOne))
	for source := range tm.OneToOne {
		sources = append(sources, source)
	}

	slices.Sort(sources)

	for _, source := range sources {
		b.Reassign(source, tm.OneToOne[source])
	}

	for _, fm := range tm.Fields {
		switch fm.Kind() {
		case config.RulePropertyPath:
			b.PropertyPath(fm.Source, fm.Target, fm.Path)

		case config.RuleTransform:
			fn, ok := registry.Get(fm.Transform)
			if !ok {
				b.diags.AddError("unknown_transform", fmt.Sprintf("transform %q is not registered", fm.Transform),
					b.pair.String(), fm.Target, match.Suggest(fm.Transform, registry.Names(), maxSuggestions)...)

				continue
			}

			var opts []RuleOption
			if fm.SkipNil {
				opts = append(opts, SkipWhenNil())
			}

			b.Replace(fm.Source, fm.Target, fn, opts...)

		case config.RuleDefault:
			b.setLiteral(fm.Target, fm.Default)

		default:
			b.Reassign(fm.Source, fm.Target)
		}
	}

	b.OmitInSource(tm.OmitSource...)
	b.OmitInDestination(tm.OmitTarget...)

	return b
}

// setLiteral adds a Set rule for a YAML literal, converted to the type of
// the destination field.
func (b *Builder[S, D]) setLiteral(destination string, value any) {
	b.steps = append(b.steps, func(st *buildState) {
		dst, ok := b.destinationField(st, destination)
		if !ok {
			return
		}

		v, err := literal(value, dst.Type)
		if err != nil {
			st.diags.AddError("invalid_default", err.Error(), b.pair.String(), destination)
			return
		}

		st.rules = append(st.rules, newSet(b.rule(Field{}, dst), v))
	})
}

// literal converts a decoded YAML scalar to t. Numbers convert between
// numeric kinds when t holds the value exactly; other values convert only
// within their kind.
func literal(value any, t reflect.Type) (any, error) {
	if value == nil {
		return nil, nil
	}

	v := reflect.ValueOf(value)

	switch {
	case v.Type().AssignableTo(t):
		return value, nil
	case isNumber(v.Kind()) && isNumber(t.Kind()):
		return number(v, t)
	case v.Type().ConvertibleTo(t) && v.Kind() == t.Kind():
		return v.Convert(t).Interface(), nil
	case t.Kind() == reflect.Pointer:
		inner, err := literal(value, t.Elem())
		if err != nil {
			return nil, err
		}

		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(reflect.ValueOf(inner))

		return ptr.Interface(), nil
	default:
		return nil, fmt.Errorf("default %v (%T) cannot be stored in %s", value, value, t)
	}
}

// number converts a numeric literal to t, rejecting values t cannot hold
// exactly.
func number(v reflect.Value, t reflect.Type) (any, error) {
	zero := reflect.Zero(t)

	var fits bool

	switch {
	case v.CanInt():
		n := v.Int()

		switch {
		case zero.CanInt():
			fits = !zero.OverflowInt(n)
		case zero.CanUint():
			fits = n >= 0 && !zero.OverflowUint(uint64(n))
		default:
			fits = !zero.OverflowFloat(float64(n))
		}

	case v.CanUint():
		n := v.Uint()

		switch {
		case zero.CanInt():
			fits = n <= math.MaxInt64 && !zero.OverflowInt(int64(n))
		case zero.CanUint():
			fits = !zero.OverflowUint(n)
		default:
			fits = !zero.OverflowFloat(float64(n))
		}

	default:
		f := v.Float()

		if !zero.CanFloat() && f != math.Trunc(f) {
			return nil, fmt.Errorf("default %v is not a whole number and cannot be stored in %s", f, t)
		}

		switch {
		case zero.CanInt():
			fits = f >= math.MinInt64 && f < math.MaxInt64 && !zero.OverflowInt(int64(f))
		case zero.CanUint():
			fits = f >= 0 && f < math.MaxUint64 && !zero.OverflowUint(uint64(f))
		default:
			fits = !zero.OverflowFloat(f)
		}
	}

	if !fits {
		return nil, fmt.Errorf("default %v overflows %s", v.Interface(), t)
	}

	return v.Convert(t).Interface(), nil
}

func isNumber(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}

// qualifiedName renders t as "import/path.Name".
func qualifiedName(t reflect.Type) string {
	if t.PkgPath() == "" {
		return t.String()
	}

	return t.PkgPath() + "." + t.Name()
}
