package remap

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"go.uber.org/zap"

	"remapper/internal/access"
	"remapper/internal/diagnostic"
	"remapper/internal/match"
	"remapper/internal/propertypath"
)

// maxSuggestions bounds the "did you mean" candidates per unknown field.
const maxSuggestions = 3

// Builder collects the rules of a mapping from S to D. S must be a struct
// type or a pointer to one and D a struct type.
//
// Rule methods only record the request; fields are resolved and rules are
// checked by Build, so UseMapper may be called in any order. Every problem is
// reported by Build at once.
type Builder[S, D any] struct {
	opts    options
	pair    pair
	source  reflect.Type
	steps   []func(*buildState)
	mappers []NestedMapper
	diags   diagnostic.Diagnostics
}

// buildState is the output of one Build call.
type buildState struct {
	rules []Transformation
	diags diagnostic.Diagnostics
}

// NewBuilder starts a mapping configuration from S to D.
func NewBuilder[S, D any](opts ...Option) *Builder[S, D] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	source := reflect.TypeFor[S]()
	base := source
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}

	destination := reflect.TypeFor[D]()

	b := &Builder[S, D]{
		opts:   o,
		pair:   pair{source: base, destination: destination},
		source: source,
	}

	if base.Kind() != reflect.Struct {
		b.diags.AddError("not_struct", fmt.Sprintf("source type %s is not a struct or pointer to struct", source),
			b.pair.String(), "")
	}

	if destination.Kind() != reflect.Struct {
		b.diags.AddError("not_struct", fmt.Sprintf("destination type %s is not a struct", destination),
			b.pair.String(), "")
	}

	if b.opts.name == "" {
		b.opts.name = b.pair.String()
	}

	return b
}

// Reassign copies the source field into the destination field. Struct-typed
// fields are mapped with a registered mapper when the types differ.
func (b *Builder[S, D]) Reassign(source, destination string) *Builder[S, D] {
	b.steps = append(b.steps, func(st *buildState) {
		src, srcOK := b.sourceField(st, source)
		dst, dstOK := b.destinationField(st, destination)

		if srcOK && dstOK {
			st.rules = append(st.rules, b.reassign(src, dst))
		}
	})

	return b
}

// Replace converts the source field with fn, a func(S) D or
// func(S) (D, error), and writes the result into the destination field.
func (b *Builder[S, D]) Replace(source, destination string, fn any, opts ...RuleOption) *Builder[S, D] {
	var ro ruleOptions
	for _, opt := range opts {
		opt(&ro)
	}

	b.steps = append(b.steps, func(st *buildState) {
		src, srcOK := b.sourceField(st, source)
		dst, dstOK := b.destinationField(st, destination)

		if srcOK && dstOK {
			st.rules = append(st.rules, newReplace(b.rule(src, dst), fn, ro.skipNil))
		}
	})

	return b
}

// PropertyPath evaluates expr on the value of the source field and writes the
// result, if any, into the destination field. A path yielding *T may feed a
// destination of type T.
func (b *Builder[S, D]) PropertyPath(source, destination, expr string) *Builder[S, D] {
	b.steps = append(b.steps, func(st *buildState) {
		src, srcOK := b.sourceField(st, source)
		dst, dstOK := b.destinationField(st, destination)

		if !srcOK || !dstOK {
			return
		}

		path, err := propertypath.Compile(src.Type, expr)
		if err != nil {
			st.diags.AddError("invalid_property_path", err.Error(), b.pair.String(), destination)
			return
		}

		var deref bool

		switch result := path.Result(); {
		case match.Compatibility(result, dst.Type).Direct():
		case result.Kind() == reflect.Pointer && match.Compatibility(result.Elem(), dst.Type).Direct():
			deref = true
		default:
			st.diags.AddError("incompatible_types",
				fmt.Sprintf("property path %s yields %s, which cannot be stored in %s", path, result, dst.Type),
				b.pair.String(), destination)

			return
		}

		st.rules = append(st.rules, newPropertyPath(b.rule(src, dst), path, deref))
	})

	return b
}

// Set writes value into the destination field on every mapping. A function
// value of the shape func() D or func() (D, error) is called instead, unless
// the destination field itself holds functions.
func (b *Builder[S, D]) Set(destination string, value any) *Builder[S, D] {
	b.steps = append(b.steps, func(st *buildState) {
		if dst, ok := b.destinationField(st, destination); ok {
			st.rules = append(st.rules, newSet(b.rule(Field{}, dst), value))
		}
	})

	return b
}

// OmitInSource marks source fields as intentionally not read.
func (b *Builder[S, D]) OmitInSource(names ...string) *Builder[S, D] {
	b.steps = append(b.steps, func(st *buildState) {
		for _, name := range names {
			if src, ok := b.sourceField(st, name); ok {
				st.rules = append(st.rules, newOmitInSource(b.rule(src, Field{})))
			}
		}
	})

	return b
}

// OmitInDestination marks destination fields as intentionally not written.
func (b *Builder[S, D]) OmitInDestination(names ...string) *Builder[S, D] {
	b.steps = append(b.steps, func(st *buildState) {
		for _, name := range names {
			if dst, ok := b.destinationField(st, name); ok {
				st.rules = append(st.rules, newOmitInDestination(b.rule(Field{}, dst)))
			}
		}
	})

	return b
}

// UseMapper registers a mapper for struct-typed fields. Reassigned and
// implicitly matched fields of the mapper's types (T, *T, []T, []*T) are
// mapped through it.
func (b *Builder[S, D]) UseMapper(m NestedMapper) *Builder[S, D] {
	if v := reflect.ValueOf(m); m == nil || (v.Kind() == reflect.Pointer && v.IsNil()) {
		b.diags.AddError("missing_mapper", "UseMapper called with a nil mapper", b.pair.String(), "")
		return b
	}

	b.mappers = append(b.mappers, m)

	return b
}

// Build resolves and validates every rule. It returns a *ConfigurationError
// listing every problem, or a ready Mapper. The Builder may be built again
// and yields an independent Mapper each time.
func (b *Builder[S, D]) Build() (*Mapper[S, D], error) {
	st := &buildState{
		diags: diagnostic.Diagnostics{
			Errors:   slices.Clone(b.diags.Errors),
			Warnings: slices.Clone(b.diags.Warnings),
		},
	}

	if !st.diags.HasErrors() {
		for _, step := range b.steps {
			step(st)
		}

		if b.opts.implicit {
			b.implicit(st)
		}

		b.checkDuplicates(st)

		for _, t := range st.rules {
			if err := t.ValidateTransformation(); err != nil {
				b.addProblem(st, t, err)
			}
		}
	}

	logger := b.opts.logger.With(zap.String("mapping", b.opts.name))

	if st.diags.HasErrors() {
		logger.Debug("mapping rejected", zap.Strings("problems", st.diags.Problems()))
		return nil, newConfigurationError(b.pair.source, b.pair.destination, &st.diags)
	}

	for _, w := range st.diags.Warnings {
		logger.Debug("mapping warning", zap.String("warning", w.String()))
	}

	mapping := &Mapping[S, D]{
		name:        b.opts.name,
		source:      b.source,
		base:        b.pair.source,
		destination: b.pair.destination,
		rules:       st.rules,
		logger:      logger,
	}

	if ce := logger.Check(zap.DebugLevel, "mapping built"); ce != nil {
		ce.Write(zap.Int("rules", len(mapping.rules)), zap.Stringer("description", mapping))
	}

	return &Mapper[S, D]{mapping: mapping}, nil
}

func (b *Builder[S, D]) rule(source, destination Field) rule {
	return newRule(KindReassign, b.pair, source, destination, b.opts.logger)
}

func (b *Builder[S, D]) reassign(src, dst Field) Transformation {
	if !match.Compatibility(src.Type, dst.Type).Direct() {
		if m := b.findMapper(src.Type, dst.Type); m != nil {
			return newNested(b.rule(src, dst), m)
		}
	}

	return newReassign(b.rule(src, dst))
}

func (b *Builder[S, D]) findMapper(source, destination reflect.Type) NestedMapper {
	for _, m := range b.mappers {
		if fits(m, source, destination) {
			return m
		}
	}

	return nil
}

// implicit adds reassign rules for destination fields no rule covers.
func (b *Builder[S, D]) implicit(st *buildState) {
	covered := make(map[string]bool)
	omitted := make(map[string]bool)

	for _, t := range st.rules {
		if f := t.DestinationField(); !f.IsZero() {
			covered[f.Name] = true
		}

		if t.Kind() == KindOmitInSource {
			omitted[t.SourceField().Name] = true
		}
	}

	for _, dst := range access.Fields(b.pair.destination) {
		if covered[dst.Name] {
			continue
		}

		src, err := access.Resolve(b.pair.source, dst.Name)
		if err != nil || omitted[dst.Name] {
			st.diags.AddWarning("unmapped_destination", "no rule writes this field", b.pair.String(), dst.Name)
			continue
		}

		if match.Compatibility(src.Type, dst.Type).Direct() || b.findMapper(src.Type, dst.Type) != nil {
			st.rules = append(st.rules, b.reassign(src, dst))
			continue
		}

		st.diags.AddWarning("unmapped_destination",
			fmt.Sprintf("source field of type %s is not compatible with %s", src.Type, dst.Type),
			b.pair.String(), dst.Name)
	}
}

// checkDuplicates reports rules configured twice and destination fields
// written (or omitted) by more than one rule.
func (b *Builder[S, D]) checkDuplicates(st *buildState) {
	for i, t := range st.rules {
		for _, prev := range st.rules[:i] {
			if t.Equal(prev) {
				st.diags.AddError("duplicate_rule", "rule is configured twice: "+t.Describe(false),
					b.pair.String(), fieldName(t))

				break
			}

			if conflicts(t, prev) {
				st.diags.AddError("conflicting_rule",
					fmt.Sprintf("%q conflicts with %q", t.Describe(false), prev.Describe(false)),
					b.pair.String(), fieldName(t))

				break
			}
		}
	}
}

func conflicts(a, b Transformation) bool {
	if da, db := a.DestinationField(), b.DestinationField(); !da.IsZero() && da.Equal(db) {
		return true
	}

	sa, sb := a.SourceField(), b.SourceField()
	if sa.IsZero() || !sa.Equal(sb) {
		return false
	}

	return (a.Kind() == KindOmitInSource) != (b.Kind() == KindOmitInSource)
}

func fieldName(t Transformation) string {
	if f := t.DestinationField(); !f.IsZero() {
		return f.Name
	}

	return t.SourceField().Name
}

func (b *Builder[S, D]) addProblem(st *buildState, t Transformation, err error) {
	var ce *ConfigurationError
	if errors.As(err, &ce) {
		st.diags.Errors = append(st.diags.Errors, ce.Diagnostics()...)
		return
	}

	st.diags.AddError("invalid_rule", err.Error(), b.pair.String(), fieldName(t))
}

func (b *Builder[S, D]) sourceField(st *buildState, name string) (Field, bool) {
	return b.field(st, "source", b.pair.source, name)
}

func (b *Builder[S, D]) destinationField(st *buildState, name string) (Field, bool) {
	return b.field(st, "destination", b.pair.destination, name)
}

func (b *Builder[S, D]) field(st *buildState, side string, owner reflect.Type, name string) (Field, bool) {
	f, err := access.Resolve(owner, name)
	if err == nil {
		return f, true
	}

	if errors.Is(err, access.ErrUnexported) {
		st.diags.AddError("unexported_field",
			fmt.Sprintf("%s field %q of %s is not exported", side, name, access.TypeName(owner)),
			b.pair.String(), name)

		return Field{}, false
	}

	st.diags.AddError("unknown_field",
		fmt.Sprintf("%s type %s has no field %q", side, access.TypeName(owner), name),
		b.pair.String(), name, match.Suggest(name, access.Names(owner), maxSuggestions)...)

	return Field{}, false
}
