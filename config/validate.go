package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"remapper/internal/analyze"
	"remapper/internal/diagnostic"
	"remapper/internal/match"
	"remapper/internal/propertypath"
)

const maxSuggestions = 3

// Validate checks a mapping file against the types of the loaded packages.
// It is a structural check: field and type names, property path shapes and
// transform declarations. Type compatibility of the rules is checked when a
// Mapper is built from the file.
func Validate(mf *MappingFile, graph *analyze.TypeGraph) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if mf == nil {
		res.AddError("mapping_is_nil", "mapping file is nil", "", "")
		return res
	}

	if graph == nil {
		res.AddError("graph_is_nil", "type graph is nil", "", "")
		return res
	}

	validateTransforms(res, mf)

	seenPairs := map[[2]analyze.TypeID]struct{}{}

	for i := range mf.TypeMappings {
		tm := &mf.TypeMappings[i]

		src := resolveStruct(res, tm, tm.Source, "source", graph)
		dst := resolveStruct(res, tm, tm.Target, "target", graph)

		if src == nil || dst == nil {
			continue
		}

		key := [2]analyze.TypeID{src.ID, dst.ID}
		if _, ok := seenPairs[key]; ok {
			res.AddError("duplicate_mapping",
				fmt.Sprintf("mapping from %s to %s is defined more than once", src.ID.Short(), dst.ID.Short()),
				tm.Pair(), "")

			continue
		}

		seenPairs[key] = struct{}{}

		validateTypeMapping(res, mf, tm, src, dst)
	}

	return res
}

func validateTransforms(res *diagnostic.Diagnostics, mf *MappingFile) {
	seen := map[string]struct{}{}

	for _, t := range mf.Transforms {
		if t.Name == "" {
			res.AddError("invalid_transform", "transform without a name", "", "")
			continue
		}

		if _, ok := seen[t.Name]; ok {
			res.AddError("duplicate_transform", fmt.Sprintf("duplicate transform %q", t.Name), "", t.Name)
			continue
		}

		seen[t.Name] = struct{}{}
	}
}

// resolveStruct resolves a type identifier of a mapping and checks that it
// names a struct.
func resolveStruct(res *diagnostic.Diagnostics, tm *TypeMapping, id, side string, graph *analyze.TypeGraph) *analyze.TypeInfo {
	info := ResolveTypeID(id, graph)
	if info == nil {
		res.AddError("unknown_type", fmt.Sprintf("%s type %q not found", side, id),
			tm.Pair(), id, match.Suggest(id, TypeNames(graph), maxSuggestions)...)

		return nil
	}

	if info.Kind != analyze.TypeKindStruct {
		res.AddError("not_struct", fmt.Sprintf("%s type %s is a %s, not a struct", side, info.ID.Short(), info.Kind),
			tm.Pair(), id)

		return nil
	}

	return info
}

func validateTypeMapping(res *diagnostic.Diagnostics, mf *MappingFile, tm *TypeMapping, src, dst *analyze.TypeInfo) {
	pair := tm.Pair()

	sources := make([]string, 0, len(tm.OneToOne))
	for source := range tm.OneToOne {
		sources = append(sources, source)
	}

	slices.Sort(sources)

	for _, source := range sources {
		checkField(res, pair, "source", src, source)
		checkField(res, pair, "target", dst, tm.OneToOne[source])
	}

	for i := range tm.Fields {
		validateFieldMapping(res, mf, pair, src, dst, &tm.Fields[i])
	}

	for _, name := range tm.OmitSource {
		checkField(res, pair, "source", src, name)
	}

	for _, name := range tm.OmitTarget {
		checkField(res, pair, "target", dst, name)
	}

	validateTargets(res, tm)
}

func validateFieldMapping(res *diagnostic.Diagnostics, mf *MappingFile, pair string, src, dst *analyze.TypeInfo, fm *FieldMapping) {
	if fm.Target == "" {
		res.AddError("missing_target", "field mapping has no target", pair, fm.Source)
		return
	}

	checkField(res, pair, "target", dst, fm.Target)

	kind := fm.Kind()
	if kind == RuleDefault {
		if fm.Default == nil {
			res.AddWarning("zero_default",
				fmt.Sprintf("target %s has neither source nor default and is reset to its zero value", fm.Target),
				pair, fm.Target)
		}

		return
	}

	if fm.Source == "" {
		res.AddError("missing_source", fmt.Sprintf("%s mapping for target %s has no source", kind, fm.Target),
			pair, fm.Target)

		return
	}

	field, ok := checkField(res, pair, "source", src, fm.Source)

	switch kind {
	case RulePropertyPath:
		if !ok {
			return
		}

		if err := CheckPath(field.Type, fm.Path); err != nil {
			res.AddError("invalid_property_path",
				fmt.Sprintf("property path %q on %s: %v", fm.Path, fm.Source, err), pair, fm.Target)
		}

	case RuleTransform:
		if !mf.HasTransform(fm.Transform) {
			res.AddError("undeclared_transform",
				fmt.Sprintf("transform %q is not declared in transforms", fm.Transform),
				pair, fm.Target, match.Suggest(fm.Transform, mf.TransformNames(), maxSuggestions)...)
		}
	}
}

// validateTargets reports targets written by more than one rule, and
// targets that are both written and omitted.
func validateTargets(res *diagnostic.Diagnostics, tm *TypeMapping) {
	targets := tm.Targets()

	for i := 1; i < len(targets); i++ {
		if targets[i] == targets[i-1] && (i == 1 || targets[i] != targets[i-2]) {
			res.AddError("conflicting_rule", fmt.Sprintf("target %s is written by more than one rule", targets[i]),
				tm.Pair(), targets[i])
		}
	}

	for _, omitted := range tm.OmitTarget {
		if _, ok := slices.BinarySearch(targets, omitted); ok {
			res.AddError("conflicting_rule", fmt.Sprintf("target %s is both written and omitted", omitted),
				tm.Pair(), omitted)
		}
	}
}

func checkField(res *diagnostic.Diagnostics, pair, side string, owner *analyze.TypeInfo, name string) (*analyze.FieldInfo, bool) {
	field, ok := owner.Field(name)
	if !ok {
		res.AddError("unknown_field", fmt.Sprintf("%s type %s has no field %q", side, owner.ID.Short(), name),
			pair, name, match.Suggest(name, owner.FieldNames(), maxSuggestions)...)
	}

	return field, ok
}

var (
	// ErrPathField is returned by CheckPath for an unknown field step.
	ErrPathField = errors.New("unknown field")
	// ErrPathMethod is returned by CheckPath for a method that is missing or
	// cannot be called as a getter.
	ErrPathMethod = errors.New("unusable method")
	// ErrPathIndex is returned by CheckPath for an index on a type that is
	// not a slice, array or map.
	ErrPathIndex = errors.New("not indexable")
)

// CheckPath checks a property path expression against the analyzed type it
// is evaluated on. Steps into types outside the loaded packages are not
// checked.
func CheckPath(root *analyze.TypeInfo, expr string) error {
	elements, err := propertypath.Parse(expr)
	if err != nil {
		return err
	}

	current := root

	for _, el := range elements {
		if opaque(current) {
			return nil
		}

		switch {
		case el.Index:
			current, err = indexStep(current)
		case el.Method:
			current, err = methodStep(current, el.Name)
		default:
			current, err = fieldStep(current, el.Name)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func opaque(t *analyze.TypeInfo) bool {
	t = t.Deref()
	if t == nil {
		return true
	}

	switch t.Kind {
	case analyze.TypeKindExternal, analyze.TypeKindInterface, analyze.TypeKindUnknown:
		return true
	default:
		return false
	}
}

func indexStep(t *analyze.TypeInfo) (*analyze.TypeInfo, error) {
	switch d := t.Deref(); d.Kind {
	case analyze.TypeKindSlice, analyze.TypeKindArray, analyze.TypeKindMap:
		return d.ElemType, nil
	default:
		return nil, fmt.Errorf("%w: %s is a %s", ErrPathIndex, describe(t), d.Kind)
	}
}

func methodStep(t *analyze.TypeInfo, name string) (*analyze.TypeInfo, error) {
	m, ok := t.Method(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no method %s%s", ErrPathMethod, describe(t), name,
			didYouMean(name, t.MethodNames()))
	}

	result, ok := m.Accessor()
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s must take no arguments and return a value, optionally with an error or bool",
			ErrPathMethod, describe(t), name)
	}

	return result, nil
}

func fieldStep(t *analyze.TypeInfo, name string) (*analyze.TypeInfo, error) {
	if d := t.Deref(); d.Kind != analyze.TypeKindStruct {
		return nil, fmt.Errorf("%w: %s is a %s and has no field %s", ErrPathField, describe(t), d.Kind, name)
	}

	f, ok := t.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no field %s%s", ErrPathField, describe(t), name,
			didYouMean(name, t.FieldNames()))
	}

	return f.Type, nil
}

func describe(t *analyze.TypeInfo) string {
	return analyze.NewTypeStringer().TypeString(t)
}

func didYouMean(name string, known []string) string {
	suggestions := match.Suggest(name, known, maxSuggestions)
	if len(suggestions) == 0 {
		return ""
	}

	return " (did you mean " + strings.Join(suggestions, ", ") + "?)"
}
