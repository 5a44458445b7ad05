package config

import (
	"maps"
	"slices"
	"strings"
)

// MappingFile represents the root of a YAML mapping definition file.
type MappingFile struct {
	// Version of the mapping schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// TypeMappings is a list of type pair mappings.
	TypeMappings []TypeMapping `yaml:"mappings"`

	// Transforms declares the transform names that field mappings may use.
	Transforms []TransformDef `yaml:"transforms,omitempty"`
}

// TypeMapping defines how to map one source type to one target type.
type TypeMapping struct {
	// Source type identifier ("Customer", "store.Customer" or full import path).
	Source string `yaml:"source"`

	// Target type identifier, same forms as Source.
	Target string `yaml:"target"`

	// Implicit enables copying same-named compatible fields that no rule
	// covers. Nil means enabled.
	Implicit *bool `yaml:"implicit,omitempty"`

	// OneToOne is the reassign shorthand: keys are source fields and values
	// are target fields.
	// Example: { "FullName": "FirstName" }
	OneToOne map[string]string `yaml:"121,omitempty"`

	// Fields defines explicit field mappings.
	Fields []FieldMapping `yaml:"fields,omitempty"`

	// OmitSource lists source fields that are intentionally not read.
	OmitSource StringArray `yaml:"omit_source,omitempty"`

	// OmitTarget lists target fields that are intentionally not written.
	OmitTarget StringArray `yaml:"omit_target,omitempty"`
}

// IsImplicit reports whether implicit field matching is enabled.
func (tm *TypeMapping) IsImplicit() bool {
	return tm.Implicit == nil || *tm.Implicit
}

// Pair renders the mapping as "Source->Target".
func (tm *TypeMapping) Pair() string {
	return tm.Source + "->" + tm.Target
}

// FieldMapping defines how one target field is populated. Exactly one of the
// rule kinds applies, in this order:
//   - Path set: property path evaluated on the Source field
//   - Transform set: named function applied to the Source field
//   - Source empty: Default written to the target
//   - otherwise: Source reassigned to Target
type FieldMapping struct {
	// Source is the source field name. Empty for default values.
	Source string `yaml:"source,omitempty"`

	// Target is the target field name.
	Target string `yaml:"target"`

	// Path is a property path expression evaluated on the source field value.
	Path string `yaml:"path,omitempty"`

	// Transform is the name of a registered conversion function.
	Transform string `yaml:"transform,omitempty"`

	// SkipNil skips the transform when the source value is nil.
	SkipNil bool `yaml:"skip_nil,omitempty"`

	// Default is a literal written to Target when Source is empty.
	Default any `yaml:"default,omitempty"`
}

// RuleKind names the kind of rule a field mapping produces.
type RuleKind string

const (
	RuleReassign     RuleKind = "reassign"
	RulePropertyPath RuleKind = "property_path"
	RuleTransform    RuleKind = "transform"
	RuleDefault      RuleKind = "default"
)

// Kind returns the kind of rule this field mapping produces.
func (fm *FieldMapping) Kind() RuleKind {
	switch {
	case fm.Path != "":
		return RulePropertyPath
	case fm.Transform != "":
		return RuleTransform
	case fm.Source == "":
		return RuleDefault
	default:
		return RuleReassign
	}
}

// TransformDef declares a transform function usable in field mappings. The
// implementation is registered in Go code with Registry.Register.
type TransformDef struct {
	// Name is the transform identifier used in field mappings.
	Name string `yaml:"name"`

	// Description is an optional human-readable description.
	Description string `yaml:"description,omitempty"`
}

// TransformNames returns the declared transform names.
func (mf *MappingFile) TransformNames() []string {
	names := make([]string, 0, len(mf.Transforms))
	for _, t := range mf.Transforms {
		names = append(names, t.Name)
	}

	return names
}

// HasTransform reports whether name is declared in the file.
func (mf *MappingFile) HasTransform(name string) bool {
	return slices.Contains(mf.TransformNames(), name)
}

// Find returns the mapping whose source and target identifiers match the
// fully qualified type names source and target ("import/path.Name"), or nil.
func (mf *MappingFile) Find(source, target string) *TypeMapping {
	for i := range mf.TypeMappings {
		tm := &mf.TypeMappings[i]
		if MatchTypeName(tm.Source, source) && MatchTypeName(tm.Target, target) {
			return tm
		}
	}

	return nil
}

// MatchTypeName reports whether the identifier id ("Name", "pkg.Name" or
// "import/path.Name") denotes the fully qualified type name qualified.
func MatchTypeName(id, qualified string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}

	if id == qualified {
		return true
	}

	name := qualified
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		name = qualified[i+1:]
	}

	if !strings.Contains(id, ".") {
		return id == name
	}

	return strings.HasSuffix(qualified, "/"+id)
}

// Targets returns every target field the mapping writes, from the shorthand
// and the explicit field list, sorted.
func (tm *TypeMapping) Targets() []string {
	targets := slices.Collect(maps.Values(tm.OneToOne))
	for _, fm := range tm.Fields {
		targets = append(targets, fm.Target)
	}

	slices.Sort(targets)

	return targets
}
