package remap

//go:generate go tool stringer -type=Kind -trimprefix=Kind

// Kind identifies the variant of a Transformation.
type Kind int

const (
	KindReassign Kind = iota
	KindReplace
	KindPropertyPath
	KindOmitInSource
	KindOmitInDestination
	KindSet
	KindNested
)
