package propertypath

import "errors"

var (
	// ErrSyntax indicates a malformed path expression.
	ErrSyntax = errors.New("invalid property path")

	// ErrUnknownField indicates a field that does not exist on the traversed type.
	ErrUnknownField = errors.New("unknown field")

	// ErrUnknownMethod indicates a method that does not exist on the traversed type.
	ErrUnknownMethod = errors.New("unknown method")

	// ErrMethodSignature indicates a method that takes arguments or has unusable results.
	ErrMethodSignature = errors.New("unsupported method signature")

	// ErrNotIndexable indicates an index applied to a type that has no elements.
	ErrNotIndexable = errors.New("type is not indexable")

	// ErrIndexOutOfRange indicates an element index beyond the end of a slice or array.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrMethodCall indicates a method on the path returned an error.
	ErrMethodCall = errors.New("method call failed")

	// ErrPanic indicates a panic recovered during evaluation.
	ErrPanic = errors.New("panic during evaluation")

	// ErrRootType indicates evaluation against a value of the wrong type.
	ErrRootType = errors.New("value does not match path root type")
)
