package propertypath

import (
	"errors"
	"fmt"
	"reflect"

	"remapper/internal/access"
)

var errorType = reflect.TypeFor[error]()

// Path is a compiled property path bound to a root type. It is immutable and
// safe for concurrent use.
type Path struct {
	root   reflect.Type
	result reflect.Type
	expr   string
	steps  []step
}

// methodResults describes what a method on the path returns besides its value.
type methodResults int

const (
	resultsValue methodResults = iota // T
	resultsError                      // (T, error)
	resultsOK                         // (T, bool)
)

type step struct {
	segment

	field   access.Field  // segmentField
	pointer bool          // segmentMethod: needs a pointer receiver
	results methodResults // segmentMethod
	mapKey  reflect.Value // segmentKey, segmentIndex on maps
}

// Compile parses expr and type-checks it against root.
func Compile(root reflect.Type, expr string) (*Path, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil root type", ErrSyntax)
	}

	segments, err := parse(expr)
	if err != nil {
		return nil, err
	}

	p := &Path{root: root, expr: render(segments)}

	t := root
	for _, seg := range segments {
		st := step{segment: seg}

		switch seg.kind {
		case segmentField:
			st.field, err = access.Resolve(t, seg.name)
			if err != nil {
				return nil, fmt.Errorf("%w %q on %s: %w", ErrUnknownField, seg.name, t, err)
			}

			t = st.field.Type

		case segmentMethod:
			t, err = st.compileMethod(t)
			if err != nil {
				return nil, err
			}

		case segmentIndex, segmentKey:
			t, err = st.compileIndex(t)
			if err != nil {
				return nil, err
			}
		}

		p.steps = append(p.steps, st)
	}

	p.result = t

	return p, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(root reflect.Type, expr string) *Path {
	p, err := Compile(root, expr)
	if err != nil {
		panic(err)
	}

	return p
}

func (st *step) compileMethod(t reflect.Type) (reflect.Type, error) {
	m, ok := t.MethodByName(st.name)
	if !ok && t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
		m, ok = reflect.PointerTo(t).MethodByName(st.name)
		st.pointer = ok
	}

	if !ok {
		return nil, fmt.Errorf("%w %q on %s", ErrUnknownMethod, st.name, t)
	}

	mt := m.Type

	// Interface methods carry no receiver.
	receiver := 1
	if t.Kind() == reflect.Interface {
		receiver = 0
	}

	if mt.NumIn() != receiver || mt.IsVariadic() {
		return nil, fmt.Errorf("%w: %s.%s takes arguments", ErrMethodSignature, t, st.name)
	}

	switch {
	case mt.NumOut() == 1:
		st.results = resultsValue
	case mt.NumOut() == 2 && mt.Out(1) == errorType:
		st.results = resultsError
	case mt.NumOut() == 2 && mt.Out(1).Kind() == reflect.Bool:
		st.results = resultsOK
	default:
		return nil, fmt.Errorf("%w: %s.%s must return T, (T, error) or (T, bool)", ErrMethodSignature, t, st.name)
	}

	return mt.Out(0), nil
}

func (st *step) compileIndex(t reflect.Type) (reflect.Type, error) {
	base := indirect(t)

	switch {
	case st.kind == segmentIndex && (base.Kind() == reflect.Slice || base.Kind() == reflect.Array):
		return base.Elem(), nil

	case base.Kind() == reflect.Map:
		var key reflect.Value

		switch {
		case st.kind == segmentKey && base.Key().Kind() == reflect.String:
			key = reflect.ValueOf(st.key)
		case st.kind == segmentIndex && isInteger(base.Key().Kind()):
			key = reflect.ValueOf(st.index)
		default:
			return nil, fmt.Errorf("%w: key %s does not fit %s", ErrNotIndexable, render([]segment{st.segment}), t)
		}

		st.mapKey = key.Convert(base.Key())

		return base.Elem(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrNotIndexable, t)
	}
}

// Evaluate applies the path to v, which must be of the root type. ok is
// false when the chain ran into a nil or missing value.
func (p *Path) Evaluate(v reflect.Value) (result reflect.Value, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, ok, err = reflect.Value{}, false, panicError(r)
		}
	}()

	if isNil(v) {
		return reflect.Value{}, false, nil
	}

	if v.Type() != p.root {
		return reflect.Value{}, false, fmt.Errorf("%w: got %s, want %s", ErrRootType, v.Type(), p.root)
	}

	for i := range p.steps {
		st := &p.steps[i]

		if isNil(v) {
			return reflect.Value{}, false, nil
		}

		v, ok, err = st.apply(v)
		if err != nil || !ok {
			return reflect.Value{}, false, err
		}
	}

	if isNil(v) {
		return reflect.Value{}, false, nil
	}

	return v, true, nil
}

func (st *step) apply(v reflect.Value) (reflect.Value, bool, error) {
	switch st.kind {
	case segmentField:
		out, err := st.field.Read(v)
		if errors.Is(err, access.ErrNilValue) {
			return reflect.Value{}, false, nil
		}

		return out, err == nil, err

	case segmentMethod:
		return st.call(v)

	default:
		base, ok := deref(v)
		if !ok {
			return reflect.Value{}, false, nil
		}

		if base.Kind() == reflect.Map {
			out := base.MapIndex(st.mapKey)
			return out, out.IsValid(), nil
		}

		if base.Kind() == reflect.Slice && base.IsNil() {
			return reflect.Value{}, false, nil
		}

		if st.index >= base.Len() {
			return reflect.Value{}, false, fmt.Errorf("%w: index %d with length %d", ErrIndexOutOfRange, st.index, base.Len())
		}

		return base.Index(st.index), true, nil
	}
}

func (st *step) call(v reflect.Value) (reflect.Value, bool, error) {
	if st.pointer {
		if v.CanAddr() {
			v = v.Addr()
		} else {
			ptr := reflect.New(v.Type())
			ptr.Elem().Set(v)
			v = ptr
		}
	}

	out := v.MethodByName(st.name).Call(nil)

	switch st.results {
	case resultsError:
		if err, _ := out[1].Interface().(error); err != nil {
			return reflect.Value{}, false, fmt.Errorf("%w: %s(): %w", ErrMethodCall, st.name, err)
		}
	case resultsOK:
		if !out[1].Bool() {
			return reflect.Value{}, false, nil
		}
	}

	return out[0], true, nil
}

// Root returns the type the path was compiled for.
func (p *Path) Root() reflect.Type { return p.root }

// Result returns the static type of the evaluated value.
func (p *Path) Result() reflect.Type { return p.result }

// String returns the canonical path expression.
func (p *Path) String() string { return p.expr }

// Detailed renders the path with its root and result types.
func (p *Path) Detailed() string {
	return fmt.Sprintf("%s -> %s (%s)", p.root, p.expr, p.result)
}

// Equal reports whether both paths have the same root type and canonical
// expression.
func (p *Path) Equal(other *Path) bool {
	if p == nil || other == nil {
		return p == other
	}

	return p.root == other.root && p.expr == other.expr
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

func deref(v reflect.Value) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}

		v = v.Elem()
	}

	return v, v.IsValid()
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func panicError(r any) error {
	if e, ok := r.(error); ok {
		return fmt.Errorf("%w: %w", ErrPanic, e)
	}

	return fmt.Errorf("%w: %v", ErrPanic, r)
}
