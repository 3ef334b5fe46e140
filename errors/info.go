package errors

// InfoKind pairs a unique identity with a value type T, defining one named
// kind of diagnostic data that can be attached to an error. Declare kinds
// once, at package scope:
//
//	var ErrMsg = errors.NewInfo[string]("errmsg")
//
// Identity is the *InfoKind pointer itself, not the display name: two
// independently declared kinds never collide, even when their names and
// value types coincide. There is no registry; uniqueness falls out of
// ordinary declaration scoping.
type InfoKind[T any] struct {
	name string
}

// NewInfo declares a new field kind with the given display name. The name
// only matters for diagnostic output.
func NewInfo[T any](name string) *InfoKind[T] {
	return &InfoKind[T]{name: name}
}

// Name returns the display name used in diagnostic output.
func (k *InfoKind[T]) Name() string { return k.name }

func (k *InfoKind[T]) infoName() string { return k.name }

// anyInfo is the type-erased view of a field kind. Only *InfoKind
// implements it; entries are keyed by the interface value, so kind
// identity is pointer identity.
type anyInfo interface {
	infoName() string
}

// Attach records kind = value on the container in err's chain and returns
// err itself, so annotations chain inline at a catch-and-rethrow site:
//
//	if err != nil {
//		return errors.Attach(err, ErrMsg, "writing lots of zeros failed")
//	}
//
// Attaching a kind that is already present overwrites its value; the entry
// keeps its original position in diagnostic output. When err carries no
// container anywhere in its chain, Attach wraps it the same way Throw does
// (without a throw site), so the annotation is never dropped; the original
// error stays reachable through Unwrap. Attach on nil returns nil.
func Attach[T any](err error, kind *InfoKind[T], value T) error {
	if err == nil {
		return nil
	}
	if c := findContainer(err); c != nil {
		c.attach(kind, value)
		return err
	}
	w := &withInfo{cause: err, container: NewContainer()}
	w.container.attach(kind, value)
	return w
}

// Get returns the value attached to err for kind. The second return is
// false when err is nil, carries no container, the kind was never
// attached, or the stored dynamic type is not exactly T. Get never panics
// and makes no implicit conversions.
func Get[T any](err error, kind *InfoKind[T]) (T, bool) {
	var zero T
	if err == nil {
		return zero, false
	}
	c := findContainer(err)
	if c == nil {
		return zero, false
	}
	v, ok := c.lookup(kind)
	if !ok {
		return zero, false
	}
	tv, ok := v.(T)
	if !ok {
		return zero, false
	}
	return tv, true
}
