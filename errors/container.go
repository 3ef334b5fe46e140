package errors

// entry is one (field kind, type-erased value) pair.
type entry struct {
	kind anyInfo
	val  interface{}
}

// Container is the attachment collection: an insertion-ordered list of
// field entries, unique per kind, plus optional throw-site metadata. Error
// types embed *Container to gain the enrichment capability directly:
//
//	type allocationFailed struct {
//		*errors.Container
//	}
//
//	func (allocationFailed) Error() string { return "allocation failed" }
//
// Types that do not embed it can still be enriched through Throw or
// Attach, which wrap them in an adapter carrying its own Container.
//
// A Container is mutated in place: exactly one frame handles an in-flight
// error at a time, and annotating it must not change the error's identity.
// The zero Container is not usable; construct with NewContainer.
type Container struct {
	entries []entry
	site    *ThrowSite
}

// NewContainer returns an empty attachment collection.
func NewContainer() *Container {
	return &Container{}
}

// attach inserts or overwrites the entry for kind. An overwrite keeps the
// entry at its original position, so diagnostic output shows one line per
// kind, in first-insertion order.
func (c *Container) attach(kind anyInfo, val interface{}) {
	for i := range c.entries {
		if c.entries[i].kind == kind {
			c.entries[i].val = val
			return
		}
	}
	c.entries = append(c.entries, entry{kind: kind, val: val})
}

// lookup returns the type-erased value stored for kind.
func (c *Container) lookup(kind anyInfo) (interface{}, bool) {
	for i := range c.entries {
		if c.entries[i].kind == kind {
			return c.entries[i].val, true
		}
	}
	return nil, false
}

// ThrowSite returns the raise-point metadata recorded by Throw, or nil
// when the raising code never opted into capture.
func (c *Container) ThrowSite() *ThrowSite { return c.site }

// setThrowSite records the raise point. The first recorded site wins: a
// rethrow higher up the stack must not overwrite the origin.
func (c *Container) setThrowSite(site *ThrowSite) {
	if c.site == nil {
		c.site = site
	}
}

func (c *Container) diagContainer() *Container { return c }

// containerProvider is the enrichment capability: any error whose chain
// exposes an attachment Container. Embedding *Container implements it.
type containerProvider interface {
	diagContainer() *Container
}

// findContainer walks err's chain for the enrichment capability, looking
// through any wrapping applied between the raise point and the handler.
func findContainer(err error) *Container {
	var p containerProvider
	if As(err, &p) {
		return p.diagContainer()
	}
	return nil
}
