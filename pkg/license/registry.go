package license

import "net/url"

// Registry holds capabilities per family in registration order.
// Register everything before resolution starts; a Registry is not safe for
// concurrent registration.
type Registry struct {
	families map[Family][]Capability
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{families: make(map[Family][]Capability)}
}

// Register appends c to the candidates for family f.
func (r *Registry) Register(f Family, c Capability) {
	r.families[f] = append(r.families[f], c)
}

// Find returns the first capability for f that accepts u. Unsafe
// capabilities are only considered when allowUnsafe is set.
func (r *Registry) Find(f Family, u *url.URL, allowUnsafe bool) (Capability, bool) {
	for _, c := range r.families[f] {
		if (c.Safe() || allowUnsafe) && c.CanResolve(u) {
			return c, true
		}
	}
	return nil, false
}

// Len returns the number of capabilities registered for f.
func (r *Registry) Len(f Family) int {
	return len(r.families[f])
}

// Gated reports whether u is claimed only by unsafe capabilities of f.
// With unsafe capabilities disabled, a gated project or repository URL is
// not contacted at all.
func (r *Registry) Gated(f Family, u *url.URL) bool {
	gated := false
	for _, c := range r.families[f] {
		if !c.CanResolve(u) {
			continue
		}
		if c.Safe() {
			return false
		}
		gated = true
	}
	return gated
}
