package logdom

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Registry owns every registered Backend and Domain. It is the only
// component with mutable global structure (spec §4.5): a single
// reader-writer lock protects both maps. Lookups (the dispatch hot
// path) take the read side; registration, promotion, and propagation
// take the write side, so dispatch never observes a half-updated
// hierarchy.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]*Backend
	targets  map[string]string // target path -> backend name, for Duplicate(path) detection
	domains  map[string]*Domain
}

// NewRegistry creates an empty registry. Until the root (or another
// explicit ancestor of a domain) is registered, the registry has no
// backend to route that domain's records to, and Dispatcher.Log drops
// them.
func NewRegistry() *Registry {
	return &Registry{
		backends: make(map[string]*Backend),
		targets:  make(map[string]string),
		domains:  make(map[string]*Domain),
	}
}

// RegisterBackend takes ownership of b. It is rejected if b is nil,
// has no name, or collides on name or (non-empty) target with an
// already-registered backend.
func (r *Registry) RegisterBackend(b *Backend) error {
	if b == nil || b.name == "" {
		return ErrInvalid
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.backends[b.name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, b.name)
	}
	if b.target != "" {
		if existing, exists := r.targets[b.target]; exists {
			return fmt.Errorf("%w: %q (used by backend %q)", ErrDuplicateTarget, b.target, existing)
		}
	}

	r.backends[b.name] = b
	if b.target != "" {
		r.targets[b.target] = b.name
	}
	return nil
}

// RegisterDomain registers an explicit domain named name.
//
//   - If no domain with this name exists, it is inserted as explicit;
//     missing ancestors are materialized implicitly, each inheriting
//     from the then-nearest explicit ancestor (the root at minimum).
//   - If an implicit domain with this name already exists, it is
//     promoted: it becomes explicit, its level and backend are replaced
//     by minLevel and backend, and propagation runs so that any domain anchored to it
//     picks up the new level/backend.
//   - If an explicit domain with this name already exists, the call
//     is idempotent when the fields match, or ErrAmbiguousRedefinition
//     if they don't (a programmer error).
func (r *Registry) RegisterDomain(name string, minLevel Level, backend *Backend) error {
	if Ancestors(name) == nil {
		return ErrInvalid
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.domains[name]; ok {
		if existing.isExplicit {
			if existing.minLevel == minLevel && existing.backend == backend {
				return nil
			}
			return fmt.Errorf("%w: domain %q already registered with different level/backend", ErrAmbiguousRedefinition, name)
		}
		// Promote the implicit placeholder in place.
		existing.isExplicit = true
		existing.minLevel = minLevel
		existing.effectiveLevel = minLevel
		existing.backend = backend
		r.propagateFrom(existing)
		return nil
	}

	d := &Domain{
		name:           name,
		isExplicit:     true,
		minLevel:       minLevel,
		effectiveLevel: minLevel,
		backend:        backend,
	}
	r.materializeAncestorsLocked(name, false)
	r.domains[name] = d
	r.propagateFrom(d)
	return nil
}

// Lookup returns the domain registered under name, materializing it
// and any missing ancestors if necessary. An absent valid name becomes
// an implicit domain anchored to its nearest explicit ancestor (spec
// §4.5). A name that is not a valid domain name (Ancestors returns nil
// for it) materializes nothing, and Lookup returns nil.
//
// The returned *Domain is a stable identity for name: its fields are
// only ever mutated under the registry's write lock, by promotion or
// propagation of name itself or one of its ancestors. A caller that
// holds a *Domain across a later RegisterDomain call on a *different*
// name should still re-Lookup before trusting EffectiveLevel/Backend,
// since that call may promote an ancestor and propagate new values
// into the domain the caller is holding.
func (r *Registry) Lookup(name string) *Domain {
	r.mu.RLock()
	if d, ok := r.domains[name]; ok {
		r.mu.RUnlock()
		return d
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	// Re-check: another writer may have materialized it while we
	// waited for the write lock.
	if d, ok := r.domains[name]; ok {
		return d
	}
	r.materializeAncestorsLocked(name, true)
	return r.domains[name]
}

// GetEffectiveLevel is equal to Lookup(name).EffectiveLevel() after
// materialization.
func (r *Registry) GetEffectiveLevel(name string) Level {
	return r.Lookup(name).EffectiveLevel()
}

// materializeAncestorsLocked ensures every ancestor of name (root
// through name's own parent) exists in r.domains, inheriting from the
// nearest explicit ancestor found so far, and, when createLeaf is
// true, materializes name itself as an implicit domain too. Caller
// must hold the write lock. RegisterDomain passes createLeaf=false
// because it is about to insert name explicitly itself and would only
// have its own insert immediately shadowed by an implicit placeholder;
// Lookup passes createLeaf=true since it has no insert of its own to
// follow up with, and must return a domain for every valid name (spec
// §4.5). For an invalid name the ancestor chain is nil and nothing is
// created.
func (r *Registry) materializeAncestorsLocked(name string, createLeaf bool) {
	chain := Ancestors(name)
	var nearestLevel Level
	var nearestBackend *Backend

	if root, ok := r.domains[RootDomain]; ok {
		nearestLevel = root.effectiveLevel
		nearestBackend = root.backend
	}

	for _, ancestorName := range chain {
		if existing, ok := r.domains[ancestorName]; ok {
			if existing.isExplicit {
				nearestLevel = existing.effectiveLevel
				nearestBackend = existing.backend
			}
			continue
		}
		if ancestorName == name && !createLeaf {
			// name itself is about to be inserted explicitly by the
			// caller; don't shadow it with an implicit placeholder.
			continue
		}
		d := &Domain{
			name:           ancestorName,
			isExplicit:     false,
			effectiveLevel: nearestLevel,
			backend:        nearestBackend,
		}
		r.domains[ancestorName] = d
	}
}

// propagateFrom recomputes effectiveLevel/backend for every currently
// known domain whose nearest explicit ancestor is now e, stopping
// descent at any other explicit domain (its descendants are already
// anchored to it). Caller must hold the write lock. This is the eager
// propagation strategy the spec recommends (§4.5, §9): observable
// effective_* values match this immediately after RegisterDomain
// returns.
func (r *Registry) propagateFrom(e *Domain) {
	for name, d := range r.domains {
		if d == e || name == e.name {
			continue
		}
		if !hasPrefix(name, e.name) {
			continue
		}
		if d.isExplicit {
			// Descendant is its own anchor point; its own descendants
			// are handled when we visit d as 'e' would have been, but
			// since e is already anchoring everything up to d, we must
			// not override d itself. We still must not descend past d
			// for other domains, which the prefix check + explicit
			// check on ancestor chain (below) enforces implicitly:
			// any domain further descended from d will have d, not e,
			// as its nearest explicit ancestor, computed below.
			continue
		}
		if r.nearestExplicitAncestorName(name) != e.name {
			continue
		}
		d.effectiveLevel = e.effectiveLevel
		d.backend = e.backend
	}
}

// nearestExplicitAncestorName walks name's ancestor chain from itself
// upward (excluding name) and returns the name of the nearest
// explicit ancestor actually present in r.domains. Caller must hold
// at least the read lock.
func (r *Registry) nearestExplicitAncestorName(name string) string {
	chain := Ancestors(name)
	for i := len(chain) - 2; i >= 0; i-- {
		if d, ok := r.domains[chain[i]]; ok && d.isExplicit {
			return d.name
		}
	}
	return RootDomain
}

// hasPrefix reports whether name has ancestor as a strict dotted
// prefix (i.e. ancestor appears in name's ancestor chain and
// ancestor != name).
func hasPrefix(name, ancestor string) bool {
	if name == ancestor {
		return false
	}
	if ancestor == RootDomain {
		return true
	}
	return len(name) > len(ancestor) && name[:len(ancestor)] == ancestor && name[len(ancestor)] == '.'
}

// ReopenAll calls Reopen on every registered backend, fanning the
// calls out bounded and concurrently via errgroup; partial failures
// are collected rather than aborting the rest (spec §4.5, §7). Used
// by the "rotate logs on SIGHUP" collaborator.
func (r *Registry) ReopenAll(ctx context.Context) []BackendError {
	r.mu.RLock()
	backends := make([]*Backend, 0, len(r.backends))
	for _, b := range r.backends {
		backends = append(backends, b)
	}
	r.mu.RUnlock()

	var mu sync.Mutex
	var failures []BackendError

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, b := range backends {
		b := b
		g.Go(func() error {
			if err := b.Reopen(); err != nil {
				mu.Lock()
				failures = append(failures, BackendError{Backend: b.name, Err: err})
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return failures
}

// BackendError pairs a backend name with the error ReopenAll observed
// reopening it.
type BackendError struct {
	Backend string
	Err     error
}

func (e BackendError) Error() string {
	return fmt.Sprintf("backend %q: %s", e.Backend, e.Err)
}

// ForceLogAll writes message at Message level to every registered
// backend, bypassing domain filters and coalescing. Each backend
// flushes its pending coalescing summary first (spec §4.7).
func (r *Registry) ForceLogAll(message string) {
	r.mu.RLock()
	backends := make([]*Backend, 0, len(r.backends))
	for _, b := range r.backends {
		backends = append(backends, b)
	}
	r.mu.RUnlock()

	for _, b := range backends {
		b.forceLog(message)
	}
}

// Teardown flushes every backend's pending coalescing summary, closes
// every backend, and drops all domains. After Teardown, logging
// through this registry is a programmer error (spec §5).
func (r *Registry) Teardown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.backends {
		b.flushCoalesce()
		b.Close()
	}
	r.backends = make(map[string]*Backend)
	r.targets = make(map[string]string)
	r.domains = make(map[string]*Domain)
}

// DebugDump renders every known domain's name, explicitness, backend
// name, and levels, sorted lexicographically by name for deterministic
// output — the Go counterpart of the original chassis-log's
// dump_domain_hash_iter debugging helper.
func (r *Registry) DebugDump() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.domains))
	for name := range r.domains {
		names = append(names, name)
	}
	sort.Strings(names)

	out := ""
	for _, name := range names {
		d := r.domains[name]
		backendName := "<none>"
		if d.backend != nil {
			backendName = d.backend.name
		}
		kind := "implicit"
		if d.isExplicit {
			kind = "explicit"
		}
		out += fmt.Sprintf("%q -> {name: %s, %s, backend: %s, levels: eff=%s min=%s}\n",
			name, d.name, kind, backendName, d.effectiveLevel, d.minLevel)
	}
	return out
}
