package logdom

// Domain is a node in the dotted-name hierarchy. It holds no
// behavior beyond the fields below; effectiveLevel/backend are
// cached values the Registry maintains via propagation (spec §4.5).
//
// Domains never hold a strong reference to their parent or to other
// domains: every traversal goes through the Registry, which owns both
// the domain map and the backend map. This keeps ownership a tree
// rather than a graph (spec §9, "Cyclic references avoided").
type Domain struct {
	name       string
	isExplicit bool

	// minLevel is meaningful only when isExplicit is true: it is the
	// threshold this domain was registered with.
	minLevel Level

	// effectiveLevel/backend are the values actually applied when
	// dispatching through this domain: for an explicit domain they
	// equal minLevel/backend; for an implicit domain they are
	// inherited from the nearest explicit ancestor.
	effectiveLevel Level
	backend        *Backend
}

// Name returns the domain's dotted name.
func (d *Domain) Name() string { return d.name }

// IsExplicit reports whether this domain was registered by the user
// (as opposed to materialized on demand as an ancestor).
func (d *Domain) IsExplicit() bool { return d.isExplicit }

// IsImplicit is the negation of IsExplicit, matching the original
// chassis-log's is_implicit naming for readers coming from that
// lineage.
func (d *Domain) IsImplicit() bool { return !d.isExplicit }

// EffectiveLevel returns the threshold actually applied when
// dispatching through this domain.
func (d *Domain) EffectiveLevel() Level { return d.effectiveLevel }

// Backend returns the backend actually used when dispatching through
// this domain, or nil if none is anchored yet (only possible before
// any explicit ancestor, including the root, has been registered).
func (d *Domain) Backend() *Backend { return d.backend }

// MinLevel returns the domain's own configured threshold. It is only
// meaningful when IsExplicit() is true.
func (d *Domain) MinLevel() Level { return d.minLevel }
