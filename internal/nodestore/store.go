// Package nodestore defines the interface for the node graph store: the
// rooted forest of named nodes that makes up the mocked scene hierarchy.
//
// # Why Node Store Exists
//
// The node store isolates hierarchy concerns such as naming, parenting,
// dagpath computation and pattern resolution from attribute storage (portstore) and
// dependency wiring (connstore). The Session façade composes all three and
// is the only component allowed to mutate them.
//
// # Lifecycle and Usage
//
//  1. Created empty for each session.
//  2. Mutated through explicit create/remove/reparent requests.
//  3. Queried by exact name or by compiled address pattern.
//  4. Discarded with the session.
//
// Implementations assume exclusive access during any mutating call; callers
// embedding a store in a multi-threaded host must synchronize externally
// (the Session does this with a single mutex).
package nodestore

import (
	"iter"

	"github.com/vk/scenemock/internal/model"
	"github.com/vk/scenemock/internal/naming"
)

// Store is the interface for managing the scene's node hierarchy.
type Store interface {
	// CreateNode adds a node of the given type, optionally named and
	// optionally parented (model.NoNode means root scope).
	//
	// An empty name asks the store to derive one from the type with a
	// numeric suffix that keeps it unique among its siblings. A supplied
	// name is validated (InvalidNameError) and checked for sibling
	// collisions (NameCollisionError).
	CreateNode(typ, name string, parent model.NodeID) (*model.Node, error)

	// RemoveNode detaches the node from its parent and forgets it.
	// Children are not deleted: they detach into the root scope. Ports are
	// not this store's concern; the Session cascades them.
	//
	// Returns NotFoundError for an unknown handle.
	RemoveNode(id model.NodeID) error

	// SetParent moves the node under a new parent (model.NoNode unparents
	// it to the root scope), re-validating sibling-name uniqueness under
	// the destination (NameCollisionError). Moving a node under itself or
	// one of its own descendants is rejected with CycleError, keeping the
	// hierarchy a rooted forest.
	SetParent(id, parent model.NodeID) error

	// Node retrieves a node by handle.
	Node(id model.NodeID) (*model.Node, bool)

	// NodeByName performs an exact-name lookup, returning the first node
	// carrying the name in insertion order. Returns NotFoundError when no
	// node has that name.
	NodeByName(name string) (*model.Node, error)

	// FirstMatch resolves a compiled pattern against all node dagpaths.
	// When several nodes match, the one with the lexicographically-first
	// dagpath wins, keeping ambiguous patterns deterministic.
	FirstMatch(m *naming.Matcher) (*model.Node, bool)

	// Matching returns every node whose dagpath satisfies the pattern, in
	// the store's insertion order.
	Matching(m *naming.Matcher) []*model.Node

	// IterMatching returns a lazy, restartable sequence over the nodes
	// whose dagpath satisfies the pattern, in insertion order.
	IterMatching(m *naming.Matcher) iter.Seq[*model.Node]

	// Exists reports whether at least one node matches the pattern.
	Exists(m *naming.Matcher) bool

	// Path computes the node's fully-qualified dagpath from its ancestor
	// chain. The result is never cached across reparents.
	Path(id model.NodeID) string

	// AllNodes returns every node in insertion order.
	AllNodes() []*model.Node
}
