// Package portstore defines the interface for the port store: the named,
// typed attributes owned by scene nodes.
//
// Ports are scoped to their owning node. Within one node, the long name is
// unique and, when present, the short name is unique too. A port's
// fully-qualified address is `<node dagpath>.<name>`.
//
// Cascades are not this store's concern: removing a port's connections, or
// removing every port of a deleted node, is orchestrated by the Session.
package portstore

import (
	"github.com/vk/scenemock/internal/model"
)

// Store is the interface for managing ports.
type Store interface {
	// CreatePort adds a port to the owning node from the given spec.
	// Zero-valued spec fields take their defaults (model.DefaultPortType,
	// model.DefaultPortValue). Fails with NameCollisionError when the long
	// or short name is already taken on that node. The userDefined flag
	// distinguishes caller-created ports from pre-seeded ones.
	CreatePort(owner model.NodeID, spec model.PortSpec, userDefined bool) (*model.Port, error)

	// RemovePort forgets the port. Returns NotFoundError for an unknown
	// handle.
	RemovePort(id model.PortID) error

	// Port retrieves a port by handle.
	Port(id model.PortID) (*model.Port, bool)

	// PortByName finds a port on the owning node by exact long or short
	// name. No wildcards apply here; absence is a valid result, not an
	// error.
	PortByName(owner model.NodeID, name string) (*model.Port, bool)

	// PortsByNode returns the ports owned by a node, in creation order.
	PortsByNode(owner model.NodeID) []*model.Port
}
