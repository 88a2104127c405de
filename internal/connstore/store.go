// Package connstore defines the interface for the connection graph: the
// directed edges between ports that model dependency wiring.
//
// At most one connection exists per ordered (src, dst) pair. Fan-in and
// fan-out are both permitted and no cycle detection happens at this layer;
// cycle prevention, if wanted, belongs to the caller.
package connstore

import (
	"github.com/vk/scenemock/internal/model"
)

// Store is the interface for managing port connections.
type Store interface {
	// CreateConnection records the directed edge src -> dst. Fails with
	// DuplicateConnectionError when the ordered pair is already connected.
	CreateConnection(src, dst model.PortID) (*model.Connection, error)

	// RemoveConnection forgets a specific edge. Returns NotFoundError for
	// an unknown handle.
	RemoveConnection(id model.ConnID) error

	// ConnectionByPorts looks up the edge for an exact ordered pair;
	// absence is a valid result, not an error.
	ConnectionByPorts(src, dst model.PortID) (*model.Connection, bool)

	// InputConnections returns every connection whose destination is the
	// port: its upstream sources.
	InputConnections(port model.PortID) []*model.Connection

	// OutputConnections returns every connection whose source is the port:
	// its downstream destinations.
	OutputConnections(port model.PortID) []*model.Connection

	// ConnectionsByPort returns every connection touching the port at
	// either end, for removal cascades.
	ConnectionsByPort(port model.PortID) []*model.Connection
}
