// Package inmemoryports provides the in-memory implementation of
// portstore.Store.
package inmemoryports

import (
	"fmt"
	"slices"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/scenemock/internal/model"
	"github.com/vk/scenemock/internal/portstore"
)

// Store implements portstore.Store with an arena map plus a per-node index
// of owned port handles in creation order.
type Store struct {
	ports  map[model.PortID]*model.Port
	byNode map[model.NodeID][]model.PortID
	nextID model.PortID
}

// New creates a new, empty in-memory port store.
func New() *Store {
	return &Store{
		ports:  make(map[model.PortID]*model.Port),
		byNode: make(map[model.NodeID][]model.PortID),
	}
}

var _ portstore.Store = (*Store)(nil)

// CreatePort adds a port to the owning node, applying spec defaults and
// rejecting long/short name collisions within that node.
func (s *Store) CreatePort(owner model.NodeID, spec model.PortSpec, userDefined bool) (*model.Port, error) {
	if spec.Name == "" && spec.ShortName == "" {
		return nil, &model.AmbiguousArgumentsError{
			Reason: "new attribute needs either a long or short attribute name",
		}
	}
	if spec.Name == "" {
		spec.Name = spec.ShortName
	}

	for _, id := range s.byNode[owner] {
		existing := s.ports[id]
		if existing.Name == spec.Name || (spec.ShortName != "" && existing.ShortName == spec.ShortName) {
			return nil, &model.NameCollisionError{Name: spec.Name, Scope: fmt.Sprintf("node #%d", owner)}
		}
	}

	portType := spec.Type
	if portType == "" {
		portType = model.DefaultPortType
	}
	value := spec.Value
	if value == cty.NilVal {
		value = model.DefaultPortValue()
	}

	s.nextID++
	p := &model.Port{
		ID:          s.nextID,
		Node:        owner,
		Name:        spec.Name,
		ShortName:   spec.ShortName,
		NiceName:    spec.NiceName,
		Type:        portType,
		Value:       value,
		UserDefined: userDefined,
	}
	s.ports[p.ID] = p
	s.byNode[owner] = append(s.byNode[owner], p.ID)
	return p, nil
}

// RemovePort forgets the port and drops it from its owner's index.
func (s *Store) RemovePort(id model.PortID) error {
	p, ok := s.ports[id]
	if !ok {
		return &model.NotFoundError{Name: fmt.Sprintf("port #%d", id)}
	}
	delete(s.ports, id)
	owned := slices.DeleteFunc(s.byNode[p.Node], func(pid model.PortID) bool { return pid == id })
	if len(owned) == 0 {
		delete(s.byNode, p.Node)
	} else {
		s.byNode[p.Node] = owned
	}
	return nil
}

// Port retrieves a port by handle.
func (s *Store) Port(id model.PortID) (*model.Port, bool) {
	p, ok := s.ports[id]
	return p, ok
}

// PortByName finds a port on the node by exact long or short name.
func (s *Store) PortByName(owner model.NodeID, name string) (*model.Port, bool) {
	for _, id := range s.byNode[owner] {
		p := s.ports[id]
		if p.Name == name || (p.ShortName != "" && p.ShortName == name) {
			return p, true
		}
	}
	return nil, false
}

// PortsByNode returns the node's ports in creation order.
func (s *Store) PortsByNode(owner model.NodeID) []*model.Port {
	owned := s.byNode[owner]
	ports := make([]*model.Port, 0, len(owned))
	for _, id := range owned {
		ports = append(ports, s.ports[id])
	}
	return ports
}
