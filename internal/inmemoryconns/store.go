// Package inmemoryconns provides the in-memory implementation of
// connstore.Store.
package inmemoryconns

import (
	"fmt"

	"github.com/vk/scenemock/internal/connstore"
	"github.com/vk/scenemock/internal/model"
)

// pair is the ordered (src, dst) key enforcing edge uniqueness.
type pair struct {
	src model.PortID
	dst model.PortID
}

// Store implements connstore.Store with an arena map, an ordered index for
// stable iteration, and a pair index for O(1) duplicate checks.
type Store struct {
	conns  map[model.ConnID]*model.Connection
	order  []model.ConnID
	byPair map[pair]model.ConnID
	nextID model.ConnID
}

// New creates a new, empty in-memory connection store.
func New() *Store {
	return &Store{
		conns:  make(map[model.ConnID]*model.Connection),
		byPair: make(map[pair]model.ConnID),
	}
}

var _ connstore.Store = (*Store)(nil)

// CreateConnection records src -> dst, rejecting a duplicate ordered pair.
func (s *Store) CreateConnection(src, dst model.PortID) (*model.Connection, error) {
	key := pair{src: src, dst: dst}
	if _, exists := s.byPair[key]; exists {
		return nil, &model.DuplicateConnectionError{
			Src: fmt.Sprintf("port #%d", src),
			Dst: fmt.Sprintf("port #%d", dst),
		}
	}

	s.nextID++
	c := &model.Connection{ID: s.nextID, Src: src, Dst: dst}
	s.conns[c.ID] = c
	s.order = append(s.order, c.ID)
	s.byPair[key] = c.ID
	return c, nil
}

// RemoveConnection forgets a specific edge.
func (s *Store) RemoveConnection(id model.ConnID) error {
	c, ok := s.conns[id]
	if !ok {
		return &model.NotFoundError{Name: fmt.Sprintf("connection #%d", id)}
	}
	delete(s.conns, id)
	delete(s.byPair, pair{src: c.Src, dst: c.Dst})
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ConnectionByPorts looks up the edge for an exact ordered pair.
func (s *Store) ConnectionByPorts(src, dst model.PortID) (*model.Connection, bool) {
	id, ok := s.byPair[pair{src: src, dst: dst}]
	if !ok {
		return nil, false
	}
	return s.conns[id], true
}

// InputConnections returns the edges arriving at the port.
func (s *Store) InputConnections(port model.PortID) []*model.Connection {
	return s.filter(func(c *model.Connection) bool { return c.Dst == port })
}

// OutputConnections returns the edges leaving the port.
func (s *Store) OutputConnections(port model.PortID) []*model.Connection {
	return s.filter(func(c *model.Connection) bool { return c.Src == port })
}

// ConnectionsByPort returns the edges touching the port at either end.
func (s *Store) ConnectionsByPort(port model.PortID) []*model.Connection {
	return s.filter(func(c *model.Connection) bool { return c.Src == port || c.Dst == port })
}

// filter walks the connections in creation order.
func (s *Store) filter(keep func(*model.Connection) bool) []*model.Connection {
	var matched []*model.Connection
	for _, id := range s.order {
		if c := s.conns[id]; keep(c) {
			matched = append(matched, c)
		}
	}
	return matched
}
