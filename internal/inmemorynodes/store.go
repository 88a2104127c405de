// Package inmemorynodes provides the in-memory implementation of
// nodestore.Store backed by an arena of node records addressed by handle.
package inmemorynodes

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/vk/scenemock/internal/model"
	"github.com/vk/scenemock/internal/naming"
	"github.com/vk/scenemock/internal/nodestore"
)

// Store implements nodestore.Store. The arena map owns every record;
// parent/child links are stored as handles only.
type Store struct {
	nodes  map[model.NodeID]*model.Node
	order  []model.NodeID // insertion order, drives iteration
	roots  []model.NodeID // top-level scope, ordered like Children
	nextID model.NodeID
}

// New creates a new, empty in-memory node store.
func New() *Store {
	return &Store{
		nodes: make(map[model.NodeID]*model.Node),
	}
}

var _ nodestore.Store = (*Store)(nil)

// siblings returns the ordered child handles of the given scope, the root
// scope when parent is model.NoNode.
func (s *Store) siblings(parent model.NodeID) []model.NodeID {
	if parent == model.NoNode {
		return s.roots
	}
	return s.nodes[parent].Children
}

// nameTakenIn reports whether a name is already used inside a scope.
func (s *Store) nameTakenIn(parent model.NodeID, name string) bool {
	for _, id := range s.siblings(parent) {
		if s.nodes[id].Name == name {
			return true
		}
	}
	return false
}

// scopeLabel describes a scope for error messages.
func (s *Store) scopeLabel(parent model.NodeID) string {
	if parent == model.NoNode {
		return "the root scope"
	}
	return fmt.Sprintf("%q", s.Path(parent))
}

// defaultName derives a unique sibling name from a node type, e.g.
// "transform1", "transform2".
func (s *Store) defaultName(typ string, parent model.NodeID) string {
	base := naming.ConformNodeName(typ)
	if base == "" {
		base = "node"
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s%d", base, n)
		if !s.nameTakenIn(parent, candidate) {
			return candidate
		}
	}
}

// CreateNode adds a node of the given type under parent (model.NoNode for
// the root scope). An empty name is derived from the type.
func (s *Store) CreateNode(typ, name string, parent model.NodeID) (*model.Node, error) {
	if parent != model.NoNode {
		if _, ok := s.nodes[parent]; !ok {
			return nil, &model.NotFoundError{Name: fmt.Sprintf("node #%d", parent)}
		}
	}

	if name == "" {
		name = s.defaultName(typ, parent)
	} else {
		if !naming.IsValidNodeName(name) {
			return nil, &model.InvalidNameError{Name: name}
		}
		if s.nameTakenIn(parent, name) {
			return nil, &model.NameCollisionError{Name: name, Scope: s.scopeLabel(parent)}
		}
	}

	s.nextID++
	n := &model.Node{
		ID:     s.nextID,
		Name:   name,
		Type:   typ,
		Parent: parent,
	}
	s.nodes[n.ID] = n
	s.order = append(s.order, n.ID)
	if parent == model.NoNode {
		s.roots = append(s.roots, n.ID)
	} else {
		p := s.nodes[parent]
		p.Children = append(p.Children, n.ID)
	}
	return n, nil
}

// detach removes the node from its current scope's ordered child list.
func (s *Store) detach(n *model.Node) {
	if n.Parent == model.NoNode {
		s.roots = slices.DeleteFunc(s.roots, func(id model.NodeID) bool { return id == n.ID })
		return
	}
	p := s.nodes[n.Parent]
	p.Children = slices.DeleteFunc(p.Children, func(id model.NodeID) bool { return id == n.ID })
}

// RemoveNode detaches the node and forgets it. Children become unparented
// root nodes; removing a parent never cascades into deleting its subtree.
func (s *Store) RemoveNode(id model.NodeID) error {
	n, ok := s.nodes[id]
	if !ok {
		return &model.NotFoundError{Name: fmt.Sprintf("node #%d", id)}
	}

	s.detach(n)
	for _, childID := range n.Children {
		child := s.nodes[childID]
		child.Parent = model.NoNode
		s.roots = append(s.roots, childID)
	}
	n.Children = nil

	delete(s.nodes, id)
	s.order = slices.DeleteFunc(s.order, func(oid model.NodeID) bool { return oid == id })
	return nil
}

// SetParent reparents the node, re-validating sibling-name uniqueness under
// the destination scope.
func (s *Store) SetParent(id, parent model.NodeID) error {
	n, ok := s.nodes[id]
	if !ok {
		return &model.NotFoundError{Name: fmt.Sprintf("node #%d", id)}
	}
	if parent != model.NoNode {
		if _, ok := s.nodes[parent]; !ok {
			return &model.NotFoundError{Name: fmt.Sprintf("node #%d", parent)}
		}
	}
	// Relinking under the node's own subtree would detach it from the root
	// and make every path walk diverge.
	for cur := parent; cur != model.NoNode; cur = s.nodes[cur].Parent {
		if cur == id {
			return &model.CycleError{Node: s.Path(id), Parent: s.Path(parent)}
		}
	}
	if parent == n.Parent {
		return nil
	}
	if s.nameTakenIn(parent, n.Name) {
		return &model.NameCollisionError{Name: n.Name, Scope: s.scopeLabel(parent)}
	}

	s.detach(n)
	n.Parent = parent
	if parent == model.NoNode {
		s.roots = append(s.roots, id)
	} else {
		p := s.nodes[parent]
		p.Children = append(p.Children, id)
	}
	return nil
}

// Node retrieves a node by handle.
func (s *Store) Node(id model.NodeID) (*model.Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// NodeByName returns the first node carrying the exact name, in insertion
// order.
func (s *Store) NodeByName(name string) (*model.Node, error) {
	for _, id := range s.order {
		if n := s.nodes[id]; n.Name == name {
			return n, nil
		}
	}
	return nil, &model.NotFoundError{Name: name}
}

// FirstMatch resolves a pattern to a single node. Ambiguity is broken
// deterministically by picking the lexicographically-first dagpath.
func (s *Store) FirstMatch(m *naming.Matcher) (*model.Node, bool) {
	var best *model.Node
	var bestPath string
	for _, id := range s.order {
		path := s.Path(id)
		if !m.Match(path) {
			continue
		}
		if best == nil || strings.Compare(path, bestPath) < 0 {
			best = s.nodes[id]
			bestPath = path
		}
	}
	return best, best != nil
}

// Matching returns all matches in insertion order.
func (s *Store) Matching(m *naming.Matcher) []*model.Node {
	var matched []*model.Node
	for n := range s.IterMatching(m) {
		matched = append(matched, n)
	}
	return matched
}

// IterMatching returns a lazy sequence over matches in insertion order. The
// sequence is restartable: each range restarts from the first match.
func (s *Store) IterMatching(m *naming.Matcher) iter.Seq[*model.Node] {
	return func(yield func(*model.Node) bool) {
		for _, id := range s.order {
			n, ok := s.nodes[id]
			if !ok {
				continue
			}
			if !m.Match(s.Path(id)) {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// Exists reports whether any node matches the pattern.
func (s *Store) Exists(m *naming.Matcher) bool {
	for range s.IterMatching(m) {
		return true
	}
	return false
}

// Path recomputes the node's dagpath from its ancestor chain on every call,
// so it can never go stale across a reparent.
func (s *Store) Path(id model.NodeID) string {
	n, ok := s.nodes[id]
	if !ok {
		return ""
	}
	path := naming.Separator + n.Name
	for cur := n; cur.Parent != model.NoNode; {
		cur = s.nodes[cur.Parent]
		path = naming.Join(naming.Separator+cur.Name, path)
	}
	return path
}

// AllNodes returns every node in insertion order.
func (s *Store) AllNodes() []*model.Node {
	all := make([]*model.Node, 0, len(s.order))
	for _, id := range s.order {
		all = append(all, s.nodes[id])
	}
	return all
}
