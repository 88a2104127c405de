// Package session provides the façade aggregating the node, port and
// connection stores behind one public contract.
//
// The Session owns the documented cascade rules (node removal cascades into
// port removal, port removal cascades into connection removal), the current
// selection, and the warning hook toward the logging sink. The stores are
// never mutated by anything but the Session.
//
// Every public operation is guarded by a single mutex, so a Session can be
// embedded in a multi-threaded host even though the stores themselves assume
// exclusive access.
package session

import (
	"iter"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/scenemock/internal/connstore"
	"github.com/vk/scenemock/internal/inmemoryconns"
	"github.com/vk/scenemock/internal/inmemorynodes"
	"github.com/vk/scenemock/internal/inmemoryports"
	"github.com/vk/scenemock/internal/model"
	"github.com/vk/scenemock/internal/naming"
	"github.com/vk/scenemock/internal/nodestore"
	"github.com/vk/scenemock/internal/portstore"
)

// Session aggregates the scene stores and the process-scoped selection
// state. Create one per test context; independent sessions never share
// state.
type Session struct {
	mu     sync.RWMutex
	id     uuid.UUID
	logger *slog.Logger

	nodes nodestore.Store
	ports portstore.Store
	conns connstore.Store

	// selection holds the currently selected nodes in the order of the
	// selecting call. Replaced wholesale by SetSelection.
	selection []model.NodeID
}

// New creates an empty session backed by the in-memory stores. A nil logger
// falls back to slog.Default(); the session id is attached to every log
// record for correlation.
func New(logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New()
	return &Session{
		id:     id,
		logger: logger.With("session", id.String()),
		nodes:  inmemorynodes.New(),
		ports:  inmemoryports.New(),
		conns:  inmemoryconns.New(),
	}
}

// ID returns the session's correlation identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Warning forwards a message to the logging sink, fire-and-forget.
func (s *Session) Warning(msg string) {
	s.logger.Warn(msg)
}

// --- Node graph operations ---

// CreateNode adds a node of the given type, optionally named (empty name
// derives one from the type) and optionally parented (model.NoNode for the
// root scope).
func (s *Session) CreateNode(typ, name string, parent model.NodeID) (*model.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nodes.CreateNode(typ, name, parent)
}

// RemoveNode deletes the node, cascading into its ports and every
// connection touching those ports. Children detach into the root scope and
// the node leaves the selection if present.
func (s *Session) RemoveNode(id model.NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes.Node(id); !ok {
		return &model.NotFoundError{Name: "node"}
	}
	for _, p := range s.ports.PortsByNode(id) {
		s.removePortLocked(p.ID)
	}
	if err := s.nodes.RemoveNode(id); err != nil {
		return err
	}
	s.pruneSelectionLocked(id)
	return nil
}

// SetParent reparents the node (model.NoNode unparents it), re-validating
// sibling-name uniqueness under the destination scope and rejecting moves
// under the node's own subtree.
func (s *Session) SetParent(id, parent model.NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nodes.SetParent(id, parent)
}

// Node retrieves a node by handle.
func (s *Session) Node(id model.NodeID) (*model.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes.Node(id)
}

// NodeByName performs an exact-name lookup, raising NotFoundError on a
// miss.
func (s *Session) NodeByName(name string) (*model.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes.NodeByName(name)
}

// NodeByMatch resolves a pattern to one node. Ambiguous patterns resolve
// deterministically to the lexicographically-first dagpath; absence is a
// valid result, not an error.
func (s *Session) NodeByMatch(pattern string) (*model.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes.FirstMatch(naming.Compile(pattern))
}

// NodesByMatch returns every node matching the pattern, in insertion order.
func (s *Session) NodesByMatch(pattern string) []*model.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes.Matching(naming.Compile(pattern))
}

// IterNodesByMatch returns a lazy, restartable sequence over the matching
// nodes in insertion order. The sequence reads live state: do not mutate
// the session from inside the loop.
func (s *Session) IterNodesByMatch(pattern string) iter.Seq[*model.Node] {
	return s.nodes.IterMatching(naming.Compile(pattern))
}

// IterNodes returns the unfiltered equivalent of IterNodesByMatch, the
// behavior of the absent pattern.
func (s *Session) IterNodes() iter.Seq[*model.Node] {
	return s.nodes.IterMatching(naming.CompileAll())
}

// NodeExists reports whether at least one node matches the pattern.
func (s *Session) NodeExists(pattern string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes.Exists(naming.Compile(pattern))
}

// Nodes returns every node in insertion order.
func (s *Session) Nodes() []*model.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes.AllNodes()
}

// DagPath computes the node's fully-qualified path.
func (s *Session) DagPath(id model.NodeID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes.Path(id)
}

// DisplayName returns the node's scripting-facing name: the bare name when
// it is unique in the scene, the full dagpath otherwise.
func (s *Session) DisplayName(id model.NodeID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.displayNameLocked(id)
}

func (s *Session) displayNameLocked(id model.NodeID) string {
	n, ok := s.nodes.Node(id)
	if !ok {
		return ""
	}
	count := 0
	for _, other := range s.nodes.AllNodes() {
		if other.Name == n.Name {
			count++
		}
	}
	if count > 1 {
		return s.nodes.Path(id)
	}
	return n.Name
}

// --- Port operations ---

// CreatePort adds a user-defined port to the node from the given spec.
func (s *Session) CreatePort(node model.NodeID, spec model.PortSpec) (*model.Port, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes.Node(node); !ok {
		return nil, &model.NotFoundError{Name: "node"}
	}
	return s.ports.CreatePort(node, spec, true)
}

// RemovePort deletes the port, cascading into every connection referencing
// it.
func (s *Session) RemovePort(id model.PortID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ports.Port(id); !ok {
		return &model.NotFoundError{Name: "port"}
	}
	s.removePortLocked(id)
	return nil
}

func (s *Session) removePortLocked(id model.PortID) {
	for _, c := range s.conns.ConnectionsByPort(id) {
		// Ignoring the error: the connection was just listed.
		_ = s.conns.RemoveConnection(c.ID)
	}
	_ = s.ports.RemovePort(id)
}

// PortByMatch resolves a `<node-pattern>.<port-name>` address. The node
// side goes through pattern resolution; the port name matches exactly
// against long or short names. Returns nil when nothing matches; callers
// use this for existence checks without error handling.
func (s *Session) PortByMatch(dagpath string) *model.Port {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodePattern, portName := naming.SplitAttr(dagpath)
	if portName == "" {
		return nil
	}
	n, ok := s.nodes.FirstMatch(naming.Compile(nodePattern))
	if !ok {
		return nil
	}
	p, ok := s.ports.PortByName(n.ID, portName)
	if !ok {
		return nil
	}
	return p
}

// Port retrieves a port by handle.
func (s *Session) Port(id model.PortID) (*model.Port, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ports.Port(id)
}

// PortsByNode returns the node's ports in creation order.
func (s *Session) PortsByNode(node model.NodeID) []*model.Port {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ports.PortsByNode(node)
}

// SetPortValue replaces the port's value.
func (s *Session) SetPortValue(id model.PortID, value cty.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.ports.Port(id)
	if !ok {
		return &model.NotFoundError{Name: "port"}
	}
	p.Value = value
	return nil
}

// PortAddress returns the port's scripting-facing address,
// `<node display name>.<port name>`.
func (s *Session) PortAddress(id model.PortID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.portAddressLocked(id)
}

func (s *Session) portAddressLocked(id model.PortID) string {
	p, ok := s.ports.Port(id)
	if !ok {
		return ""
	}
	return s.displayNameLocked(p.Node) + "." + p.Name
}

// --- Connection operations ---

// Connect records the directed edge src -> dst, rejecting a duplicate
// ordered pair.
func (s *Session) Connect(src, dst model.PortID) (*model.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ports.Port(src); !ok {
		return nil, &model.NotFoundError{Name: "source port"}
	}
	if _, ok := s.ports.Port(dst); !ok {
		return nil, &model.NotFoundError{Name: "destination port"}
	}
	if _, exists := s.conns.ConnectionByPorts(src, dst); exists {
		return nil, &model.DuplicateConnectionError{
			Src: s.portAddressLocked(src),
			Dst: s.portAddressLocked(dst),
		}
	}
	return s.conns.CreateConnection(src, dst)
}

// Disconnect removes the edge for the ordered pair, raising
// MissingConnectionError when the ports were never connected.
func (s *Session) Disconnect(src, dst model.PortID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.conns.ConnectionByPorts(src, dst)
	if !ok {
		return &model.MissingConnectionError{
			Src: s.portAddressLocked(src),
			Dst: s.portAddressLocked(dst),
		}
	}
	return s.conns.RemoveConnection(c.ID)
}

// RemoveConnection removes a specific edge by handle.
func (s *Session) RemoveConnection(id model.ConnID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns.RemoveConnection(id)
}

// ConnectionByPorts looks up the edge for an exact ordered pair.
func (s *Session) ConnectionByPorts(src, dst model.PortID) (*model.Connection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conns.ConnectionByPorts(src, dst)
}

// PortInputConnections returns the connections arriving at the port: its
// upstream sources.
func (s *Session) PortInputConnections(port model.PortID) []*model.Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conns.InputConnections(port)
}

// PortOutputConnections returns the connections leaving the port: its
// downstream destinations.
func (s *Session) PortOutputConnections(port model.PortID) []*model.Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conns.OutputConnections(port)
}

// --- Selection ---

// SetSelection replaces the current selection wholesale, preserving the
// order of the call. Unknown handles are dropped.
func (s *Session) SetSelection(ids []model.NodeID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selection = s.selection[:0]
	for _, id := range ids {
		if _, ok := s.nodes.Node(id); ok {
			s.selection = append(s.selection, id)
		}
	}
}

// Selection returns the currently selected nodes in selection order.
func (s *Session) Selection() []*model.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	selected := make([]*model.Node, 0, len(s.selection))
	for _, id := range s.selection {
		if n, ok := s.nodes.Node(id); ok {
			selected = append(selected, n)
		}
	}
	return selected
}

// IsSelected reports whether the node is in the current selection.
func (s *Session) IsSelected(id model.NodeID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sel := range s.selection {
		if sel == id {
			return true
		}
	}
	return false
}

func (s *Session) pruneSelectionLocked(id model.NodeID) {
	kept := s.selection[:0]
	for _, sel := range s.selection {
		if sel != id {
			kept = append(kept, sel)
		}
	}
	s.selection = kept
}
