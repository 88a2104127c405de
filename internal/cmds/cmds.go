package cmds

import (
	"fmt"
	"slices"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/scenemock/internal/model"
	"github.com/vk/scenemock/internal/session"
)

// Cmds adapts a scene session to the shape of the host application's
// scripting commands.
type Cmds struct {
	session *session.Session
}

// New wraps a session. A nil session gets a fresh one.
func New(s *session.Session) *Cmds {
	if s == nil {
		s = session.New(nil)
	}
	return &Cmds{session: s}
}

// Session exposes the wrapped session.
func (c *Cmds) Session() *session.Session {
	return c.session
}

// CreateNodeOptions carries the optional flags of CreateNode.
type CreateNodeOptions struct {
	// Name of the new node; empty derives one from the type.
	Name string
	// Parent is a pattern resolving the parent node; empty creates at the
	// root scope.
	Parent string
	// SkipSelect leaves the current selection untouched.
	SkipSelect bool
}

// CreateNode creates a node and, unless SkipSelect is set, makes it the
// current selection. It returns the node's display name.
func (c *Cmds) CreateNode(typ string, opts CreateNodeOptions) (string, error) {
	parent := model.NoNode
	if opts.Parent != "" {
		parentNode, ok := c.session.NodeByMatch(opts.Parent)
		if !ok {
			return "", &model.NotFoundError{Name: opts.Parent}
		}
		parent = parentNode.ID
	}

	n, err := c.session.CreateNode(typ, opts.Name, parent)
	if err != nil {
		return "", err
	}
	if !opts.SkipSelect {
		c.session.SetSelection([]model.NodeID{n.ID})
	}
	return c.session.DisplayName(n.ID), nil
}

// AddAttrOptions carries the optional flags of AddAttr.
type AddAttrOptions struct {
	LongName      string
	ShortName     string
	NiceName      string
	AttributeType string
	DataType      string
	DefaultValue  cty.Value
}

// AddAttr creates an attribute on every node matching one of the given
// patterns. At least one of LongName/ShortName is required, and
// AttributeType and DataType are mutually exclusive.
func (c *Cmds) AddAttr(objects []string, opts AddAttrOptions) error {
	if opts.LongName == "" && opts.ShortName == "" {
		return &model.AmbiguousArgumentsError{
			Reason: "new attribute needs either a long (-ln) or short (-sn) attribute name",
		}
	}
	if opts.AttributeType != "" && opts.DataType != "" {
		return &model.AmbiguousArgumentsError{
			Reason: "cannot specify both an attribute type and a data type",
		}
	}

	name := opts.LongName
	if name == "" {
		name = opts.ShortName
	}
	portType := opts.AttributeType
	if portType == "" {
		portType = opts.DataType
	}

	for _, object := range objects {
		n, ok := c.session.NodeByMatch(object)
		if !ok {
			return &model.NotFoundError{Name: object}
		}
		_, err := c.session.CreatePort(n.ID, model.PortSpec{
			Name:      name,
			ShortName: opts.ShortName,
			NiceName:  opts.NiceName,
			Type:      portType,
			Value:     opts.DefaultValue,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// DeleteAttr deletes attributes. Each query is tried as a full
// `node.attribute` address first; when it only names a node, the attribute
// flag completes it.
func (c *Cmds) DeleteAttr(queries []string, attribute string) error {
	for _, query := range queries {
		p := c.session.PortByMatch(query)
		if p == nil && attribute != "" {
			p = c.session.PortByMatch(query + "." + attribute)
		}
		if p == nil {
			return &model.NotFoundError{Name: query}
		}
		if err := c.session.RemovePort(p.ID); err != nil {
			return err
		}
	}
	return nil
}

// conformConnectionPorts resolves both endpoint addresses of a connection
// command.
func (c *Cmds) conformConnectionPorts(src, dst string) (*model.Port, *model.Port, error) {
	portSrc := c.session.PortByMatch(src)
	if portSrc == nil {
		return nil, nil, &model.NotFoundError{Name: fmt.Sprintf("source attribute %q", src)}
	}
	portDst := c.session.PortByMatch(dst)
	if portDst == nil {
		return nil, nil, &model.NotFoundError{Name: fmt.Sprintf("destination attribute %q", dst)}
	}
	return portSrc, portDst, nil
}

// ConnectAttr connects two port addresses. Connecting an already-connected
// pair warns through the session sink and fails.
func (c *Cmds) ConnectAttr(src, dst string) error {
	portSrc, portDst, err := c.conformConnectionPorts(src, dst)
	if err != nil {
		return err
	}

	if _, exists := c.session.ConnectionByPorts(portSrc.ID, portDst.ID); exists {
		c.session.Warning(fmt.Sprintf("%q is already connected to %q.",
			c.session.PortAddress(portSrc.ID), c.session.PortAddress(portDst.ID)))
	}
	_, err = c.session.Connect(portSrc.ID, portDst.ID)
	return err
}

// DisconnectAttr removes the connection between two port addresses.
func (c *Cmds) DisconnectAttr(src, dst string) error {
	portSrc, portDst, err := c.conformConnectionPorts(src, dst)
	if err != nil {
		return err
	}
	return c.session.Disconnect(portSrc.ID, portDst.ID)
}

// ConnectionInfoOptions selects which connection query to run. Exactly one
// flag must be set.
type ConnectionInfoOptions struct {
	SourceFromDestination bool
	DestinationFromSource bool
}

// ConnectionInfoResult holds the answer of a ConnectionInfo query; only the
// field for the requested flag is populated.
type ConnectionInfoResult struct {
	// Source is the upstream port address feeding the queried port, empty
	// when unconnected.
	Source string
	// Destinations are the downstream port addresses fed by the queried
	// port.
	Destinations []string
}

// ConnectionInfo answers connection queries about a port address.
func (c *Cmds) ConnectionInfo(dagpath string, opts ConnectionInfoOptions) (ConnectionInfoResult, error) {
	if opts.SourceFromDestination && opts.DestinationFromSource {
		return ConnectionInfoResult{}, &model.AmbiguousArgumentsError{Reason: "cannot specify more than one flag"}
	}
	if !opts.SourceFromDestination && !opts.DestinationFromSource {
		return ConnectionInfoResult{}, &model.AmbiguousArgumentsError{Reason: "must specify exactly one flag"}
	}

	p := c.session.PortByMatch(dagpath)
	if p == nil {
		return ConnectionInfoResult{}, &model.NotFoundError{Name: dagpath}
	}

	var result ConnectionInfoResult
	if opts.SourceFromDestination {
		for _, conn := range c.session.PortInputConnections(p.ID) {
			result.Source = c.session.PortAddress(conn.Src)
			break
		}
		return result, nil
	}
	for _, conn := range c.session.PortOutputConnections(p.ID) {
		result.Destinations = append(result.Destinations, c.session.PortAddress(conn.Dst))
	}
	return result, nil
}

// Delete removes the node with the given exact name, cascading into its
// ports and their connections.
func (c *Cmds) Delete(name string) error {
	n, err := c.session.NodeByName(name)
	if err != nil {
		return err
	}
	return c.session.RemoveNode(n.ID)
}

// GetAttr reads the value behind an attribute address.
func (c *Cmds) GetAttr(dagpath string) (cty.Value, error) {
	p := c.session.PortByMatch(dagpath)
	if p == nil {
		return cty.NilVal, &model.NotFoundError{Name: dagpath}
	}
	return p.Value, nil
}

// SetAttr writes the value behind an attribute address.
func (c *Cmds) SetAttr(dagpath string, value cty.Value) error {
	p := c.session.PortByMatch(dagpath)
	if p == nil {
		return &model.NotFoundError{Name: dagpath}
	}
	return c.session.SetPortValue(p.ID, value)
}

// ListAttrOptions carries the optional flags of ListAttr.
type ListAttrOptions struct {
	// UserDefined keeps only caller-created attributes.
	UserDefined bool
}

// ListAttr lists attribute names across every node matching one of the
// given patterns.
func (c *Cmds) ListAttr(objects []string, opts ListAttrOptions) []string {
	var names []string
	seen := make(map[model.NodeID]struct{})
	for _, object := range objects {
		for _, n := range c.session.NodesByMatch(object) {
			if _, dup := seen[n.ID]; dup {
				continue
			}
			seen[n.ID] = struct{}{}
			for _, p := range c.session.PortsByNode(n.ID) {
				if opts.UserDefined && !p.UserDefined {
					continue
				}
				names = append(names, p.Name)
			}
		}
	}
	return names
}

// LsOptions carries the optional flags of Ls.
type LsOptions struct {
	// Long returns full dagpaths instead of display names.
	Long bool
	// Selection keeps only currently selected nodes.
	Selection bool
	// Type keeps only nodes of the given type.
	Type string
}

// Ls lists nodes matching the first of the given patterns (every node when
// none is given), sorted by type then name.
func (c *Cmds) Ls(patterns []string, opts LsOptions) []string {
	var nodes []*model.Node
	if len(patterns) == 0 {
		for n := range c.session.IterNodes() {
			nodes = append(nodes, n)
		}
	} else {
		// TODO: resolve every pattern once multi-object ls is needed.
		for n := range c.session.IterNodesByMatch(patterns[0]) {
			nodes = append(nodes, n)
		}
	}

	kept := nodes[:0]
	for _, n := range nodes {
		if opts.Selection && !c.session.IsSelected(n.ID) {
			continue
		}
		if opts.Type != "" && n.Type != opts.Type {
			continue
		}
		kept = append(kept, n)
	}

	slices.SortFunc(kept, func(a, b *model.Node) int {
		return strings.Compare(a.SortKey(), b.SortKey())
	})

	out := make([]string, 0, len(kept))
	for _, n := range kept {
		if opts.Long {
			out = append(out, c.session.DagPath(n.ID))
		} else {
			out = append(out, c.session.DisplayName(n.ID))
		}
	}
	return out
}

// NodeType queries the type tag of the node with the given exact name.
func (c *Cmds) NodeType(name string) (string, error) {
	n, err := c.session.NodeByName(name)
	if err != nil {
		return "", err
	}
	return n.Type, nil
}

// ObjExists reports whether any node or attribute matches the pattern.
func (c *Cmds) ObjExists(pattern string) bool {
	return c.session.NodeExists(pattern) || c.session.PortByMatch(pattern) != nil
}

// Select replaces the current selection with the nodes whose name or
// display name appears in the given list. Names with no match are ignored.
func (c *Cmds) Select(names []string) {
	var ids []model.NodeID
	for _, n := range c.session.Nodes() {
		if slices.Contains(names, n.Name) || slices.Contains(names, c.session.DisplayName(n.ID)) {
			ids = append(ids, n.ID)
		}
	}
	c.session.SetSelection(ids)
}

// Parent reparents nodes. The last object names the new parent unless world
// is set, in which case every object is unparented to the root scope.
func (c *Cmds) Parent(objects []string, world bool) error {
	if len(objects) == 0 {
		return &model.AmbiguousArgumentsError{Reason: "parent needs at least one object"}
	}

	children := objects
	parent := model.NoNode
	if !world {
		if len(objects) < 2 {
			return &model.AmbiguousArgumentsError{Reason: "parent needs both a child and a parent object"}
		}
		children = objects[:len(objects)-1]
		parentNode, err := c.session.NodeByName(objects[len(objects)-1])
		if err != nil {
			return err
		}
		parent = parentNode.ID
	}

	for _, child := range children {
		n, err := c.session.NodeByName(child)
		if err != nil {
			return err
		}
		if err := c.session.SetParent(n.ID, parent); err != nil {
			return err
		}
	}
	return nil
}

// Warning forwards a message to the session's logging sink.
func (c *Cmds) Warning(msg string) {
	c.session.Warning(msg)
}
