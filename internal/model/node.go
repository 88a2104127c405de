// SPDX-License-Identifier: MIT
//
// This file defines the Node entity, a named vertex in the mocked scene
// hierarchy.
//
// Why handles instead of pointers?
//
// Parent/child back-references form a cyclic shape (child -> parent,
// parent -> children). Storing those links as NodeID handles keeps the store
// as the sole owner of every record: a Node never owns its parent, and a
// parent never owns its children's lifetime. Every link is resolved through
// the store, so a reparent can never leave a stale cached path behind.
package model

// NodeID is a stable handle addressing a node in its store. The zero value
// means "no node" and doubles as the absent-parent marker.
type NodeID int

// NoNode is the nil handle: no parent, no match, no selection entry.
const NoNode NodeID = 0

// Node is a named vertex in the scene hierarchy. Nodes live in a rooted
// forest: each has at most one parent and an ordered set of children.
type Node struct {
	// ID is the node's handle in its store.
	ID NodeID
	// Name is unique among siblings under the same parent.
	Name string
	// Type is a free-form tag, e.g. "transform", "shape", "utility".
	Type string
	// Parent is NoNode for a root node.
	Parent NodeID
	// Children holds child handles in insertion order.
	Children []NodeID
}

// IsRoot reports whether the node sits at the top level of the forest.
func (n *Node) IsRoot() bool {
	return n.Parent == NoNode
}

// SortKey is the total display order used by listing operations: type first,
// then name.
func (n *Node) SortKey() string {
	return n.Type + "\x00" + n.Name
}
