// SPDX-License-Identifier: MIT
//
// This file defines the Port entity, a named and typed attribute owned by
// exactly one node.
//
// Why cty.Value?
//
// Port values are loosely typed: a caller may store a number, a boolean or a
// string through the same operation. cty gives us that as a closed value
// model that is comparable and round-trippable in tests, instead of an open
// `any` that every consumer would have to type-switch on.
package model

import (
	"github.com/zclconf/go-cty/cty"
)

// PortID is a stable handle addressing a port in its store. The zero value
// means "no port".
type PortID int

// NoPort is the nil port handle.
const NoPort PortID = 0

// DefaultPortType is the type tag applied when a port is created without an
// explicit one.
const DefaultPortType = "float"

// Port is a named, typed, valued attribute owned by a node. A port never
// outlives its owner.
type Port struct {
	// ID is the port's handle in its store.
	ID PortID
	// Node is the owning node's handle.
	Node NodeID
	// Name is unique within the owning node.
	Name string
	// ShortName is an optional addressable alias, also unique within the
	// owning node. Empty when unset.
	ShortName string
	// NiceName is a display-only alias; it never participates in
	// addressing.
	NiceName string
	// Type is a free-form tag, DefaultPortType when not specified.
	Type string
	// Value is the port's current value.
	Value cty.Value
	// UserDefined distinguishes caller-created ports from ports a node was
	// pre-seeded with.
	UserDefined bool
}

// PortSpec carries the caller-supplied fields of a port creation request.
// Zero fields take their documented defaults.
type PortSpec struct {
	Name      string
	ShortName string
	NiceName  string
	Type      string
	Value     cty.Value
}

// DefaultPortValue is the value applied when a port is created without one.
func DefaultPortValue() cty.Value {
	return cty.NumberFloatVal(0)
}
