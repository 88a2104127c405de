// SPDX-License-Identifier: MIT
//
// This file defines the Connection entity, a directed edge between two
// ports. Connections model dependency wiring only; this layer performs no
// cycle detection.
package model

// ConnID is a stable handle addressing a connection in its store. The zero
// value means "no connection".
type ConnID int

// NoConn is the nil connection handle.
const NoConn ConnID = 0

// Connection is a directed edge src -> dst between two ports. At most one
// connection exists per ordered (src, dst) pair; fan-in and fan-out are both
// permitted.
type Connection struct {
	// ID is the connection's handle in its store.
	ID ConnID
	// Src is the source port handle.
	Src PortID
	// Dst is the destination port handle.
	Dst PortID
}
