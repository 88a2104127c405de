// SPDX-License-Identifier: MIT
//
// This file defines the typed failures the stores and the session raise.
// Every error is raised synchronously to the immediate caller; nothing in
// the core swallows or retries. Pattern-based lookups return absent results
// instead of raising, so errors here always mean the caller asserted an
// expectation that did not hold.
package model

import "fmt"

// InvalidNameError reports a node name that fails the validity rules.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid node name %q", e.Name)
}

// NameCollisionError reports a duplicate sibling node name or duplicate port
// name within one node.
type NameCollisionError struct {
	Name string
	// Scope describes where the collision happened, e.g. a parent dagpath
	// or a node name.
	Scope string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("name %q already exists in %s", e.Name, e.Scope)
}

// NotFoundError reports an exact-name lookup with no match.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no object matches name: %s", e.Name)
}

// CycleError reports a reparent request that would make a node its own
// ancestor, breaking the rooted-forest shape of the hierarchy.
type CycleError struct {
	Node   string
	Parent string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("parenting %q under %q would create a cycle", e.Node, e.Parent)
}

// DuplicateConnectionError reports a connect request for an ordered port
// pair that is already connected.
type DuplicateConnectionError struct {
	Src string
	Dst string
}

func (e *DuplicateConnectionError) Error() string {
	return fmt.Sprintf("%q is already connected to %q", e.Src, e.Dst)
}

// MissingConnectionError reports a disconnect request for an ordered port
// pair that is not connected.
type MissingConnectionError struct {
	Src string
	Dst string
}

func (e *MissingConnectionError) Error() string {
	return fmt.Sprintf("there is no connection from %q to %q to disconnect", e.Src, e.Dst)
}

// AmbiguousArgumentsError reports mutually exclusive flags supplied
// together, or a required flag missing entirely.
type AmbiguousArgumentsError struct {
	Reason string
}

func (e *AmbiguousArgumentsError) Error() string {
	return e.Reason
}
