// SPDX-License-Identifier: MIT

// Package model defines the entities of the mocked scene graph (nodes,
// ports and connections) together with the handle types that address them
// and the error kinds the stores and the session raise.
package model
