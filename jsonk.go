// Package jsonk implements a bounded, refcounted JSON value tree with
// single-pass parsing, fixed-buffer serialization, dot-path object
// accessors and a JSON merge-patch engine in the style of RFC 7386, where
// an empty string, empty Object or empty Array deletes a member just as
// null does.
//
// It is a port of a Linux kernel module's JSON core (see the acknowledged
// jsonk kernel sources this package's limits and struct layouts are
// grounded on) into an ordinary Go library: no kmem_cache slabs, no
// atomic_t, no GFP flags — sync.Pool-backed node pools and a per-parse
// memory budget stand in for the same "fixed resource ceiling, no runtime
// reconfiguration" posture a privileged, constrained environment requires.
// Numbers are stored as a split integer/fraction pair rather than
// float64, matching an environment with no floating-point unit access;
// strings are unescaped eagerly but \uXXXX escapes are copied through
// literally rather than decoded, since the environment this was ported
// from has no Unicode codec either. See SPEC_FULL.md for the full design.
//
// The core is explicitly not safe for concurrent use on a single Value
// tree: Acquire/Release is the sharing primitive, not a mutex, the same
// way the kernel module this was ported from relies on its caller for
// locking around any tree a Parser or Patcher touches.
package jsonk

import "encoding/json"

// RawMessage is a drop-in analogue of encoding/json.RawMessage, carried
// over from the teacher's json/json.go compat surface so callers that want
// to round-trip opaque JSON alongside a decoded jsonk.Value (e.g. an
// envelope whose payload field isn't meant to be parsed into the tree) can
// do so without importing encoding/json directly.
type RawMessage = json.RawMessage

// Marshaler is satisfied by types that produce their own JSON encoding,
// matching encoding/json.Marshaler's signature. jsonk.Marshal serializes a
// *Value only and does not consult this interface.
type Marshaler interface {
	MarshalJSON() ([]byte, error)
}

// Unmarshaler is satisfied by types that parse their own JSON encoding,
// matching encoding/json.Unmarshaler's signature.
type Unmarshaler interface {
	UnmarshalJSON([]byte) error
}
