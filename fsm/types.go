// Package fsm is a small hierarchical finite state machine runtime
//
// States form a tree. Events are offered to the active leaf first and bubble
// towards the root; the first transition whose event matches and whose guard
// passes fires. Shared behaviour therefore lives on a parent state.
package fsm

import "errors"

// StateID is a unique identifier for a node
type StateID int

// StateNone marks "no state": the parent of a root, or a transition target
// that keeps the current state (internal transition, no exit/enter)
const StateNone StateID = 0

// EventType identifies an event offered to HandleEvent
type EventType int

// ErrUnknownState is returned when a node, parent or target ID is not registered
var ErrUnknownState = errors.New("fsm: unknown state")

// Machine is the generic state machine runtime
// T is the context type passed to guards and actions (e.g. *editor.Controller)
type Machine[T any] struct {
	// Graph data, immutable after CompilePaths
	nodes map[StateID]*Node[T]

	// Runtime state
	activeStateID StateID
	activePath    []StateID // Root -> ... -> Leaf
	compiled      bool
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Pre-calculated path from root to this node
	Path []StateID

	OnEnter []ActionFunc[T]
	OnExit  []ActionFunc[T]

	// Evaluated in insertion order
	Transitions []Transition[T]
}

// Transition defines a guarded link between states
type Transition[T any] struct {
	Event    EventType
	Guard    GuardFunc[T]  // nil = always true
	Action   ActionFunc[T] // nil = no side effect
	TargetID StateID       // StateNone = stay in current state
}

// GuardFunc returns true if the transition should fire for this payload
type GuardFunc[T any] func(ctx T, payload any) bool

// ActionFunc executes a side effect; payload is the event payload or nil for lifecycle hooks
type ActionFunc[T any] func(ctx T, payload any)
