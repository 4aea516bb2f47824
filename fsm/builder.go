package fsm

import "fmt"

// NewMachine creates an empty machine
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:      make(map[StateID]*Node[T]),
		activePath: make([]StateID, 0, 4),
	}
}

// AddState adds a node; parentID is StateNone for a root
func (m *Machine[T]) AddState(id StateID, name string, parentID StateID) *Node[T] {
	node := &Node[T]{
		ID:          id,
		Name:        name,
		ParentID:    parentID,
		Transitions: make([]Transition[T], 0),
	}
	m.nodes[id] = node
	m.compiled = false
	return node
}

// AddTransition appends a transition to the source node's list
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) error {
	node, ok := m.nodes[sourceID]
	if !ok {
		return fmt.Errorf("%w: transition source %d", ErrUnknownState, sourceID)
	}
	node.Transitions = append(node.Transitions, t)
	return nil
}

// OnEnter registers an entry action for a node
func (m *Machine[T]) OnEnter(id StateID, fn ActionFunc[T]) error {
	node, ok := m.nodes[id]
	if !ok {
		return fmt.Errorf("%w: on-enter for %d", ErrUnknownState, id)
	}
	node.OnEnter = append(node.OnEnter, fn)
	return nil
}

// OnExit registers an exit action for a node
func (m *Machine[T]) OnExit(id StateID, fn ActionFunc[T]) error {
	node, ok := m.nodes[id]
	if !ok {
		return fmt.Errorf("%w: on-exit for %d", ErrUnknownState, id)
	}
	node.OnExit = append(node.OnExit, fn)
	return nil
}

// CompilePaths calculates the root path of every node and validates references
// Must be called after all nodes and transitions are added and before Init
func (m *Machine[T]) CompilePaths() error {
	for id, node := range m.nodes {
		path := make([]StateID, 0, 4)
		curr := node

		// Walk up to root
		for {
			path = append(path, curr.ID)
			if curr.ParentID == StateNone {
				break
			}
			if len(path) > len(m.nodes) {
				return fmt.Errorf("fsm: parent cycle through node %d", id)
			}
			parent, ok := m.nodes[curr.ParentID]
			if !ok {
				return fmt.Errorf("%w: node %d references missing parent %d", ErrUnknownState, curr.ID, curr.ParentID)
			}
			curr = parent
		}

		// Reverse to get [Root, ..., Leaf]
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
		node.Path = path

		for _, t := range node.Transitions {
			if t.TargetID == StateNone {
				continue
			}
			if _, ok := m.nodes[t.TargetID]; !ok {
				return fmt.Errorf("%w: node %d transition targets %d", ErrUnknownState, id, t.TargetID)
			}
		}
	}
	m.compiled = true
	return nil
}
