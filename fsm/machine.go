package fsm

import "fmt"

// Init enters the initial state, running OnEnter from root to leaf
func (m *Machine[T]) Init(ctx T, initialID StateID) error {
	if !m.compiled {
		if err := m.CompilePaths(); err != nil {
			return err
		}
	}

	node, ok := m.nodes[initialID]
	if !ok {
		return fmt.Errorf("%w: initial state %d", ErrUnknownState, initialID)
	}

	m.activeStateID = initialID
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		for _, fn := range m.nodes[id].OnEnter {
			fn(ctx, nil)
		}
	}
	return nil
}

// Active returns the current leaf state
func (m *Machine[T]) Active() StateID {
	return m.activeStateID
}

// HandleEvent offers an event to the active state chain
// Returns true if a transition fired (the event was consumed)
func (m *Machine[T]) HandleEvent(ctx T, ev EventType, payload any) bool {
	if m.activeStateID == StateNone {
		return false
	}

	// Bubble up: Leaf -> Parent -> Root
	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for i := range node.Transitions {
			t := &node.Transitions[i]
			if t.Event != ev {
				continue
			}
			if t.Guard != nil && !t.Guard(ctx, payload) {
				continue
			}
			m.fire(ctx, t, payload)
			return true
		}
		currID = node.ParentID
	}
	return false
}

// fire runs exit actions up to the LCA, the transition action, then entry actions down to the target
func (m *Machine[T]) fire(ctx T, t *Transition[T], payload any) {
	if t.TargetID == StateNone || t.TargetID == m.activeStateID {
		if t.Action != nil {
			t.Action(ctx, payload)
		}
		return
	}

	targetPath := m.nodes[t.TargetID].Path
	currentPath := m.activePath

	// Find LCA
	lcaIndex := -1
	minLen := min(len(currentPath), len(targetPath))
	for i := 0; i < minLen; i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}

	// Exit phase: walk up from current leaf to LCA (exclusive)
	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		for _, fn := range m.nodes[currentPath[i]].OnExit {
			fn(ctx, nil)
		}
	}

	if t.Action != nil {
		t.Action(ctx, payload)
	}

	// Enter phase: walk down from LCA (exclusive) to target leaf
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		for _, fn := range m.nodes[targetPath[i]].OnEnter {
			fn(ctx, nil)
		}
	}

	m.activeStateID = t.TargetID
	m.activePath = append(m.activePath[:0], targetPath...)
}
