package editor

import (
	"sync"

	"github.com/google/uuid"

	pkgerrors "github.com/leafline/leafline-backend/pkg/errors"
)

// DragKind names the two draggable item types. Only one kind may be mid-drag
// per vendor at a time, so a section and a component beneath it cannot be
// reordered simultaneously.
type DragKind string

const (
	DragSection   DragKind = "section"
	DragComponent DragKind = "component"
)

type dragState struct {
	kind DragKind
	id   uuid.UUID
}

// DragTracker holds per-vendor drag state for the live editor. Dashboard
// clients call Start when a handle is grabbed and End on drop or cancel; a
// restart with the same kind replaces the active drag.
type DragTracker struct {
	mu     sync.Mutex
	active map[uuid.UUID]dragState
}

func NewDragTracker() *DragTracker {
	return &DragTracker{active: make(map[uuid.UUID]dragState)}
}

// Start begins a drag for the vendor. A drag of the other kind already in
// flight is rejected with a state conflict.
func (t *DragTracker) Start(vendorID uuid.UUID, kind DragKind, id uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if current, ok := t.active[vendorID]; ok && current.kind != kind {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			"a "+string(current.kind)+" drag is already in progress")
	}
	t.active[vendorID] = dragState{kind: kind, id: id}
	return nil
}

// End clears the vendor's active drag. Ending with no drag in flight is a
// no-op.
func (t *DragTracker) End(vendorID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.active, vendorID)
}

// Active reports the vendor's in-flight drag, if any.
func (t *DragTracker) Active(vendorID uuid.UUID) (DragKind, uuid.UUID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state, ok := t.active[vendorID]
	return state.kind, state.id, ok
}
