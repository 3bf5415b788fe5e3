package editor

import (
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/leafline/leafline-backend/pkg/errors"
)

func TestDragTrackerOneKindAtATime(t *testing.T) {
	tracker := NewDragTracker()
	vendorID := uuid.New()

	if err := tracker.Start(vendorID, DragSection, uuid.New()); err != nil {
		t.Fatalf("first drag must start: %v", err)
	}

	err := tracker.Start(vendorID, DragComponent, uuid.New())
	if err == nil {
		t.Fatal("component drag must be rejected while a section drag is active")
	}
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	tracker.End(vendorID)
	if err := tracker.Start(vendorID, DragComponent, uuid.New()); err != nil {
		t.Fatalf("component drag must start after the section drop: %v", err)
	}
}

func TestDragTrackerSameKindRestarts(t *testing.T) {
	tracker := NewDragTracker()
	vendorID := uuid.New()
	second := uuid.New()

	if err := tracker.Start(vendorID, DragSection, uuid.New()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := tracker.Start(vendorID, DragSection, second); err != nil {
		t.Fatalf("same-kind restart must be allowed: %v", err)
	}

	kind, id, ok := tracker.Active(vendorID)
	if !ok || kind != DragSection || id != second {
		t.Fatalf("restart must replace the active drag: %v %v %v", kind, id, ok)
	}
}

func TestDragTrackerIsolatedPerVendor(t *testing.T) {
	tracker := NewDragTracker()
	vendorA, vendorB := uuid.New(), uuid.New()

	if err := tracker.Start(vendorA, DragSection, uuid.New()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := tracker.Start(vendorB, DragComponent, uuid.New()); err != nil {
		t.Fatalf("vendors must not share drag state: %v", err)
	}

	tracker.End(vendorA)
	if _, _, ok := tracker.Active(vendorA); ok {
		t.Fatal("ended drag still reported active")
	}
	if _, _, ok := tracker.Active(vendorB); !ok {
		t.Fatal("other vendor's drag must survive")
	}
}

func TestDragTrackerEndWithoutStart(t *testing.T) {
	tracker := NewDragTracker()
	tracker.End(uuid.New())
}
