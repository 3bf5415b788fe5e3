package editor

import (
	"testing"

	"github.com/google/uuid"

	"github.com/leafline/leafline-backend/pkg/db/models"
)

func TestMoveItem(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()}

	moved := moveItem(ids, 3, 0)
	if moved[0] != ids[3] || moved[1] != ids[0] {
		t.Fatalf("index 3 must land at 0: %v", moved)
	}
	if len(moved) != 5 {
		t.Fatalf("move must not change length, got %d", len(moved))
	}

	if got := moveItem(ids, 1, 1); got[1] != ids[1] {
		t.Fatal("same-index move must be a no-op")
	}
	if got := moveItem(ids, 2, 99); got[4] != ids[2] {
		t.Fatal("target past the end must clamp to the last slot")
	}
	if got := moveItem(ids, -1, 0); got[0] != ids[0] {
		t.Fatal("invalid source must be a no-op")
	}
}

func TestSectionOrdersDragToFront(t *testing.T) {
	sections := make([]models.StorefrontSection, 5)
	keys := []string{"hero", "features", "products", "about", "cta"}
	for i, key := range keys {
		sections[i] = models.StorefrontSection{ID: uuid.New(), SectionKey: key, SectionOrder: i}
	}

	moved := moveItem(sectionIDs(sections), 3, 0)
	orders := sectionOrders(sections, moved)

	if orders[sections[3].ID] != 0 {
		t.Fatalf("dragged section must take order 0, got %d", orders[sections[3].ID])
	}
	seen := map[int]bool{}
	for _, order := range orders {
		if order < 0 || order > 4 || seen[order] {
			t.Fatalf("orders must be exactly 0..4 with no gaps or duplicates: %v", orders)
		}
		seen[order] = true
	}
}

func TestSectionOrdersPinsHeaderAndFooter(t *testing.T) {
	sections := []models.StorefrontSection{
		{ID: uuid.New(), SectionKey: "header", SectionOrder: -1},
		{ID: uuid.New(), SectionKey: "hero", SectionOrder: 0},
		{ID: uuid.New(), SectionKey: "products", SectionOrder: 1},
		{ID: uuid.New(), SectionKey: "footer", SectionOrder: 999},
	}

	moved := moveItem(sectionIDs(sections), 2, 1)
	orders := sectionOrders(sections, moved)

	if orders[sections[0].ID] != -1 || orders[sections[3].ID] != 999 {
		t.Fatalf("header and footer must stay pinned: %v", orders)
	}
	if orders[sections[2].ID] != 0 || orders[sections[1].ID] != 1 {
		t.Fatalf("middle sections must renumber from 0: %v", orders)
	}
}

func TestSectionOrdersIgnoresForeignIDs(t *testing.T) {
	sections := []models.StorefrontSection{
		{ID: uuid.New(), SectionKey: "hero"},
	}
	orders := sectionOrders(sections, []uuid.UUID{uuid.New(), sections[0].ID})
	if len(orders) != 1 || orders[sections[0].ID] != 0 {
		t.Fatalf("foreign ids must be ignored: %v", orders)
	}
}

func TestComponentPositionsContiguous(t *testing.T) {
	components := []models.StorefrontComponent{
		{ID: uuid.New(), PositionOrder: 0},
		{ID: uuid.New(), PositionOrder: 1},
		{ID: uuid.New(), PositionOrder: 2},
	}
	moved := moveItem(componentIDs(components), 2, 0)
	positions := componentPositions(components, moved)

	if positions[components[2].ID] != 0 || positions[components[0].ID] != 1 || positions[components[1].ID] != 2 {
		t.Fatalf("positions must follow the new order: %v", positions)
	}
}
