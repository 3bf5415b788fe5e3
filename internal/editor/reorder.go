package editor

import (
	"github.com/google/uuid"

	"github.com/leafline/leafline-backend/pkg/db/models"
)

// moveItem returns a copy of ids with the element at from moved to to. Out of
// range indexes are clamped.
func moveItem(ids []uuid.UUID, from, to int) []uuid.UUID {
	out := append([]uuid.UUID(nil), ids...)
	if from < 0 || from >= len(out) {
		return out
	}
	if to < 0 {
		to = 0
	}
	if to >= len(out) {
		to = len(out) - 1
	}
	if from == to {
		return out
	}
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]uuid.UUID{moved}, out[to:]...)...)
	return out
}

// sectionOrders renumbers sections to match the given id order: header stays
// -1, footer stays 999, everything else counts up contiguously from 0. Ids
// not present in the section list are ignored.
func sectionOrders(sections []models.StorefrontSection, orderedIDs []uuid.UUID) map[uuid.UUID]int {
	byID := make(map[uuid.UUID]models.StorefrontSection, len(sections))
	for _, s := range sections {
		byID[s.ID] = s
	}

	orders := make(map[uuid.UUID]int, len(sections))
	next := 0
	for _, id := range orderedIDs {
		section, ok := byID[id]
		if !ok {
			continue
		}
		switch section.SectionKey {
		case "header":
			orders[id] = -1
		case "footer":
			orders[id] = 999
		default:
			orders[id] = next
			next++
		}
	}
	return orders
}

// componentPositions renumbers one section's components to match the given id
// order, contiguously from 0. Ids not in the section are ignored.
func componentPositions(components []models.StorefrontComponent, orderedIDs []uuid.UUID) map[uuid.UUID]int {
	known := make(map[uuid.UUID]struct{}, len(components))
	for _, c := range components {
		known[c.ID] = struct{}{}
	}

	positions := make(map[uuid.UUID]int, len(components))
	next := 0
	for _, id := range orderedIDs {
		if _, ok := known[id]; !ok {
			continue
		}
		positions[id] = next
		next++
	}
	return positions
}

func sectionIDs(sections []models.StorefrontSection) []uuid.UUID {
	ids := make([]uuid.UUID, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}
	return ids
}

func componentIDs(components []models.StorefrontComponent) []uuid.UUID {
	ids := make([]uuid.UUID, len(components))
	for i, c := range components {
		ids[i] = c.ID
	}
	return ids
}

func indexOfID(ids []uuid.UUID, id uuid.UUID) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}
