package editor

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leafline/leafline-backend/internal/storefront"
	"github.com/leafline/leafline-backend/pkg/db/models"
	pkgerrors "github.com/leafline/leafline-backend/pkg/errors"
	"github.com/leafline/leafline-backend/pkg/types"
)

type fakeRepo struct {
	vendor     *models.Vendor
	sections   []models.StorefrontSection
	components []models.StorefrontComponent

	sectionOrderCalls int
	positionCalls     int
}

func (f *fakeRepo) FindVendor(_ context.Context, id uuid.UUID) (*models.Vendor, error) {
	if f.vendor == nil || f.vendor.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.vendor, nil
}

func (f *fakeRepo) SectionsForVendor(context.Context, uuid.UUID) ([]models.StorefrontSection, error) {
	out := append([]models.StorefrontSection(nil), f.sections...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SectionOrder < out[j].SectionOrder })
	return out, nil
}

func (f *fakeRepo) ComponentsInSection(_ context.Context, _ uuid.UUID, sectionID uuid.UUID) ([]models.StorefrontComponent, error) {
	var out []models.StorefrontComponent
	for _, c := range f.components {
		if c.SectionID == sectionID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PositionOrder < out[j].PositionOrder })
	return out, nil
}

func (f *fakeRepo) FindSection(_ context.Context, _ uuid.UUID, sectionID uuid.UUID) (*models.StorefrontSection, error) {
	for i := range f.sections {
		if f.sections[i].ID == sectionID {
			section := f.sections[i]
			return &section, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindComponent(_ context.Context, _ uuid.UUID, componentID uuid.UUID) (*models.StorefrontComponent, error) {
	for i := range f.components {
		if f.components[i].ID == componentID {
			component := f.components[i]
			return &component, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetDesign(ctx context.Context, vendorID uuid.UUID) ([]models.StorefrontSection, []models.StorefrontComponent, error) {
	sections, _ := f.SectionsForVendor(ctx, vendorID)
	components := append([]models.StorefrontComponent(nil), f.components...)
	sort.SliceStable(components, func(i, j int) bool { return components[i].PositionOrder < components[j].PositionOrder })
	return sections, components, nil
}

func (f *fakeRepo) UpdateSectionOrders(_ context.Context, _ uuid.UUID, orders map[uuid.UUID]int) error {
	f.sectionOrderCalls++
	for i := range f.sections {
		if order, ok := orders[f.sections[i].ID]; ok {
			f.sections[i].SectionOrder = order
		}
	}
	return nil
}

func (f *fakeRepo) UpdateComponentPositions(_ context.Context, _ uuid.UUID, _ uuid.UUID, positions map[uuid.UUID]int) error {
	f.positionCalls++
	for i := range f.components {
		if position, ok := positions[f.components[i].ID]; ok {
			f.components[i].PositionOrder = position
		}
	}
	return nil
}

func (f *fakeRepo) UpdateComponentContent(_ context.Context, _ uuid.UUID, componentID uuid.UUID, props, bindings types.JSONMap) error {
	for i := range f.components {
		if f.components[i].ID == componentID {
			f.components[i].Props = props
			f.components[i].FieldBindings = bindings
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) InsertComponent(_ context.Context, row *models.StorefrontComponent) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	f.components = append(f.components, *row)
	return nil
}

func (f *fakeRepo) DeleteComponent(_ context.Context, _ uuid.UUID, componentID uuid.UUID) error {
	kept := f.components[:0]
	for _, c := range f.components {
		if c.ID != componentID {
			kept = append(kept, c)
		}
	}
	f.components = kept
	return nil
}

func (f *fakeRepo) DeleteSection(_ context.Context, _ uuid.UUID, sectionID uuid.UUID) error {
	keptSections := f.sections[:0]
	for _, s := range f.sections {
		if s.ID != sectionID {
			keptSections = append(keptSections, s)
		}
	}
	f.sections = keptSections

	keptComponents := f.components[:0]
	for _, c := range f.components {
		if c.SectionID != sectionID {
			keptComponents = append(keptComponents, c)
		}
	}
	f.components = keptComponents
	return nil
}

type fakePublisher struct {
	channels []string
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, channel string, _ any) error {
	if f.err != nil {
		return f.err
	}
	f.channels = append(f.channels, channel)
	return nil
}

func (f *fakePublisher) PreviewChannel(vendorID string) string {
	return "lf:preview:" + vendorID
}

func editableDesign() *fakeRepo {
	vendor := &models.Vendor{ID: uuid.New(), CompanyName: "Wilson's", Slug: "wilsons"}
	repo := &fakeRepo{vendor: vendor}

	keys := []struct {
		key   string
		order int
	}{
		{"header", -1},
		{"hero", 0},
		{"features", 1},
		{"products", 2},
		{"footer", 999},
	}
	for _, k := range keys {
		repo.sections = append(repo.sections, models.StorefrontSection{
			ID: uuid.New(), VendorID: vendor.ID, SectionKey: k.key, SectionOrder: k.order,
		})
	}

	heroID := repo.sections[1].ID
	featuresID := repo.sections[2].ID
	repo.components = append(repo.components,
		models.StorefrontComponent{ID: uuid.New(), SectionID: heroID, VendorID: vendor.ID, ComponentKey: "text", Props: types.JSONMap{"text": "Hi", "color": "#fff"}, PositionOrder: 0},
		models.StorefrontComponent{ID: uuid.New(), SectionID: heroID, VendorID: vendor.ID, ComponentKey: "spacer", Props: types.JSONMap{"height": float64(24)}, PositionOrder: 1},
		models.StorefrontComponent{ID: uuid.New(), SectionID: heroID, VendorID: vendor.ID, ComponentKey: "button", Props: types.JSONMap{"label": "Shop"}, PositionOrder: 2},
		models.StorefrontComponent{ID: uuid.New(), SectionID: featuresID, VendorID: vendor.ID, ComponentKey: "text", Props: types.JSONMap{"text": "Features"}, PositionOrder: 0},
	)
	return repo
}

func newEditorService(t *testing.T, repo *fakeRepo, publisher previewPublisher) Service {
	t.Helper()
	svc, err := NewService(repo, storefront.DefaultRegistry(), publisher, nil)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func sectionByKey(repo *fakeRepo, key string) models.StorefrontSection {
	for _, s := range repo.sections {
		if s.SectionKey == key {
			return s
		}
	}
	return models.StorefrontSection{}
}

func TestMoveSectionRenumbersContiguously(t *testing.T) {
	repo := editableDesign()
	publisher := &fakePublisher{}
	svc := newEditorService(t, repo, publisher)
	ctx := context.Background()

	// products sits at index 3 of the ordered list; drop it at index 1,
	// directly after the pinned header
	products := sectionByKey(repo, "products")
	dto, err := svc.MoveSection(ctx, repo.vendor.ID, products.ID, 1)
	if err != nil {
		t.Fatalf("move section: %v", err)
	}

	got := map[string]int{}
	for _, s := range repo.sections {
		got[s.SectionKey] = s.SectionOrder
	}
	if got["header"] != -1 || got["footer"] != 999 {
		t.Fatalf("pinned sections moved: %v", got)
	}
	if got["products"] != 0 || got["hero"] != 1 || got["features"] != 2 {
		t.Fatalf("middle sections must renumber 0,1,2: %v", got)
	}

	if dto.Sections[0].SectionKey != "header" {
		t.Fatalf("snapshot must come back ordered, got %q first", dto.Sections[0].SectionKey)
	}
	if len(publisher.channels) != 1 {
		t.Fatalf("successful reorder must publish one snapshot, got %d", len(publisher.channels))
	}
	if publisher.channels[0] != "lf:preview:"+repo.vendor.ID.String() {
		t.Fatalf("wrong preview channel: %s", publisher.channels[0])
	}
}

func TestMoveSectionHeaderIsNoOp(t *testing.T) {
	repo := editableDesign()
	publisher := &fakePublisher{}
	svc := newEditorService(t, repo, publisher)

	header := sectionByKey(repo, "header")
	if _, err := svc.MoveSection(context.Background(), repo.vendor.ID, header.ID, 2); err != nil {
		t.Fatalf("pinned move must not error: %v", err)
	}
	if repo.sectionOrderCalls != 0 {
		t.Fatal("pinned move must not touch persistence")
	}
	if len(publisher.channels) != 0 {
		t.Fatal("no-op must not publish a snapshot")
	}
}

func TestMoveSectionSamePositionIsNoOp(t *testing.T) {
	repo := editableDesign()
	svc := newEditorService(t, repo, nil)

	hero := sectionByKey(repo, "hero")
	if _, err := svc.MoveSection(context.Background(), repo.vendor.ID, hero.ID, 1); err != nil {
		t.Fatalf("same-position move must not error: %v", err)
	}
	if repo.sectionOrderCalls != 0 {
		t.Fatal("same-position move must not touch persistence")
	}
}

func TestMoveComponentCrossSectionIsSilentNoOp(t *testing.T) {
	repo := editableDesign()
	publisher := &fakePublisher{}
	svc := newEditorService(t, repo, publisher)

	heroText := repo.components[0]
	featuresText := repo.components[3]
	dto, err := svc.MoveComponent(context.Background(), repo.vendor.ID, heroText.ID, featuresText.ID)
	if err != nil {
		t.Fatalf("cross-section drop must not error: %v", err)
	}
	if dto == nil {
		t.Fatal("unchanged design must still be returned")
	}
	if repo.positionCalls != 0 {
		t.Fatal("cross-section drop must not touch persistence")
	}
	if len(publisher.channels) != 0 {
		t.Fatal("cross-section drop must not publish")
	}
}

func TestMoveComponentWithinSection(t *testing.T) {
	repo := editableDesign()
	svc := newEditorService(t, repo, nil)

	button := repo.components[2]
	text := repo.components[0]
	if _, err := svc.MoveComponent(context.Background(), repo.vendor.ID, button.ID, text.ID); err != nil {
		t.Fatalf("move component: %v", err)
	}

	positions := map[string]int{}
	for _, c := range repo.components {
		if c.SectionID == button.SectionID {
			positions[c.ComponentKey] = c.PositionOrder
		}
	}
	if positions["button"] != 0 || positions["text"] != 1 || positions["spacer"] != 2 {
		t.Fatalf("positions must renumber to the new order: %v", positions)
	}
}

func TestUpdateComponentShallowMerge(t *testing.T) {
	repo := editableDesign()
	svc := newEditorService(t, repo, nil)

	target := repo.components[0]
	dto, err := svc.UpdateComponent(context.Background(), repo.vendor.ID, target.ID, UpdateComponentInput{
		Props: types.JSONMap{"text": "New headline"},
	})
	if err != nil {
		t.Fatalf("update component: %v", err)
	}
	if dto.Props["text"] != "New headline" {
		t.Fatalf("patched key must override: %v", dto.Props)
	}
	if dto.Props["color"] != "#fff" {
		t.Fatalf("untouched keys must persist: %v", dto.Props)
	}
}

func TestUpdateComponentRejectsInvalidProps(t *testing.T) {
	repo := editableDesign()
	svc := newEditorService(t, repo, nil)

	target := repo.components[0]
	_, err := svc.UpdateComponent(context.Background(), repo.vendor.ID, target.ID, UpdateComponentInput{
		Props: types.JSONMap{"alignment": "diagonal"},
	})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.components[0].Props["alignment"] == "diagonal" {
		t.Fatal("rejected patch must not persist")
	}
}

func TestAddComponentAppendsAtEnd(t *testing.T) {
	repo := editableDesign()
	svc := newEditorService(t, repo, nil)

	hero := sectionByKey(repo, "hero")
	dto, err := svc.AddComponent(context.Background(), repo.vendor.ID, AddComponentInput{
		SectionID:    hero.ID,
		ComponentKey: "badge",
		Props:        types.JSONMap{"label": "NEW"},
	})
	if err != nil {
		t.Fatalf("add component: %v", err)
	}
	if dto.PositionOrder != 3 {
		t.Fatalf("new component must append at the end, got position %d", dto.PositionOrder)
	}
	if dto.ID == uuid.Nil {
		t.Fatal("inserted component must get an id")
	}
	if !dto.IsEnabled || !dto.IsVisible {
		t.Fatal("new components start enabled and visible")
	}
}

func TestAddComponentRejectsUnknownKey(t *testing.T) {
	repo := editableDesign()
	svc := newEditorService(t, repo, nil)

	hero := sectionByKey(repo, "hero")
	_, err := svc.AddComponent(context.Background(), repo.vendor.ID, AddComponentInput{
		SectionID:    hero.ID,
		ComponentKey: "hologram",
	})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRemoveComponentClosesPositionGap(t *testing.T) {
	repo := editableDesign()
	svc := newEditorService(t, repo, nil)

	spacer := repo.components[1]
	if _, err := svc.RemoveComponent(context.Background(), repo.vendor.ID, spacer.ID); err != nil {
		t.Fatalf("remove component: %v", err)
	}

	positions := map[string]int{}
	for _, c := range repo.components {
		if c.SectionID == spacer.SectionID {
			positions[c.ComponentKey] = c.PositionOrder
		}
	}
	if positions["text"] != 0 || positions["button"] != 1 {
		t.Fatalf("survivors must renumber contiguously: %v", positions)
	}
}

func TestRemoveSectionCascades(t *testing.T) {
	repo := editableDesign()
	svc := newEditorService(t, repo, nil)

	features := sectionByKey(repo, "features")
	if _, err := svc.RemoveSection(context.Background(), repo.vendor.ID, features.ID); err != nil {
		t.Fatalf("remove section: %v", err)
	}

	for _, c := range repo.components {
		if c.SectionID == features.ID {
			t.Fatal("section components must be removed with it")
		}
	}
	got := map[string]int{}
	for _, s := range repo.sections {
		got[s.SectionKey] = s.SectionOrder
	}
	if got["hero"] != 0 || got["products"] != 1 {
		t.Fatalf("survivors must renumber from 0: %v", got)
	}
}

func TestReorderSectionsRejectsWrongCount(t *testing.T) {
	repo := editableDesign()
	svc := newEditorService(t, repo, nil)

	_, err := svc.ReorderSections(context.Background(), repo.vendor.ID, []uuid.UUID{uuid.New()})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPublishFailureDoesNotFailEdit(t *testing.T) {
	repo := editableDesign()
	publisher := &fakePublisher{err: errors.New("redis down")}
	svc := newEditorService(t, repo, publisher)

	products := sectionByKey(repo, "products")
	if _, err := svc.MoveSection(context.Background(), repo.vendor.ID, products.ID, 1); err != nil {
		t.Fatalf("publish failure must not surface: %v", err)
	}
	if repo.sectionOrderCalls != 1 {
		t.Fatal("edit must still persist")
	}
}

func TestEditorRejectsUnknownComponent(t *testing.T) {
	repo := editableDesign()
	svc := newEditorService(t, repo, nil)

	_, err := svc.UpdateComponent(context.Background(), repo.vendor.ID, uuid.New(), UpdateComponentInput{})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestMoveEndsActiveDrag(t *testing.T) {
	repo := editableDesign()
	svc := newEditorService(t, repo, nil)

	products := sectionByKey(repo, "products")
	if err := svc.Drags().Start(repo.vendor.ID, DragSection, products.ID); err != nil {
		t.Fatalf("start drag: %v", err)
	}
	if _, err := svc.MoveSection(context.Background(), repo.vendor.ID, products.ID, 1); err != nil {
		t.Fatalf("move section: %v", err)
	}
	if _, _, ok := svc.Drags().Active(repo.vendor.ID); ok {
		t.Fatal("drop must clear the active drag")
	}
}
