package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leafline/leafline-backend/internal/storefront"
	"github.com/leafline/leafline-backend/pkg/db/models"
	pkgerrors "github.com/leafline/leafline-backend/pkg/errors"
	"github.com/leafline/leafline-backend/pkg/logger"
	"github.com/leafline/leafline-backend/pkg/types"
)

type repository interface {
	FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	SectionsForVendor(ctx context.Context, vendorID uuid.UUID) ([]models.StorefrontSection, error)
	ComponentsInSection(ctx context.Context, vendorID, sectionID uuid.UUID) ([]models.StorefrontComponent, error)
	FindSection(ctx context.Context, vendorID, sectionID uuid.UUID) (*models.StorefrontSection, error)
	FindComponent(ctx context.Context, vendorID, componentID uuid.UUID) (*models.StorefrontComponent, error)
	GetDesign(ctx context.Context, vendorID uuid.UUID) ([]models.StorefrontSection, []models.StorefrontComponent, error)
	UpdateSectionOrders(ctx context.Context, vendorID uuid.UUID, orders map[uuid.UUID]int) error
	UpdateComponentPositions(ctx context.Context, vendorID, sectionID uuid.UUID, positions map[uuid.UUID]int) error
	UpdateComponentContent(ctx context.Context, vendorID, componentID uuid.UUID, props, bindings types.JSONMap) error
	InsertComponent(ctx context.Context, row *models.StorefrontComponent) error
	DeleteComponent(ctx context.Context, vendorID, componentID uuid.UUID) error
	DeleteSection(ctx context.Context, vendorID, sectionID uuid.UUID) error
}

type previewPublisher interface {
	Publish(ctx context.Context, channel string, payload any) error
	PreviewChannel(vendorID string) string
}

// AddComponentInput is the request body for appending a component to a
// section.
type AddComponentInput struct {
	SectionID     uuid.UUID     `json:"section_id" validate:"required"`
	ComponentKey  string        `json:"component_key" validate:"required,min=1,max=64"`
	Props         types.JSONMap `json:"props"`
	FieldBindings types.JSONMap `json:"field_bindings"`
}

// UpdateComponentInput carries a shallow patch of props and bindings.
type UpdateComponentInput struct {
	Props         types.JSONMap `json:"props"`
	FieldBindings types.JSONMap `json:"field_bindings"`
}

// Service reconciles live editor mutations against the persisted design.
// Edits are single-writer per vendor; every successful mutation renumbers the
// affected order fields contiguously and pushes a full snapshot to the
// vendor's preview channel.
type Service interface {
	MoveSection(ctx context.Context, vendorID, sectionID uuid.UUID, toIndex int) (*storefront.StorefrontDTO, error)
	ReorderSections(ctx context.Context, vendorID uuid.UUID, orderedIDs []uuid.UUID) (*storefront.StorefrontDTO, error)
	MoveComponent(ctx context.Context, vendorID, componentID, targetID uuid.UUID) (*storefront.StorefrontDTO, error)
	ReorderComponents(ctx context.Context, vendorID, sectionID uuid.UUID, orderedIDs []uuid.UUID) (*storefront.StorefrontDTO, error)
	UpdateComponent(ctx context.Context, vendorID, componentID uuid.UUID, input UpdateComponentInput) (*storefront.ComponentDTO, error)
	AddComponent(ctx context.Context, vendorID uuid.UUID, input AddComponentInput) (*storefront.ComponentDTO, error)
	RemoveComponent(ctx context.Context, vendorID, componentID uuid.UUID) (*storefront.StorefrontDTO, error)
	RemoveSection(ctx context.Context, vendorID, sectionID uuid.UUID) (*storefront.StorefrontDTO, error)
	Drags() *DragTracker
}

type service struct {
	repo     repository
	registry *storefront.Registry
	preview  previewPublisher
	drags    *DragTracker
	logger   *logger.Logger

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewService wires the reconciliation service. The preview publisher may be
// nil, in which case snapshots are skipped.
func NewService(repo repository, registry *storefront.Registry, preview previewPublisher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("storefront repository required")
	}
	if registry == nil {
		return nil, fmt.Errorf("component registry required")
	}
	return &service{
		repo:     repo,
		registry: registry,
		preview:  preview,
		drags:    NewDragTracker(),
		logger:   logg,
		locks:    make(map[uuid.UUID]*sync.Mutex),
	}, nil
}

func (s *service) Drags() *DragTracker {
	return s.drags
}

// vendorLock returns the per-vendor edit mutex, creating it on first use.
func (s *service) vendorLock(vendorID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[vendorID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[vendorID] = lock
	}
	return lock
}

// MoveSection moves one section to a new index in the ordered list and
// renumbers every section. Header and footer are pinned; moving them is a
// no-op.
func (s *service) MoveSection(ctx context.Context, vendorID, sectionID uuid.UUID, toIndex int) (*storefront.StorefrontDTO, error) {
	lock := s.vendorLock(vendorID)
	lock.Lock()
	defer lock.Unlock()
	defer s.drags.End(vendorID)

	sections, err := s.repo.SectionsForVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sections")
	}

	ids := sectionIDs(sections)
	from := indexOfID(ids, sectionID)
	if from < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "section not found")
	}
	if sections[from].SectionKey == "header" || sections[from].SectionKey == "footer" {
		return s.snapshot(ctx, vendorID, false)
	}

	moved := moveItem(ids, from, toIndex)
	if indexOfID(moved, sectionID) == from {
		return s.snapshot(ctx, vendorID, false)
	}
	return s.applySectionOrder(ctx, vendorID, sections, moved)
}

// ReorderSections applies a full explicit ordering from the dashboard.
func (s *service) ReorderSections(ctx context.Context, vendorID uuid.UUID, orderedIDs []uuid.UUID) (*storefront.StorefrontDTO, error) {
	lock := s.vendorLock(vendorID)
	lock.Lock()
	defer lock.Unlock()
	defer s.drags.End(vendorID)

	sections, err := s.repo.SectionsForVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sections")
	}
	if len(orderedIDs) != len(sections) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("expected %d section ids, got %d", len(sections), len(orderedIDs)))
	}
	return s.applySectionOrder(ctx, vendorID, sections, orderedIDs)
}

func (s *service) applySectionOrder(ctx context.Context, vendorID uuid.UUID, sections []models.StorefrontSection, orderedIDs []uuid.UUID) (*storefront.StorefrontDTO, error) {
	orders := sectionOrders(sections, orderedIDs)
	if len(orders) != len(sections) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "section ids do not match the persisted design")
	}
	if err := s.repo.UpdateSectionOrders(ctx, vendorID, orders); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update section orders")
	}
	return s.snapshot(ctx, vendorID, true)
}

// MoveComponent drops one component onto another. Source and target must share
// the owning section; a cross-section drop is a silent no-op returning the
// unchanged design.
func (s *service) MoveComponent(ctx context.Context, vendorID, componentID, targetID uuid.UUID) (*storefront.StorefrontDTO, error) {
	lock := s.vendorLock(vendorID)
	lock.Lock()
	defer lock.Unlock()
	defer s.drags.End(vendorID)

	source, err := s.findComponent(ctx, vendorID, componentID)
	if err != nil {
		return nil, err
	}
	if componentID == targetID {
		return s.snapshot(ctx, vendorID, false)
	}
	target, err := s.findComponent(ctx, vendorID, targetID)
	if err != nil {
		return nil, err
	}
	if source.SectionID != target.SectionID {
		return s.snapshot(ctx, vendorID, false)
	}

	components, err := s.repo.ComponentsInSection(ctx, vendorID, source.SectionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load section components")
	}
	ids := componentIDs(components)
	moved := moveItem(ids, indexOfID(ids, componentID), indexOfID(ids, targetID))

	positions := componentPositions(components, moved)
	if err := s.repo.UpdateComponentPositions(ctx, vendorID, source.SectionID, positions); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update component positions")
	}
	return s.snapshot(ctx, vendorID, true)
}

// ReorderComponents applies a full explicit ordering for one section.
func (s *service) ReorderComponents(ctx context.Context, vendorID, sectionID uuid.UUID, orderedIDs []uuid.UUID) (*storefront.StorefrontDTO, error) {
	lock := s.vendorLock(vendorID)
	lock.Lock()
	defer lock.Unlock()
	defer s.drags.End(vendorID)

	if _, err := s.repo.FindSection(ctx, vendorID, sectionID); err != nil {
		return nil, mapLookupError(err, "section not found")
	}
	components, err := s.repo.ComponentsInSection(ctx, vendorID, sectionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load section components")
	}

	positions := componentPositions(components, orderedIDs)
	if len(positions) != len(components) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "component ids do not match the section")
	}
	if err := s.repo.UpdateComponentPositions(ctx, vendorID, sectionID, positions); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update component positions")
	}
	return s.snapshot(ctx, vendorID, true)
}

// UpdateComponent merges the patch into the stored props and bindings
// shallowly: provided keys override, untouched keys persist.
func (s *service) UpdateComponent(ctx context.Context, vendorID, componentID uuid.UUID, input UpdateComponentInput) (*storefront.ComponentDTO, error) {
	lock := s.vendorLock(vendorID)
	lock.Lock()
	defer lock.Unlock()

	component, err := s.findComponent(ctx, vendorID, componentID)
	if err != nil {
		return nil, err
	}

	props := mergeShallow(component.Props, input.Props)
	bindings := mergeShallow(component.FieldBindings, input.FieldBindings)
	if problems := s.registry.CheckProps(component.ComponentKey, props); len(problems) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, problems[0])
	}

	if err := s.repo.UpdateComponentContent(ctx, vendorID, componentID, props, bindings); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update component")
	}

	component.Props = props
	component.FieldBindings = bindings
	s.publishPreview(ctx, vendorID)
	dto := storefront.ComponentFromModel(*component)
	return &dto, nil
}

// AddComponent appends a component at the end of a section.
func (s *service) AddComponent(ctx context.Context, vendorID uuid.UUID, input AddComponentInput) (*storefront.ComponentDTO, error) {
	lock := s.vendorLock(vendorID)
	lock.Lock()
	defer lock.Unlock()

	if !s.registry.Contains(input.ComponentKey) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unknown component_key %q", input.ComponentKey))
	}
	if _, err := s.repo.FindSection(ctx, vendorID, input.SectionID); err != nil {
		return nil, mapLookupError(err, "section not found")
	}

	props := input.Props
	if props == nil {
		props = types.JSONMap{}
	}
	if problems := s.registry.CheckProps(input.ComponentKey, props); len(problems) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, problems[0])
	}

	existing, err := s.repo.ComponentsInSection(ctx, vendorID, input.SectionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load section components")
	}

	row := &models.StorefrontComponent{
		SectionID:     input.SectionID,
		VendorID:      vendorID,
		ComponentKey:  input.ComponentKey,
		Props:         props,
		FieldBindings: input.FieldBindings,
		PositionOrder: len(existing),
		IsEnabled:     true,
		IsVisible:     true,
	}
	if err := s.repo.InsertComponent(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert component")
	}

	s.publishPreview(ctx, vendorID)
	dto := storefront.ComponentFromModel(*row)
	return &dto, nil
}

// RemoveComponent deletes one component and closes the position gap it leaves.
func (s *service) RemoveComponent(ctx context.Context, vendorID, componentID uuid.UUID) (*storefront.StorefrontDTO, error) {
	lock := s.vendorLock(vendorID)
	lock.Lock()
	defer lock.Unlock()

	component, err := s.findComponent(ctx, vendorID, componentID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteComponent(ctx, vendorID, componentID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete component")
	}

	remaining, err := s.repo.ComponentsInSection(ctx, vendorID, component.SectionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load section components")
	}
	positions := componentPositions(remaining, componentIDs(remaining))
	if err := s.repo.UpdateComponentPositions(ctx, vendorID, component.SectionID, positions); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "renumber components")
	}
	return s.snapshot(ctx, vendorID, true)
}

// RemoveSection deletes one section with everything inside it and renumbers
// the survivors.
func (s *service) RemoveSection(ctx context.Context, vendorID, sectionID uuid.UUID) (*storefront.StorefrontDTO, error) {
	lock := s.vendorLock(vendorID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.repo.FindSection(ctx, vendorID, sectionID); err != nil {
		return nil, mapLookupError(err, "section not found")
	}
	if err := s.repo.DeleteSection(ctx, vendorID, sectionID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete section")
	}

	remaining, err := s.repo.SectionsForVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sections")
	}
	orders := sectionOrders(remaining, sectionIDs(remaining))
	if err := s.repo.UpdateSectionOrders(ctx, vendorID, orders); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "renumber sections")
	}
	return s.snapshot(ctx, vendorID, true)
}

func (s *service) findComponent(ctx context.Context, vendorID, componentID uuid.UUID) (*models.StorefrontComponent, error) {
	component, err := s.repo.FindComponent(ctx, vendorID, componentID)
	if err != nil {
		return nil, mapLookupError(err, "component not found")
	}
	return component, nil
}

// snapshot reloads the persisted design and, when publish is set, pushes it
// to the vendor's preview channel.
func (s *service) snapshot(ctx context.Context, vendorID uuid.UUID, publish bool) (*storefront.StorefrontDTO, error) {
	vendor, err := s.repo.FindVendor(ctx, vendorID)
	if err != nil {
		return nil, mapLookupError(err, "vendor not found")
	}
	sections, components, err := s.repo.GetDesign(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load design")
	}
	dto := storefront.AssembleStorefront(vendor, sections, components)
	if publish {
		s.publishSnapshot(ctx, vendorID, dto)
	}
	return dto, nil
}

func (s *service) publishPreview(ctx context.Context, vendorID uuid.UUID) {
	dto, err := s.snapshot(ctx, vendorID, false)
	if err != nil {
		s.warn(ctx, vendorID, "preview snapshot load failed", err)
		return
	}
	s.publishSnapshot(ctx, vendorID, dto)
}

// publishSnapshot pushes the full design to the preview channel. Publish
// failures never fail the edit; the preview surface catches up on the next
// mutation.
func (s *service) publishSnapshot(ctx context.Context, vendorID uuid.UUID, dto *storefront.StorefrontDTO) {
	if s.preview == nil {
		return
	}
	payload, err := json.Marshal(dto)
	if err != nil {
		s.warn(ctx, vendorID, "preview snapshot marshal failed", err)
		return
	}
	channel := s.preview.PreviewChannel(vendorID.String())
	if err := s.preview.Publish(ctx, channel, payload); err != nil {
		s.warn(ctx, vendorID, "preview snapshot publish failed", err)
	}
}

func (s *service) warn(ctx context.Context, vendorID uuid.UUID, msg string, err error) {
	if s.logger == nil {
		return
	}
	ctx = s.logger.WithVendorID(ctx, vendorID.String())
	if err != nil {
		ctx = s.logger.WithFields(ctx, map[string]any{"error": err.Error()})
	}
	s.logger.Warn(ctx, msg)
}

func mergeShallow(base, patch types.JSONMap) types.JSONMap {
	merged := base.Clone()
	if merged == nil {
		merged = types.JSONMap{}
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}

func mapLookupError(err error, notFoundMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMsg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load record")
}
