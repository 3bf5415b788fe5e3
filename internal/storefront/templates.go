package storefront

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/leafline/leafline-backend/pkg/db/models"
	"github.com/leafline/leafline-backend/pkg/enums"
	"github.com/leafline/leafline-backend/pkg/types"
)

// ComponentDefinition is one component inside a template section. Props may
// carry {{vendor.*}} tokens.
type ComponentDefinition struct {
	ComponentKey string        `json:"component_key"`
	Props        types.JSONMap `json:"props"`
}

// SectionDefinition is one ordered section blueprint inside a template.
type SectionDefinition struct {
	SectionKey   string                `json:"section_key"`
	SectionOrder int                   `json:"section_order"`
	PageType     enums.PageType        `json:"page_type"`
	Components   []ComponentDefinition `json:"components"`
}

// Template is an immutable catalog entry. It is only read and copied into a
// per-vendor design, never mutated at generation time.
type Template struct {
	TemplateID   string              `json:"template_id"`
	DesignSystem types.JSONMap       `json:"design_system,omitempty"`
	AllPages     []SectionDefinition `json:"all_pages"`
}

// TemplateStore loads templates by id.
type TemplateStore interface {
	Get(ctx context.Context, templateID string) (*Template, error)
	ListIDs(ctx context.Context) ([]string, error)
}

// DBTemplateStore reads templates from the flattened one-row-per-component
// catalog table, falling back to the builtin template for unknown ids.
type DBTemplateStore struct {
	db *gorm.DB
}

// NewDBTemplateStore binds the template catalog to a GORM DB.
func NewDBTemplateStore(db *gorm.DB) *DBTemplateStore {
	return &DBTemplateStore{db: db}
}

// Get loads a template by id. Rows are grouped into sections by section_key,
// first occurrence wins for section metadata. Unknown ids resolve to the
// builtin template when they match its id, otherwise an error.
func (s *DBTemplateStore) Get(ctx context.Context, templateID string) (*Template, error) {
	var rows []models.TemplateComponent
	err := s.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Order("section_order ASC, position_order ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		if builtin := BuiltinTemplate(templateID); builtin != nil {
			return builtin, nil
		}
		return nil, fmt.Errorf("template %q not found", templateID)
	}
	return assembleTemplate(templateID, rows), nil
}

// ListIDs returns every distinct template id, including builtins.
func (s *DBTemplateStore) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&models.TemplateComponent{}).
		Distinct("template_id").
		Pluck("template_id", &ids).Error
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	for _, id := range builtinTemplateIDs {
		if _, ok := seen[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func assembleTemplate(templateID string, rows []models.TemplateComponent) *Template {
	tmpl := &Template{TemplateID: templateID}
	index := map[string]int{}
	for _, row := range rows {
		idx, ok := index[row.SectionKey]
		if !ok {
			tmpl.AllPages = append(tmpl.AllPages, SectionDefinition{
				SectionKey:   row.SectionKey,
				SectionOrder: row.SectionOrder,
				PageType:     row.PageType,
			})
			idx = len(tmpl.AllPages) - 1
			index[row.SectionKey] = idx
		}
		tmpl.AllPages[idx].Components = append(tmpl.AllPages[idx].Components, ComponentDefinition{
			ComponentKey: row.ComponentKey,
			Props:        row.Props.Clone(),
		})
	}
	return tmpl
}
