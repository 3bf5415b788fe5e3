package storefront

import (
	"context"
	"encoding/json"
	"strings"

	pkgerrors "github.com/leafline/leafline-backend/pkg/errors"
	"github.com/leafline/leafline-backend/pkg/llm"
	"github.com/leafline/leafline-backend/pkg/logger"
)

// Generator produces designs from the completion service without a template.
type Generator struct {
	completer llm.Completer
	registry  *Registry
	validator *Validator
	logger    *logger.Logger
}

// NewGenerator wires the completion client and catalog.
func NewGenerator(completer llm.Completer, registry *Registry, validator *Validator, logg *logger.Logger) *Generator {
	return &Generator{completer: completer, registry: registry, validator: validator, logger: logg}
}

// Generate runs the single-shot strategy: one whole-site completion call. A
// parse failure of the first response is a hard error. On validation failure
// it performs exactly one repair round-trip, then unconditionally auto-fixes
// whatever it holds so total work is bounded.
func (g *Generator) Generate(ctx context.Context, vendor VendorData) (Design, error) {
	raw, err := g.completer.Complete(ctx, llm.Request{
		System: designSystemPrompt,
		User:   sitePrompt(vendor, g.registry),
	})
	if err != nil {
		return Design{}, err
	}

	design, err := parseDesign(raw)
	if err != nil {
		return Design{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "completion returned unparseable design")
	}

	result := g.validator.Validate(design, vendor)
	if !result.Valid {
		design = g.repair(ctx, vendor, raw, design, result.Errors)
	}

	return AutoFix(design), nil
}

// repair sends the validation errors back once. A failed or unparseable
// repair response keeps the original design; the auto-fixer still runs.
func (g *Generator) repair(ctx context.Context, vendor VendorData, raw string, original Design, errs []string) Design {
	repaired, err := g.completer.Complete(ctx, llm.Request{
		System: designSystemPrompt,
		User:   repairPrompt(raw, errs),
	})
	if err != nil {
		g.warn(ctx, "design repair call failed", err)
		return original
	}
	design, err := parseDesign(repaired)
	if err != nil {
		g.warn(ctx, "design repair response unparseable", err)
		return original
	}
	if second := g.validator.Validate(design, vendor); !second.Valid && g.logger != nil {
		ctx = g.logger.WithFields(ctx, map[string]any{"errors": second.Errors})
		g.logger.Warn(ctx, "repaired design still invalid, deferring to auto-fix")
	}
	return design
}

func (g *Generator) warn(ctx context.Context, msg string, err error) {
	if g.logger == nil {
		return
	}
	ctx = g.logger.WithFields(ctx, map[string]any{"error": err.Error()})
	g.logger.Warn(ctx, msg)
}

// parseDesign strips any markdown fencing and decodes the design, then
// renumbers position_order per section from emission order.
func parseDesign(raw string) (Design, error) {
	var design Design
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &design); err != nil {
		return Design{}, err
	}
	return normalizePositions(design), nil
}

func stripCodeFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// drops the optional language tag line
		trimmed = trimmed[idx+1:]
	}
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}

// normalizePositions reassigns position_order contiguously per section,
// preserving the incoming emission order. Models sometimes emit one global
// counter across the whole array.
func normalizePositions(design Design) Design {
	counters := map[string]int{}
	for i := range design.Components {
		key := design.Components[i].SectionKey
		design.Components[i].PositionOrder = counters[key]
		counters[key]++
	}
	return design
}
