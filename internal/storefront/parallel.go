package storefront

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/leafline/leafline-backend/pkg/llm"
	"github.com/leafline/leafline-backend/pkg/logger"
)

// ParallelResult is the merged outcome of the five concurrent page-group
// calls. Success is true only when every group succeeded; partial results
// from the groups that did succeed are always merged and returned.
type ParallelResult struct {
	Design  Design
	Success bool
	Errors  []string
	Groups  []GroupResult
}

// ParallelGenerator fans one completion call out per fixed page group.
type ParallelGenerator struct {
	completer    llm.Completer
	registry     *Registry
	groupTimeout time.Duration
	logger       *logger.Logger
}

// NewParallelGenerator wires the completion client. groupTimeout bounds each
// group call so one stuck group cannot stall the await-all.
func NewParallelGenerator(completer llm.Completer, registry *Registry, groupTimeout time.Duration, logg *logger.Logger) *ParallelGenerator {
	return &ParallelGenerator{completer: completer, registry: registry, groupTimeout: groupTimeout, logger: logg}
}

// Generate runs all five page groups concurrently with await-all semantics:
// a group's failure never cancels its siblings, it just contributes an empty
// failed GroupResult. The merge afterward is single-threaded and pure.
func (p *ParallelGenerator) Generate(ctx context.Context, vendor VendorData) ParallelResult {
	results := make([]GroupResult, len(pageGroups))

	var g errgroup.Group
	for i, group := range pageGroups {
		i, group := i, group
		g.Go(func() error {
			results[i] = p.generateGroup(ctx, vendor, group)
			return nil
		})
	}
	// The goroutines never return errors; failures live in the results.
	_ = g.Wait()

	merged := MergeGroupResults(results)

	var combined error
	for _, r := range results {
		if !r.Success && r.Err != nil {
			combined = multierr.Append(combined, fmt.Errorf("group %s: %w", r.Group, r.Err))
		}
	}

	out := ParallelResult{
		Design:  merged,
		Success: combined == nil,
		Groups:  results,
	}
	for _, err := range multierr.Errors(combined) {
		out.Errors = append(out.Errors, err.Error())
	}
	return out
}

func (p *ParallelGenerator) generateGroup(ctx context.Context, vendor VendorData, group pageGroup) GroupResult {
	if p.groupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.groupTimeout)
		defer cancel()
	}

	raw, err := p.completer.Complete(ctx, llm.Request{
		System: designSystemPrompt,
		User:   groupPrompt(vendor, p.registry, group),
	})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("timeout after %s: %w", p.groupTimeout, err)
		}
		p.warnGroup(ctx, group, "page group generation failed", err)
		return GroupResult{Group: group.name, Sections: []Section{}, Components: []Component{}, Err: err}
	}

	design, err := parseDesign(raw)
	if err != nil {
		p.warnGroup(ctx, group, "page group returned unparseable design", err)
		return GroupResult{Group: group.name, Sections: []Section{}, Components: []Component{}, Err: err}
	}

	return GroupResult{
		Group:      group.name,
		Sections:   design.Sections,
		Components: design.Components,
		Success:    true,
	}
}

func (p *ParallelGenerator) warnGroup(ctx context.Context, group pageGroup, msg string, err error) {
	if p.logger == nil {
		return
	}
	ctx = p.logger.WithFields(ctx, map[string]any{"group": group.name, "error": err.Error()})
	p.logger.Warn(ctx, msg)
}

// MergeGroupResults merges group outputs in group order. The header and
// footer sections are site-wide singletons: only their first occurrence
// across all groups is admitted, tracked with a seen-set, and smart_header /
// smart_footer components are suppressed the same way. All other section
// keys are admitted unconditionally since distinct page groups may reuse a
// key scoped to different page types.
func MergeGroupResults(results []GroupResult) Design {
	merged := Design{}
	seenSections := map[string]struct{}{}
	seenComponents := map[string]struct{}{}

	for _, r := range results {
		for _, s := range r.Sections {
			if singletonSection(s.SectionKey) {
				if _, dup := seenSections[s.SectionKey]; dup {
					continue
				}
				seenSections[s.SectionKey] = struct{}{}
			}
			merged.Sections = append(merged.Sections, s)
		}
		for _, c := range r.Components {
			if singletonComponent(c.ComponentKey) {
				if _, dup := seenComponents[c.ComponentKey]; dup {
					continue
				}
				seenComponents[c.ComponentKey] = struct{}{}
			}
			merged.Components = append(merged.Components, c)
		}
	}
	return normalizePositions(merged)
}

func singletonSection(key string) bool {
	return key == "header" || key == "footer"
}

func singletonComponent(key string) bool {
	return key == "smart_header" || key == "smart_footer"
}
