package storefront

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leafline/leafline-backend/pkg/config"
	"github.com/leafline/leafline-backend/pkg/db/models"
	pkgerrors "github.com/leafline/leafline-backend/pkg/errors"
	"github.com/leafline/leafline-backend/pkg/logger"
	"github.com/leafline/leafline-backend/pkg/metrics"
)

type designRepository interface {
	FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	MarkGenerated(ctx context.Context, vendorID uuid.UUID, templateID *string) error
	DeleteDesign(ctx context.Context, vendorID uuid.UUID) error
	InsertSections(ctx context.Context, vendorID uuid.UUID, sections []Section) (map[string]uuid.UUID, error)
	InsertComponents(ctx context.Context, vendorID uuid.UUID, idMap map[string]uuid.UUID, components []Component, batchSize int) int
	GetDesign(ctx context.Context, vendorID uuid.UUID) ([]models.StorefrontSection, []models.StorefrontComponent, error)
}

type singleShotGenerator interface {
	Generate(ctx context.Context, vendor VendorData) (Design, error)
}

type parallelGenerator interface {
	Generate(ctx context.Context, vendor VendorData) ParallelResult
}

// Service runs the full generation pipeline and serves persisted storefronts.
type Service interface {
	Generate(ctx context.Context, vendorID uuid.UUID, input GenerateInput) (*GenerationResult, error)
	GetStorefront(ctx context.Context, vendorID uuid.UUID) (*StorefrontDTO, error)
	ListTemplates(ctx context.Context) ([]string, error)
}

type service struct {
	repo      designRepository
	templates TemplateStore
	enricher  *Enricher
	single    singleShotGenerator
	parallel  parallelGenerator
	validator *Validator
	metrics   *metrics.GenerationMetrics
	logger    *logger.Logger
	cfg       config.StorefrontConfig
}

// NewService wires the generation pipeline.
func NewService(
	repo designRepository,
	templates TemplateStore,
	enricher *Enricher,
	single singleShotGenerator,
	parallel parallelGenerator,
	validator *Validator,
	gm *metrics.GenerationMetrics,
	logg *logger.Logger,
	cfg config.StorefrontConfig,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("storefront repository required")
	}
	if templates == nil {
		return nil, fmt.Errorf("template store required")
	}
	if enricher == nil {
		return nil, fmt.Errorf("enricher required")
	}
	if validator == nil {
		return nil, fmt.Errorf("validator required")
	}
	return &service{
		repo:      repo,
		templates: templates,
		enricher:  enricher,
		single:    single,
		parallel:  parallel,
		validator: validator,
		metrics:   gm,
		logger:    logg,
		cfg:       cfg,
	}, nil
}

// Generate runs enrichment, the chosen design strategy, validation, auto-fix,
// and two-phase persistence. The vendor's storefront_generated flag is only
// set when the whole pipeline succeeds.
func (s *service) Generate(ctx context.Context, vendorID uuid.UUID, input GenerateInput) (*GenerationResult, error) {
	strategy := input.Strategy
	if strategy == "" {
		strategy = StrategyTemplate
	}
	start := time.Now()
	result := &GenerationResult{
		VendorID: vendorID,
		Strategy: strategy,
		Logs:     []string{},
		Errors:   []string{},
	}
	defer func() {
		s.metrics.ObserveDuration(strategy, time.Since(start))
		if result.Success {
			s.metrics.IncSuccess(strategy)
		} else {
			s.metrics.IncFailure(strategy)
		}
	}()

	vendor, err := s.repo.FindVendor(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}
	if vendor.CompanyName == "" || vendor.Slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor requires store_name and slug before generation")
	}

	base := baseVendorData(vendor)
	enriched := s.enricher.Enrich(ctx, vendorID, base)
	result.Logs = append(result.Logs, fmt.Sprintf("enriched vendor data: %d products, %d categories, %d locations",
		enriched.ProductCount, len(enriched.ProductCategories), enriched.LocationCount))

	design, templateID, ok := s.produceDesign(ctx, strategy, input, enriched, result)
	if !ok {
		result.Design = &design
		return result, nil
	}

	design = s.validateAndFix(ctx, strategy, design, enriched, result)
	result.Design = &design

	if !s.persistDesign(ctx, vendorID, design, result) {
		return result, nil
	}

	if err := s.repo.MarkGenerated(ctx, vendorID, templateID); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("mark storefront generated: %v", err))
		return result, nil
	}

	result.Success = true
	result.StorefrontURL = s.storefrontURL(vendor.Slug)
	result.Logs = append(result.Logs, fmt.Sprintf("storefront ready at %s", result.StorefrontURL))
	return result, nil
}

// produceDesign runs the chosen strategy. The returned bool is false when the
// pipeline cannot continue; partial output and errors are already recorded on
// the result.
func (s *service) produceDesign(ctx context.Context, strategy string, input GenerateInput, vendor VendorData, result *GenerationResult) (Design, *string, bool) {
	switch strategy {
	case StrategyAI:
		if s.single == nil {
			result.Errors = append(result.Errors, "ai strategy is not configured")
			return Design{}, nil, false
		}
		design, err := s.single.Generate(ctx, vendor)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("ai generation failed: %v", err))
			return Design{}, nil, false
		}
		result.Logs = append(result.Logs, "ai single-shot design generated")
		return design, nil, true

	case StrategyAIParallel:
		if s.parallel == nil {
			result.Errors = append(result.Errors, "ai-parallel strategy is not configured")
			return Design{}, nil, false
		}
		parallel := s.parallel.Generate(ctx, vendor)
		for _, g := range parallel.Groups {
			if g.Success {
				result.Logs = append(result.Logs, fmt.Sprintf("page group %s generated %d sections", g.Group, len(g.Sections)))
			}
		}
		if !parallel.Success {
			result.Errors = append(result.Errors, parallel.Errors...)
			return parallel.Design, nil, false
		}
		return parallel.Design, nil, true

	default:
		templateID := s.cfg.DefaultTemplateID
		if templateID == "" {
			templateID = DarkLuxuryTemplateID
		}
		if input.TemplateID != nil && *input.TemplateID != "" {
			templateID = *input.TemplateID
		}
		tmpl, err := s.templates.Get(ctx, templateID)
		if err != nil {
			s.warn(ctx, fmt.Sprintf("template %q unavailable, falling back to builtin", templateID), err)
			result.Logs = append(result.Logs, fmt.Sprintf("template %q unavailable, using %s", templateID, DarkLuxuryTemplateID))
			templateID = DarkLuxuryTemplateID
			tmpl = BuiltinTemplate(templateID)
		}

		design := ApplyTemplate(tmpl, vendor)
		result.Logs = append(result.Logs, fmt.Sprintf("applied template %s: %d sections, %d components",
			templateID, len(design.Sections), len(design.Components)))

		design, added := AddComplianceSections(design, vendor)
		if added {
			result.Logs = append(result.Logs, "compliance faq section added")
		} else {
			result.Logs = append(result.Logs, "compliance pass skipped, no footer or faq already present")
		}
		return design, &templateID, true
	}
}

func (s *service) validateAndFix(ctx context.Context, strategy string, design Design, vendor VendorData, result *GenerationResult) Design {
	validation := s.validator.Validate(design, vendor)
	result.Warnings = append(result.Warnings, validation.Warnings...)
	s.metrics.AddValidationErrors(strategy, len(validation.Errors))
	if validation.Valid {
		result.Logs = append(result.Logs, "design valid on first validation")
		return design
	}

	result.Logs = append(result.Logs, fmt.Sprintf("validation found %d errors, running auto-fix", len(validation.Errors)))
	fixed := AutoFix(design)
	s.metrics.IncAutofix()

	// One re-validation bounds total work; the fixed design is accepted
	// regardless of the outcome.
	second := s.validator.Validate(fixed, vendor)
	if second.Valid {
		result.Logs = append(result.Logs, "design valid after auto-fix")
	} else {
		result.Logs = append(result.Logs, fmt.Sprintf("%d validation errors remain after auto-fix", len(second.Errors)))
		s.warn(ctx, "design still invalid after auto-fix", errors.New(strings.Join(second.Errors, "; ")))
	}
	return fixed
}

// persistDesign replaces the vendor's stored design in two phases: sections
// first to learn their generated ids, then components in batches.
func (s *service) persistDesign(ctx context.Context, vendorID uuid.UUID, design Design, result *GenerationResult) bool {
	if err := s.repo.DeleteDesign(ctx, vendorID); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("clear previous design: %v", err))
		return false
	}

	idMap, err := s.repo.InsertSections(ctx, vendorID, design.Sections)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("insert sections: %v", err))
		return false
	}
	result.SectionsCreated = len(idMap)

	inserted := s.repo.InsertComponents(ctx, vendorID, idMap, design.Components, s.cfg.ComponentBatchSize)
	result.ComponentsCreated = inserted
	if inserted < len(design.Components) {
		result.Logs = append(result.Logs, fmt.Sprintf("%d of %d components inserted, failed batches skipped",
			inserted, len(design.Components)))
	}
	return true
}

func (s *service) GetStorefront(ctx context.Context, vendorID uuid.UUID) (*StorefrontDTO, error) {
	vendor, err := s.repo.FindVendor(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}
	sections, components, err := s.repo.GetDesign(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load storefront")
	}
	return AssembleStorefront(vendor, sections, components), nil
}

func (s *service) ListTemplates(ctx context.Context) ([]string, error) {
	ids, err := s.templates.ListIDs(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list templates")
	}
	return ids, nil
}

func (s *service) storefrontURL(slug string) string {
	base := strings.TrimSuffix(s.cfg.SiteBaseURL, "/")
	return fmt.Sprintf("%s/%s", base, slug)
}

func baseVendorData(vendor *models.Vendor) VendorData {
	return VendorData{
		StoreName:        vendor.CompanyName,
		Slug:             vendor.Slug,
		StoreTagline:     vendor.Tagline,
		LogoURL:          vendor.LogoURL,
		BrandColors:      append([]string(nil), vendor.BrandColors...),
		VendorType:       vendor.Type,
		WholesaleEnabled: vendor.WholesaleEnabled,
	}
}

func (s *service) warn(ctx context.Context, msg string, err error) {
	if s.logger == nil {
		return
	}
	if err != nil {
		ctx = s.logger.WithFields(ctx, map[string]any{"error": err.Error()})
	}
	s.logger.Warn(ctx, msg)
}
