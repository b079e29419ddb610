package service

import (
	"cmp"
	"context"
	"regexp"
	"slices"
	"strings"

	"github.com/sangkips/yardops-api/internal/domain/entity"
	"github.com/sangkips/yardops-api/internal/domain/repository"
	"github.com/sangkips/yardops-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PartsResultLimit caps how many opportunities a search returns
const PartsResultLimit = 50

// majorUnitKeywords are the big-ticket assemblies left out when a search asks
// to exclude major units. Matched as whole words, case-insensitively.
var majorUnitKeywords = []string{
	"ENGINE", "TRANS/GEARBOX", "TURBOCHARGER", "SUPERCHARGER", "THROTTLE_BODY",
	"ALTERNATOR", "STARTER", "A/C_COMPRESSOR", "Cylinder_head",
	"FUEL_INJECTOR", "Injector_rail", "COIL/COIL_PACK",
	"Injector_pump", "OIL_PAN/SUMP", "EGR_VALVE/COOLER",
}

var majorUnitPattern = func() *regexp.Regexp {
	quoted := make([]string, len(majorUnitKeywords))
	for i, kw := range majorUnitKeywords {
		quoted[i] = `\b` + regexp.QuoteMeta(kw) + `\b`
	}
	return regexp.MustCompile(`(?i)` + strings.Join(quoted, "|"))
}()

// PartsFinderService scores catalog parts for a vehicle by resale opportunity
type PartsFinderService struct {
	catalog repository.CatalogRepository
	log     *zap.Logger
}

// NewPartsFinderService creates a new parts finder
func NewPartsFinderService(catalog repository.CatalogRepository, log *zap.Logger) *PartsFinderService {
	return &PartsFinderService{catalog: catalog, log: log}
}

// PartsSearchInput describes the vehicle and the thresholds of one search
type PartsSearchInput struct {
	Model      string
	Year       int
	EngineCode string
	// MinPrice and MinOpportunity are skipped when nil
	MinPrice          *decimal.Decimal
	MinOpportunity    *float64
	ExcludeMajorUnits bool
}

// PartOpportunity is a catalog part with its opportunity figures
type PartOpportunity struct {
	Part             string          `json:"part"`
	ICStartYear      int             `json:"ic_start_year"`
	ICEndYear        int             `json:"ic_end_year"`
	ICDescription    string          `json:"ic_description"`
	BPrice           decimal.Decimal `json:"b_price"`
	InStock          int64           `json:"parts_in_stock"`
	Backorders       int64           `json:"backorders"`
	SoldAll          int64           `json:"parts_sold_all"`
	NotFound180      int64           `json:"not_found_180_days"`
	PotentialProfit  decimal.Decimal `json:"potential_profit"`
	SalesSpeed       float64         `json:"sales_speed"`
	OpportunityScore float64         `json:"opportunity_score"`
}

// PartsSearchResult is the ranked answer to one search
type PartsSearchResult struct {
	Model      string            `json:"model"`
	Year       int               `json:"year"`
	EngineCode string            `json:"engine_code,omitempty"`
	Parts      []PartOpportunity `json:"parts"`
}

// Score computes the opportunity figures of a part. Unmet demand is
// backorders plus lookups that found nothing in the last 180 days.
func Score(p *entity.CatalogPart) PartOpportunity {
	profit := p.BPrice.Mul(decimal.NewFromInt(p.Backorders + p.NotFound180))
	speed := float64(p.SoldAll) / float64(p.InStock+1)
	return PartOpportunity{
		Part:             p.Part,
		ICStartYear:      p.ICStartYear,
		ICEndYear:        p.ICEndYear,
		ICDescription:    p.ICDescription,
		BPrice:           p.BPrice,
		InStock:          p.InStock,
		Backorders:       p.Backorders,
		SoldAll:          p.SoldAll,
		NotFound180:      p.NotFound180,
		PotentialProfit:  profit,
		SalesSpeed:       speed,
		OpportunityScore: profit.InexactFloat64() * speed,
	}
}

// Search filters the catalog to parts fitting the vehicle, scores them and
// returns the best PartsResultLimit, most backordered first.
func (s *PartsFinderService) Search(ctx context.Context, in PartsSearchInput) (*PartsSearchResult, error) {
	model := strings.TrimSpace(in.Model)
	engineCode := strings.TrimSpace(in.EngineCode)

	var fieldErrors []apperror.FieldError
	if model == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "model", Message: "model is required"})
	}
	if in.Year < 1900 || in.Year > 9999 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "year", Message: "year must be between 1900 and 9999"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	catalog, err := s.catalog.All(ctx)
	if err != nil {
		return nil, err
	}

	var matches []PartOpportunity
	for i := range catalog {
		p := &catalog[i]
		if !strings.EqualFold(p.Model, model) || !p.Fits(in.Year) {
			continue
		}
		if !matchesEngineCode(p.ICDescription, engineCode) {
			continue
		}
		if in.ExcludeMajorUnits && majorUnitPattern.MatchString(p.Part) {
			continue
		}

		scored := Score(p)
		if in.MinPrice != nil && scored.BPrice.LessThan(*in.MinPrice) {
			continue
		}
		if in.MinOpportunity != nil && scored.OpportunityScore < *in.MinOpportunity {
			continue
		}
		matches = append(matches, scored)
	}

	RankOpportunities(matches)
	if len(matches) > PartsResultLimit {
		matches = matches[:PartsResultLimit]
	}
	if matches == nil {
		matches = []PartOpportunity{}
	}

	s.log.Debug("parts search",
		zap.String("model", model),
		zap.Int("year", in.Year),
		zap.String("engine_code", engineCode),
		zap.Bool("exclude_major_units", in.ExcludeMajorUnits),
		zap.Int("results", len(matches)),
	)

	return &PartsSearchResult{
		Model:      model,
		Year:       in.Year,
		EngineCode: engineCode,
		Parts:      matches,
	}, nil
}

// RankOpportunities orders by backorders, then opportunity score, both descending
func RankOpportunities(parts []PartOpportunity) {
	slices.SortStableFunc(parts, func(a, b PartOpportunity) int {
		if c := cmp.Compare(b.Backorders, a.Backorders); c != 0 {
			return c
		}
		return cmp.Compare(b.OpportunityScore, a.OpportunityScore)
	})
}

// matchesEngineCode only constrains parts whose description names an engine code
func matchesEngineCode(description, engineCode string) bool {
	if engineCode == "" {
		return true
	}
	desc := strings.ToLower(description)
	if !strings.Contains(desc, "engine code") {
		return true
	}
	return strings.Contains(desc, strings.ToLower(engineCode))
}

// Models suggests catalog models containing query, in catalog order
func (s *PartsFinderService) Models(ctx context.Context, query string) ([]string, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []string{}, nil
	}

	catalog, err := s.catalog.All(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	models := []string{}
	for _, p := range catalog {
		if p.Model == "" {
			continue
		}
		if _, ok := seen[p.Model]; ok {
			continue
		}
		seen[p.Model] = struct{}{}
		if strings.Contains(strings.ToLower(p.Model), query) {
			models = append(models, p.Model)
		}
	}
	return models, nil
}
