package ingestion

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"

	"github.com/finsight/newsintel/ai"
	"github.com/finsight/newsintel/core"
)

// toEntitySet normalizes raw extraction output into the canonical entity
// shape: names trimmed, blanks dropped, case-insensitive duplicates removed
// keeping first-seen casing.
func toEntitySet(extracted *ai.ExtractedEntities) core.EntitySet {
	if extracted == nil {
		return core.EntitySet{}
	}

	var set core.EntitySet

	seen := make(map[string]struct{})
	for _, c := range extracted.Companies {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		set.Companies = append(set.Companies, core.Company{
			Name:       name,
			Ticker:     strings.ToUpper(strings.TrimSpace(c.Ticker)),
			Sector:     strings.TrimSpace(c.Sector),
			Confidence: c.Confidence,
		})
	}

	set.Sectors = dedupeNames(extracted.Sectors)
	set.People = dedupeNames(extracted.People)

	seen = make(map[string]struct{})
	for _, r := range extracted.Regulators {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		set.Regulators = append(set.Regulators, core.Regulator{
			Name:         name,
			Jurisdiction: strings.TrimSpace(r.Jurisdiction),
			Confidence:   r.Confidence,
		})
	}

	for _, e := range extracted.Events {
		if strings.TrimSpace(e.Type) == "" {
			continue
		}
		set.Events = append(set.Events, core.Event{
			Type:        strings.TrimSpace(e.Type),
			Description: strings.TrimSpace(e.Description),
			Confidence:  e.Confidence,
		})
	}

	return set
}

// toStockImpacts converts impact analysis output, ordered by confidence,
// highest first.
func toStockImpacts(analysis *ai.ImpactAnalysis) []core.StockImpact {
	if analysis == nil || len(analysis.ImpactedStocks) == 0 {
		return nil
	}

	impacts := make([]core.StockImpact, 0, len(analysis.ImpactedStocks))
	for _, impact := range analysis.ImpactedStocks {
		symbol := strings.ToUpper(strings.TrimSpace(impact.Symbol))
		if symbol == "" {
			continue
		}
		impacts = append(impacts, core.StockImpact{
			Symbol:      symbol,
			CompanyName: strings.TrimSpace(impact.CompanyName),
			Confidence:  impact.Confidence,
			ImpactType:  core.ImpactType(strings.ToLower(strings.TrimSpace(impact.ImpactType))),
			Reasoning:   impact.Reasoning,
		})
	}

	slices.SortStableFunc(impacts, func(a, b core.StockImpact) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
	return impacts
}

// toSentiment converts a sentiment analysis. Unrecognized classifications
// degrade to Neutral instead of dropping the analysis.
func toSentiment(analysis *ai.SentimentAnalysis, logger *slog.Logger) *core.Sentiment {
	if analysis == nil {
		return nil
	}

	classification, err := core.ParseSentimentClass(analysis.Classification)
	if err != nil {
		logger.Warn("unrecognized sentiment classification, treating as neutral",
			"classification", analysis.Classification)
		classification = core.SentimentNeutral
	}

	return &core.Sentiment{
		Classification:  classification,
		ConfidenceScore: analysis.ConfidenceScore,
		SignalStrength:  analysis.SignalStrength,
		KeyFactors:      analysis.KeyFactors,
		Breakdown:       analysis.Breakdown,
		AnalysisMethod:  "llm",
	}
}

func toCrossImpacts(analysis *ai.SupplyChainAnalysis) []core.CrossImpact {
	if analysis == nil || len(analysis.CrossImpacts) == 0 {
		return nil
	}

	impacts := make([]core.CrossImpact, 0, len(analysis.CrossImpacts))
	for _, ci := range analysis.CrossImpacts {
		if strings.TrimSpace(ci.TargetSector) == "" {
			continue
		}
		impacts = append(impacts, core.CrossImpact{
			SourceSector:     strings.TrimSpace(ci.SourceSector),
			TargetSector:     strings.TrimSpace(ci.TargetSector),
			Relationship:     core.RelationshipType(strings.ToLower(strings.TrimSpace(ci.Relationship))),
			ImpactScore:      ci.ImpactScore,
			DependencyWeight: ci.DependencyWeight,
			Reasoning:        ci.Reasoning,
			ImpactedStocks:   ci.ImpactedStocks,
			TimeHorizon:      ci.TimeHorizon,
		})
	}
	return impacts
}

// dedupeNames trims, drops blanks and removes case-insensitive duplicates,
// preserving first-seen casing and order.
func dedupeNames(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, v)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
