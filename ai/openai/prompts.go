package openai

import (
	"fmt"
	"strings"

	"github.com/finsight/newsintel/ai"
)

const routingPromptTemplate = `You are a query router for a financial news retrieval system covering Indian markets.
Classify the user's query and extract the search terms it contains. Return ONLY valid JSON
matching this schema, with no preamble and no text outside the object:

{
  "strategy": "DIRECT_ENTITY | SECTOR_WIDE | REGULATORY | SENTIMENT_DRIVEN | CROSS_IMPACT | SEMANTIC_SEARCH | TEMPORAL",
  "entities": ["company names mentioned"],
  "stock_symbols": ["ticker symbols, e.g. HDFCBANK, TCS"],
  "sectors": ["sectors mentioned, e.g. Banking, Pharma, IT"],
  "regulators": ["regulatory bodies, e.g. RBI, SEBI"],
  "sentiment_filter": "Bullish | Bearish | Neutral | empty string if none",
  "temporal_scope": "time window mentioned, empty string if none",
  "refined_query": "a cleaned-up query suitable for semantic search",
  "confidence": 0.0,
  "reasoning": "one sentence explaining the classification"
}

Strategy selection rules:
- DIRECT_ENTITY: the query names specific companies or tickers.
- SECTOR_WIDE: the query is about an industry sector as a whole.
- REGULATORY: the query centers on a regulator or policy action.
- SENTIMENT_DRIVEN: the query asks for bullish/bearish/positive/negative news.
- CROSS_IMPACT: the query asks about ripple effects between sectors.
- TEMPORAL: the query is primarily about a time window.
- SEMANTIC_SEARCH: none of the above fit.

Examples:
Query: "latest news on HDFC Bank"
{"strategy":"DIRECT_ENTITY","entities":["HDFC Bank"],"stock_symbols":["HDFCBANK"],"sectors":[],"regulators":[],"sentiment_filter":"","temporal_scope":"","refined_query":"HDFC Bank latest news","confidence":0.95,"reasoning":"Query names a specific company."}

Query: "bearish signals in the pharma sector"
{"strategy":"SENTIMENT_DRIVEN","entities":[],"stock_symbols":[],"sectors":["Pharma"],"regulators":[],"sentiment_filter":"Bearish","temporal_scope":"","refined_query":"pharma sector negative news","confidence":0.9,"reasoning":"Query filters by sentiment within a sector."}`

const entityPromptTemplate = `Extract the financial entities mentioned in the article below.
Return ONLY valid JSON matching this schema, with no text outside the object:

{
  "companies": [{"name": "", "ticker": "", "sector": "", "confidence": 0.0}],
  "sectors": ["sector names"],
  "regulators": [{"name": "", "jurisdiction": "", "confidence": 0.0}],
  "people": ["names of people mentioned"],
  "events": [{"type": "", "description": "", "confidence": 0.0}]
}

Rules:
- Include only entities explicitly mentioned or clearly implied. Do not hallucinate.
- Use NSE ticker symbols where known, empty string otherwise.
- Event types: earnings, merger, regulation, litigation, product_launch, management_change, macro.
- Confidence is 0.0 to 1.0.
- Empty arrays are valid when nothing is found.`

const sentimentPromptTemplate = `Classify the market sentiment of the financial news article below.
Return ONLY valid JSON matching this schema, with no text outside the object:

{
  "classification": "Bullish | Bearish | Neutral",
  "confidence_score": 0,
  "signal_strength": 0,
  "key_factors": ["short phrases driving the classification"],
  "sentiment_breakdown": {"bullish": 0.0, "bearish": 0.0, "neutral": 0.0}
}

Rules:
- confidence_score and signal_strength are integers from 0 to 100.
- signal_strength measures how strongly the news should move prices, not how certain you are.
- sentiment_breakdown values sum to 1.0.
- Judge from a market participant's perspective, not the article's tone.

Known entities:
%s`

const impactPromptTemplate = `Identify the stocks impacted by the financial news article below.
Return ONLY valid JSON matching this schema, with no text outside the object:

{
  "impacted_stocks": [
    {"symbol": "", "company_name": "", "confidence": 0.0, "impact_type": "direct | sector | regulatory", "reasoning": ""}
  ]
}

Rules:
- Return at most %d stocks, most affected first.
- impact_type is "direct" for companies named in the article, "sector" for peers
  affected through their industry, "regulatory" for stocks affected by a policy action.
- Use NSE ticker symbols.
- Confidence is 0.0 to 1.0.
- An empty impacted_stocks array is valid.

Extracted entities:
Companies:
%s
Sectors: %s
Regulators:
%s
Events:
%s`

const supplyChainPromptTemplate = `Trace second-order supply chain effects of the financial news article below.
Return ONLY valid JSON matching this schema, with no text outside the object:

{
  "cross_impacts": [
    {
      "source_sector": "",
      "target_sector": "",
      "relationship": "upstream_demand_shock | downstream_supply_impact",
      "impact_score": 0.0,
      "dependency_weight": 0.0,
      "reasoning": "",
      "impacted_stocks": ["tickers in the target sector"],
      "time_horizon": "immediate | short_term | medium_term"
    }
  ]
}

Rules:
- Only include effects with impact_score of at least %.0f (scale 0-100).
- dependency_weight is 0.0 to 1.0, how dependent the target sector is on the source.
- Do not restate the direct impact; only propagated effects across sector boundaries.
- An empty cross_impacts array is valid.

Known entities:
%s`

// buildRoutingPrompt returns the system prompt for query classification.
func buildRoutingPrompt() string {
	return routingPromptTemplate
}

// buildEntityPrompt returns the system prompt for entity extraction.
func buildEntityPrompt() string {
	return entityPromptTemplate
}

// buildSentimentPrompt fills the sentiment template with entity context.
func buildSentimentPrompt(entities *ai.ExtractedEntities) string {
	return fmt.Sprintf(sentimentPromptTemplate, formatEntityContext(entities))
}

// buildImpactPrompt fills the stock impact template.
func buildImpactPrompt(entities *ai.ExtractedEntities, maxStocks int) string {
	return fmt.Sprintf(impactPromptTemplate,
		maxStocks,
		formatCompanies(entities),
		formatSectors(entities),
		formatRegulators(entities),
		formatEvents(entities))
}

// buildSupplyChainPrompt fills the supply chain template.
func buildSupplyChainPrompt(entities *ai.ExtractedEntities, minImpactScore float64) string {
	return fmt.Sprintf(supplyChainPromptTemplate,
		minImpactScore,
		formatEntityContext(entities))
}

// formatEntityContext renders a compact entity summary for prompt context.
func formatEntityContext(entities *ai.ExtractedEntities) string {
	if entities == nil {
		return "No known entities."
	}

	var parts []string
	if len(entities.Companies) > 0 {
		names := make([]string, len(entities.Companies))
		for i, c := range entities.Companies {
			ticker := c.Ticker
			if ticker == "" {
				ticker = "N/A"
			}
			names[i] = fmt.Sprintf("%s (%s)", c.Name, ticker)
		}
		parts = append(parts, "Companies: "+strings.Join(names, ", "))
	}
	if len(entities.Sectors) > 0 {
		parts = append(parts, "Sectors: "+strings.Join(entities.Sectors, ", "))
	}
	if len(entities.Regulators) > 0 {
		names := make([]string, len(entities.Regulators))
		for i, r := range entities.Regulators {
			names[i] = r.Name
		}
		parts = append(parts, "Regulators: "+strings.Join(names, ", "))
	}
	if len(entities.Events) > 0 {
		descs := make([]string, len(entities.Events))
		for i, e := range entities.Events {
			descs[i] = fmt.Sprintf("%s: %s", e.Type, e.Description)
		}
		parts = append(parts, "Events: "+strings.Join(descs, "; "))
	}
	if len(parts) == 0 {
		return "No known entities."
	}
	return strings.Join(parts, "\n")
}

func formatCompanies(entities *ai.ExtractedEntities) string {
	if entities == nil || len(entities.Companies) == 0 {
		return "  None explicitly mentioned"
	}
	lines := make([]string, len(entities.Companies))
	for i, c := range entities.Companies {
		line := "  - " + c.Name
		if c.Ticker != "" {
			line += fmt.Sprintf(" (Ticker: %s)", c.Ticker)
		}
		if c.Sector != "" {
			line += fmt.Sprintf(" [Sector: %s]", c.Sector)
		}
		line += fmt.Sprintf(" [Confidence: %.2f]", c.Confidence)
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func formatSectors(entities *ai.ExtractedEntities) string {
	if entities == nil || len(entities.Sectors) == 0 {
		return "None"
	}
	return strings.Join(entities.Sectors, ", ")
}

func formatRegulators(entities *ai.ExtractedEntities) string {
	if entities == nil || len(entities.Regulators) == 0 {
		return "  None mentioned"
	}
	lines := make([]string, len(entities.Regulators))
	for i, r := range entities.Regulators {
		line := "  - " + r.Name
		if r.Jurisdiction != "" {
			line += fmt.Sprintf(" (%s)", r.Jurisdiction)
		}
		line += fmt.Sprintf(" [Confidence: %.2f]", r.Confidence)
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func formatEvents(entities *ai.ExtractedEntities) string {
	if entities == nil || len(entities.Events) == 0 {
		return "  None identified"
	}
	lines := make([]string, len(entities.Events))
	for i, e := range entities.Events {
		lines[i] = fmt.Sprintf("  - %s: %s [Confidence: %.2f]", e.Type, e.Description, e.Confidence)
	}
	return strings.Join(lines, "\n")
}
