package storage

import (
	"strings"

	"github.com/finsight/newsintel/core"
)

// Field names an indexed article metadata field a filter clause can match.
type Field string

const (
	FieldStockSymbol Field = "impacted_stocks.symbol"
	FieldCompany     Field = "entities.companies"
	FieldSector      Field = "entities.sectors"
	FieldRegulator   Field = "entities.regulators"
	FieldSentiment   Field = "sentiment.classification"
)

// Clause is an equality or membership condition over a single field. A single
// value is an equality test, multiple values are a membership test.
type Clause struct {
	Field  Field
	Values []string
}

// Eq builds an equality clause.
func Eq(field Field, value string) Clause {
	return Clause{Field: field, Values: []string{value}}
}

// In builds a membership clause.
func In(field Field, values []string) Clause {
	return Clause{Field: field, Values: values}
}

// Filter is a conjunction of clauses over article metadata. The zero value is
// the empty filter, which matches every article.
type Filter struct {
	Clauses []Clause
}

// Empty reports whether the filter places no restriction.
func (f Filter) Empty() bool {
	return len(f.Clauses) == 0
}

// And returns a copy of the filter with the clause added. If a clause for the
// same field already exists it is replaced, so overrides always win.
func (f Filter) And(clause Clause) Filter {
	clauses := make([]Clause, 0, len(f.Clauses)+1)
	for _, c := range f.Clauses {
		if c.Field != clause.Field {
			clauses = append(clauses, c)
		}
	}
	clauses = append(clauses, clause)
	return Filter{Clauses: clauses}
}

// Sentiment returns the sentiment clause value if one is present.
func (f Filter) Sentiment() (string, bool) {
	for _, c := range f.Clauses {
		if c.Field == FieldSentiment && len(c.Values) > 0 {
			return c.Values[0], true
		}
	}
	return "", false
}

// Matches evaluates the filter against an article. All clauses must match;
// value comparison is case-insensitive.
func (f Filter) Matches(article *core.Article) bool {
	if article == nil {
		return false
	}
	for _, clause := range f.Clauses {
		if !clauseMatches(clause, article) {
			return false
		}
	}
	return true
}

func clauseMatches(clause Clause, article *core.Article) bool {
	candidates := fieldValues(clause.Field, article)
	for _, want := range clause.Values {
		for _, have := range candidates {
			if strings.EqualFold(want, have) {
				return true
			}
		}
	}
	return false
}

// fieldValues extracts the article values a clause field matches against.
func fieldValues(field Field, article *core.Article) []string {
	switch field {
	case FieldStockSymbol:
		symbols := make([]string, len(article.ImpactedStocks))
		for i, s := range article.ImpactedStocks {
			symbols[i] = s.Symbol
		}
		return symbols
	case FieldCompany:
		return article.Entities.CompanyNames()
	case FieldSector:
		return article.Entities.Sectors
	case FieldRegulator:
		return article.Entities.RegulatorNames()
	case FieldSentiment:
		if article.Sentiment == nil {
			return nil
		}
		return []string{string(article.Sentiment.Classification)}
	}
	return nil
}
