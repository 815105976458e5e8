// Copyright 2025 Finsight Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package query

import (
	"github.com/finsight/newsintel/core"
	"github.com/finsight/newsintel/storage"
)

// CompileFilter translates a routing decision into a metadata filter.
// It is a pure function of the routing: same input, same filter, no I/O.
// The empty filter means unrestricted search.
//
// Each strategy binds exactly one concern:
//
//	DIRECT_ENTITY    symbols if present, else company names
//	SECTOR_WIDE      sectors
//	REGULATORY       regulators
//	SENTIMENT_DRIVEN sentiment, plus sectors when present
//	CROSS_IMPACT     sectors
//	TEMPORAL         same terms as DIRECT_ENTITY
//	SEMANTIC_SEARCH  nothing, pure vector search
func CompileFilter(routing *core.QueryRouting) storage.Filter {
	if routing == nil {
		return storage.Filter{}
	}

	switch routing.Strategy {
	case core.IntentDirectEntity, core.IntentTemporal:
		// Symbols beat company names: they are the higher-precision signal
		if len(routing.StockSymbols) > 0 {
			return storage.Filter{}.And(clauseFor(storage.FieldStockSymbol, routing.StockSymbols))
		}
		if len(routing.Entities) > 0 {
			return storage.Filter{}.And(clauseFor(storage.FieldCompany, routing.Entities))
		}
		return storage.Filter{}

	case core.IntentSectorWide:
		if len(routing.Sectors) > 0 {
			return storage.Filter{}.And(clauseFor(storage.FieldSector, routing.Sectors))
		}
		return storage.Filter{}

	case core.IntentRegulatory:
		if len(routing.Regulators) > 0 {
			return storage.Filter{}.And(clauseFor(storage.FieldRegulator, routing.Regulators))
		}
		return storage.Filter{}

	case core.IntentSentimentDriven:
		if routing.SentimentFilter == "" {
			return storage.Filter{}
		}
		filter := storage.Filter{}.And(storage.Eq(storage.FieldSentiment, string(routing.SentimentFilter)))
		if len(routing.Sectors) > 0 {
			filter = filter.And(clauseFor(storage.FieldSector, routing.Sectors))
		}
		return filter

	case core.IntentCrossImpact:
		if len(routing.Sectors) > 0 {
			return storage.Filter{}.And(clauseFor(storage.FieldSector, routing.Sectors))
		}
		return storage.Filter{}
	}

	// SEMANTIC_SEARCH and anything unrecognized: no metadata filtering
	return storage.Filter{}
}

// ApplySentimentOverride forces a sentiment clause onto a filter. Overrides
// always win, replacing any sentiment clause the routing compiled.
func ApplySentimentOverride(filter storage.Filter, sentiment core.SentimentClass) storage.Filter {
	if sentiment == "" {
		return filter
	}
	return filter.And(storage.Eq(storage.FieldSentiment, string(sentiment)))
}

// clauseFor builds an equality clause for one value, a membership clause for many.
func clauseFor(field storage.Field, values []string) storage.Clause {
	if len(values) == 1 {
		return storage.Eq(field, values[0])
	}
	return storage.In(field, values)
}
