package query

import (
	"time"

	"github.com/finsight/newsintel/core"
)

// Response is the transport-ready shape of an executed query. The JSON keys
// match the diagnostic payload exposed by the query API.
type Response struct {
	Query        string          `json:"query"`
	ResultsCount int             `json:"results_count"`
	Articles     []ResultArticle `json:"articles"`
	Stats        ResponseStats   `json:"query_analysis"`
}

// ResultArticle is one ranked article in a Response.
type ResultArticle struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Content        string           `json:"content"`
	Source         string           `json:"source"`
	Timestamp      time.Time        `json:"timestamp"`
	RelevanceScore float64          `json:"relevance_score"`
	StrategyScore  float64          `json:"strategy_score"`
	FinalScore     float64          `json:"final_score"`
	Sentiment      *ResultSentiment `json:"sentiment,omitempty"`
}

// ResultSentiment is the sentiment summary attached to a ResultArticle.
type ResultSentiment struct {
	Classification core.SentimentClass `json:"classification"`
	SignalStrength float64             `json:"signal_strength"`
}

// ResponseStats summarizes how the query was routed and executed.
type ResponseStats struct {
	Strategy          core.QueryIntent       `json:"strategy"`
	EntitiesMatched   int                    `json:"entities_identified"`
	SectorsMatched    int                    `json:"sectors_identified"`
	RegulatorsMatched int                    `json:"regulators_identified"`
	SentimentFilter   core.SentimentClass    `json:"sentiment_filter,omitempty"`
	RefinedQuery      string                 `json:"refined_query"`
	Confidence        float64                `json:"confidence"`
	Reasoning         string                 `json:"reasoning,omitempty"`
	StrategyMetadata  *core.StrategyMetadata `json:"strategy_metadata,omitempty"`
}

// Assemble converts an executed Result into the response shape. It is a pure
// transformation; neither the result nor its articles are modified.
func Assemble(query string, result *Result) *Response {
	articles := make([]ResultArticle, len(result.Articles))
	for i, scored := range result.Articles {
		article := scored.Article
		entry := ResultArticle{
			ID:             article.Id,
			Title:          article.Title,
			Content:        article.Content,
			Source:         article.Source,
			Timestamp:      article.Timestamp,
			RelevanceScore: scored.RelevanceScore,
			StrategyScore:  scored.StrategyScore,
			FinalScore:     scored.FinalScore,
		}
		if article.HasSentiment() {
			entry.Sentiment = &ResultSentiment{
				Classification: article.Sentiment.Classification,
				SignalStrength: article.Sentiment.SignalStrength,
			}
		}
		articles[i] = entry
	}

	routing := result.Routing
	return &Response{
		Query:        query,
		ResultsCount: len(articles),
		Articles:     articles,
		Stats: ResponseStats{
			Strategy:          routing.Strategy,
			EntitiesMatched:   len(routing.Entities),
			SectorsMatched:    len(routing.Sectors),
			RegulatorsMatched: len(routing.Regulators),
			SentimentFilter:   routing.SentimentFilter,
			RefinedQuery:      routing.RefinedQuery,
			Confidence:        routing.Confidence,
			Reasoning:         routing.Reasoning,
			StrategyMetadata:  routing.StrategyMetadata,
		},
	}
}
