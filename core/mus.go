package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the article graph. The nested shape
// (optional sentiment, slices of structs, breakdown map) is stable enough
// that explicit serializers are simpler to maintain than generated ones.
var (
	ArticleMUS     = articleSer{}
	EntitySetMUS   = entitySetSer{}
	SentimentMUS   = sentimentSer{}
	StockImpactMUS = stockImpactSer{}
	CrossImpactMUS = crossImpactSer{}
)

// timeSer serializes time.Time as Unix microseconds. Sub-microsecond
// precision is not preserved.
type timeSer struct{}

func (timeSer) Marshal(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func (timeSer) Unmarshal(bs []byte) (time.Time, int, error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func (timeSer) Size(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

// stringSliceSer serializes a []string with a varint length prefix.
type stringSliceSer struct{}

func (stringSliceSer) Marshal(v []string, bs []byte) (n int) {
	n = varint.PositiveInt.Marshal(len(v), bs)
	for _, s := range v {
		n += ord.String.Marshal(s, bs[n:])
	}
	return n
}

func (stringSliceSer) Unmarshal(bs []byte) (v []string, n int, err error) {
	length, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length == 0 {
		return nil, n, nil
	}
	v = make([]string, length)
	for i := 0; i < length; i++ {
		var m int
		v[i], m, err = ord.String.Unmarshal(bs[n:])
		n += m
		if err != nil {
			return nil, n, err
		}
	}
	return v, n, nil
}

func (stringSliceSer) Size(v []string) (size int) {
	size = varint.PositiveInt.Size(len(v))
	for _, s := range v {
		size += ord.String.Size(s)
	}
	return size
}

// vectorSer serializes a []float32 embedding vector.
type vectorSer struct{}

func (vectorSer) Marshal(v []float32, bs []byte) (n int) {
	n = varint.PositiveInt.Marshal(len(v), bs)
	for _, f := range v {
		n += raw.Float32.Marshal(f, bs[n:])
	}
	return n
}

func (vectorSer) Unmarshal(bs []byte) (v []float32, n int, err error) {
	length, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length == 0 {
		return nil, n, nil
	}
	v = make([]float32, length)
	for i := 0; i < length; i++ {
		var m int
		v[i], m, err = raw.Float32.Unmarshal(bs[n:])
		n += m
		if err != nil {
			return nil, n, err
		}
	}
	return v, n, nil
}

func (vectorSer) Size(v []float32) int {
	return varint.PositiveInt.Size(len(v)) + len(v)*raw.Float32.Size(0)
}

type companySer struct{}

func (companySer) Marshal(c Company, bs []byte) (n int) {
	n = ord.String.Marshal(c.Name, bs)
	n += ord.String.Marshal(c.Ticker, bs[n:])
	n += ord.String.Marshal(c.Sector, bs[n:])
	n += raw.Float64.Marshal(c.Confidence, bs[n:])
	return n
}

func (companySer) Unmarshal(bs []byte) (c Company, n int, err error) {
	var m int
	if c.Name, n, err = ord.String.Unmarshal(bs); err != nil {
		return c, n, err
	}
	if c.Ticker, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	if c.Sector, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	c.Confidence, m, err = raw.Float64.Unmarshal(bs[n:])
	return c, n + m, err
}

func (companySer) Size(c Company) int {
	return ord.String.Size(c.Name) + ord.String.Size(c.Ticker) +
		ord.String.Size(c.Sector) + raw.Float64.Size(c.Confidence)
}

type regulatorSer struct{}

func (regulatorSer) Marshal(r Regulator, bs []byte) (n int) {
	n = ord.String.Marshal(r.Name, bs)
	n += ord.String.Marshal(r.Jurisdiction, bs[n:])
	n += raw.Float64.Marshal(r.Confidence, bs[n:])
	return n
}

func (regulatorSer) Unmarshal(bs []byte) (r Regulator, n int, err error) {
	var m int
	if r.Name, n, err = ord.String.Unmarshal(bs); err != nil {
		return r, n, err
	}
	if r.Jurisdiction, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return r, n + m, err
	}
	n += m
	r.Confidence, m, err = raw.Float64.Unmarshal(bs[n:])
	return r, n + m, err
}

func (regulatorSer) Size(r Regulator) int {
	return ord.String.Size(r.Name) + ord.String.Size(r.Jurisdiction) +
		raw.Float64.Size(r.Confidence)
}

type eventSer struct{}

func (eventSer) Marshal(e Event, bs []byte) (n int) {
	n = ord.String.Marshal(e.Type, bs)
	n += ord.String.Marshal(e.Description, bs[n:])
	n += raw.Float64.Marshal(e.Confidence, bs[n:])
	return n
}

func (eventSer) Unmarshal(bs []byte) (e Event, n int, err error) {
	var m int
	if e.Type, n, err = ord.String.Unmarshal(bs); err != nil {
		return e, n, err
	}
	if e.Description, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return e, n + m, err
	}
	n += m
	e.Confidence, m, err = raw.Float64.Unmarshal(bs[n:])
	return e, n + m, err
}

func (eventSer) Size(e Event) int {
	return ord.String.Size(e.Type) + ord.String.Size(e.Description) +
		raw.Float64.Size(e.Confidence)
}

type stockImpactSer struct{}

func (stockImpactSer) Marshal(s StockImpact, bs []byte) (n int) {
	n = ord.String.Marshal(s.Symbol, bs)
	n += ord.String.Marshal(s.CompanyName, bs[n:])
	n += raw.Float64.Marshal(s.Confidence, bs[n:])
	n += ord.String.Marshal(string(s.ImpactType), bs[n:])
	n += ord.String.Marshal(s.Reasoning, bs[n:])
	return n
}

func (stockImpactSer) Unmarshal(bs []byte) (s StockImpact, n int, err error) {
	var m int
	if s.Symbol, n, err = ord.String.Unmarshal(bs); err != nil {
		return s, n, err
	}
	if s.CompanyName, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return s, n + m, err
	}
	n += m
	if s.Confidence, m, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return s, n + m, err
	}
	n += m
	var impactType string
	if impactType, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return s, n + m, err
	}
	n += m
	s.ImpactType = ImpactType(impactType)
	s.Reasoning, m, err = ord.String.Unmarshal(bs[n:])
	return s, n + m, err
}

func (stockImpactSer) Size(s StockImpact) int {
	return ord.String.Size(s.Symbol) + ord.String.Size(s.CompanyName) +
		raw.Float64.Size(s.Confidence) + ord.String.Size(string(s.ImpactType)) +
		ord.String.Size(s.Reasoning)
}

type sentimentSer struct{}

func (sentimentSer) Marshal(s Sentiment, bs []byte) (n int) {
	n = ord.String.Marshal(string(s.Classification), bs)
	n += raw.Float64.Marshal(s.ConfidenceScore, bs[n:])
	n += raw.Float64.Marshal(s.SignalStrength, bs[n:])
	n += stringSliceSer{}.Marshal(s.KeyFactors, bs[n:])
	n += varint.PositiveInt.Marshal(len(s.Breakdown), bs[n:])
	for k, v := range s.Breakdown {
		n += ord.String.Marshal(k, bs[n:])
		n += raw.Float64.Marshal(v, bs[n:])
	}
	n += ord.String.Marshal(s.AnalysisMethod, bs[n:])
	return n
}

func (sentimentSer) Unmarshal(bs []byte) (s Sentiment, n int, err error) {
	var m int
	var classification string
	if classification, n, err = ord.String.Unmarshal(bs); err != nil {
		return s, n, err
	}
	s.Classification = SentimentClass(classification)
	if s.ConfidenceScore, m, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return s, n + m, err
	}
	n += m
	if s.SignalStrength, m, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return s, n + m, err
	}
	n += m
	if s.KeyFactors, m, err = (stringSliceSer{}).Unmarshal(bs[n:]); err != nil {
		return s, n + m, err
	}
	n += m
	var pairs int
	if pairs, m, err = varint.PositiveInt.Unmarshal(bs[n:]); err != nil {
		return s, n + m, err
	}
	n += m
	if pairs > 0 {
		s.Breakdown = make(map[string]float64, pairs)
		for i := 0; i < pairs; i++ {
			var k string
			var v float64
			if k, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
				return s, n + m, err
			}
			n += m
			if v, m, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
				return s, n + m, err
			}
			n += m
			s.Breakdown[k] = v
		}
	}
	s.AnalysisMethod, m, err = ord.String.Unmarshal(bs[n:])
	return s, n + m, err
}

func (sentimentSer) Size(s Sentiment) (size int) {
	size = ord.String.Size(string(s.Classification)) +
		raw.Float64.Size(s.ConfidenceScore) +
		raw.Float64.Size(s.SignalStrength) +
		stringSliceSer{}.Size(s.KeyFactors) +
		varint.PositiveInt.Size(len(s.Breakdown))
	for k, v := range s.Breakdown {
		size += ord.String.Size(k) + raw.Float64.Size(v)
	}
	size += ord.String.Size(s.AnalysisMethod)
	return size
}

type crossImpactSer struct{}

func (crossImpactSer) Marshal(c CrossImpact, bs []byte) (n int) {
	n = ord.String.Marshal(c.SourceSector, bs)
	n += ord.String.Marshal(c.TargetSector, bs[n:])
	n += ord.String.Marshal(string(c.Relationship), bs[n:])
	n += raw.Float64.Marshal(c.ImpactScore, bs[n:])
	n += raw.Float64.Marshal(c.DependencyWeight, bs[n:])
	n += ord.String.Marshal(c.Reasoning, bs[n:])
	n += stringSliceSer{}.Marshal(c.ImpactedStocks, bs[n:])
	n += ord.String.Marshal(c.TimeHorizon, bs[n:])
	return n
}

func (crossImpactSer) Unmarshal(bs []byte) (c CrossImpact, n int, err error) {
	var m int
	if c.SourceSector, n, err = ord.String.Unmarshal(bs); err != nil {
		return c, n, err
	}
	if c.TargetSector, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	var rel string
	if rel, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	c.Relationship = RelationshipType(rel)
	if c.ImpactScore, m, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	if c.DependencyWeight, m, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	if c.Reasoning, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	if c.ImpactedStocks, m, err = (stringSliceSer{}).Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	c.TimeHorizon, m, err = ord.String.Unmarshal(bs[n:])
	return c, n + m, err
}

func (crossImpactSer) Size(c CrossImpact) int {
	return ord.String.Size(c.SourceSector) + ord.String.Size(c.TargetSector) +
		ord.String.Size(string(c.Relationship)) + raw.Float64.Size(c.ImpactScore) +
		raw.Float64.Size(c.DependencyWeight) + ord.String.Size(c.Reasoning) +
		stringSliceSer{}.Size(c.ImpactedStocks) + ord.String.Size(c.TimeHorizon)
}

type entitySetSer struct{}

func (entitySetSer) Marshal(e EntitySet, bs []byte) (n int) {
	n = varint.PositiveInt.Marshal(len(e.Companies), bs)
	for _, c := range e.Companies {
		n += companySer{}.Marshal(c, bs[n:])
	}
	n += stringSliceSer{}.Marshal(e.Sectors, bs[n:])
	n += varint.PositiveInt.Marshal(len(e.Regulators), bs[n:])
	for _, r := range e.Regulators {
		n += regulatorSer{}.Marshal(r, bs[n:])
	}
	n += stringSliceSer{}.Marshal(e.People, bs[n:])
	n += varint.PositiveInt.Marshal(len(e.Events), bs[n:])
	for _, ev := range e.Events {
		n += eventSer{}.Marshal(ev, bs[n:])
	}
	return n
}

func (entitySetSer) Unmarshal(bs []byte) (e EntitySet, n int, err error) {
	var m, length int
	if length, n, err = varint.PositiveInt.Unmarshal(bs); err != nil {
		return e, n, err
	}
	if length > 0 {
		e.Companies = make([]Company, length)
		for i := 0; i < length; i++ {
			if e.Companies[i], m, err = (companySer{}).Unmarshal(bs[n:]); err != nil {
				return e, n + m, err
			}
			n += m
		}
	}
	if e.Sectors, m, err = (stringSliceSer{}).Unmarshal(bs[n:]); err != nil {
		return e, n + m, err
	}
	n += m
	if length, m, err = varint.PositiveInt.Unmarshal(bs[n:]); err != nil {
		return e, n + m, err
	}
	n += m
	if length > 0 {
		e.Regulators = make([]Regulator, length)
		for i := 0; i < length; i++ {
			if e.Regulators[i], m, err = (regulatorSer{}).Unmarshal(bs[n:]); err != nil {
				return e, n + m, err
			}
			n += m
		}
	}
	if e.People, m, err = (stringSliceSer{}).Unmarshal(bs[n:]); err != nil {
		return e, n + m, err
	}
	n += m
	if length, m, err = varint.PositiveInt.Unmarshal(bs[n:]); err != nil {
		return e, n + m, err
	}
	n += m
	if length > 0 {
		e.Events = make([]Event, length)
		for i := 0; i < length; i++ {
			if e.Events[i], m, err = (eventSer{}).Unmarshal(bs[n:]); err != nil {
				return e, n + m, err
			}
			n += m
		}
	}
	return e, n, nil
}

func (entitySetSer) Size(e EntitySet) (size int) {
	size = varint.PositiveInt.Size(len(e.Companies))
	for _, c := range e.Companies {
		size += companySer{}.Size(c)
	}
	size += stringSliceSer{}.Size(e.Sectors)
	size += varint.PositiveInt.Size(len(e.Regulators))
	for _, r := range e.Regulators {
		size += regulatorSer{}.Size(r)
	}
	size += stringSliceSer{}.Size(e.People)
	size += varint.PositiveInt.Size(len(e.Events))
	for _, ev := range e.Events {
		size += eventSer{}.Size(ev)
	}
	return size
}

type articleSer struct{}

func (articleSer) Marshal(a Article, bs []byte) (n int) {
	n = ord.String.Marshal(a.Id, bs)
	n += ord.String.Marshal(a.Title, bs[n:])
	n += ord.String.Marshal(a.Content, bs[n:])
	n += ord.String.Marshal(a.Source, bs[n:])
	n += timeSer{}.Marshal(a.Timestamp, bs[n:])
	n += timeSer{}.Marshal(a.InsertedAt, bs[n:])
	n += timeSer{}.Marshal(a.UpdatedAt, bs[n:])
	n += entitySetSer{}.Marshal(a.Entities, bs[n:])
	n += varint.PositiveInt.Marshal(len(a.ImpactedStocks), bs[n:])
	for _, s := range a.ImpactedStocks {
		n += stockImpactSer{}.Marshal(s, bs[n:])
	}
	n += ord.Bool.Marshal(a.Sentiment != nil, bs[n:])
	if a.Sentiment != nil {
		n += sentimentSer{}.Marshal(*a.Sentiment, bs[n:])
	}
	n += varint.PositiveInt.Marshal(len(a.CrossImpacts), bs[n:])
	for _, c := range a.CrossImpacts {
		n += crossImpactSer{}.Marshal(c, bs[n:])
	}
	n += vectorSer{}.Marshal(a.Vector, bs[n:])
	return n
}

func (articleSer) Unmarshal(bs []byte) (a Article, n int, err error) {
	var m, length int
	if a.Id, n, err = ord.String.Unmarshal(bs); err != nil {
		return a, n, err
	}
	if a.Title, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return a, n + m, err
	}
	n += m
	if a.Content, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return a, n + m, err
	}
	n += m
	if a.Source, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return a, n + m, err
	}
	n += m
	if a.Timestamp, m, err = (timeSer{}).Unmarshal(bs[n:]); err != nil {
		return a, n + m, err
	}
	n += m
	if a.InsertedAt, m, err = (timeSer{}).Unmarshal(bs[n:]); err != nil {
		return a, n + m, err
	}
	n += m
	if a.UpdatedAt, m, err = (timeSer{}).Unmarshal(bs[n:]); err != nil {
		return a, n + m, err
	}
	n += m
	if a.Entities, m, err = (entitySetSer{}).Unmarshal(bs[n:]); err != nil {
		return a, n + m, err
	}
	n += m
	if length, m, err = varint.PositiveInt.Unmarshal(bs[n:]); err != nil {
		return a, n + m, err
	}
	n += m
	if length > 0 {
		a.ImpactedStocks = make([]StockImpact, length)
		for i := 0; i < length; i++ {
			if a.ImpactedStocks[i], m, err = (stockImpactSer{}).Unmarshal(bs[n:]); err != nil {
				return a, n + m, err
			}
			n += m
		}
	}
	var hasSentiment bool
	if hasSentiment, m, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return a, n + m, err
	}
	n += m
	if hasSentiment {
		var sentiment Sentiment
		if sentiment, m, err = (sentimentSer{}).Unmarshal(bs[n:]); err != nil {
			return a, n + m, err
		}
		n += m
		a.Sentiment = &sentiment
	}
	if length, m, err = varint.PositiveInt.Unmarshal(bs[n:]); err != nil {
		return a, n + m, err
	}
	n += m
	if length > 0 {
		a.CrossImpacts = make([]CrossImpact, length)
		for i := 0; i < length; i++ {
			if a.CrossImpacts[i], m, err = (crossImpactSer{}).Unmarshal(bs[n:]); err != nil {
				return a, n + m, err
			}
			n += m
		}
	}
	a.Vector, m, err = (vectorSer{}).Unmarshal(bs[n:])
	return a, n + m, err
}

func (articleSer) Size(a Article) (size int) {
	size = ord.String.Size(a.Id) + ord.String.Size(a.Title) +
		ord.String.Size(a.Content) + ord.String.Size(a.Source) +
		timeSer{}.Size(a.Timestamp) + timeSer{}.Size(a.InsertedAt) +
		timeSer{}.Size(a.UpdatedAt) + entitySetSer{}.Size(a.Entities)
	size += varint.PositiveInt.Size(len(a.ImpactedStocks))
	for _, s := range a.ImpactedStocks {
		size += stockImpactSer{}.Size(s)
	}
	size += ord.Bool.Size(a.Sentiment != nil)
	if a.Sentiment != nil {
		size += sentimentSer{}.Size(*a.Sentiment)
	}
	size += varint.PositiveInt.Size(len(a.CrossImpacts))
	for _, c := range a.CrossImpacts {
		size += crossImpactSer{}.Size(c)
	}
	size += vectorSer{}.Size(a.Vector)
	return size
}
