package query

import (
	"github.com/finsight/newsintel/core"
	"github.com/finsight/newsintel/storage"
)

// Monitor provides hooks to observe query execution.
// Implement this interface to track intermediate steps during processing.
type Monitor interface {
	Start(query string)
	AfterRouting(routing *core.QueryRouting)
	AfterFilterCompile(filter storage.Filter)
	AfterCount(count int)
	FilterRelaxed(filter storage.Filter, count int)
	AfterVectorSearch(strategy core.ExecutionStrategy, candidates []storage.VectorCandidate)
	AfterHydration(articles []*core.Article)
	Finish(results []core.ScoredArticle)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                                       {}
func (n *noopMonitor) AfterRouting(_ *core.QueryRouting)                                    {}
func (n *noopMonitor) AfterFilterCompile(_ storage.Filter)                                  {}
func (n *noopMonitor) AfterCount(_ int)                                                     {}
func (n *noopMonitor) FilterRelaxed(_ storage.Filter, _ int)                                {}
func (n *noopMonitor) AfterVectorSearch(_ core.ExecutionStrategy, _ []storage.VectorCandidate) {}
func (n *noopMonitor) AfterHydration(_ []*core.Article)                                     {}
func (n *noopMonitor) Finish(_ []core.ScoredArticle)                                        {}
