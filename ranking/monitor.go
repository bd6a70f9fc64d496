package ranking

import "github.com/poiesic/talentrank/core"

// FunnelMonitor provides hooks to observe the ranking funnel.
// Implement this interface to track intermediate steps during filtering
// and fusion. JudgeResult and PairwiseResult are invoked from worker
// goroutines during fusion, so implementations must be safe for
// concurrent use.
type FunnelMonitor interface {
	StartFilter(jobTitle string, poolSize int)
	AfterJobEmbedding(dimensions int)
	AfterCandidateEmbeddings(count int)
	FinishFilter(ranked []core.SimilarityRankingEntry)
	StartFusion(shortlist []string)
	JudgeResult(candidateName string, score float64, err error)
	PairwiseResult(candidateName string, raw, rescaled float64, err error)
	FinishFusion(results []core.FusionRankingEntry)
}

// noopMonitor is a no-op implementation of FunnelMonitor
type noopMonitor struct{}

var _ FunnelMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) StartFilter(_ string, _ int)                        {}
func (n *noopMonitor) AfterJobEmbedding(_ int)                           {}
func (n *noopMonitor) AfterCandidateEmbeddings(_ int)                    {}
func (n *noopMonitor) FinishFilter(_ []core.SimilarityRankingEntry)      {}
func (n *noopMonitor) StartFusion(_ []string)                            {}
func (n *noopMonitor) JudgeResult(_ string, _ float64, _ error)          {}
func (n *noopMonitor) PairwiseResult(_ string, _, _ float64, _ error)    {}
func (n *noopMonitor) FinishFusion(_ []core.FusionRankingEntry)          {}
