// Package mock provides deterministic test doubles for the ai interfaces.
//
// Every mock works out of the box: embeddings are hash-seeded unit
// vectors, pairwise scores come from word overlap, judgments from
// must-have skill matching. Tests that need specific behavior inject it
// through the exported *Func fields:
//
//	judge := mock.NewJudge()
//	judge.EvaluateFunc = func(ctx context.Context, spec *core.JobSpec, record *core.CandidateRecord) (*core.Judgment, error) {
//		return nil, errors.New("judge offline")
//	}
//
// Unlike the production constructors, mock constructors return concrete
// types so call counts and injected functions stay reachable.
package mock
