package badger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/poiesic/talentrank/core"
)

// Key prefixes for run artifacts
const (
	runJobSpecPrefix    = "runjob"
	runCandidatesPrefix = "runcand"
	runSimilarityPrefix = "runsim"
	runFusionPrefix     = "runfus"
	runCheckpointPrefix = "runchkpt"
)

// makeJobSpecKey generates the key for a run's job spec.
func makeJobSpecKey(runID core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", runJobSpecPrefix, runID))
}

// makeCandidatesKey generates the key for a run's candidate pool.
func makeCandidatesKey(runID core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", runCandidatesPrefix, runID))
}

// makeSimilarityKey generates the key for a run's Stage 1 ranking.
func makeSimilarityKey(runID core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", runSimilarityPrefix, runID))
}

// makeFusionKey generates the key for a run's Stage 2 ranking.
func makeFusionKey(runID core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", runFusionPrefix, runID))
}

// makeCheckpointKey generates the key for a run's checkpoint.
func makeCheckpointKey(runID core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", runCheckpointPrefix, runID))
}

// parseCheckpointKey extracts the run ID from a checkpoint key.
func parseCheckpointKey(key []byte) (core.ID, error) {
	raw, ok := strings.CutPrefix(string(key), runCheckpointPrefix+":")
	if !ok {
		return 0, fmt.Errorf("not a checkpoint key: %q", key)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return core.ID(id), nil
}
