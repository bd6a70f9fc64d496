// Package storage defines persistence interfaces for ranking run
// artifacts and the serialization helpers shared by backends.
//
// A run is identified by a core.ID and accumulates artifacts as the
// pipeline progresses: the job spec and candidate pool at ingestion,
// the similarity ranking after Stage 1, the fusion ranking after
// Stage 2, plus a checkpoint marking the last completed stage.
package storage
