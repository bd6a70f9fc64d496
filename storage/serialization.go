// Copyright 2025 Poiesic Systems
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


package storage

import (
	"encoding/json"
	"fmt"

	"github.com/poiesic/talentrank/core"
)

// Run artifacts are stored as JSON so they stay inspectable with badger
// tooling and stable across struct field additions. The compact binary
// encoding is reserved for checkpoints, which are written on the hot
// path between stages.

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalRunCheckpoint serializes a RunCheckpoint to bytes.
func MarshalRunCheckpoint(checkpoint *core.RunCheckpoint) []byte {
	buf := make([]byte, core.RunCheckpointMUS.Size(*checkpoint))
	core.RunCheckpointMUS.Marshal(*checkpoint, buf)
	return buf
}

// UnmarshalRunCheckpoint deserializes a RunCheckpoint from bytes.
func UnmarshalRunCheckpoint(data []byte) (*core.RunCheckpoint, error) {
	checkpoint, _, err := core.RunCheckpointMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &checkpoint, nil
}

// MarshalArtifact serializes a run artifact to JSON bytes.
func MarshalArtifact(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalArtifact deserializes a run artifact from JSON bytes.
func UnmarshalArtifact(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return nil
}
