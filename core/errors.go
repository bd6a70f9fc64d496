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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidJobSpec indicates a JobSpec failed validation.
	ErrInvalidJobSpec = errors.New("invalid job spec")

	// ErrInvalidCandidateRecord indicates a CandidateRecord failed validation.
	ErrInvalidCandidateRecord = errors.New("invalid candidate record")

	// ErrEmptyCandidateName indicates the candidate name is empty.
	ErrEmptyCandidateName = errors.New("candidate name cannot be empty")

	// ErrDuplicateCandidate indicates two records in a pool share a name.
	ErrDuplicateCandidate = errors.New("duplicate candidate name in pool")
)
