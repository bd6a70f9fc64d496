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

import "fmt"

// ValidateJobSpec validates a JobSpec according to domain rules.
//
// Validation rules:
//   - spec must not be nil
//
// NOT validated (permissive by design):
//   - Empty requirement lists and empty context fields. Partially-extracted
//     specs must still flow through the funnel and serialize to empty text.
func ValidateJobSpec(spec *JobSpec) error {
	if spec == nil {
		return fmt.Errorf("%w: spec is nil", ErrInvalidJobSpec)
	}
	return nil
}

// ValidateCandidateRecord validates a CandidateRecord according to domain rules.
//
// Validation rules:
//   - record must not be nil
//   - ContactInfo.Name must not be empty (it is the identity key)
//
// NOT validated (permissive by design):
//   - Empty skills, work experience, projects, education, certifications.
//     Partially-extracted records still serialize and still get ranked.
func ValidateCandidateRecord(record *CandidateRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidCandidateRecord)
	}

	if record.ContactInfo.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCandidateRecord, ErrEmptyCandidateName)
	}

	return nil
}

// ValidateCandidatePool validates a pool of candidate records for ranking.
// Beyond per-record validation it enforces identity uniqueness: the funnel
// merges Stage 1 and Stage 2 results by candidate name, so duplicate names
// are rejected here, at ingestion, rather than resolved arbitrarily later.
func ValidateCandidatePool(records []*CandidateRecord) error {
	seen := make(map[string]bool, len(records))
	for i, record := range records {
		if err := ValidateCandidateRecord(record); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		name := record.Identity()
		if seen[name] {
			return fmt.Errorf("%w: %q", ErrDuplicateCandidate, name)
		}
		seen[name] = true
	}
	return nil
}
