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


// Package signal renders structured records into canonical signal text.
//
// Signal text is the fixed-layout textual form of a job spec or candidate
// record that every scoring capability consumes: the bi-encoder embeds it,
// the cross-encoder compares pairs of it. Both stages of the funnel depend
// on the rendering being a pure function of its input, so the same record
// always yields byte-identical text and rankings stay reproducible.
//
// Missing optional fields render as empty strings rather than failing.
// A partially-extracted record must still produce comparable text instead
// of aborting the ranking of the whole pool.
package signal
