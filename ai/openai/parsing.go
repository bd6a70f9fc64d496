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


package openai

import (
	"encoding/json"
	"strings"
)

// decodeJSONResponse parses an LLM response into v, tolerating the two
// failure modes local models produce most often: markdown code fences
// around the object and missing opening quotes before keys.
func decodeJSONResponse(raw string, v any) error {
	text := stripCodeFences(raw)
	text = repairJSON(text)
	return json.Unmarshal([]byte(text), v)
}

// stripCodeFences removes surrounding markdown code fences if present.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// repairJSON attempts to fix common JSON formatting issues from LLM responses.
// It specifically handles missing opening quotes before keys in JSON objects:
// after { or , a bare word followed by ": is rewritten as a quoted key.
// Example: `, type":` -> `, "type":`
func repairJSON(s string) string {
	src := []rune(s)
	fixed := make([]rune, 0, len(src)+16)

	i := 0
	for i < len(src) {
		ch := src[i]
		if ch != '{' && ch != ',' {
			fixed = append(fixed, ch)
			i++
			continue
		}

		fixed = append(fixed, ch)
		i++

		for i < len(src) && (src[i] == ' ' || src[i] == '\n' || src[i] == '\t') {
			fixed = append(fixed, src[i])
			i++
		}

		if i >= len(src) || src[i] == '"' || !isKeyRune(src[i]) {
			continue
		}

		keyStart := i
		for i < len(src) && (isKeyRune(src[i]) || src[i] == ' ') {
			i++
		}

		if i+1 < len(src) && src[i] == '"' && src[i+1] == ':' {
			// Unquoted key: insert the missing opening quote, keep the
			// closing quote already present at src[i].
			fixed = append(fixed, '"')
			fixed = append(fixed, src[keyStart:i]...)
			continue
		}

		// Not a key after all, copy what we skipped.
		fixed = append(fixed, src[keyStart:i]...)
	}

	return string(fixed)
}

func isKeyRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
