// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package maven

import "strings"

// defaultRecursionBound caps the number of substitution passes evaluate will
// perform before giving up on reaching a fixed point, guarding against a
// property that (directly or through a cycle) expands to reference itself.
const defaultRecursionBound = 16

// lookupFunc resolves a single "${name}" placeholder to its value. The
// second return value reports whether the name was found at all; a false
// leaves the placeholder textually intact.
type lookupFunc func(name string) (string, bool)

// evaluate recursively replaces every "${key}" in text with lookup(key)
// until a fixed point or bound passes, whichever comes first (C1,
// SPEC_FULL.md §4.1). bound is normally Options.recursionBound(); a
// non-positive bound falls back to defaultRecursionBound. evaluate never
// returns an error: an unresolved placeholder is simply left in the output,
// and callers detect that by searching the result for "${".
func evaluate(text string, lookup lookupFunc, bound int) string {
	if bound <= 0 {
		bound = defaultRecursionBound
	}
	cur := text
	for pass := 0; pass < bound; pass++ {
		next, changed := substituteOnce(cur, lookup)
		if !changed {
			return next
		}
		cur = next
	}
	return cur
}

// substituteOnce replaces every resolvable "${name}" placeholder in text
// with its looked-up value in a single left-to-right pass, and reports
// whether anything changed.
func substituteOnce(text string, lookup lookupFunc) (string, bool) {
	if !strings.Contains(text, "${") {
		return text, false
	}

	var b strings.Builder
	changed := false
	rest := text
	for {
		start := strings.Index(rest, "${")
		if start == -1 {
			b.WriteString(rest)
			break
		}
		end := strings.Index(rest[start:], "}")
		if end == -1 {
			// Unterminated placeholder: leave the remainder as-is.
			b.WriteString(rest)
			break
		}
		end += start

		b.WriteString(rest[:start])
		name := rest[start+2 : end]
		if value, ok := lookup(name); ok {
			b.WriteString(value)
			changed = true
		} else {
			b.WriteString(rest[start : end+1])
		}
		rest = rest[end+1:]
	}
	return b.String(), changed
}
