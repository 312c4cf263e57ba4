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

import "go.uber.org/multierr"

// Errors unwraps the *ResolutionErrors a Resolve call's aggregated error
// return is built from (C8, SPEC_FULL.md §7). A nil error, or one that holds
// no *ResolutionError, yields a nil slice.
func Errors(err error) []*ResolutionError {
	if err == nil {
		return nil
	}
	var out []*ResolutionError
	for _, e := range multierr.Errors(err) {
		if re, ok := e.(*ResolutionError); ok {
			out = append(out, re)
		}
	}
	return out
}

// ErrorsOfKind filters Errors(err) down to a single ErrorKind, for callers
// that only care about, say, every ParentCycle encountered during a
// resolution.
func ErrorsOfKind(err error, kind ErrorKind) []*ResolutionError {
	var out []*ResolutionError
	for _, re := range Errors(err) {
		if re.Kind == kind {
			out = append(out, re)
		}
	}
	return out
}
