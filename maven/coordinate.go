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

// normalizeCoordinates computes concrete (groupId, artifactId, version) for
// a RawPom (C2, SPEC_FULL.md §4.2). Missing group/version fall back to the
// parent reference. Returns ok=false (and reports an UnresolvedCoordinate
// error) when any of the three is still empty or still contains "${" after
// evaluation.
func normalizeCoordinates(raw Coordinate, parent RawParent, hasParent bool, lookup lookupFunc, bound int, report ErrorSink) (Coordinate, bool) {
	group := evaluate(raw.GroupID, lookup, bound)
	artifact := evaluate(raw.ArtifactID, lookup, bound)
	version := evaluate(raw.Version, lookup, bound)

	if group == "" && hasParent {
		group = parent.GroupID
	}
	if version == "" && hasParent {
		version = parent.Version
	}

	coord := Coordinate{GroupID: group, ArtifactID: artifact, Version: version}
	if isPlaceholderOrEmpty(group) || isPlaceholderOrEmpty(artifact) || isPlaceholderOrEmpty(version) {
		report(&ResolutionError{
			Kind:       UnresolvedCoordinate,
			Coordinate: coord,
			Message:    "could not resolve coordinates for " + describeCoordinate(coord),
		})
		return Coordinate{}, false
	}
	return coord, true
}

func isPlaceholderOrEmpty(s string) bool {
	return s == "" || strings.Contains(s, "${")
}

func describeCoordinate(c Coordinate) string {
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version
}

// selfCoordinateLookup builds the reserved-token lookup described in
// SPEC_FULL.md §4.1(a): groupId/artifactId/version and their project./pom.
// variants bound to own, plus project.parent.* bound to the parent
// reference. This is consulted before any property map, and always against
// the partial currently being built rather than any ambient context
// (SPEC_FULL.md §4.2).
func selfCoordinateLookup(own Coordinate, parent RawParent, hasParent bool) lookupFunc {
	reserved := map[string]string{
		"groupId":        own.GroupID,
		"artifactId":     own.ArtifactID,
		"version":        own.Version,
		"project.groupId":    own.GroupID,
		"project.artifactId": own.ArtifactID,
		"project.version":    own.Version,
		"pom.groupId":    own.GroupID,
		"pom.artifactId": own.ArtifactID,
		"pom.version":    own.Version,
	}
	if hasParent {
		reserved["project.parent.groupId"] = parent.GroupID
		reserved["project.parent.artifactId"] = parent.ArtifactID
		reserved["project.parent.version"] = parent.Version
	}
	return func(name string) (string, bool) {
		v, ok := reserved[name]
		if !ok || v == "" {
			return "", false
		}
		return v, true
	}
}
