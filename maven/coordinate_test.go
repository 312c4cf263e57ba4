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

import "testing"

func TestNormalizeCoordinates(t *testing.T) {
	tests := []struct {
		name      string
		raw       Coordinate
		parent    RawParent
		hasParent bool
		want      Coordinate
		wantOK    bool
	}{
		{
			name:   "fully explicit",
			raw:    Coordinate{GroupID: "org.example", ArtifactID: "lib", Version: "1.0"},
			want:   Coordinate{GroupID: "org.example", ArtifactID: "lib", Version: "1.0"},
			wantOK: true,
		},
		{
			name:      "group and version inherited from parent",
			raw:       Coordinate{ArtifactID: "child"},
			parent:    RawParent{Coordinate: Coordinate{GroupID: "org.example", Version: "2.0"}},
			hasParent: true,
			want:      Coordinate{GroupID: "org.example", ArtifactID: "child", Version: "2.0"},
			wantOK:    true,
		},
		{
			name:   "missing artifactId with no parent is unresolved",
			raw:    Coordinate{GroupID: "org.example", Version: "1.0"},
			wantOK: false,
		},
		{
			name:   "leftover placeholder after evaluation is unresolved",
			raw:    Coordinate{GroupID: "org.example", ArtifactID: "lib", Version: "${missing}"},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reported []*ResolutionError
			report := func(e *ResolutionError) { reported = append(reported, e) }

			got, ok := normalizeCoordinates(tt.raw, tt.parent, tt.hasParent, mapLookup(nil), defaultRecursionBound, report)
			if ok != tt.wantOK {
				t.Fatalf("normalizeCoordinates() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				if len(reported) != 1 || reported[0].Kind != UnresolvedCoordinate {
					t.Errorf("expected exactly one UnresolvedCoordinate error, got %v", reported)
				}
				return
			}
			if got != tt.want {
				t.Errorf("normalizeCoordinates() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSelfCoordinateLookup(t *testing.T) {
	own := Coordinate{GroupID: "org.example", ArtifactID: "lib", Version: "1.0"}
	parent := RawParent{Coordinate: Coordinate{GroupID: "org.parent", ArtifactID: "parent-pom", Version: "9.0"}}
	lookup := selfCoordinateLookup(own, parent, true)

	tests := []struct {
		name string
		want string
	}{
		{"groupId", "org.example"},
		{"project.artifactId", "lib"},
		{"pom.version", "1.0"},
		{"project.parent.groupId", "org.parent"},
	}
	for _, tt := range tests {
		got, ok := lookup(tt.name)
		if !ok || got != tt.want {
			t.Errorf("lookup(%q) = (%q, %v), want (%q, true)", tt.name, got, ok, tt.want)
		}
	}

	if _, ok := lookup("unrelated.token"); ok {
		t.Errorf("lookup(unrelated.token) unexpectedly resolved")
	}
}
