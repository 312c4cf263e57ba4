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

// Pom is the final, immutable resolution result for one coordinate (C9,
// SPEC_FULL.md §3 and §4.8). Every field has already been placeholder-
// evaluated and inherited; nothing in it still references its RawPom.
type Pom struct {
	Coordinate
	Packaging   string
	Name        string
	Description string
	Snapshot    bool
	// Properties is this Pom's own fully-folded effective property view.
	Properties map[string]string
	// PropertyOverrides is the subset of this POM's own declared properties
	// whose effective value was overridden by a nearer declaration (a child
	// POM's value folded in before this POM's own), per SPEC_FULL.md §3's
	// "own" and "override" property maps. Options.PropertyOverrides entries
	// are not recorded here.
	PropertyOverrides map[string]string
	Repositories      []Repository
	Licenses          []License
	// ManagementResolved is the fully composed <dependencyManagement> table,
	// after BOM imports, keyed by (groupId, artifactId).
	ManagementResolved map[ArtifactKey]ManagedDependency
	// Dependencies is the flattened, conflict-resolved (nearest-wins)
	// transitive dependency list, sorted by groupId and then artifactId; it
	// does not keep declaration or first-seen order.
	Dependencies []ResolvedDependency
	// Ancestry is the chain of normalized coordinates from this POM's
	// immediate parent up to the root, nearest first.
	Ancestry []Coordinate
}
