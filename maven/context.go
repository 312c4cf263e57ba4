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

import "github.com/gohugoio/hashstructure"

// ManagedDependency is a single resolved <dependencyManagement> entry: a
// fallback (version, scope, classifier, exclusions) for any direct
// dependency matching its ArtifactKey that omits one.
type ManagedDependency struct {
	Coordinate
	// RawVersion is the version expression as declared, before placeholder
	// evaluation; kept so callers can tell a literal version from one that
	// was computed.
	RawVersion string
	Scope      string
	Classifier string
	Exclusions []ArtifactKey
}

// ResolvedDependency is a single entry in the transitive dependency tree:
// the chosen concrete version for an ArtifactKey, plus the version that was
// originally requested at the point it was first encountered.
type ResolvedDependency struct {
	Coordinate
	RequestedVersion string
	Scope            string
	Type             string
	Optional         bool
	Classifier       string
	Exclusions       []ArtifactKey
	// Resolved is a shallow Pom for this dependency's own coordinates (see
	// buildShallowPom): its Dependencies list is left empty. It is nil for
	// dependencies the resolver could not fetch (treated as a leaf).
	Resolved *Pom
}

// effectiveContext accumulates state for one resolution subtree (SPEC_FULL
// §3). Properties and resolvedDependencies are child-wins (first write for
// a given key sticks); managedDependencies composition additionally
// interleaves BOM import order, handled in depmanagement.go.
type effectiveContext struct {
	properties           map[string]string
	managedDependencies  map[ArtifactKey]ManagedDependency
	resolvedDependencies map[ArtifactKey]*ResolvedDependency
}

func newEffectiveContext() *effectiveContext {
	return &effectiveContext{
		properties:            map[string]string{},
		managedDependencies:   map[ArtifactKey]ManagedDependency{},
		resolvedDependencies:  map[ArtifactKey]*ResolvedDependency{},
	}
}

// foldProperty applies first-write-wins: if key is already present the
// existing value is kept, otherwise value is recorded.
func (c *effectiveContext) foldProperty(key, value string) {
	if _, ok := c.properties[key]; ok {
		return
	}
	c.properties[key] = value
}

// foldManagedDependency applies first-write-wins for a single managed
// dependency entry.
func (c *effectiveContext) foldManagedDependency(md ManagedDependency) {
	if _, ok := c.managedDependencies[md.Key()]; ok {
		return
	}
	c.managedDependencies[md.Key()] = md
}

// dependencyChild returns a context for a recursive dependency resolution:
// it inherits only the resolvedDependencies map (by reference, since that
// map is the shared conflict-resolution ledger for the whole dependency
// DAG), with fresh, empty properties and managed dependencies, matching
// SPEC_FULL.md §4.6 step 4 ("properties are strictly per-POM-tree").
func (c *effectiveContext) dependencyChild() *effectiveContext {
	return &effectiveContext{
		properties:            map[string]string{},
		managedDependencies:   map[ArtifactKey]ManagedDependency{},
		resolvedDependencies:  c.resolvedDependencies,
	}
}

// PartialPom is the intermediate resolution state for one POM: concrete
// coordinates, a link to its parent partial, its own declared repositories,
// the subset of properties whose effective value differs from what the POM
// itself declared, and its composed dependency-management table.
type PartialPom struct {
	Coordinate
	raw                  RawPom
	parent               *PartialPom
	repositories         []Repository
	propertyOverrides    map[string]string
	dependencyManagement map[ArtifactKey]ManagedDependency
	// ownLookup is the placeholder lookup in effect at this exact level,
	// captured so direct-dependency version expressions can be evaluated
	// against the same priority chain used for this POM's own coordinates.
	ownLookup lookupFunc
	// ec is the effectiveContext this partial was folded into; kept so later
	// stages (dependency composition) can read the fully-folded properties
	// and managed dependencies without threading a second parameter around.
	ec *effectiveContext
}

// fingerprintInput mirrors exactly the six-tuple SPEC_FULL.md §3 declares as
// a PartialPom's equality fingerprint: (groupId, artifactId, version,
// parent, propertyOverrides, dependencyOverrides). Nothing else may ever be
// added to this struct, or two structurally-equivalent partials could stop
// sharing a cache entry.
type fingerprintInput struct {
	GroupID              string
	ArtifactID           string
	Version              string
	Parent               uint64
	PropertyOverrides    map[string]string
	DependencyManagement map[ArtifactKey]ManagedDependency
}

// fingerprint computes the structural cache key for this partial (C7,
// SPEC_FULL.md §4.7). hashstructure hashes maps order-independently, so two
// partials built by folding the same overrides in a different order still
// collide onto the same key.
func (p *PartialPom) fingerprint() (uint64, error) {
	var parentFingerprint uint64
	if p.parent != nil {
		var err error
		parentFingerprint, err = p.parent.fingerprint()
		if err != nil {
			return 0, err
		}
	}
	in := fingerprintInput{
		GroupID:              p.GroupID,
		ArtifactID:           p.ArtifactID,
		Version:              p.Version,
		Parent:               parentFingerprint,
		PropertyOverrides:    p.propertyOverrides,
		DependencyManagement: p.dependencyManagement,
	}
	return hashstructure.Hash(in, nil)
}
