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

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/multierr"
)

// Options carries the process-scope knobs a single Resolve call (or a BOM
// import nested inside one) is allowed to tweak, per SPEC_FULL.md §4.1(b)
// and §10's ambient-stack configuration section.
type Options struct {
	// PropertyOverrides take precedence over every POM-declared property but
	// not over the reserved project.*/pom.* coordinate tokens.
	PropertyOverrides map[string]string
	// PlaceholderRecursionBound caps the number of substitution passes
	// evaluate() performs. Zero or negative means defaultRecursionBound.
	PlaceholderRecursionBound int
	// MaxParentDepth caps the number of ancestors the parent walker will
	// follow, mirroring the teacher's mavenutil.MaxParent. Zero or negative
	// means maxParentDepth.
	MaxParentDepth int
}

func (o Options) recursionBound() int {
	if o.PlaceholderRecursionBound > 0 {
		return o.PlaceholderRecursionBound
	}
	return defaultRecursionBound
}

func (o Options) parentDepthBound() int {
	if o.MaxParentDepth > 0 {
		return o.MaxParentDepth
	}
	return maxParentDepth
}

// Resolver is the package's top-level entry point (C9, SPEC_FULL.md §4.8). A
// Resolver is safe for concurrent use: its cache is the only shared state,
// and it is guarded by a mutex.
type Resolver struct {
	downloader Downloader

	mu    sync.Mutex
	cache *resolverCache
}

// NewResolver constructs a Resolver backed by the given Downloader.
func NewResolver(downloader Downloader) *Resolver {
	return &Resolver{
		downloader: downloader,
		cache:      newResolverCache(),
	}
}

// Resolve computes the fully-resolved Pom for raw: its normalized
// coordinates, its composed properties and dependency management, and its
// conflict-resolved transitive dependency list. Non-fatal conditions
// encountered along the way are both delivered to ec.OnError and aggregated
// into the returned error via multierr, so a caller that only checks the
// error return still sees everything that went wrong. A nil Pom is only
// ever returned alongside a non-nil error.
func (r *Resolver) Resolve(ctx context.Context, raw RawPom, ec ExecutionContext, opts Options) (*Pom, error) {
	if raw == nil {
		return nil, fmt.Errorf("maven: Resolve called with a nil RawPom")
	}

	var errs error
	report := ErrorSink(func(e *ResolutionError) {
		errs = multierr.Append(errs, e)
		ec.OnError(e)
	})

	walker := newParentWalker(r.downloader, ec, report, opts)
	effCtx := newEffectiveContext()
	root, err := walker.walk(ctx, raw, effCtx, 0, nil)
	if err != nil {
		return nil, multierr.Append(errs, err)
	}
	if root == nil {
		return nil, errs
	}

	key, err := root.fingerprint()
	if err != nil {
		return nil, multierr.Append(errs, err)
	}
	if cached, ok := r.lookupCache(key); ok {
		return cached, errs
	}

	profiles := ec.ActiveProfiles()
	depResolver := &dependencyResolver{downloader: r.downloader, execCtx: ec, report: report, opts: opts}
	depResolver.resolveTransitive(ctx, root)

	pom := buildPom(root, raw, profiles, effCtx, opts)
	r.storeCache(key, pom)
	return pom, errs
}

func (r *Resolver) lookupCache(key uint64) (*Pom, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.get(key)
}

func (r *Resolver) storeCache(key uint64, pom *Pom) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.put(key, pom)
}

// buildPom assembles the final immutable Pom for the root of a resolution
// (C9). It is the only place the flattened, sorted dependency list is
// materialized from the shared resolvedDependencies ledger.
func buildPom(partial *PartialPom, raw RawPom, profiles []string, ec *effectiveContext, opts Options) *Pom {
	deps := make([]ResolvedDependency, 0, len(ec.resolvedDependencies))
	for _, rd := range ec.resolvedDependencies {
		deps = append(deps, *rd)
	}
	sort.Slice(deps, func(i, j int) bool {
		if deps[i].GroupID != deps[j].GroupID {
			return deps[i].GroupID < deps[j].GroupID
		}
		return deps[i].ArtifactID < deps[j].ArtifactID
	})

	return &Pom{
		Coordinate:         partial.Coordinate,
		Packaging:          defaultPackaging(raw.Packaging()),
		Name:               raw.Name(),
		Description:        raw.Description(),
		Snapshot:           raw.IsSnapshot(),
		Properties:         copyProperties(ec.properties),
		PropertyOverrides:  copyProperties(partial.propertyOverrides),
		Repositories:       partial.repositories,
		Licenses:           filterLicenses(raw.Licenses(), partial.ownLookup, opts.recursionBound()),
		ManagementResolved: partial.dependencyManagement,
		Dependencies:       deps,
		Ancestry:           ancestryOf(partial.parent),
	}
}

// buildShallowPom builds the Pom attached to a ResolvedDependency.Resolved
// (DESIGN.md, Open Question decision 3). It carries the dependency's own
// metadata and composed management table but not its own transitive
// dependency list: that subtree is already present, flattened, in the
// enclosing Pom.Dependencies, and re-deriving it per edge would repeat work
// across a DAG with shared subgraphs for no benefit to callers.
func buildShallowPom(partial *PartialPom, raw RawPom, profiles []string, opts Options) *Pom {
	return &Pom{
		Coordinate:         partial.Coordinate,
		Packaging:          defaultPackaging(raw.Packaging()),
		Name:               raw.Name(),
		Description:        raw.Description(),
		Snapshot:           raw.IsSnapshot(),
		Properties:         copyProperties(partial.ec.properties),
		PropertyOverrides:  copyProperties(partial.propertyOverrides),
		Repositories:       partial.repositories,
		Licenses:           filterLicenses(raw.Licenses(), partial.ownLookup, opts.recursionBound()),
		ManagementResolved: partial.dependencyManagement,
		Ancestry:           ancestryOf(partial.parent),
	}
}

func defaultPackaging(packaging string) string {
	if packaging == "" {
		return "jar"
	}
	return packaging
}

func copyProperties(properties map[string]string) map[string]string {
	out := make(map[string]string, len(properties))
	for k, v := range properties {
		out[k] = v
	}
	return out
}

// filterLicenses evaluates placeholders in each license name and drops any
// entry that is still empty or still contains an unresolved placeholder
// afterward, per SPEC_FULL.md §12's license-passthrough supplement.
func filterLicenses(licenses []License, lookup lookupFunc, bound int) []License {
	var out []License
	for _, l := range licenses {
		name := evaluate(l.Name, lookup, bound)
		if isPlaceholderOrEmpty(name) {
			continue
		}
		out = append(out, License{Name: name})
	}
	return out
}

func ancestryOf(parent *PartialPom) []Coordinate {
	var out []Coordinate
	for p := parent; p != nil; p = p.parent {
		out = append(out, p.Coordinate)
	}
	return out
}
