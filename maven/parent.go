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

	"bitbucket.org/creachadair/stringset"

	"github.com/sumodgeorge/rewrite/log"
)

// maxParentDepth caps the number of ancestors the walker will follow,
// mirroring the teacher's mavenutil.MaxParent: a circuit breaker against a
// pathological chain that somehow evades the visited-set check.
const maxParentDepth = 100

// parentWalker holds everything shared across one resolution subtree's walk
// of the parent chain (C4, SPEC_FULL.md §4.4).
type parentWalker struct {
	downloader Downloader
	execCtx    ExecutionContext
	report     ErrorSink
	opts       Options
	visited    stringset.Set
}

// newParentWalker builds a parentWalker ready to walk a fresh chain.
func newParentWalker(dl Downloader, ec ExecutionContext, report ErrorSink, opts Options) *parentWalker {
	return &parentWalker{
		downloader: dl,
		execCtx:    ec,
		report:     report,
		opts:       opts,
		visited:    stringset.New(),
	}
}

// walk builds the PartialPom for raw, recursing into its ancestors and
// folding properties and dependency management into ec along the way.
// inherited carries the nearer (already-walked, child-before-parent) levels'
// own repositories, nearest first; the root call passes nil. The parent's
// RelativePath is passed to the downloader as the path hint for the parent
// fetch, per SPEC_FULL.md §6.
func (w *parentWalker) walk(ctx context.Context, raw RawPom, ec *effectiveContext, depth int, inherited []Repository) (*PartialPom, error) {
	depthBound := w.opts.parentDepthBound()
	if depth > depthBound {
		return nil, fmt.Errorf("parent chain exceeds %d levels", depthBound)
	}

	profiles := w.execCtx.ActiveProfiles()
	bound := w.opts.recursionBound()

	// Step 1: fold this level's own properties, child-first-wins.
	for k, v := range raw.ActiveProperties(profiles) {
		ec.foldProperty(k, v)
	}

	rawParent, hasParent := raw.Parent()
	lookup := w.lookupFor(raw.Coordinates(), rawParent, hasParent, ec)

	// Step 2: normalize coordinates.
	coord, ok := normalizeCoordinates(raw.Coordinates(), rawParent, hasParent, lookup, bound, w.report)
	if !ok {
		return nil, nil
	}
	log.Debugf("walking POM %s", describeCoordinate(coord))

	// Step 3: cycle detection.
	marker := describeCoordinate(coord)
	if w.visited.Contains(marker) {
		log.Warnf("parent cycle detected at %s", marker)
		w.report(&ResolutionError{
			Kind:       ParentCycle,
			Coordinate: coord,
			Message:    "parent cycle detected at " + marker,
		})
		return nil, nil
	}
	w.visited.Add(marker)

	// Step 4: build the effective repository set for fetching the parent,
	// accumulating this level's own repositories onto the chain of nearer
	// levels already walked, so effectiveRepositories sees the full
	// child-before-parent chain rather than just this one level's own
	// entries (SPEC_FULL.md §4.3, §8 "Repository precedence").
	ownRepos := resolveRepositories(raw.ActiveRepositories(profiles), lookup, w.execCtx.Mirrors(), w.execCtx.Credentials(), bound, w.report)
	accumulatedOwn := make([]Repository, 0, len(inherited)+len(ownRepos))
	accumulatedOwn = append(accumulatedOwn, inherited...)
	accumulatedOwn = append(accumulatedOwn, ownRepos...)
	userSettingsRepos := resolveRepositories(w.execCtx.Repositories(), lookup, w.execCtx.Mirrors(), w.execCtx.Credentials(), bound, w.report)
	repos := effectiveRepositories(userSettingsRepos, accumulatedOwn)

	partial := &PartialPom{
		Coordinate:        coord,
		raw:               raw,
		repositories:      repos,
		propertyOverrides: overridesFor(raw.ActiveProperties(profiles), ec),
		ownLookup:         lookup,
		ec:                ec,
	}

	// Compose this level's own managed dependencies (C5) before recursing,
	// so nearer-to-child declarations are folded first and win ties.
	composeDependencyManagement(ctx, raw, profiles, lookup, ec, w.downloader, repos, w.opts, w.report)

	// Step 5: recurse into the parent, if any.
	if hasParent {
		relativePath := rawParent.RelativePath
		log.Debugf("fetching parent %s of %s", describeCoordinate(rawParent.Coordinate), marker)
		parentRaw, err := w.downloader.Download(ctx, rawParent.Coordinate, relativePath, raw, repos)
		if err != nil {
			log.Warnf("failed to download parent of %s: %v", marker, err)
			w.report(&ResolutionError{
				Kind:       DownloaderFailure,
				Coordinate: rawParent.Coordinate,
				Message:    "failed to download parent of " + marker,
				Cause:      err,
			})
		} else if parentRaw != nil {
			parentPartial, err := w.walk(ctx, parentRaw, ec, depth+1, accumulatedOwn)
			if err != nil {
				return nil, err
			}
			partial.parent = parentPartial
		}
	}

	partial.dependencyManagement = snapshotManagedDependencies(ec)
	return partial, nil
}

// lookupFor builds the full placeholder lookup for a level (C1 priority
// chain, SPEC_FULL.md §4.1). The property-override/own-declared/parent-
// recursive layers (c, d, e) collapse into a single consult of ec, since ec
// is folded child-first and therefore already reflects exactly that chain's
// result for any key (see DESIGN.md).
func (w *parentWalker) lookupFor(own Coordinate, parent RawParent, hasParent bool, ec *effectiveContext) lookupFunc {
	self := selfCoordinateLookup(own, parent, hasParent)
	return func(name string) (string, bool) {
		if v, ok := self(name); ok {
			return v, true
		}
		if v, ok := w.opts.PropertyOverrides[name]; ok {
			return v, true
		}
		if v, ok := ec.properties[name]; ok {
			return v, true
		}
		return "", false
	}
}

// overridesFor computes the subset of a level's own declared properties
// whose effective value (already folded into ec by an earlier, nearer
// declaration) differs from what this level itself declares.
func overridesFor(own map[string]string, ec *effectiveContext) map[string]string {
	if len(own) == 0 {
		return nil
	}
	overrides := map[string]string{}
	for k, v := range own {
		if effective, ok := ec.properties[k]; ok && effective != v {
			overrides[k] = effective
		}
	}
	if len(overrides) == 0 {
		return nil
	}
	return overrides
}

func snapshotManagedDependencies(ec *effectiveContext) map[ArtifactKey]ManagedDependency {
	if len(ec.managedDependencies) == 0 {
		return nil
	}
	out := make(map[ArtifactKey]ManagedDependency, len(ec.managedDependencies))
	for k, v := range ec.managedDependencies {
		out[k] = v
	}
	return out
}
