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

	"bitbucket.org/creachadair/stringset"

	"github.com/sumodgeorge/rewrite/log"
)

// dependencyQueueItem is one pending edge in the breadth-first walk of the
// dependency DAG: a raw declaration together with everything needed to
// evaluate and expand it without re-walking its owner's parent chain.
// exclusions holds ArtifactKey.String() markers, matching the string-keyed
// visited set the parent walker uses for cycle detection.
type dependencyQueueItem struct {
	raw        RawDependency
	depth      int
	exclusions stringset.Set

	ownerLookup     lookupFunc
	ownerManagement map[ArtifactKey]ManagedDependency
	ownerRepos      []Repository
	ownerCoord      Coordinate
}

// dependencyResolver composes the transitive dependency graph (C6,
// SPEC_FULL.md §4.6).
type dependencyResolver struct {
	downloader Downloader
	execCtx    ExecutionContext
	report     ErrorSink
	opts       Options
}

// resolveTransitive walks root's direct dependencies breadth-first,
// expanding each one's own dependencies in turn. Conflict resolution is
// nearest-wins: ec.resolvedDependencies is keyed by ArtifactKey and only
// ever written once per key, and the breadth-first order guarantees the
// first write is the shallowest declaration (ties broken by declaration
// order within a level), matching SPEC_FULL.md §8's conflict-resolution
// property.
func (d *dependencyResolver) resolveTransitive(ctx context.Context, root *PartialPom) {
	profiles := d.execCtx.ActiveProfiles()
	ec := root.ec

	var queue []dependencyQueueItem
	for _, raw := range root.raw.ActiveDependencies(profiles) {
		queue = append(queue, dependencyQueueItem{
			raw:             raw,
			depth:           1,
			ownerLookup:     root.ownLookup,
			ownerManagement: root.dependencyManagement,
			ownerRepos:      root.repositories,
			ownerCoord:      root.Coordinate,
		})
	}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if ctx.Err() != nil {
			return
		}

		bound := d.opts.recursionBound()
		key := ArtifactKey{
			GroupID:    evaluate(item.raw.GroupID, item.ownerLookup, bound),
			ArtifactID: evaluate(item.raw.ArtifactID, item.ownerLookup, bound),
		}
		if key == item.ownerCoord.Key() {
			log.Warnf("dependency %s is self-referential", key)
			d.report(&ResolutionError{
				Kind:       SelfReferentialDependency,
				Coordinate: item.ownerCoord,
				Message:    "dependency " + key.String() + " is self-referential",
			})
			continue
		}
		if item.exclusions.Contains(key.String()) {
			continue
		}
		if _, already := ec.resolvedDependencies[key]; already {
			continue
		}

		resolved := d.resolveOne(item, key)
		ec.resolvedDependencies[key] = resolved
		if resolved.Coordinate.Version == "" {
			continue
		}

		childExclusions := unionExclusions(item.exclusions, resolved.Exclusions)

		log.Debugf("fetching dependency %s", key)
		childRaw, err := d.downloader.Download(ctx, resolved.Coordinate, "", nil, item.ownerRepos)
		if err != nil {
			log.Warnf("failed to download %s: %v", key, err)
			d.report(&ResolutionError{
				Kind:       DownloaderFailure,
				Coordinate: resolved.Coordinate,
				Message:    "failed to download " + key.String(),
				Cause:      err,
			})
			continue
		}
		if childRaw == nil {
			continue
		}

		childEC := ec.dependencyChild()
		walker := newParentWalker(d.downloader, d.execCtx, d.report, d.opts)
		childPartial, err := walker.walk(ctx, childRaw, childEC, 0, nil)
		if err != nil || childPartial == nil {
			continue
		}

		resolved.Resolved = buildShallowPom(childPartial, childRaw, profiles, d.opts)

		for _, nextRaw := range childRaw.ActiveDependencies(profiles) {
			queue = append(queue, dependencyQueueItem{
				raw:             nextRaw,
				depth:           item.depth + 1,
				exclusions:      childExclusions,
				ownerLookup:     childPartial.ownLookup,
				ownerManagement: childPartial.dependencyManagement,
				ownerRepos:      childPartial.repositories,
				ownerCoord:      childPartial.Coordinate,
			})
		}
	}
}

// resolveOne determines the effective version, scope and exclusions for a
// single dependency declaration, falling back to the owner's managed
// dependency table when the declaration omits a version (SPEC_FULL.md
// §4.6 step 2). A version that is still empty or still a placeholder after
// that fallback is reported and the dependency is recorded with an empty
// version so callers can recognize it as unresolved.
func (d *dependencyResolver) resolveOne(item dependencyQueueItem, key ArtifactKey) *ResolvedDependency {
	scope := item.raw.Scope
	typ := item.raw.Type
	if typ == "" {
		typ = "jar"
	}
	bound := d.opts.recursionBound()
	classifier := evaluate(item.raw.Classifier, item.ownerLookup, bound)
	version := evaluate(item.raw.Version, item.ownerLookup, bound)

	managed, hasManaged := item.ownerManagement[key]
	if isPlaceholderOrEmpty(version) && hasManaged {
		version = managed.Version
		if classifier == "" {
			classifier = managed.Classifier
		}
	}
	if scope == "" {
		if hasManaged && managed.Scope != "" {
			scope = managed.Scope
		} else {
			scope = "compile"
		}
	}

	exclusions := append([]ArtifactKey(nil), item.raw.Exclusions...)
	if hasManaged {
		exclusions = append(exclusions, managed.Exclusions...)
	}

	coord := Coordinate{GroupID: key.GroupID, ArtifactID: key.ArtifactID, Version: version}
	rd := &ResolvedDependency{
		Coordinate:       coord,
		RequestedVersion: item.raw.Version,
		Scope:            scope,
		Type:             typ,
		Optional:         item.raw.Optional,
		Classifier:       classifier,
		Exclusions:       exclusions,
	}
	if isPlaceholderOrEmpty(version) {
		log.Warnf("could not determine a version for %s", key)
		d.report(&ResolutionError{
			Kind:       UnresolvedCoordinate,
			Coordinate: coord,
			Message:    "could not determine a version for " + key.String(),
		})
		rd.Coordinate.Version = ""
	}
	return rd
}

// unionExclusions merges an inherited exclusion set (already a stringset.Set
// of ArtifactKey.String() markers) with the exclusions declared on a single
// dependency edge, per SPEC_FULL.md §11's mandate that exclusion sets use
// bitbucket.org/creachadair/stringset, the same set library the parent
// walker uses for its cycle-detection visited set.
func unionExclusions(inherited stringset.Set, edge []ArtifactKey) stringset.Set {
	if len(inherited) == 0 && len(edge) == 0 {
		return nil
	}
	out := stringset.New()
	for k := range inherited {
		out.Add(k)
	}
	for _, k := range edge {
		out.Add(k.String())
	}
	return out
}
