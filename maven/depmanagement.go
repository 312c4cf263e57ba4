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

	"github.com/sumodgeorge/rewrite/log"
)

// validManagedScopes are the scope tokens a <dependencyManagement> entry may
// carry. "import" is special-cased: it names a BOM to fold in rather than a
// managed dependency in its own right.
var validManagedScopes = map[string]bool{
	"compile":  true,
	"provided": true,
	"runtime":  true,
	"test":     true,
	"system":   true,
	"import":   true,
}

// composeDependencyManagement folds one RawPom's own <dependencyManagement>
// entries into ec (C5, SPEC_FULL.md §4.5). Entries are processed in source
// order; within that order, first-write-wins (already enforced by
// ec.foldManagedDependency) gives nearer declarations precedence. A
// scope=import entry pulls in another POM's own fully-resolved management
// table rather than being recorded itself.
func composeDependencyManagement(ctx context.Context, raw RawPom, profiles []string, lookup lookupFunc, ec *effectiveContext, dl Downloader, repos []Repository, opts Options, report ErrorSink) {
	bound := opts.recursionBound()
	for _, entry := range raw.ActiveManagedDependencies(profiles) {
		group := evaluate(entry.GroupID, lookup, bound)
		artifact := evaluate(entry.ArtifactID, lookup, bound)
		version := evaluate(entry.Version, lookup, bound)
		scope := entry.Scope
		if scope == "" {
			scope = "compile"
		}
		if !validManagedScopes[scope] {
			log.Warnf("dependencyManagement %s:%s has an unrecognized scope %q", group, artifact, scope)
			report(&ResolutionError{
				Kind:       InvalidManagedScope,
				Coordinate: Coordinate{GroupID: group, ArtifactID: artifact, Version: version},
				Message:    "unrecognized dependencyManagement scope " + scope,
			})
			continue
		}

		if scope == "import" {
			if version == "" || isPlaceholderOrEmpty(version) {
				log.Warnf("BOM import %s:%s has no resolvable version", group, artifact)
				report(&ResolutionError{
					Kind:       BomMissingVersion,
					Coordinate: Coordinate{GroupID: group, ArtifactID: artifact},
					Message:    "BOM import " + group + ":" + artifact + " has no resolvable version",
				})
				continue
			}
			log.Debugf("importing BOM %s:%s:%s", group, artifact, version)
			importBOM(ctx, Coordinate{GroupID: group, ArtifactID: artifact, Version: version}, ec, dl, repos, opts, report)
			continue
		}

		ec.foldManagedDependency(ManagedDependency{
			Coordinate: Coordinate{GroupID: group, ArtifactID: artifact, Version: version},
			RawVersion: entry.Version,
			Scope:      scope,
			Classifier: evaluate(entry.Classifier, lookup, bound),
			Exclusions: entry.Exclusions,
		})
	}
}

// importBOM downloads the POM named by coord, walks its own parent chain in
// an isolated context so its properties never leak into ec, and folds every
// entry of its fully-composed dependencyManagement table into ec.
func importBOM(ctx context.Context, coord Coordinate, ec *effectiveContext, dl Downloader, repos []Repository, opts Options, report ErrorSink) {
	bomRaw, err := dl.Download(ctx, coord, "", nil, repos)
	if err != nil {
		log.Warnf("failed to download BOM %s: %v", describeCoordinate(coord), err)
		report(&ResolutionError{
			Kind:       DownloaderFailure,
			Coordinate: coord,
			Message:    "failed to download BOM " + describeCoordinate(coord),
			Cause:      err,
		})
		return
	}
	if bomRaw == nil {
		return
	}

	bomCtx := newEffectiveContext()
	// Imports keep the caller's recursion/depth bounds but start with a
	// fresh context and profile-free execution context (§9's Open Question:
	// imports never inherit the caller's properties or managed dependencies).
	walker := newParentWalker(dl, noProfileExecContext{}, report, opts)
	if _, err := walker.walk(ctx, bomRaw, bomCtx, 0, nil); err != nil {
		log.Warnf("failed to resolve BOM %s: %v", describeCoordinate(coord), err)
		report(&ResolutionError{
			Kind:       DownloaderFailure,
			Coordinate: coord,
			Message:    "failed to resolve BOM " + describeCoordinate(coord),
			Cause:      err,
		})
		return
	}
	for _, md := range bomCtx.managedDependencies {
		ec.foldManagedDependency(md)
	}
}

// noProfileExecContext is the minimal ExecutionContext used while resolving
// a BOM import: no user-settings repositories, no mirrors or credentials
// beyond what the BOM's own POM chain declares, no active profiles.
type noProfileExecContext struct{}

func (noProfileExecContext) Repositories() []RawRepository         { return nil }
func (noProfileExecContext) Mirrors() map[string]string            { return nil }
func (noProfileExecContext) Credentials() map[string]Credential    { return nil }
func (noProfileExecContext) ActiveProfiles() []string              { return nil }
func (noProfileExecContext) OnError(*ResolutionError)              {}
