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
	"testing"
)

func newTestRootPartial(raw RawPom, ec *effectiveContext) *PartialPom {
	return &PartialPom{
		Coordinate: Coordinate{GroupID: "org.example", ArtifactID: "root", Version: "1.0"},
		raw:        raw,
		ownLookup:  mapLookup(nil),
		ec:         ec,
	}
}

func TestResolveTransitiveNearestWins(t *testing.T) {
	a := &fakeRawPom{
		Coord: Coordinate{GroupID: "org.example", ArtifactID: "a", Version: "1.0"},
		Dependencies: []RawDependency{
			{GroupID: "org.example", ArtifactID: "c", Version: "1.0"},
		},
	}
	b := &fakeRawPom{
		Coord: Coordinate{GroupID: "org.example", ArtifactID: "b", Version: "1.0"},
		Dependencies: []RawDependency{
			{GroupID: "org.example", ArtifactID: "c", Version: "2.0"},
		},
	}
	root := &fakeRawPom{
		Dependencies: []RawDependency{
			{GroupID: "org.example", ArtifactID: "a", Version: "1.0"},
			{GroupID: "org.example", ArtifactID: "b", Version: "1.0"},
		},
	}

	dl := newFakeDownloader()
	dl.add(a)
	dl.add(b)

	ec := newEffectiveContext()
	partial := newTestRootPartial(root, ec)

	dr := &dependencyResolver{downloader: dl, execCtx: &fakeExecutionContext{}, report: discardErrors}
	dr.resolveTransitive(context.Background(), partial)

	c := ec.resolvedDependencies[ArtifactKey{GroupID: "org.example", ArtifactID: "c"}]
	if c == nil {
		t.Fatalf("expected c to be resolved")
	}
	if c.Version != "1.0" {
		t.Errorf("c.Version = %q, want 1.0 (nearest/first declared wins)", c.Version)
	}
}

func TestResolveTransitiveHonorsExclusions(t *testing.T) {
	d := &fakeRawPom{
		Coord: Coordinate{GroupID: "org.example", ArtifactID: "d", Version: "1.0"},
		Dependencies: []RawDependency{
			{GroupID: "org.example", ArtifactID: "e", Version: "1.0"},
		},
	}
	root := &fakeRawPom{
		Dependencies: []RawDependency{
			{
				GroupID: "org.example", ArtifactID: "d", Version: "1.0",
				Exclusions: []ArtifactKey{{GroupID: "org.example", ArtifactID: "e"}},
			},
		},
	}

	dl := newFakeDownloader()
	dl.add(d)

	ec := newEffectiveContext()
	partial := newTestRootPartial(root, ec)

	dr := &dependencyResolver{downloader: dl, execCtx: &fakeExecutionContext{}, report: discardErrors}
	dr.resolveTransitive(context.Background(), partial)

	if _, ok := ec.resolvedDependencies[ArtifactKey{GroupID: "org.example", ArtifactID: "e"}]; ok {
		t.Errorf("expected e to be excluded from the resolved graph")
	}
	if _, ok := ec.resolvedDependencies[ArtifactKey{GroupID: "org.example", ArtifactID: "d"}]; !ok {
		t.Errorf("expected d itself to be resolved")
	}
}

func TestResolveTransitiveManagedVersionFallback(t *testing.T) {
	root := &fakeRawPom{
		Managed: []RawManagedDependency{
			{GroupID: "org.example", ArtifactID: "lib", Version: "3.0"},
		},
		Dependencies: []RawDependency{
			{GroupID: "org.example", ArtifactID: "lib"},
		},
	}

	ec := newEffectiveContext()
	partial := newTestRootPartial(root, ec)
	partial.dependencyManagement = map[ArtifactKey]ManagedDependency{
		{GroupID: "org.example", ArtifactID: "lib"}: {Coordinate: Coordinate{GroupID: "org.example", ArtifactID: "lib", Version: "3.0"}},
	}

	dr := &dependencyResolver{downloader: newFakeDownloader(), execCtx: &fakeExecutionContext{}, report: discardErrors}
	dr.resolveTransitive(context.Background(), partial)

	lib := ec.resolvedDependencies[ArtifactKey{GroupID: "org.example", ArtifactID: "lib"}]
	if lib == nil || lib.Version != "3.0" {
		t.Errorf("expected lib to fall back to the managed version 3.0, got %+v", lib)
	}
}

func TestResolveTransitiveSelfReferential(t *testing.T) {
	root := &fakeRawPom{
		Dependencies: []RawDependency{
			{GroupID: "org.example", ArtifactID: "root", Version: "1.0"},
		},
	}

	ec := newEffectiveContext()
	partial := newTestRootPartial(root, ec)

	var reported []*ResolutionError
	dr := &dependencyResolver{
		downloader: newFakeDownloader(),
		execCtx:    &fakeExecutionContext{},
		report:     func(e *ResolutionError) { reported = append(reported, e) },
	}
	dr.resolveTransitive(context.Background(), partial)

	if len(ec.resolvedDependencies) != 0 {
		t.Errorf("expected the self-referential dependency to be skipped, got %v", ec.resolvedDependencies)
	}
	if len(reported) != 1 || reported[0].Kind != SelfReferentialDependency {
		t.Errorf("expected one SelfReferentialDependency error, got %v", reported)
	}
}
