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

import "context"

// fakeRawPom is a hand-built RawPom for tests. Profile filtering is not
// modeled: every field is returned regardless of the requested profiles,
// since no test here exercises profile activation. Fields are exported so
// fixtures can be deep-copied with cpy between subtests.
type fakeRawPom struct {
	ParentRef RawParent
	HasParent bool

	Coord Coordinate

	Properties   map[string]string
	Repositories []RawRepository
	Managed      []RawManagedDependency
	Dependencies []RawDependency
	LicenseList  []License

	Snapshot                            bool
	DisplayName, Desc, PackagingValue string
}

func (f *fakeRawPom) Parent() (RawParent, bool) { return f.ParentRef, f.HasParent }
func (f *fakeRawPom) Coordinates() Coordinate   { return f.Coord }
func (f *fakeRawPom) ActiveProperties(profiles []string) map[string]string {
	return f.Properties
}
func (f *fakeRawPom) ActiveRepositories(profiles []string) []RawRepository {
	return f.Repositories
}
func (f *fakeRawPom) ActiveManagedDependencies(profiles []string) []RawManagedDependency {
	return f.Managed
}
func (f *fakeRawPom) ActiveDependencies(profiles []string) []RawDependency {
	return f.Dependencies
}
func (f *fakeRawPom) IsSnapshot() bool                   { return f.Snapshot }
func (f *fakeRawPom) PropertyPlaceholderNames() []string { return nil }
func (f *fakeRawPom) Licenses() []License                { return f.LicenseList }
func (f *fakeRawPom) Name() string                       { return f.DisplayName }
func (f *fakeRawPom) Description() string                { return f.Desc }
func (f *fakeRawPom) Packaging() string                  { return f.PackagingValue }

// fakeDownloader serves canned RawPoms keyed by "groupId:artifactId:version",
// or a canned error for the same key.
type fakeDownloader struct {
	poms map[string]*fakeRawPom
	errs map[string]error
	// calls records every coordinate asked for, in order.
	calls []Coordinate
}

func newFakeDownloader() *fakeDownloader {
	return &fakeDownloader{poms: map[string]*fakeRawPom{}, errs: map[string]error{}}
}

func (d *fakeDownloader) add(p *fakeRawPom) {
	d.poms[describeCoordinate(p.Coord)] = p
}

func (d *fakeDownloader) Download(ctx context.Context, coord Coordinate, relativePath string, containingPom RawPom, repositories []Repository) (RawPom, error) {
	d.calls = append(d.calls, coord)
	key := describeCoordinate(coord)
	if err, ok := d.errs[key]; ok {
		return nil, err
	}
	if p, ok := d.poms[key]; ok {
		return p, nil
	}
	return nil, nil
}

// fakeExecutionContext is a minimal ExecutionContext that records every
// error it's handed.
type fakeExecutionContext struct {
	repos    []RawRepository
	mirrors  map[string]string
	creds    map[string]Credential
	profiles []string
	errs     []*ResolutionError
}

func (f *fakeExecutionContext) Repositories() []RawRepository      { return f.repos }
func (f *fakeExecutionContext) Mirrors() map[string]string         { return f.mirrors }
func (f *fakeExecutionContext) Credentials() map[string]Credential { return f.creds }
func (f *fakeExecutionContext) ActiveProfiles() []string            { return f.profiles }
func (f *fakeExecutionContext) OnError(e *ResolutionError)          { f.errs = append(f.errs, e) }

func discardErrors(*ResolutionError) {}
