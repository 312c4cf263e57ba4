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

// Coordinate identifies a Maven project or artifact by groupId, artifactId
// and version. Any of the three fields may be empty or contain an
// unresolved "${...}" placeholder on a RawPom; a Coordinate obtained from a
// resolved Pom never does.
type Coordinate struct {
	GroupID    string
	ArtifactID string
	Version    string
}

// ArtifactKey is the (groupId, artifactId) pair Maven uses to key managed
// dependencies and to decide which version of an artifact "wins" during
// conflict resolution.
type ArtifactKey struct {
	GroupID    string
	ArtifactID string
}

// Key returns the ArtifactKey for this coordinate.
func (c Coordinate) Key() ArtifactKey {
	return ArtifactKey{GroupID: c.GroupID, ArtifactID: c.ArtifactID}
}

func (k ArtifactKey) String() string {
	return k.GroupID + ":" + k.ArtifactID
}

// License is a project license name, as declared by a RawPom.
type License struct {
	Name string
}

// RawRepository is a single repository entry as declared in a POM or in the
// execution context, before mirror/credential rewriting.
type RawRepository struct {
	ID  string
	URL string
}

// RawManagedDependency is a single <dependencyManagement> entry as declared
// by a RawPom, before placeholder evaluation.
type RawManagedDependency struct {
	GroupID    string
	ArtifactID string
	Version    string
	Scope      string
	Type       string
	Classifier string
	Exclusions []ArtifactKey
}

// RawDependency is a single direct <dependency> entry as declared by a
// RawPom, before placeholder evaluation.
type RawDependency struct {
	GroupID    string
	ArtifactID string
	Version    string
	Scope      string
	Type       string
	Classifier string
	Optional   bool
	Exclusions []ArtifactKey
}

// RawParent is the <parent> reference of a RawPom, before placeholder
// evaluation. An empty GroupID (or ArtifactID, or Version) means "absent".
type RawParent struct {
	Coordinate
	RelativePath string
}

// RawPom is the unresolved project descriptor the resolver consumes. It is
// produced outside this package by a raw XML decoder; none of its methods
// do placeholder evaluation themselves.
type RawPom interface {
	// Parent returns the <parent> reference, or the zero value if absent.
	Parent() (RawParent, bool)
	// Coordinates returns the POM's own groupId/artifactId/version, which may
	// be empty, inherited-by-omission, or contain placeholders.
	Coordinates() Coordinate
	// ActiveProperties returns the POM's own declared properties, restricted
	// to the profiles active among the given profile IDs (plus any
	// always-active profiles). Order is not significant; the evaluator does
	// not depend on property declaration order within a single RawPom.
	ActiveProperties(profiles []string) map[string]string
	// ActiveRepositories returns the POM's own declared repositories,
	// restricted to the active profiles, in source order.
	ActiveRepositories(profiles []string) []RawRepository
	// ActiveManagedDependencies returns the POM's own <dependencyManagement>
	// entries, restricted to the active profiles, in source order.
	ActiveManagedDependencies(profiles []string) []RawManagedDependency
	// ActiveDependencies returns the POM's own direct <dependencies> entries,
	// restricted to the active profiles, in source order.
	ActiveDependencies(profiles []string) []RawDependency
	// IsSnapshot reports whether this POM's version is a SNAPSHOT build.
	IsSnapshot() bool
	// PropertyPlaceholderNames returns the set of "${...}" names this POM
	// references anywhere, for diagnostic purposes; the resolver does not
	// require it to be exhaustive.
	PropertyPlaceholderNames() []string
	// Licenses returns the POM's own declared licenses.
	Licenses() []License
	Name() string
	Description() string
	Packaging() string
}

// Credential is the auth material the execution context associates with a
// repository id. Its contents are opaque to the resolver: it is only ever
// attached to a Repository, never inspected or used to dial a connection.
type Credential struct {
	Username string
	Password string
}

// ErrorKind discriminates the non-fatal conditions the resolver reports
// through an ErrorSink. See SPEC_FULL.md §7.
type ErrorKind int

// The error kinds the resolver reports. Each is delivered to the ErrorSink
// as it occurs (Resolve's sink forwards it to ExecutionContext.OnError), and
// Resolve also aggregates all of them into its returned error; Errors and
// ErrorsOfKind split that aggregate back into *ResolutionError values.
const (
	// UnresolvedCoordinate: group/artifact/version still contains a
	// placeholder, or is absent, after inheritance.
	UnresolvedCoordinate ErrorKind = iota
	// ParentCycle: a coordinate reappeared while walking the parent chain.
	ParentCycle
	// MalformedRepositoryURL: a repository URL is invalid after placeholder
	// substitution.
	MalformedRepositoryURL
	// InvalidManagedScope: a managed-dependency scope token is not
	// recognized.
	InvalidManagedScope
	// BomMissingVersion: a scope=import entry has no explicit version.
	BomMissingVersion
	// PropertyUnresolvable: a required placeholder (coordinates, repository
	// URL) could not be expanded.
	PropertyUnresolvable
	// DownloaderFailure: the external downloader returned an error.
	DownloaderFailure
	// SelfReferentialDependency: a direct dependency names the same
	// (groupId, artifactId) as the enclosing POM.
	SelfReferentialDependency
)

func (k ErrorKind) String() string {
	switch k {
	case UnresolvedCoordinate:
		return "UnresolvedCoordinate"
	case ParentCycle:
		return "ParentCycle"
	case MalformedRepositoryURL:
		return "MalformedRepositoryURL"
	case InvalidManagedScope:
		return "InvalidManagedScope"
	case BomMissingVersion:
		return "BomMissingVersion"
	case PropertyUnresolvable:
		return "PropertyUnresolvable"
	case DownloaderFailure:
		return "DownloaderFailure"
	case SelfReferentialDependency:
		return "SelfReferentialDependency"
	default:
		return "Unknown"
	}
}

// ResolutionError is a non-fatal condition reported through an ErrorSink.
type ResolutionError struct {
	Kind       ErrorKind
	Coordinate Coordinate
	Message    string
	Cause      error
}

func (e *ResolutionError) Error() string {
	if e.Cause != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

// Unwrap exposes the wrapped cause, if any, to errors.As/errors.Is.
func (e *ResolutionError) Unwrap() error { return e.Cause }

// ErrorSink receives every non-fatal error the resolver encounters. It must
// not panic and must be safe to call repeatedly from one Resolve call; it is
// never called concurrently (§5: the resolver is single-threaded per call).
type ErrorSink func(*ResolutionError)

// ExecutionContext carries the caller's ambient configuration: user-settings
// repositories, mirror and credential rewrites, active profiles and the
// error sink. It is produced and owned entirely outside this package.
type ExecutionContext interface {
	Repositories() []RawRepository
	// Mirrors maps a repository id pattern (an exact id, or "*") to the
	// mirror URL that should replace any matching repository's URL.
	Mirrors() map[string]string
	// Credentials maps a repository id to the auth material that should be
	// attached to a matching repository.
	Credentials() map[string]Credential
	ActiveProfiles() []string
	OnError(*ResolutionError)
}

// Downloader fetches a RawPom for a given coordinate. It is the resolver's
// only suspension point; a nil RawPom with a nil error means "not found",
// which the resolver treats as an absent POM rather than a fatal failure.
type Downloader interface {
	Download(ctx context.Context, coord Coordinate, relativePath string, containingPom RawPom, repositories []Repository) (RawPom, error)
}
