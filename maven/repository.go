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
	"net/url"
	"strings"

	"bitbucket.org/creachadair/stringset"
)

// CentralRepository is the well-known fallback repository id the downloader
// is expected to understand even when nothing else names it explicitly.
const CentralRepository = "central"

// Repository is an effective repository: a URL that has already been
// placeholder-evaluated and rewritten by the mirror and credential maps.
type Repository struct {
	ID         string
	URL        string
	Credential *Credential
}

// resolveRepositories turns raw repository entries into effective
// repositories (C3). Malformed URLs are reported and dropped. Mirror
// rewrites are applied before credential rewrites, matching the fixed order
// in SPEC_FULL.md §4.3.
func resolveRepositories(raws []RawRepository, properties lookupFunc, mirrors map[string]string, credentials map[string]Credential, bound int, report ErrorSink) []Repository {
	var out []Repository
	for _, raw := range raws {
		evaluatedURL := evaluate(raw.URL, properties, bound)
		if strings.Contains(evaluatedURL, "${") || !isValidRepositoryURL(evaluatedURL) {
			report(&ResolutionError{
				Kind:    MalformedRepositoryURL,
				Message: "repository " + raw.ID + " has a malformed URL: " + evaluatedURL,
			})
			continue
		}
		repo := Repository{ID: raw.ID, URL: evaluatedURL}
		repo.URL = applyMirror(repo.ID, repo.URL, mirrors)
		if cred, ok := lookupCredential(repo.ID, credentials); ok {
			c := cred
			repo.Credential = &c
		}
		out = append(out, repo)
	}
	return out
}

func isValidRepositoryURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// applyMirror rewrites a repository URL using the mirror map. A "*" entry
// matches any repository id that has no more specific entry.
func applyMirror(id, repoURL string, mirrors map[string]string) string {
	if mirrored, ok := mirrors[id]; ok {
		return mirrored
	}
	if mirrored, ok := mirrors["*"]; ok {
		return mirrored
	}
	return repoURL
}

func lookupCredential(id string, credentials map[string]Credential) (Credential, bool) {
	c, ok := credentials[id]
	return c, ok
}

// effectiveRepositories computes the order defined by SPEC_FULL.md §4.3 and
// §8 "Repository precedence": user-settings repositories, then the POM's
// own repositories (child before parent, since callers append child
// repositories first), then the well-known central repository, de-duplicated
// by id while preserving first occurrence.
func effectiveRepositories(userSettings, pomDeclared []Repository) []Repository {
	seen := stringset.New()
	var out []Repository
	for _, group := range [][]Repository{userSettings, pomDeclared} {
		for _, repo := range group {
			if seen.Contains(repo.ID) {
				continue
			}
			seen.Add(repo.ID)
			out = append(out, repo)
		}
	}
	if !seen.Contains(CentralRepository) {
		out = append(out, Repository{ID: CentralRepository})
	}
	return out
}
