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

// resolverCache memoizes fully-resolved Poms by PartialPom.fingerprint (C7,
// SPEC_FULL.md §4.7). It holds every entry for the lifetime of the owning
// Resolver; SPEC_FULL.md leaves eviction policy up to the rendition, and a
// resolver is expected to live no longer than one build's worth of lookups,
// so none is implemented here.
type resolverCache struct {
	entries map[uint64]*Pom
}

func newResolverCache() *resolverCache {
	return &resolverCache{entries: map[uint64]*Pom{}}
}

func (c *resolverCache) get(key uint64) (*Pom, bool) {
	pom, ok := c.entries[key]
	return pom, ok
}

func (c *resolverCache) put(key uint64, pom *Pom) {
	c.entries[key] = pom
}

// size reports the number of distinct structural fingerprints currently
// memoized, for diagnostics and tests.
func (c *resolverCache) size() int {
	return len(c.entries)
}
