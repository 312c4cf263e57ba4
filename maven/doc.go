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

// Package maven resolves an unparsed Maven project descriptor (a RawPom)
// into a fully evaluated, immutable Pom: concrete coordinates, inherited
// properties, composed dependency management (including BOM imports), and
// a transitive dependency tree with Maven's nearest-definition-wins conflict
// resolution.
//
// The package does not parse XML, fetch artifacts over the network, or read
// user settings. Those concerns live on the other side of the RawPom,
// Downloader and ExecutionContext interfaces in external.go; a caller wires
// those in and gets a Pom out.
package maven
