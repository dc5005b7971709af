// Copyright (c) 2021-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package version

import (
	"strings"
	"testing"
)

// TestSemVerParsing ensures parsing a semantic version string works as
// expected.
func TestSemVerParsing(t *testing.T) {
	tests := []struct {
		ver     string // semantic version string to parse
		major   uint   // expected major version
		minor   uint   // expected minor version
		patch   uint   // expected patch version
		pre     string // expected pre-release string
		build   string // expected build metadata string
		invalid bool   // expected error
	}{{
		ver:   "0.0.4",
		patch: 4,
	}, {
		ver:   "10.20.30",
		major: 10,
		minor: 20,
		patch: 30,
	}, {
		ver:   "1.1.2-prerelease+meta",
		major: 1,
		minor: 1,
		patch: 2,
		pre:   "prerelease",
		build: "meta",
	}, {
		ver:   "1.0.0-alpha.beta.1+release.local",
		major: 1,
		pre:   "alpha.beta.1",
		build: "release.local",
	}, {
		ver:     "1.2",
		invalid: true,
	}, {
		ver:     "01.1.1",
		invalid: true,
	}, {
		ver:     "1.2.3-0123..1",
		invalid: true,
	}, {
		ver:     "1.2.3+meta!",
		invalid: true,
	}, {
		ver:     "99999999999999999999999.0.0",
		invalid: true,
	}}

	for _, test := range tests {
		v, err := parseSemVer(test.ver)
		if test.invalid {
			if err == nil {
				t.Errorf("%q: did not receive expected error", test.ver)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected err: %v", test.ver, err)
			continue
		}
		if v.major != test.major || v.minor != test.minor ||
			v.patch != test.patch || v.preRelease != test.pre ||
			v.build != test.build {

			t.Errorf("%q: mismatched version -- got %+v", test.ver, v)
		}
	}
}

// TestString ensures the version string starts with the semantic version.
func TestString(t *testing.T) {
	if !strings.HasPrefix(String(), Version) {
		t.Fatalf("version string %q does not start with %q", String(), Version)
	}
}
