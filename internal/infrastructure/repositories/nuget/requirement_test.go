//go:build unit

package nuget //nolint:testpackage // tests unexported requirement matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequirementMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		version  string
		expected bool
	}{
		{name: "should match inside a half-open interval", raw: "[1.0.0, 1.2.3)", version: "1.2.2", expected: true},
		{name: "should exclude the open upper bound", raw: "[1.0.0, 1.2.3)", version: "1.2.3", expected: false},
		{name: "should include a closed upper bound", raw: "(1.0.0, 1.2.3]", version: "1.2.3", expected: true},
		{name: "should exclude an open lower bound", raw: "(1.0.0, 1.2.3]", version: "1.0.0", expected: false},
		{name: "should match an exact interval", raw: "[2.0.0]", version: "2.0.0", expected: true},
		{name: "should match comparison lists", raw: ">= 4.0.0, < 4.1.2", version: "4.1.0", expected: true},
		{name: "should match a bare version exactly", raw: "3.1.0", version: "3.1.0", expected: true},
		{name: "should not match a different bare version", raw: "3.1.0", version: "3.1.1", expected: false},
		{name: "should match an unbounded upper range", raw: "[5.0.0, )", version: "9.9.9", expected: true},
		{name: "should match a four-part version below a range", raw: "< 2.1.0.6", version: "2.1.0.5", expected: true},
		{name: "should not match the four-part fix version", raw: "< 2.1.0.6", version: "2.1.0.6", expected: false},
		{name: "should not match a later release against a four-part bound", raw: "< 2.1.0.6", version: "2.2.0", expected: false},
		{name: "should match a four-part version inside a semver range", raw: "[2.0.0, 2.2.0)", version: "2.1.0.5", expected: true},
		{name: "should match a four-part bare version exactly", raw: "2.1.0.5", version: "2.1.0.5", expected: true},
		{name: "should match either side of an alternative", raw: "< 1.0.0 || >= 3.0.0.1", version: "3.0.0.2", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			req := parseRequirement(tt.raw)

			// when
			matched := req.matches(tt.version)

			// then
			assert.Equal(t, tt.expected, matched)
		})
	}
}
