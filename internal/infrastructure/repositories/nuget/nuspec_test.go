//go:build unit

package nuget //nolint:testpackage // tests unexported manifest helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const groupedNuspec = `<?xml version="1.0" encoding="utf-8"?>
<package xmlns="http://schemas.microsoft.com/packaging/2013/05/nuspec.xsd">
  <metadata>
    <id>Sample.Package</id>
    <version>2.0.0</version>
    <projectUrl>https://github.com/sample/package</projectUrl>
    <repository type="git" url="https://github.com/sample/package.git" />
    <dependencies>
      <group targetFramework="net6.0">
        <dependency id="Sample.Core" version="[2.0.0, )" />
      </group>
      <group targetFramework=".NETStandard2.0">
        <dependency id="Sample.Core" version="1.5.0" />
        <dependency id="Sample.Polyfill" version="[1.0.0, 2.0.0)" />
      </group>
    </dependencies>
  </metadata>
</package>`

func TestParseNuspec(t *testing.T) {
	t.Parallel()

	t.Run("should read metadata and dependency groups", func(t *testing.T) {
		t.Parallel()

		// given
		data := []byte(groupedNuspec)

		// when
		spec, err := parseNuspec(data)

		// then
		require.NoError(t, err)
		assert.Equal(t, "Sample.Package", spec.Metadata.ID)
		assert.Equal(t, "https://github.com/sample/package", spec.Metadata.ProjectURL)
		assert.Equal(t, "https://github.com/sample/package.git", spec.Metadata.Repository.URL)
		assert.Len(t, spec.Metadata.frameworkGroups(), 2)
	})

	t.Run("should pick the dependencies of the nearest group", func(t *testing.T) {
		t.Parallel()

		// given
		spec, err := parseNuspec([]byte(groupedNuspec))
		require.NoError(t, err)

		// when
		modern := spec.Metadata.dependenciesFor("net8.0")
		legacy := spec.Metadata.dependenciesFor("net472")

		// then
		require.Len(t, modern, 1)
		assert.Equal(t, "[2.0.0, )", modern[0].Version)
		assert.Len(t, legacy, 2)
	})

	t.Run("should report support per framework", func(t *testing.T) {
		t.Parallel()

		// given
		spec, err := parseNuspec([]byte(groupedNuspec))
		require.NoError(t, err)

		// when / then
		assert.True(t, spec.Metadata.supports("net8.0"))
		assert.True(t, spec.Metadata.supports("net48"))
		assert.False(t, spec.Metadata.supports("net45"))
	})

	t.Run("should treat packages without groups as framework-agnostic", func(t *testing.T) {
		t.Parallel()

		// given
		data := []byte(`<package><metadata><id>Plain</id><version>1.0.0</version>
<dependencies><dependency id="Dep" version="1.0.0" /></dependencies></metadata></package>`)

		// when
		spec, err := parseNuspec(data)

		// then
		require.NoError(t, err)
		assert.True(t, spec.Metadata.supports("net45"))
		assert.Len(t, spec.Metadata.dependenciesFor("net8.0"), 1)
	})

	t.Run("should fail on malformed XML", func(t *testing.T) {
		t.Parallel()

		// given
		data := []byte("<package><metadata>")

		// when
		_, err := parseNuspec(data)

		// then
		require.Error(t, err)
	})
}

func TestLowerBound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		expected  string
		exclusive bool
	}{
		{name: "should keep a bare minimum version", input: "1.2.3", expected: "1.2.3"},
		{name: "should take the lower bound of an interval", input: "[1.0.0, 2.0.0)", expected: "1.0.0"},
		{name: "should take an exact version", input: "[3.0.0]", expected: "3.0.0"},
		{name: "should flag an exclusive lower bound", input: "(1.0.0, )", expected: "1.0.0", exclusive: true},
		{name: "should return nothing without a lower bound", input: "(, 2.0.0]", expected: ""},
		{name: "should return nothing for an empty range", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			input := tt.input

			// when
			result, exclusive := lowerBound(input)

			// then
			assert.Equal(t, tt.expected, result)
			assert.Equal(t, tt.exclusive, exclusive)
		})
	}
}

func TestFloatingFloor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		expected   string
		prerelease bool
	}{
		{name: "should floor a floating minor", input: "1.*", expected: "1"},
		{name: "should floor a floating patch", input: "1.2.*", expected: "1.2"},
		{name: "should floor a floating label", input: "2.0.0-*", expected: "2.0.0", prerelease: true},
		{name: "should leave fixed versions alone", input: "3.1.0", expected: "3.1.0"},
		{name: "should have no floor for a bare wildcard", input: "*", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			input := tt.input

			// when
			floor, prerelease := floatingFloor(input)

			// then
			assert.Equal(t, tt.expected, floor)
			assert.Equal(t, tt.prerelease, prerelease)
		})
	}
}
