//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/depanalyzer/internal/domain/entities"
)

func TestNameSet(t *testing.T) {
	t.Parallel()

	t.Run("should ignore case when adding and looking up names", func(t *testing.T) {
		t.Parallel()

		// given
		set := entities.NewNameSet("Newtonsoft.Json")

		// when
		set = set.With("NEWTONSOFT.JSON")

		// then
		assert.Equal(t, 1, set.Len())
		assert.True(t, set.Contains("newtonsoft.json"))
		assert.Equal(t, []string{"Newtonsoft.Json"}, set.Names())
	})

	t.Run("should keep insertion order", func(t *testing.T) {
		t.Parallel()

		// given
		set := entities.NewNameSet("Zeta", "Alpha", "Mid")

		// when
		names := set.Names()

		// then
		assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, names)
	})

	t.Run("should leave the receiver untouched when adding", func(t *testing.T) {
		t.Parallel()

		// given
		original := entities.NewNameSet("A")

		// when
		extended := original.With("B")

		// then
		assert.Equal(t, 1, original.Len())
		assert.False(t, original.Contains("B"))
		assert.Equal(t, 2, extended.Len())
	})

	t.Run("should union two sets without duplicates", func(t *testing.T) {
		t.Parallel()

		// given
		left := entities.NewNameSet("A", "B")
		right := entities.NewNameSet("b", "C")

		// when
		union := left.Union(right)

		// then
		assert.Equal(t, []string{"A", "B", "C"}, union.Names())
	})

	t.Run("should compare sets ignoring case and order", func(t *testing.T) {
		t.Parallel()

		// given
		left := entities.NewNameSet("net8.0", "netstandard2.0")
		right := entities.NewNameSet("NETSTANDARD2.0", "Net8.0")

		// when
		equal := left.Equal(right)

		// then
		assert.True(t, equal)
		assert.False(t, left.Equal(entities.NewNameSet("net8.0")))
	})

	t.Run("should work from the zero value", func(t *testing.T) {
		t.Parallel()

		// given
		var set entities.NameSet

		// when
		set = set.With("A")

		// then
		assert.True(t, set.Contains("a"))
	})
}
