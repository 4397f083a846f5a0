package resolver

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunks(t *testing.T) {
	tests := []struct {
		name  string
		items int
		size  int
		want  []int // expected chunk lengths
	}{
		{"Empty", 0, 10, nil},
		{"Single Partial", 3, 10, []int{3}},
		{"Exact Multiple", 20, 10, []int{10, 10}},
		{"Trailing Partial", 25, 10, []int{10, 10, 5}},
		{"Zero Size Uses Default", 15, 0, []int{10, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]int, tt.items)
			chunks := Chunks(items, tt.size)

			var lengths []int
			for _, chunk := range chunks {
				lengths = append(lengths, len(chunk))
			}
			assert.Equal(t, tt.want, lengths)
		})
	}
}

func TestResolve(t *testing.T) {
	ids := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("id-%02d", i)
		}
		return out
	}

	t.Run("Batches Lookups", func(t *testing.T) {
		calls := 0
		found, dead, err := Resolve(ids(25), 10, func(chunk []string) ([]string, error) {
			calls++
			return chunk, nil
		}, func(id string) string { return id })

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Len(t, found, 25)
		assert.Empty(t, dead)
	})

	t.Run("Absent Ids Are Dead", func(t *testing.T) {
		found, dead, err := Resolve([]string{"a", "b", "c"}, 10, func(chunk []string) ([]string, error) {
			// "b" does not resolve.
			return []string{"a", "c"}, nil
		}, func(id string) string { return id })

		assert.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, found)
		assert.Equal(t, map[string]struct{}{"b": {}}, dead)
	})

	t.Run("Lookup Error Aborts", func(t *testing.T) {
		calls := 0
		_, _, err := Resolve(ids(25), 10, func(chunk []string) ([]string, error) {
			calls++
			return nil, fmt.Errorf("lookup failed")
		}, func(id string) string { return id })

		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("Empty Input", func(t *testing.T) {
		found, dead, err := Resolve(nil, 10, func(chunk []string) ([]string, error) {
			t.Fatal("lookup should not be called")
			return nil, nil
		}, func(id string) string { return id })

		assert.NoError(t, err)
		assert.Empty(t, found)
		assert.Empty(t, dead)
	})
}
