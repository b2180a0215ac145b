package history

import (
	"testing"

	"github.com/arthur-debert/hostgen/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestDedup(t *testing.T) {
	assert.Equal(t, []string{"git", "vim"}, Dedup([]string{" git", "vim", "", "git ", "  "}))
	assert.Empty(t, Dedup(nil))
}

func TestBetween(t *testing.T) {
	tests := []struct {
		name   string
		before []string
		after  []string
		want   Entries
	}{
		{
			name:   "add one",
			before: []string{"git"},
			after:  []string{"git", "vim"},
			want:   Entries{{Kind: Add, Item: "vim"}},
		},
		{
			name:   "removes precede adds",
			before: []string{"a", "b", "c"},
			after:  []string{"c", "d", "a"},
			want:   Entries{{Kind: Remove, Item: "b"}, {Kind: Add, Item: "d"}},
		},
		{
			name:   "duplicates ignored",
			before: []string{"git", "git"},
			after:  []string{"git", "vim", "vim"},
			want:   Entries{{Kind: Add, Item: "vim"}},
		},
		{
			name:   "from nothing",
			before: nil,
			after:  []string{"x", "y"},
			want:   Entries{{Kind: Add, Item: "x"}, {Kind: Add, Item: "y"}},
		},
		{
			name:   "reordering is not a change",
			before: []string{"a", "b"},
			after:  []string{"b", "a"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Between(tt.before, tt.after))
		})
	}
}

func TestBetweenProperties(t *testing.T) {
	lists := [][]string{
		nil,
		{"git"},
		{"git", "vim", "curl"},
		{"vim", "zsh"},
		{"a", "a", "b", " c "},
	}

	for _, a := range lists {
		assert.Empty(t, Between(a, a), "idempotence for %v", a)

		for _, b := range lists {
			forward := Between(a, b)
			backward := Between(b, a)

			fAdds, fRemoves := forward.Split()
			bAdds, bRemoves := backward.Split()
			assert.ElementsMatch(t, fAdds, bRemoves, "symmetry %v -> %v", a, b)
			assert.ElementsMatch(t, fRemoves, bAdds, "symmetry %v -> %v", a, b)
		}
	}
}

func TestSplit(t *testing.T) {
	entries := Entries{
		{Kind: Remove, Item: "a"},
		{Kind: Add, Item: "b"},
		{Kind: Remove, Item: "c"},
	}
	adds, removes := entries.Split()
	assert.Equal(t, []string{"b"}, adds)
	assert.Equal(t, []string{"a", "c"}, removes)
}

func TestCompare(t *testing.T) {
	before := types.Generation{Managers: map[string]types.Packages{
		"system": {Items: []string{"git"}},
		"cargo":  {Items: []string{"ripgrep"}},
		"same":   {Items: []string{"x"}},
	}}
	after := types.Generation{Managers: map[string]types.Packages{
		"system":  {Items: []string{"git", "vim"}},
		"flatpak": {Items: []string{"steam"}},
		"same":    {Items: []string{"x"}},
	}}

	got := Compare(before, after)
	assert.Equal(t, []Changes{
		{Manager: "cargo", Entries: Entries{{Kind: Remove, Item: "ripgrep"}}},
		{Manager: "flatpak", Entries: Entries{{Kind: Add, Item: "steam"}}},
		{Manager: "system", Entries: Entries{{Kind: Add, Item: "vim"}}},
	}, got)

	adds, removes := Count(got)
	assert.Equal(t, 2, adds)
	assert.Equal(t, 1, removes)
}

func TestCompareFromEmpty(t *testing.T) {
	after := types.Generation{Managers: map[string]types.Packages{
		"system": {Items: []string{"git"}},
	}}
	got := Compare(types.NewGeneration(), after)
	assert.Equal(t, []Changes{{Manager: "system", Entries: Entries{{Kind: Add, Item: "git"}}}}, got)
	assert.Empty(t, Compare(after, after))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "add", Add.String())
	assert.Equal(t, "remove", Remove.String())
	assert.Equal(t, "+", Add.Symbol())
	assert.Equal(t, "-", Remove.Symbol())
}
