package types_test

import (
	"testing"

	"github.com/arthur-debert/hostgen/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestGeneration_Merge(t *testing.T) {
	base := types.Generation{
		Imports: []string{"dev"},
		Managers: map[string]types.Packages{
			"system": {Items: []string{"git"}},
		},
	}
	other := types.Generation{
		Imports: []string{"fonts"},
		Managers: map[string]types.Packages{
			"system":  {Items: []string{"vim"}},
			"flatpak": {Items: []string{"org.gimp.GIMP"}},
		},
	}

	base.Merge(other)

	assert.Equal(t, []string{"dev", "fonts"}, base.Imports)
	assert.Equal(t, []string{"git", "vim"}, base.Items("system"))
	assert.Equal(t, []string{"org.gimp.GIMP"}, base.Items("flatpak"))
	assert.Equal(t, []string{"vim"}, other.Items("system"), "merge must not mutate the source")
}

func TestGeneration_MergeIntoZeroValue(t *testing.T) {
	var g types.Generation
	g.Merge(types.Generation{Managers: map[string]types.Packages{"cargo": {Items: []string{"ripgrep"}}}})
	assert.Equal(t, []string{"ripgrep"}, g.Items("cargo"))
}

func TestGeneration_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b types.Generation
		want bool
	}{
		{
			name: "empty_and_zero",
			a:    types.NewGeneration(),
			b:    types.Generation{},
			want: true,
		},
		{
			name: "same_items",
			a:    types.Generation{Managers: map[string]types.Packages{"system": {Items: []string{"git"}}}},
			b:    types.Generation{Managers: map[string]types.Packages{"system": {Items: []string{"git"}}}},
			want: true,
		},
		{
			name: "order_matters",
			a:    types.Generation{Managers: map[string]types.Packages{"system": {Items: []string{"git", "vim"}}}},
			b:    types.Generation{Managers: map[string]types.Packages{"system": {Items: []string{"vim", "git"}}}},
			want: false,
		},
		{
			name: "nil_items_equal_empty",
			a:    types.Generation{Managers: map[string]types.Packages{"system": {}}},
			b:    types.Generation{Managers: map[string]types.Packages{"system": {Items: []string{}}}},
			want: true,
		},
		{
			name: "different_backend_set",
			a:    types.Generation{Managers: map[string]types.Packages{"system": {}}},
			b:    types.Generation{Managers: map[string]types.Packages{"cargo": {}}},
			want: false,
		},
		{
			name: "different_imports",
			a:    types.Generation{Imports: []string{"a"}},
			b:    types.Generation{Imports: []string{"b"}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestGeneration_ManagerNamesSorted(t *testing.T) {
	g := types.Generation{Managers: map[string]types.Packages{"system": {}, "cargo": {}, "flatpak": {}}}
	assert.Equal(t, []string{"cargo", "flatpak", "system"}, g.ManagerNames())
}

func TestSide_String(t *testing.T) {
	assert.Equal(t, "user", types.SideUser.String())
	assert.Equal(t, "system", types.SideSystem.String())
}
