package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inkwell-shop/storefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
- title: Stationery
  path: /stationery
  order: 2
  submenu:
    - title: Pens
      path: /pens
    - title: Ink
      path: /ink
- title: Gifts
  path: /gifts
  order: 1
`

func TestParseMenus(t *testing.T) {
	menus, err := parseMenus(strings.NewReader(seedYAML))
	require.NoError(t, err)
	require.Len(t, menus, 2)

	assert.Equal(t, "Stationery", menus[0].Title)
	assert.Equal(t, 2, menus[0].DisplayOrder())
	require.Len(t, menus[0].Submenu, 2)
	assert.Equal(t, "/pens", menus[0].Submenu[0].Path)
	assert.Equal(t, 1, menus[0].Submenu[1].DisplayOrder())
}

func TestParseMenus_Empty(t *testing.T) {
	menus, err := parseMenus(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, menus)
}

func TestParseMenus_Invalid(t *testing.T) {
	_, err := parseMenus(strings.NewReader("title: [unclosed"))
	assert.Error(t, err)
}

func TestSeedMenus(t *testing.T) {
	tmp := t.TempDir()
	client, err := storefront.New(
		storefront.WithSQLite(filepath.Join(tmp, "seed.db")),
		storefront.WithDataDir(tmp),
		storefront.WithMemoryUploads(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	menus, err := parseMenus(strings.NewReader(seedYAML))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, seedMenus(context.Background(), client, &out, menus))
	assert.Contains(t, out.String(), "seeded Stationery")
	assert.Contains(t, out.String(), "seeded Gifts")

	menu, err := client.Navigation.Menu(context.Background())
	require.NoError(t, err)
	require.Len(t, menu, 2)
	assert.Equal(t, "Gifts", menu[0].Title())
	assert.Equal(t, "Stationery", menu[1].Title())
	assert.Len(t, menu[1].Submenu(), 2)

	out.Reset()
	require.NoError(t, seedMenus(context.Background(), client, &out, menus))
	assert.Contains(t, out.String(), "skipped Stationery (/stationery already present)")
	assert.NotContains(t, out.String(), "seeded")

	menu, err = client.Navigation.Menu(context.Background())
	require.NoError(t, err)
	assert.Len(t, menu, 2)
}

func TestVersionCmd(t *testing.T) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "storefront version dev")
}

func TestSeedCmd_RequiresFile(t *testing.T) {
	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"seed"})

	assert.Error(t, cmd.Execute())
}
