package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

func TestToHugoMenu_Site(t *testing.T) {
	got, err := ToHugoMenu(nav.Site())
	require.NoError(t, err)
	want := []HugoMenuEntry{
		{Identifier: "nav-1", Name: "WorkFlow", Weight: 10},
		{Identifier: "nav-1-1", Name: "Vscode配置", URL: "/workflow/vscode/setting", Parent: "nav-1", Weight: 10},
		{Identifier: "nav-2", Name: "Cascading Style Sheets", URL: "/collection-css/luminous-corner", Weight: 20},
		{Identifier: "nav-3", Name: "框架", Weight: 30},
		{Identifier: "nav-3-1", Name: "VitePress", URL: "/framework/VitePress/configure-algolia", Parent: "nav-3", Weight: 10},
	}
	assert.Equal(t, want, got)
}

func TestFromHugoMenu_OrdersByWeight(t *testing.T) {
	entries := []HugoMenuEntry{
		{Identifier: "b", Name: "B", URL: "/b", Weight: 20},
		{Identifier: "g", Name: "G", Weight: 5},
		{Identifier: "g2", Name: "G2", URL: "/g/2", Parent: "g", Weight: 2},
		{Identifier: "g1", Name: "G1", URL: "/g/1", Parent: "g", Weight: 1},
		{Identifier: "a", Name: "A", URL: "/a", Weight: 20},
	}
	m, err := FromHugoMenu(entries)
	require.NoError(t, err)
	want := nav.Menu{
		nav.Group{Text: "G", Items: nav.Menu{
			nav.Link{Text: "G1", Link: "/g/1"},
			nav.Link{Text: "G2", Link: "/g/2"},
		}},
		nav.Link{Text: "B", Link: "/b"},
		nav.Link{Text: "A", Link: "/a"},
	}
	assert.True(t, want.Equal(m), "got %#v", m)
}

func TestFromHugoMenu_Errors(t *testing.T) {
	cases := []struct {
		name     string
		entries  []HugoMenuEntry
		category errors.ErrorCategory
	}{
		{"missing parent", []HugoMenuEntry{{Identifier: "x", Name: "X", URL: "/x", Parent: "nope"}}, errors.CategoryNotFound},
		{"duplicate identifier", []HugoMenuEntry{{Identifier: "x", Name: "X", URL: "/x"}, {Identifier: "x", Name: "Y", URL: "/y"}}, errors.CategoryValidation},
		{"empty group", []HugoMenuEntry{{Identifier: "x", Name: "X"}}, errors.CategoryValidation},
		{"url with children", []HugoMenuEntry{{Identifier: "x", Name: "X", URL: "/x"}, {Identifier: "y", Name: "Y", URL: "/y", Parent: "x"}}, errors.CategoryValidation},
		{"no identifier or name", []HugoMenuEntry{{URL: "/x"}}, errors.CategoryValidation},
		{"own parent", []HugoMenuEntry{{Identifier: "x", Name: "X", Parent: "x"}}, errors.CategoryValidation},
		{"cycle", []HugoMenuEntry{{Identifier: "x", Name: "X", Parent: "y"}, {Identifier: "y", Name: "Y", Parent: "x", URL: "/y"}}, errors.CategoryValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromHugoMenu(tc.entries)
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, tc.category), "got %v", err)
		})
	}
}

func TestHugo_ParseEntryWithoutName(t *testing.T) {
	_, err := Hugo{}.Parse([]byte("menu:\n  main:\n    - url: /x\n"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation), "got %v", err)
}

func TestHugo_RenderCustomMenuName(t *testing.T) {
	out, err := Hugo{MenuName: "header"}.Render(nav.Menu{nav.Link{Text: "A", Link: "/a"}})
	require.NoError(t, err)
	assert.Equal(t, "menu:\n  header:\n    - identifier: nav-1\n      name: A\n      url: /a\n      weight: 10\n", string(out))

	_, err = Hugo{}.Parse(out)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound), "main menu should be missing: %v", err)
}

func TestMergeHugoConfig_PreservesOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hugo.yaml")
	existing := `# site config
title: Notes
baseURL: https://example.org/
menu:
  footer:
    - name: Imprint
      url: /imprint
  main:
    - name: Stale
      url: /stale
params:
  search: true
`
	require.NoError(t, os.WriteFile(path, []byte(existing), 0o644))

	out, err := MergeHugoConfig(path, "main", nav.Site())
	require.NoError(t, err)
	assert.Contains(t, string(out), "# site config")

	var doc struct {
		Title  string                     `yaml:"title"`
		Params map[string]any             `yaml:"params"`
		Menu   map[string][]HugoMenuEntry `yaml:"menu"`
	}
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, "Notes", doc.Title)
	assert.Equal(t, true, doc.Params["search"])
	require.Len(t, doc.Menu["footer"], 1)
	assert.Equal(t, "/imprint", doc.Menu["footer"][0].URL)
	want, err := ToHugoMenu(nav.Site())
	require.NoError(t, err)
	assert.Equal(t, want, doc.Menu["main"])

	back, err := Hugo{}.Parse(out)
	require.NoError(t, err)
	assert.True(t, nav.Site().Equal(back))
}

func TestMergeHugoConfig_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hugo.yaml")
	out, err := MergeHugoConfig(path, "", nav.Menu{nav.Link{Text: "A", Link: "/a"}})
	require.NoError(t, err)
	assert.Equal(t, "menu:\n  main:\n    - identifier: nav-1\n      name: A\n      url: /a\n      weight: 10\n", string(out))
}

func TestMergeHugoConfig_KeepsCommentOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hugo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("# site config, to be filled in\n"), 0o644))

	out, err := MergeHugoConfig(path, "main", nav.Menu{nav.Link{Text: "A", Link: "/a"}})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "# site config, to be filled in\n"), "got %q", out)

	back, err := Hugo{}.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, nav.Menu{nav.Link{Text: "A", Link: "/a"}}, back)
}

func TestMergeHugoConfig_RejectsNonMappingRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hugo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0o644))
	_, err := MergeHugoConfig(path, "main", nav.Site())
	assert.True(t, errors.HasCategory(err, errors.CategoryRender))
}
