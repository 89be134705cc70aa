package nav

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSite_RootEntriesInOrder(t *testing.T) {
	m := Site()
	require.Len(t, m, 3)

	g0, ok := m[0].(Group)
	require.True(t, ok, "first entry should be a group")
	assert.Equal(t, "WorkFlow", g0.Text)
	assert.Equal(t, Menu{Link{Text: "Vscode配置", Link: "/workflow/vscode/setting"}}, g0.Items)

	l1, ok := m[1].(Link)
	require.True(t, ok, "second entry should be a link")
	assert.Equal(t, Link{Text: "Cascading Style Sheets", Link: "/collection-css/luminous-corner"}, l1)

	g2, ok := m[2].(Group)
	require.True(t, ok, "third entry should be a group")
	assert.Equal(t, "框架", g2.Text)
	assert.Equal(t, Menu{Link{Text: "VitePress", Link: "/framework/VitePress/configure-algolia"}}, g2.Items)
}

func TestSite_EveryItemWellFormed(t *testing.T) {
	err := Walk(Site(), func(v Visit) error {
		assert.NotEmpty(t, strings.TrimSpace(v.Item.Label()), "item %s has empty text", v.Position())
		switch it := v.Item.(type) {
		case Link:
			assert.True(t, strings.HasPrefix(it.Link, "/"), "item %s link %q", v.Position(), it.Link)
		case Group:
			assert.NotEmpty(t, it.Items, "group %s has no items", v.Position())
		default:
			t.Fatalf("item %s has unexpected type %T", v.Position(), v.Item)
		}
		return nil
	})
	require.NoError(t, err)

	report := Validate(Site())
	assert.Empty(t, report.Problems)
	assert.NoError(t, report.Err())
}

func TestSite_ReturnsIndependentCopies(t *testing.T) {
	a := Site()
	g := a[0].(Group)
	g.Items[0] = Link{Text: "changed", Link: "/changed"}
	a[1] = Link{Text: "x", Link: "/x"}

	b := Site()
	assert.Equal(t, "Vscode配置", b[0].(Group).Items[0].Label())
	assert.Equal(t, "Cascading Style Sheets", b[1].Label())
}

func TestSite_AlreadyNormalized(t *testing.T) {
	assert.True(t, Normalize(Site()).Equal(Site()))
}

func TestSite_RoundTripsThroughHostFormats(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, Site(), format))
			decoded, err := Decode(&buf, format)
			require.NoError(t, err)
			assert.True(t, decoded.Equal(Site()), "decoded tree differs: %#v", decoded)
		})
	}
}
