package nav

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

func TestEncode_YAMLShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Site(), FormatYAML))

	want := `- text: WorkFlow
  items:
    - text: Vscode配置
      link: /workflow/vscode/setting
- text: Cascading Style Sheets
  link: /collection-css/luminous-corner
- text: 框架
  items:
    - text: VitePress
      link: /framework/VitePress/configure-algolia
`
	assert.Equal(t, want, buf.String())
}

func TestEncode_JSONShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Menu{Link{Text: "A", Link: "/a"}}, FormatJSON))
	assert.JSONEq(t, `[{"text":"A","link":"/a"}]`, buf.String())
}

func TestEncode_RejectsPointerItems(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatJSON} {
		var buf bytes.Buffer
		err := Encode(&buf, Menu{Group{Text: "G", Items: Menu{&Link{Text: "A", Link: "/a"}}}}, format)
		require.Error(t, err, format)
		assert.Contains(t, err.Error(), "unsupported nav item type *nav.Link")
	}
}

func TestDecode_RejectsMalformedItems(t *testing.T) {
	cases := []struct {
		name   string
		format Format
		input  string
		msg    string
	}{
		{"both yaml", FormatYAML, "- text: A\n  link: /a\n  items:\n    - text: B\n      link: /b\n", "both link and items"},
		{"neither yaml", FormatYAML, "- text: A\n", "neither link nor items"},
		{"empty text yaml", FormatYAML, "- text: ''\n  link: /a\n", "has no text"},
		{"nested neither yaml", FormatYAML, "- text: A\n  items:\n    - text: B\n", "nav item 1.1"},
		{"unknown key yaml", FormatYAML, "- text: A\n  href: /a\n", "unknown nav item key"},
		{"both json", FormatJSON, `[{"text":"A","link":"/a","items":[]}]`, "both link and items"},
		{"neither json", FormatJSON, `[{"text":"A"}]`, "neither link nor items"},
		{"unknown key json", FormatJSON, `[{"text":"A","url":"/a"}]`, "unknown field"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.input), tc.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
			assert.True(t, errors.HasCategory(err, errors.CategoryValidation), "expected validation category, got %v", err)
		})
	}
}

func TestDecode_EmptyGroupDecodesAndFailsValidation(t *testing.T) {
	m, err := Decode(strings.NewReader("- text: Empty\n  items: []\n"), FormatYAML)
	require.NoError(t, err)
	require.Len(t, m, 1)
	report := Validate(m)
	require.Len(t, report.Errors(), 1)
	assert.Equal(t, ProblemEmptyGroup, report.Errors()[0].Code)
}

func TestDecode_EmptyYAMLDocument(t *testing.T) {
	m, err := Decode(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, m)
}
