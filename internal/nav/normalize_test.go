package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	// "é" as e + combining acute composes to U+00E9.
	assert.Equal(t, "Caf\u00e9", NormalizeText("  Cafe\u0301 "))
	assert.Equal(t, "框架", NormalizeText("框架"))
}

func TestNormalizeLink(t *testing.T) {
	cases := map[string]string{
		"/workflow//vscode/./setting": "/workflow/vscode/setting",
		"/guide/":                     "/guide/",
		"/guide/../api/":              "/api/",
		"/":                           "/",
		" /a/b ":                      "/a/b",
		"/a//b#frag":                  "/a/b#frag",
		"/a/./b?x=1":                  "/a/b?x=1",
		"relative/path":               "relative/path",
		"":                            "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeLink(in), "input %q", in)
	}
}

func TestNormalize_KeepsShapeAndOrder(t *testing.T) {
	in := Menu{
		Group{Text: " Docs ", Items: Menu{Link{Text: "Intro", Link: "/docs//intro"}}},
		Link{Text: "Home\t", Link: "/"},
	}
	want := Menu{
		Group{Text: "Docs", Items: Menu{Link{Text: "Intro", Link: "/docs/intro"}}},
		Link{Text: "Home", Link: "/"},
	}
	got := Normalize(in)
	assert.True(t, want.Equal(got), "got %#v", got)
	assert.Equal(t, " Docs ", in[0].Label(), "input must not be modified")
}
