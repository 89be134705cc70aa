package nav

// site is the navigation bar published by this repository. It is never
// handed out directly; Site returns a copy.
var site = Menu{
	Group{
		Text: "WorkFlow",
		Items: Menu{
			Link{Text: "Vscode配置", Link: "/workflow/vscode/setting"},
		},
	},
	Link{Text: "Cascading Style Sheets", Link: "/collection-css/luminous-corner"},
	Group{
		Text: "框架",
		Items: Menu{
			Link{Text: "VitePress", Link: "/framework/VitePress/configure-algolia"},
		},
	},
}

// Site returns the site's top navigation tree. Every call returns an
// independent copy.
func Site() Menu {
	return site.Clone()
}
