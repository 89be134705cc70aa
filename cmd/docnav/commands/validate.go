package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	File string `arg:"" optional:"" help:"Nav file: YAML, JSON, VitePress module, Hugo config, HTML or Markdown (default: configured source)"`
}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	m, err := root.loadMenu(v.File)
	if err != nil {
		return err
	}
	report := nav.Validate(m)
	out := g.out()
	for _, p := range report.Problems {
		level := "error"
		if p.Severity == errors.SeverityWarning {
			level = "warning"
		}
		_, _ = fmt.Fprintf(out, "%-8s %s\n", level, p.Error())
	}
	stats := m.Stats()
	_, _ = fmt.Fprintf(out, "%d items (%d links, %d groups), %d errors, %d warnings\n",
		stats.Total(), stats.Links, stats.Groups, len(report.Errors()), len(report.Warnings()))
	return report.Err()
}
