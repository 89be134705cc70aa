package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/render"
)

// PrintCmd implements the 'print' command.
type PrintCmd struct {
	Format string `short:"f" help:"Output format: yaml, json, vitepress, hugo, html, markdown" default:"yaml"`
	File   string `help:"Read this nav file (any parseable format, chosen by extension) instead of the configured source"`
	Output string `short:"o" help:"Write to this file instead of stdout"`
}

func (p *PrintCmd) Run(g *Global, root *CLI) error {
	format, err := config.NormalizeFormat(p.Format)
	if err != nil {
		return err
	}
	m, err := root.loadMenu(p.File)
	if err != nil {
		return err
	}
	data, err := render.Render(format, m)
	if err != nil {
		return err
	}
	if p.Output != "" {
		if err := os.WriteFile(p.Output, data, 0o644); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to write output").
				WithContext("path", p.Output).Build()
		}
		return nil
	}
	_, err = fmt.Fprint(g.out(), string(data))
	return err
}
