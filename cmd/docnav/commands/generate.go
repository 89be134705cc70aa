package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docnav/internal/generate"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	NoCheck bool `name:"no-check" help:"Skip link checking"`
	Strict  bool `help:"Fail on nav links without a page"`
}

func (c *GenerateCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if c.NoCheck {
		cfg.Check.Enabled = false
	}
	if c.Strict {
		cfg.Check.Strict = true
	}

	ctx, stop := signalContext()
	defer stop()

	pub, closePub, err := openPublisher(cfg)
	if err != nil {
		return err
	}
	defer closePub()

	res, err := generate.NewService(cfg).WithPublisher(pub).Run(ctx)
	if res != nil {
		for _, t := range res.Targets {
			state := "unchanged"
			if t.Changed {
				state = "written"
			}
			_, _ = fmt.Fprintf(g.out(), "%-10s %-10s %s\n", state, t.Format, t.Path)
		}
	}
	return err
}
