package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/suhasramanand/intern-alert/internal/browser"
	"github.com/suhasramanand/intern-alert/internal/export"
	"github.com/suhasramanand/intern-alert/internal/mailer"
	"github.com/suhasramanand/intern-alert/internal/network"
	"github.com/suhasramanand/intern-alert/internal/run"
	"github.com/suhasramanand/intern-alert/internal/scraper"
	"github.com/suhasramanand/intern-alert/internal/seen"
)

type RunCmd struct {
	Seen      string  `help:"Path to seen-IDs file." placeholder:"PATH"`
	Window    int     `help:"Recency window in minutes."`
	MinPay    float64 `name:"min-pay" help:"Pay floor in $/hr."`
	DryRun    bool    `name:"dry-run" help:"Never send mail; print the digest instead."`
	NoBrowser bool    `name:"no-browser" help:"Disable the headless-browser fallbacks."`
	Out       string  `short:"o" help:"Also write the novel batch to a file."`
	Format    string  `help:"Format for --out: table, json, md." enum:"table,json,md" default:"table"`
}

func (c *RunCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	if strings.TrimSpace(c.Seen) != "" {
		cfg.SeenFile = c.Seen
	}
	if c.Window > 0 {
		cfg.WindowMins = c.Window
	}
	if c.MinPay > 0 {
		cfg.MinHourlyPay = c.MinPay
	}
	if c.DryRun {
		cfg.EmailPassword = ""
	}

	client, err := network.NewClient()
	if err != nil {
		return fmt.Errorf("init http client: %w", err)
	}

	runner := &run.Runner{
		Cfg:        cfg,
		InternList: scraper.NewInternList(client),
		Jobright:   scraper.NewJobright(client, cfg.WindowMins, cfg.MinHourlyPay),
		Airtable:   scraper.NewAirtable(client, cfg.WindowMins),
		Store:      seen.NewFileStore(cfg.SeenFile),
		Mailer:     mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailPassword),
		UI:         ctx.UI,
		Log:        ctx.Logger,
	}
	if !c.NoBrowser {
		runner.Launch = browser.Launch
	}

	summary, err := runner.Run(context.Background())
	if err != nil {
		return err
	}

	if strings.TrimSpace(c.Out) != "" {
		file, err := os.Create(c.Out)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := export.WriteJobs(file, summary.Novel, export.Format(c.Format)); err != nil {
			return fmt.Errorf("write --out: %w", err)
		}
	}

	return nil
}
