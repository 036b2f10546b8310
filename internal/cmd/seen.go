package cmd

import (
	"fmt"

	"github.com/suhasramanand/intern-alert/internal/seen"
)

type SeenCmd struct {
	Stats SeenStatsCmd `cmd:"" help:"Print seen-ID counts."`
	Merge SeenMergeCmd `cmd:"" help:"Merge one seen file into another."`
}

type SeenStatsCmd struct {
	File string `arg:"" help:"Path to seen-IDs file."`
}

type SeenMergeCmd struct {
	From string `name:"from" required:"" help:"Seen file to merge from."`
	Into string `name:"into" required:"" help:"Seen file to merge into (created if missing)."`
}

func (c *SeenStatsCmd) Run(ctx *Context) error {
	set, err := seen.Load(c.File)
	if err != nil {
		return fmt.Errorf("read seen file: %w", err)
	}
	_, err = fmt.Fprintf(ctx.Out, "ids=%d\n", set.Len())
	return err
}

func (c *SeenMergeCmd) Run(ctx *Context) error {
	from, err := seen.Load(c.From)
	if err != nil {
		return fmt.Errorf("read --from: %w", err)
	}
	into, err := seen.Load(c.Into)
	if err != nil {
		return fmt.Errorf("read --into: %w", err)
	}

	added := 0
	for _, id := range from.IDs() {
		if into.Mark(id) {
			added++
		}
	}
	if err := seen.Save(c.Into, into); err != nil {
		return fmt.Errorf("write --into: %w", err)
	}

	_, err = fmt.Fprintf(ctx.Out, "added=%d total=%d\n", added, into.Len())
	return err
}
