package cmd

import (
	"fmt"

	"github.com/suhasramanand/intern-alert/internal/config"
)

type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Create a default config file."`
	Path ConfigPathCmd `cmd:"" help:"Print the config file path."`
}

type ConfigInitCmd struct{}

type ConfigPathCmd struct{}

func (c *ConfigInitCmd) Run(ctx *Context) error {
	created, err := config.Init()
	if err != nil {
		return err
	}
	if len(created) == 0 {
		ctx.UI.Infof("config already exists")
		return nil
	}
	for _, path := range created {
		ctx.UI.Successf("created %s", path)
	}
	return nil
}

func (c *ConfigPathCmd) Run(ctx *Context) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.Out, path)
	return err
}
