package cmd

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/suhasramanand/intern-alert/internal/config"
	"github.com/suhasramanand/intern-alert/internal/ui"
)

type Context struct {
	Out     io.Writer
	Err     io.Writer
	UI      *ui.UI
	Config  config.Config
	Logger  zerolog.Logger
	Verbose bool
	Version string
}
