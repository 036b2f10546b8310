package cmd

import "github.com/alecthomas/kong"

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Run     RunCmd     `cmd:"" help:"Scrape all sources once and email the digest."`
	Seen    SeenCmd    `cmd:"" help:"Seen-ID file utilities."`
	Config  ConfigCmd  `cmd:"" help:"Manage configuration."`
	Version VersionCmd `cmd:"" help:"Print version."`
}

func NewCLI() *CLI {
	return &CLI{}
}
