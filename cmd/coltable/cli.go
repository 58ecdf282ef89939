package main

import (
	"github.com/jessevdk/go-flags"
)

// option defines command line options.
type option struct {
	Config string   `short:"c" long:"config" description:"config file (default ~/.config/coltable/config.toml)"`
	Import string   `short:"i" long:"import" description:"import people from a CSV file (first_name,last_name,age,email) before starting"`
	Update bool     `long:"update" description:"with --import, overwrite people already present"`
	Sample int      `long:"sample" description:"insert N generated people before starting"`
	Reset  bool     `long:"reset" description:"delete every person before importing"`
	Debug  bool     `short:"d" long:"debug" description:"debug logging"`
	NoTUI  bool     `long:"no-tui" description:"print the first page and exit"`
	Global string   `short:"s" long:"search" description:"initial global search"`
	Pin    []string `short:"p" long:"pin" description:"column to pin (repeatable)"`
	Hide   []string `long:"hide" description:"column to hide (repeatable)"`
}

func parseCLI(args []string) (*option, error) {
	opt := &option{}
	parser := flags.NewParser(opt, flags.Default)
	parser.Name = "coltable"
	parser.Usage = "[OPTIONS]"

	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	return opt, nil
}

func isHelp(err error) bool {
	return flags.WroteHelp(err)
}
