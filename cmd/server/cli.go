package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/JonMunkholm/resdir/internal/config"
	"github.com/JonMunkholm/resdir/internal/directory"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Config *config.Config
	Logger *slog.Logger
	Loader directory.Loader
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve  ServeCmd  `cmd:"" help:"Serve the directory browser over HTTP"`
	Search SearchCmd `cmd:"" help:"Filter the directory and print matching resources"`
	Vocab  VocabCmd  `cmd:"" help:"Print the category and subcategory vocabulary"`
	Import ImportCmd `cmd:"" help:"Write a JSON dataset into the configured SQL source table"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Text        string `arg:"" optional:"" help:"Free-text query"`
	Category    string `short:"c" default:"all" help:"Category filter (\"all\" disables it)"`
	Subcategory string `short:"s" default:"all" help:"Subcategory filter (\"all\" disables it)"`
	Show        int    `default:"-1" help:"Also print the details of the record with this ID"`
	Exact       bool   `help:"Match categories by whole label instead of substring"`
	JSON        bool   `name:"json" help:"Print JSON instead of text"`
}

// VocabCmd is the "vocab" subcommand.
type VocabCmd struct {
	JSON bool `name:"json" help:"Print JSON instead of text"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File    string `arg:"" type:"existingfile" help:"JSON file holding an array of records"`
	Replace bool   `short:"r" help:"Empty the table before importing"`
}

// newBrowser builds a Browser from the configuration.
func newBrowser(deps *Dependencies, opts ...directory.Option) *directory.Browser {
	mode := directory.MatchSubstring
	var timeout time.Duration
	if deps.Config != nil {
		if deps.Config.Query.ExactCategoryMatch {
			mode = directory.MatchExactToken
		}
		timeout = deps.Config.Source.LoadTimeout
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	base := []directory.Option{
		directory.WithMatchMode(mode),
		directory.WithLoadTimeout(timeout),
		directory.WithLogger(logger),
	}
	return directory.NewBrowser(append(base, opts...)...)
}
