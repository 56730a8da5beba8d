package main

import (
	"errors"
	"fmt"

	"github.com/JonMunkholm/resdir/internal/directory"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	var opts []directory.Option
	if c.Exact {
		opts = append(opts, directory.WithMatchMode(directory.MatchExactToken))
	}
	browser := newBrowser(deps, opts...)
	p := newPresenter(deps.Stdout, c.JSON)
	sess := directory.NewSession("cli")

	if err := browser.Load(deps.Ctx, deps.Loader); err != nil {
		_ = browser.ShowList(deps.Ctx, sess, p)
		fmt.Fprintf(deps.Stderr, "error: %s\n", directory.FormatUserError(err))
		return err
	}

	criteria := directory.Criteria{Text: c.Text, Category: c.Category, Subcategory: c.Subcategory}
	if err := browser.ApplyFilters(deps.Ctx, sess, criteria, p); err != nil {
		return err
	}

	if c.Show >= 0 {
		if err := browser.Select(deps.Ctx, sess, c.Show, p); err != nil {
			if errors.Is(err, directory.ErrRecordNotFound) {
				fmt.Fprintf(deps.Stderr, "error: %s\n", directory.FormatUserError(err))
			}
			return err
		}
	}
	return nil
}
