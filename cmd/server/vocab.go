package main

import (
	"encoding/json"
	"fmt"

	"github.com/JonMunkholm/resdir/internal/directory"
)

// Run executes the vocab command.
func (c *VocabCmd) Run(deps *Dependencies) error {
	browser := newBrowser(deps)
	if err := browser.Load(deps.Ctx, deps.Loader); err != nil {
		fmt.Fprintln(deps.Stderr, directory.LoadFailedMessage)
		fmt.Fprintf(deps.Stderr, "error: %s\n", directory.FormatUserError(err))
		return err
	}

	v := browser.Vocabulary()
	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	fmt.Fprintf(deps.Stdout, "Categories (%d)\n", len(v.Categories))
	for _, cat := range v.Categories {
		fmt.Fprintf(deps.Stdout, "  %s\n", cat)
	}
	fmt.Fprintf(deps.Stdout, "Subcategories (%d)\n", len(v.Subcategories))
	for _, sub := range v.Subcategories {
		fmt.Fprintf(deps.Stdout, "  %s\n", sub)
	}
	if len(v.Categories)+len(v.Subcategories) == 0 {
		fmt.Fprintln(deps.Stdout, "No categories found.")
	}
	return nil
}
