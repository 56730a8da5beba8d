package directory

import "context"

// Presenter maps the abstract render calls onto a concrete view technology.
// Each call replaces whatever the target region showed before.
type Presenter interface {
	// RenderLoading shows the placeholder used while the dataset loads.
	RenderLoading(ctx context.Context) error

	// RenderList shows one summary per record, or a "No results found."
	// placeholder when results is empty.
	RenderList(ctx context.Context, results []Record) error

	// RenderDetail shows every field of selected, or a neutral empty state
	// when selected is nil.
	RenderDetail(ctx context.Context, selected *Record) error

	// RenderError replaces the result area with a single message.
	RenderError(ctx context.Context, message string) error
}

// NoResultsMessage is shown when no record matches the criteria.
const NoResultsMessage = "No results found."

// LoadingMessage is shown while the dataset is loading.
const LoadingMessage = "Loading…"
