package directory

import "context"

// Loader fetches the full dataset from an external data source.
//
// Load returns a *LoadError on transport failure, non-success status or a
// payload that is not a JSON array of records. A valid empty array is not an
// error.
type Loader interface {
	Load(ctx context.Context) ([]Record, error)

	// Name describes the source for logs, e.g. "file data.json".
	Name() string
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) ([]Record, error)

// Load calls f(ctx).
func (f LoaderFunc) Load(ctx context.Context) ([]Record, error) {
	return f(ctx)
}

// Name returns "func".
func (f LoaderFunc) Name() string {
	return "func"
}
