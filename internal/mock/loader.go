package mock

import (
	"context"

	"github.com/JonMunkholm/resdir/internal/directory"
)

var _ directory.Loader = (*Loader)(nil)

// Loader is a mock implementation of directory.Loader.
type Loader struct {
	LoadFn func(ctx context.Context) ([]directory.Record, error)
	NameFn func() string
}

func (l *Loader) Load(ctx context.Context) ([]directory.Record, error) {
	return l.LoadFn(ctx)
}

func (l *Loader) Name() string {
	if l.NameFn == nil {
		return "mock"
	}
	return l.NameFn()
}
