package source

import (
	"context"
	"os"

	"github.com/JonMunkholm/resdir/internal/directory"
)

var _ directory.Loader = (*File)(nil)

// File loads records from a JSON file on disk.
type File struct {
	Path string
}

// NewFile returns a File source for path.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Name describes the source.
func (f *File) Name() string {
	return "file " + f.Path
}

// Load reads and decodes the file.
func (f *File) Load(ctx context.Context) ([]directory.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, directory.NewLoadError(f.Name(), directory.ErrTransport, err)
	}

	file, err := os.Open(f.Path)
	if err != nil {
		return nil, directory.NewLoadError(f.Name(), directory.ErrTransport, err)
	}
	defer file.Close()

	return Decode(f.Name(), file)
}
