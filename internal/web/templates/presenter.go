package templates

import (
	"context"
	"io"

	"github.com/JonMunkholm/resdir/internal/directory"
	"github.com/a-h/templ"
)

var (
	_ directory.Presenter = (*Presenter)(nil)
	_ directory.Presenter = (*Regions)(nil)
)

// Presenter writes each rendered region straight to w. It serves HTMX
// partial responses.
type Presenter struct {
	w io.Writer
}

// NewPresenter returns a Presenter writing to w.
func NewPresenter(w io.Writer) *Presenter {
	return &Presenter{w: w}
}

func (p *Presenter) RenderLoading(ctx context.Context) error {
	return LoadingCard().Render(ctx, p.w)
}

func (p *Presenter) RenderList(ctx context.Context, results []directory.Record) error {
	return ResultList(results).Render(ctx, p.w)
}

func (p *Presenter) RenderDetail(ctx context.Context, selected *directory.Record) error {
	return Detail(selected).Render(ctx, p.w)
}

func (p *Presenter) RenderError(ctx context.Context, message string) error {
	return ErrorCard(message).Render(ctx, p.w)
}

// Regions keeps the latest component for each page region so a full page
// can be composed from several render calls.
type Regions struct {
	Results templ.Component
	Detail  templ.Component
}

func (r *Regions) RenderLoading(context.Context) error {
	r.Results = LoadingCard()
	return nil
}

func (r *Regions) RenderList(_ context.Context, results []directory.Record) error {
	r.Results = ResultList(results)
	return nil
}

func (r *Regions) RenderDetail(_ context.Context, selected *directory.Record) error {
	r.Detail = Detail(selected)
	return nil
}

func (r *Regions) RenderError(_ context.Context, message string) error {
	r.Results = ErrorCard(message)
	return nil
}
