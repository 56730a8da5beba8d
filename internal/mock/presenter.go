// Package mock provides hand-written test doubles for directory interfaces.
package mock

import (
	"context"

	"github.com/JonMunkholm/resdir/internal/directory"
)

var _ directory.Presenter = (*Presenter)(nil)

// Presenter is a mock implementation of directory.Presenter.
type Presenter struct {
	RenderLoadingFn func(ctx context.Context) error
	RenderListFn    func(ctx context.Context, results []directory.Record) error
	RenderDetailFn  func(ctx context.Context, selected *directory.Record) error
	RenderErrorFn   func(ctx context.Context, message string) error
}

func (p *Presenter) RenderLoading(ctx context.Context) error {
	return p.RenderLoadingFn(ctx)
}

func (p *Presenter) RenderList(ctx context.Context, results []directory.Record) error {
	return p.RenderListFn(ctx, results)
}

func (p *Presenter) RenderDetail(ctx context.Context, selected *directory.Record) error {
	return p.RenderDetailFn(ctx, selected)
}

func (p *Presenter) RenderError(ctx context.Context, message string) error {
	return p.RenderErrorFn(ctx, message)
}

// RecordingPresenter is a directory.Presenter that remembers the last call
// made for each region.
type RecordingPresenter struct {
	Loading int
	Lists   [][]directory.Record
	Details []*directory.Record
	Errors  []string

	LoadingErr error
	ListErr    error
	DetailErr  error
	ErrorErr   error
}

func (p *RecordingPresenter) RenderLoading(ctx context.Context) error {
	p.Loading++
	return p.LoadingErr
}

func (p *RecordingPresenter) RenderList(ctx context.Context, results []directory.Record) error {
	p.Lists = append(p.Lists, results)
	return p.ListErr
}

func (p *RecordingPresenter) RenderDetail(ctx context.Context, selected *directory.Record) error {
	p.Details = append(p.Details, selected)
	return p.DetailErr
}

func (p *RecordingPresenter) RenderError(ctx context.Context, message string) error {
	p.Errors = append(p.Errors, message)
	return p.ErrorErr
}

// LastDetail returns the most recent detail render, or nil.
func (p *RecordingPresenter) LastDetail() *directory.Record {
	if len(p.Details) == 0 {
		return nil
	}
	return p.Details[len(p.Details)-1]
}
