package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/JonMunkholm/resdir/internal/directory"
)

var (
	_ directory.Presenter = (*textPresenter)(nil)
	_ directory.Presenter = (*jsonPresenter)(nil)
)

func newPresenter(w io.Writer, asJSON bool) directory.Presenter {
	if asJSON {
		return &jsonPresenter{enc: json.NewEncoder(w)}
	}
	return &textPresenter{w: w}
}

// textPresenter prints one line per result and an indented detail block.
type textPresenter struct {
	w io.Writer
}

func (p *textPresenter) RenderLoading(context.Context) error {
	_, err := fmt.Fprintln(p.w, directory.LoadingMessage)
	return err
}

func (p *textPresenter) RenderList(_ context.Context, results []directory.Record) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(p.w, directory.NoResultsMessage)
		return err
	}
	for _, r := range results {
		line := fmt.Sprintf("%4d  %s", r.ID, r.DisplayName())
		if r.Description != "" {
			line += "  " + r.Description
		}
		if _, err := fmt.Fprintln(p.w, line); err != nil {
			return err
		}
	}
	return nil
}

func (p *textPresenter) RenderDetail(_ context.Context, r *directory.Record) error {
	if r == nil {
		_, err := fmt.Fprintln(p.w, "No resource selected.")
		return err
	}
	fields := []struct{ label, value string }{
		{"Description", r.Description},
		{"Address", r.Address},
		{"City", r.City},
		{"Zip", r.Zip},
		{"Phone", r.Phone},
		{"Website", r.Website},
		{"Categories", r.Categories},
		{"Subcategories", r.Subcategories},
	}
	if _, err := fmt.Fprintf(p.w, "\n%s\n", r.DisplayName()); err != nil {
		return err
	}
	for _, f := range fields {
		if _, err := fmt.Fprintf(p.w, "  %-14s %s\n", f.label+":", f.value); err != nil {
			return err
		}
	}
	return nil
}

func (p *textPresenter) RenderError(_ context.Context, message string) error {
	_, err := fmt.Fprintln(p.w, message)
	return err
}

// jsonPresenter writes one JSON document per render call.
type jsonPresenter struct {
	enc *json.Encoder
}

type jsonRecord struct {
	ID int `json:"id"`
	directory.Record
}

func (p *jsonPresenter) RenderLoading(context.Context) error {
	return p.enc.Encode(map[string]string{"state": directory.StateLoading.String()})
}

func (p *jsonPresenter) RenderList(_ context.Context, results []directory.Record) error {
	out := make([]jsonRecord, len(results))
	for i, r := range results {
		out[i] = jsonRecord{ID: r.ID, Record: r}
	}
	return p.enc.Encode(map[string]any{"count": len(out), "records": out})
}

func (p *jsonPresenter) RenderDetail(_ context.Context, r *directory.Record) error {
	if r == nil {
		return p.enc.Encode(map[string]any{"selected": nil})
	}
	return p.enc.Encode(map[string]any{"selected": jsonRecord{ID: r.ID, Record: *r}})
}

func (p *jsonPresenter) RenderError(_ context.Context, message string) error {
	return p.enc.Encode(map[string]string{"error": message})
}
