// Package generate runs the whole pipeline: paginate contacts, compose each
// card through the layout engine, rasterize and write the PNG files.
package generate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"qslgen/binding"
	"qslgen/config"
	"qslgen/layout"
	"qslgen/record"
)

// PageRenderer is the per-worker drawing surface: the layout collaborators
// plus PNG output. Implementations are not assumed thread-safe, so the
// generator creates one per rendered page.
type PageRenderer interface {
	layout.Canvas
	layout.TextMeasurer
	EncodePNG(w io.Writer) error
}

// Generator wires the pipeline together for one run.
type Generator struct {
	cfg         *config.Config
	log         *zap.Logger
	newRenderer func() (PageRenderer, error)
}

// New builds a Generator. newRenderer is called once per page, on the worker
// goroutine that renders it.
func New(cfg *config.Config, log *zap.Logger, newRenderer func() (PageRenderer, error)) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{cfg: cfg, log: log, newRenderer: newRenderer}
}

// Run generates every card for the given records into outDir and returns the
// number of cards written. Pages are independent, so they render on a bounded
// worker pool; cancellation stops scheduling of the remaining pages.
func (g *Generator) Run(ctx context.Context, records []record.Raw, outDir string) (int, error) {
	if outDir == "" {
		outDir = g.cfg.Output.Directory
	}
	if g.cfg.Output.CleanBeforeRun {
		if err := clearDir(outDir); err != nil {
			return 0, err
		}
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir %s: %w", outDir, err)
	}

	pages := layout.Paginate(records, g.cfg.Table.MaxContacts)
	workers := g.cfg.Generation.Workers
	if workers < 1 {
		workers = 1
	}
	g.log.Info("generating cards",
		zap.Int("records", len(records)),
		zap.Int("cards", len(pages)),
		zap.Int("workers", workers),
		zap.String("output", outDir))

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(workers)
	for _, page := range pages {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return g.renderPage(page, outDir)
		})
	}
	if err := grp.Wait(); err != nil {
		return 0, err
	}
	return len(pages), nil
}

func (g *Generator) renderPage(page layout.Page, outDir string) error {
	r, err := g.newRenderer()
	if err != nil {
		return fmt.Errorf("renderer for %s: %w", page.Callsign, err)
	}

	// One engine per worker: the engine's message picker is not shared.
	eng := layout.NewEngine(g.cfg)
	if err := eng.Compose(r, r, page); err != nil {
		return err
	}

	name := g.Filename(page)
	path := filepath.Join(outDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := r.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	g.log.Debug("card written",
		zap.String("file", name),
		zap.String("call", page.Callsign),
		zap.Int("card", page.Index),
		zap.Int("cards", page.Total))
	return nil
}

// Filename resolves the output name for a page from the configured
// templates. Portable callsigns like W1ABC/P sanitize their separator.
func (g *Generator) Filename(page layout.Page) string {
	tmpl := g.cfg.Output.SingleTemplate
	if page.Total > 1 {
		tmpl = g.cfg.Output.MultiTemplate
	}
	call := strings.ReplaceAll(page.Callsign, "/", "-")
	return binding.Interpolate(tmpl, map[string]any{
		"call":  call,
		"card":  page.Index,
		"cards": page.Total,
	})
}

// clearDir removes the directory's contents but keeps the directory itself.
func clearDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read output dir %s: %w", dir, err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("clear output dir %s: %w", dir, err)
		}
	}
	return nil
}
