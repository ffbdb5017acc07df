package service

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"circuit-copilot/internal/circuit/cache"
	"circuit-copilot/internal/circuit/export"
	"circuit-copilot/internal/circuit/layout"
	"circuit-copilot/internal/circuit/models"
)

// ============================================================
// Layout & render
// ============================================================

// ParseRenderView принимает три раскладки и netlist.
func ParseRenderView(s string) (layout.View, error) {
	if s == string(ViewNetlist) {
		return ViewNetlist, nil
	}
	if v, ok := layout.ParseView(s); ok {
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}

// Layout возвращает раскладку указанного вида.
func (p *Pipeline) Layout(spec *models.CircuitSpec, view layout.View) (any, error) {
	switch view {
	case layout.ViewBreadboard:
		return layout.Breadboard(spec), nil
	case layout.ViewSchematic:
		return layout.Schematic(spec), nil
	case layout.ViewPCB:
		return layout.PCB(spec), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownView, view)
}

func (p *Pipeline) Netlist(spec *models.CircuitSpec, power bool) *layout.Netlist {
	n := layout.BuildNetlist(spec)
	if power {
		return n.WithPowerNets()
	}
	return n
}

func (p *Pipeline) Optimize(spec *models.CircuitSpec) *models.CircuitSpec {
	return layout.Optimize(spec)
}

// Rendered — SVG одного вида и число непроложенных соединений.
type Rendered struct {
	View    layout.View `json:"view"`
	SVG     string      `json:"svg"`
	Skipped int         `json:"skipped_connections"`
	Cached  bool        `json:"cached"`
}

func (p *Pipeline) Render(ctx context.Context, spec *models.CircuitSpec, view layout.View) (*Rendered, error) {
	key := ""
	if p.cache != nil {
		k, err := cache.Key(string(view), spec)
		if err != nil {
			return nil, err
		}
		key = k
		if e, ok, err := p.cache.Get(ctx, key); err != nil {
			log.Printf("[CACHE] get failed: %v", err)
		} else if ok {
			return &Rendered{View: view, SVG: e.SVG, Skipped: e.Skipped, Cached: true}, nil
		}
	}

	out, err := p.draw(spec, view)
	if err != nil {
		return nil, err
	}
	if out.Skipped > 0 {
		log.Printf("[RENDER] %s of %q: %d connection(s) skipped", view, spec.CircuitName, out.Skipped)
	}

	if p.cache != nil {
		entry := cache.Entry{View: string(view), SVG: out.SVG, Skipped: out.Skipped}
		if err := p.cache.Put(ctx, key, entry); err != nil {
			log.Printf("[CACHE] put failed: %v", err)
		}
	}
	return out, nil
}

func (p *Pipeline) draw(spec *models.CircuitSpec, view layout.View) (*Rendered, error) {
	out := &Rendered{View: view}
	switch view {
	case layout.ViewBreadboard:
		l := layout.Breadboard(spec)
		out.SVG, out.Skipped = p.renderer.Breadboard(l), l.SkippedCount()
	case layout.ViewSchematic:
		l := layout.Schematic(spec)
		out.SVG, out.Skipped = p.renderer.Schematic(l), l.SkippedCount()
	case layout.ViewPCB:
		l := layout.PCB(spec)
		out.SVG, out.Skipped = p.renderer.PCB(l), l.SkippedCount()
	case ViewNetlist:
		out.SVG = p.renderer.Netlist(layout.BuildNetlist(spec))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}
	return out, nil
}

// RenderAll рисует три раскладки параллельно.
func (p *Pipeline) RenderAll(ctx context.Context, spec *models.CircuitSpec) (map[layout.View]*Rendered, error) {
	views := layout.Views()
	results := make([]*Rendered, len(views))

	g, gctx := errgroup.WithContext(ctx)
	for i, view := range views {
		g.Go(func() error {
			r, err := p.Render(gctx, spec, view)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[layout.View]*Rendered, len(views))
	for i, view := range views {
		out[view] = results[i]
	}
	return out, nil
}

func (p *Pipeline) Export(spec *models.CircuitSpec, opts models.ExportOptions) (*export.Artifact, error) {
	return p.exporter.Export(spec, opts)
}
