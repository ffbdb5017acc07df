package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"circuit-copilot/internal/circuit/ai"
	"circuit-copilot/internal/circuit/cache"
	"circuit-copilot/internal/circuit/export"
	"circuit-copilot/internal/circuit/layout"
	"circuit-copilot/internal/circuit/models"
	"circuit-copilot/internal/circuit/render"
	"circuit-copilot/internal/circuit/validation"
)

var (
	ErrUnknownView  = errors.New("unknown view")
	ErrNoBackend    = errors.New("AI backend is not configured")
	ErrCollaborator = errors.New("AI collaborator failed")
)

// ViewNetlist — дополнительный вид рендера поверх трех раскладок.
const ViewNetlist layout.View = "netlist"

// RenderCache — хранилище готовых SVG. Реализуется cache.Cache.
type RenderCache interface {
	Get(ctx context.Context, key string) (*cache.Entry, bool, error)
	Put(ctx context.Context, key string, e cache.Entry) error
}

type Options struct {
	// StrictReferences превращает предупреждения аудита в ошибку валидации.
	StrictReferences bool
}

// ============================================================
// Pipeline
// ============================================================

// Pipeline связывает AI, валидатор, раскладку и рендер. Все зависимости
// передаются при создании; backend и cache могут быть nil.
type Pipeline struct {
	backend  ai.Backend
	cache    RenderCache
	renderer *render.Renderer
	exporter *export.Exporter
	opts     Options
	newID    func() string
}

func NewPipeline(backend ai.Backend, renderCache RenderCache, opts Options) *Pipeline {
	renderer := render.NewRenderer()
	return &Pipeline{
		backend:  backend,
		cache:    renderCache,
		renderer: renderer,
		exporter: export.NewExporter(renderer),
		opts:     opts,
		newID:    uuid.NewString,
	}
}

// Design — проверенная спецификация с идентификатором и замечаниями аудита.
type Design struct {
	ID       string              `json:"design_id"`
	Spec     *models.CircuitSpec `json:"spec"`
	Warnings []validation.Issue  `json:"warnings"`
}

// ============================================================
// Admission
// ============================================================

// Admit проверяет кандидата по схеме и затем по ссылкам.
func (p *Pipeline) Admit(candidate any) (*models.CircuitSpec, []validation.Issue, error) {
	spec, err := validation.Validate(candidate)
	if err != nil {
		return nil, nil, err
	}
	return p.audit(spec)
}

func (p *Pipeline) AdmitJSON(data []byte) (*models.CircuitSpec, []validation.Issue, error) {
	spec, err := validation.ValidateJSON(data)
	if err != nil {
		return nil, nil, err
	}
	return p.audit(spec)
}

func (p *Pipeline) audit(spec *models.CircuitSpec) (*models.CircuitSpec, []validation.Issue, error) {
	warnings := validation.Audit(spec)
	if p.opts.StrictReferences && len(warnings) > 0 {
		return nil, warnings, &validation.Error{Issues: warnings}
	}
	if warnings == nil {
		warnings = []validation.Issue{}
	}
	return spec, warnings, nil
}

// ============================================================
// AI collaboration
// ============================================================

func (p *Pipeline) Generate(ctx context.Context, description string) (*Design, error) {
	if p.backend == nil {
		return nil, ErrNoBackend
	}
	log.Printf("[CIRCUITS] generate via %s: %q", p.backend.Name(), description)

	text, err := p.backend.Complete(ctx, ai.GenerateRequest(description))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCollaborator, err)
	}
	return p.admitResponse(text)
}

func (p *Pipeline) Refine(ctx context.Context, spec *models.CircuitSpec, kind ai.RefineKind) (*Design, error) {
	if p.backend == nil {
		return nil, ErrNoBackend
	}
	req, err := ai.RefineRequest(spec, kind)
	if err != nil {
		return nil, err
	}
	log.Printf("[CIRCUITS] refine %s of %q via %s", kind, spec.CircuitName, p.backend.Name())

	text, err := p.backend.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCollaborator, err)
	}
	return p.admitResponse(text)
}

func (p *Pipeline) admitResponse(text string) (*Design, error) {
	raw, err := ai.ExtractJSON(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCollaborator, err)
	}
	spec, warnings, err := p.AdmitJSON([]byte(raw))
	if err != nil {
		return nil, err
	}
	return &Design{ID: p.newID(), Spec: spec, Warnings: warnings}, nil
}

// ImagePrompt — текст промпта для генерации картинки.
type ImagePrompt struct {
	Kind     ai.ImageKind `json:"kind"`
	Prompt   string       `json:"prompt"`
	Fallback bool         `json:"fallback"`
}

// ImagePrompt не возвращает ошибок: при сбое backend'а отдается запасной текст.
func (p *Pipeline) ImagePrompt(ctx context.Context, spec *models.CircuitSpec, kind ai.ImageKind) *ImagePrompt {
	if p.backend == nil {
		return &ImagePrompt{Kind: kind, Prompt: ai.FallbackImagePrompt(spec), Fallback: true}
	}

	text, err := p.backend.Complete(ctx, ai.ImageRequest(spec, kind))
	switch {
	case errors.Is(err, ai.ErrEmptyResponse):
		return &ImagePrompt{Kind: kind, Prompt: ai.BaseImagePrompt(spec, kind)}
	case err != nil:
		log.Printf("[AI] image prompt failed, using fallback: %v", err)
		return &ImagePrompt{Kind: kind, Prompt: ai.FallbackImagePrompt(spec), Fallback: true}
	}
	return &ImagePrompt{Kind: kind, Prompt: text}
}

// BackendStatus — состояние подключенной модели.
type BackendStatus struct {
	Backend   string   `json:"backend"`
	Reachable bool     `json:"reachable"`
	Models    []string `json:"models"`
	Error     string   `json:"error,omitempty"`
}

func (p *Pipeline) Status(ctx context.Context) *BackendStatus {
	if p.backend == nil {
		return &BackendStatus{Backend: "none", Models: []string{}, Error: ErrNoBackend.Error()}
	}
	status := &BackendStatus{Backend: p.backend.Name(), Models: []string{}}
	names, err := p.backend.Models(ctx)
	if err != nil {
		status.Error = err.Error()
		return status
	}
	status.Reachable = true
	if names != nil {
		status.Models = names
	}
	return status
}
