package ai

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"circuit-copilot/internal/circuit/models"
)

// ============================================================
// Circuit specification prompt
// ============================================================

//go:embed example_spec.json
var exampleSpec string

const (
	SystemCircuitDesigner = "You are an expert electronic circuit design assistant. Always return valid JSON that matches the exact schema provided."
	SystemCircuitRefiner  = "You are an expert electronic circuit design assistant. Return the refined circuit specification as valid JSON."
	SystemImagePrompter   = "You are an expert at creating detailed image generation prompts. Create a detailed, specific prompt for generating high-quality images."
)

var guidelines = []string{
	`Use real KiCad footprint names (e.g., "DIP-8", "R_0805_2012Metric", "LED_D5.0mm")`,
	"Use standard component values and part numbers",
	"Ensure all connections are electrically valid",
	"Provide realistic breadboard positions (rows A-J, columns 1-63)",
	"Include proper wire colors for different signal types",
	"Make assembly steps clear and sequential",
	"Use appropriate difficulty levels and time estimates",
	"Include all necessary tools and materials",
	"Ensure the circuit is actually buildable and functional",
}

// ExampleSpec — образец ответа, вставляемый в промпт генерации.
func ExampleSpec() string {
	return exampleSpec
}

func CircuitSpecPrompt(description string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert electronic circuit design assistant. Generate a detailed specification for an electronic circuit based on this request: %q\n\n", description)
	b.WriteString("Return a JSON object with the following structure:\n\n")
	b.WriteString(exampleSpec)
	b.WriteString("\nIMPORTANT GUIDELINES:\n")
	for i, g := range guidelines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, g)
	}
	b.WriteString("\nFocus on creating a practical, buildable circuit that matches the user's request.\n")
	return b.String()
}

// GenerateRequest собирает запрос генерации с параметрами по умолчанию.
func GenerateRequest(description string) CompletionRequest {
	return CompletionRequest{
		System:      SystemCircuitDesigner,
		Prompt:      CircuitSpecPrompt(description),
		Temperature: 0.7,
		TopP:        0.9,
		MaxTokens:   4000,
	}
}

// ============================================================
// Refinement prompts
// ============================================================

type RefineKind string

const (
	RefineSchematic  RefineKind = "schematic"
	RefineBreadboard RefineKind = "breadboard"
	RefinePCB        RefineKind = "pcb"
	RefineAssembly   RefineKind = "assembly"
)

var refineLeads = map[RefineKind]string{
	RefineSchematic:  "Refine the schematic layout for this circuit",
	RefineBreadboard: "Optimize the breadboard layout for this circuit",
	RefinePCB:        "Improve the PCB layout hints for this circuit",
	RefineAssembly:   "Enhance the assembly steps for this circuit",
}

func ParseRefineKind(s string) (RefineKind, error) {
	kind := RefineKind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := refineLeads[kind]; !ok {
		return "", fmt.Errorf("unknown refinement kind %q", s)
	}
	return kind, nil
}

func RefinePrompt(spec *models.CircuitSpec, kind RefineKind) (string, error) {
	lead, ok := refineLeads[kind]
	if !ok {
		return "", fmt.Errorf("unknown refinement kind %q", kind)
	}
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode spec: %w", err)
	}
	return lead + ": " + string(data), nil
}

func RefineRequest(spec *models.CircuitSpec, kind RefineKind) (CompletionRequest, error) {
	prompt, err := RefinePrompt(spec, kind)
	if err != nil {
		return CompletionRequest{}, err
	}
	return CompletionRequest{
		System:      SystemCircuitRefiner,
		Prompt:      prompt,
		Temperature: 0.5,
		TopP:        0.9,
		MaxTokens:   4000,
	}, nil
}

// ============================================================
// Image prompts
// ============================================================

type ImageKind string

const (
	ImageSchematic      ImageKind = "schematic"
	ImageBreadboard     ImageKind = "breadboard"
	ImagePCB            ImageKind = "pcb"
	ImagePhotorealistic ImageKind = "photorealistic"
)

func ParseImageKind(s string) (ImageKind, error) {
	switch kind := ImageKind(strings.ToLower(strings.TrimSpace(s))); kind {
	case ImageSchematic, ImageBreadboard, ImagePCB, ImagePhotorealistic:
		return kind, nil
	}
	return "", fmt.Errorf("unknown image kind %q", s)
}

// BaseImagePrompt берёт готовый промпт из спецификации, если он задан.
func BaseImagePrompt(spec *models.CircuitSpec, kind ImageKind) string {
	switch kind {
	case ImageSchematic:
		return orDefault(spec.SchematicPrompt, "Electronic schematic diagram of "+spec.CircuitName)
	case ImageBreadboard:
		return orDefault(spec.BreadboardPrompt, "Breadboard layout of "+spec.CircuitName)
	case ImagePCB:
		return orDefault(spec.PCBPrompt, "PCB layout of "+spec.CircuitName)
	}
	return "Photorealistic photograph of " + spec.CircuitName +
		" circuit built on breadboard, professional lighting, high resolution"
}

// FallbackImagePrompt используется, когда backend недоступен.
func FallbackImagePrompt(spec *models.CircuitSpec) string {
	return orDefault(spec.SchematicPrompt, "Image of "+spec.CircuitName)
}

func ImageRequest(spec *models.CircuitSpec, kind ImageKind) CompletionRequest {
	base := BaseImagePrompt(spec, kind)
	return CompletionRequest{
		System: SystemImagePrompter,
		Prompt: "Create a detailed image generation prompt for: " + base +
			". Include specific details about lighting, composition, style, and technical accuracy.",
		Temperature: 0.8,
		TopP:        0.9,
		MaxTokens:   500,
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
