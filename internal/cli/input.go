package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"circuit-copilot/internal/circuit/models"
	"circuit-copilot/internal/circuit/service"
	"circuit-copilot/internal/circuit/validation"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ============================================================
// Spec input
// ============================================================

// readInput читает файл или stdin, если путь "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// loadSpec читает спецификацию (JSON или YAML по расширению) и пропускает
// её через проверку конвейера.
func loadSpec(cmd *cobra.Command, p *service.Pipeline, path string) (*models.CircuitSpec, []validation.Issue, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, nil, err
	}
	if !isYAML(path) {
		return p.AdmitJSON(data)
	}

	var candidate any
	if err := yaml.Unmarshal(data, &candidate); err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return p.Admit(candidate)
}

// writeOutput пишет в файл или в stdout, если путь пустой.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", path, len(data))
	return nil
}
