// Package cli — офлайн-утилита circuitctl поверх того же конвейера,
// что и сервис: проверка, раскладка, отрисовка и экспорт файлов схем.
package cli

import (
	"context"
	"errors"
	"fmt"

	"circuit-copilot/internal/circuit/cache"
	"circuit-copilot/internal/circuit/service"

	"github.com/spf13/cobra"
)

// Version задаётся при сборке.
var Version = "0.1.0"

type options struct {
	output    string
	strict    bool
	cachePath string
}

type pipelineKey struct{}

// session держит ресурсы одного запуска, которые закрываются после команды
// при любом исходе.
type session struct {
	opts  options
	cache *cache.Cache
}

func (s *session) close() error {
	err := s.cache.Close()
	s.cache = nil
	return err
}

// rootCmd собирает дерево команд.
func (s *session) rootCmd() *cobra.Command {
	opts := &s.opts

	root := &cobra.Command{
		Use:   "circuitctl",
		Short: "Circuit Copilot command-line tools",
		Long: `circuitctl works on circuit specification files (JSON or YAML) offline.

Examples:
  circuitctl validate blinker.json
  circuitctl render blinker.yaml --view pcb -o blinker-pcb.svg
  circuitctl netlist blinker.json --power
  circuitctl inspect blinker-pcb.svg
  circuitctl library LED
  circuitctl cache purge --cache render.db --older-than 720h`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.output != outputTable && opts.output != outputJSON {
				return fmt.Errorf("unknown output format %q", opts.output)
			}

			var rc service.RenderCache
			if opts.cachePath != "" {
				c, err := cache.Open(cmd.Context(), opts.cachePath)
				if err != nil {
					return err
				}
				s.cache = c
				rc = c
			}
			pipeline := service.NewPipeline(nil, rc, service.Options{StrictReferences: opts.strict})
			cmd.SetContext(context.WithValue(cmd.Context(), pipelineKey{}, pipeline))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.output, "output", outputTable, "output format: table or json")
	root.PersistentFlags().BoolVar(&opts.strict, "strict", false, "treat dangling references as errors")
	root.PersistentFlags().StringVar(&opts.cachePath, "cache", "", "path to a SQLite render cache")

	root.AddCommand(
		newValidateCommand(opts),
		newRenderCommand(),
		newLayoutCommand(),
		newNetlistCommand(opts),
		newOptimizeCommand(),
		newExportCommand(),
		newInspectCommand(opts),
		newLibraryCommand(opts),
		newCacheCommand(s),
	)
	return root
}

func pipelineFrom(cmd *cobra.Command) *service.Pipeline {
	if p, ok := cmd.Context().Value(pipelineKey{}).(*service.Pipeline); ok {
		return p
	}
	return service.NewPipeline(nil, nil, service.Options{})
}

// Execute запускает корневую команду с контекстом и закрывает кэш,
// даже если команда завершилась ошибкой.
func Execute(ctx context.Context) error {
	return execute(ctx, &session{}, nil)
}

func execute(ctx context.Context, s *session, configure func(*cobra.Command)) error {
	root := s.rootCmd()
	if configure != nil {
		configure(root)
	}
	err := root.ExecuteContext(ctx)
	return errors.Join(err, s.close())
}
