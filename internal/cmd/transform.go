package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"hash-mapper/internal/flags/enum"
	"hash-mapper/internal/flags/log"
	"hash-mapper/internal/mapping"
	"hash-mapper/internal/metrics"
	"hash-mapper/mapper"
)

const (
	FlagRules       = "rules"
	FlagMapper      = "mapper"
	FlagOnConflict  = "on-conflict"
	FlagOutput      = "output"
	FlagConcurrency = "concurrency"
	FlagMetricsFile = "metrics-file"
)

// conflictDeclared keeps each mapper's on_conflict from the rule file.
const conflictDeclared = "declared"

type transformOptions struct {
	direction   mapper.Direction
	rulesPath   string
	mapperName  string
	onConflict  string
	output      string
	concurrency int
	metricsFile string
}

func newTransformCommand(dir mapper.Direction) *cobra.Command {
	name := strings.ToLower(dir.String())

	var from, to string
	if dir == mapper.DirectionNormalize {
		from, to = "canonical", "wire"
	} else {
		from, to = "wire", "canonical"
	}

	cmd := &cobra.Command{
		Use:   name + " --rules FILE [FILE...]",
		Short: fmt.Sprintf("Convert %s documents to their %s shape", from, to),
		Long: fmt.Sprintf(`%s reads %s documents (JSON or YAML) and writes their %s shape.

Documents are read from the given files, or from stdin when no file or "-" is
given. Files are converted concurrently and printed in argument order; YAML
output separates documents with "---".`, name, from, to),
		Example: fmt.Sprintf(`hashmapper %[1]s --rules rules.yaml input.json
cat input.yaml | hashmapper %[1]s --rules rules.yaml --mapper contact --output yaml`, name),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := transformOptionsFromFlags(cmd, dir)
			if err != nil {
				return err
			}

			return runTransform(cmd, opts, args)
		},
	}

	cmd.Flags().String(FlagRules, "", "rule file describing the mappers")
	_ = cmd.MarkFlagRequired(FlagRules)
	cmd.Flags().String(FlagMapper, "", "mapper to run (defaults to the rule file's root)")
	enum.Var(cmd.Flags(), FlagOnConflict, []string{conflictDeclared, "overwrite", "fail", "skip"},
		"conflict policy for all mappers, overriding on_conflict")
	enum.VarP(cmd.Flags(), FlagOutput, "o", []string{OutputJSON, OutputYAML}, "output format")
	cmd.Flags().Int(FlagConcurrency, runtime.GOMAXPROCS(0), "number of documents converted in parallel")
	cmd.Flags().String(FlagMetricsFile, "", "write Prometheus metrics in text format to this file when done")

	return cmd
}

func transformOptionsFromFlags(cmd *cobra.Command, dir mapper.Direction) (transformOptions, error) {
	opts := transformOptions{direction: dir}

	var err error

	if opts.rulesPath, err = cmd.Flags().GetString(FlagRules); err != nil {
		return opts, err
	}

	if opts.mapperName, err = cmd.Flags().GetString(FlagMapper); err != nil {
		return opts, err
	}

	if opts.onConflict, err = enum.Get(cmd.Flags(), FlagOnConflict); err != nil {
		return opts, err
	}

	if opts.output, err = enum.Get(cmd.Flags(), FlagOutput); err != nil {
		return opts, err
	}

	if opts.concurrency, err = cmd.Flags().GetInt(FlagConcurrency); err != nil {
		return opts, err
	}

	if opts.concurrency < 1 {
		return opts, fmt.Errorf("--%s must be at least 1, got %d", FlagConcurrency, opts.concurrency)
	}

	if opts.metricsFile, err = cmd.Flags().GetString(FlagMetricsFile); err != nil {
		return opts, err
	}

	return opts, nil
}

func runTransform(cmd *cobra.Command, opts transformOptions, inputs []string) (err error) {
	logger, err := log.GetBaseLogger(cmd)
	if err != nil {
		return err
	}

	if len(inputs) == 0 {
		inputs = []string{stdinName}
	}

	if n := countStdin(inputs); n > 1 {
		return fmt.Errorf("stdin (%q) can only be read once, got it %d times", stdinName, n)
	}

	base := mapper.DefaultConfig()
	base.Logger = logger

	var collector *metrics.Collector

	if opts.metricsFile != "" {
		collector = metrics.NewCollector()
		base.Observer = collector
	}

	m, err := loadMapper(opts, base)
	if err != nil {
		return err
	}

	if collector != nil {
		defer func() {
			err = errors.Join(err, writeMetrics(opts.metricsFile, collector))
		}()
	}

	results, err := transformAll(cmd.Context(), cmd.InOrStdin(), m, opts, inputs, collector, logger)
	if err != nil {
		return err
	}

	return writeResults(cmd.OutOrStdout(), opts.output, results)
}

func loadMapper(opts transformOptions, base mapper.Config) (*mapper.Mapper, error) {
	mf, err := mapping.LoadFile(opts.rulesPath)
	if err != nil {
		return nil, err
	}

	compile := mapping.CompileOptions{Base: base}

	if opts.onConflict != conflictDeclared {
		policy, err := mapper.ParseConflictPolicy(opts.onConflict)
		if err != nil {
			return nil, err
		}

		compile.Base.ConflictPolicy = policy
		compile.OverrideConflict = true
	}

	set, err := mapping.Compile(mf, compile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.rulesPath, err)
	}

	if opts.mapperName == "" {
		return set.Root(), nil
	}

	return set.Mapper(opts.mapperName)
}

// transformAll converts every input with at most opts.concurrency documents in
// flight. The first failure cancels the inputs that have not started.
func transformAll(ctx context.Context, stdin io.Reader, m *mapper.Mapper, opts transformOptions,
	inputs []string, collector *metrics.Collector, logger *slog.Logger,
) ([][]byte, error) {
	results := make([][]byte, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency)

	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			doc, err := readDocument(stdin, input)
			if err != nil {
				return err
			}

			start := time.Now()
			out, err := m.Process(opts.direction, doc)
			elapsed := time.Since(start)

			if collector != nil {
				collector.ObserveDocument(m.Name(), opts.direction, elapsed, err)
			}

			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}

			logger.LogAttrs(ctx, slog.LevelInfo, "document processed",
				slog.String("input", input),
				slog.String("mapper", m.Name()),
				slog.String("direction", opts.direction.String()),
				slog.Duration("elapsed", elapsed))

			results[i], err = encodeDocument(out, opts.output)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func writeResults(w io.Writer, format string, results [][]byte) error {
	for i, res := range results {
		if format == OutputYAML && i > 0 {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
		}

		if _, err := w.Write(res); err != nil {
			return err
		}
	}

	return nil
}

func writeMetrics(path string, collector *metrics.Collector) error {
	reg := prometheus.NewRegistry()
	if err := collector.Register(reg); err != nil {
		return err
	}

	if err := metrics.WriteTextfile(path, reg); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}

	return nil
}

func countStdin(inputs []string) int {
	n := 0

	for _, in := range inputs {
		if in == stdinName {
			n++
		}
	}

	return n
}
