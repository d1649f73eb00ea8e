// Command cairo-parser statically analyzes a tree of Cairo source files:
// it recovers declared structure, links imports across files with a
// three-pass symbol table, stubs what it cannot resolve, and — when
// asked — builds a CFG and runs dataflow analysis over every function
// with a body. It never invokes the Cairo or Starknet toolchains.
//
// Usage:
//
//	cairo-parser [flags] <root>...
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"github.com/schollz/progressbar/v3"

	"github.com/raptor-audit/cairo-parser/internal/bracecheck"
	"github.com/raptor-audit/cairo-parser/internal/clilog"
	"github.com/raptor-audit/cairo-parser/internal/metrics"
	"github.com/raptor-audit/cairo-parser/internal/model"
	"github.com/raptor-audit/cairo-parser/internal/pipeline"
	"github.com/raptor-audit/cairo-parser/internal/report"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("cairo-parser", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `cairo-parser - static structural and dataflow analysis for Cairo sources

Usage:
  cairo-parser [flags] <root>...

Flags:
`)
		fs.PrintDefaults()
	}

	var (
		stubMissing  = fs.Bool("stub-missing", true, "synthesize stubs for unresolved imports instead of failing")
		excludeTests = fs.Bool("exclude-tests", true, "exclude test_*.cairo / *_test.cairo / tests/ files")
		analyze      = fs.Bool("analyze", false, "run CFG construction and dataflow analysis per function")
		maxPaths     = fs.Int("max-paths", 100, "cap on enumerated CFG paths per function before truncating")
		format       = fs.String("format", "json", "output format: json, yaml, or text")
		verbose      = fs.CountP("verbose", "v", "increase verbosity (-v info, -vv debug)")
		noColor      = fs.Bool("no-color", false, "disable colorized text summary output")
		metricsAddr  = fs.String("metrics-addr", "", "HTTP listen address for Prometheus metrics (empty to disable)")
		verifyLex    = fs.Bool("verify-lex", false, "cross-check file structure against the bundled Rust grammar")
		quiet        = fs.BoolP("quiet", "q", false, "suppress informational logging")
	)

	if err := fs.Parse(args); err != nil {
		return 2
	}
	roots := fs.Args()
	if len(roots) == 0 {
		fs.Usage()
		return 2
	}

	logger := clilog.New(*verbose, *quiet, *noColor)
	m, reg := metrics.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	if *metricsAddr != "" {
		go func() {
			logger.Info("metrics endpoint listening on %s", *metricsAddr)
			if err := metrics.Serve(ctx, *metricsAddr, reg); err != nil {
				logger.Warn("metrics server stopped: %v", err)
			}
		}()
	}

	if *verifyLex {
		runBraceCheck(ctx, logger, roots)
	}

	opts := pipeline.Options{
		StubMissing:  *stubMissing,
		ExcludeTests: *excludeTests,
		Analyze:      *analyze,
		MaxPaths:     *maxPaths,
	}

	var bar *progressbar.ProgressBar
	if !*quiet && *verbose == 0 {
		bar = progressbar.Default(-1, "scanning")
	}

	logger.Info("scanning %d root(s)", len(roots))
	result, err := pipeline.Run(ctx, roots, opts)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		logger.Error("run failed: %v", err)
		return 1
	}

	m.FilesScanned.Add(float64(result.TotalFiles))
	m.ImportsResolved.Add(float64(result.StubReport.TotalResolved))
	for _, c := range result.Contracts {
		for _, imp := range c.Imports {
			if imp.StubCreated {
				m.ImportsStubbed.Inc()
			}
		}
		for _, pe := range c.ParseErrors {
			if pe.Kind == model.DiagParseError {
				m.ParseErrors.Inc()
			}
		}
		for _, w := range c.Warnings {
			if w.Kind == model.DiagParseError {
				m.ParseErrors.Inc()
			}
		}
	}
	for _, c := range result.Analysis {
		m.FunctionsAnalyzed.Add(float64(len(c.Functions)))
	}

	doc := report.Build(report.PipelineResult{
		TotalFiles:      result.TotalFiles,
		TotalContracts:  result.TotalContracts,
		StubbingEnabled: result.StubbingEnabled,
		ProjectName:     result.ProjectName,
		ScarbRoot:       result.ScarbRoot,
		Contracts:       result.Contracts,
		StubReport: report.StubReport{
			TotalStubs:     result.StubReport.TotalStubs,
			TotalResolved:  result.StubReport.TotalResolved,
			TotalSymbols:   result.StubReport.TotalSymbols,
			StubbedModules: result.StubReport.StubbedModules,
		},
		Analysis: result.Analysis,
	})

	switch *format {
	case "yaml":
		out, err := report.YAML(doc)
		if err != nil {
			logger.Error("render yaml: %v", err)
			return 1
		}
		os.Stdout.Write(out)
	case "text":
		report.WriteSummary(os.Stdout, doc)
	default:
		out, err := report.JSON(doc)
		if err != nil {
			logger.Error("render json: %v", err)
			return 1
		}
		os.Stdout.Write(out)
		fmt.Println()
	}

	if result.ExitNonZero {
		return 1
	}
	return 0
}

// runBraceCheck is a best-effort pre-pass: it never blocks the real run
// on a finding, it only logs what it saw. Wiring it into the pipeline's
// own file list would mean threading file contents back out of Run, which
// isn't worth it for what is explicitly an optional cross-check.
func runBraceCheck(ctx context.Context, logger *clilog.Logger, roots []string) {
	for _, root := range roots {
		_ = walkCairoFiles(root, func(path string, content []byte) {
			findings, err := bracecheck.Check(ctx, content)
			if err != nil {
				logger.Warn("verify-lex: %s: %v", path, err)
				return
			}
			for _, f := range findings {
				logger.Warn("verify-lex: %s:%d:%d: %s", path, f.Line, f.Column, f.Snippet)
			}
		})
	}
}
