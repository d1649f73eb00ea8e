// Package pipeline orchestrates the full run: scan, lex-parse, the
// three-pass linker, and — when enabled — the per-function CFG/dataflow
// analysis, producing the plain-data Result the reporter serializes.
package pipeline

import (
	"context"
	"os"
	"sync"

	"github.com/viant/afs"
	"golang.org/x/sync/errgroup"

	"github.com/raptor-audit/cairo-parser/internal/cfg"
	"github.com/raptor-audit/cairo-parser/internal/dataflow"
	"github.com/raptor-audit/cairo-parser/internal/hashutil"
	"github.com/raptor-audit/cairo-parser/internal/lexparse"
	"github.com/raptor-audit/cairo-parser/internal/link"
	"github.com/raptor-audit/cairo-parser/internal/model"
	"github.com/raptor-audit/cairo-parser/internal/repository"
	"github.com/raptor-audit/cairo-parser/internal/scanner"
	"github.com/raptor-audit/cairo-parser/internal/stmtparse"
)

// Options configures one run, mirroring the configuration surface §6
// describes.
type Options struct {
	StubMissing  bool
	ExcludeTests bool
	Analyze      bool
	MaxPaths     int
}

// DefaultOptions returns the spec's defaults.
func DefaultOptions() Options {
	return Options{StubMissing: true, ExcludeTests: true, Analyze: false, MaxPaths: 100}
}

// Result is the run's complete output, the plain-data tree the reporter
// renders as JSON or YAML.
type Result struct {
	TotalFiles     int
	TotalContracts int
	StubbingEnabled bool
	ProjectName    string
	ScarbRoot      string

	Contracts map[string]*model.ContractInfo
	StubReport link.StubReport

	Analysis []model.ContractAnalysis

	IOErrors []model.ParseError

	ExitNonZero bool
}

// Run executes the full pipeline over roots in order.
func Run(ctx context.Context, roots []string, opts Options) (*Result, error) {
	scanOpts := scanner.DefaultOptions()
	scanOpts.ExcludeTests = opts.ExcludeTests
	scanResult, err := scanner.Scan(ctx, roots, scanOpts)
	if err != nil {
		return nil, err
	}

	fs := afs.New()
	parses := make([]*model.FileParse, len(scanResult.Entries))
	ioErrors := make([]model.ParseError, len(scanResult.Entries))
	hadIOError := make([]bool, len(scanResult.Entries))

	g, gctx := errgroup.WithContext(ctx)
	for i, entry := range scanResult.Entries {
		i, entry := i, entry
		g.Go(func() error {
			content, readErr := fs.DownloadWithURL(gctx, entry.FilePath)
			if readErr != nil || len(content) == 0 {
				var raw []byte
				raw, readErr = os.ReadFile(entry.FilePath)
				content = raw
			}
			if readErr != nil {
				hadIOError[i] = true
				ioErrors[i] = model.ParseError{Kind: model.DiagIOError, Message: entry.FilePath + ": " + readErr.Error()}
				return nil
			}
			fp := lexparse.Parse(entry.FilePath, entry.ModulePath, content)
			fp.SourceHash = hashutil.HexString(content)
			parses[i] = fp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := link.NewSymbolTable()
	var allContracts []*model.ContractInfo
	for i, fp := range parses {
		if hadIOError[i] {
			continue
		}
		allContracts = append(allContracts, link.Populate(fp, table)...)
	}
	table.Freeze()

	link.ResolveAll(allContracts, table)
	stubReport := link.SynthesizeStubs(allContracts, opts.StubMissing)

	exitNonZero := false
	if !opts.StubMissing {
		for _, c := range allContracts {
			for _, pe := range c.ParseErrors {
				if pe.Kind == model.DiagUnresolvedImport {
					exitNonZero = true
				}
			}
		}
	}
	for i := range ioErrors {
		if hadIOError[i] {
			exitNonZero = true
		}
	}

	contracts := make(map[string]*model.ContractInfo, len(allContracts))
	for _, c := range allContracts {
		contracts[c.Name] = c
	}

	var projectName, scarbRoot string
	if len(roots) > 0 {
		proj := repository.New().Detect(ctx, roots[0])
		projectName = proj.Name
		if proj.Marker == "Scarb.toml" {
			scarbRoot = proj.RootPath
		}
	}

	result := &Result{
		TotalFiles:      len(scanResult.Entries),
		TotalContracts:  len(allContracts),
		StubbingEnabled: opts.StubMissing,
		ProjectName:     projectName,
		ScarbRoot:       scarbRoot,
		Contracts:       contracts,
		StubReport:      stubReport,
		ExitNonZero:     exitNonZero,
	}
	for i := range ioErrors {
		if hadIOError[i] {
			result.IOErrors = append(result.IOErrors, ioErrors[i])
		}
	}

	if opts.Analyze {
		result.Analysis = analyzeAll(ctx, allContracts, opts.MaxPaths)
	}

	return result, nil
}

// analyzeAll runs the CFG builder and dataflow analyzer over every
// function with a body, in parallel across functions per §5. Results are
// written into a pre-sized slice indexed by contracts' existing input-file
// order rather than sorted, so output stays in that order regardless of
// goroutine completion order.
func analyzeAll(ctx context.Context, contracts []*model.ContractInfo, maxPaths int) []model.ContractAnalysis {
	out := make([]model.ContractAnalysis, len(contracts))
	var wg sync.WaitGroup
	var cache pathCache

	for ci, c := range contracts {
		ci, c := ci, c
		out[ci] = model.ContractAnalysis{ContractName: c.Name, Functions: make([]model.FunctionAnalysis, len(c.Functions))}
		for fi, fn := range c.Functions {
			fi, fn := fi, fn
			wg.Add(1)
			go func() {
				defer wg.Done()
				out[ci].Functions[fi] = analyzeFunction(fn, c.Imports, maxPaths, &cache)
			}()
		}
	}
	wg.Wait()
	_ = ctx
	return out
}

func analyzeFunction(fn *model.FunctionInfo, imports []*model.ImportInfo, maxPaths int, cache *pathCache) model.FunctionAnalysis {
	result := model.FunctionAnalysis{FunctionName: fn.Name, HasBody: fn.HasBody()}
	if !fn.HasBody() {
		return result
	}

	stmts := stmtparse.Parse(fn.Body.Text, fn.Body.StartLine)
	g := cfg.Build(stmts)

	summary := g.Summary()
	result.CFG = &summary

	dfResult, warnings := dataflow.Analyze(g, fn.Parameters, imports)
	result.Dataflow = dfResult
	result.Warnings = warnings

	_, truncated := cache.enumerate(g, maxPaths, fn.Body.Text)
	if truncated {
		result.Warnings = append(result.Warnings, model.Warning{
			Kind:    model.DiagAnalysisWarning,
			Message: "path enumeration truncated at max_paths",
		})
	}

	return result
}

// pathCache memoizes the truncated flag of EnumeratePaths by a highwayhash
// fingerprint of the function body text, so two functions with
// byte-identical bodies (a common pattern for generated dispatcher
// boilerplate) pay the DFS once. On a cache hit the returned paths are nil.
type pathCache struct {
	mu              sync.Mutex
	truncatedByHash map[string]bool
}

func (c *pathCache) enumerate(g *cfg.Graph, maxPaths int, bodyText string) ([][]int, bool) {
	key := hashutil.HexString([]byte(bodyText))
	if key != "" {
		c.mu.Lock()
		if c.truncatedByHash == nil {
			c.truncatedByHash = map[string]bool{}
		}
		if truncated, ok := c.truncatedByHash[key]; ok {
			c.mu.Unlock()
			return nil, truncated
		}
		c.mu.Unlock()
	}

	paths, truncated := g.EnumeratePaths(maxPaths)
	if key != "" {
		c.mu.Lock()
		c.truncatedByHash[key] = truncated
		c.mu.Unlock()
	}
	return paths, truncated
}
