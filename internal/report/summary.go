package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// WriteSummary prints a short, colorized human-readable digest of doc to
// w — the `--format text` path, meant for a terminal rather than for
// piping into another tool.
func WriteSummary(w io.Writer, doc Document) {
	fmt.Fprintf(w, "%s %d files, %d contracts (stubbing=%v)\n",
		color.CyanString("[scan]"), doc.Metadata.TotalFiles, doc.Metadata.TotalContracts, doc.Metadata.StubbingEnabled)

	if doc.StubReport.TotalStubs > 0 {
		fmt.Fprintf(w, "%s %d stubs synthesized, %d imports resolved, %d symbols tracked\n",
			color.YellowString("[link]"), doc.StubReport.TotalStubs, doc.StubReport.TotalResolved, doc.StubReport.TotalSymbols)
		for _, m := range doc.StubReport.StubbedModules {
			fmt.Fprintf(w, "         stub: %s\n", m)
		}
	} else {
		fmt.Fprintf(w, "%s %d imports resolved, no stubs\n", color.GreenString("[link]"), doc.StubReport.TotalResolved)
	}

	if len(doc.Analysis) == 0 {
		return
	}

	var warnCount, fnCount int
	for _, c := range doc.Analysis {
		for _, fn := range c.Functions {
			fnCount++
			warnCount += len(fn.Warnings)
		}
	}
	if warnCount == 0 {
		fmt.Fprintf(w, "%s %d functions analyzed, no warnings\n", color.GreenString("[analyze]"), fnCount)
		return
	}
	fmt.Fprintf(w, "%s %d functions analyzed, %d warnings\n", color.RedString("[analyze]"), fnCount, warnCount)
	for _, c := range doc.Analysis {
		for _, fn := range c.Functions {
			for _, wrn := range fn.Warnings {
				fmt.Fprintf(w, "         %s:%s line %d: %s\n", c.ContractName, fn.FunctionName, wrn.Line, wrn.Message)
			}
		}
	}
}
