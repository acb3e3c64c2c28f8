package domain

import (
	"context"
	"fmt"
	"log/slog"

	"docsleuth.dev/pkg/docsleuth/internal/adapter"
	"docsleuth.dev/pkg/docsleuth/internal/controller"
	m "docsleuth.dev/pkg/docsleuth/internal/model"
	"docsleuth.dev/pkg/docsleuth/internal/oracle"
)

// CheckArgs carries the resolved configuration and roots for one run.
type CheckArgs struct {
	Roots  []m.Path
	Config *m.EffectiveConfig
	Output m.Path
}

// Workflow orchestrates a validation run end to end: path filtering, module
// walking, directive resolution, driving the oracle, and reporting.
type Workflow interface {
	// Check validates all definitions under the roots and reports the
	// result. Fatal errors (bad roots) abort before any report.
	Check(ctx context.Context, args CheckArgs) (*m.RunResult, error)

	// List prints the discovered source files with their definition
	// counts, using the same filtering as Check.
	List(ctx context.Context, args CheckArgs) error
}

type workflow struct {
	filter *PathFilter
	walker *ModuleWalker
	store  adapter.ReportStore
	ui     controller.UI
	oracle oracle.Oracle
}

// NewWorkflow wires the workflow from its adapters.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	parser adapter.PythonFileAdapter,
	store adapter.ReportStore,
	ui controller.UI,
	o oracle.Oracle,
) Workflow {
	return &workflow{
		filter: NewPathFilter(fsAdapter),
		walker: NewModuleWalker(fsAdapter, parser),
		store:  store,
		ui:     ui,
		oracle: o,
	}
}

func (w *workflow) Check(ctx context.Context, args CheckArgs) (*m.RunResult, error) {
	sources, err := w.filter.Filter(args.Roots, args.Config)
	if err != nil {
		return nil, err
	}

	result := &m.RunResult{}
	driver := NewDriver(w.oracle)

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tree, content, err := w.walker.Walk(ctx, src)
		if err != nil {
			slog.Warn("module skipped", "path", src.Path, "error", err)
			result.Record(brokenModule(src), []m.Violation{{
				Code:    m.CodeLoadFailure,
				Message: fmt.Sprintf("Module could not be validated: %v", err),
			}})

			continue
		}

		suppressions := ResolveDirectives(tree, ScanDirectives(content), args.Config)
		driver.Run(tree, suppressions, result)
	}

	w.ui.DisplayResult(result, args.Config.Verbose)

	if args.Output != "" {
		if err := w.store.SaveResult(args.Output, result); err != nil {
			return nil, err
		}

		slog.Info("report written", "path", args.Output)
	}

	return result, nil
}

func (w *workflow) List(ctx context.Context, args CheckArgs) error {
	sources, err := w.filter.Filter(args.Roots, args.Config)
	if err != nil {
		return err
	}

	summaries := make([]controller.FileSummary, 0, len(sources))

	for _, src := range sources {
		summary := controller.FileSummary{Path: src.Path}

		tree, _, err := w.walker.Walk(ctx, src)
		if err != nil {
			slog.Warn("module skipped", "path", src.Path, "error", err)
			summary.Broken = true
		} else {
			tree.Walk(func(*m.Definition) { summary.Definitions++ })
		}

		summaries = append(summaries, summary)
	}

	w.ui.DisplayFileList(summaries)

	return nil
}

// brokenModule is the placeholder definition a load failure is attributed to.
func brokenModule(src m.SourcePath) *m.Definition {
	return &m.Definition{
		Name: src.Module,
		Kind: m.KindModule,
		Path: src.Path,
		Line: 1,
	}
}
