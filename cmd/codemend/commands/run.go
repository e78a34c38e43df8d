// Package commands implements CLI command handlers for codemend.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/codemend/pkg/config"
	"github.com/Sumatoshi-tech/codemend/pkg/observability"
	"github.com/Sumatoshi-tech/codemend/pkg/recipe"
	"github.com/Sumatoshi-tech/codemend/pkg/recipes"
	"github.com/Sumatoshi-tech/codemend/pkg/runner"
	"github.com/Sumatoshi-tech/codemend/pkg/tree"
	"github.com/Sumatoshi-tech/codemend/pkg/treeio"
)

// ErrNoUnits is returned when the run command receives no tree documents.
var ErrNoUnits = errors.New(
	"no tree documents given. Pass one or more serialized tree files, e.g.: codemend run --plan plan.yaml unit.json",
)

// RunCommand holds configuration and dependencies for the run command.
type RunCommand struct {
	planPath   string
	configPath string
	outputDir  string
	dryRun     bool
	showDiff   bool
	noColor    bool
	silent     bool

	registryFn func() *recipe.Registry
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	return newRunCommandWithDeps(recipes.DefaultRegistry)
}

func newRunCommandWithDeps(registryFn func() *recipe.Registry) *cobra.Command {
	rc := &RunCommand{registryFn: registryFn}

	cmd := &cobra.Command{
		Use:   "run [tree.json ...]",
		Short: "Apply a rewrite plan to serialized trees",
		Long:  "Load serialized trees, apply the recipes listed in the rewrite plan, and write the rewritten trees back.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  rc.run,
	}

	cmd.Flags().StringVarP(&rc.planPath, "plan", "p", "plan.yaml", "Rewrite plan (YAML)")
	cmd.Flags().StringVarP(&rc.configPath, "config", "c", "", "Config file path (default: config.yaml discovery)")
	cmd.Flags().StringVarP(&rc.outputDir, "output-dir", "o", "", "Write rewritten trees here instead of in place")
	cmd.Flags().BoolVar(&rc.dryRun, "dry-run", false, "Report what would change without writing anything")
	cmd.Flags().BoolVar(&rc.showDiff, "diff", false, "Print a rendered source diff for each changed unit")
	cmd.Flags().BoolVar(&rc.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&rc.silent, "silent", false, "Disable the summary table")

	return cmd
}

func (rc *RunCommand) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(rc.configPath)
	if err != nil {
		return err
	}

	providers, err := observability.Init(observability.Config{
		Service:      cfg.Telemetry.Service,
		Env:          cfg.Telemetry.Env,
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
		LogLevel:     cfg.Logging.Level,
		LogFormat:    cfg.Logging.Format,
	})
	if err != nil {
		return err
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.Background())
		if shutdownErr != nil {
			providers.Logger.Warn("telemetry shutdown failed", "error", shutdownErr)
		}
	}()

	metrics, err := observability.NewRewriteMetrics(providers.Meter)
	if err != nil {
		return err
	}

	entries, err := rc.resolvePlan()
	if err != nil {
		return err
	}

	units, err := loadUnits(args)
	if err != nil {
		return err
	}

	originals := make(map[string]*tree.Node, len(units))
	for _, unit := range units {
		originals[unit.Name] = unit.Root
	}

	engine := runner.New(
		runner.WithLogger(providers.Logger),
		runner.WithTracer(providers.Tracer),
		runner.WithMetrics(metrics),
		runner.WithMaxPasses(cfg.Rewrite.MaxPasses),
	)

	rewritten, results, err := engine.Run(ctx, entries, units)
	if err != nil {
		return err
	}

	if !rc.dryRun {
		if err := rc.writeUnits(args, rewritten); err != nil {
			return err
		}
	}

	if rc.showDiff {
		rc.printDiffs(cmd.OutOrStdout(), originals, rewritten)
	}

	if !rc.isSilent(cmd) {
		rc.printSummary(cmd.OutOrStdout(), results)
	}

	return nil
}

// resolvePlan loads the rewrite plan and binds each step to a registered,
// configured recipe instance.
func (rc *RunCommand) resolvePlan() ([]recipe.Entry, error) {
	file, err := os.Open(rc.planPath)
	if err != nil {
		return nil, fmt.Errorf("open rewrite plan %s: %w", rc.planPath, err)
	}
	defer file.Close()

	plan, err := treeio.LoadPlan(file)
	if err != nil {
		return nil, err
	}

	registry := rc.registryFn()
	entries := make([]recipe.Entry, 0, len(plan.Recipes))

	for _, step := range plan.Recipes {
		entry, err := registry.Get(step.ID)
		if err != nil {
			return nil, err
		}

		if len(step.Options) > 0 {
			configurable, ok := entry.(recipe.Configurable)
			if !ok {
				return nil, fmt.Errorf("recipe %s accepts no options, plan sets %d", step.ID, len(step.Options))
			}

			if err := configurable.Configure(step.Options); err != nil {
				return nil, fmt.Errorf("configure recipe %s: %w", step.ID, err)
			}
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func loadUnits(paths []string) ([]runner.Unit, error) {
	if len(paths) == 0 {
		return nil, ErrNoUnits
	}

	units := make([]runner.Unit, 0, len(paths))

	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open tree document %s: %w", path, err)
		}

		root, err := treeio.Load(file)

		file.Close()

		if err != nil {
			return nil, fmt.Errorf("load tree document %s: %w", path, err)
		}

		units = append(units, runner.Unit{Name: path, Root: root})
	}

	return units, nil
}

func (rc *RunCommand) writeUnits(paths []string, units []runner.Unit) error {
	for i, unit := range units {
		target := paths[i]
		if rc.outputDir != "" {
			target = filepath.Join(rc.outputDir, filepath.Base(paths[i]))
		}

		file, err := os.Create(target)
		if err != nil {
			return fmt.Errorf("create output %s: %w", target, err)
		}

		err = treeio.Store(file, unit.Root)
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}

		if err != nil {
			return fmt.Errorf("write output %s: %w", target, err)
		}
	}

	return nil
}

// printDiffs renders each changed unit before and after and prints a
// line-level diff. Rendering is a debug approximation of the source; the
// authoritative output is the serialized tree.
func (rc *RunCommand) printDiffs(writer io.Writer, originals map[string]*tree.Node, units []runner.Unit) {
	dmp := diffmatchpatch.New()

	for _, unit := range units {
		before, ok := originals[unit.Name]
		if !ok || before == unit.Root {
			continue
		}

		fmt.Fprintf(writer, "--- %s\n", unit.Name)

		diffs := dmp.DiffMain(tree.Render(before), tree.Render(unit.Root), false)
		dmp.DiffCleanupSemantic(diffs)

		for _, diff := range diffs {
			switch diff.Type {
			case diffmatchpatch.DiffInsert:
				fmt.Fprint(writer, rc.paint(color.FgGreen, diff.Text))
			case diffmatchpatch.DiffDelete:
				fmt.Fprint(writer, rc.paint(color.FgRed, diff.Text))
			case diffmatchpatch.DiffEqual:
				fmt.Fprint(writer, diff.Text)
			}
		}

		fmt.Fprintln(writer)
	}
}

func (rc *RunCommand) printSummary(writer io.Writer, results []runner.Result) {
	changed := 0

	summary := table.NewWriter()
	summary.SetOutputMirror(writer)
	summary.AppendHeader(table.Row{"Recipe", "Unit", "Changed", "Duration"})

	for _, result := range results {
		status := "-"
		if result.Changed {
			status = rc.paint(color.FgGreen, "yes")
			changed++
		}

		summary.AppendRow(table.Row{
			result.RecipeID,
			result.Unit,
			status,
			result.Duration.Round(time.Microsecond),
		})
	}

	summary.Render()

	fmt.Fprintf(writer, "%s rewrites applied\n", humanize.Comma(int64(changed)))
}

func (rc *RunCommand) paint(attr color.Attribute, text string) string {
	if rc.noColor {
		return text
	}

	return color.New(attr).Sprint(text)
}

func (rc *RunCommand) isSilent(cmd *cobra.Command) bool {
	if rc.silent {
		return true
	}

	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return false
	}

	return quiet
}
