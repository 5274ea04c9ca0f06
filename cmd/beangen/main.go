// beangen compiles a schema model document into Go bean types.
//
//	beangen generate po.yaml -o ./gen --base example.com/po
//	beangen check po.yaml
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/syssam/beangen"
	"github.com/syssam/beangen/compiler/gen"
	"github.com/syssam/beangen/compiler/gen/emit"
	"github.com/syssam/beangen/compiler/gen/field"
	"github.com/syssam/beangen/compiler/load"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// flags holds the command line flags shared by generate and check.
type flags struct {
	config    string
	output    string
	base      string
	structure string
	strategy  string
	manifest  bool
	watch     bool
	verbose   bool
	workers   int
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "beangen",
		Short: "Generate Go bean types from a schema model",
		Long: `beangen reads a model document (YAML or JSON) describing classes,
enumerations and elements derived from a schema, and writes one Go
package per target package: bean structs or interface/implementation
pairs, enum types, element wrappers and object factories.`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	var f flags
	generateCmd := &cobra.Command{
		Use:   "generate <model>",
		Short: "Compile a model and write the generated packages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], &f)
		},
	}
	generateCmd.Flags().StringVarP(&f.output, "output", "o", "", "Output directory (default: gen)")
	generateCmd.Flags().StringVar(&f.base, "base", "", "Import path prefix mapped onto the output directory")
	generateCmd.Flags().BoolVar(&f.manifest, "manifest", false, "Write a binary manifest of the generated packages")
	generateCmd.Flags().BoolVar(&f.watch, "watch", false, "Regenerate every time the model changes")
	generateCmd.Flags().IntVar(&f.workers, "workers", 0, "Parallel file writers (default: GOMAXPROCS)")

	checkCmd := &cobra.Command{
		Use:   "check <model>",
		Short: "Compile a model and print its diagnostics without writing files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], &f)
		},
	}

	for _, c := range []*cobra.Command{generateCmd, checkCmd} {
		c.Flags().StringVar(&f.config, "config", DefaultSettingsFile, "Settings file")
		c.Flags().StringVar(&f.structure, "structure", "", "Class structure: bean|interface")
		c.Flags().StringVar(&f.strategy, "strategy", "", "Default field strategy: default|single|list|isset")
		c.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Log compiler phases")
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the beangen version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "beangen %s\n", beangen.Version)
		},
	}

	rootCmd.AddCommand(generateCmd, checkCmd, versionCmd)
	return rootCmd
}

// newLogger returns a text logger writing to w.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// job is one compile of a model file with resolved settings.
type job struct {
	model    string
	settings *Settings
	flags    *flags
	log      *slog.Logger
	sink     gen.Sink
}

func newJob(cmd *cobra.Command, model string, f *flags) (*job, error) {
	settings, err := LoadSettings(f.config)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &Settings{}
	}
	// Explicit flags override the settings file.
	fs := cmd.Flags()
	if fs.Changed("output") {
		settings.Output = f.output
	}
	if fs.Changed("base") {
		settings.Base = f.base
	}
	if fs.Changed("structure") {
		settings.Structure = f.structure
	}
	if fs.Changed("strategy") {
		settings.Strategy = f.strategy
	}
	if fs.Changed("workers") {
		settings.Workers = f.workers
	}
	if f.manifest {
		settings.Features = append(settings.Features, gen.FeatureManifest.Name)
	}
	if settings.Output == "" {
		settings.Output = "gen"
	}
	return &job{
		model:    model,
		settings: settings,
		flags:    f,
		log:      newLogger(cmd.ErrOrStderr(), f.verbose),
	}, nil
}

// compile loads and compiles the model. The outline is returned together
// with a *gen.CompileError when only recoverable diagnostics were reported.
func (j *job) compile(run uuid.UUID) (*gen.Outline, error) {
	log := j.log.With("run", run.String())
	m, err := load.ReadFile(j.model)
	if err != nil {
		return nil, err
	}
	renderers, err := field.Registry(j.settings.Strategy)
	if err != nil {
		return nil, err
	}
	opts, err := j.settings.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		gen.WithRenderers(renderers),
		gen.WithLogger(log),
		gen.WithTarget(j.settings.Output),
	)
	if j.sink != nil {
		opts = append(opts, gen.WithSink(j.sink))
	}
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return gen.Compile(m, cfg)
}

// generate compiles the model and writes the output. Files are written
// even when recoverable diagnostics were reported; the compile error is
// still returned.
func (j *job) generate(ctx context.Context) error {
	run := uuid.New()
	out, cerr := j.compile(run)
	if out == nil {
		return cerr
	}
	g := emit.NewGenerator(out, j.settings.Output).
		WithBase(j.settings.Base).
		WithWorkers(j.settings.Workers).
		WithRunID(run).
		WithLogger(j.log.With("run", run.String()))
	if err := g.Generate(ctx); err != nil {
		return err
	}
	return cerr
}

func runGenerate(cmd *cobra.Command, model string, f *flags) error {
	j, err := newJob(cmd, model, f)
	if err != nil {
		return err
	}
	err = j.generate(cmd.Context())
	if !f.watch {
		return err
	}
	if err != nil {
		j.log.Error("generate", "error", err)
	}
	return watch(cmd.Context(), model, j.log, func() error {
		return j.generate(cmd.Context())
	})
}

func runCheck(cmd *cobra.Command, model string, f *flags) error {
	j, err := newJob(cmd, model, f)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	j.sink = gen.SinkFunc(func(d gen.Diagnostic) {
		fmt.Fprintln(w, d.String())
	})
	out, err := j.compile(uuid.New())
	if out != nil {
		for _, p := range out.Packages() {
			fmt.Fprintf(w, "%s: %d classes, %d enums, %d elements\n",
				p.Path(), len(p.Classes()), len(p.Enums()), len(p.Elements()))
		}
	}
	return err
}
