package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vvka-141/appgen/internal/logging"
	"github.com/vvka-141/appgen/internal/services"
	"github.com/vvka-141/appgen/internal/watch"
	"github.com/vvka-141/appgen/pkg/appgen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compile a specification and write the schema",
	Long: `Generate compiles the specification and writes the artifacts into --out:

  schema.sql             CREATE TABLE statements in dependency order
  <package>/*.go         Go scaffold (models, value objects, service interfaces)
  appgen.manifest.yaml   checksums, schema identity and diagnostics

Nothing is written when the compiler reports errors, unless --tolerate-errors
is set. Policies default to the values in appgen.yaml next to the spec;
flags override them.

Examples:
  # Schema only
  appgen generate --spec api.yaml --out build

  # Schema and Go scaffold, tolerating reference cycles
  appgen generate --spec api.yaml --out build --mode all --cycles defer

  # Regenerate on every save
  appgen generate --spec api.yaml --out build --watch`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

type generateFlagValues struct {
	spec, out  string
	mode       string
	pkg        string
	schemaFile string
	noManifest bool
	watch      bool
	json       bool
	compile    compileFlagValues
}

var generateFlags generateFlagValues

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateFlags.spec, "spec", "", "Path to the JSON or YAML specification (required)")
	generateCmd.Flags().StringVar(&generateFlags.out, "out", "", "Output directory (required, created if missing)")
	generateCmd.Flags().StringVar(&generateFlags.mode, "mode", string(appgen.ModeSchema), "Artifacts to emit: schema|scaffold|all")
	generateCmd.Flags().StringVar(&generateFlags.pkg, "package", "",
		"Go package name for the scaffold (default: derived from x-ddd.boundedContext)")
	generateCmd.Flags().StringVar(&generateFlags.schemaFile, "schema-file", appgen.DefaultSchemaFile, "File name of the emitted DDL")
	generateCmd.Flags().BoolVar(&generateFlags.noManifest, "no-manifest", false, "Do not write "+appgen.ManifestFile)
	generateCmd.Flags().BoolVar(&generateFlags.watch, "watch", false, "Regenerate whenever the specification changes")
	generateCmd.Flags().BoolVar(&generateFlags.json, "json", false, "Print a JSON report to stdout")
	registerCompileFlags(generateCmd, &generateFlags.compile)
}

// buildGenerateConfig merges flags with appgen.yaml.
func buildGenerateConfig(cmd *cobra.Command) (appgen.GenerateConfig, error) {
	projectCfg, err := loadProjectConfig(newFileSystem(), generateFlags.spec)
	if err != nil {
		return appgen.GenerateConfig{}, err
	}

	settings, err := resolveCompileSettings(cmd, &generateFlags.compile, projectCfg)
	if err != nil {
		return appgen.GenerateConfig{}, err
	}
	mode, err := appgen.ParseMode(generateFlags.mode)
	if err != nil {
		return appgen.GenerateConfig{}, err
	}

	cfg := appgen.GenerateConfig{
		CompileSettings: settings,
		SpecPath:        generateFlags.spec,
		OutDir:          generateFlags.out,
		Mode:            mode,
		SchemaFile:      generateFlags.schemaFile,
		Package:         generateFlags.pkg,
		WriteManifest:   !generateFlags.noManifest,
	}
	if projectCfg != nil {
		cfg.SchemaFile = pick(cmd, "schema-file", generateFlags.schemaFile, projectCfg.Output.SchemaFile)
		cfg.Package = pick(cmd, "package", generateFlags.pkg, projectCfg.Scaffold.Package)
		if !cmd.Flags().Changed("no-manifest") {
			cfg.WriteManifest = projectCfg.WriteManifest()
		}
	}
	return cfg, cfg.Validate()
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generateFlags.spec == "" {
		return missingFlag(cmd, "spec")
	}
	if generateFlags.out == "" {
		return missingFlag(cmd, "out")
	}

	cfg, err := buildGenerateConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	svc := services.NewGeneratorService(newFileSystem(), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generate := func(ctx context.Context) error {
		outcome, err := svc.Generate(ctx, cfg)
		if perr := printOutcome(cmd, outcome, generateFlags.json); perr != nil {
			return perr
		}
		if err == nil {
			for _, p := range outcome.Written {
				logger.Verbose("wrote %s", p)
			}
		}
		return err
	}

	err = generate(ctx)
	if !generateFlags.watch {
		return err
	}
	if err != nil {
		if errors.Is(err, appgen.ErrInvalidConfig) {
			return err
		}
		logger.Error("%v", err)
	}
	return watch.New(cfg.SpecPath, logger, generate).Run(ctx)
}
