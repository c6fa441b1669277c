package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vvka-141/appgen/internal/logging"
	"github.com/vvka-141/appgen/internal/services"
	"github.com/vvka-141/appgen/pkg/appgen"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compile a specification and report diagnostics without writing files",
	Long: `Check runs the full compiler, prints every diagnostic, and executes the
CREATE TABLE statements against a throwaway in-memory SQLite database to catch
DDL the compiler cannot validate on its own.

Examples:
  appgen check --spec api.yaml
  appgen check --spec api.yaml --unresolved warn --json`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

type checkFlagValues struct {
	spec    string
	json    bool
	compile compileFlagValues
}

var checkFlags checkFlagValues

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkFlags.spec, "spec", "", "Path to the JSON or YAML specification (required)")
	checkCmd.Flags().BoolVar(&checkFlags.json, "json", false, "Print a JSON report to stdout")
	registerCompileFlags(checkCmd, &checkFlags.compile)
}

func buildCheckConfig(cmd *cobra.Command) (appgen.CheckConfig, error) {
	projectCfg, err := loadProjectConfig(newFileSystem(), checkFlags.spec)
	if err != nil {
		return appgen.CheckConfig{}, err
	}
	settings, err := resolveCompileSettings(cmd, &checkFlags.compile, projectCfg)
	if err != nil {
		return appgen.CheckConfig{}, err
	}
	cfg := appgen.CheckConfig{CompileSettings: settings, SpecPath: checkFlags.spec}
	return cfg, cfg.Validate()
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkFlags.spec == "" {
		return missingFlag(cmd, "spec")
	}

	cfg, err := buildCheckConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := services.NewGeneratorService(newFileSystem(), logging.NewConsoleLogger(getVerboseFlag(cmd)))
	outcome, err := svc.Check(ctx, cfg)
	if perr := printOutcome(cmd, outcome, checkFlags.json); perr != nil {
		return perr
	}
	return err
}
