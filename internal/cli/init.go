package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/appgen/internal/config"
	"github.com/vvka-141/appgen/internal/scaffold"
	"github.com/vvka-141/appgen/internal/tui"
	"github.com/vvka-141/appgen/internal/tui/wizards"
	"github.com/vvka-141/appgen/pkg/appgen"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write an appgen.yaml with compiler policies",
	Long: `Init writes appgen.yaml into dir (default: current directory).

On a terminal an interactive wizard asks for the policies. In scripts, CI, or
with --no-input, the defaults are combined with the flags given.

Examples:
  appgen init
  appgen init ./api --no-input --cycles defer --package billing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

type initFlagValues struct {
	force      bool
	noInput    bool
	unresolved string
	cycles     string
	pkg        string
}

var initFlags initFlagValues

// runWizard is replaced in tests.
var runWizard = wizards.RunInitWizard

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite an existing "+appgen.ConfigFileName)
	initCmd.Flags().BoolVar(&initFlags.noInput, "no-input", false, "Never prompt; use defaults and flags")
	initCmd.Flags().StringVar(&initFlags.unresolved, "unresolved", string(appgen.UnresolvedError), "Unresolved reference policy: error|warn")
	initCmd.Flags().StringVar(&initFlags.cycles, "cycles", string(appgen.CycleReject), "Reference cycle policy: reject|defer")
	initCmd.Flags().StringVar(&initFlags.pkg, "package", "", "Scaffold package name")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	cfg := config.Default()
	cfg.Policy.Unresolved = initFlags.unresolved
	cfg.Policy.Cycles = initFlags.cycles
	if initFlags.pkg != "" {
		cfg.Scaffold.Package = scaffold.PackageName(initFlags.pkg)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !initFlags.noInput && tui.IsInteractive() {
		result, err := runWizard(cfg)
		if err != nil {
			return fmt.Errorf("wizard failed: %w", err)
		}
		if result.Cancelled {
			fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
			return nil
		}
		cfg = result.Config
	}

	path, err := config.Save(newFileSystem(), dir, cfg, initFlags.force)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s Wrote %s\n", tui.SymbolCheck, path)
	return nil
}
