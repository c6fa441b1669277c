package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/appgen/internal/config"
	"github.com/vvka-141/appgen/internal/files/filesystem"
	"github.com/vvka-141/appgen/pkg/appgen"
)

// newFileSystem is replaced in tests.
var newFileSystem = func() filesystem.FileSystemProvider {
	return filesystem.NewOSFileSystem()
}

// compileFlagValues are the policy flags shared by generate, check and apply.
type compileFlagValues struct {
	unresolved     string
	cycles         string
	tolerateErrors bool
}

func registerCompileFlags(cmd *cobra.Command, v *compileFlagValues) {
	cmd.Flags().StringVar(&v.unresolved, "unresolved", string(appgen.UnresolvedError),
		"How to report foreign keys whose target is missing or has no primary key: error|warn")
	cmd.Flags().StringVar(&v.cycles, "cycles", string(appgen.CycleReject),
		"How to handle reference cycles between tables: reject|defer\n"+
			"defer creates every table first and attaches foreign keys with ALTER TABLE")
	cmd.Flags().BoolVar(&v.tolerateErrors, "tolerate-errors", false,
		"Emit output even when the compiler reports errors")
}

// missingFlag prints the message and usage, and returns a usage error.
func missingFlag(cmd *cobra.Command, name string) error {
	msg := fmt.Sprintf("missing required flag: --%s", name)
	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n\n%s", msg, cmd.UsageString())
	cmd.SilenceErrors = true
	return fmt.Errorf("%w: %s", appgen.ErrUsage, msg)
}

// loadProjectConfig reads appgen.yaml next to the spec. A missing file is not
// an error and yields nil.
func loadProjectConfig(fsProvider filesystem.FileSystemProvider, specPath string) (*config.ProjectConfig, error) {
	cfg, err := config.Load(fsProvider, filepath.Dir(specPath))
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// pick returns the flag value when it was set on the command line, otherwise
// the project value when present, otherwise the flag default.
func pick(cmd *cobra.Command, flag, flagValue, projectValue string) string {
	if cmd.Flags().Changed(flag) || projectValue == "" {
		return flagValue
	}
	return projectValue
}

// resolveCompileSettings applies the precedence flag > appgen.yaml > default.
func resolveCompileSettings(cmd *cobra.Command, v *compileFlagValues, projectCfg *config.ProjectConfig) (appgen.CompileSettings, error) {
	if projectCfg == nil {
		projectCfg = &config.ProjectConfig{}
	}

	unresolved, err := appgen.ParseUnresolvedPolicy(pick(cmd, "unresolved", v.unresolved, projectCfg.Policy.Unresolved))
	if err != nil {
		return appgen.CompileSettings{}, err
	}
	cycles, err := appgen.ParseCyclePolicy(pick(cmd, "cycles", v.cycles, projectCfg.Policy.Cycles))
	if err != nil {
		return appgen.CompileSettings{}, err
	}

	tolerate := v.tolerateErrors
	if !cmd.Flags().Changed("tolerate-errors") {
		tolerate = tolerate || projectCfg.Policy.TolerateErrors
	}

	return appgen.CompileSettings{
		Unresolved:     unresolved,
		Cycles:         cycles,
		TolerateErrors: tolerate,
		Types:          projectCfg.Types,
	}, nil
}
