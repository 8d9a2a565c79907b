package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mocsize/pkg/logging"
	"mocsize/pkg/version"
)

// GlobalIgnoreEnv names an optional ignore file applied to every project.
const GlobalIgnoreEnv = "MOC_SIZEIGNORE_GLOBAL"

// Env is the process state the commands depend on, captured once at startup.
type Env struct {
	WorkDir          string
	Stdout           io.Writer
	Stderr           io.Writer
	Color            bool // Stdout is a terminal and NO_COLOR is unset.
	GlobalIgnoreFile string
}

// EnvFromProcess snapshots the working directory, standard streams and environment.
func EnvFromProcess() (Env, error) {
	wd, err := os.Getwd()
	if err != nil {
		return Env{}, fmt.Errorf("failed to get current directory: %w", err)
	}
	_, noColor := os.LookupEnv("NO_COLOR")
	return Env{
		WorkDir:          wd,
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
		Color:            !noColor && term.IsTerminal(int(os.Stdout.Fd())),
		GlobalIgnoreFile: os.Getenv(GlobalIgnoreEnv),
	}, nil
}

// NewRootCmd builds the moc-size command tree for env.
func NewRootCmd(env Env) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   version.AppName + " [paths...]",
		Short: "Check the minified and compressed size of build output",
		Long: `moc-size measures the files matched by the given paths (directories, files or globs)
after minification and compression, and fails when the total exceeds --limit.

Without paths it falls back to the size-limit entry in package.json (or .size-limit.json,
.size-limit.yml, .size-limit.toml), and then to "dist".`,
		Example: `  moc-size
  moc-size dist --limit 50kb
  moc-size "dist/**/*.js" --preset app --limit "10 KB"`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(cmd.ErrOrStderr(), verbose, version.Get())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetOut(env.Stdout)
	rootCmd.SetErr(env.Stderr)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	addSizeFlags(rootCmd, env)
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command against the current process.
func Execute(ctx context.Context) error {
	env, err := EnvFromProcess()
	if err != nil {
		return err
	}
	return NewRootCmd(env).ExecuteContext(ctx)
}
