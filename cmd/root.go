package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/abiosoft/readline"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/repl"
	"github.com/josephlewis42/minish/core/shell"
	"github.com/josephlewis42/minish/core/vos"
	"github.com/josephlewis42/minish/errors"
)

var (
	cfgPath  string
	debug    bool
	envFiles []string
)

// loadConfig reads the --config file. The default location may be missing,
// an explicitly named one may not.
func loadConfig(cmd *cobra.Command, fs afero.Fs) (*config.Configuration, error) {
	if !cmd.Flags().Changed("config") {
		return config.LoadOrDefault(fs, cfgPath)
	}

	configuration, err := config.Load(fs, cfgPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}
	return configuration, err
}

// rootCmd runs a script when given one, otherwise an interactive session.
var rootCmd = &cobra.Command{
	Use:   "minish [script]",
	Short: "A minimal builtin-only shell",
	Long: `A small command interpreter with builtin file commands, pipelines,
redirects, control blocks, functions and background jobs.

Without a script argument commands are read interactively, or from standard
input when it is not a terminal.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		fs := afero.NewOsFs()
		configuration, err := loadConfig(cmd, fs)
		if err != nil {
			return err
		}
		configuration.EnvFiles = append(configuration.EnvFiles, envFiles...)

		dir, err := os.Getwd()
		if err != nil {
			return err
		}

		session, err := shell.NewSession(shell.Options{
			Fs:        fs,
			Dir:       dir,
			Inherited: vos.ProcessEnv{},
			Stdout:    cmd.OutOrStdout(),
			Stderr:    cmd.ErrOrStderr(),
			Config:    configuration,
			Verbose:   debug,
			Color:     isTerminal(os.Stderr),
		})
		if err != nil {
			return err
		}

		runner := &repl.Runner{
			Session:     session,
			Fs:          fs,
			HistoryFile: configuration.HistoryFile,
			Greeting:    configuration.Greeting,
		}

		ctx := cmd.Context()
		if len(args) == 1 || !isTerminal(os.Stdin) {
			var stop context.CancelFunc
			ctx, stop = signal.NotifyContext(ctx, os.Interrupt)
			defer stop()
		}

		switch {
		case len(args) == 1:
			fd, err := fs.Open(args[0])
			if err != nil {
				err = errors.IO(err)
				session.Log.Error(err)
				return err
			}
			defer fd.Close()
			return runScript(ctx, runner, fd)

		case !isTerminal(os.Stdin):
			return runScript(ctx, runner, cmd.InOrStdin())
		}

		rl, err := readline.NewEx(&readline.Config{
			Prompt:          repl.PromptPrimary,
			InterruptPrompt: "^C",
			Stdout:          cmd.OutOrStdout(),
			Stderr:          cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		defer rl.Close()

		// An interrupt while a command runs stops only that command.
		runner.CommandContext = func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt)
		}
		return runner.Interactive(ctx, rl)
	},
}

// runScript runs in, reporting an unterminated block. Errors of individual
// commands were already printed by the runner.
func runScript(ctx context.Context, runner *repl.Runner, in io.Reader) error {
	err := runner.Script(ctx, in)

	var incomplete *errors.IncompleteBlockError
	if errors.As(err, &incomplete) {
		runner.Session.Log.Error(err)
	}
	return err
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// The process exits with the code of the returned error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	// Shell errors have already been reported by the session.
	var shellErr errors.ShellError
	if err != nil && !errors.As(err, &shellErr) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	os.Exit(errors.Code(err))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.ConfigurationName, "config path")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "trace parsing and evaluation on stderr")
	rootCmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "dotenv file to load into the environment, may be repeated")
}
