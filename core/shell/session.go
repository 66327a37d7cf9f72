package shell

import (
	"fmt"
	"io"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/josephlewis42/minish/commands"
	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/history"
	"github.com/josephlewis42/minish/core/jobs"
	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/vos"
	"github.com/josephlewis42/minish/errors"
)

// DefaultMaxLoopIterations bounds while loops when the session sets no cap.
const DefaultMaxLoopIterations = 1000

// Session holds the state shared by every command of one shell: the stores,
// the virtual OS and the output streams. A Session is safe for use by the
// foreground and its background jobs at the same time.
type Session struct {
	Env       *vos.OverlayEnv
	Aliases   *AliasTable
	Functions *FunctionTable
	History   *history.Log
	Jobs      *jobs.Controller

	OS  *commands.OS
	Log *logger.Logger

	// MaxLoopIterations is the number of rounds after which a while loop
	// fails.
	MaxLoopIterations int
}

// Options configure a new session.
type Options struct {
	// Fs is the filesystem builtins operate on, it defaults to an in-memory
	// one.
	Fs afero.Fs
	// Dir is the initial working directory.
	Dir string
	// Inherited is the environment the session starts from.
	Inherited vos.Inherited

	Stdout io.Writer
	Stderr io.Writer

	// Config supplies store sizes, limits, startup aliases and variables.
	// Nil uses the built-in configuration.
	Config *config.Configuration

	Verbose bool
	Color   bool
}

// NewSession creates a session with empty stores seeded from the
// configuration.
func NewSession(opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewMemMapFs()
	}
	dir := opts.Dir
	if dir == "" {
		dir = "/"
	}

	log := logger.New(opts.Stdout, opts.Stderr)
	log.Verbose = opts.Verbose
	log.Color = opts.Color

	env := vos.NewOverlayEnv(opts.Inherited)

	s := &Session{
		Env:       env,
		Aliases:   NewAliasTable(),
		Functions: NewFunctionTable(),
		History:   history.New(cfg.HistorySize),
		Jobs:      jobs.NewController(cfg.MaxBackgroundJobs),
		OS: &commands.OS{
			Fs:                 vos.NewWorkingDirFs(fs, dir),
			Env:                env,
			Log:                log,
			CopyBytesPerSecond: cfg.CopyBytesPerSecond,
		},
		Log:               log,
		MaxLoopIterations: cfg.MaxLoopIterations,
	}
	s.Jobs.OnError = func(_ *jobs.Job, err error) {
		log.Errf(logger.Red, "Background job failed: %v", err)
	}

	for _, name := range sortedKeys(cfg.Aliases) {
		s.Aliases.Set(name, cfg.Aliases[name])
	}
	for _, name := range sortedKeys(cfg.Env) {
		if err := env.Setenv(name, cfg.Env[name]); err != nil {
			return nil, err
		}
	}
	if err := s.LoadEnvFiles(cfg.EnvFiles...); err != nil {
		return nil, err
	}

	return s, nil
}

// LoadEnvFiles reads dotenv files from the session filesystem into the
// session environment. Later files win.
func (s *Session) LoadEnvFiles(paths ...string) error {
	for _, path := range paths {
		fd, err := s.OS.Fs.Open(path)
		if err != nil {
			return errors.IO(err)
		}

		vars, err := godotenv.Parse(fd)
		fd.Close()
		if err != nil {
			return errors.IO(fmt.Errorf("%s: %w", path, err))
		}

		for _, name := range sortedKeys(vars) {
			if err := s.Env.Setenv(name, vars[name]); err != nil {
				return err
			}
		}
		s.Log.Debugf("Loaded %d variables from %s", len(vars), path)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
