package cmd

import (
	"archive/tar"
	"bytes"
	"context"
	"crypto/subtle"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/abiosoft/readline"
	"github.com/gliderlabs/ssh"
	"github.com/spf13/afero"
	"github.com/spf13/afero/tarfs"
	"github.com/spf13/cobra"

	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/repl"
	"github.com/josephlewis42/minish/core/shell"
	"github.com/josephlewis42/minish/core/vos"
	"github.com/josephlewis42/minish/errors"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve shell sessions over SSH on a local port.",
	Long: `Each connection gets its own session over a fresh in-memory
filesystem. Nothing a client does reaches the host.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		os.Stdin.Close()
		cmd.SilenceUsage = true
		log.Println("Initializing server...")

		configuration, err := loadConfig(cmd, afero.NewOsFs())
		if err != nil {
			return err
		}

		server, err := newServer(configuration)
		if err != nil {
			return err
		}

		go func() {
			log.Printf("- Starting SSH server on %s\n", server.Addr)
			if err := server.ListenAndServe(); err != nil && err != ssh.ErrServerClosed {
				log.Fatal(err)
			}
		}()

		sigs := make(chan os.Signal, 1)

		log.Println("- Starting interrupt handler")
		signal.Notify(sigs, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigs:
			log.Printf("Got signal %q, terminating...", sig)
		case <-cmd.Context().Done():
			log.Print("Interrupted, terminating...")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server shutdown failed: %s", err)
		}
		log.Print("Server exited")
		return nil
	},
}

func newServer(configuration *config.Configuration) (*ssh.Server, error) {
	var rootImage []byte
	if tarPath := configuration.SSH.RootFsTar; tarPath != "" {
		data, err := os.ReadFile(tarPath)
		if err != nil {
			return nil, err
		}
		log.Printf("- Loaded root filesystem image %s", tarPath)
		rootImage = data
	}

	server := &ssh.Server{
		Addr: fmt.Sprintf(":%d", configuration.SSH.Port),
		Handler: func(s ssh.Session) {
			err := handleConnection(s, configuration, newConnectionFs(rootImage))
			if err != nil {
				log.Printf("Session for %s@%s ended: %v", s.User(), s.RemoteAddr(), err)
			}
			s.Exit(errors.Code(err))
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			if configuration.SSH.AllowAnyPassword {
				return true
			}
			return 1 == subtle.ConstantTimeCompare([]byte(password), []byte(configuration.SSH.Password))
		},
	}

	if keyPath := configuration.SSH.HostKeyFile; keyPath != "" {
		if err := server.SetOption(ssh.HostKeyFile(keyPath)); err != nil {
			return nil, err
		}
	}

	return server, nil
}

// newConnectionFs builds the filesystem of one connection: an in-memory
// layer over the root image, if there is one.
func newConnectionFs(rootImage []byte) afero.Fs {
	layer := afero.NewMemMapFs()
	if len(rootImage) == 0 {
		return layer
	}
	base := tarfs.New(tar.NewReader(bytes.NewReader(rootImage)))
	return afero.NewCopyOnWriteFs(base, layer)
}

// handleConnection runs one session for s over fs. A command given on the
// ssh command line is run as a script, otherwise the session is interactive.
func handleConnection(s ssh.Session, configuration *config.Configuration, fs afero.Fs) error {
	log.Printf("Accepted session for %s@%s", s.User(), s.RemoteAddr())

	home := path.Join("/home", s.User())
	if ok, _ := afero.DirExists(fs, home); !ok {
		if err := fs.MkdirAll(home, 0755); err != nil {
			return err
		}
	}

	env := vos.NewMapEnvFromEnvList(s.Environ())
	env.Setenv("HOME", home)
	env.Setenv("USER", s.User())

	// Background jobs print while readline redraws the prompt.
	stdout := vos.NewSyncWriter(s)
	session, err := shell.NewSession(shell.Options{
		Fs:        fs,
		Dir:       home,
		Inherited: env,
		Stdout:    stdout,
		Stderr:    s.Stderr(),
		Config:    configuration,
	})
	if err != nil {
		return err
	}

	// History stays in memory, the filesystem goes away with the connection.
	runner := &repl.Runner{
		Session:  session,
		Greeting: configuration.Greeting,
	}

	if raw := s.RawCommand(); raw != "" {
		return runner.Script(s.Context(), strings.NewReader(raw))
	}

	rl, err := newReadline(s, stdout)
	if err != nil {
		return err
	}
	defer rl.Close()

	return runner.Interactive(s.Context(), rl)
}

func newReadline(s ssh.Session, stdout io.Writer) (*readline.Instance, error) {
	pty, winch, isPty := s.Pty()

	var windowWidth atomic.Int64
	windowWidth.Store(int64(pty.Window.Width))
	if isPty {
		go (func() {
			for window := range winch {
				windowWidth.Store(int64(window.Width))
			}
		})()
	}

	cfg := &readline.Config{
		Prompt: repl.PromptPrimary,
		Stdin:  readline.NewCancelableStdin(s),
		Stdout: stdout,
		Stderr: s.Stderr(),
		FuncGetWidth: func() int {
			return int(windowWidth.Load())
		},
		FuncIsTerminal: func() bool {
			return isPty
		},
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	return readline.NewEx(cfg)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
