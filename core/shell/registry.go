package shell

import (
	"fmt"
	"strconv"
	"strings"

	getopt "github.com/pborman/getopt/v2"

	"github.com/josephlewis42/minish/commands"
	"github.com/josephlewis42/minish/errors"
)

// Builtin is an entry of the builtin registry.
type Builtin struct {
	commands.SimpleCommand

	parse func(b *Builtin, args []string) (Command, error)
}

var (
	builtins     []*Builtin
	builtinIndex = map[string]*Builtin{}
)

func addBuiltin(use, short string, minArgs, maxArgs int, parse func(b *Builtin, args []string) (Command, error)) {
	b := &Builtin{
		SimpleCommand: commands.SimpleCommand{
			Use:     use,
			Short:   short,
			MinArgs: minArgs,
			MaxArgs: maxArgs,
		},
		parse: parse,
	}
	if _, ok := builtinIndex[b.Name()]; ok {
		panic(fmt.Sprintf("duplicate builtin %q", b.Name()))
	}
	if maxArgs != commands.Unbounded && minArgs > maxArgs {
		panic(fmt.Sprintf("builtin %q: min args %d > max args %d", b.Name(), minArgs, maxArgs))
	}
	builtins = append(builtins, b)
	builtinIndex[b.Name()] = b
}

func init() {
	const unbounded = commands.Unbounded

	addBuiltin("help", "Show this help message", 0, 0, parseNoArgs(&Help{}))
	addBuiltin("echo <message...>", "Display message", 1, unbounded, parseEcho)
	addBuiltin("cat <filename>", "Display file contents", 0, 1, parseCat)
	addBuiltin("write <filename> <content...>", "Write content to file", 2, unbounded, parseWrite)
	addBuiltin("ls", "List directory contents", 0, 0, parseNoArgs(&Ls{}))
	addBuiltin("repeat <count> <message...>", "Repeat message count times", 2, unbounded, parseRepeat)
	addBuiltin("exit", "Exit the program", 0, 0, parseNoArgs(&Exit{}))
	addBuiltin("cd <directory>", "Change directory", 0, 1, parseCd)
	addBuiltin("quit", "Exit the program", 0, 0, parseNoArgs(&Exit{}))
	addBuiltin("pwd", "output the current working directory", 0, 0, parseNoArgs(&Pwd{}))
	addBuiltin("rm <file>", "Remove files", 1, 2, parseRm)
	addBuiltin("cp <source> <destination>", "Copy files", 2, 3, parseCp)
	addBuiltin("mv <source> <destination>", "Move/rename files or directories", 2, 2, parseMv)
	addBuiltin("mkdir <directory>", "Make directories", 1, 2, parseMkdir)
	addBuiltin("grep <pattern> <file...>", "Search for pattern in files", 1, unbounded, parseGrep)
	addBuiltin("alias [name=command]", "Set or show command aliases", 0, 1, parseAlias)
	addBuiltin("unalias <name>", "Remove a command alias", 1, 1, parseUnalias)
	addBuiltin("find [directory] <filename>", "Find files by name", 1, 2, parseFind)
	addBuiltin("sleep <seconds>", "Sleep for specified seconds", 1, 1, parseSleep)
	addBuiltin("version", "Show version information", 0, 0, parseNoArgs(&Version{}))
	addBuiltin("jobs", "List background jobs", 0, 0, parseNoArgs(&Jobs{}))
	addBuiltin("fg [job_id]", "Show job status", 0, 1, parseFg)
	addBuiltin("env [VAR[=value]]", "Show or set environment variables", 0, 1, parseEnv)
	addBuiltin("history [search <query>]", "Show command history or search", 0, unbounded, parseHistory)
	addBuiltin("type <name>", "Describe how a name would be run", 1, 1, parseType)
}

// Builtins returns the registry in display order.
func Builtins() []commands.SimpleCommand {
	out := make([]commands.SimpleCommand, len(builtins))
	for i, b := range builtins {
		out[i] = b.SimpleCommand
	}
	return out
}

// LookupBuiltin finds a registry entry by name.
func LookupBuiltin(name string) (*Builtin, bool) {
	b, ok := builtinIndex[name]
	return b, ok
}

// parseArgs validates the arity of args then builds the command.
func (b *Builtin) parseArgs(args []string) (Command, error) {
	if err := b.CheckArity(args); err != nil {
		return nil, err
	}
	return b.parse(b, args)
}

// HelpText renders the output of the help builtin.
func HelpText() string {
	width := 0
	for _, b := range builtins {
		if len(b.Use) > width {
			width = len(b.Use)
		}
	}

	lines := []string{"Available commands:"}
	for _, b := range builtins {
		lines = append(lines, fmt.Sprintf("  %-*s - %s", width, b.Use, b.Short))
	}
	lines = append(lines,
		"Options:",
		"  --debug    Enable debug mode with detailed logging",
	)
	return strings.Join(lines, "\n")
}

func parseNoArgs(cmd Command) func(*Builtin, []string) (Command, error) {
	return func(*Builtin, []string) (Command, error) {
		return cmd, nil
	}
}

func parseEcho(_ *Builtin, args []string) (Command, error) {
	return &Echo{Message: strings.Join(args, " ")}, nil
}

func parseCat(_ *Builtin, args []string) (Command, error) {
	if len(args) == 0 {
		return &Cat{}, nil
	}
	return &Cat{File: args[0]}, nil
}

func parseWrite(_ *Builtin, args []string) (Command, error) {
	return &Write{File: args[0], Content: strings.Join(args[1:], " ")}, nil
}

func parseRepeat(_ *Builtin, args []string) (Command, error) {
	count, err := strconv.ParseInt(args[0], 10, 32)
	switch {
	case err != nil:
		return nil, errors.Parsef("%s isn't a valid number", args[0])
	case count <= 0:
		return nil, errors.Parsef("count must be positive")
	}
	return &Repeat{Count: int(count), Message: strings.Join(args[1:], " ")}, nil
}

func parseCd(_ *Builtin, args []string) (Command, error) {
	if len(args) == 0 {
		return &Cd{Path: commands.HomeDir}, nil
	}
	return &Cd{Path: args[0]}, nil
}

// positional checks the number of arguments left after flag parsing.
func (b *Builtin) positional(args []string, n int) error {
	if len(args) != n {
		return errors.InvalidArgumentf("%s expects %d argument(s) besides options\nUsage: %s", b.Name(), n, b.Use)
	}
	return nil
}

func parseMkdir(b *Builtin, args []string) (Command, error) {
	var parents *bool
	rest, err := b.ParseFlags(args, func(flags *getopt.Set) {
		parents = flags.Bool('p', "make parent directories as needed")
	})
	if err != nil {
		return nil, err
	}
	if err := b.positional(rest, 1); err != nil {
		return nil, err
	}
	return &Mkdir{Path: rest[0], Parents: *parents}, nil
}

func parseRm(b *Builtin, args []string) (Command, error) {
	var recursive, force *bool
	rest, err := b.ParseFlags(args, func(flags *getopt.Set) {
		recursive = flags.Bool('r', "remove directories and their contents recursively")
		force = flags.Bool('f', "ignore nonexistent files")
	})
	if err != nil {
		return nil, err
	}
	if err := b.positional(rest, 1); err != nil {
		return nil, err
	}
	return &Rm{Path: rest[0], Recursive: *recursive, Force: *force}, nil
}

func parseCp(b *Builtin, args []string) (Command, error) {
	var recursive *bool
	rest, err := b.ParseFlags(args, func(flags *getopt.Set) {
		recursive = flags.Bool('r', "copy directories recursively")
	})
	if err != nil {
		return nil, err
	}
	if err := b.positional(rest, 2); err != nil {
		return nil, err
	}
	return &Cp{Source: rest[0], Destination: rest[1], Recursive: *recursive}, nil
}

func parseMv(_ *Builtin, args []string) (Command, error) {
	return &Mv{Source: args[0], Destination: args[1]}, nil
}

func parseFind(_ *Builtin, args []string) (Command, error) {
	if len(args) == 1 {
		return &Find{Pattern: args[0]}, nil
	}
	return &Find{Dir: args[0], Pattern: args[1]}, nil
}

func parseGrep(_ *Builtin, args []string) (Command, error) {
	return &Grep{Pattern: args[0], Files: append([]string(nil), args[1:]...)}, nil
}

func parseAlias(_ *Builtin, args []string) (Command, error) {
	if len(args) == 0 {
		return &Alias{}, nil
	}
	name, command, ok := strings.Cut(args[0], "=")
	if !ok {
		return nil, errors.Parsef("alias needs =")
	}
	return &Alias{Name: name, Command: command}, nil
}

func parseUnalias(_ *Builtin, args []string) (Command, error) {
	return &Unalias{Name: args[0]}, nil
}

func parseSleep(_ *Builtin, args []string) (Command, error) {
	seconds, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return nil, errors.Parsef("'%s' is not a valid number", args[0])
	}
	return &Sleep{Seconds: seconds}, nil
}

func parseFg(_ *Builtin, args []string) (Command, error) {
	if len(args) == 0 {
		return &Fg{}, nil
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return nil, errors.Parsef("'%s' is not a valid number", args[0])
	}
	id32 := uint32(id)
	return &Fg{ID: &id32}, nil
}

func parseEnv(_ *Builtin, args []string) (Command, error) {
	if len(args) == 0 {
		return &Env{Action: EnvList}, nil
	}
	if name, value, ok := strings.Cut(args[0], "="); ok {
		return &Env{Action: EnvSet, Name: name, Value: value}, nil
	}
	return &Env{Action: EnvShow, Name: args[0]}, nil
}

func parseHistory(b *Builtin, args []string) (Command, error) {
	switch {
	case len(args) == 0:
		return &History{Action: HistoryList}, nil

	case args[0] == "search":
		if len(args) == 1 {
			return nil, errors.InvalidArgumentf("history search requires a query\nUsage: %s", b.Use)
		}
		return &History{Action: HistorySearch, Query: strings.Join(args[1:], " ")}, nil

	case len(args) == 1:
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return nil, errors.Parsef("history: %s: numeric argument required", args[0])
		}
		return &History{Action: HistoryExecute, Index: n}, nil

	default:
		return nil, errors.InvalidArgumentf("history: too many arguments\nUsage: %s", b.Use)
	}
}

func parseType(_ *Builtin, args []string) (Command, error) {
	return &Type{Name: args[0]}, nil
}
