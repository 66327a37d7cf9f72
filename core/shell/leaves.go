package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/josephlewis42/minish/commands"
	"github.com/josephlewis42/minish/errors"
)

// Echo outputs its message.
type Echo struct {
	Message string
}

func (c *Echo) String() string { return words("echo", c.Message) }

func (c *Echo) expand(lookup LookupFunc) Command {
	return &Echo{Message: ExpandVariables(c.Message, lookup)}
}

func (c *Echo) Eval(_ context.Context, _ *Session, _ *string) (Result, error) {
	return Continue(commands.Echo(c.Message)), nil
}

// Cat outputs a file, or its input when it has one.
type Cat struct {
	File string
}

func (c *Cat) String() string { return words("cat", c.File) }

func (c *Cat) expand(lookup LookupFunc) Command {
	return &Cat{File: ExpandVariables(c.File, lookup)}
}

func (c *Cat) Eval(_ context.Context, s *Session, input *string) (Result, error) {
	out, err := s.OS.Cat(c.File, input)
	return Continue(out), err
}

// Write replaces the contents of a file.
type Write struct {
	File    string
	Content string
}

func (c *Write) String() string { return words("write", c.File, c.Content) }

func (c *Write) expand(lookup LookupFunc) Command {
	return &Write{File: ExpandVariables(c.File, lookup), Content: ExpandVariables(c.Content, lookup)}
}

func (c *Write) Eval(ctx context.Context, s *Session, _ *string) (Result, error) {
	msg, err := s.OS.Write(c.File, c.Content)
	if err != nil {
		return Result{}, err
	}
	s.emit(ctx, msg)
	return Continue(""), nil
}

// Ls lists the working directory.
type Ls struct{}

func (c *Ls) String() string { return "ls" }

func (c *Ls) Eval(_ context.Context, s *Session, _ *string) (Result, error) {
	out, err := s.OS.Ls()
	return Continue(out), err
}

// Cd changes the working directory.
type Cd struct {
	Path string
}

func (c *Cd) String() string { return words("cd", c.Path) }

func (c *Cd) expand(lookup LookupFunc) Command {
	return &Cd{Path: ExpandVariables(c.Path, lookup)}
}

func (c *Cd) Eval(_ context.Context, s *Session, _ *string) (Result, error) {
	return Continue(""), s.OS.Cd(c.Path)
}

// Pwd outputs the working directory.
type Pwd struct{}

func (c *Pwd) String() string { return "pwd" }

func (c *Pwd) Eval(_ context.Context, s *Session, _ *string) (Result, error) {
	return Continue(s.OS.Pwd()), nil
}

// Mkdir creates a directory.
type Mkdir struct {
	Path    string
	Parents bool
}

func (c *Mkdir) String() string {
	if c.Parents {
		return words("mkdir", "-p", c.Path)
	}
	return words("mkdir", c.Path)
}

func (c *Mkdir) expand(lookup LookupFunc) Command {
	return &Mkdir{Path: ExpandVariables(c.Path, lookup), Parents: c.Parents}
}

func (c *Mkdir) Eval(_ context.Context, s *Session, _ *string) (Result, error) {
	return Continue(""), s.OS.Mkdir(c.Path, c.Parents)
}

// Rm removes a file or directory.
type Rm struct {
	Path      string
	Recursive bool
	Force     bool
}

func (c *Rm) String() string {
	flags := ""
	if c.Recursive {
		flags += "r"
	}
	if c.Force {
		flags += "f"
	}
	if flags != "" {
		flags = "-" + flags
	}
	return words("rm", flags, c.Path)
}

func (c *Rm) expand(lookup LookupFunc) Command {
	out := *c
	out.Path = ExpandVariables(c.Path, lookup)
	return &out
}

func (c *Rm) Eval(_ context.Context, s *Session, _ *string) (Result, error) {
	return Continue(""), s.OS.Rm(c.Path, c.Recursive, c.Force)
}

// Cp copies a file or directory tree.
type Cp struct {
	Source      string
	Destination string
	Recursive   bool
}

func (c *Cp) String() string {
	if c.Recursive {
		return words("cp", "-r", c.Source, c.Destination)
	}
	return words("cp", c.Source, c.Destination)
}

func (c *Cp) expand(lookup LookupFunc) Command {
	return &Cp{
		Source:      ExpandVariables(c.Source, lookup),
		Destination: ExpandVariables(c.Destination, lookup),
		Recursive:   c.Recursive,
	}
}

func (c *Cp) Eval(_ context.Context, s *Session, _ *string) (Result, error) {
	return Continue(""), s.OS.Cp(c.Source, c.Destination, c.Recursive)
}

// Mv moves or renames a file or directory.
type Mv struct {
	Source      string
	Destination string
}

func (c *Mv) String() string { return words("mv", c.Source, c.Destination) }

func (c *Mv) expand(lookup LookupFunc) Command {
	return &Mv{Source: ExpandVariables(c.Source, lookup), Destination: ExpandVariables(c.Destination, lookup)}
}

func (c *Mv) Eval(_ context.Context, s *Session, _ *string) (Result, error) {
	return Continue(""), s.OS.Mv(c.Source, c.Destination)
}

// Find searches a directory tree by name.
type Find struct {
	// Dir is where the search starts, the working directory when empty.
	Dir     string
	Pattern string
}

func (c *Find) String() string { return words("find", c.Dir, c.Pattern) }

func (c *Find) expand(lookup LookupFunc) Command {
	return &Find{Dir: ExpandVariables(c.Dir, lookup), Pattern: ExpandVariables(c.Pattern, lookup)}
}

func (c *Find) Eval(_ context.Context, s *Session, _ *string) (Result, error) {
	out, err := s.OS.Find(c.Dir, c.Pattern)
	return Continue(out), err
}

// Grep searches files, or its input, for a regular expression.
type Grep struct {
	Pattern string
	Files   []string
}

func (c *Grep) String() string {
	return words(append([]string{"grep", c.Pattern}, c.Files...)...)
}

func (c *Grep) expand(lookup LookupFunc) Command {
	out := &Grep{Pattern: ExpandVariables(c.Pattern, lookup), Files: make([]string, len(c.Files))}
	for i, f := range c.Files {
		out.Files[i] = ExpandVariables(f, lookup)
	}
	return out
}

func (c *Grep) Eval(_ context.Context, s *Session, input *string) (Result, error) {
	out, err := s.OS.Grep(c.Pattern, c.Files, input)
	return Continue(out), err
}

// Alias defines an alias, or lists them all when Name is empty.
type Alias struct {
	Name    string
	Command string
}

func (c *Alias) String() string {
	if c.Name == "" {
		return "alias"
	}
	return fmt.Sprintf("alias %s=%s", c.Name, c.Command)
}

func (c *Alias) expand(lookup LookupFunc) Command {
	return &Alias{Name: ExpandVariables(c.Name, lookup), Command: ExpandVariables(c.Command, lookup)}
}

func (c *Alias) Eval(ctx context.Context, s *Session, _ *string) (Result, error) {
	if c.Name == "" {
		for _, a := range s.Aliases.All() {
			s.emit(ctx, fmt.Sprintf("%s = %s", a.Name, a.Command))
		}
		return Continue(""), nil
	}

	s.Aliases.Set(c.Name, c.Command)
	return Continue(""), nil
}

// Unalias removes an alias.
type Unalias struct {
	Name string
}

func (c *Unalias) String() string { return words("unalias", c.Name) }

func (c *Unalias) expand(lookup LookupFunc) Command {
	return &Unalias{Name: ExpandVariables(c.Name, lookup)}
}

func (c *Unalias) Eval(_ context.Context, s *Session, _ *string) (Result, error) {
	if !s.Aliases.Delete(c.Name) {
		return Result{}, errors.InvalidArgumentf("unalias: %s: not found", c.Name)
	}
	return Continue(""), nil
}

// Type describes what a name resolves to.
type Type struct {
	Name string
}

func (c *Type) String() string { return words("type", c.Name) }

func (c *Type) expand(lookup LookupFunc) Command {
	return &Type{Name: ExpandVariables(c.Name, lookup)}
}

func (c *Type) Eval(_ context.Context, s *Session, _ *string) (Result, error) {
	if command, ok := s.Aliases.Get(c.Name); ok && c.Name != "alias" {
		return Continue(fmt.Sprintf("%s is aliased to `%s'", c.Name, command)), nil
	}
	if _, ok := LookupBuiltin(c.Name); ok {
		return Continue(fmt.Sprintf("%s is a shell builtin", c.Name)), nil
	}
	if body, ok := s.Functions.Get(c.Name); ok {
		return Continue(fmt.Sprintf("%s is a function\n%s", c.Name, &Function{Name: c.Name, Body: body})), nil
	}
	return Result{}, errors.InvalidArgumentf("type: %s: not found", c.Name)
}

// Repeat outputs its message Count times.
type Repeat struct {
	Count   int
	Message string
}

func (c *Repeat) String() string {
	return words("repeat", strconv.Itoa(c.Count), c.Message)
}

func (c *Repeat) expand(lookup LookupFunc) Command {
	return &Repeat{Count: c.Count, Message: ExpandVariables(c.Message, lookup)}
}

func (c *Repeat) Eval(_ context.Context, _ *Session, _ *string) (Result, error) {
	return Continue(commands.Repeat(c.Count, c.Message)), nil
}

// Sleep blocks its control path.
type Sleep struct {
	Seconds uint64
}

func (c *Sleep) String() string {
	return words("sleep", strconv.FormatUint(c.Seconds, 10))
}

func (c *Sleep) Eval(ctx context.Context, _ *Session, _ *string) (Result, error) {
	return Continue(""), commands.Sleep(ctx, c.Seconds)
}

// Version outputs the release.
type Version struct{}

func (c *Version) String() string { return "version" }

func (c *Version) Eval(_ context.Context, _ *Session, _ *string) (Result, error) {
	return Continue(commands.VersionString()), nil
}

// Help outputs the builtin summary.
type Help struct{}

func (c *Help) String() string { return "help" }

func (c *Help) Eval(_ context.Context, _ *Session, _ *string) (Result, error) {
	return Continue(HelpText()), nil
}

// Jobs outputs the job table.
type Jobs struct{}

func (c *Jobs) String() string { return "jobs" }

func (c *Jobs) Eval(_ context.Context, s *Session, _ *string) (Result, error) {
	return Continue(s.Jobs.Format()), nil
}

// Fg reports the status of a job, the newest one when ID is nil.
type Fg struct {
	ID *uint32
}

func (c *Fg) String() string {
	if c.ID == nil {
		return "fg"
	}
	return words("fg", strconv.FormatUint(uint64(*c.ID), 10))
}

func (c *Fg) Eval(ctx context.Context, s *Session, _ *string) (Result, error) {
	msg, err := s.Jobs.Foreground(c.ID)
	if err != nil {
		return Result{}, err
	}
	s.emit(ctx, msg)
	return Continue(""), nil
}

// EnvAction selects what the env builtin does.
type EnvAction int

const (
	EnvList EnvAction = iota
	EnvShow
	EnvSet
)

// Env lists, shows or sets environment variables.
type Env struct {
	Action EnvAction
	Name   string
	Value  string
}

func (c *Env) String() string {
	switch c.Action {
	case EnvShow:
		return words("env", c.Name)
	case EnvSet:
		return fmt.Sprintf("env %s=%s", c.Name, c.Value)
	default:
		return "env"
	}
}

func (c *Env) expand(lookup LookupFunc) Command {
	out := *c
	out.Value = ExpandVariables(c.Value, lookup)
	return &out
}

func (c *Env) Eval(ctx context.Context, s *Session, _ *string) (Result, error) {
	switch c.Action {
	case EnvShow:
		value, ok := s.Lookup(ctx)(c.Name)
		if !ok {
			return Result{}, errors.InvalidArgumentf("Environment variable '%s' not found", c.Name)
		}
		return Continue(value), nil

	case EnvSet:
		return Continue(""), errors.IO(s.Env.Setenv(c.Name, c.Value))

	default:
		return Continue(strings.Join(s.Env.Environ(), "\n")), nil
	}
}

// Exit ends the session.
type Exit struct{}

func (c *Exit) String() string { return "exit" }

func (c *Exit) Eval(ctx context.Context, s *Session, _ *string) (Result, error) {
	s.emit(ctx, "good bye")
	return Result{Exit: true}, nil
}
