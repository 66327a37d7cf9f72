package shell

import (
	"context"
	"strconv"

	"github.com/josephlewis42/minish/core/history"
	"github.com/josephlewis42/minish/errors"
)

// Eval runs cmd with its variables expanded against the bindings in ctx
// and the session environment. Every command, structural or not, is
// evaluated through here.
func (s *Session) Eval(ctx context.Context, cmd Command, input *string) (Result, error) {
	if e, ok := cmd.(expander); ok {
		cmd = e.expand(s.Lookup(ctx))
	}
	s.Log.Debugf("Executing: %s", cmd)
	return cmd.Eval(ctx, s, input)
}

// Run parses and evaluates a line, printing its output.
func (s *Session) Run(ctx context.Context, line string) (Result, error) {
	return s.RunInput(ctx, line, nil)
}

// RunInput is Run with input fed to the command, as a heredoc does.
func (s *Session) RunInput(ctx context.Context, line string, input *string) (Result, error) {
	cmd, err := s.Parse(ctx, line)
	if err != nil {
		return Result{}, err
	}
	s.Log.Dump("Parsed command", cmd)

	res, err := s.Eval(ctx, cmd, input)
	if err != nil {
		return Result{}, err
	}
	s.emit(ctx, res.Output)
	return res, nil
}

// Eval prints the output of the condition, then runs Then or Else. A
// failing condition selects Else.
func (c *If) Eval(ctx context.Context, s *Session, input *string) (Result, error) {
	cond, err := s.Eval(ctx, c.Cond, input)
	switch {
	case err != nil:
		s.Log.Debugf("if: condition failed: %v", err)
		if c.Else == nil {
			return Continue(""), nil
		}
		return s.Eval(ctx, c.Else, input)

	case cond.Exit:
		return cond, nil
	}

	s.emit(ctx, cond.Output)
	return s.Eval(ctx, c.Then, input)
}

// Eval runs the body until the condition fails. Output of each round is
// printed as it happens.
func (c *While) Eval(ctx context.Context, s *Session, _ *string) (Result, error) {
	limit := s.MaxLoopIterations
	if limit <= 0 {
		limit = DefaultMaxLoopIterations
	}

	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if i >= limit {
			return Result{}, &errors.RuntimeError{Message: "While loop exceeded maximum iterations"}
		}

		cond, err := s.Eval(ctx, c.Cond, nil)
		if err != nil {
			s.Log.Debugf("while: condition failed after %d iterations: %v", i, err)
			return Continue(""), nil
		}
		if cond.Exit {
			return cond, nil
		}
		s.emit(ctx, cond.Output)

		res, err := s.Eval(ctx, c.Body, nil)
		if err != nil {
			return Result{}, err
		}
		if res.Exit {
			return res, nil
		}
		s.emit(ctx, res.Output)
	}
}

// Eval runs the body once per item with the loop variable bound.
func (c *For) Eval(ctx context.Context, s *Session, _ *string) (Result, error) {
	for _, item := range c.Items {
		scope := withBindings(ctx, map[string]string{c.Var: item})

		res, err := s.Eval(scope, c.Body, nil)
		if err != nil {
			return Result{}, err
		}
		if res.Exit {
			return res, nil
		}
		s.emit(ctx, res.Output)
	}
	return Continue(""), nil
}

// Eval defines the function, replacing any earlier definition.
func (c *Function) Eval(_ context.Context, s *Session, _ *string) (Result, error) {
	s.Functions.Define(c.Name, c.Body)
	s.Log.Debugf("Defined function: %s", c.Name)
	return Continue(""), nil
}

// Eval runs the function body with its arguments bound to 1, 2, ... An exit
// in the body only ends the call.
func (c *FunctionCall) Eval(ctx context.Context, s *Session, _ *string) (Result, error) {
	body, ok := s.Functions.Get(c.Name)
	if !ok {
		return Result{}, &errors.UnknownCommandError{Message: "function '" + c.Name + "' not found"}
	}

	args := make(map[string]string, len(c.Args))
	for i, arg := range c.Args {
		args[strconv.Itoa(i+1)] = arg
	}
	res, err := s.Eval(withBindings(ctx, args), body, nil)
	if err != nil {
		return Result{}, err
	}
	if res.Exit {
		s.Log.Debugf("Ignoring exit in function: %s", c.Name)
		return Continue(res.Output), nil
	}
	return res, nil
}

// Eval runs each command in turn, printing output as it goes, and stops at
// the first failure or exit. The last command's output is the result.
func (c *Compound) Eval(ctx context.Context, s *Session, input *string) (Result, error) {
	var last Result
	for i, cmd := range c.Commands {
		if i > 0 {
			s.emit(ctx, last.Output)
		}

		res, err := s.Eval(ctx, cmd, input)
		if err != nil {
			return Result{}, err
		}
		if res.Exit {
			return res, nil
		}
		last = res
	}
	return last, nil
}

func (c *History) Eval(ctx context.Context, s *Session, input *string) (Result, error) {
	switch c.Action {
	case HistorySearch:
		return Continue(history.Format(s.History.Search(c.Query))), nil

	case HistoryExecute:
		line, ok := s.History.Get(c.Index)
		if !ok {
			return Result{}, errors.InvalidArgumentf("history: %d: history position out of range", c.Index)
		}
		cmd, err := s.Parse(ctx, line)
		if err != nil {
			return Result{}, err
		}
		return s.Eval(ctx, cmd, input)

	default:
		return Continue(history.Format(s.History.List())), nil
	}
}
