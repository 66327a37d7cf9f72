package shell

import (
	"context"

	"github.com/josephlewis42/minish/errors"
)

// Eval runs the stages in order, feeding each one the output of the stage
// before it. The first stage reads the pipeline's own input.
func (c *Pipeline) Eval(ctx context.Context, s *Session, input *string) (Result, error) {
	var res Result
	for i, segment := range c.Segments {
		cmd, err := s.parseExpanded(segment, true)
		if err != nil {
			return Result{}, err
		}

		s.Log.Debugf("Pipeline stage %d: %s", i, cmd)
		res, err = s.capture(ctx, cmd, input)
		if err != nil {
			return Result{}, err
		}
		if res.Exit {
			return res, nil
		}

		output := res.Output
		input = &output
	}
	return res, nil
}

// Eval applies the redirect. Output redirects capture everything the command
// prints and write it to the target verbatim; input redirects feed the
// target's contents to the command.
func (c *Redirect) Eval(ctx context.Context, s *Session, input *string) (Result, error) {
	if c.Op == RedirectIn {
		contents, err := s.OS.Cat(c.Target, nil)
		if err != nil {
			return Result{}, err
		}
		return s.Eval(ctx, c.Command, &contents)
	}

	res, err := s.capture(ctx, c.Command, input)
	if err != nil {
		return Result{}, err
	}
	if res.Exit {
		return res, nil
	}

	switch c.Op {
	case RedirectOut:
		_, err = s.OS.Write(c.Target, res.Output)
	case RedirectAppend:
		err = s.OS.Append(c.Target, res.Output)
	default:
		err = errors.Parsef("undefined redirect operator '%s'", c.Op)
	}
	if err != nil {
		return Result{}, err
	}
	return Continue(""), nil
}
