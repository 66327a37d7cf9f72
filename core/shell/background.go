package shell

import (
	"context"
	"fmt"
)

// Eval starts the command as a job and reports its number. The job keeps the
// current bindings but neither the caller's cancellation nor its output
// capture.
func (c *Background) Eval(ctx context.Context, s *Session, input *string) (Result, error) {
	job := s.Jobs.Spawn(detach(ctx), c.Command.String(), func(ctx context.Context) error {
		res, err := s.Eval(ctx, c.Command, input)
		if err != nil {
			return err
		}
		s.emit(ctx, res.Output)
		return nil
	})

	return Continue(fmt.Sprintf("[%d] %s", job.ID, job.Command)), nil
}
