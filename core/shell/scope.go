package shell

import (
	"context"
	"strings"
	"sync"

	"github.com/josephlewis42/minish/core/logger"
)

// LookupFunc resolves a variable name.
type LookupFunc func(name string) (string, bool)

// frame is one level of lexical bindings. Frames are immutable and chained
// innermost first through the context.
type frame struct {
	parent *frame
	vars   map[string]string
}

type frameKey struct{}

// withBindings returns a context whose innermost frame holds vars.
func withBindings(ctx context.Context, vars map[string]string) context.Context {
	parent, _ := ctx.Value(frameKey{}).(*frame)
	return context.WithValue(ctx, frameKey{}, &frame{parent: parent, vars: vars})
}

func lookupBinding(ctx context.Context, name string) (string, bool) {
	for f, _ := ctx.Value(frameKey{}).(*frame); f != nil; f = f.parent {
		if v, ok := f.vars[name]; ok {
			return v, true
		}
	}
	return "", false
}

// Lookup resolves names against the bindings in ctx, then the session
// environment.
func (s *Session) Lookup(ctx context.Context) LookupFunc {
	return func(name string) (string, bool) {
		if v, ok := lookupBinding(ctx, name); ok {
			return v, true
		}
		return s.Env.LookupEnv(name)
	}
}

// sink collects lines printed as a side effect while output is captured.
type sink struct {
	mu    sync.Mutex
	lines []string
}

type sinkKey struct{}

func (k *sink) add(line string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.lines = append(k.lines, line)
}

// join returns everything collected followed by output.
func (k *sink) join(output string) string {
	k.mu.Lock()
	defer k.mu.Unlock()

	parts := k.lines
	if output != "" {
		parts = append(parts[:len(parts):len(parts)], output)
	}
	return strings.Join(parts, "\n")
}

// withCapture redirects side effect printing in ctx into a new sink.
func withCapture(ctx context.Context) (context.Context, *sink) {
	k := &sink{}
	return context.WithValue(ctx, sinkKey{}, k), k
}

// detach strips capturing and cancellation so a job can outlive ctx. The
// lexical bindings of ctx carry over.
func detach(ctx context.Context) context.Context {
	return context.WithValue(context.WithoutCancel(ctx), sinkKey{}, (*sink)(nil))
}

// emit prints text as a side effect, into the active capture if there is one
// or on the session output otherwise.
func (s *Session) emit(ctx context.Context, text string) {
	if text == "" {
		return
	}
	if k, _ := ctx.Value(sinkKey{}).(*sink); k != nil {
		k.add(text)
		return
	}
	s.Log.Outf(logger.Default, "%s", text)
}

// capture evaluates cmd and returns everything it printed followed by its
// output as a single result. On failure the printed lines are passed on to
// the enclosing output.
func (s *Session) capture(ctx context.Context, cmd Command, input *string) (Result, error) {
	inner, k := withCapture(ctx)

	res, err := s.Eval(inner, cmd, input)
	if err != nil {
		s.emit(ctx, k.join(""))
		return Result{}, err
	}

	res.Output = k.join(res.Output)
	return res, nil
}
