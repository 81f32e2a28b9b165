package commands

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"eventhub"
	"eventhub/internal/actions"
	"eventhub/internal/logic"
)

// Executor runs console input lines against a hub
type Executor struct {
	ctx     *Context
	log     zerolog.Logger
	current *Result // receives print output while a command runs
}

// NewExecutor registers the print action on catalog, then creates the hub the
// console drives, pre-populated from bindings (event -> action names)
func NewExecutor(catalog *actions.Catalog, log zerolog.Logger, bindings map[string][]string, opts ...eventhub.Option) (*Executor, error) {
	e := &Executor{log: log}
	registerPrint(catalog, e)

	listeners, err := catalog.Build(bindings)
	if err != nil {
		return nil, err
	}
	hub := eventhub.New(append(opts, eventhub.WithListeners(listeners))...)
	e.ctx = &Context{Hub: hub, Binder: logic.NewBinder(hub), Catalog: catalog}
	return e, nil
}

// registerPrint adds the print action, which writes calls into e's output
func registerPrint(catalog *actions.Catalog, e *Executor) {
	catalog.Register(DefaultAction, func(event string) eventhub.Listener {
		return func(args ...any) {
			if e.current == nil {
				return
			}
			e.current.Lines = append(e.current.Lines, Line{
				Kind: LineCall,
				Text: fmt.Sprintf("<- %s %s", event, formatArgs(args)),
			})
		}
	})
}

// Context exposes what commands act on
func (e *Executor) Context() *Context { return e.ctx }

// Run parses and executes one line. A listener that panics aborts its
// dispatch; the panic is reported as an error line and the console goes on.
func (e *Executor) Run(line string) Result {
	var res Result
	cmd, err := Parse(line)
	if errors.Is(err, ErrEmptyCommand) {
		return res
	}
	if err != nil {
		res.fail("%v", err)
		return res
	}

	e.log.Debug().Str("input", line).Msg("console command")
	e.execute(cmd, &res)
	return res
}

// Emit dispatches event outside of a typed command, e.g. lifecycle events
func (e *Executor) Emit(event string, args ...any) Result {
	var res Result
	e.execute(EmitCommand{Event: event, Args: args}, &res)
	return res
}

func (e *Executor) execute(cmd Command, res *Result) {
	e.current = res
	defer func() {
		e.current = nil
		if r := recover(); r != nil {
			e.log.Error().Interface("panic", r).Msg("listener failed")
			res.fail("listener failed: %v", r)
		}
	}()
	cmd.Execute(e.ctx, res)
}
