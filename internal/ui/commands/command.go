package commands

import (
	"fmt"
	"strings"

	"eventhub"
	"eventhub/internal/actions"
	"eventhub/internal/domain"
	"eventhub/internal/logic"
)

// LineKind classifies one line of console output
type LineKind int

const (
	LineInfo LineKind = iota
	LineCall
	LineError
)

// Line is one line of console output
type Line struct {
	Kind LineKind
	Text string
}

// Result is what running one command produced
type Result struct {
	Lines []Line
	Clear bool // drop earlier output
	Quit  bool
}

func (r *Result) info(format string, args ...any) {
	r.Lines = append(r.Lines, Line{Kind: LineInfo, Text: fmt.Sprintf(format, args...)})
}

func (r *Result) fail(format string, args ...any) {
	r.Lines = append(r.Lines, Line{Kind: LineError, Text: fmt.Sprintf(format, args...)})
}

// Command represents an executable console command
type Command interface {
	Execute(ctx *Context, res *Result)
}

// Context provides what commands act on
type Context struct {
	Hub     *eventhub.Hub
	Binder  logic.BindingStore
	Catalog *actions.Catalog
}

// BindCommand registers a listener, once or not
type BindCommand struct {
	Event  string
	Action string
	Once   bool
}

// Execute binds the listener and announces it
func (c BindCommand) Execute(ctx *Context, res *Result) {
	fn, err := ctx.Catalog.Listener(c.Action, c.Event)
	if err != nil {
		res.fail("%v (known: %s)", err, strings.Join(ctx.Catalog.Names(), ", "))
		return
	}
	binding, err := ctx.Binder.Bind(c.Event, c.Action, c.Once, fn)
	if err != nil {
		res.fail("%v", err)
		return
	}
	kind := "on"
	if c.Once {
		kind = "once"
	}
	res.info("#%d %s %s -> %s", binding.ID, kind, binding.Event, binding.Action)
	ctx.Hub.Emit(string(domain.EventListenerBound), binding.ID, binding.Event, binding.Action)
}

// UnbindCommand removes a listener by binding id
type UnbindCommand struct {
	ID int
}

// Execute unbinds the listener and announces it
func (c UnbindCommand) Execute(ctx *Context, res *Result) {
	binding, ok := ctx.Binder.Unbind(c.ID)
	if !ok {
		res.fail("no listener #%d", c.ID)
		return
	}
	res.info("#%d unbound from %s", binding.ID, binding.Event)
	ctx.Hub.Emit(string(domain.EventListenerUnbound), binding.ID, binding.Event)
}

// EmitCommand dispatches an event
type EmitCommand struct {
	Event string
	Args  []any
}

// Execute emits the event
func (c EmitCommand) Execute(ctx *Context, res *Result) {
	if ctx.Hub.Emit(c.Event, c.Args...) {
		res.info("emitted %s %v", c.Event, formatArgs(c.Args))
		return
	}
	res.info("%s has no listeners", c.Event)
}

// EventsCommand lists the registered events
type EventsCommand struct{}

// Execute lists events with their listener counts
func (EventsCommand) Execute(ctx *Context, res *Result) {
	summaries := logic.Summaries(ctx.Hub)
	if len(summaries) == 0 {
		res.info("no events")
		return
	}
	for _, s := range summaries {
		res.info("%s (%d)", s.Name, s.Listeners)
	}
}

// ListenersCommand lists the bindings made from the console
type ListenersCommand struct{}

// Execute lists bindings by id
func (ListenersCommand) Execute(ctx *Context, res *Result) {
	bindings := ctx.Binder.List()
	if len(bindings) == 0 {
		res.info("no listeners bound from the console")
		return
	}
	for _, b := range bindings {
		once := ""
		if b.Once {
			once = " (once)"
		}
		res.info("#%d %s -> %s%s", b.ID, b.Event, b.Action, once)
	}
}

// ActionsCommand lists the actions listeners can run
type ActionsCommand struct{}

// Execute lists action names
func (ActionsCommand) Execute(ctx *Context, res *Result) {
	res.info("actions: %s", strings.Join(ctx.Catalog.Names(), ", "))
}

// HelpCommand prints the command reference
type HelpCommand struct{}

// Execute prints usage
func (HelpCommand) Execute(_ *Context, res *Result) {
	for _, line := range Usage() {
		res.info("%s", line)
	}
}

// ClearCommand clears the output pane
type ClearCommand struct{}

// Execute requests a clear
func (ClearCommand) Execute(_ *Context, res *Result) { res.Clear = true }

// QuitCommand leaves the console
type QuitCommand struct{}

// Execute requests exit
func (QuitCommand) Execute(_ *Context, res *Result) { res.Quit = true }

// Usage returns the command reference, one command per line
func Usage() []string {
	return []string{
		"on <event> [action]     bind a listener (default action: print)",
		"once <event> [action]   bind a listener that runs at most once",
		"off <id>                unbind listener #id",
		"emit <event> [args...]  dispatch an event; args parse as int, float, bool or string",
		"events                  list events that have listeners",
		"listeners               list listeners bound from here",
		"actions                 list available actions",
		"clear | help | quit",
	}
}

func formatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if s, ok := a.(string); ok {
			parts[i] = fmt.Sprintf("%q", s)
			continue
		}
		parts[i] = fmt.Sprint(a)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
