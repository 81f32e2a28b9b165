package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/shlex"
)

// DefaultAction is bound when on/once name no action
const DefaultAction = "print"

// ErrEmptyCommand is returned for a blank input line
var ErrEmptyCommand = errors.New("empty command")

// Parse turns one input line into a command. Words are split shell-style, so
// quoted arguments may contain spaces.
func Parse(line string) (Command, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", line, err)
	}
	if len(words) == 0 {
		return nil, ErrEmptyCommand
	}

	name, rest := strings.ToLower(words[0]), words[1:]
	switch name {
	case "on", "once":
		if len(rest) < 1 || len(rest) > 2 {
			return nil, fmt.Errorf("usage: %s <event> [action]", name)
		}
		action := DefaultAction
		if len(rest) == 2 {
			action = rest[1]
		}
		return BindCommand{Event: rest[0], Action: action, Once: name == "once"}, nil
	case "off", "unbind":
		if len(rest) != 1 {
			return nil, errors.New("usage: off <id>")
		}
		id, err := strconv.Atoi(rest[0])
		if err != nil {
			return nil, fmt.Errorf("listener id must be a number: %q", rest[0])
		}
		return UnbindCommand{ID: id}, nil
	case "emit":
		if len(rest) < 1 {
			return nil, errors.New("usage: emit <event> [args...]")
		}
		args := make([]any, 0, len(rest)-1)
		for _, word := range rest[1:] {
			args = append(args, ParseArg(word))
		}
		return EmitCommand{Event: rest[0], Args: args}, nil
	case "events":
		return EventsCommand{}, nil
	case "listeners":
		return ListenersCommand{}, nil
	case "actions":
		return ActionsCommand{}, nil
	case "help", "?":
		return HelpCommand{}, nil
	case "clear":
		return ClearCommand{}, nil
	case "quit", "exit", "q":
		return QuitCommand{}, nil
	default:
		return nil, fmt.Errorf("unknown command %q (try help)", words[0])
	}
}

// ParseArg converts a word to int, float64 or bool when it reads as one, and
// keeps it as a string otherwise
func ParseArg(word string) any {
	if i, err := strconv.Atoi(word); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(word, 64); err == nil && strings.ContainsAny(word, "0123456789") {
		return f
	}
	if b, err := strconv.ParseBool(word); err == nil && (word == "true" || word == "false") {
		return b
	}
	return word
}
