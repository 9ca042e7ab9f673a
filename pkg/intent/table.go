// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package intent

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	ErrUnknownIntent   = errors.New("unknown intent")
	ErrMissingArgument = errors.New("missing argument")
	ErrEmptyCommand    = errors.New("empty command")
)

// Command is one parsed UI intent: a name, positional arguments and key=value options.
type Command struct {
	Name    string
	Args    []string
	Options map[string]string
}

// Arg returns the i-th positional argument.
func (c Command) Arg(i int) (string, error) {
	if i >= len(c.Args) {
		return "", fmt.Errorf("%w: %s needs %d argument(s)", ErrMissingArgument, c.Name, i+1)
	}
	return c.Args[i], nil
}

// Text joins the positional arguments back into free text.
func (c Command) Text() string {
	return strings.Join(c.Args, " ")
}

// Option returns a key=value option, empty when absent.
func (c Command) Option(key string) string {
	return c.Options[key]
}

// Parse splits line into a Command. Tokens of the form key=value become
// options; everything else after the name is positional.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmptyCommand
	}

	cmd := Command{
		Name:    strings.ToLower(fields[0]),
		Options: make(map[string]string),
	}
	var lastKey string
	for _, f := range fields[1:] {
		if k, v, ok := strings.Cut(f, "="); ok && k != "" {
			cmd.Options[k] = v
			lastKey = k
			continue
		}
		// bare words following an option extend its value: place=Blue Tokai
		if lastKey != "" {
			cmd.Options[lastKey] += " " + f
			continue
		}
		cmd.Args = append(cmd.Args, f)
	}
	return cmd, nil
}

// Handler executes one intent.
type Handler func(cmd Command) error

// Table maps intent names to handlers.
// It provides thread-safe registration and lookup.
type Table struct {
	handlers map[string]Handler
	mu       sync.RWMutex
}

func NewTable() *Table {
	return &Table{
		handlers: make(map[string]Handler),
	}
}

// Register adds a handler. Returns an error if the name is taken.
func (t *Table) Register(name string, h Handler) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.handlers[name]; exists {
		return fmt.Errorf("intent %s already registered", name)
	}
	t.handlers[name] = h
	return nil
}

// Unregister removes a handler.
func (t *Table) Unregister(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.handlers[name]; !exists {
		return fmt.Errorf("intent %s not found", name)
	}
	delete(t.handlers, name)
	return nil
}

// Dispatch runs the handler registered for cmd.Name on the caller's goroutine.
func (t *Table) Dispatch(cmd Command) error {
	t.mu.RLock()
	h, ok := t.handlers[cmd.Name]
	t.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownIntent, cmd.Name)
	}
	return h(cmd)
}

// Names returns every registered intent, sorted.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.handlers))
	for name := range t.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered intents.
func (t *Table) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.handlers)
}
