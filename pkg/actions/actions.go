// Package actions exposes store commands as named actions and dispatches
// "name key=value ..." lines to them.
package actions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownAction is returned when a line names an action that is not registered
var ErrUnknownAction = errors.New("unknown action")

// Action is a named operation over the assessment state
type Action interface {
	Name() string
	Description() string
	Usage() string
	Execute(ctx context.Context, args Args, progress func(string)) (string, error)
}

// Args are the key=value arguments of one action invocation
type Args map[string]string

// String returns the value of key or def when it is absent
func (a Args) String(key, def string) string {
	if v, ok := a[key]; ok {
		return v
	}
	return def
}

// Required returns the value of key or an error when it is absent or empty
func (a Args) Required(key string) (string, error) {
	v := strings.TrimSpace(a[key])
	if v == "" {
		return "", fmt.Errorf("missing argument %q", key)
	}
	return v, nil
}

// Int parses key as an integer
func (a Args) Int(key string) (int, bool, error) {
	v, ok := a[key]
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, true, fmt.Errorf("argument %q: %w", key, err)
	}
	return n, true, nil
}

// Float parses key as a float
func (a Args) Float(key string) (float64, bool, error) {
	v, ok := a[key]
	if !ok {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, true, fmt.Errorf("argument %q: %w", key, err)
	}
	return f, true, nil
}

// Bool parses key as a boolean; absent means false
func (a Args) Bool(key string) (bool, error) {
	v, ok := a[key]
	if !ok {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("argument %q: %w", key, err)
	}
	return b, nil
}

// Registry holds the available actions by name
type Registry struct {
	actions map[string]Action
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]Action)}
}

// Register adds an action, replacing any action with the same name
func (r *Registry) Register(a Action) {
	r.actions[a.Name()] = a
}

// Lookup finds an action by name
func (r *Registry) Lookup(name string) (Action, bool) {
	a, ok := r.actions[name]
	return a, ok
}

// Actions returns the registered actions sorted by name
func (r *Registry) Actions() []Action {
	out := make([]Action, 0, len(r.actions))
	for _, a := range r.actions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Help lists every action with its usage
func (r *Registry) Help() string {
	var sb strings.Builder
	sb.WriteString("Available actions:\n")
	for _, a := range r.Actions() {
		sb.WriteString(fmt.Sprintf("  %-14s %s\n", a.Name(), a.Description()))
		sb.WriteString(fmt.Sprintf("  %-14s usage: %s\n", "", a.Usage()))
	}
	return sb.String()
}

// Dispatch parses a line and executes the named action. "help" lists the
// registry.
func (r *Registry) Dispatch(ctx context.Context, line string, progress func(string)) (string, error) {
	name, args, err := ParseLine(line)
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", nil
	}
	if name == "help" {
		return r.Help(), nil
	}

	a, ok := r.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	if progress == nil {
		progress = func(string) {}
	}
	return a.Execute(ctx, args, progress)
}

// ParseLine splits a line into an action name and key=value arguments.
// Values may be wrapped in double quotes to include spaces.
func ParseLine(line string) (string, Args, error) {
	tokens, err := tokenize(line)
	if err != nil {
		return "", nil, err
	}
	if len(tokens) == 0 {
		return "", Args{}, nil
	}

	args := make(Args, len(tokens)-1)
	for _, tok := range tokens[1:] {
		key, value, ok := strings.Cut(tok, "=")
		if !ok || key == "" {
			return "", nil, fmt.Errorf("argument %q is not key=value", tok)
		}
		args[key] = value
	}
	return tokens[0], args, nil
}

func tokenize(line string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		quoted  bool
		pending bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			pending = true
		case !quoted && (r == ' ' || r == '\t'):
			if pending {
				tokens = append(tokens, current.String())
				current.Reset()
				pending = false
			}
		default:
			current.WriteRune(r)
			pending = true
		}
	}
	if quoted {
		return nil, errors.New("unterminated quote")
	}
	if pending {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}
