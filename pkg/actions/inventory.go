package actions

import (
	"context"
	"fmt"

	"github.com/user/govaudit/pkg/engine"
	"github.com/user/govaudit/pkg/store"
)

// InventoryActions edit the tool inventory and its connections
func InventoryActions(s *store.Store) []Action {
	return []Action{
		Func{
			ActionName: "add-tool",
			Summary:    "Adds an AI asset to the inventory",
			Syntax:     `add-tool id=<id> layer=<1-7> [name="<name>"] [category=<category>] [risky=true]`,
			Run: func(ctx context.Context, args Args, progress func(string)) (string, error) {
				id, err := args.Required("id")
				if err != nil {
					return "", err
				}
				layer, ok, err := args.Int("layer")
				if err != nil {
					return "", err
				}
				if !ok {
					return "", fmt.Errorf("missing argument %q", "layer")
				}
				risky, err := args.Bool("risky")
				if err != nil {
					return "", err
				}

				tool := engine.Tool{
					ID:       id,
					Name:     args.String("name", id),
					Category: args.String("category", ""),
					Layer:    layer,
					Risky:    risky,
				}
				if err := s.AddTool(tool); err != nil {
					return "", err
				}
				if risky {
					return fmt.Sprintf("Added %s to layer %d. Logged as Shadow AI; governance score now %d.", tool.Name, layer, s.GovernanceScore()), nil
				}
				return fmt.Sprintf("Added %s to layer %d.", tool.Name, layer), nil
			},
		},
		Func{
			ActionName: "remove-tool",
			Summary:    "Removes an asset and its connections",
			Syntax:     "remove-tool id=<id>",
			Run: func(ctx context.Context, args Args, progress func(string)) (string, error) {
				id, err := args.Required("id")
				if err != nil {
					return "", err
				}
				if err := s.RemoveTool(id); err != nil {
					return "", err
				}
				return fmt.Sprintf("Removed %s.", id), nil
			},
		},
		Func{
			ActionName: "move-tool",
			Summary:    "Moves an asset on the canvas",
			Syntax:     "move-tool id=<id> x=<x> y=<y>",
			Run: func(ctx context.Context, args Args, progress func(string)) (string, error) {
				id, err := args.Required("id")
				if err != nil {
					return "", err
				}
				x, _, err := args.Float("x")
				if err != nil {
					return "", err
				}
				y, _, err := args.Float("y")
				if err != nil {
					return "", err
				}
				if err := s.MoveTool(id, engine.Position{X: x, Y: y}); err != nil {
					return "", err
				}
				return fmt.Sprintf("Moved %s to (%.0f, %.0f).", id, x, y), nil
			},
		},
		Func{
			ActionName: "connect",
			Summary:    "Connects two assets",
			Syntax:     "connect a=<id> b=<id>",
			Run: func(ctx context.Context, args Args, progress func(string)) (string, error) {
				a, b, err := pair(args)
				if err != nil {
					return "", err
				}
				if err := s.AddConnection(a, b); err != nil {
					return "", err
				}
				return fmt.Sprintf("Connected %s and %s.", a, b), nil
			},
		},
		Func{
			ActionName: "disconnect",
			Summary:    "Removes the connection between two assets",
			Syntax:     "disconnect a=<id> b=<id>",
			Run: func(ctx context.Context, args Args, progress func(string)) (string, error) {
				a, b, err := pair(args)
				if err != nil {
					return "", err
				}
				s.RemoveConnection(a, b)
				return fmt.Sprintf("Disconnected %s and %s.", a, b), nil
			},
		},
	}
}

func pair(args Args) (string, string, error) {
	a, err := args.Required("a")
	if err != nil {
		return "", "", err
	}
	b, err := args.Required("b")
	if err != nil {
		return "", "", err
	}
	return a, b, nil
}
