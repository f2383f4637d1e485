package actions

import "context"

// Func adapts a plain function to the Action interface
type Func struct {
	ActionName string
	Summary    string
	Syntax     string
	Run        func(ctx context.Context, args Args, progress func(string)) (string, error)
}

func (f Func) Name() string        { return f.ActionName }
func (f Func) Description() string { return f.Summary }
func (f Func) Usage() string       { return f.Syntax }

func (f Func) Execute(ctx context.Context, args Args, progress func(string)) (string, error) {
	return f.Run(ctx, args, progress)
}
