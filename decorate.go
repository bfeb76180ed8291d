package empower

import "github.com/miruken-go/empower/internal/slices"

// decorate wraps call so each call is routed through
// the decorator's success and error handlers.
// Arguments beyond numArgsToCapture form the message.
func decorate(call callSpec, d *decorator) Callable {
	return func(args ...any) (any, error) {
		split := min(call.numArgsToCapture, len(args))
		inv   := invocation{
			callSpec: call,
			values:   args[:split:split],
			message:  args[split:],
		}
		if !slices.Any(inv.values, isCaptured) {
			return d.fallbackAssert(inv)
		}
		var ctx *Context
		values := make([]any, len(inv.values))
		for i, value := range inv.values {
			c, ok := value.(*Captured)
			if !ok || c == nil {
				values[i] = value
				continue
			}
			if ctx == nil {
				ctx = &Context{Source: c.Source}
			}
			ctx.Args = append(ctx.Args, CapturedArg{Value: c.Value, Events: c.Events})
			values[i] = c.Value
		}
		inv.values = values
		return d.concreteAssert(inv, ctx)
	}
}
