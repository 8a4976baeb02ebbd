// File: middleware.go
// Title: Middleware Composition
// Description: Middleware type and the composition used by both the inner
//              command chain and the router's outer chain.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19

package command

// Next continues the chain. Not calling it short-circuits the invocation.
type Next func() error

// Middleware wraps the execution of cmd
type Middleware func(ctx *Context, cmd *Command, next Next) error

// Compose chains mws in order around final
func Compose(mws []Middleware, final func(ctx *Context) error) func(ctx *Context, cmd *Command) error {
	return func(ctx *Context, cmd *Command) error {
		var run func(i int) error
		run = func(i int) error {
			if i == len(mws) {
				return final(ctx)
			}
			return mws[i](ctx, cmd, func() error { return run(i + 1) })
		}
		return run(0)
	}
}
