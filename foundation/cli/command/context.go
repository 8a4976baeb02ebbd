// File: context.go
// Title: Invocation Context
// Description: Per-invocation state handed to middleware and handlers:
//              positional and named arguments, options, the shared registry
//              and typed accessors.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/msto63/cmdkit/foundation/cli/registry"
	kitlog "github.com/msto63/cmdkit/foundation/core/log"
	kitvalidation "github.com/msto63/cmdkit/foundation/core/validation"
)

// LoggerToken resolves the CLI logger from the registry
var LoggerToken = registry.NewToken[*kitlog.Logger]("logger")

// Context carries one invocation through the middleware chains. The
// registry is borrowed from the CLI for the duration of the call.
type Context struct {
	Args         []string
	Named        map[string]any
	Options      map[string]any
	Registry     *registry.Registry
	Path         []string
	InvocationID string

	Out io.Writer
	Err io.Writer

	ctx context.Context
}

// NewContext creates a context for one invocation with a fresh invocation id
func NewContext(ctx context.Context, reg *registry.Registry, args []string, options map[string]any) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if options == nil {
		options = make(map[string]any)
	}
	return &Context{
		Args:         args,
		Named:        make(map[string]any),
		Options:      options,
		Registry:     reg,
		InvocationID: uuid.New().String(),
		Out:          os.Stdout,
		Err:          os.Stderr,
		ctx:          ctx,
	}
}

// Context returns the context.Context of the run. It is cancelled when the
// process receives a termination signal.
func (c *Context) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// WithContext replaces the context.Context
func (c *Context) WithContext(ctx context.Context) *Context {
	c.ctx = ctx
	return c
}

// CommandPath returns the resolved path joined by spaces, e.g. "dns add"
func (c *Context) CommandPath() string {
	return strings.Join(c.Path, " ")
}

// Logger returns the registry logger tagged with the invocation id
func (c *Context) Logger() *kitlog.Logger {
	logger := registry.GetOr(c.Registry, LoggerToken, kitlog.GetDefault())
	return logger.WithCorrelationID(c.InvocationID)
}

// Arg returns the i-th positional argument or ""
func (c *Context) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// NamedString returns a named argument as a string
func (c *Context) NamedString(name string) string {
	return asString(c.Named[name])
}

// NamedNumber returns a named argument as a number
func (c *Context) NamedNumber(name string) float64 {
	f, _ := kitvalidation.ConvertToFloat64(c.Named[name])
	return f
}

// NamedBool returns a named argument as a boolean
func (c *Context) NamedBool(name string) bool {
	b, _ := c.Named[name].(bool)
	return b
}

// Has reports whether option name is set
func (c *Context) Has(name string) bool {
	_, ok := c.Options[name]
	return ok
}

// String returns option name as a string
func (c *Context) String(name string) string {
	return asString(c.Options[name])
}

// Bool returns option name as a boolean
func (c *Context) Bool(name string) bool {
	switch v := c.Options[name].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

// Number returns option name as a number
func (c *Context) Number(name string) float64 {
	f, _ := kitvalidation.ConvertToFloat64(c.Options[name])
	return f
}

// Strings returns option name as a list
func (c *Context) Strings(name string) []string {
	switch v := c.Options[name].(type) {
	case []string:
		return v
	case string:
		return []string{v}
	}
	return nil
}

// Printf writes formatted output to Out
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func asString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, ",")
	default:
		return fmt.Sprintf("%v", val)
	}
}
