// File: builtin.go
// Title: Built-in Command Middleware
// Description: Argument validation, option validation and invocation logging
//              that every command runs before its handler.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19

package command

import (
	"fmt"
	"strconv"
	"strings"

	kiterror "github.com/msto63/cmdkit/foundation/core/error"
	kitlog "github.com/msto63/cmdkit/foundation/core/log"
	kitvalidation "github.com/msto63/cmdkit/foundation/core/validation"
	kitstringx "github.com/msto63/cmdkit/foundation/utils/stringx"
)

// ValidateArgs binds positional arguments to the command's argument specs by
// position, checks required arguments, coerces types and runs custom
// validators. Every failure is collected before the chain stops.
func ValidateArgs(ctx *Context, cmd *Command, next Next) error {
	if ctx.Named == nil {
		ctx.Named = make(map[string]any, len(cmd.Args))
	}

	result := kitvalidation.NewValidationResult()
	for i, spec := range cmd.Args {
		if i >= len(ctx.Args) {
			if spec.Required {
				result.AddFieldError(kitvalidation.CodeRequired, spec.Name,
					fmt.Sprintf("missing required argument: %s", spec.Name), nil)
			} else if spec.Default != nil {
				ctx.Named[spec.Name] = spec.Default
			}
			continue
		}

		raw := ctx.Args[i]
		value, err := coerceArg(spec, raw)
		if err != nil {
			result.AddFieldError(kitvalidation.CodeType, spec.Name, err.Error(), raw)
			continue
		}

		if spec.Validate != nil {
			check := kitvalidation.Predicate(spec.Name, spec.Validate).Validate(value)
			if !check.Valid {
				result.Merge(check)
				continue
			}
		}
		ctx.Named[spec.Name] = value
	}

	if err := result.Err(); err != nil {
		return kiterror.Wrap(err, "invalid arguments for "+commandLabel(ctx, cmd)).
			WithOperation("command.ValidateArgs")
	}
	return next()
}

func coerceArg(spec ArgSpec, raw string) (any, error) {
	switch spec.Type {
	case "", ArgString:
		return raw, nil
	case ArgNumber:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("argument %s must be a number, got %q", spec.Name, raw)
		}
		return f, nil
	case ArgBoolean:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("argument %s must be a boolean, got %q", spec.Name, raw)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("argument %s has unknown type %q", spec.Name, spec.Type)
	}
}

// ValidateOptions normalizes short aliases, applies defaults, checks required
// options, coerces values (comma separated strings become lists for array
// options) and runs choice and custom checks. Options without a spec pass
// through untouched. Every failure is collected before the chain stops.
func ValidateOptions(ctx *Context, cmd *Command, next Next) error {
	if ctx.Options == nil {
		ctx.Options = make(map[string]any)
	}

	result := kitvalidation.NewValidationResult()
	for _, name := range cmd.OptionNames() {
		spec := cmd.Options[name]

		if spec.Short != "" {
			if v, ok := ctx.Options[spec.Short]; ok {
				if _, long := ctx.Options[name]; !long {
					ctx.Options[name] = v
				}
				delete(ctx.Options, spec.Short)
			}
		}

		raw, present := ctx.Options[name]
		if !present {
			if spec.Default != nil {
				ctx.Options[name] = spec.Default
			} else if spec.Required {
				result.AddFieldError(kitvalidation.CodeRequired, "--"+name,
					fmt.Sprintf("missing required option: --%s", name), nil)
			}
			continue
		}

		value, err := coerceOption(name, spec, raw)
		if err != nil {
			result.AddFieldError(kitvalidation.CodeType, "--"+name, err.Error(), raw)
			continue
		}

		chain := kitvalidation.NewValidatorChain("--" + name).StopOnFirstError(true)
		if len(spec.Choices) > 0 {
			chain.Add(kitvalidation.OneOf("--"+name, spec.Choices))
		}
		if spec.Validate != nil {
			chain.Add(kitvalidation.Predicate("--"+name, spec.Validate))
		}
		if check := chain.Validate(value); !check.Valid {
			result.Merge(check)
			continue
		}
		ctx.Options[name] = value
	}

	if err := result.Err(); err != nil {
		return kiterror.Wrap(err, "invalid options for "+commandLabel(ctx, cmd)).
			WithOperation("command.ValidateOptions")
	}
	return next()
}

func coerceOption(name string, spec OptionSpec, raw any) (any, error) {
	switch spec.Type {
	case "", OptionString:
		switch v := raw.(type) {
		case bool:
			return nil, fmt.Errorf("option --%s requires a value", name)
		case string:
			return v, nil
		default:
			return fmt.Sprintf("%v", v), nil
		}
	case OptionBoolean:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("option --%s must be a boolean, got %q", name, v)
			}
			return b, nil
		}
		return nil, fmt.Errorf("option --%s must be a boolean", name)
	case OptionNumber:
		if b, ok := raw.(bool); ok {
			return nil, fmt.Errorf("option --%s requires a number, got %v", name, b)
		}
		f, err := kitvalidation.ConvertToFloat64(raw)
		if err != nil {
			return nil, fmt.Errorf("option --%s must be a number, got %v", name, raw)
		}
		return f, nil
	case OptionArray:
		switch v := raw.(type) {
		case []string:
			return v, nil
		case string:
			return kitstringx.SplitAndTrim(v, ","), nil
		case []any:
			out := make([]string, len(v))
			for i, item := range v {
				out[i] = fmt.Sprintf("%v", item)
			}
			return out, nil
		}
		return nil, fmt.Errorf("option --%s requires a comma separated list", name)
	default:
		return nil, fmt.Errorf("option --%s has unknown type %q", name, spec.Type)
	}
}

// LogInvocation logs the invocation and its duration at debug level
func LogInvocation(ctx *Context, cmd *Command, next Next) error {
	logger := ctx.Logger().WithField("component", "command")
	label := commandLabel(ctx, cmd)

	if logger.IsLevelEnabled(kitlog.LevelDebug) {
		logger.Debug("executing command", kitlog.Fields{
			"command": label,
			"args":    ctx.Args,
			"options": ctx.Options,
		})
	}

	timer := logger.StartTimer("command " + label)
	err := next()
	if err != nil {
		timer.WithField("error", err.Error())
	}
	timer.Stop()
	return err
}

func commandLabel(ctx *Context, cmd *Command) string {
	if len(ctx.Path) > 0 {
		return ctx.CommandPath()
	}
	return cmd.Name
}
