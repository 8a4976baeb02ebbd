package cmd

import (
	"strings"

	"github.com/msto63/cmdkit/foundation/cli/command"
	"github.com/msto63/cmdkit/foundation/cli/plugin"
	"github.com/msto63/cmdkit/foundation/cli/registry"
	"github.com/msto63/cmdkit/foundation/cli/ui"
)

// greetingToken holds the greeting word of the greeter plugin
var greetingToken = registry.NewToken[string]("greeter.greeting")

// The greeter plugin is linked into the tool so plugin manifests naming
// "greeter" can be tried out with exec.
func init() {
	plugin.Register(plugin.Entry{
		Name:    "greeter",
		Source:  "cmdkit",
		Version: "0.1.0",
		Factory: newGreeterPlugin,
	})
}

func newGreeterPlugin() (*plugin.Plugin, error) {
	return &plugin.Plugin{
		Name:        "greeter",
		Version:     "0.1.0",
		Description: "Greets people",
		Services: []plugin.Service{{
			Token: greetingToken,
			Factory: func(*registry.Registry) (any, error) {
				return "Hello", nil
			},
		}},
		Commands: map[string]*command.Command{
			"greet": command.Build(command.Spec{
				Name:        "greet",
				Description: "Greet someone",
				Args:        []command.ArgSpec{{Name: "name", Description: "who to greet"}},
				Options: map[string]command.OptionSpec{
					"shout": {Type: command.OptionBoolean, Short: "s", Description: "greet loudly"},
				},
				Examples: []string{"greet Alice", "greet Bob --shout"},
				Handler:  greet,
			}),
		},
	}, nil
}

func greet(ctx *command.Context) error {
	name := ctx.NamedString("name")
	if name == "" {
		prompter, err := registry.Get(ctx.Registry, ui.PrompterToken)
		if err != nil {
			return err
		}
		if name, err = prompter.Input(ctx.Context(), "Who should be greeted?", "World"); err != nil {
			return err
		}
	}

	greeting := registry.GetOr(ctx.Registry, greetingToken, "Hello")
	line := greeting + ", " + name + "!"
	if ctx.Bool("shout") {
		line = strings.ToUpper(line)
	}
	ctx.Printf("%s\n", line)
	return nil
}
