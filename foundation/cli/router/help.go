// File: help.go
// Title: Help Renderer
// Description: Renders the command listing and per-command help pages with
//              lipgloss styles.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19

package router

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/cmdkit/foundation/cli/command"
	kitstringx "github.com/msto63/cmdkit/foundation/utils/stringx"
)

// HelpItem is one line of the command listing
type HelpItem struct {
	Name        string
	Description string
	Aliases     []string
}

// HelpRenderer renders help text
type HelpRenderer struct {
	ProgramName string
	Version     string

	// Description is printed below the header of the global help
	Description string

	title   lipgloss.Style
	section lipgloss.Style
	name    lipgloss.Style
	dim     lipgloss.Style

	listing []HelpItem
}

// NewHelpRenderer creates a renderer for program
func NewHelpRenderer(program, version string) *HelpRenderer {
	return &HelpRenderer{
		ProgramName: program,
		Version:     version,
		title:       lipgloss.NewStyle().Bold(true),
		section:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6")),
		name:        lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
		dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")),
	}
}

// SetListing replaces the command listing used by RenderGlobal
func (h *HelpRenderer) SetListing(items []HelpItem) {
	h.listing = items
}

// Listing returns the current command listing
func (h *HelpRenderer) Listing() []HelpItem {
	return h.listing
}

// RenderGlobal writes the program overview and command listing
func (h *HelpRenderer) RenderGlobal(w io.Writer) {
	var b strings.Builder

	header := h.ProgramName
	if h.Version != "" {
		header += " " + h.Version
	}
	b.WriteString(h.title.Render(header) + "\n\n")
	if h.Description != "" {
		b.WriteString(h.Description + "\n\n")
	}
	fmt.Fprintf(&b, "%s %s <command> [arguments] [options]\n\n", h.section.Render("Usage:"), h.ProgramName)

	if len(h.listing) > 0 {
		b.WriteString(h.section.Render("Commands:") + "\n")
		width := 0
		for _, item := range h.listing {
			if len(item.Name) > width {
				width = len(item.Name)
			}
		}
		for _, item := range h.listing {
			line := "  " + h.name.Render(kitstringx.PadRight(item.Name, width, ' ')) + "  " + item.Description
			if len(item.Aliases) > 0 {
				line += " " + h.dim.Render("(aliases: "+strings.Join(item.Aliases, ", ")+")")
			}
			b.WriteString(strings.TrimRight(line, " ") + "\n")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Run '%s help <command>' for more information on a command.\n", h.ProgramName)
	io.WriteString(w, b.String())
}

// RenderCommand writes the help page of cmd reached through path
func (h *HelpRenderer) RenderCommand(w io.Writer, path []string, cmd *command.Command) {
	var b strings.Builder
	fullPath := strings.Join(path, " ")

	usage := cmd.Usage
	if usage == "" {
		usage = h.defaultUsage(fullPath, cmd)
	}
	fmt.Fprintf(&b, "%s %s\n", h.section.Render("Usage:"), usage)

	if cmd.Description != "" {
		b.WriteString("\n" + cmd.Description + "\n")
	}

	if len(cmd.Args) > 0 {
		rows := make([][2]string, 0, len(cmd.Args))
		for _, arg := range cmd.Args {
			desc := arg.Description
			if arg.Type != "" && arg.Type != command.ArgString {
				desc = strings.TrimSpace(desc + " " + h.dim.Render("("+string(arg.Type)+")"))
			}
			if arg.Default != nil {
				desc = strings.TrimSpace(desc + " " + h.dim.Render(fmt.Sprintf("(default: %v)", arg.Default)))
			}
			rows = append(rows, [2]string{argLabel(arg), desc})
		}
		h.writeSection(&b, "Arguments:", rows)
	}

	if len(cmd.Options) > 0 {
		rows := make([][2]string, 0, len(cmd.Options))
		for _, name := range cmd.OptionNames() {
			opt := cmd.Options[name]
			desc := opt.Description
			if len(opt.Choices) > 0 {
				desc = strings.TrimSpace(desc + " " + h.dim.Render("(choices: "+strings.Join(opt.Choices, ", ")+")"))
			}
			if opt.Default != nil {
				desc = strings.TrimSpace(desc + " " + h.dim.Render(fmt.Sprintf("(default: %v)", opt.Default)))
			}
			if opt.Required {
				desc = strings.TrimSpace(desc + " " + h.dim.Render("(required)"))
			}
			rows = append(rows, [2]string{optionLabel(name, opt), desc})
		}
		h.writeSection(&b, "Options:", rows)
	}

	if len(cmd.Aliases) > 0 {
		b.WriteString("\n" + h.section.Render("Aliases:") + " " + strings.Join(cmd.Aliases, ", ") + "\n")
	}

	if cmd.HasSubcommands() {
		rows := make([][2]string, 0, len(cmd.Subcommands))
		for _, name := range cmd.SubcommandNames() {
			sub := cmd.Subcommands[name]
			if sub.Hidden {
				continue
			}
			rows = append(rows, [2]string{name, sub.Description})
		}
		h.writeSection(&b, "Subcommands:", rows)
		fmt.Fprintf(&b, "\nRun '%s help %s <subcommand>' for more information on a subcommand.\n", h.ProgramName, fullPath)
	}

	if len(cmd.Examples) > 0 {
		b.WriteString("\n" + h.section.Render("Examples:") + "\n")
		for _, ex := range cmd.Examples {
			b.WriteString("  " + ex + "\n")
		}
	}

	io.WriteString(w, b.String())
}

func (h *HelpRenderer) writeSection(b *strings.Builder, title string, rows [][2]string) {
	b.WriteString("\n" + h.section.Render(title) + "\n")
	width := 0
	for _, row := range rows {
		if len(row[0]) > width {
			width = len(row[0])
		}
	}
	for _, row := range rows {
		line := "  " + h.name.Render(kitstringx.PadRight(row[0], width, ' ')) + "  " + row[1]
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}
}

func (h *HelpRenderer) defaultUsage(path string, cmd *command.Command) string {
	parts := []string{h.ProgramName, path}
	if cmd.HasSubcommands() {
		parts = append(parts, "<subcommand>")
	}
	for _, arg := range cmd.Args {
		parts = append(parts, argLabel(arg))
	}
	if len(cmd.Options) > 0 {
		parts = append(parts, "[options]")
	}
	return strings.Join(parts, " ")
}

func argLabel(arg command.ArgSpec) string {
	if arg.Required {
		return "<" + arg.Name + ">"
	}
	return "[" + arg.Name + "]"
}

func optionLabel(name string, opt command.OptionSpec) string {
	label := "--" + name
	if opt.Short != "" {
		label = "-" + opt.Short + ", " + label
	} else {
		label = "    " + label
	}
	switch opt.Type {
	case command.OptionBoolean:
	case command.OptionNumber:
		label += " <number>"
	case command.OptionArray:
		label += " <a,b,...>"
	default:
		label += " <value>"
	}
	return label
}
