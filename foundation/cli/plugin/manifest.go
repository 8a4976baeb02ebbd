// File: manifest.go
// Title: Plugin and Project Manifests
// Description: Reads YAML, TOML and HCL manifests into generic maps and
//              extracts plugin identity, eligibility and project plugin
//              declarations.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial implementation

package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	"gopkg.in/yaml.v3"

	kiterror "github.com/msto63/cmdkit/foundation/core/error"
	kitstringx "github.com/msto63/cmdkit/foundation/utils/stringx"
)

const (
	// ToolMarker is the tool-specific eligibility field
	ToolMarker = "cmdkit-plugin"

	// GenericMarker is the generic eligibility field
	GenericMarker = "plugin"
)

// ProjectManifestNames are the file names searched for the project manifest,
// in order
var ProjectManifestNames = []string{"cmdkit.yaml", "cmdkit.yml", "cmdkit.toml", "cmdkit.hcl"}

// Manifest describes one plugin on disk
type Manifest struct {
	Name        string
	Version     string
	Description string
	Eligible    bool
	Path        string
	Fields      map[string]any
}

// ProjectManifest lists the plugins a project activates
type ProjectManifest struct {
	Path       string
	Plugins    []string
	PluginDirs []string
}

// ReadManifest reads and parses the plugin manifest at path
func ReadManifest(path string) (*Manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, kiterror.FileSystem(path, "cannot read plugin manifest").
			WithOperation("plugin.ReadManifest").
			WithDetail("cause", err.Error())
	}
	m, err := ParseManifest(content, path)
	if err != nil {
		return nil, err
	}
	m.Path = path
	return m, nil
}

// ParseManifest parses manifest content; the format follows the extension of
// filename
func ParseManifest(content []byte, filename string) (*Manifest, error) {
	fields, err := decodeManifest(content, filename)
	if err != nil {
		return nil, kiterror.Wrap(err, "invalid plugin manifest "+filename).
			WithCode(kiterror.CodePluginInvalid).
			WithOperation("plugin.ParseManifest")
	}

	return &Manifest{
		Name:        stringField(fields, "name"),
		Version:     stringField(fields, "version"),
		Description: stringField(fields, "description"),
		Eligible:    kitstringx.TruthyValue(fields[ToolMarker]) || kitstringx.TruthyValue(fields[GenericMarker]),
		Fields:      fields,
	}, nil
}

// FindProjectManifest looks for a project manifest in dir. It returns nil
// without error when there is none.
func FindProjectManifest(dir string) (*ProjectManifest, error) {
	for _, name := range ProjectManifestNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return ReadProjectManifest(path)
		}
	}
	return nil, nil
}

// ReadProjectManifest reads the project manifest at path. "plugins" is either
// a list of plugin names or a table with "enabled" and "dirs"; "plugin_dirs"
// adds further directories. Relative directories are resolved against the
// manifest's directory.
func ReadProjectManifest(path string) (*ProjectManifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, kiterror.FileSystem(path, "cannot read project manifest").
			WithOperation("plugin.ReadProjectManifest").
			WithDetail("cause", err.Error())
	}
	fields, err := decodeManifest(content, path)
	if err != nil {
		return nil, kiterror.Wrap(err, "invalid project manifest "+path).
			WithCode(kiterror.CodeInvalidConfig).
			WithOperation("plugin.ReadProjectManifest")
	}

	pm := &ProjectManifest{Path: path}
	var dirs []string
	switch v := fields["plugins"].(type) {
	case map[string]any:
		pm.Plugins = stringList(v["enabled"])
		dirs = stringList(v["dirs"])
	default:
		pm.Plugins = stringList(v)
	}
	dirs = append(dirs, stringList(fields["plugin_dirs"])...)

	base := filepath.Dir(path)
	for _, dir := range dirs {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(base, dir)
		}
		pm.PluginDirs = append(pm.PluginDirs, dir)
	}
	return pm, nil
}

func decodeManifest(content []byte, filename string) (map[string]any, error) {
	var fields map[string]any

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &fields); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(content, &fields); err != nil {
			return nil, err
		}
	case ".hcl":
		decoded, err := decodeHCL(content, filename)
		if err != nil {
			return nil, err
		}
		fields = decoded
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", filepath.Ext(filename))
	}

	if fields == nil {
		fields = make(map[string]any)
	}
	return fields, nil
}

// decodeHCL evaluates the top-level attributes of an HCL body without
// variables or functions
func decodeHCL(content []byte, filename string) (map[string]any, error) {
	file, diags := hclparse.NewParser().ParseHCL(content, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	fields := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		value, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		native, err := ctyToNative(value)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		fields[name] = native
	}
	return fields, nil
}

func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty.Equals(cty.String):
		return v.AsString(), nil
	case ty.Equals(cty.Number):
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, err
		}
		return f, nil
	case ty.Equals(cty.Bool):
		return v.True(), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", key.AsString(), err)
			}
			out[key.AsString()] = native
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func stringList(v any) []string {
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := strings.TrimSpace(fmt.Sprintf("%v", item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return kitstringx.SplitAndTrim(val, ",")
	default:
		return nil
	}
}
