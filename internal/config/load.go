package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "FOLIO_"

// Format is a configuration file syntax.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// Load builds a Config from the defaults, the file at path and the
// environment. An empty path or a missing file leaves the defaults in
// place.
func Load(path string) (*Config, error) {
	var file map[string]any
	if path != "" {
		format, err := FormatOf(path)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if file, err = parse(path, format, data); err != nil {
				return nil, err
			}
		}
	}
	return build(file, LoadEnv(os.Environ()))
}

// Parse builds a Config from the defaults and data in the given format.
// The environment is not consulted.
func Parse(format Format, data []byte) (*Config, error) {
	m, err := parse("<input>", format, data)
	if err != nil {
		return nil, err
	}
	return build(m, nil)
}

func parse(source string, format Format, data []byte) (map[string]any, error) {
	var m map[string]any
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &m)
	case FormatYAML:
		err = yaml.Unmarshal(data, &m)
	default:
		return nil, fmt.Errorf("%s: %w", format, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return m, nil
}

// build overlays the file and environment maps onto the defaults. The
// merged map is re-encoded as TOML so one decoder applies every layer.
func build(file, env map[string]any) (*Config, error) {
	cfg := Default()
	merged := DeepMerge(DeepMerge(nil, file), env)
	if len(merged) > 0 {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(merged); err != nil {
			return nil, fmt.Errorf("encoding merged config: %w", err)
		}
		if err := toml.Unmarshal(buf.Bytes(), cfg); err != nil {
			return nil, &ParseError{Path: "<merged>", Message: err.Error(), Err: err}
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv converts FOLIO_* entries of environ ("KEY=value") into a
// configuration map.
func LoadEnv(environ []string) map[string]any {
	config := make(map[string]any)
	for _, env := range environ {
		if !strings.HasPrefix(env, EnvPrefix) {
			continue
		}
		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		setByPath(config, envToPath(name), parseValue(value))
	}
	return config
}

// envToPath converts FOLIO_EDITOR_UNDO_LIMIT to editor.undoLimit.
func envToPath(env string) string {
	parts := strings.Split(strings.TrimPrefix(env, EnvPrefix), "_")
	section := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return section
	}
	name := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if len(part) > 0 {
			name += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}
	return section + "." + name
}

// parseValue attempts to parse the string value into an appropriate type.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	lower := strings.ToLower(s)
	if lower == "true" || lower == "yes" || lower == "on" {
		return true
	}
	if lower == "false" || lower == "no" || lower == "off" {
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	// JSON array/object
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// DeepMerge recursively merges src into dst.
// Values in src override values in dst.
// Maps are merged recursively; other types are replaced.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
			continue
		}
		dst[key] = srcVal
	}
	return dst
}
