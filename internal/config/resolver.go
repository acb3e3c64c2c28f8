// Package config resolves the effective configuration from built-in
// defaults, setup.cfg, pyproject.toml, and CLI flags, in that order of
// precedence. Options are replaced wholesale by the highest-priority layer
// that supplies them, never merged across layers.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/ini.v1"

	"docsleuth.dev/pkg/docsleuth/internal/model"
)

const (
	// SectionName is the recognized setup.cfg section and the pyproject
	// table under [tool].
	SectionName = "docsleuth"

	setupCfgName  = "setup.cfg"
	pyprojectName = "pyproject.toml"
)

// Recognized option keys, after dash-to-underscore normalization.
const (
	keyIgnoreErrors    = "ignore_errors"
	keyIgnorePaths     = "ignore_paths"
	keyIgnoreHidden    = "ignore_hidden"
	keyFilenamePattern = "filename_pattern"
	keyVerbose         = "verbose"
)

// ConfigError reports a malformed config file or an unknown option key in a
// recognized section. It is fatal: nothing is validated after it.
type ConfigError struct {
	File string
	Key  string
	Err  error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Key != "":
		return fmt.Sprintf("config %s: unknown option %q", e.File, e.Key)
	case e.File != "":
		return fmt.Sprintf("config %s: %v", e.File, e.Err)
	default:
		return fmt.Sprintf("config: %v", e.Err)
	}
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Overrides is one configuration layer. Nil fields do not override the
// layer below; non-nil fields replace it wholesale.
type Overrides struct {
	IgnoreErrors    *[]string
	IgnorePaths     *[]string
	IgnoreHidden    *bool
	FilenamePattern *string
	Verbose         *int
}

func (o *Overrides) apply(upper Overrides) {
	if upper.IgnoreErrors != nil {
		o.IgnoreErrors = upper.IgnoreErrors
	}

	if upper.IgnorePaths != nil {
		o.IgnorePaths = upper.IgnorePaths
	}

	if upper.IgnoreHidden != nil {
		o.IgnoreHidden = upper.IgnoreHidden
	}

	if upper.FilenamePattern != nil {
		o.FilenamePattern = upper.FilenamePattern
	}

	if upper.Verbose != nil {
		o.Verbose = upper.Verbose
	}
}

// Resolve merges defaults, setup.cfg, pyproject.toml, and CLI overrides into
// the effective configuration. Config files are read from cwd only, never
// searched upward.
func Resolve(cli Overrides, cwd string) (*model.EffectiveConfig, error) {
	resolved := Overrides{}

	setupLayer, err := fromSetupCfg(cwd)
	if err != nil {
		return nil, err
	}

	resolved.apply(setupLayer)

	pyprojectLayer, err := fromPyproject(cwd)
	if err != nil {
		return nil, err
	}

	resolved.apply(pyprojectLayer)
	resolved.apply(cli)

	return build(resolved)
}

func build(o Overrides) (*model.EffectiveConfig, error) {
	cfg := &model.EffectiveConfig{
		IgnoreErrors: map[string]struct{}{},
	}

	if o.IgnoreErrors != nil {
		for _, code := range *o.IgnoreErrors {
			cfg.IgnoreErrors[code] = struct{}{}
		}
	}

	if o.IgnorePaths != nil {
		for _, path := range *o.IgnorePaths {
			cfg.IgnorePaths = append(cfg.IgnorePaths, filepath.Clean(path))
		}
	}

	if o.IgnoreHidden != nil {
		cfg.IgnoreHidden = *o.IgnoreHidden
	}

	pattern := model.DefaultFilenamePattern
	if o.FilenamePattern != nil {
		pattern = *o.FilenamePattern
	}

	compiled, err := model.CompileFilenamePattern(pattern)
	if err != nil {
		return nil, &ConfigError{Key: "", Err: fmt.Errorf("invalid filename pattern %q: %w", pattern, err)}
	}

	cfg.FilenamePattern = compiled

	if o.Verbose != nil {
		cfg.Verbose = *o.Verbose
	}

	if cfg.Verbose < 0 {
		cfg.Verbose = 0
	}

	if cfg.Verbose > 2 {
		cfg.Verbose = 2
	}

	return cfg, nil
}

// fromSetupCfg reads the [docsleuth] section of setup.cfg. A missing file or
// missing section supplies nothing; a malformed file or unknown key is fatal.
func fromSetupCfg(cwd string) (Overrides, error) {
	var layer Overrides

	path := filepath.Join(cwd, setupCfgName)
	if _, err := os.Stat(path); err != nil {
		slog.Debug("config file not found", "file", setupCfgName)
		return layer, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return layer, &ConfigError{File: setupCfgName, Err: err}
	}

	section, err := file.GetSection(SectionName)
	if err != nil {
		slog.Debug("config file has no recognized section", "file", setupCfgName, "section", SectionName)
		return layer, nil
	}

	for _, key := range section.Keys() {
		name := normalizeKey(key.Name())
		raw := strings.TrimSpace(key.String())

		// Empty values do not supply the option.
		if raw == "" {
			continue
		}

		if err := setOption(&layer, setupCfgName, name, raw); err != nil {
			return Overrides{}, err
		}
	}

	return layer, nil
}

// fromPyproject reads the [tool.docsleuth] table of pyproject.toml.
func fromPyproject(cwd string) (Overrides, error) {
	var layer Overrides

	path := filepath.Join(cwd, pyprojectName)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("config file not found", "file", pyprojectName)
		return layer, nil
	} else if err != nil {
		return layer, &ConfigError{File: pyprojectName, Err: err}
	}

	var doc struct {
		Tool map[string]map[string]any `toml:"tool"`
	}

	if err := toml.Unmarshal(data, &doc); err != nil {
		return layer, &ConfigError{File: pyprojectName, Err: err}
	}

	table, ok := doc.Tool[SectionName]
	if !ok {
		slog.Debug("config file has no recognized section", "file", pyprojectName, "section", "tool."+SectionName)
		return layer, nil
	}

	for key, value := range table {
		name := normalizeKey(key)

		raw, err := tomlValue(value)
		if err != nil {
			return Overrides{}, &ConfigError{File: pyprojectName, Err: fmt.Errorf("option %q: %w", name, err)}
		}

		if raw == "" {
			continue
		}

		if err := setOption(&layer, pyprojectName, name, raw); err != nil {
			return Overrides{}, err
		}
	}

	return layer, nil
}

// tomlValue flattens a decoded TOML value into the string form the option
// setter expects. Arrays become comma-joined lists.
func tomlValue(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case []any:
		items := make([]string, 0, len(v))

		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return "", fmt.Errorf("unsupported list element %T", item)
			}

			items = append(items, s)
		}

		return strings.Join(items, ","), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", value)
	}
}

func setOption(layer *Overrides, file, name, raw string) error {
	switch name {
	case keyIgnoreErrors:
		values := ParseList(raw)
		layer.IgnoreErrors = &values
	case keyIgnorePaths:
		values := ParseList(raw)
		layer.IgnorePaths = &values
	case keyFilenamePattern:
		layer.FilenamePattern = &raw
	case keyIgnoreHidden:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return &ConfigError{File: file, Err: fmt.Errorf("option %q: %w", name, err)}
		}

		layer.IgnoreHidden = &b
	case keyVerbose:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return &ConfigError{File: file, Err: fmt.Errorf("option %q: %w", name, err)}
		}

		layer.Verbose = &n
	default:
		return &ConfigError{File: file, Key: name}
	}

	return nil
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.TrimSpace(key), "-", "_")
}

// ParseList splits a comma or newline separated option value into items,
// tolerating extra whitespace and empty entries.
func ParseList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	items := make([]string, 0, len(fields))

	for _, field := range fields {
		if item := strings.TrimSpace(field); item != "" {
			items = append(items, item)
		}
	}

	return items
}
