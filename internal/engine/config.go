package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/triage-ai/mcplint/internal/rules"
)

// ConfigError reports a configuration source that could not be loaded or
// parsed. It aborts a run before any rule executes. Entries naming unknown
// rule IDs are NOT config errors; they are ignored.
type ConfigError struct {
	Source string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Source, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// RuleSetting is one entry of a validator configuration: either a bool
// (enable/disable at default severity) or an explicit severity (enable at
// that severity).
type RuleSetting struct {
	Disabled bool
	Severity rules.Severity // empty means "keep the rule default"
}

// Config maps rule IDs to settings. Rules absent from the map run at their
// default severity.
type Config map[string]RuleSetting

func settingFromScalar(v any) (RuleSetting, error) {
	switch val := v.(type) {
	case bool:
		return RuleSetting{Disabled: !val}, nil
	case string:
		sev := rules.Severity(val)
		if !sev.Valid() {
			return RuleSetting{}, fmt.Errorf("invalid severity %q", val)
		}
		return RuleSetting{Severity: sev}, nil
	default:
		return RuleSetting{}, fmt.Errorf("rule setting must be a boolean or a severity string, got %T", v)
	}
}

// UnmarshalJSON accepts true/false or a severity string.
func (s *RuleSetting) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	setting, err := settingFromScalar(v)
	if err != nil {
		return err
	}
	*s = setting
	return nil
}

// UnmarshalYAML accepts true/false or a severity string.
func (s *RuleSetting) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	setting, err := settingFromScalar(v)
	if err != nil {
		return err
	}
	*s = setting
	return nil
}

// fileConfig is the on-disk configuration shape.
type fileConfig struct {
	Rules Config `json:"rules" yaml:"rules"`
}

// LoadConfigFile reads a YAML or JSON rule configuration file. A missing,
// unreadable, or unparseable file is a ConfigError.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Source: path, Err: err}
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &fc)
	default:
		err = yaml.Unmarshal(data, &fc)
	}
	if err != nil {
		return nil, &ConfigError{Source: path, Err: err}
	}
	return fc.Rules, nil
}

// ResolveConfig merges partial configurations in precedence order (later
// wins per rule ID) into one effective configuration covering every
// registered rule. Entries for unknown rule IDs are inert.
func ResolveConfig(reg *rules.Registry, layers ...Config) map[string]rules.Setting {
	effective := make(map[string]rules.Setting, len(reg.All()))
	for _, r := range reg.All() {
		effective[r.ID] = rules.Setting{Enabled: true, Severity: r.Severity}
	}

	for _, layer := range layers {
		for id, setting := range layer {
			r, known := reg.Get(id)
			if !known {
				continue
			}
			switch {
			case setting.Disabled:
				effective[id] = rules.Setting{Enabled: false, Severity: r.Severity}
			case setting.Severity != "":
				effective[id] = rules.Setting{
					Enabled:    true,
					Severity:   setting.Severity,
					Overridden: setting.Severity != r.Severity,
				}
			default:
				effective[id] = rules.Setting{Enabled: true, Severity: r.Severity}
			}
		}
	}
	return effective
}

// configHash computes a stable identity for an effective configuration, so
// run metadata can say which configuration produced a result.
func configHash(effective map[string]rules.Setting) string {
	ids := make([]string, 0, len(effective))
	for id := range effective {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	h := sha256.New()
	for _, id := range ids {
		s := effective[id]
		fmt.Fprintf(h, "%s=%t:%s:%t\n", id, s.Enabled, s.Severity, s.Overridden)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
