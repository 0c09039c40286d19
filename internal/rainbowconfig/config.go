package rainbowconfig

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"

	"gopkg.in/yaml.v3"

	"github.com/rainbowcheck/rainbow/internal/rbwerrors"
)

// embeddedRulesets holds the library of reusable pattern/color rulesets
// a config may pull in by name via "extends" (SPEC_FULL.md §2/§3's
// ambient-config supplement, modeled on the teacher's
// //go:embed prefilter_rules.yaml layered-default pattern).
//
//go:embed rulesets/*.yaml
var embeddedRulesets embed.FS

// DefaultPrefix is the annotation prefix assumed when a config omits
// "prefix" (spec §6).
const DefaultPrefix = "COLOR::"

// Config is the validated, in-memory form of the user-authored JSON
// configuration (spec §6): the color palette, the assembled patterns,
// the annotation prefix, and — when set — the path to a subprocess
// executor.
type Config struct {
	Colors       []string
	Patterns     []Pattern
	Prefix       string
	ExecutorPath string // empty selects the in-process strategy
}

type rawConfig struct {
	Colors   []string          `json:"colors"`
	Patterns []json.RawMessage `json:"patterns"`
	Prefix   *string           `json:"prefix"`
	Executor *string           `json:"executor"`
	Extends  *string           `json:"extends"`
}

type rawPatternObj struct {
	Pattern string          `json:"pattern"`
	OnMatch json.RawMessage `json:"on_match"`
	Msg     *string         `json:"msg"`
}

type rulesetFile struct {
	Colors   []string `yaml:"colors"`
	Patterns []string `yaml:"patterns"`
}

// FromJSON parses and validates a Config from the bytes of a config
// file, raising rbwerrors.ConfigError with a field path in its message
// for any structural problem — the Go equivalent of the original's
// get_string/get_list_of_strings granularity (SPEC_FULL.md §4 item 6).
func FromJSON(data []byte) (*Config, error) {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &rbwerrors.ConfigError{Msg: fmt.Sprintf("parsing config: %v", err)}
	}

	cfg := &Config{Prefix: DefaultPrefix}

	if raw.Extends != nil {
		base, err := loadRuleset(*raw.Extends)
		if err != nil {
			return nil, err
		}
		cfg.Colors = base.Colors
		cfg.Patterns = make([]Pattern, len(base.Patterns))
		for i, q := range base.Patterns {
			cfg.Patterns[i] = Pattern{Query: q}
		}
	}

	if len(raw.Colors) > 0 {
		cfg.Colors = raw.Colors
	}
	if len(cfg.Colors) == 0 {
		return nil, &rbwerrors.ConfigError{Msg: "colors: expected a non-empty list of strings"}
	}

	if len(raw.Patterns) > 0 {
		patterns, err := parsePatterns(raw.Patterns)
		if err != nil {
			return nil, err
		}
		cfg.Patterns = patterns
	}
	if len(cfg.Patterns) == 0 {
		return nil, &rbwerrors.ConfigError{Msg: "patterns: expected a non-empty list"}
	}

	if raw.Prefix != nil {
		cfg.Prefix = *raw.Prefix
	}

	if raw.Executor != nil {
		path, err := exec.LookPath(*raw.Executor)
		if err != nil {
			return nil, &rbwerrors.ConfigError{Msg: fmt.Sprintf("executor: could not find executable %q: %v", *raw.Executor, err)}
		}
		cfg.ExecutorPath = path
	}

	return cfg, nil
}

func parsePatterns(raw []json.RawMessage) ([]Pattern, error) {
	patterns := make([]Pattern, len(raw))
	for i, item := range raw {
		var asString string
		if err := json.Unmarshal(item, &asString); err == nil {
			if asString == "" {
				return nil, &rbwerrors.ConfigError{Msg: fmt.Sprintf("patterns[%d]: expected a non-empty string", i)}
			}
			patterns[i] = Pattern{Query: asString}
			continue
		}

		var obj rawPatternObj
		if err := json.Unmarshal(item, &obj); err != nil {
			return nil, &rbwerrors.ConfigError{Msg: fmt.Sprintf("patterns[%d]: expected a string or an object", i)}
		}
		if obj.Pattern == "" {
			return nil, &rbwerrors.ConfigError{Msg: fmt.Sprintf("patterns[%d].pattern: expected a non-empty string", i)}
		}

		p := Pattern{Query: obj.Pattern}
		if len(obj.OnMatch) > 0 {
			pairs, err := parseOnMatch(obj.OnMatch)
			if err != nil {
				return nil, &rbwerrors.ConfigError{Msg: fmt.Sprintf("patterns[%d].on_match: %v", i, err)}
			}
			p.OnMatch = pairs
			if obj.Msg == nil {
				return nil, &rbwerrors.ConfigError{Msg: fmt.Sprintf("patterns[%d].msg: required when on_match is present", i)}
			}
		}
		if obj.Msg != nil {
			p.Msg = *obj.Msg
		}
		patterns[i] = p
	}
	return patterns, nil
}

// parseOnMatch decodes an on_match object preserving JSON key order,
// since that order becomes the column order of the assembled query's
// RETURN DISTINCT clause and Go's map type would otherwise randomize it.
func parseOnMatch(raw json.RawMessage) ([]OnMatchPair, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object")
	}

	var pairs []OnMatchPair
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string key")
		}
		var expr string
		if err := dec.Decode(&expr); err != nil {
			return nil, fmt.Errorf("%s: expected a string value", key)
		}
		pairs = append(pairs, OnMatchPair{Var: key, Expr: expr})
	}
	return pairs, nil
}

func loadRuleset(name string) (*rulesetFile, error) {
	data, err := embeddedRulesets.ReadFile("rulesets/" + name + ".yaml")
	if err != nil {
		return nil, &rbwerrors.ConfigError{Msg: fmt.Sprintf("extends: unknown ruleset %q", name)}
	}
	var rs rulesetFile
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, &rbwerrors.ConfigError{Msg: fmt.Sprintf("extends: parsing ruleset %q: %v", name, err)}
	}
	return &rs, nil
}

// Run serializes createQuery (the scope tree's already-produced Cypher)
// through ex, then dispatches every pattern's assembled query in config
// order and folds their interpreted verdicts into one overall Verdict
// (spec §4.2, §4.5 step 5). Execution failure never escapes as an error:
// it degrades to Unknown, matching spec §7's "query-time I/O failure
// yields unknown, never invalid."
func (c *Config) Run(ctx context.Context, ex Executor, createQuery string, log *slog.Logger) Verdict {
	if log == nil {
		log = slog.Default()
	}

	if _, err := ex.Execute(ctx, createQuery); err != nil {
		log.Warn("could not load call graph into executor", "error", err.Error())
		return Unknown
	}

	overall := Valid
	for _, p := range c.Patterns {
		table, err := ex.Execute(ctx, p.assemble())
		if err != nil {
			log.Warn("pattern query failed", "pattern", p.Query, "error", err.Error())
			overall = combine(overall, Unknown)
			continue
		}
		overall = combine(overall, p.interpret(table, log))
	}
	return overall
}
