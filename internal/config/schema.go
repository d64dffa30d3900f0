// internal/config/schema.go
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// SchemaError lists every violation found in a configuration file,
// each prefixed with the JSON path that produced it.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return "invalid configuration:\n\t" + strings.Join(e.Violations, "\n\t")
}

// requireWhen expresses "if flag is true these keys are required" in
// draft-4 terms.
func requireWhen(flag string, keys ...string) map[string]any {
	return map[string]any{
		"anyOf": []any{
			map[string]any{
				"properties": map[string]any{
					flag: map[string]any{"enum": []any{false}},
				},
			},
			map[string]any{"required": keys},
		},
	}
}

func nonNegativeNumber() map[string]any {
	return map[string]any{"type": "number", "minimum": 0}
}

func limitPair(min, max float64) map[string]any {
	return map[string]any{
		"type":     "array",
		"minItems": 2,
		"maxItems": 2,
		"items": map[string]any{
			"type":    "number",
			"minimum": min,
			"maximum": max,
		},
	}
}

var configSchema = map[string]any{
	"$schema":              "http://json-schema.org/draft-04/schema#",
	"type":                 "object",
	"additionalProperties": false,
	"required": []string{
		"daemon", "log_name", "control_machines", "telescope", "virtual",
		"query_delay", "initialization_timeout", "slew_timeout",
		"homing_timeout", "limit_timeout", "ping_timeout",
		"ha_soft_limits", "dec_soft_limits", "park_positions",
		"has_roof", "has_covers", "has_focus",
	},
	"properties": map[string]any{
		"daemon":   map[string]any{"type": "string"},
		"log_name": map[string]any{"type": "string"},
		"log_level": map[string]any{
			"type": "string",
			"enum": []any{"debug", "info", "warn", "error"},
		},
		"control_machines": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"telescope": map[string]any{
			"type": "string",
			"enum": []any{"W1m", "SuperWASP"},
		},
		"virtual": map[string]any{"type": "boolean"},

		"query_delay":            nonNegativeNumber(),
		"initialization_timeout": nonNegativeNumber(),
		"slew_timeout":           nonNegativeNumber(),
		"homing_timeout":         nonNegativeNumber(),
		"limit_timeout":          nonNegativeNumber(),
		"ping_timeout":           nonNegativeNumber(),

		"ha_soft_limits":  limitPair(-180, 180),
		"dec_soft_limits": limitPair(-90, 90),

		"park_positions": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"required":             []string{"desc", "alt", "az"},
				"properties": map[string]any{
					"desc": map[string]any{"type": "string"},
					"alt": map[string]any{
						"type":    "number",
						"minimum": 0,
						"maximum": 90,
					},
					"az": map[string]any{
						"type":    "number",
						"minimum": 0,
						"maximum": 360,
					},
				},
			},
		},

		"has_roof":   map[string]any{"type": "boolean"},
		"has_covers": map[string]any{"type": "boolean"},
		"has_focus":  map[string]any{"type": "boolean"},

		"cover_timeout":      nonNegativeNumber(),
		"roof_open_timeout":  nonNegativeNumber(),
		"roof_close_timeout": nonNegativeNumber(),
		"focus_tolerance":    nonNegativeNumber(),
		"focus_timeout":      nonNegativeNumber(),

		"security_system_daemon": map[string]any{"type": "string"},
		"security_system_key":    map[string]any{"type": "string"},
	},
	"allOf": []any{
		requireWhen("has_covers", "cover_timeout"),
		requireWhen("has_roof", "roof_open_timeout", "roof_close_timeout"),
		requireWhen("has_focus", "focus_tolerance", "focus_timeout"),
	},
	// The security system daemon and its auth key only make sense as
	// a pair.
	"dependencies": map[string]any{
		"security_system_daemon": []string{"security_system_key"},
		"security_system_key":    []string{"security_system_daemon"},
	},
}

// validateSchema runs the document through the schema and returns the
// violation list, path-qualified and sorted.
func validateSchema(doc []byte) ([]string, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(configSchema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}
	violations := make([]string, 0, len(result.Errors()))
	for _, res := range result.Errors() {
		violations = append(violations, fmt.Sprintf("%s: %s", res.Field(), res.Description()))
	}
	sort.Strings(violations)
	return violations, nil
}
