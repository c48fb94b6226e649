package infra

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

//go:embed model.conf
var defaultModel string

//go:embed policy.csv
var defaultPolicy string

// NewEnforcer loads model and policy from disk. Empty paths fall back to the
// model and policy compiled into the binary.
func NewEnforcer(modelPath, policyPath string) (*casbin.Enforcer, error) {
	if modelPath != "" && policyPath != "" {
		return casbin.NewEnforcer(modelPath, policyPath)
	}

	m, err := DefaultModel()
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	if err := LoadPolicyText(e, defaultPolicy); err != nil {
		return nil, err
	}
	return e, nil
}

func DefaultModel() (model.Model, error) {
	return model.NewModelFromString(defaultModel)
}

// LoadPolicyText adds "p, ..." and "g, ..." lines in policy.csv format.
func LoadPolicyText(e *casbin.Enforcer, text string) error {
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ",")
		params := make([]interface{}, 0, len(fields)-1)
		for _, f := range fields[1:] {
			params = append(params, strings.TrimSpace(f))
		}

		var err error
		switch strings.TrimSpace(fields[0]) {
		case "p":
			_, err = e.AddPolicy(params...)
		case "g":
			_, err = e.AddGroupingPolicy(params...)
		default:
			return fmt.Errorf("rbac policy line %d: unknown type %q", i+1, fields[0])
		}
		if err != nil {
			return fmt.Errorf("rbac policy line %d: %w", i+1, err)
		}
	}
	return nil
}
