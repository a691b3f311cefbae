// Package policy provides configurable carve-outs from the rule that only
// the tenant's default organisation sees records across the tenant.
package policy

import (
	"fmt"
	"os"
	"slices"

	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"
	"github.com/covercore/covercore/internal/authz"
	"github.com/covercore/covercore/internal/logr"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
)

type (
	// Config is the YAML representation of the carve-outs.
	Config struct {
		CarveOuts []Rule `yaml:"carve_outs"`
	}

	// Rule grants tenant-wide visibility. Every condition that is set must
	// hold for the rule to grant visibility.
	Rule struct {
		Name string `yaml:"name"`
		// Organisations the subject must belong to.
		Organisations []uuid.UUID `yaml:"organisations"`
		// Products the record must belong to.
		Products []uuid.UUID `yaml:"products"`
		// Expression is evaluated against the subject and product and must
		// return a boolean.
		Expression string `yaml:"expression"`
	}
)

// LoadConfigFile reads carve-outs from a YAML file.
func LoadConfigFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.UnmarshalWithOptions(b, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("parsing carve-outs: %w", err)
	}
	return &cfg, nil
}

// CarveOuts grants tenant-wide visibility according to configured rules. With
// no rules it grants nothing.
type CarveOuts struct {
	logr.Logger

	rules []compiledRule
}

var _ authz.TenantVisibility = (*CarveOuts)(nil)

type compiledRule struct {
	Rule

	program *vm.Program
}

// New compiles the carve-outs. A nil config yields carve-outs that grant
// nothing.
func New(logger logr.Logger, cfg *Config) (*CarveOuts, error) {
	c := &CarveOuts{Logger: logger}
	if cfg == nil {
		return c, nil
	}
	for _, rule := range cfg.CarveOuts {
		if rule.Name == "" {
			return nil, fmt.Errorf("carve-out missing name")
		}
		if len(rule.Organisations) == 0 && len(rule.Products) == 0 && rule.Expression == "" {
			return nil, fmt.Errorf("carve-out %s sets no conditions", rule.Name)
		}
		compiled := compiledRule{Rule: rule}
		if rule.Expression != "" {
			program, err := expr.Compile(rule.Expression, expr.Env(newEnv(nil, nil)), expr.AsBool())
			if err != nil {
				return nil, fmt.Errorf("compiling carve-out %s: %w", rule.Name, err)
			}
			compiled.program = program
		}
		c.rules = append(c.rules, compiled)
	}
	return c, nil
}

// GrantsTenantVisibility reports whether any carve-out grants the subject
// visibility across its tenant for the product.
func (c *CarveOuts) GrantsTenantVisibility(subj *authz.Principal, productID *uuid.UUID) bool {
	for _, rule := range c.rules {
		ok, err := rule.grants(subj, productID)
		if err != nil {
			c.Error(err, "evaluating carve-out", "carve_out", rule.Name, "subject", subj)
			continue
		}
		if ok {
			c.V(2).Info("tenant visibility granted by carve-out", "carve_out", rule.Name, "subject", subj)
			return true
		}
	}
	return false
}

func (r compiledRule) grants(subj *authz.Principal, productID *uuid.UUID) (bool, error) {
	if len(r.Organisations) > 0 && !slices.Contains(r.Organisations, subj.OrganisationID) {
		return false, nil
	}
	if len(r.Products) > 0 && (productID == nil || !slices.Contains(r.Products, *productID)) {
		return false, nil
	}
	if r.program == nil {
		return true, nil
	}
	output, err := expr.Run(r.program, newEnv(subj, productID))
	if err != nil {
		return false, err
	}
	return output.(bool), nil
}

// newEnv constructs the environment against which expressions are
// evaluated.
func newEnv(subj *authz.Principal, productID *uuid.UUID) map[string]any {
	env := map[string]any{
		"tenant":       "",
		"organisation": "",
		"user":         "",
		"user_type":    "",
		"customer":     "",
		"product":      "",
		"permissions":  []string{},
		"has":          func(string) bool { return false },
	}
	if productID != nil {
		env["product"] = productID.String()
	}
	if subj == nil {
		return env
	}
	perms := make([]string, 0)
	for _, p := range subj.Permissions() {
		perms = append(perms, p.Name())
	}
	env["tenant"] = subj.TenantID.String()
	env["organisation"] = subj.OrganisationID.String()
	env["user"] = subj.UserID.String()
	env["user_type"] = string(subj.UserType)
	if subj.CustomerID != nil {
		env["customer"] = subj.CustomerID.String()
	}
	env["permissions"] = perms
	env["has"] = func(perm string) bool {
		return slices.Contains(perms, perm)
	}
	return env
}
