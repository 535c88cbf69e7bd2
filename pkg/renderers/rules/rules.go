// Package rules builds renderer strategies from declarative configuration.
//
// A Rule narrows the nodes it accepts by rdf type, by context and by an
// optional expr-lang boolean expression, then resolves to a template or to a
// fixed output string.
package rules

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/goliatone/go-nodeview/pkg/graph"
	"github.com/goliatone/go-nodeview/pkg/render"
)

// Rule is the declarative form of a renderer. A nil Priority means
// render.DefaultPriority; an explicit 0 ranks the rule below the catch-all.
type Rule struct {
	Name     string   `yaml:"name" toml:"name"`
	Priority *int     `yaml:"priority" toml:"priority"`
	Types    []string `yaml:"types" toml:"types"`
	Contexts []string `yaml:"contexts" toml:"contexts"`
	When     string   `yaml:"when" toml:"when"`
	Template string   `yaml:"template" toml:"template"`
	Output   string   `yaml:"output" toml:"output"`
}

// Priority returns a pointer to n for building rules in code.
func Priority(n int) *int {
	return &n
}

// RuleRenderer is a compiled Rule.
type RuleRenderer struct {
	rule     Rule
	priority int
	types    []graph.Identifier
	contexts map[render.Context]struct{}
	prefixes graph.Prefixes
	program  *vm.Program
}

// NewRuleRenderer validates and compiles rule. Type names are expanded with
// prefixes merged over graph.DefaultPrefixes.
func NewRuleRenderer(rule Rule, prefixes graph.Prefixes) (*RuleRenderer, error) {
	rule.Name = strings.TrimSpace(rule.Name)
	if rule.Name == "" {
		return nil, fmt.Errorf("rules: rule name is required")
	}
	if rule.Template != "" && rule.Output != "" {
		return nil, fmt.Errorf("rules: rule %q sets both template and output", rule.Name)
	}
	priority := render.DefaultPriority
	if rule.Priority != nil {
		priority = *rule.Priority
	}

	merged := graph.DefaultPrefixes().Merge(prefixes)
	r := &RuleRenderer{
		rule:     rule,
		priority: priority,
		prefixes: merged,
	}
	for _, name := range rule.Types {
		r.types = append(r.types, merged.Expand(name))
	}
	if len(rule.Contexts) > 0 {
		r.contexts = make(map[render.Context]struct{}, len(rule.Contexts))
		for _, ctx := range rule.Contexts {
			r.contexts[render.Context(ctx)] = struct{}{}
		}
	}

	if when := strings.TrimSpace(rule.When); when != "" {
		program, err := expr.Compile(when, expr.Env(environment{}.vars()), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("rules: compile %q for rule %q: %w", when, rule.Name, err)
		}
		r.program = program
	}
	return r, nil
}

// Name implements render.Named.
func (r *RuleRenderer) Name() string {
	return r.rule.Name
}

// Priority implements render.Renderer.
func (r *RuleRenderer) Priority() int {
	return r.priority
}

// TemplateIdentifier implements render.Identified.
func (r *RuleRenderer) TemplateIdentifier() string {
	if r.rule.Template != "" {
		return r.rule.Template
	}
	return r.rule.Name
}

// Rule returns the normalised rule r was compiled from.
func (r *RuleRenderer) Rule() Rule {
	return r.rule
}

// Accept implements render.Renderer. Expression errors reject the node.
func (r *RuleRenderer) Accept(node graph.Node, source graph.DataSource, ctx render.Context, types []graph.Identifier, opts render.Options) bool {
	if node == nil {
		return false
	}
	if r.contexts != nil {
		if _, ok := r.contexts[ctx]; !ok {
			return false
		}
	}
	if len(r.types) > 0 && !matchesAny(types, r.types) {
		return false
	}
	if r.program == nil {
		return true
	}

	env := environment{
		node:     node,
		source:   source,
		ctx:      ctx,
		types:    types,
		opts:     opts,
		prefixes: r.prefixes,
	}
	out, err := expr.Run(r.program, env.vars())
	if err != nil {
		return false
	}
	ok, _ := out.(bool)
	return ok
}

// Render implements render.Renderable.
func (r *RuleRenderer) Render(render.Options) render.Result {
	if r.rule.Output != "" {
		output := r.rule.Output
		return render.Func(func(render.Options) string { return output })
	}
	return render.Template(r.TemplateIdentifier())
}

// RegisterAll compiles every rule and registers the results on reg in order.
// Nothing is registered when any rule fails to compile.
func RegisterAll(reg *render.Registry, rules []Rule, prefixes graph.Prefixes) error {
	if reg == nil {
		return fmt.Errorf("rules: registry is required")
	}
	compiled := make([]*RuleRenderer, 0, len(rules))
	for _, rule := range rules {
		r, err := NewRuleRenderer(rule, prefixes)
		if err != nil {
			return err
		}
		compiled = append(compiled, r)
	}
	for _, r := range compiled {
		if err := reg.Register(r); err != nil {
			return fmt.Errorf("rules: %w", err)
		}
	}
	return nil
}

func matchesAny(have, want []graph.Identifier) bool {
	for _, id := range want {
		if graph.HasType(have, id) {
			return true
		}
	}
	return false
}
