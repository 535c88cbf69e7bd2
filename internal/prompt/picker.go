package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// CustomContext is the select entry that switches to free text input.
const CustomContext = "(other)"

// PickNode asks the user to choose one of subjects.
func PickNode(ctx context.Context, d Driver, subjects []string) (string, error) {
	if len(subjects) == 0 {
		return "", ErrNoChoices
	}
	idx, err := d.Select(ctx, SelectConfig{
		Message:  "Node to render",
		Options:  subjects,
		PageSize: 15,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(subjects) {
		return "", fmt.Errorf("prompt: invalid node selection %d", idx)
	}
	return subjects[idx], nil
}

// PickContext asks for a rendering context among known, preselecting current.
// A trailing CustomContext entry lets the user type any other token.
func PickContext(ctx context.Context, d Driver, known []string, current string) (string, error) {
	options := append(dedupe(known), CustomContext)
	defaultIdx := indexOf(options, current)
	idx, err := d.Select(ctx, SelectConfig{
		Message:      "Rendering context",
		Options:      options,
		DefaultIndex: defaultIdx,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return "", fmt.Errorf("prompt: invalid context selection %d", idx)
	}
	if options[idx] != CustomContext {
		return options[idx], nil
	}
	return d.Input(ctx, InputConfig{
		Message:   "Context token",
		Default:   current,
		Validator: requireToken,
	})
}

func requireToken(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("context cannot be empty")
	}
	return nil
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
