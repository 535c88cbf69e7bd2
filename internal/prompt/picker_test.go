package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type stubDriver struct {
	inputs    []string
	selectIdx []int
	selects   []SelectConfig
	inputPos  int
	selectPos int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selects = append(s.selects, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func TestPickNode(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{1}}
	got, err := PickNode(context.Background(), driver, []string{"urn:a", "urn:b"})
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if got != "urn:b" {
		t.Fatalf("want urn:b, got %q", got)
	}

	if _, err := PickNode(context.Background(), driver, nil); !errors.Is(err, ErrNoChoices) {
		t.Fatalf("want ErrNoChoices, got %v", err)
	}
	if _, err := PickNode(context.Background(), &stubDriver{selectIdx: []int{5}}, []string{"urn:a"}); err == nil {
		t.Fatalf("out of range selection should fail")
	}
}

func TestPickContext_Known(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{1}}
	got, err := PickContext(context.Background(), driver, []string{"any", "list", "any", " "}, "list")
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if got != "list" {
		t.Fatalf("want list, got %q", got)
	}
	if diff := cmp.Diff([]string{"any", "list", CustomContext}, driver.selects[0].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if driver.selects[0].DefaultIndex != 1 {
		t.Fatalf("current context should be preselected, got %d", driver.selects[0].DefaultIndex)
	}
}

func TestPickContext_Custom(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{1}, inputs: []string{"card"}}
	got, err := PickContext(context.Background(), driver, []string{"any"}, "any")
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if got != "card" {
		t.Fatalf("want card, got %q", got)
	}

	empty := &stubDriver{selectIdx: []int{1}, inputs: []string{"  "}}
	if _, err := PickContext(context.Background(), empty, []string{"any"}, "any"); err == nil {
		t.Fatalf("empty custom context should be rejected")
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	other := errors.New("boom")
	if translateSurveyErr(other) != other {
		t.Fatalf("unrelated errors pass through")
	}
}
