package render

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistry_RegisterGrowsByOne(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(LabelRenderer{})

	before := len(reg.Renderers())
	if err := reg.Register(HTMLSnippetRenderer{}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if got := len(reg.Renderers()); got != before+1 {
		t.Fatalf("want %d renderers, got %d", before+1, got)
	}
	if diff := cmp.Diff([]string{"label_renderer", "html_snippet_renderer"}, reg.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_RejectsDuplicatesAndNil(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(LabelRenderer{})

	err := reg.Register(&LabelRenderer{})
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate variant error, got %v", err)
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
	if reg.Len() != 1 {
		t.Fatalf("failed registrations must not grow the registry, got %d", reg.Len())
	}
}

func TestRegistry_MustRegisterPanics(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(LabelRenderer{})
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate registration")
		}
	}()
	reg.MustRegister(LabelRenderer{})
}

func TestRegistry_GetHasForgetAll(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(LabelRenderer{}, NewFunc("card", 2, nil, nil))

	if !reg.Has("card") {
		t.Fatalf("expected card to be registered")
	}
	if _, err := reg.Get("missing"); err == nil {
		t.Fatalf("expected not found error")
	}

	snapshot := reg.Renderers()
	reg.ForgetAll()
	if reg.Len() != 0 || len(reg.Names()) != 0 {
		t.Fatalf("forget all should empty the registry")
	}
	if len(snapshot) != 2 {
		t.Fatalf("earlier snapshots must not be affected, got %d", len(snapshot))
	}
}

func TestRegistry_ConcurrentRegisterAndSelect(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(Base{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = reg.Register(NewFunc("r"+strings.Repeat("x", i), i, nil, nil))
		}(i)
		go func() {
			defer wg.Done()
			if _, ok := reg.Select(Selection{Context: ContextAny}); !ok {
				t.Errorf("base renderer should always be selectable")
			}
		}()
	}
	wg.Wait()

	if reg.Len() != 9 {
		t.Fatalf("want 9 renderers, got %d", reg.Len())
	}
}

func TestDefaultRegistry(t *testing.T) {
	ForgetAll()
	t.Cleanup(ForgetAll)

	before := len(ListRegistered())
	MustRegister(LabelRenderer{})
	if got := len(ListRegistered()); got != before+1 {
		t.Fatalf("want %d, got %d", before+1, got)
	}
	if diff := cmp.Diff([]string{"label_renderer"}, ListRegisteredNames()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if err := Register(LabelRenderer{}); err == nil {
		t.Fatalf("expected duplicate error from default registry")
	}
	if Default().Len() != 1 {
		t.Fatalf("default registry should hold one renderer")
	}
}
