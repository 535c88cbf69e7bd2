package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-nodeview/pkg/render"
)

func newRenderersCmd(global *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "renderers",
		Short: "List registered renderers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), global)
			if err != nil {
				return err
			}
			return writeRenderers(cmd.OutOrStdout(), a.registry)
		},
	}
}

// rendererInfo describes one registry entry.
type rendererInfo struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
	Template string `json:"template"`
	Order    int    `json:"order"`
}

// describeRenderers lists renderers by descending priority, registration
// order breaking ties the way selection does.
func describeRenderers(reg *render.Registry) []rendererInfo {
	renderers := reg.Renderers()
	out := make([]rendererInfo, 0, len(renderers))
	for idx, r := range renderers {
		out = append(out, rendererInfo{
			Name:     render.Name(r),
			Priority: r.Priority(),
			Template: render.TemplateIdentifier(r),
			Order:    idx,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

func writeRenderers(w io.Writer, reg *render.Registry) error {
	if _, err := fmt.Fprintln(w, StyleTitle.Render("Renderers")); err != nil {
		return err
	}
	for _, info := range describeRenderers(reg) {
		line := fmt.Sprintf("  %s %s %s",
			StyleNumber.Render(fmt.Sprintf("%4d", info.Priority)),
			info.Name,
			StyleDim.Render("("+info.Template+")"),
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
