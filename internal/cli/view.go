package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-nodeview/internal/prompt"
	"github.com/goliatone/go-nodeview/pkg/graph"
	"github.com/goliatone/go-nodeview/pkg/render"
)

// newPromptDriver is swapped in tests.
var newPromptDriver = prompt.NewSurveyDriver

type viewOpts struct {
	context     string
	interactive bool
	options     map[string]string
}

func newViewCmd(global *globalOpts) *cobra.Command {
	opts := viewOpts{}

	cmd := &cobra.Command{
		Use:   "view [node]",
		Short: "Render a node to stdout",
		Long:  `Render a node, given as a compact ("ex:alice") or absolute IRI, with the best matching renderer.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !opts.interactive {
				return errors.New("a node is required unless --interactive is set")
			}
			a, err := newApp(cmd.Context(), global)
			if err != nil {
				return err
			}
			return runView(cmd.Context(), cmd.OutOrStdout(), a, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.context, "context", "", "rendering context (defaults to the configured one)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick the node and context interactively")
	cmd.Flags().StringToStringVarP(&opts.options, "option", "o", nil, "extra template options (key=value)")

	return cmd
}

func runView(ctx context.Context, w io.Writer, a *app, args []string, opts viewOpts) error {
	term := ""
	if len(args) > 0 {
		term = args[0]
	}
	renderCtx := opts.context

	if opts.interactive {
		driver := newPromptDriver()
		if term == "" {
			subjects := make([]string, 0)
			prefixes := a.store.Prefixes()
			for _, subject := range a.store.Subjects() {
				subjects = append(subjects, prefixes.Compact(subject))
			}
			picked, err := prompt.PickNode(ctx, driver, subjects)
			if err != nil {
				return err
			}
			term = picked
		}
		if renderCtx == "" {
			current := a.renderer.Context().String()
			picked, err := prompt.PickContext(ctx, driver, a.contexts(), current)
			if err != nil {
				return err
			}
			renderCtx = picked
		}
	}

	node, err := a.node(term)
	if err != nil {
		return err
	}
	out := a.renderer.View(viewOptions(node, renderCtx, opts.options))
	if render.IsWarning(out) {
		a.logger.Warn("rendered with warnings", "node", node.String())
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// viewOptions builds the options bag for node. Extra options never replace the
// reserved keys.
func viewOptions(node graph.Node, ctx string, extra map[string]string) render.Options {
	opts := make(render.Options, len(extra)+2)
	for key, value := range extra {
		opts[key] = value
	}
	opts[render.KeyNode] = node
	if ctx != "" {
		opts[render.KeyContext] = render.Context(ctx)
	} else {
		delete(opts, render.KeyContext)
	}
	delete(opts, render.KeyNodeRenderer)
	delete(opts, render.KeyDataSource)
	delete(opts, render.KeyModel)
	delete(opts, render.KeyTypes)
	return opts
}
