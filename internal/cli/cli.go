// Package cli implements the nodeview command-line interface.
//
// The CLI loads graph documents, builds a renderer registry from the
// built-in strategies plus any configured rules and renders nodes through the
// same NodeRenderer library callers embed.
//
// # Commands
//
//   - view: render one node to stdout
//   - renderers: list the registered renderers by priority
//   - serve: preview nodes over HTTP
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-nodeview/pkg/logging"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// globalOpts are the persistent flags shared by every command.
type globalOpts struct {
	verbose   bool
	config    string
	graphs    []string
	templates []string
}

// Execute runs the nodeview CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &globalOpts{}

	root := &cobra.Command{
		Use:          "nodeview",
		Short:        "Render graph nodes with context-aware templates",
		Long:         `nodeview picks the best renderer for a graph node, based on its types, labels and the requested context, and renders it to HTML.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logging.New(cmd.ErrOrStderr(), level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("nodeview %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&opts.config, "config", "c", "", "configuration file (yaml or toml)")
	root.PersistentFlags().StringSliceVarP(&opts.graphs, "graph", "g", nil, "graph document(s) to load, in addition to the configured ones")
	root.PersistentFlags().StringSliceVarP(&opts.templates, "templates", "t", nil, "template directories searched before the configured ones")

	root.AddCommand(newViewCmd(opts))
	root.AddCommand(newRenderersCmd(opts))
	root.AddCommand(newServeCmd(opts))

	return root
}
