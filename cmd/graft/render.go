package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-graft/graft/cmd/graft/ui"
	"github.com/go-graft/graft/pkg/backend"
	"github.com/go-graft/graft/pkg/scene"
)

func renderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render <scene.yaml>",
		Short: "Mount a scene and print the resulting backend tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := scene.Load(args[0])
			if err != nil {
				return err
			}
			slog.Debug("scene loaded", "path", args[0])

			r := newRunner(doc.Widget())
			defer r.close()

			fmt.Fprint(cmd.OutOrStdout(), renderTree(r.surface))
			return nil
		},
	}
}

// renderTree formats the backend tree with styled kinds and attributes.
func renderTree(root *backend.Node) string {
	var sb strings.Builder
	var walk func(node *backend.Node, indent int)
	walk = func(node *backend.Node, indent int) {
		sb.WriteString(strings.Repeat("  ", indent))
		sb.WriteString(ui.Accent(node.Kind))
		if text, ok := node.Attrs["text"]; ok {
			sb.WriteString(" " + ui.Muted(fmt.Sprintf("%q", text)))
		}
		sb.WriteString("\n")
		for _, child := range node.Children() {
			walk(child, indent+1)
		}
	}
	walk(root, 0)
	return sb.String()
}
