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

func diffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <a.yaml> <b.yaml>",
		Short: "Reconcile scene A into scene B and report what happened to each backend node",
		Long: `Mounts scene A, swaps the tree to scene B in a single pass, and reports
which backend nodes the reconciler reused in place, moved, created, or
dropped. Keyed scene nodes keep their identity across the edit; unkeyed
nodes are matched positionally.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := scene.Load(args[0])
			if err != nil {
				return err
			}
			after, err := scene.Load(args[1])
			if err != nil {
				return err
			}

			r := newRunner(before.Widget())
			defer r.close()

			old := snapshotNodes(r.surface)
			slog.Debug("scene A mounted", "nodes", len(old))

			r.swap(after.Widget())
			current := snapshotNodes(r.surface)
			slog.Debug("reconciled to scene B", "nodes", len(current))

			fmt.Fprint(cmd.OutOrStdout(), formatDiff(r.surface, old, current))
			return nil
		},
	}
}

// nodePlace records where a node sat in its parent at snapshot time.
type nodePlace struct {
	parent *backend.Node
	index  int
}

func snapshotNodes(surface *backend.Node) map[*backend.Node]nodePlace {
	places := make(map[*backend.Node]nodePlace)
	var walk func(node *backend.Node)
	walk = func(node *backend.Node) {
		for i, child := range node.Children() {
			places[child] = nodePlace{parent: node, index: i}
			walk(child)
		}
	}
	walk(surface)
	return places
}

func formatDiff(surface *backend.Node, old, current map[*backend.Node]nodePlace) string {
	var sb strings.Builder
	var reused, moved, created int

	var walk func(node *backend.Node, indent int)
	walk = func(node *backend.Node, indent int) {
		for _, child := range node.Children() {
			sb.WriteString(strings.Repeat("  ", indent))
			was, existed := old[child]
			now := current[child]
			switch {
			case !existed:
				created++
				sb.WriteString(ui.SuccessStyle.Render("+ " + child.String()))
			case was != now:
				moved++
				sb.WriteString(ui.WarnStyle.Render("~ " + child.String()))
			default:
				reused++
				sb.WriteString(ui.Muted("= " + child.String()))
			}
			sb.WriteString("\n")
			walk(child, indent+1)
		}
	}
	walk(surface, 0)

	dropped := 0
	for node, was := range old {
		if _, alive := current[node]; !alive {
			// Only report dropped subtree roots; their descendants went with
			// them.
			if _, parentAlive := current[was.parent]; parentAlive || was.parent == surface {
				sb.WriteString(ui.ErrorStyle.Render("- " + node.String()))
				sb.WriteString("\n")
			}
			dropped++
		}
	}

	sb.WriteString(ui.Muted(fmt.Sprintf("reused %d, moved %d, created %d, dropped %d\n",
		reused, moved, created, dropped)))
	return sb.String()
}
