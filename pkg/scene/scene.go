package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-graft/graft/pkg/core"
	"github.com/go-graft/graft/pkg/errors"
)

// Version is the scene document version this package reads.
const Version = 1

// Document is the top-level scene file structure.
type Document struct {
	Version int   `yaml:"version"`
	Root    *Node `yaml:"root"`
}

// Node is one node of a scene document.
type Node struct {
	Kind     string  `yaml:"kind"`
	Key      string  `yaml:"key,omitempty"`
	Text     string  `yaml:"text,omitempty"`
	Children []*Node `yaml:"children,omitempty"`
}

// Load reads and validates a scene file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	return Parse(data)
}

// Parse validates a scene document from raw YAML.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	if doc.Version != Version {
		return nil, &errors.ParseError{Path: "version", DataType: "supported scene version", Got: doc.Version}
	}
	if doc.Root == nil {
		return nil, &errors.ParseError{Path: "root", DataType: "scene node", Got: nil}
	}
	if err := validate(doc.Root, "root"); err != nil {
		return nil, err
	}
	return &doc, nil
}

func validate(node *Node, path string) error {
	switch node.Kind {
	case "label":
		if len(node.Children) > 0 {
			return &errors.ParseError{Path: path + ".children", DataType: "no children on label", Got: len(node.Children)}
		}
	case "box", "row":
	default:
		return &errors.ParseError{Path: path + ".kind", DataType: "label, box, or row", Got: node.Kind}
	}
	seen := make(map[string]struct{})
	for i, child := range node.Children {
		childPath := fmt.Sprintf("%s.children[%d]", path, i)
		if child == nil {
			return &errors.ParseError{Path: childPath, DataType: "scene node", Got: nil}
		}
		if child.Key != "" {
			if _, dup := seen[child.Key]; dup {
				return &errors.ParseError{Path: childPath + ".key", DataType: "unique sibling key", Got: child.Key}
			}
			seen[child.Key] = struct{}{}
		}
		if err := validate(child, childPath); err != nil {
			return err
		}
	}
	return nil
}

// Widget builds the widget tree described by the document.
func (d *Document) Widget() core.Widget {
	return d.Root.widget()
}

func (n *Node) widget() core.Widget {
	var key core.Key
	if n.Key != "" {
		key = core.LocalKey{Value: n.Key}
	}
	switch n.Kind {
	case "label":
		return Label{ItemKey: key, Text: n.Text}
	case "box":
		return Box{ItemKey: key, Children: childWidgets(n.Children)}
	default:
		return Row{ItemKey: key, Children: childWidgets(n.Children)}
	}
}

func childWidgets(nodes []*Node) []core.Widget {
	if len(nodes) == 0 {
		return nil
	}
	widgets := make([]core.Widget, len(nodes))
	for i, node := range nodes {
		widgets[i] = node.widget()
	}
	return widgets
}
