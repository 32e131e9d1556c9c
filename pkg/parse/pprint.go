package parse

import (
	"io"

	"gopkg.in/yaml.v3"
)

// The YAML form of a Node. Only leaves carry their text; the text of inner
// nodes is the concatenation of that of their descendants.
type yamlNode struct {
	Rule     string      `yaml:"rule"`
	From     int         `yaml:"from"`
	To       int         `yaml:"to"`
	Text     *string     `yaml:"text,omitempty"`
	Children []*yamlNode `yaml:"children,omitempty"`
}

func toYAML(n *Node) *yamlNode {
	y := &yamlNode{Rule: n.Rule.String(), From: n.From, To: n.To}
	if len(n.Children) == 0 {
		text := n.sourceText
		y.Text = &text
	}
	for _, ch := range n.Children {
		y.Children = append(y.Children, toYAML(ch))
	}
	return y
}

// DumpYAML writes the tree rooted at n to w as a YAML document.
func DumpYAML(w io.Writer, n *Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toYAML(n)); err != nil {
		return err
	}
	return enc.Close()
}
