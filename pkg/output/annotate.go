package output

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/gobbcode/pkg/langdetect"
)

// AnnotateCode adds a language-<name> class to every <code> element whose
// text is recognised by langdetect. Documents without <code> are returned
// byte for byte; others are re-serialized from the parsed tree.
func AnnotateCode(doc string) (string, error) {
	if !strings.Contains(doc, "<code") {
		return doc, nil
	}

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(doc), context)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, node := range nodes {
		walk(node, annotateNode)
		if err := html.Render(&sb, node); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func walk(node *html.Node, visit func(*html.Node)) {
	visit(node)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walk(child, visit)
	}
}

func annotateNode(node *html.Node) {
	if node.Type != html.ElementNode || node.DataAtom != atom.Code {
		return
	}

	class := langdetect.ClassName(langdetect.Detect(textContent(node)))
	if class == "" {
		return
	}

	for i, attr := range node.Attr {
		if attr.Key == "class" {
			if !strings.Contains(" "+attr.Val+" ", " "+class+" ") {
				node.Attr[i].Val = strings.TrimSpace(attr.Val + " " + class)
			}
			return
		}
	}
	node.Attr = append(node.Attr, html.Attribute{Key: "class", Val: class})
}

func textContent(node *html.Node) string {
	var sb strings.Builder
	walk(node, func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
	})
	return sb.String()
}
