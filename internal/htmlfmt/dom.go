package htmlfmt

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NodeKind 节点类型
type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
	CommentNode
	OtherNode
)

// Node 是提取实体所需的最小 DOM 接口
//
// Tag 返回大写标签名（非元素节点返回空串）；TextContent 返回渲染文本：
// 所有后代文本的拼接，<br> 计为一个换行符，块级元素与相邻内容之间以换行分隔。
type Node interface {
	Kind() NodeKind
	Tag() string
	TextContent() string
	Attr(key string) (string, bool)
	Children() []Node
}

// htmlNode adapts *html.Node to Node.
type htmlNode struct {
	n *html.Node
}

// FromHTML wraps a parsed golang.org/x/net/html tree.
func FromHTML(n *html.Node) Node {
	return htmlNode{n: n}
}

func (h htmlNode) Kind() NodeKind {
	switch h.n.Type {
	case html.ElementNode:
		return ElementNode
	case html.TextNode:
		return TextNode
	case html.CommentNode:
		return CommentNode
	default:
		return OtherNode
	}
}

func (h htmlNode) Tag() string {
	if h.n.Type != html.ElementNode {
		return ""
	}
	return strings.ToUpper(h.n.Data)
}

func (h htmlNode) TextContent() string {
	var sb strings.Builder
	writeText(&sb, h.n)
	return sb.String()
}

// blockAtoms 渲染时与相邻内容之间需要换行的块级元素
var blockAtoms = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true, atom.Figure: true,
	atom.Footer: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true, atom.Header: true, atom.Hr: true, atom.Li: true,
	atom.Ol: true, atom.P: true, atom.Pre: true, atom.Section: true, atom.Table: true,
	atom.Tr: true, atom.Ul: true,
}

func isBlock(n *html.Node) bool {
	return n.Type == html.ElementNode && blockAtoms[n.DataAtom]
}

// writeText 写入节点的渲染文本
//
// 块级元素与前后的兄弟内容之间插入一个换行，已有换行时不重复插入；
// 元素自身的文本不包含首尾的分隔换行。
func writeText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		if n.DataAtom == atom.Br {
			sb.WriteByte('\n')
			return
		}
	}

	prevBlock := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		var child strings.Builder
		writeText(&child, c)
		text := child.String()
		if text == "" {
			continue
		}
		block := isBlock(c)
		if (block || prevBlock) && needsBreak(sb.String(), text) {
			sb.WriteByte('\n')
		}
		sb.WriteString(text)
		prevBlock = block
	}
}

func needsBreak(before, next string) bool {
	return before != "" && !strings.HasSuffix(before, "\n") && !strings.HasPrefix(next, "\n")
}

func (h htmlNode) Attr(key string) (string, bool) {
	return attr(h.n, key)
}

func (h htmlNode) Children() []Node {
	var children []Node
	for c := h.n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, htmlNode{n: c})
	}
	return children
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// ParseFragment 将 HTML 片段解析到一个 <div> 根节点下
func ParseFragment(src string) (*html.Node, error) {
	root := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
	nodes, err := html.ParseFragment(strings.NewReader(src), root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html fragment: %w", err)
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}
