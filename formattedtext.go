// Package formattedtext 在 markdown、HTML 和 (text, entities) 之间转换
//
// FormattedText 是纯文本加实体列表，实体的偏移量和长度以 UTF-16 code units 计，
// 与消息客户端 API 保持一致。
//
// 核心功能：
//   - 将受限的 markdown 方言（**粗体**、__斜体__、`代码`、```代码块```、~~删除线~~、||剧透||）
//     转换为 FormattedText
//   - 从富文本编辑器的 HTML 中提取 FormattedText（可先做 markdown 预处理）
//   - 将 FormattedText 序列化为 HTML
//   - 按长度限制拆分消息
//
// 示例：
//
//	ft := formattedtext.ParseMarkdown("**hello** world")
//	html := formattedtext.ToHTML(ft) // <b>hello</b> world
//
//	ft, err := formattedtext.ParseHTML(editorHTML, formattedtext.WithMarkdownLinks(true))
package formattedtext

import (
	"golang.org/x/net/html"

	"github.com/riverfjs/formattedtext/internal/htmlfmt"
	"github.com/riverfjs/formattedtext/internal/markdown"
)

// Node 是提取实体所需的最小 DOM 接口
type Node = htmlfmt.Node

// NodeKind 节点类型
type NodeKind = htmlfmt.NodeKind

const (
	ElementNode = htmlfmt.ElementNode
	TextNode    = htmlfmt.TextNode
	CommentNode = htmlfmt.CommentNode
	OtherNode   = htmlfmt.OtherNode
)

// ParseMarkdown 将 markdown 转换为 FormattedText
//
// 不会失败：无法识别的标记按纯文本保留。
func ParseMarkdown(text string) FormattedText {
	return markdown.Parse(text)
}

// MarkdownMarkers returns the markers of the markdown dialect keyed by name (bold, italic, ...).
func MarkdownMarkers() map[string]string {
	return markdown.Markers()
}

// ParseHTML 解析 HTML 片段并提取 FormattedText
//
// 默认先做 markdown 预处理（见 WithSkipMarkdown），选项默认取 DefaultConfig。
func ParseHTML(src string, opts ...Option) (FormattedText, error) {
	options := applyOptions(opts...)

	ft, err := htmlfmt.Parse(src, options.htmlOptions())
	if err != nil {
		return FormattedText{}, err
	}
	logUnknown(ft.Entities)
	return ft, nil
}

// ExtractEntities 从已有的 DOM 树中提取 FormattedText
//
// root 自身不产生实体，只遍历其子节点；不做任何预处理，只使用 MaxTagDepth 选项。
func ExtractEntities(root Node, opts ...Option) FormattedText {
	options := applyOptions(opts...)

	ft := htmlfmt.Extract(root, options.MaxTagDepth)
	logUnknown(ft.Entities)
	return ft
}

// FromHTML wraps a golang.org/x/net/html tree as a Node.
func FromHTML(n *html.Node) Node {
	return htmlfmt.FromHTML(n)
}

// ToHTML 将 FormattedText 序列化为 HTML
func ToHTML(ft FormattedText) string {
	return htmlfmt.Serialize(ft)
}

// MarkdownToHTML is ToHTML(ParseMarkdown(text)).
func MarkdownToHTML(text string) string {
	return ToHTML(ParseMarkdown(text))
}

// Split 按 config.MaxMessageLength 拆分，config 为 nil 时使用默认配置
func Split(ft FormattedText, config *Config) []FormattedText {
	if config == nil {
		config = DefaultConfig()
	}
	return SplitEntities(ft.Text, ft.Entities, config.MaxMessageLength)
}

func logUnknown(entities []Entity) {
	for _, e := range entities {
		if e.Type == Unknown {
			Logger.Printf("unknown entity type at offset %d (length %d)", e.Offset, e.Length)
		}
	}
}
