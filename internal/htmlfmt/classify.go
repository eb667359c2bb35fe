package htmlfmt

import (
	"strings"

	"github.com/riverfjs/formattedtext/internal/types"
)

const (
	attrEntityType = "data-entity-type"
	attrUserID     = "data-user-id"
	attrLanguage   = "data-language"
	attrDocumentID = "data-document-id"
	attrHref       = "href"
)

// tagKinds 标签名到实体类型的映射
var tagKinds = map[string]types.EntityKind{
	"B":          types.Bold,
	"STRONG":     types.Bold,
	"I":          types.Italic,
	"EM":         types.Italic,
	"INS":        types.Underline,
	"U":          types.Underline,
	"S":          types.Strike,
	"STRIKE":     types.Strike,
	"DEL":        types.Strike,
	"CODE":       types.Code,
	"PRE":        types.Pre,
	"BLOCKQUOTE": types.Blockquote,
}

// nodeClass 节点分类，决定实体类型的推导方式
type nodeClass int

const (
	classPlain nodeClass = iota
	classOverride
	classTagged
	classAnchor
	classCustomEmoji
)

func classify(n Node) nodeClass {
	if n.Kind() != ElementNode {
		return classPlain
	}
	if v, _ := n.Attr(attrEntityType); v != "" {
		return classOverride
	}
	tag := n.Tag()
	if _, ok := tagKinds[tag]; ok {
		return classTagged
	}
	switch tag {
	case "A":
		return classAnchor
	case "IMG":
		if id, _ := n.Attr(attrDocumentID); id != "" {
			return classCustomEmoji
		}
	}
	return classPlain
}

// entityKind 推导节点的实体类型；普通节点返回 false
func entityKind(n Node) (types.EntityKind, bool) {
	switch classify(n) {
	case classOverride:
		v, _ := n.Attr(attrEntityType)
		return types.ParseEntityKind(v), true
	case classTagged:
		return tagKinds[n.Tag()], true
	case classAnchor:
		return anchorKind(n), true
	case classCustomEmoji:
		return types.CustomEmoji, true
	}
	return "", false
}

func anchorKind(n Node) types.EntityKind {
	href, _ := n.Attr(attrHref)
	switch {
	case strings.HasPrefix(href, "mailto:"):
		return types.Email
	case strings.HasPrefix(href, "tel:"):
		return types.Phone
	case href != n.TextContent():
		return types.TextURL
	}
	return types.URL
}
