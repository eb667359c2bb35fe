package markdown

import (
	"strings"
	"unicode"

	"github.com/riverfjs/formattedtext/internal/types"
)

// node 是解析过程中的临时节点：textNode 或 formattedNode
type node interface {
	text() string
}

// textNode 无格式的纯文本
type textNode struct {
	content string
}

func (n textNode) text() string { return n.content }

// formattedNode 带格式的内容
type formattedNode struct {
	kind     types.EntityKind
	content  string
	language string
}

func (n formattedNode) text() string { return n.content }

// buildTree 从左到右扫描 markdown，生成根节点下的有序子节点
func buildTree(src string) []node {
	var nodes []node
	pos := 0

	for pos < len(src) {
		tok, start, ok := findNextToken(src, pos)
		if !ok {
			nodes = append(nodes, textNode{content: src[pos:]})
			break
		}

		if start > pos {
			nodes = append(nodes, textNode{content: src[pos:start]})
		}

		// 空标记对（如 ****）按原样输出
		afterOpen := start + len(tok.marker)
		if findClosingToken(src, tok.marker, afterOpen) == afterOpen {
			nodes = append(nodes, textNode{content: tok.marker + tok.marker})
			pos = afterOpen + len(tok.marker)
			continue
		}

		if tok.marker == preMarker {
			n, next, ok := parseFence(src, start)
			if !ok {
				nodes = append(nodes, textNode{content: src[start:]})
				break
			}
			nodes = append(nodes, n)
			pos = next
			continue
		}

		end := findClosingToken(src, tok.marker, afterOpen)
		if end == -1 || strings.Contains(src[start:end+len(tok.marker)], "\n") {
			// 未闭合或跨行：剩余部分全部作为纯文本
			nodes = append(nodes, textNode{content: src[start:]})
			break
		}

		nodes = append(nodes, formattedNode{
			kind:    tok.kind,
			content: src[afterOpen:end],
		})
		pos = end + len(tok.marker)
	}

	return nodes
}

// parseFence 解析从 start 开始的围栏代码块，返回节点和结束位置
func parseFence(src string, start int) (formattedNode, int, bool) {
	afterOpen := start + len(preMarker)
	end := findClosingToken(src, preMarker, afterOpen)
	if end == -1 || end == afterOpen {
		return formattedNode{}, 0, false
	}

	language := ""
	contentStart := afterOpen
	if nl := strings.IndexByte(src[afterOpen:], '\n'); nl != -1 && afterOpen+nl < end {
		language = strings.TrimSpace(src[afterOpen : afterOpen+nl])
		contentStart = afterOpen + nl + 1
	}

	content := strings.TrimRightFunc(src[contentStart:end], unicode.IsSpace)
	if content != "" {
		content += "\n"
	}

	return formattedNode{
		kind:     types.Pre,
		content:  content,
		language: language,
	}, end + len(preMarker), true
}

// findNextToken 查找 pos 之后最近的标记
//
// 代码块标记在整个剩余文本中查找；行内标记只查找到下一个换行符为止。
func findNextToken(src string, pos int) (token, int, bool) {
	rest := src[pos:]
	nearest := -1
	var found token

	if i := strings.Index(rest, preMarker); i != -1 {
		nearest = i
		found = preToken
	}

	lineEnd := strings.IndexByte(rest, '\n')
	if lineEnd == -1 {
		lineEnd = len(rest)
	}

	for _, tok := range inlineTokens {
		i := strings.Index(rest[:lineEnd], tok.marker)
		if i == -1 {
			continue
		}
		if nearest == -1 || i < nearest {
			nearest = i
			found = tok
		}
	}

	if nearest == -1 {
		return token{}, 0, false
	}
	return found, pos + nearest, true
}

// findClosingToken 查找闭合标记，返回其位置或 -1
func findClosingToken(src, marker string, from int) int {
	if from > len(src) {
		return -1
	}
	rest := src[from:]
	if marker != preMarker {
		if nl := strings.IndexByte(rest, '\n'); nl != -1 {
			rest = rest[:nl]
		}
	}
	i := strings.Index(rest, marker)
	if i == -1 {
		return -1
	}
	return from + i
}
