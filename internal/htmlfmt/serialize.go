package htmlfmt

import (
	"slices"
	"sort"
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/riverfjs/formattedtext/internal/types"
	futil "github.com/riverfjs/formattedtext/internal/util"
)

// span 一个实体在文本中的字节区间及其标签
type span struct {
	start int
	end   int
	open  string
	close string
	void  bool // 替换内容而不是包裹（自定义 emoji）
}

// Serialize 将 FormattedText 转换为 HTML，文本内容会被转义
func Serialize(ft types.FormattedText) string {
	return serialize(ft, true)
}

// serializeRaw 不转义文本，用于文本本身已是 HTML 的场景
func serializeRaw(ft types.FormattedText) string {
	return serialize(ft, false)
}

func serialize(ft types.FormattedText, escape bool) string {
	text := ft.Text
	spans := buildSpans(text, ft.Entities)

	var sb strings.Builder
	var stack []span
	pos := 0
	suppressed := 0

	writeUpTo := func(upTo int) {
		if upTo <= pos {
			return
		}
		if suppressed == 0 {
			if escape {
				sb.Write(util.EscapeHTML([]byte(text[pos:upTo])))
			} else {
				sb.WriteString(text[pos:upTo])
			}
		}
		pos = upTo
	}
	closeTop := func() {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		writeUpTo(top.end)
		sb.WriteString(top.close)
		if top.void {
			suppressed--
		}
	}

	for i := 0; i < len(spans); i++ {
		sp := spans[i]
		for len(stack) > 0 && stack[len(stack)-1].end <= sp.start {
			closeTop()
		}
		// 与外层交叉：在外层结束处截断，剩余部分在外层关闭后重新打开
		if n := len(stack); n > 0 && sp.end > stack[n-1].end {
			rest := sp
			rest.start = stack[n-1].end
			sp.end = rest.start
			if !sp.void {
				spans = insertSpan(spans, i+1, rest)
			}
		}
		writeUpTo(sp.start)
		sb.WriteString(sp.open)
		if sp.void {
			suppressed++
		}
		stack = append(stack, sp)
	}
	for len(stack) > 0 {
		closeTop()
	}
	writeUpTo(len(text))

	return sb.String()
}

// buildSpans 按起点升序、终点降序排列，外层实体先打开
func buildSpans(text string, entities []types.Entity) []span {
	spans := make([]span, 0, len(entities))
	for _, e := range entities {
		if e.Length <= 0 {
			continue
		}
		start := futil.ByteIndex(text, e.Offset)
		end := futil.ByteIndex(text, e.End())
		if start >= end {
			continue
		}
		sp, ok := tagsFor(e, text[start:end])
		if !ok {
			continue
		}
		sp.start, sp.end = start, end
		spans = append(spans, sp)
	}
	sort.SliceStable(spans, func(i, j int) bool {
		return spanLess(spans[i], spans[j])
	})
	return spans
}

func spanLess(a, b span) bool {
	if a.start != b.start {
		return a.start < b.start
	}
	return a.end > b.end
}

// insertSpan 将 sp 插入 spans[from:] 中保持有序的位置
func insertSpan(spans []span, from int, sp span) []span {
	pos := from + sort.Search(len(spans)-from, func(k int) bool {
		return spanLess(sp, spans[from+k])
	})
	return slices.Insert(spans, pos, sp)
}

func tagsFor(e types.Entity, content string) (span, bool) {
	switch e.Type {
	case types.Bold:
		return span{open: "<b>", close: "</b>"}, true
	case types.Italic:
		return span{open: "<i>", close: "</i>"}, true
	case types.Underline:
		return span{open: "<u>", close: "</u>"}, true
	case types.Strike:
		return span{open: "<s>", close: "</s>"}, true
	case types.Code:
		return span{open: "<code>", close: "</code>"}, true
	case types.Pre:
		return span{open: `<pre data-language="` + escapeAttr(e.Language) + `">`, close: "</pre>"}, true
	case types.Blockquote:
		return span{open: "<blockquote>", close: "</blockquote>"}, true
	case types.Spoiler:
		return span{open: `<span data-entity-type="` + string(types.Spoiler) + `">`, close: "</span>"}, true
	case types.TextURL:
		return anchor(e.URL), true
	case types.URL:
		return anchor(content), true
	case types.Email:
		return anchor("mailto:" + content), true
	case types.Phone:
		return anchor("tel:" + content), true
	case types.MentionName:
		return span{
			open:  `<a data-entity-type="` + string(types.MentionName) + `" data-user-id="` + escapeAttr(e.UserID) + `">`,
			close: "</a>",
		}, true
	case types.CustomEmoji:
		return span{
			open: `<img data-document-id="` + escapeAttr(e.DocumentID) + `" alt="` + escapeAttr(content) + `">`,
			void: true,
		}, true
	}
	return span{}, false
}

func anchor(href string) span {
	return span{open: `<a href="` + escapeAttr(href) + `">`, close: "</a>"}
}

func escapeAttr(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}
