package htmlfmt

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/riverfjs/formattedtext/internal/types"
	"github.com/riverfjs/formattedtext/internal/util"
)

// MaxTagDepth 默认的最大遍历深度
const MaxTagDepth = 3

const zeroWidthSpace = "\u200b"

// extractor 保存一次提取过程中的状态
type extractor struct {
	text     string
	cursor   int // 字节下标，可能为负（节点起始于被 trim 掉的首部）
	maxDepth int
	entities []types.Entity
}

// Extract 从 DOM 树中提取 (text, entities)
//
// 输出文本为根节点的渲染文本去除零宽空格和首尾空白后的结果；
// 实体偏移量相对于该文本计算。maxDepth <= 0 时使用 MaxTagDepth。
func Extract(root Node, maxDepth int) types.FormattedText {
	if maxDepth <= 0 {
		maxDepth = MaxTagDepth
	}

	rendered := renderedText(root)
	text := strings.TrimSpace(rendered)
	shift := len(rendered) - len(strings.TrimLeftFunc(rendered, unicode.IsSpace))

	ex := &extractor{
		text:     text,
		cursor:   -shift,
		maxDepth: maxDepth,
		entities: make([]types.Entity, 0),
	}
	ex.visitChildren(root, rendered, -shift, 1)

	sort.SliceStable(ex.entities, func(i, j int) bool {
		return ex.entities[i].Offset < ex.entities[j].Offset
	})

	return types.FormattedText{
		Text:     text,
		Entities: ex.entities,
	}
}

// renderedText 节点的渲染文本，不含零宽空格
func renderedText(n Node) string {
	return strings.ReplaceAll(n.TextContent(), zeroWidthSpace, "")
}

// visitChildren 按顺序访问 parent 的子节点
//
// content 是 parent 的渲染文本，start 是它在输出文本中的位置；每个子节点的
// 起点通过在 content 中顺序查找子节点文本得到，块级换行等分隔符因此不会累积误差。
func (ex *extractor) visitChildren(parent Node, content string, start, depth int) {
	pos := 0
	for _, child := range parent.Children() {
		if child.Kind() == CommentNode {
			continue
		}
		childContent := renderedText(child)
		if i := strings.Index(content[pos:], childContent); i != -1 {
			pos += i
		}
		ex.cursor = start + pos
		ex.visit(child, childContent, depth)
		pos = min(pos+len(childContent), len(content))
	}
}

func (ex *extractor) visit(n Node, content string, depth int) {
	if content == "" {
		return
	}

	start := ex.cursor
	if kind, ok := entityKind(n); ok {
		start = ex.locate(content)
		ex.addEntity(n, kind, start, content)
	}

	if depth <= ex.maxDepth {
		ex.visitChildren(n, content, start, depth+1)
	}
	ex.cursor = start + len(content)
}

// locate 从游标处查找 content；找不到时退回游标位置
//
// 游标为负说明节点起始于被 trim 掉的首部，直接使用游标，由 addEntity 截断。
func (ex *extractor) locate(content string) int {
	if ex.cursor < 0 {
		return ex.cursor
	}
	from := ex.clamp(ex.cursor)
	if i := strings.Index(ex.text[from:], content); i != -1 {
		return from + i
	}
	return ex.cursor
}

// clamp 将字节下标限制在 [0, len(text)] 内并对齐到字符边界
func (ex *extractor) clamp(i int) int {
	if i <= 0 {
		return 0
	}
	if i >= len(ex.text) {
		return len(ex.text)
	}
	for i > 0 && !utf8.RuneStart(ex.text[i]) {
		i--
	}
	return i
}

func (ex *extractor) addEntity(n Node, kind types.EntityKind, index int, content string) {
	start := ex.clamp(index)
	end := ex.clamp(index + len(content))
	length := util.UTF16Len(ex.text[start:end])
	if length <= 0 {
		return
	}

	entity := types.Entity{
		Type:   kind,
		Offset: util.UTF16Len(ex.text[:start]),
		Length: length,
	}
	switch kind {
	case types.TextURL:
		entity.URL, _ = n.Attr(attrHref)
	case types.MentionName:
		entity.UserID, _ = n.Attr(attrUserID)
	case types.Pre:
		entity.Language, _ = n.Attr(attrLanguage)
	case types.CustomEmoji:
		entity.DocumentID, _ = n.Attr(attrDocumentID)
	}
	ex.entities = append(ex.entities, entity)
}
