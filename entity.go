package formattedtext

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/riverfjs/formattedtext/internal/types"
	"github.com/riverfjs/formattedtext/internal/util"
)

// 导出类型别名
type (
	Entity        = types.Entity
	EntityKind    = types.EntityKind
	FormattedText = types.FormattedText
)

const (
	Bold        = types.Bold
	Italic      = types.Italic
	Underline   = types.Underline
	Strike      = types.Strike
	Spoiler     = types.Spoiler
	Code        = types.Code
	Pre         = types.Pre
	Blockquote  = types.Blockquote
	TextURL     = types.TextURL
	URL         = types.URL
	Email       = types.Email
	Phone       = types.Phone
	MentionName = types.MentionName
	CustomEmoji = types.CustomEmoji
	Unknown     = types.Unknown
)

// ParseEntityKind maps a client API entity name to its kind; unknown names map to Unknown.
func ParseEntityKind(s string) EntityKind {
	return types.ParseEntityKind(s)
}

// UTF16Len returns the length of text measured in UTF-16 code units.
//
// Entity offsets and lengths are measured in UTF-16 code units,
// not Go string bytes or runes.
func UTF16Len(text string) int {
	return util.UTF16Len(text)
}

// SplitEntities splits (text, entities) into chunks not exceeding maxUTF16Len UTF-16 code units.
//
// Tries to split right after a newline. Entities that span a split boundary
// are clipped into both chunks. maxUTF16Len <= 0 disables splitting.
func SplitEntities(text string, entities []Entity, maxUTF16Len int) []FormattedText {
	if maxUTF16Len <= 0 || UTF16Len(text) <= maxUTF16Len {
		return []FormattedText{{Text: text, Entities: entities}}
	}

	offsets := util.UTF16Offsets(text)

	var chunks []FormattedText
	for start := 0; start < len(text); {
		end := splitPoint(text, offsets, start, offsets[start]+maxUTF16Len)
		chunks = append(chunks, FormattedText{
			Text:     text[start:end],
			Entities: clipEntities(entities, offsets[start], offsets[end]),
		})
		start = end
	}
	return chunks
}

// splitPoint 返回从 start 开始、不超过 budget 的最远切分位置（字节下标）
//
// 优先切在最后一个换行之后；没有换行时按字符边界硬切，且至少前进一个字符。
func splitPoint(text string, offsets []int, start, budget int) int {
	if offsets[len(text)] <= budget {
		return len(text)
	}

	hard, newline := start, -1
	for pos := start; pos < len(text); {
		r, size := utf8.DecodeRuneInString(text[pos:])
		next := pos + size
		if offsets[next] > budget {
			break
		}
		hard = next
		if r == '\n' {
			newline = next
		}
		pos = next
	}

	switch {
	case newline > start:
		return newline
	case hard > start:
		return hard
	}
	_, size := utf8.DecodeRuneInString(text[start:])
	return start + size
}

// clipEntities 将实体裁剪到 [start, end)（UTF-16）并平移到以 start 为原点
func clipEntities(entities []Entity, start, end int) []Entity {
	var clipped []Entity
	for _, ent := range entities {
		s := max(ent.Offset, start)
		e := min(ent.End(), end)
		if e <= s {
			continue
		}
		ent.Offset = s - start
		ent.Length = e - s
		clipped = append(clipped, ent)
	}
	return clipped
}

// TrimSpace removes leading and trailing whitespace while adjusting entities.
func TrimSpace(text string, entities []Entity) (string, []Entity) {
	trimmed := strings.TrimSpace(text)
	if trimmed == text {
		return text, entities
	}
	if trimmed == "" {
		return "", nil
	}

	lead := len(text) - len(strings.TrimLeftFunc(text, unicode.IsSpace))
	start := UTF16Len(text[:lead])
	return trimmed, clipEntities(entities, start, start+UTF16Len(trimmed))
}
