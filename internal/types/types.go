package types

// EntityKind 表示格式化实体的类型（封闭集合）
//
// 取值与客户端 API 的类型名一致，因此可以原样写入 HTML 的
// data-entity-type 属性并在提取时读回。
type EntityKind string

const (
	Bold        EntityKind = "MessageEntityBold"
	Italic      EntityKind = "MessageEntityItalic"
	Underline   EntityKind = "MessageEntityUnderline"
	Strike      EntityKind = "MessageEntityStrike"
	Spoiler     EntityKind = "MessageEntitySpoiler"
	Code        EntityKind = "MessageEntityCode"
	Pre         EntityKind = "MessageEntityPre"
	Blockquote  EntityKind = "MessageEntityBlockquote"
	TextURL     EntityKind = "MessageEntityTextUrl"
	URL         EntityKind = "MessageEntityUrl"
	Email       EntityKind = "MessageEntityEmail"
	Phone       EntityKind = "MessageEntityPhone"
	MentionName EntityKind = "MessageEntityMentionName"
	CustomEmoji EntityKind = "MessageEntityCustomEmoji"
	Unknown     EntityKind = "MessageEntityUnknown"
)

var knownKinds = map[EntityKind]struct{}{
	Bold: {}, Italic: {}, Underline: {}, Strike: {}, Spoiler: {}, Code: {}, Pre: {},
	Blockquote: {}, TextURL: {}, URL: {}, Email: {}, Phone: {}, MentionName: {},
	CustomEmoji: {}, Unknown: {},
}

// ParseEntityKind 将字符串映射为 EntityKind，未知值返回 Unknown
func ParseEntityKind(s string) EntityKind {
	k := EntityKind(s)
	if _, ok := knownKinds[k]; ok {
		return k
	}
	return Unknown
}

// Entity 表示一段基于偏移量的格式标注
//
// Offset 和 Length 以 UTF-16 code units 计。
type Entity struct {
	Type       EntityKind `json:"type"`
	Offset     int        `json:"offset"`
	Length     int        `json:"length"`
	URL        string     `json:"url,omitempty"`
	Language   string     `json:"language,omitempty"`
	UserID     string     `json:"user_id,omitempty"`
	DocumentID string     `json:"document_id,omitempty"`
}

// End returns Offset+Length.
func (e Entity) End() int {
	return e.Offset + e.Length
}

// ToDict 将 Entity 转换为 map
func (e Entity) ToDict() map[string]interface{} {
	result := map[string]interface{}{
		"type":   string(e.Type),
		"offset": e.Offset,
		"length": e.Length,
	}
	if e.URL != "" {
		result["url"] = e.URL
	}
	if e.Language != "" {
		result["language"] = e.Language
	}
	if e.UserID != "" {
		result["user_id"] = e.UserID
	}
	if e.DocumentID != "" {
		result["document_id"] = e.DocumentID
	}
	return result
}

// FormattedText 纯文本 + 实体列表
type FormattedText struct {
	Text     string   `json:"text"`
	Entities []Entity `json:"entities,omitempty"`
}
