package markdown

import "github.com/riverfjs/formattedtext/internal/types"

// token 描述一个格式标记
type token struct {
	marker string
	kind   types.EntityKind
}

const (
	boldMarker    = "**"
	italicMarker  = "__"
	codeMarker    = "`"
	preMarker     = "```"
	strikeMarker  = "~~"
	spoilerMarker = "||"
)

var preToken = token{marker: preMarker, kind: types.Pre}

// inlineTokens 行内标记，顺序即同位置时的优先级
var inlineTokens = [...]token{
	{marker: boldMarker, kind: types.Bold},
	{marker: italicMarker, kind: types.Italic},
	{marker: codeMarker, kind: types.Code},
	{marker: strikeMarker, kind: types.Strike},
	{marker: spoilerMarker, kind: types.Spoiler},
}

// Markers returns the marker table keyed by format name.
func Markers() map[string]string {
	return map[string]string{
		"bold":    boldMarker,
		"italic":  italicMarker,
		"code":    codeMarker,
		"pre":     preMarker,
		"strike":  strikeMarker,
		"spoiler": spoilerMarker,
	}
}
