package htmlfmt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/riverfjs/formattedtext/internal/markdown"
)

// DefaultLinkTemplate 默认的裸链接/域名模式
const DefaultLinkTemplate = `((ftp|https?)://)?((www\.)?[-a-zA-Z0-9\x{00a1}-\x{ffff}@:%._+~#=]{1,256}\.[a-zA-Z0-9\x{00a1}-\x{ffff}()]{1,63})\b([-a-zA-Z0-9\x{00a1}-\x{ffff}()@:%_+.~#?&/=]*)`

var (
	emojiImageRe  = regexp.MustCompile(`\[<img[^>]+alt="([^"]+)"[^>]*>]`)
	emptyDivRe    = regexp.MustCompile(`<div><br([^>]*)?></div>`)
	brRe          = regexp.MustCompile(`<br([^>]*)?>`)
	divBoundaryRe = regexp.MustCompile(`</div>(\s*)<div>`)

	defaultLinkRe = regexp.MustCompile(linkPattern(DefaultLinkTemplate))
)

func linkPattern(template string) string {
	return `\[([^\]]+?)]\(((?:` + template + `)+?)\)`
}

// MarkdownLinks 将 [text](link) 转换为 <a href="...">text</a>
//
// 没有协议的链接：包含 @ 时补 mailto:，否则补 https://。
// template 为空时使用 DefaultLinkTemplate。
func MarkdownLinks(src, template string) (string, error) {
	re := defaultLinkRe
	if template != "" && template != DefaultLinkTemplate {
		var err error
		re, err = regexp.Compile(linkPattern(template))
		if err != nil {
			return "", fmt.Errorf("invalid link template: %w", err)
		}
	}

	return re.ReplaceAllStringFunc(src, func(match string) string {
		sub := re.FindStringSubmatch(match)
		text, link := sub[1], sub[2]
		return `<a href="` + escapeAttr(linkURL(link)) + `">` + text + `</a>`
	}), nil
}

func linkURL(link string) string {
	link = string(util.URLEscape([]byte(link), false))
	switch {
	case strings.Contains(link, "://"):
		return link
	case strings.Contains(link, "@"):
		return "mailto:" + link
	}
	return "https://" + link
}

// PreprocessMarkdown 规范化编辑器 HTML，并将其中的 markdown 标记转换为 HTML 标签
//
// imageEmojiFallback 为 true 时，[<img alt="x">] 会先还原为 [x]。
func PreprocessMarkdown(src string, imageEmojiFallback bool) string {
	s := strings.ReplaceAll(src, "&nbsp;", " ")

	if imageEmojiFallback {
		s = emojiImageRe.ReplaceAllString(s, "[${1}]")
	}

	// Safari 的换行是 <div><br></div>
	s = emptyDivRe.ReplaceAllString(s, "\n")
	s = brRe.ReplaceAllString(s, "\n")

	s = divBoundaryRe.ReplaceAllString(s, "\n")
	s = strings.ReplaceAll(s, "<div>", "\n")
	s = strings.ReplaceAll(s, "</div>", "")

	return serializeRaw(markdown.Parse(s))
}
