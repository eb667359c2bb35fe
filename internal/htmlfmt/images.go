package htmlfmt

import (
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

var imgSelector = cascadia.MustCompile("img")

// FixImages 处理片段中的 <img>
//
// 带 data-document-id 的图片是自定义 emoji：以 alt 作为其文本内容；
// 其他图片是 emoji 的图片回退，直接替换为 alt 文本（alt 为空则移除）。
func FixImages(root *html.Node) {
	for _, img := range imgSelector.MatchAll(root) {
		alt, _ := attr(img, "alt")

		if id, _ := attr(img, attrDocumentID); id != "" {
			for c := img.FirstChild; c != nil; {
				next := c.NextSibling
				img.RemoveChild(c)
				c = next
			}
			if alt != "" {
				img.AppendChild(&html.Node{Type: html.TextNode, Data: alt})
			}
			continue
		}

		parent := img.Parent
		if parent == nil {
			continue
		}
		if alt != "" {
			parent.InsertBefore(&html.Node{Type: html.TextNode, Data: alt}, img)
		}
		parent.RemoveChild(img)
	}
}
