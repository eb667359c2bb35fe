// Package htmlfmt 在 HTML（富文本编辑器内容）和 (text, entities) 之间转换
//
// 提取路径：可选的 markdown 链接转换和 markdown 预处理 → 解析 HTML 片段 →
// 处理图片 → 深度优先遍历 DOM 生成实体。
// 序列化路径：按实体包裹对应的 HTML 标签。
package htmlfmt

import (
	"github.com/riverfjs/formattedtext/internal/types"
)

// Options 控制 HTML 提取的预处理步骤
type Options struct {
	// AllowMarkdownLinks 将 [text](link) 转换为 <a> 标签
	AllowMarkdownLinks bool
	// SkipMarkdownPreprocessing 跳过 markdown 预处理，HTML 原样解析
	SkipMarkdownPreprocessing bool
	// LinkTemplate 描述裸链接/域名的正则片段，空则使用 DefaultLinkTemplate
	LinkTemplate string
	// ImageEmojiFallback 将 [<img alt="x">] 还原为 [x]（客户端不支持原生 emoji 时）
	ImageEmojiFallback bool
	// MaxTagDepth 最大遍历深度，<= 0 时使用 MaxTagDepth
	MaxTagDepth int
}

// Parse 解析 HTML 片段并提取 (text, entities)
func Parse(src string, opts Options) (types.FormattedText, error) {
	if !opts.SkipMarkdownPreprocessing {
		if opts.AllowMarkdownLinks {
			var err error
			src, err = MarkdownLinks(src, opts.LinkTemplate)
			if err != nil {
				return types.FormattedText{}, err
			}
		}
		src = PreprocessMarkdown(src, opts.ImageEmojiFallback)
	}

	root, err := ParseFragment(src)
	if err != nil {
		return types.FormattedText{}, err
	}
	FixImages(root)

	return Extract(FromHTML(root), opts.MaxTagDepth), nil
}
