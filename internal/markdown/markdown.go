// Package markdown 将受限的 markdown 方言解析为纯文本 + 实体
//
// 支持的标记：**粗体**、__斜体__、`代码`、```代码块```、~~删除线~~、||剧透||。
// 行内格式不能跨行；代码块例外。任何无法解析的标记都原样保留为纯文本，
// 因此 Parse 永远不会失败。
package markdown

import (
	"sort"

	"github.com/riverfjs/formattedtext/internal/buffer"
	"github.com/riverfjs/formattedtext/internal/types"
)

// Parse 解析 markdown 并返回 (text, entities)
//
// 实体的偏移量和长度以输出文本的 UTF-16 code units 计（不含标记字符）。
func Parse(src string) types.FormattedText {
	return flatten(buildTree(src))
}

// flatten 按顺序遍历节点，累积纯文本并为每个格式节点记录实体
func flatten(nodes []node) types.FormattedText {
	buf := buffer.New()
	entities := make([]types.Entity, 0)

	for _, n := range nodes {
		start := buf.UTF16Offset()
		buf.Write(n.text())

		switch n := n.(type) {
		case formattedNode:
			length := buf.UTF16Offset() - start
			if length <= 0 {
				continue
			}
			entity := types.Entity{
				Type:   n.kind,
				Offset: start,
				Length: length,
			}
			if n.kind == types.Pre {
				entity.Language = n.language
			}
			entities = append(entities, entity)
		}
	}

	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Offset < entities[j].Offset
	})

	return types.FormattedText{
		Text:     buf.String(),
		Entities: entities,
	}
}
