package util

// UTF16Len returns the length of text measured in UTF-16 code units.
//
// Characters outside the BMP (codepoint > 0xFFFF) take 2 UTF-16 code units
// (a surrogate pair); all others take 1.
func UTF16Len(text string) int {
	count := 0
	for _, r := range text {
		count += runeUnits(r)
	}
	return count
}

func runeUnits(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// UTF16Offsets builds a cumulative UTF-16 offset table for each byte position.
// result[i] is the UTF-16 offset at byte position i; only rune-start positions
// and len(text) carry meaningful values.
func UTF16Offsets(text string) []int {
	offsets := make([]int, len(text)+1)
	cum := 0
	for i, r := range text {
		offsets[i] = cum
		cum += runeUnits(r)
	}
	offsets[len(text)] = cum
	return offsets
}

// ByteIndex 将 UTF-16 偏移量转换为字节下标
//
// 偏移量落在代理对中间时返回该字符的起始位置；超出范围时截断到 [0, len(text)]。
func ByteIndex(text string, utf16Offset int) int {
	if utf16Offset <= 0 {
		return 0
	}
	cum := 0
	for i, r := range text {
		next := cum + runeUnits(r)
		if next > utf16Offset {
			return i
		}
		cum = next
	}
	return len(text)
}
