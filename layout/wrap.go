package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// 折行以显示单元格宽度计数（East Asian 宽字符按 2 计），
// 与等宽字体渲染后的实际占宽保持一致。

// wrapText 将原始文本按显式换行拆分后逐行折行。宽度不超过 limit 的行原样保留，
// 因此对已折行的结果再次折行是幂等的。
func wrapText(content string, limit int) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	var out []string
	for _, raw := range strings.Split(content, "\n") {
		if runewidth.StringWidth(raw) <= limit {
			out = append(out, raw)
			continue
		}
		out = append(out, wrapLine(raw, limit)...)
	}
	return out
}

// wrapLine 贪心折行：优先在空白处断行，单词超宽时按显示宽度硬切。
func wrapLine(raw string, limit int) []string {
	words := strings.Fields(raw)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var b strings.Builder
	w := 0
	flush := func() {
		if b.Len() > 0 {
			lines = append(lines, b.String())
			b.Reset()
			w = 0
		}
	}

	for _, word := range words {
		ww := runewidth.StringWidth(word)
		if ww > limit {
			flush()
			parts := splitByWidth(word, limit)
			for _, p := range parts[:len(parts)-1] {
				lines = append(lines, p)
			}
			last := parts[len(parts)-1]
			b.WriteString(last)
			w = runewidth.StringWidth(last)
			continue
		}
		sep := 0
		if w > 0 {
			sep = 1
		}
		if w+sep+ww > limit {
			flush()
			sep = 0
		}
		if sep == 1 {
			b.WriteByte(' ')
			w++
		}
		b.WriteString(word)
		w += ww
	}
	flush()
	return lines
}

// splitByWidth 将超宽单词按显示宽度切成若干段，每段不超过 limit。
func splitByWidth(word string, limit int) []string {
	var parts []string
	var b strings.Builder
	w := 0
	for _, r := range word {
		rw := runewidth.RuneWidth(r)
		if w+rw > limit && b.Len() > 0 {
			parts = append(parts, b.String())
			b.Reset()
			w = 0
		}
		b.WriteRune(r)
		w += rw
	}
	if b.Len() > 0 {
		parts = append(parts, b.String())
	}
	return parts
}
