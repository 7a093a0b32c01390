package utils

import (
	"strings"
	"unicode/utf8"
)

// Truncate は s を最大 n 文字 (rune) に切り詰め、切り詰めた場合は末尾に "…" を付けます。
// ログに詩や画像ヘッダのプレビューを出すときに使います。
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "…"
}

// OneLine は改行をスペースに置き換え、ログ1行に収まる形にします。
func OneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
