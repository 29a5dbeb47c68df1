package utils

import (
	"strings"

	"github.com/mozillazg/go-pinyin"
)

// SearchKeys 生成校区名称的拼音检索键：全拼和首字母缩写。
// 非汉字字符（英文、数字）原样保留，便于 "SYSU" 这类简称命中。
func SearchKeys(name string) (full string, abbr string) {
	args := pinyin.NewArgs()
	args.Fallback = func(r rune, a pinyin.Args) []string {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return []string{strings.ToLower(string(r))}
		}
		return nil
	}

	syllables := pinyin.LazyPinyin(name, args)

	var fullBuilder, abbrBuilder strings.Builder
	for _, s := range syllables {
		if s == "" {
			continue
		}
		fullBuilder.WriteString(s)
		abbrBuilder.WriteByte(s[0])
	}

	return fullBuilder.String(), abbrBuilder.String()
}
