package utils

import "math/rand"

var idChars = []rune("abcdefghijklmnopqrstuvwxyz0123456789")

// NewID 生成 9 位小写字母加数字的随机 ID，用于会话、课程和时间段
func NewID() string {
	id := make([]rune, 9)
	for i := range id {
		id[i] = idChars[rand.Intn(len(idChars))]
	}
	return string(id)
}
