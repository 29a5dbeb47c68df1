package domain

import "time"

// Campus 是一条“学校（校区）”记录，用于学校搜索和节次表预填
type Campus struct {
	ID          int64       `json:"id"`
	DisplayName string      `json:"displayName"` // 例如 "北京大学（燕园校区）"
	Address     string      `json:"address"`
	PinyinKey   string      `json:"-"` // 全拼检索键
	PinyinAbbr  string      `json:"-"` // 首字母检索键
	ClassTimes  []ClassTime `json:"classTimes"`
	CreatedAt   time.Time   `json:"createdAt"`
}
