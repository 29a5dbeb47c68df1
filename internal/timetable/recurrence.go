package timetable

import "github.com/Lounwb/AirCourse/internal/domain"

// IsActiveInWeek 判断某个频率的时间段在第 week 教学周是否上课。
// week 从 1 开始计数，不在这里做 totalWeeks 的越界检查。
// 未识别的频率按每周处理。
func IsActiveInWeek(rec domain.Recurrence, week int) bool {
	switch rec {
	case domain.RecurrenceWeekly:
		return true
	case domain.RecurrenceOddWeeks:
		return week%2 != 0
	case domain.RecurrenceEvenWeeks:
		return week%2 == 0
	default:
		return true
	}
}
