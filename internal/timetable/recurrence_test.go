package timetable

import (
	"testing"

	"github.com/Lounwb/AirCourse/internal/domain"
)

func TestIsActiveInWeek(t *testing.T) {
	for week := 1; week <= 20; week++ {
		if !IsActiveInWeek(domain.RecurrenceWeekly, week) {
			t.Errorf("Weekly 在第 %d 周应当生效", week)
		}

		odd := week%2 != 0
		if got := IsActiveInWeek(domain.RecurrenceOddWeeks, week); got != odd {
			t.Errorf("Odd Weeks 第 %d 周: got %v, want %v", week, got, odd)
		}
		if got := IsActiveInWeek(domain.RecurrenceEvenWeeks, week); got != !odd {
			t.Errorf("Even Weeks 第 %d 周: got %v, want %v", week, got, !odd)
		}
	}
}

func TestIsActiveInWeekUnknownRecurrence(t *testing.T) {
	// 未识别的频率按每周处理，保证脏数据不会让课程凭空消失
	if !IsActiveInWeek(domain.Recurrence("Biweekly?"), 3) {
		t.Error("未识别的频率应当回退为每周生效")
	}
	if !IsActiveInWeek(domain.Recurrence(""), 4) {
		t.Error("空频率应当回退为每周生效")
	}
}
