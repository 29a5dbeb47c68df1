package ics

import (
	"errors"
	"testing"
	"time"

	"github.com/Lounwb/AirCourse/internal/domain"
)

func TestExpandOccurrencesWeekly(t *testing.T) {
	// 2025-09-01 是星期一
	sess := sessionWith(3, "2025-09-01", domain.Course{
		ID: "c1", Name: "高数",
		TimeSlots: []domain.TimeSlot{{
			ID: "s1", Day: domain.Wednesday,
			StartTime: "08:00", EndTime: "09:40",
			Location: "教一 101", Recurrence: domain.RecurrenceWeekly,
		}},
	})

	occ, err := ExpandOccurrences(sess, time.UTC)
	if err != nil {
		t.Fatalf("展开失败: %v", err)
	}
	if len(occ) != 3 {
		t.Fatalf("3 周的每周课应展开出 3 次, got %d", len(occ))
	}

	wantDates := []string{"2025-09-03", "2025-09-10", "2025-09-17"}
	for i, o := range occ {
		if got := o.Start.Format("2006-01-02"); got != wantDates[i] {
			t.Errorf("第 %d 次上课日期 = %s, want %s", i+1, got, wantDates[i])
		}
		if o.Start.Format("15:04") != "08:00" || o.End.Format("15:04") != "09:40" {
			t.Errorf("上课时间 = %s~%s", o.Start.Format("15:04"), o.End.Format("15:04"))
		}
		if o.CourseName != "高数" || o.Location != "教一 101" {
			t.Errorf("元信息不符: %+v", o)
		}
	}
}

func TestExpandOccurrencesBiweekly(t *testing.T) {
	sess := sessionWith(4, "2025-09-01",
		domain.Course{
			ID: "c1", Name: "单周课",
			TimeSlots: []domain.TimeSlot{{
				ID: "s1", Day: domain.Monday,
				StartTime: "08:00", EndTime: "08:45",
				Recurrence: domain.RecurrenceOddWeeks,
			}},
		},
		domain.Course{
			ID: "c2", Name: "双周课",
			TimeSlots: []domain.TimeSlot{{
				ID: "s2", Day: domain.Monday,
				StartTime: "10:00", EndTime: "10:45",
				Recurrence: domain.RecurrenceEvenWeeks,
			}},
		},
	)

	occ, err := ExpandOccurrences(sess, time.UTC)
	if err != nil {
		t.Fatalf("展开失败: %v", err)
	}

	var odd, even []string
	for _, o := range occ {
		switch o.CourseID {
		case "c1":
			odd = append(odd, o.Start.Format("2006-01-02"))
		case "c2":
			even = append(even, o.Start.Format("2006-01-02"))
		}
	}

	wantOdd := []string{"2025-09-01", "2025-09-15"}
	wantEven := []string{"2025-09-08", "2025-09-22"}
	if len(odd) != len(wantOdd) {
		t.Fatalf("单周课应上 %d 次, got %v", len(wantOdd), odd)
	}
	for i := range wantOdd {
		if odd[i] != wantOdd[i] {
			t.Errorf("单周课日期 = %v, want %v", odd, wantOdd)
			break
		}
	}
	if len(even) != len(wantEven) {
		t.Fatalf("双周课应上 %d 次, got %v", len(wantEven), even)
	}
	for i := range wantEven {
		if even[i] != wantEven[i] {
			t.Errorf("双周课日期 = %v, want %v", even, wantEven)
			break
		}
	}

	// 整体按时间排序
	for i := 1; i < len(occ); i++ {
		if occ[i].Start.Before(occ[i-1].Start) {
			t.Error("展开结果应按开始时间排序")
			break
		}
	}
}

func TestExpandOccurrencesNoStartDate(t *testing.T) {
	sess := sessionWith(16, "", domain.Course{ID: "c1", Name: "X"})
	if _, err := ExpandOccurrences(sess, time.UTC); !errors.Is(err, ErrNoStartDate) {
		t.Errorf("缺失开学日期应返回 ErrNoStartDate, got %v", err)
	}

	sess.Program.StartDate = "2025/09/01"
	if _, err := ExpandOccurrences(sess, time.UTC); !errors.Is(err, ErrNoStartDate) {
		t.Errorf("非法日期格式应返回 ErrNoStartDate, got %v", err)
	}
}

func TestExpandOccurrencesSkipsMalformedSlot(t *testing.T) {
	sess := sessionWith(2, "2025-09-01", domain.Course{
		ID: "c1", Name: "X",
		TimeSlots: []domain.TimeSlot{
			{ID: "bad", Day: domain.Monday, StartTime: "8:00", EndTime: "0845", Recurrence: domain.RecurrenceWeekly},
			{ID: "good", Day: domain.Tuesday, StartTime: "08:00", EndTime: "08:45", Recurrence: domain.RecurrenceWeekly},
		},
	})

	occ, err := ExpandOccurrences(sess, time.UTC)
	if err != nil {
		t.Fatalf("展开失败: %v", err)
	}
	for _, o := range occ {
		if o.SlotID == "bad" {
			t.Fatal("非法时钟的时间段应被跳过")
		}
	}
	if len(occ) != 2 {
		t.Errorf("正常时间段应照常展开, got %d", len(occ))
	}
}
