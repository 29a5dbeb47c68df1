// Package ics 负责把会话中的课程导出为日历文件以及展开为具体日期。
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/Lounwb/AirCourse/internal/domain"
	"github.com/Lounwb/AirCourse/internal/timetable"
)

const prodID = "-//AirCourse AI//EN"

// OccurrenceCount 根据总周数和频率计算事件的重复次数。
// 单周课在 16 周的学期里上 8 次，双周课同样 8 次；15 周时单周 8 次、双周 7 次。
func OccurrenceCount(rec domain.Recurrence, totalWeeks int) int {
	switch rec {
	case domain.RecurrenceOddWeeks:
		return (totalWeeks + 1) / 2
	case domain.RecurrenceEvenWeeks:
		return totalWeeks / 2
	default:
		return totalWeeks
	}
}

func interval(rec domain.Recurrence) int {
	if rec == domain.RecurrenceOddWeeks || rec == domain.RecurrenceEvenWeeks {
		return 2
	}
	return 1
}

func rruleValue(rec domain.Recurrence, totalWeeks int) string {
	if iv := interval(rec); iv > 1 {
		return fmt.Sprintf("FREQ=WEEKLY;INTERVAL=%d;COUNT=%d", iv, OccurrenceCount(rec, totalWeeks))
	}
	return fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", OccurrenceCount(rec, totalWeeks))
}

var weekdayByDay = map[domain.Day]time.Weekday{
	domain.Monday:    time.Monday,
	domain.Tuesday:   time.Tuesday,
	domain.Wednesday: time.Wednesday,
	domain.Thursday:  time.Thursday,
	domain.Friday:    time.Friday,
	domain.Saturday:  time.Saturday,
	domain.Sunday:    time.Sunday,
}

// anchorDate 返回时间段首次上课的日期：开学日期当天或之后第一个匹配的星期，
// 双周课再顺延一周（第 1 周按单周计）。
func anchorDate(startDate time.Time, day domain.Day, rec domain.Recurrence) time.Time {
	target := weekdayByDay[day]
	d := startDate
	for d.Weekday() != target {
		d = d.AddDate(0, 0, 1)
	}
	if rec == domain.RecurrenceEvenWeeks {
		d = d.AddDate(0, 0, 7)
	}
	return d
}

// slotTimes 把首次上课日期和时间段的墙上时钟合成事件的起止时间。
// 时钟解析失败时返回 ok=false，调用方降级为不带 DTSTART 的事件。
func slotTimes(date time.Time, slot domain.TimeSlot, loc *time.Location) (time.Time, time.Time, bool) {
	startMin, okStart := timetable.MinuteOfDay(slot.StartTime)
	endMin, okEnd := timetable.MinuteOfDay(slot.EndTime)
	if !okStart || !okEnd {
		return time.Time{}, time.Time{}, false
	}

	base := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return base.Add(time.Duration(startMin) * time.Minute),
		base.Add(time.Duration(endMin) * time.Minute),
		true
}

// Build 把会话中每门课程的每个时间段序列化为一个 VEVENT，整体包在一个
// VCALENDAR 里。事件字段按 SUMMARY、DESCRIPTION、LOCATION、(DTSTART、
// DTEND、)RRULE 的顺序写出，兼容常见日历客户端的导入。
//
// 开学日期可解析时事件会锚定到开学后第一个对应的星期；缺失或非法的
// 开学日期、地点、教师都只是留空，不会导致导出失败。
func Build(sess *domain.Session, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	cal := ical.NewCalendar()
	cal.SetProductId(prodID)

	startDate, hasStartDate := parseStartDate(sess.Program.StartDate, loc)

	for _, course := range sess.Courses {
		for _, slot := range course.TimeSlots {
			event := cal.AddEvent(fmt.Sprintf("%s-%s@aircourse", course.ID, slot.ID))
			event.SetSummary(course.Name)
			event.SetDescription("Instructor: " + course.Instructor)
			event.SetLocation(slot.Location)

			if hasStartDate {
				anchor := anchorDate(startDate, slot.Day, slot.Recurrence)
				if start, end, ok := slotTimes(anchor, slot, loc); ok {
					event.SetStartAt(start)
					event.SetEndAt(end)
				}
			}

			event.AddRrule(rruleValue(slot.Recurrence, sess.Program.TotalWeeks))
		}
	}

	return cal.Serialize()
}

func parseStartDate(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
