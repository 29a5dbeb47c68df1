package ics

import (
	"errors"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/Lounwb/AirCourse/internal/domain"
)

// Occurrence 是一次具体日期上的上课安排，供导出前预览
type Occurrence struct {
	CourseID   string    `json:"courseID"`
	CourseName string    `json:"courseName"`
	SlotID     string    `json:"slotID"`
	Location   string    `json:"location"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}

var ErrNoStartDate = errors.New("学期开始日期缺失或格式错误")

// ExpandOccurrences 把会话中每个时间段的重复规则展开为具体日期的上课列表。
// 展开需要开学日期作为锚点；时钟格式非法的时间段跳过，不影响其他时间段。
func ExpandOccurrences(sess *domain.Session, loc *time.Location) ([]Occurrence, error) {
	if loc == nil {
		loc = time.Local
	}

	startDate, ok := parseStartDate(sess.Program.StartDate, loc)
	if !ok {
		return nil, ErrNoStartDate
	}

	occurrences := make([]Occurrence, 0)

	for _, course := range sess.Courses {
		for _, slot := range course.TimeSlots {
			anchor := anchorDate(startDate, slot.Day, slot.Recurrence)
			start, end, ok := slotTimes(anchor, slot, loc)
			if !ok {
				continue
			}

			r, err := rrule.NewRRule(rrule.ROption{
				Freq:     rrule.WEEKLY,
				Interval: interval(slot.Recurrence),
				Count:    OccurrenceCount(slot.Recurrence, sess.Program.TotalWeeks),
				Dtstart:  start,
			})
			if err != nil {
				continue
			}

			duration := end.Sub(start)
			for _, occStart := range r.All() {
				occurrences = append(occurrences, Occurrence{
					CourseID:   course.ID,
					CourseName: course.Name,
					SlotID:     slot.ID,
					Location:   slot.Location,
					Start:      occStart,
					End:        occStart.Add(duration),
				})
			}
		}
	}

	sort.Slice(occurrences, func(i, j int) bool {
		if !occurrences[i].Start.Equal(occurrences[j].Start) {
			return occurrences[i].Start.Before(occurrences[j].Start)
		}
		return occurrences[i].CourseName < occurrences[j].CourseName
	})

	return occurrences, nil
}
