package timetable

import "github.com/Lounwb/AirCourse/internal/domain"

// Match 是网格单元格的占用结果
type Match struct {
	Course *domain.Course
	Slot   *domain.TimeSlot
}

// ResolveCell 在第 week 教学周查找 day 这天与给定节次时间范围重叠的时间段。
//
// 判定采用区间重叠而不是完全相等：时间段起点落在 [pStart, pEnd) 内、
// 终点落在 (pStart, pEnd] 内、或时间段完全覆盖该节次，三者任一成立即命中。
// 因此一个横跨多节的时间段会命中它覆盖的每一节，网格可以按多行渲染同一门课。
//
// 课程和时间段按插入顺序遍历，返回第一个命中的组合。时间冲突不做检测或
// 合并，先到先得是确定的展示策略。大多数单元格没有课，返回 ok=false。
func ResolveCell(courses []domain.Course, day domain.Day, period domain.Period, week int) (Match, bool) {
	pStart, okStart := MinuteOfDay(period.Start)
	pEnd, okEnd := MinuteOfDay(period.End)
	if !okStart || !okEnd {
		return Match{}, false
	}

	for ci := range courses {
		course := &courses[ci]
		for si := range course.TimeSlots {
			slot := &course.TimeSlots[si]
			if slot.Day != day || !IsActiveInWeek(slot.Recurrence, week) {
				continue
			}

			sStart, ok := MinuteOfDay(slot.StartTime)
			if !ok {
				continue
			}
			sEnd, ok := MinuteOfDay(slot.EndTime)
			if !ok {
				continue
			}

			startsInside := sStart >= pStart && sStart < pEnd
			endsInside := sEnd > pStart && sEnd <= pEnd
			covers := sStart <= pStart && sEnd >= pEnd

			if startsInside || endsInside || covers {
				return Match{Course: course, Slot: slot}, true
			}
		}
	}

	return Match{}, false
}
