package timetable

import (
	"github.com/Lounwb/AirCourse/internal/domain"
	"github.com/Lounwb/AirCourse/internal/utils"
)

// NormalizeCourses 把识别服务返回的原始课程转换为以墙上时钟为锚点的课程集合。
// 转换永远成功：缺失或非法的字段按文档化的兜底规则回退，而不是报错，
// 因为数据来自可能出错的 AI 识别。
func NormalizeCourses(raw []domain.RawCourse, periods []domain.Period) []domain.Course {
	courses := make([]domain.Course, 0, len(raw))
	for _, rc := range raw {
		name := rc.Name
		if name == "" {
			name = "未命名课程"
		}

		course := domain.Course{
			ID:         utils.NewID(),
			Name:       name,
			Instructor: rc.Teacher,
			TimeSlots:  make([]domain.TimeSlot, 0, len(rc.TimeSlots)),
		}
		for _, rs := range rc.TimeSlots {
			course.TimeSlots = append(course.TimeSlots, NormalizeSlot(rs, periods))
		}
		courses = append(courses, course)
	}
	return courses
}

// NormalizeSlot 把一个原始时间段对齐到当前节次表。
// 节次按表中的位置（而不是 id）查找：startClass 越界时退到第一节，
// endClass 越界时退到最后一节。时间值在这里被复制，之后修改节次表
// 不会回头改动已生成的时间段。
//
// 识别结果携带的 startWeek/endWeek 在这里被丢弃，频率一律按每周处理，
// 与上游展示行为保持一致。
func NormalizeSlot(raw domain.RawTimeSlot, periods []domain.Period) domain.TimeSlot {
	startTime, endTime := pickTimes(periods, raw.StartClass, raw.EndClass)

	return domain.TimeSlot{
		ID:         utils.NewID(),
		Day:        domain.DayFromNumber(raw.DayOfWeek),
		StartTime:  startTime,
		EndTime:    endTime,
		Location:   raw.Location,
		Recurrence: domain.RecurrenceWeekly,
	}
}

func pickTimes(periods []domain.Period, startClass, endClass int) (string, string) {
	if startClass < 1 {
		startClass = 1
	}
	if endClass < 1 {
		endClass = startClass
	}

	startTime := "08:00"
	endTime := "09:00"

	if len(periods) > 0 {
		sIdx := startClass - 1
		if sIdx >= len(periods) {
			sIdx = 0
		}
		startTime = periods[sIdx].Start

		eIdx := endClass - 1
		if eIdx >= len(periods) {
			eIdx = len(periods) - 1
		}
		endTime = periods[eIdx].End
	}

	return startTime, endTime
}
