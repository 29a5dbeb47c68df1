package timetable

import (
	"strconv"

	"github.com/Lounwb/AirCourse/internal/domain"
)

// AddPeriod 在节次表末尾追加一个新节次，新 id 为现有最大 id 加一。
// 默认时间为 08:00 起的一小时。
func AddPeriod(periods []domain.Period) []domain.Period {
	maxID := 0
	for _, p := range periods {
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	newID := maxID + 1
	return append(periods, domain.Period{
		ID:    newID,
		Name:  strconv.Itoa(newID),
		Start: "08:00",
		End:   "09:00",
	})
}

// UpdatePeriod 修改指定 id 节次的开始/结束时间，nil 表示不修改该字段。
// id 不存在时不做任何事。这里不校验 start 和 end 的先后关系。
func UpdatePeriod(periods []domain.Period, id int, start, end *string) []domain.Period {
	for i := range periods {
		if periods[i].ID != id {
			continue
		}
		if start != nil {
			periods[i].Start = *start
		}
		if end != nil {
			periods[i].End = *end
		}
	}
	return periods
}

// RemovePeriod 删除指定 id 的节次，其余节次的 id 保持不变。
// 允许删空整张表。
func RemovePeriod(periods []domain.Period, id int) []domain.Period {
	out := periods[:0]
	for _, p := range periods {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
