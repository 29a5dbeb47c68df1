package domain

import "strconv"

// Period 表示课表网格中的一行：一节课固定的上下课时间
type Period struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
}

// ClassTime 是校区数据中记录的一节课时间，可直接转换为节次表
type ClassTime struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DefaultPeriods 返回默认的 12 节课节次表
func DefaultPeriods() []Period {
	return []Period{
		{ID: 1, Name: "1", Start: "08:00", End: "08:45"},
		{ID: 2, Name: "2", Start: "08:55", End: "09:40"},
		{ID: 3, Name: "3", Start: "10:00", End: "10:45"},
		{ID: 4, Name: "4", Start: "10:55", End: "11:40"},
		{ID: 5, Name: "5", Start: "12:00", End: "12:45"},
		{ID: 6, Name: "6", Start: "12:55", End: "13:40"},
		{ID: 7, Name: "7", Start: "14:00", End: "14:45"},
		{ID: 8, Name: "8", Start: "14:55", End: "15:40"},
		{ID: 9, Name: "9", Start: "16:00", End: "16:45"},
		{ID: 10, Name: "10", Start: "16:55", End: "17:40"},
		{ID: 11, Name: "11", Start: "18:30", End: "19:15"},
		{ID: 12, Name: "12", Start: "19:25", End: "20:10"},
	}
}

// PeriodsFromClassTimes 将校区的上课时间列表转换为节次表
func PeriodsFromClassTimes(classTimes []ClassTime) []Period {
	periods := make([]Period, 0, len(classTimes))
	for i, ct := range classTimes {
		periods = append(periods, Period{
			ID:    i + 1,
			Name:  strconv.Itoa(i + 1),
			Start: ct.Start,
			End:   ct.End,
		})
	}
	return periods
}
