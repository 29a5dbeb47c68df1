package domain

// Day 表示星期几，取值为 Monday ~ Sunday
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// Days 按展示顺序排列的一周七天
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// DayFromNumber 将 1~7 转换为 Day，1 是星期一。
// 识别结果中的非法取值一律回退到星期一，不作为错误上报。
func DayFromNumber(n int) Day {
	if n >= 1 && n <= 7 {
		return Days[n-1]
	}
	return Monday
}

// Recurrence 表示时间段在哪些教学周生效
type Recurrence string

const (
	RecurrenceWeekly    Recurrence = "Weekly"
	RecurrenceOddWeeks  Recurrence = "Odd Weeks"
	RecurrenceEvenWeeks Recurrence = "Even Weeks"
)

// TimeSlot 是课程每周重复的一个上课时间段。
// 上下课时间按墙上时钟存储，节次表被修改后已有的时间段不会跟着变化。
type TimeSlot struct {
	ID         string     `json:"id"`
	Day        Day        `json:"day"`
	StartTime  string     `json:"startTime"` // HH:MM
	EndTime    string     `json:"endTime"`   // HH:MM
	Location   string     `json:"location"`
	Recurrence Recurrence `json:"recurrence"`
}

// Course 是一门课程，独占其下的所有时间段
type Course struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Instructor string     `json:"instructor"`
	TimeSlots  []TimeSlot `json:"timeSlots"`
}
