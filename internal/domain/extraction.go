package domain

// RawTimeSlot 是图片识别服务返回的原始时间段。
// startClass/endClass 是从 1 开始的节次序号，dayOfWeek 为 1~7。
// startWeek/endWeek 目前只透传不参与频率推导。
type RawTimeSlot struct {
	Location   string `json:"location"`
	StartWeek  int    `json:"startWeek"`
	EndWeek    int    `json:"endWeek"`
	DayOfWeek  int    `json:"dayOfWeek"`
	StartClass int    `json:"startClass"`
	EndClass   int    `json:"endClass"`
}

// RawCourse 是图片识别服务返回的原始课程
type RawCourse struct {
	Name      string        `json:"name"`
	Teacher   string        `json:"teacher"`
	TimeSlots []RawTimeSlot `json:"timeSlots"`
}

// GuestQuota 记录未登录用户当日的识别次数使用情况
type GuestQuota struct {
	Used  int `json:"used"`
	Limit int `json:"limit"`
}
