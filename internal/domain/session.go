package domain

import "time"

// ProgramConfig 是本次编辑会话的学期配置
type ProgramConfig struct {
	TotalWeeks int      `json:"totalWeeks"`
	StartDate  string   `json:"startDate"` // YYYY-MM-DD，允许为空
	Periods    []Period `json:"periods"`
}

// Session 是一次编辑会话的全部可变状态。
// 所有修改都通过 handler 的操作串行进行，不存在并发写。
type Session struct {
	ID        string        `json:"id"`
	Program   ProgramConfig `json:"program"`
	Courses   []Course      `json:"courses"`
	CreatedAt time.Time     `json:"createdAt"`

	// AnalyzeToken 单调递增，只有持有最新 token 的识别请求才能提交结果，
	// 防止旧请求的响应覆盖新请求的结果
	AnalyzeToken int64 `json:"-"`
}

// Clone 返回会话的深拷贝，供网格渲染和导出等只读操作使用
func (s *Session) Clone() *Session {
	cp := *s

	cp.Program.Periods = make([]Period, len(s.Program.Periods))
	copy(cp.Program.Periods, s.Program.Periods)

	cp.Courses = make([]Course, len(s.Courses))
	for i, c := range s.Courses {
		cc := c
		cc.TimeSlots = make([]TimeSlot, len(c.TimeSlots))
		copy(cc.TimeSlots, c.TimeSlots)
		cp.Courses[i] = cc
	}

	return &cp
}
