package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Lounwb/AirCourse/internal/config"
	"github.com/Lounwb/AirCourse/internal/domain"
	"github.com/Lounwb/AirCourse/internal/session"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Session.DefaultTotalWeeks = 16
	cfg.Quota.GuestDailyLimit = 10

	h, err := NewHandler(cfg, nil, nil, nil, session.NewStore(time.Hour), nil)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	h.RegisterRoutes()
	return h
}

func do(t *testing.T, h *Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("响应不是合法的 JSON: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, env
}

func createSession(t *testing.T, h *Handler, body any) *domain.Session {
	t.Helper()

	_, env := do(t, h, http.MethodPost, "/sessions", body)
	if !env.Success {
		t.Fatalf("创建会话失败: %s", env.Message)
	}

	sess := &domain.Session{}
	if err := json.Unmarshal(env.Data, sess); err != nil {
		t.Fatalf("解析会话失败: %v", err)
	}
	return sess
}

func TestCreateSessionDefaults(t *testing.T) {
	h := newTestHandler(t)

	sess := createSession(t, h, nil)
	if sess.ID == "" {
		t.Fatal("会话应分配 ID")
	}
	if sess.Program.TotalWeeks != 16 {
		t.Errorf("默认学期周数 = %d, want 16", sess.Program.TotalWeeks)
	}
	if len(sess.Program.Periods) != 12 {
		t.Errorf("默认节次数 = %d, want 12", len(sess.Program.Periods))
	}
	if sess.Program.Periods[0].Start != "08:00" || sess.Program.Periods[11].End != "20:10" {
		t.Errorf("默认节次表不符: %+v", sess.Program.Periods)
	}
}

func TestSessionLifecycle(t *testing.T) {
	h := newTestHandler(t)
	sess := createSession(t, h, map[string]any{"totalWeeks": 18, "startDate": "2025-09-01"})

	if sess.Program.TotalWeeks != 18 || sess.Program.StartDate != "2025-09-01" {
		t.Fatalf("创建参数未生效: %+v", sess.Program)
	}

	_, env := do(t, h, http.MethodGet, "/sessions/"+sess.ID, nil)
	if !env.Success {
		t.Fatalf("获取会话失败: %s", env.Message)
	}

	_, env = do(t, h, http.MethodPatch, "/sessions/"+sess.ID+"/program", map[string]any{"totalWeeks": 20})
	if !env.Success {
		t.Fatalf("更新学期配置失败: %s", env.Message)
	}
	var program domain.ProgramConfig
	if err := json.Unmarshal(env.Data, &program); err != nil {
		t.Fatalf("解析学期配置失败: %v", err)
	}
	if program.TotalWeeks != 20 || program.StartDate != "2025-09-01" {
		t.Errorf("部分更新不符: %+v", program)
	}

	_, env = do(t, h, http.MethodDelete, "/sessions/"+sess.ID, nil)
	if !env.Success {
		t.Fatalf("删除会话失败: %s", env.Message)
	}

	_, env = do(t, h, http.MethodGet, "/sessions/"+sess.ID, nil)
	if env.Success {
		t.Error("删除后的会话不应再能获取")
	}
}

func TestUpdateProgramRejectsBadDate(t *testing.T) {
	h := newTestHandler(t)
	sess := createSession(t, h, nil)

	_, env := do(t, h, http.MethodPatch, "/sessions/"+sess.ID+"/program", map[string]any{"startDate": "2025/09/01"})
	if env.Success {
		t.Error("非法日期格式应被拒绝")
	}
}

func TestPeriodEndpoints(t *testing.T) {
	h := newTestHandler(t)
	sess := createSession(t, h, nil)

	// 添加节次
	_, env := do(t, h, http.MethodPost, "/sessions/"+sess.ID+"/periods", nil)
	if !env.Success {
		t.Fatalf("添加节次失败: %s", env.Message)
	}
	var added struct {
		Period  domain.Period   `json:"period"`
		Periods []domain.Period `json:"periods"`
	}
	if err := json.Unmarshal(env.Data, &added); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if added.Period.ID != 13 || len(added.Periods) != 13 {
		t.Errorf("新节次 ID = %d, 总数 = %d", added.Period.ID, len(added.Periods))
	}

	// 修改单个字段
	_, env = do(t, h, http.MethodPatch, "/sessions/"+sess.ID+"/periods/13", map[string]any{"start": "21:00"})
	if !env.Success {
		t.Fatalf("更新节次失败: %s", env.Message)
	}
	var periods []domain.Period
	if err := json.Unmarshal(env.Data, &periods); err != nil {
		t.Fatalf("解析节次表失败: %v", err)
	}
	if periods[12].Start != "21:00" {
		t.Errorf("节次开始时间未更新: %+v", periods[12])
	}

	// 非法时钟被拒绝
	_, env = do(t, h, http.MethodPatch, "/sessions/"+sess.ID+"/periods/13", map[string]any{"start": "25:00"})
	if env.Success {
		t.Error("非法时钟应被拒绝")
	}

	// 删除节次
	_, env = do(t, h, http.MethodDelete, "/sessions/"+sess.ID+"/periods/13", nil)
	if !env.Success {
		t.Fatalf("删除节次失败: %s", env.Message)
	}
	if err := json.Unmarshal(env.Data, &periods); err != nil {
		t.Fatalf("解析节次表失败: %v", err)
	}
	if len(periods) != 12 {
		t.Errorf("删除后节次数 = %d, want 12", len(periods))
	}
}

func validCourseBody() map[string]any {
	return map[string]any{
		"name":       "高等数学",
		"instructor": "王老师",
		"timeSlots": []map[string]any{
			{
				"day":        "Wednesday",
				"startTime":  "08:55",
				"endTime":    "09:40",
				"location":   "教一 101",
				"recurrence": "Weekly",
			},
		},
	}
}

func TestCourseEndpoints(t *testing.T) {
	h := newTestHandler(t)
	sess := createSession(t, h, nil)
	base := "/sessions/" + sess.ID + "/courses"

	// 创建
	_, env := do(t, h, http.MethodPost, base, validCourseBody())
	if !env.Success {
		t.Fatalf("添加课程失败: %s", env.Message)
	}
	var course domain.Course
	if err := json.Unmarshal(env.Data, &course); err != nil {
		t.Fatalf("解析课程失败: %v", err)
	}
	if course.ID == "" || len(course.TimeSlots) != 1 || course.TimeSlots[0].ID == "" {
		t.Fatalf("课程与时间段应分配 ID: %+v", course)
	}

	// 更新（整体替换时间段）
	body := validCourseBody()
	body["name"] = "线性代数"
	body["timeSlots"] = []map[string]any{
		{"day": "Friday", "startTime": "10:10", "endTime": "11:50", "location": "教二 202", "recurrence": "Odd Weeks"},
	}
	_, env = do(t, h, http.MethodPatch, base+"/"+course.ID, body)
	if !env.Success {
		t.Fatalf("更新课程失败: %s", env.Message)
	}
	var updated domain.Course
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatalf("解析课程失败: %v", err)
	}
	if updated.ID != course.ID || updated.Name != "线性代数" {
		t.Errorf("更新应沿用课程 ID: %+v", updated)
	}
	if len(updated.TimeSlots) != 1 || updated.TimeSlots[0].Day != domain.Friday {
		t.Errorf("时间段应被整体替换: %+v", updated.TimeSlots)
	}

	// 更新不存在的课程
	_, env = do(t, h, http.MethodPatch, base+"/nonexistent", validCourseBody())
	if env.Success || env.Message != "课程不存在" {
		t.Errorf("更新不存在的课程应失败: %s", env.Message)
	}

	// 删除
	_, env = do(t, h, http.MethodDelete, base+"/"+course.ID, nil)
	if !env.Success {
		t.Fatalf("删除课程失败: %s", env.Message)
	}
	var remaining []domain.Course
	if err := json.Unmarshal(env.Data, &remaining); err != nil {
		t.Fatalf("解析课程列表失败: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("删除后课程数 = %d, want 0", len(remaining))
	}
}

func TestCourseValidation(t *testing.T) {
	h := newTestHandler(t)
	sess := createSession(t, h, nil)
	base := "/sessions/" + sess.ID + "/courses"

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"缺课程名", func(b map[string]any) { delete(b, "name") }},
		{"无时间段", func(b map[string]any) { b["timeSlots"] = []map[string]any{} }},
		{"非法星期", func(b map[string]any) {
			b["timeSlots"].([]map[string]any)[0]["day"] = "Funday"
		}},
		{"非法重复规则", func(b map[string]any) {
			b["timeSlots"].([]map[string]any)[0]["recurrence"] = "Monthly"
		}},
		{"非法开始时钟", func(b map[string]any) {
			b["timeSlots"].([]map[string]any)[0]["startTime"] = "8:00"
		}},
		{"非法结束时钟", func(b map[string]any) {
			b["timeSlots"].([]map[string]any)[0]["endTime"] = "0940"
		}},
		{"开始不早于结束", func(b map[string]any) {
			b["timeSlots"].([]map[string]any)[0]["startTime"] = "09:40"
			b["timeSlots"].([]map[string]any)[0]["endTime"] = "09:40"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validCourseBody()
			tt.mutate(body)
			_, env := do(t, h, http.MethodPost, base, body)
			if env.Success {
				t.Error("非法请求应被拒绝")
			}
		})
	}

	// 被拒绝的请求不应留下任何课程
	_, env := do(t, h, http.MethodGet, "/sessions/"+sess.ID, nil)
	var got domain.Session
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("解析会话失败: %v", err)
	}
	if len(got.Courses) != 0 {
		t.Errorf("非法请求留下了课程: %+v", got.Courses)
	}
}

func TestGetGrid(t *testing.T) {
	h := newTestHandler(t)
	sess := createSession(t, h, nil)

	body := validCourseBody()
	body["timeSlots"] = []map[string]any{
		{"day": "Wednesday", "startTime": "08:55", "endTime": "09:40", "location": "教一 101", "recurrence": "Odd Weeks"},
	}
	_, env := do(t, h, http.MethodPost, "/sessions/"+sess.ID+"/courses", body)
	if !env.Success {
		t.Fatalf("添加课程失败: %s", env.Message)
	}

	var grid struct {
		Week int      `json:"week"`
		Days []string `json:"days"`
		Rows []struct {
			Period domain.Period `json:"period"`
			Cells  []*gridCell   `json:"cells"`
		} `json:"rows"`
	}

	// 第 1 周（单周）：第 2 节周三应有课
	_, env = do(t, h, http.MethodGet, "/sessions/"+sess.ID+"/grid?week=1", nil)
	if !env.Success {
		t.Fatalf("获取网格失败: %s", env.Message)
	}
	if err := json.Unmarshal(env.Data, &grid); err != nil {
		t.Fatalf("解析网格失败: %v", err)
	}
	if len(grid.Rows) != 12 || len(grid.Days) != 7 {
		t.Fatalf("网格尺寸不符: %d 行 %d 列", len(grid.Rows), len(grid.Days))
	}
	cell := grid.Rows[1].Cells[2] // 第 2 节，周三
	if cell == nil || cell.CourseName != "高等数学" {
		t.Errorf("第 1 周第 2 节周三应有课: %+v", cell)
	}

	// 第 2 周（双周）：同一格应为空
	_, env = do(t, h, http.MethodGet, "/sessions/"+sess.ID+"/grid?week=2", nil)
	if !env.Success {
		t.Fatalf("获取网格失败: %s", env.Message)
	}
	if err := json.Unmarshal(env.Data, &grid); err != nil {
		t.Fatalf("解析网格失败: %v", err)
	}
	if grid.Rows[1].Cells[2] != nil {
		t.Error("双周不应显示单周课")
	}

	// 非法周次
	_, env = do(t, h, http.MethodGet, "/sessions/"+sess.ID+"/grid?week=0", nil)
	if env.Success {
		t.Error("week=0 应被拒绝")
	}
	_, env = do(t, h, http.MethodGet, "/sessions/"+sess.ID+"/grid?week=99", nil)
	if env.Success {
		t.Error("超出学期范围的周次应被拒绝")
	}
}

func TestExportICS(t *testing.T) {
	h := newTestHandler(t)
	sess := createSession(t, h, map[string]any{"startDate": "2025-09-01"})

	// 空课表不允许导出
	rec, env := do(t, h, http.MethodGet, "/sessions/"+sess.ID+"/export", nil)
	if env.Success {
		t.Error("空课表不应能导出")
	}

	_, env = do(t, h, http.MethodPost, "/sessions/"+sess.ID+"/courses", validCourseBody())
	if !env.Success {
		t.Fatalf("添加课程失败: %s", env.Message)
	}

	rec, _ = do(t, h, http.MethodGet, "/sessions/"+sess.ID+"/export", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("导出状态码 = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("Content-Type = %s", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{"BEGIN:VCALENDAR", "SUMMARY:高等数学", "Instructor: 王老师", "RRULE:FREQ=WEEKLY;COUNT=16", "END:VCALENDAR"} {
		if !strings.Contains(body, want) {
			t.Errorf("日历内容缺少 %q", want)
		}
	}
}

func TestPreviewOccurrences(t *testing.T) {
	h := newTestHandler(t)
	sess := createSession(t, h, nil)

	_, env := do(t, h, http.MethodPost, "/sessions/"+sess.ID+"/courses", validCourseBody())
	if !env.Success {
		t.Fatalf("添加课程失败: %s", env.Message)
	}

	// 未设置开学日期
	_, env = do(t, h, http.MethodGet, "/sessions/"+sess.ID+"/export/preview", nil)
	if env.Success {
		t.Error("未设置开学日期时不应能预览")
	}

	_, env = do(t, h, http.MethodPatch, "/sessions/"+sess.ID+"/program", map[string]any{"startDate": "2025-09-01", "totalWeeks": 2})
	if !env.Success {
		t.Fatalf("更新学期配置失败: %s", env.Message)
	}

	_, env = do(t, h, http.MethodGet, "/sessions/"+sess.ID+"/export/preview", nil)
	if !env.Success {
		t.Fatalf("预览失败: %s", env.Message)
	}
	var occurrences []struct {
		CourseName string    `json:"courseName"`
		Start      time.Time `json:"start"`
	}
	if err := json.Unmarshal(env.Data, &occurrences); err != nil {
		t.Fatalf("解析预览失败: %v", err)
	}
	if len(occurrences) != 2 {
		t.Fatalf("2 周的每周课应有 2 次日程, got %d", len(occurrences))
	}
	if got := occurrences[0].Start.Format("2006-01-02"); got != "2025-09-03" {
		t.Errorf("首次上课日期 = %s, want 2025-09-03", got)
	}
}

func TestSessionNotFound(t *testing.T) {
	h := newTestHandler(t)

	_, env := do(t, h, http.MethodGet, "/sessions/nonexistent", nil)
	if env.Success || env.Message != "会话不存在或已过期" {
		t.Errorf("不存在的会话应返回统一错误: %s", env.Message)
	}
}
