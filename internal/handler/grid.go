package handler

import (
	"net/http"
	"strconv"

	"github.com/Lounwb/AirCourse/internal/domain"
	"github.com/Lounwb/AirCourse/internal/timetable"
)

type gridCell struct {
	CourseID   string `json:"courseId"`
	CourseName string `json:"courseName"`
	Instructor string `json:"instructor"`
	SlotID     string `json:"slotId"`
	Location   string `json:"location"`
	Recurrence string `json:"recurrence"`
}

type gridRow struct {
	Period domain.Period `json:"period"`
	Cells  []*gridCell   `json:"cells"` // 周一到周日，空格子为 null
}

// GetGrid 返回某一周的课表网格，行是节次，列是星期
func (h *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	sess := r.Context().Value(SessionCtx).(*domain.Session)

	week := 1
	if weekParam := r.URL.Query().Get("week"); weekParam != "" {
		parsed, err := strconv.Atoi(weekParam)
		if err != nil || parsed < 1 {
			h.errorResponse(w, r, "周次无效")
			return
		}
		week = parsed
	}
	if week > sess.Program.TotalWeeks {
		h.errorResponse(w, r, "周次超出学期范围")
		return
	}

	rows := make([]gridRow, 0, len(sess.Program.Periods))
	for _, period := range sess.Program.Periods {
		row := gridRow{
			Period: period,
			Cells:  make([]*gridCell, 0, len(domain.Days)),
		}
		for _, day := range domain.Days {
			match, ok := timetable.ResolveCell(sess.Courses, day, period, week)
			if !ok {
				row.Cells = append(row.Cells, nil)
				continue
			}
			row.Cells = append(row.Cells, &gridCell{
				CourseID:   match.Course.ID,
				CourseName: match.Course.Name,
				Instructor: match.Course.Instructor,
				SlotID:     match.Slot.ID,
				Location:   match.Slot.Location,
				Recurrence: string(match.Slot.Recurrence),
			})
		}
		rows = append(rows, row)
	}

	h.successResponse(w, r, "获取课表网格成功", struct {
		Week int       `json:"week"`
		Days []string  `json:"days"`
		Rows []gridRow `json:"rows"`
	}{
		Week: week,
		Days: dayNames(),
		Rows: rows,
	})
}

func dayNames() []string {
	names := make([]string, 0, len(domain.Days))
	for _, d := range domain.Days {
		names = append(names, string(d))
	}
	return names
}
