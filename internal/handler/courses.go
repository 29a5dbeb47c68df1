package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lounwb/AirCourse/internal/domain"
	"github.com/Lounwb/AirCourse/internal/timetable"
	"github.com/Lounwb/AirCourse/internal/utils"
)

type courseRequest struct {
	Name       string `json:"name" validate:"required"`
	Instructor string `json:"instructor"`
	TimeSlots  []struct {
		Day        string `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
		StartTime  string `json:"startTime" validate:"required,datetime=15:04"`
		EndTime    string `json:"endTime" validate:"required,datetime=15:04"`
		Location   string `json:"location"`
		Recurrence string `json:"recurrence" validate:"required,oneof='Weekly' 'Odd Weeks' 'Even Weeks'"`
	} `json:"timeSlots" validate:"required,min=1,dive"`
}

// slotsFromRequest 在通过结构校验后做跨字段检查并生成时间段。
// datetime 标签放过 "8:00" 这类没有补零的时钟，这里按 HH:MM 严格复核，
// 否则时间段会原样入库并且永远匹配不到任何网格单元。
func (h *Handler) slotsFromRequest(req *courseRequest) ([]domain.TimeSlot, error) {
	slots := make([]domain.TimeSlot, 0, len(req.TimeSlots))
	for _, s := range req.TimeSlots {
		start, okStart := timetable.MinuteOfDay(s.StartTime)
		end, okEnd := timetable.MinuteOfDay(s.EndTime)
		if !okStart || !okEnd {
			return nil, errors.New("上课时间必须是 HH:MM 格式")
		}
		if start >= end {
			return nil, errors.New("时间段的开始时间必须早于结束时间")
		}
		slots = append(slots, domain.TimeSlot{
			ID:         utils.NewID(),
			Day:        domain.Day(s.Day),
			StartTime:  s.StartTime,
			EndTime:    s.EndTime,
			Location:   s.Location,
			Recurrence: domain.Recurrence(s.Recurrence),
		})
	}
	return slots, nil
}

func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	sess := r.Context().Value(SessionCtx).(*domain.Session)

	var req courseRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	slots, err := h.slotsFromRequest(&req)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	course := domain.Course{
		ID:         utils.NewID(),
		Name:       req.Name,
		Instructor: req.Instructor,
		TimeSlots:  slots,
	}

	if _, err := h.sessions.Update(sess.ID, func(s *domain.Session) error {
		s.Courses = append(s.Courses, course)
		return nil
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "添加课程成功", course)
}

func (h *Handler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	sess := r.Context().Value(SessionCtx).(*domain.Session)
	courseID := chi.URLParam(r, "courseID")

	var req courseRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	slots, err := h.slotsFromRequest(&req)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	var course domain.Course
	errCourseNotFound := errors.New("课程不存在")
	if _, err := h.sessions.Update(sess.ID, func(s *domain.Session) error {
		for i := range s.Courses {
			if s.Courses[i].ID == courseID {
				// 整体替换时间段，沿用课程 ID
				s.Courses[i].Name = req.Name
				s.Courses[i].Instructor = req.Instructor
				s.Courses[i].TimeSlots = slots
				course = s.Courses[i]
				return nil
			}
		}
		return errCourseNotFound
	}); err != nil {
		switch {
		case errors.Is(err, errCourseNotFound):
			h.errorResponse(w, r, "课程不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新课程成功", course)
}

func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	sess := r.Context().Value(SessionCtx).(*domain.Session)
	courseID := chi.URLParam(r, "courseID")

	updated, err := h.sessions.Update(sess.ID, func(s *domain.Session) error {
		courses := s.Courses[:0]
		for _, c := range s.Courses {
			if c.ID != courseID {
				courses = append(courses, c)
			}
		}
		s.Courses = courses
		return nil
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除课程成功", updated.Courses)
}
