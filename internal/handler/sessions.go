package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/Lounwb/AirCourse/internal/domain"
)

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TotalWeeks *int    `json:"totalWeeks" validate:"omitempty,gte=1,lte=60"`
		StartDate  *string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
		CampusID   *int64  `json:"campusId"`
	}

	// 允许空请求体，全部走默认值
	if r.ContentLength > 0 {
		if err := h.readJSON(r, &req); err != nil {
			h.badRequest(w, r, err)
			return
		}
		if err := h.validate.Struct(req); err != nil {
			h.badRequest(w, r, err)
			return
		}
	}

	program := domain.ProgramConfig{
		TotalWeeks: h.config.Session.DefaultTotalWeeks,
		Periods:    domain.DefaultPeriods(),
	}
	if req.TotalWeeks != nil {
		program.TotalWeeks = *req.TotalWeeks
	}
	if req.StartDate != nil {
		program.StartDate = *req.StartDate
	}

	// 指定校区时用校区的作息时间替换默认节次表
	if req.CampusID != nil {
		campus, err := h.repository.GetCampusByID(*req.CampusID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "校区不存在")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}
		if len(campus.ClassTimes) > 0 {
			program.Periods = domain.PeriodsFromClassTimes(campus.ClassTimes)
		}
	}

	sess := h.sessions.Create(program)

	h.successResponse(w, r, "创建会话成功", sess)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess := r.Context().Value(SessionCtx).(*domain.Session)

	h.successResponse(w, r, "获取会话成功", sess)
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sess := r.Context().Value(SessionCtx).(*domain.Session)

	h.sessions.Delete(sess.ID)

	h.successResponse(w, r, "删除会话成功", nil)
}

func (h *Handler) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	sess := r.Context().Value(SessionCtx).(*domain.Session)

	var req struct {
		TotalWeeks *int    `json:"totalWeeks" validate:"omitempty,gte=1,lte=60"`
		StartDate  *string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	updated, err := h.sessions.Update(sess.ID, func(s *domain.Session) error {
		if req.TotalWeeks != nil {
			s.Program.TotalWeeks = *req.TotalWeeks
		}
		if req.StartDate != nil {
			s.Program.StartDate = *req.StartDate
		}
		return nil
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新学期配置成功", updated.Program)
}
