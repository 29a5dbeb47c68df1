package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Lounwb/AirCourse/internal/domain"
	"github.com/Lounwb/AirCourse/internal/timetable"
)

func (h *Handler) AddPeriod(w http.ResponseWriter, r *http.Request) {
	sess := r.Context().Value(SessionCtx).(*domain.Session)

	updated, err := h.sessions.Update(sess.ID, func(s *domain.Session) error {
		s.Program.Periods = timetable.AddPeriod(s.Program.Periods)
		return nil
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	added := updated.Program.Periods[len(updated.Program.Periods)-1]

	h.successResponse(w, r, "添加节次成功", struct {
		Period  domain.Period   `json:"period"`
		Periods []domain.Period `json:"periods"`
	}{Period: added, Periods: updated.Program.Periods})
}

func (h *Handler) UpdatePeriod(w http.ResponseWriter, r *http.Request) {
	sess := r.Context().Value(SessionCtx).(*domain.Session)

	periodIDParam := chi.URLParam(r, "periodID")
	periodID, err := strconv.Atoi(periodIDParam)
	if err != nil {
		h.errorResponse(w, r, "节次ID无效")
		return
	}

	var req struct {
		Start *string `json:"start" validate:"omitempty,datetime=15:04"`
		End   *string `json:"end" validate:"omitempty,datetime=15:04"`
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
		s.Program.Periods = timetable.UpdatePeriod(s.Program.Periods, periodID, req.Start, req.End)
		return nil
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新节次成功", updated.Program.Periods)
}

func (h *Handler) RemovePeriod(w http.ResponseWriter, r *http.Request) {
	sess := r.Context().Value(SessionCtx).(*domain.Session)

	periodIDParam := chi.URLParam(r, "periodID")
	periodID, err := strconv.Atoi(periodIDParam)
	if err != nil {
		h.errorResponse(w, r, "节次ID无效")
		return
	}

	updated, err := h.sessions.Update(sess.ID, func(s *domain.Session) error {
		s.Program.Periods = timetable.RemovePeriod(s.Program.Periods, periodID)
		return nil
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除节次成功", updated.Program.Periods)
}
