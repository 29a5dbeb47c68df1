package handler

import (
	"net/http"
	"strings"

	"github.com/Lounwb/AirCourse/internal/domain"
)

const campusSearchLimit = 20

func (h *Handler) SearchCampuses(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("query"))
	if keyword == "" {
		h.successResponse(w, r, "获取校区列表成功", []*domain.Campus{})
		return
	}

	campuses, err := h.repository.SearchCampuses(keyword, campusSearchLimit)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取校区列表成功", campuses)
}
