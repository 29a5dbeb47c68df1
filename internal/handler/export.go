package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Lounwb/AirCourse/internal/domain"
	"github.com/Lounwb/AirCourse/internal/ics"
)

const icsFileName = "课程表.ics"

func (h *Handler) ExportICS(w http.ResponseWriter, r *http.Request) {
	sess := r.Context().Value(SessionCtx).(*domain.Session)

	if len(sess.Courses) == 0 {
		h.errorResponse(w, r, "课表为空，没有可导出的课程")
		return
	}

	calendar := ics.Build(sess, time.Local)

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="timetable.ics"; filename*=UTF-8''%E8%AF%BE%E7%A8%8B%E8%A1%A8.ics`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(calendar))
}

func (h *Handler) PreviewOccurrences(w http.ResponseWriter, r *http.Request) {
	sess := r.Context().Value(SessionCtx).(*domain.Session)

	occurrences, err := ics.ExpandOccurrences(sess, time.Local)
	if err != nil {
		switch {
		case errors.Is(err, ics.ErrNoStartDate):
			h.errorResponse(w, r, "请先设置学期开始日期")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取日程预览成功", occurrences)
}

func (h *Handler) MailICS(w http.ResponseWriter, r *http.Request) {
	sess := r.Context().Value(SessionCtx).(*domain.Session)

	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if len(sess.Courses) == 0 {
		h.errorResponse(w, r, "课表为空，没有可导出的课程")
		return
	}

	calendar := ics.Build(sess, time.Local)

	data, err := json.Marshal(domain.IcsExportMailData{
		FileName: icsFileName,
		Ics:      calendar,
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	message, err := json.Marshal(domain.MailMessage{
		Type: "ics_export",
		To:   req.Email,
		Data: data,
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(ctx, "", "email_queue", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        message,
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "日历文件将通过邮件发送", nil)
}
