package handler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Lounwb/AirCourse/internal/domain"
	"github.com/Lounwb/AirCourse/internal/extraction"
	"github.com/Lounwb/AirCourse/internal/session"
	"github.com/Lounwb/AirCourse/internal/timetable"
)

var errStaleAnalyze = errors.New("已有更新的识别请求")

// AnalyzeTimetable 把课表图片交给视觉模型识别，归一化后整体替换会话中的课程。
// 游客按 IP 每天限 10 次，登录用户只计数不拦截。
func (h *Handler) AnalyzeTimetable(w http.ResponseWriter, r *http.Request) {
	sess := r.Context().Value(SessionCtx).(*domain.Session)

	var req struct {
		Image string `json:"image" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	signedIn := h.isSignedIn(r)
	quota, err := h.consumeQuota(r, signedIn)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !signedIn {
		w.Header().Set("X-Guest-Limit", strconv.Itoa(quota.Limit))
		w.Header().Set("X-Guest-Used", strconv.Itoa(quota.Used))
		if quota.Used > quota.Limit {
			h.writeJSON(w, r, http.StatusTooManyRequests, Response{
				Success: false,
				Message: "今日免费识别次数已用完，请登录后继续使用",
				Data:    quota,
			})
			return
		}
	}

	// 先取号再发请求，响应回来时比对 token，旧请求的结果直接丢弃
	token, err := h.sessions.NextAnalyzeToken(sess.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	raw, err := h.vision.Analyze(r.Context(), req.Image)
	if err != nil {
		switch {
		case errors.Is(err, extraction.ErrRateLimited):
			h.errorResponse(w, r, "识别服务繁忙，请稍后再试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	courses := timetable.NormalizeCourses(raw, sess.Program.Periods)

	updated, err := h.sessions.Update(sess.ID, func(s *domain.Session) error {
		if s.AnalyzeToken != token {
			return errStaleAnalyze
		}
		s.Courses = courses
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, errStaleAnalyze):
			h.errorResponse(w, r, "已有更新的识别请求，本次结果已忽略")
		case errors.Is(err, session.ErrNotFound):
			h.errorResponse(w, r, "会话不存在或已过期")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "识别课表成功", updated.Courses)
}

// isSignedIn 校验 Authorization 头中的 Bearer Token。
// 未配置 JWT 密钥时不做校验，任何携带 Token 的请求都视为已登录。
func (h *Handler) isSignedIn(r *http.Request) bool {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return false
	}

	tokenString := strings.TrimPrefix(authz, "Bearer ")
	if tokenString == "" {
		return false
	}
	if h.config.JWT.Secret == "" {
		return true
	}

	_, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(h.config.JWT.Secret), nil
	})
	return err == nil
}

// consumeQuota 在 redis 中为调用方累加当天的识别次数
func (h *Handler) consumeQuota(r *http.Request, signedIn bool) (*domain.GuestQuota, error) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	key := h.quotaKey(r, signedIn)

	used, err := h.redisClient.Incr(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if used == 1 {
		// 计数键按 UTC 日期切分，过期时间只是兜底清理
		if err := h.redisClient.Expire(ctx, key, 25*time.Hour).Err(); err != nil {
			return nil, err
		}
	}

	return &domain.GuestQuota{
		Used:  int(used),
		Limit: h.config.Quota.GuestDailyLimit,
	}, nil
}

func (h *Handler) quotaKey(r *http.Request, signedIn bool) string {
	day := time.Now().UTC().Format("2006-01-02")

	if signedIn {
		sum := sha256.Sum256([]byte(r.Header.Get("Authorization") + h.config.Quota.Salt))
		return fmt.Sprintf("quota:user:%s:%s", day, hex.EncodeToString(sum[:16]))
	}

	sum := sha256.Sum256([]byte(clientIP(r) + h.config.Quota.Salt))
	return fmt.Sprintf("quota:guest:%s:%s", day, hex.EncodeToString(sum[:16]))
}

func clientIP(r *http.Request) string {
	// 反向代理场景下取转发链里的第一个地址
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
