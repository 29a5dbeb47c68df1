// Package extraction 封装对视觉大模型的课表图片识别调用。
package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/Lounwb/AirCourse/internal/domain"
)

const (
	defaultModel    = "qwen-vl-max"
	defaultEndpoint = "https://dashscope.aliyuncs.com/compatible-mode/v1/chat/completions"
	defaultTimeout  = 60 * time.Second
)

// ErrRateLimited 表示上游识别接口触发了限流，今天重试没有意义
var ErrRateLimited = errors.New("识别接口触发限流")

type Config struct {
	APIKey         string
	Model          string
	Endpoint       string
	RequestTimeout time.Duration
	MaxRetries     int
}

type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *retryablehttp.Client
}

func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("缺少识别服务的 API Key")
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = timeout
	// 限流响应重试没有意义，直接透传给调用方
	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
			return false, nil
		}
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	return &Client{
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
		client:   retryClient,
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []chatContent `json:"content"`
}

type chatContent struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

// Analyze 发送课表图片（data URL 或 base64），返回模型识别出的原始课程列表。
// 模型输出不保证是干净的 JSON，这里按第一个 { 到最后一个 } 截取后再解析。
func (c *Client) Analyze(ctx context.Context, image string) ([]domain.RawCourse, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []chatContent{
				{Type: "image_url", ImageURL: &chatImageURL{URL: image}},
				{Type: "text", Text: extractionPrompt},
			},
		}},
		MaxTokens:   4000,
		Temperature: 0.1,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("识别请求失败: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode >= 300 {
		if msg := gjson.GetBytes(respBody, "error.message").String(); msg != "" {
			return nil, fmt.Errorf("识别请求失败: %s", msg)
		}
		return nil, fmt.Errorf("识别请求失败: HTTP %d", resp.StatusCode)
	}

	content := gjson.GetBytes(respBody, "choices.0.message.content").String()
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("识别服务返回数据格式错误")
	}

	payload, ok := extractJSON(content)
	if !ok || !gjson.Valid(payload) {
		return nil, errors.New("无法从识别结果中提取 JSON 数据")
	}

	return parseCourses(payload), nil
}

// extractJSON 截取文本中第一个 { 到最后一个 } 之间的部分，
// 容忍模型在 JSON 外包裹说明文字或代码块标记
func extractJSON(content string) (string, bool) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return content[start : end+1], true
}

func parseCourses(payload string) []domain.RawCourse {
	courses := make([]domain.RawCourse, 0)

	gjson.Get(payload, "courses").ForEach(func(_, course gjson.Result) bool {
		rc := domain.RawCourse{
			Name:    course.Get("name").String(),
			Teacher: course.Get("teacher").String(),
		}

		course.Get("timeSlots").ForEach(func(_, slot gjson.Result) bool {
			rc.TimeSlots = append(rc.TimeSlots, domain.RawTimeSlot{
				Location:   slot.Get("location").String(),
				StartWeek:  int(slot.Get("startWeek").Int()),
				EndWeek:    int(slot.Get("endWeek").Int()),
				DayOfWeek:  int(slot.Get("dayOfWeek").Int()),
				StartClass: int(slot.Get("startClass").Int()),
				EndClass:   int(slot.Get("endClass").Int()),
			})
			return true
		})

		courses = append(courses, rc)
		return true
	})

	return courses
}

const extractionPrompt = `请分析这张课表图片，提取出所有课程信息，并按照以下JSON格式返回：

{
  "courses": [
    {
      "name": "课程名称",
      "teacher": "教师姓名",
      "timeSlots": [
        {
          "location": "上课地点",
          "startWeek": 1,
          "endWeek": 16,
          "dayOfWeek": 1,
          "startClass": 1,
          "endClass": 2
        }
      ]
    }
  ]
}

注意：
1. dayOfWeek: 1=星期一, 2=星期二, ..., 7=星期日
2. startClass和endClass: 第几节课（从1开始）
3. 如果同一门课程在不同周次有不同安排，请为每个时间段创建单独的timeSlot
4. 请仔细识别所有课程信息，包括课程名称、教师、地点、时间等
5. 只返回JSON格式，不要包含其他文字`
