package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/supportbot/support-center/internal/ticket"
	"go.uber.org/zap"
)

// RetryConfig 重试策略：指数退避，因子 1.5，上限 MaxDelay
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// DefaultRetryConfig 默认重试策略
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   5 * time.Second,
	}
}

// APIError 工单接口返回的非 2xx 响应
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("工单接口返回错误: %d, body: %s", e.StatusCode, e.Body)
}

// Temporary 5xx 和 429 可重试
func (e *APIError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// TicketAPIClient 外部工单系统客户端
type TicketAPIClient struct {
	baseURL    string
	apiKey     string
	retry      RetryConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewTicketAPIClient 创建工单系统客户端，retry 中的零值字段取默认策略
func NewTicketAPIClient(baseURL, apiKey string, retry RetryConfig, logger *zap.Logger) *TicketAPIClient {
	def := DefaultRetryConfig()
	if retry.MaxRetries <= 0 {
		retry.MaxRetries = def.MaxRetries
	}
	if retry.BaseDelay <= 0 {
		retry.BaseDelay = def.BaseDelay
	}
	if retry.MaxDelay <= 0 {
		retry.MaxDelay = def.MaxDelay
	}
	return &TicketAPIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		retry:      retry,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// CreateTicketRequest 创建工单请求
type CreateTicketRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
	Category string `json:"category"`
}

// CreateTicketResponse 创建工单响应
type CreateTicketResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// Submit 实现 ticket.Submitter，失败时按重试策略重试
func (c *TicketAPIClient) Submit(ctx context.Context, form ticket.Form) (ticket.Receipt, error) {
	req := CreateTicketRequest{
		Name:     form.Name,
		Email:    form.Email,
		Subject:  form.Subject,
		Message:  form.Message,
		Priority: string(form.Priority),
		Category: form.Category,
	}

	var resp *CreateTicketResponse
	err := c.retryOperation(ctx, func() error {
		var err error
		resp, err = c.CreateTicket(ctx, req)
		return err
	})
	if err != nil {
		return ticket.Receipt{}, err
	}

	receipt := ticket.Receipt{Reference: resp.ID, CreatedAt: resp.CreatedAt}
	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = time.Now()
	}
	return receipt, nil
}

// CreateTicket 单次调用 POST /tickets
func (c *TicketAPIClient) CreateTicket(ctx context.Context, req CreateTicketRequest) (*CreateTicketResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tickets", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out CreateTicketResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("解析响应失败: %w", err)
	}
	if out.ID == "" {
		return nil, fmt.Errorf("响应缺少工单编号")
	}
	return &out, nil
}

func (c *TicketAPIClient) retryOperation(ctx context.Context, operation func() error) error {
	for attempt := 0; ; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := operation()
		if err == nil {
			return nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Temporary() {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt >= c.retry.MaxRetries {
			return fmt.Errorf("重试 %d 次后仍失败: %w", c.retry.MaxRetries, err)
		}

		delay := c.backoff(attempt)
		c.logger.Warn("工单提交重试",
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (c *TicketAPIClient) backoff(attempt int) time.Duration {
	delay := time.Duration(float64(c.retry.BaseDelay) * math.Pow(1.5, float64(attempt)))
	if c.retry.MaxDelay > 0 && delay > c.retry.MaxDelay {
		delay = c.retry.MaxDelay
	}
	return delay
}
