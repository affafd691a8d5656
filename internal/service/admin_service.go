package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/supportbot/support-center/internal/filter"
	"github.com/supportbot/support-center/internal/model"
	"github.com/supportbot/support-center/internal/ticket"
	"go.uber.org/zap"
)

var (
	ErrUnauthorized = errors.New("访问码错误")
	ErrUnknownTab   = errors.New("未知的后台标签页")
)

// 管理后台标签页
const (
	TabStats       = "stats"
	TabSubscribers = "subscribers"
	TabQuotes      = "quotes"
	TabContacts    = "contacts"
	TabTickets     = "tickets"
)

// DataSource 管理后台数据来源
type DataSource interface {
	DashboardStats(ctx context.Context) (model.DashboardStats, error)
	Subscribers(ctx context.Context) ([]model.Subscriber, error)
	QuoteRequests(ctx context.Context) ([]model.QuoteRequest, error)
	ContactMessages(ctx context.Context) ([]model.ContactMessage, error)
	Tickets(ctx context.Context) ([]model.TicketRecord, error)
}

// TicketLister 可列出已提交工单的后端，*ticket.RedisStore 满足该接口
type TicketLister interface {
	List(ctx context.Context, limit int) ([]model.TicketRecord, error)
}

const ticketListLimit = 100

// MemoryDataSource 内存数据源，进程重启后清空
type MemoryDataSource struct {
	mu          sync.RWMutex
	subscribers []model.Subscriber
	quotes      []model.QuoteRequest
	contacts    []model.ContactMessage
	tickets     []model.TicketRecord
	lister      TicketLister
}

// NewMemoryDataSource 创建内存数据源，lister 非空时工单从 lister 读取
func NewMemoryDataSource(lister TicketLister) *MemoryDataSource {
	return &MemoryDataSource{lister: lister}
}

// AddSubscriber 新增订阅者
func (m *MemoryDataSource) AddSubscriber(email string) model.Subscriber {
	s := model.Subscriber{Email: email, SubscribedAt: time.Now()}
	m.mu.Lock()
	m.subscribers = append(m.subscribers, s)
	m.mu.Unlock()
	return s
}

// AddQuoteRequest 新增报价请求
func (m *MemoryDataSource) AddQuoteRequest(q model.QuoteRequest) model.QuoteRequest {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}
	m.mu.Lock()
	m.quotes = append(m.quotes, q)
	m.mu.Unlock()
	return q
}

// AddContactMessage 新增联系留言
func (m *MemoryDataSource) AddContactMessage(msg model.ContactMessage) model.ContactMessage {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	m.mu.Lock()
	m.contacts = append(m.contacts, msg)
	m.mu.Unlock()
	return msg
}

// RecordTicket 记录一张已提交的工单，同时作为联系留言出现在后台
func (m *MemoryDataSource) RecordTicket(form ticket.Form, receipt ticket.Receipt) {
	record := model.TicketRecord{
		Reference: receipt.Reference,
		Name:      form.Name,
		Email:     form.Email,
		Subject:   form.Subject,
		Message:   form.Message,
		Priority:  string(form.Priority),
		Category:  form.Category,
		CreatedAt: receipt.CreatedAt,
	}
	m.mu.Lock()
	m.tickets = append(m.tickets, record)
	m.mu.Unlock()

	m.AddContactMessage(model.ContactMessage{
		ID:        receipt.Reference,
		Name:      form.Name,
		Email:     form.Email,
		Subject:   form.Subject,
		Message:   form.Message,
		CreatedAt: receipt.CreatedAt,
	})
}

func (m *MemoryDataSource) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	tickets, err := m.Tickets(ctx)
	if err != nil {
		return model.DashboardStats{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return model.DashboardStats{
		Subscribers:     len(m.subscribers),
		QuoteRequests:   len(m.quotes),
		ContactMessages: len(m.contacts),
		Tickets:         len(tickets),
	}, nil
}

func (m *MemoryDataSource) Subscribers(context.Context) ([]model.Subscriber, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.Subscriber(nil), m.subscribers...), nil
}

func (m *MemoryDataSource) QuoteRequests(context.Context) ([]model.QuoteRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.QuoteRequest(nil), m.quotes...), nil
}

func (m *MemoryDataSource) ContactMessages(context.Context) ([]model.ContactMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.ContactMessage(nil), m.contacts...), nil
}

func (m *MemoryDataSource) Tickets(ctx context.Context) ([]model.TicketRecord, error) {
	if m.lister != nil {
		return m.lister.List(ctx, ticketListLimit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.TicketRecord, len(m.tickets))
	// 最新的在前，与 redis 列表一致
	for i, t := range m.tickets {
		out[len(m.tickets)-1-i] = t
	}
	return out, nil
}

// RecordingSubmitter 包装工单后端，提交成功后写入数据源
type RecordingSubmitter struct {
	next   ticket.Submitter
	source *MemoryDataSource
}

// NewRecordingSubmitter 创建记录型提交器
func NewRecordingSubmitter(next ticket.Submitter, source *MemoryDataSource) *RecordingSubmitter {
	return &RecordingSubmitter{next: next, source: source}
}

func (r *RecordingSubmitter) Submit(ctx context.Context, form ticket.Form) (ticket.Receipt, error) {
	receipt, err := r.next.Submit(ctx, form)
	if err != nil {
		return ticket.Receipt{}, err
	}
	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = time.Now()
	}
	r.source.RecordTicket(form, receipt)
	return receipt, nil
}

// AdminService 管理后台服务
type AdminService struct {
	accessCode string
	source     DataSource
	logger     *zap.Logger
}

// NewAdminService 创建管理后台服务，accessCode 为空时后台不可访问
func NewAdminService(accessCode string, source DataSource, logger *zap.Logger) *AdminService {
	return &AdminService{accessCode: accessCode, source: source, logger: logger}
}

// Authorize 校验访问码
func (s *AdminService) Authorize(code string) error {
	if s.accessCode == "" || subtle.ConstantTimeCompare([]byte(code), []byte(s.accessCode)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// Tab 读取后台标签页数据，除 stats 外均支持 query 子串过滤
func (s *AdminService) Tab(ctx context.Context, code, tab, query string) (interface{}, error) {
	if err := s.Authorize(code); err != nil {
		s.logger.Warn("后台访问被拒绝", zap.String("tab", tab))
		return nil, err
	}

	var (
		result interface{}
		err    error
	)
	switch tab {
	case TabStats:
		result, err = s.source.DashboardStats(ctx)
	case TabSubscribers:
		var items []model.Subscriber
		if items, err = s.source.Subscribers(ctx); err == nil {
			result = filter.Run(items, query, model.CategoryAll)
		}
	case TabQuotes:
		var items []model.QuoteRequest
		if items, err = s.source.QuoteRequests(ctx); err == nil {
			result = filter.Run(items, query, model.CategoryAll)
		}
	case TabContacts:
		var items []model.ContactMessage
		if items, err = s.source.ContactMessages(ctx); err == nil {
			result = filter.Run(items, query, model.CategoryAll)
		}
	case TabTickets:
		var items []model.TicketRecord
		if items, err = s.source.Tickets(ctx); err == nil {
			result = filter.Run(items, query, model.CategoryAll)
		}
	default:
		return nil, ErrUnknownTab
	}
	if err != nil {
		s.logger.Error("读取后台数据失败", zap.String("tab", tab), zap.Error(err))
		return nil, fmt.Errorf("读取 %s 失败: %w", tab, err)
	}

	s.logger.Debug("后台数据读取", zap.String("tab", tab), zap.String("query", query))
	return result, nil
}
