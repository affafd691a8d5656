package model

import (
	"strings"
	"time"
)

// DashboardStats 管理后台统计
type DashboardStats struct {
	Subscribers     int `json:"subscribers"`
	QuoteRequests   int `json:"quoteRequests"`
	ContactMessages int `json:"contactMessages"`
	Tickets         int `json:"tickets"`
}

// Subscriber 邮件订阅者
type Subscriber struct {
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

func (s Subscriber) SearchText() []string { return []string{s.Email} }

func (s Subscriber) InCategory(string) bool { return true }

// QuoteRequest 服务报价请求
type QuoteRequest struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	Service   string    `json:"service"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}

func (q QuoteRequest) SearchText() []string {
	return []string{q.Name, q.Email, q.Company, q.Service, q.Details}
}

func (q QuoteRequest) InCategory(id string) bool { return strings.EqualFold(q.Service, id) }

// ContactMessage 联系表单留言
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m ContactMessage) SearchText() []string {
	return []string{m.Name, m.Email, m.Subject, m.Message}
}

func (m ContactMessage) InCategory(string) bool { return true }

// TicketRecord 已提交的工单
type TicketRecord struct {
	Reference string    `json:"reference"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Priority  string    `json:"priority"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t TicketRecord) SearchText() []string {
	return []string{t.Reference, t.Name, t.Email, t.Subject, t.Message}
}

func (t TicketRecord) InCategory(id string) bool { return t.Category == id }
