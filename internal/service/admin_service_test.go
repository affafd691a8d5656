package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supportbot/support-center/internal/filter"
	"github.com/supportbot/support-center/internal/model"
	"github.com/supportbot/support-center/internal/ticket"
	"go.uber.org/zap"
)

type failingSubmitter struct{}

func (failingSubmitter) Submit(context.Context, ticket.Form) (ticket.Receipt, error) {
	return ticket.Receipt{}, errors.New("backend down")
}

type staticLister struct {
	records []model.TicketRecord
	err     error
}

func (l staticLister) List(context.Context, int) ([]model.TicketRecord, error) {
	return l.records, l.err
}

func sampleForm() ticket.Form {
	return ticket.Form{
		Name:     "Asha",
		Email:    "asha@example.com",
		Subject:  "Video not loading",
		Message:  "Module 3 video stalls at 2:10",
		Priority: ticket.PriorityHigh,
		Category: "technical",
	}
}

func TestAdminService_RejectsWrongCode(t *testing.T) {
	s := NewAdminService("letmein", NewMemoryDataSource(nil), zap.NewNop())

	_, err := s.Tab(context.Background(), "wrong", TabStats, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = s.Tab(context.Background(), "", TabStats, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = s.Tab(context.Background(), "letmein", "payroll", "")
	assert.ErrorIs(t, err, ErrUnknownTab)
}

func TestAdminService_EmptyCodeDisablesDashboard(t *testing.T) {
	s := NewAdminService("", NewMemoryDataSource(nil), zap.NewNop())
	assert.ErrorIs(t, s.Authorize(""), ErrUnauthorized)
}

func TestAdminService_RecordedTicketsShowUp(t *testing.T) {
	src := NewMemoryDataSource(nil)
	sub := NewRecordingSubmitter(ticket.NewMockSubmitter(0, zap.NewNop()), src)
	s := NewAdminService("letmein", src, zap.NewNop())
	ctx := context.Background()

	receipt, err := sub.Submit(ctx, sampleForm())
	require.NoError(t, err)
	src.AddSubscriber("reader@example.com")
	src.AddQuoteRequest(model.QuoteRequest{Name: "Ravi", Email: "ravi@corp.in", Service: "cloud", Details: "AWS migration"})

	out, err := s.Tab(ctx, "letmein", TabStats, "")
	require.NoError(t, err)
	assert.Equal(t, model.DashboardStats{Subscribers: 1, QuoteRequests: 1, ContactMessages: 1, Tickets: 1}, out)

	out, err = s.Tab(ctx, "letmein", TabTickets, "VIDEO")
	require.NoError(t, err)
	tickets := out.(filter.Result[model.TicketRecord])
	require.Len(t, tickets.Items, 1)
	assert.Equal(t, receipt.Reference, tickets.Items[0].Reference)
	assert.Equal(t, "high", tickets.Items[0].Priority)

	out, err = s.Tab(ctx, "letmein", TabQuotes, "kubernetes")
	require.NoError(t, err)
	assert.Equal(t, filter.StatusNoResults, out.(filter.Result[model.QuoteRequest]).Status)

	out, err = s.Tab(ctx, "letmein", TabContacts, "")
	require.NoError(t, err)
	assert.Equal(t, filter.StatusBrowse, out.(filter.Result[model.ContactMessage]).Status)
}

func TestRecordingSubmitter_SkipsFailedSubmissions(t *testing.T) {
	src := NewMemoryDataSource(nil)
	sub := NewRecordingSubmitter(failingSubmitter{}, src)

	_, err := sub.Submit(context.Background(), sampleForm())
	assert.Error(t, err)

	tickets, err := src.Tickets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestMemoryDataSource_TicketsNewestFirst(t *testing.T) {
	src := NewMemoryDataSource(nil)
	now := time.Now()
	src.RecordTicket(sampleForm(), ticket.Receipt{Reference: "TKT-00000001", CreatedAt: now})
	src.RecordTicket(sampleForm(), ticket.Receipt{Reference: "TKT-00000002", CreatedAt: now.Add(time.Second)})

	tickets, err := src.Tickets(context.Background())
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, "TKT-00000002", tickets[0].Reference)
}

func TestMemoryDataSource_UsesLister(t *testing.T) {
	src := NewMemoryDataSource(staticLister{records: []model.TicketRecord{{Reference: "TKT-REDIS001"}}})
	stats, err := src.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Tickets)

	s := NewAdminService("code", NewMemoryDataSource(staticLister{err: errors.New("redis down")}), zap.NewNop())
	_, err = s.Tab(context.Background(), "code", TabTickets, "")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}
