package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supportbot/support-center/internal/content"
	"github.com/supportbot/support-center/internal/filter"
	"go.uber.org/zap"
)

func newKnowledge() *KnowledgeService {
	return NewKnowledgeService(content.Default(), zap.NewNop())
}

func TestKnowledgeService_ArticleLookup(t *testing.T) {
	s := newKnowledge()

	a, err := s.Article("refund-policy")
	require.NoError(t, err)
	assert.Equal(t, "Understanding Our Refund Policy", a.Title)

	b, err := s.ArticleByTitle(a.Title)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = s.Article("nope")
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestKnowledgeService_BlogScenarios(t *testing.T) {
	s := newKnowledge()

	res := s.Blog("cicd", "")
	require.Len(t, res.Items, 1)
	assert.Equal(t, "github-actions-pipeline", res.Items[0].ID)
	assert.Equal(t, filter.StatusResults, res.Status)

	res = s.Blog("", "frontend")
	assert.Len(t, res.Items, 2)
	assert.Equal(t, filter.StatusBrowse, res.Status)
}

func TestKnowledgeService_SupportFAQFlattened(t *testing.T) {
	s := newKnowledge()

	all := s.SupportFAQ("", "")
	total := 0
	for _, c := range s.FAQCategories() {
		total += len(c.Items)
	}
	assert.Len(t, all.Items, total)

	miss := s.SupportFAQ("xyzzy", "billing")
	assert.Equal(t, filter.StatusNoResults, miss.Status)
}

func TestKnowledgeService_TicketCategories(t *testing.T) {
	s := newKnowledge()

	assert.True(t, s.HasTicketCategory("billing"))
	assert.False(t, s.HasTicketCategory("gardening"))

	res := s.TicketCategories("refunds")
	require.Len(t, res.Items, 1)
	assert.Equal(t, "billing", res.Items[0].ID)
}

func TestKnowledgeService_FAQIgnoresCategoryWhileSearching(t *testing.T) {
	s := newKnowledge()

	a := s.FAQ("refund", "general")
	b := s.FAQ("refund", "")
	require.NotEmpty(t, a.Items)
	assert.Equal(t, a.Items, b.Items)
}
