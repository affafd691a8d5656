package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/supportbot/support-center/internal/model"
	"github.com/supportbot/support-center/internal/responder"
	"go.uber.org/zap"
)

var ErrEmptyMessage = errors.New("消息内容不能为空")

// suggestionsIntro 推荐文章系统消息的文案
const suggestionsIntro = "You might find these articles helpful:"

// ArticleLookup 按标题查找文章，*KnowledgeService 满足该接口
type ArticleLookup interface {
	ArticleByTitle(title string) (model.Article, error)
}

// ChatConfig 聊天服务配置
type ChatConfig struct {
	ReplyDelay   time.Duration
	ArticleDelay time.Duration
	Welcome      string
	QuickReplies []string
	Articles     ArticleLookup // 可为空；用于识别被点击的推荐文章
}

// ChatService 聊天服务：记录用户消息，延迟产生机器人回复和推荐文章。
// 同一会话的新请求会取代仍在等待中的旧请求，旧请求不再产生消息。
type ChatService struct {
	sessions  *SessionService
	responder *responder.Responder
	cfg       ChatConfig
	logger    *zap.Logger
	wg        sync.WaitGroup
}

// NewChatService 创建聊天服务
func NewChatService(sessions *SessionService, r *responder.Responder, cfg ChatConfig, logger *zap.Logger) *ChatService {
	return &ChatService{
		sessions:  sessions,
		responder: r,
		cfg:       cfg,
		logger:    logger,
	}
}

// StartSession 创建会话并发送欢迎语及快捷回复
func (s *ChatService) StartSession() *ChatSession {
	cs := s.sessions.Create()
	if s.cfg.Welcome != "" {
		s.sessions.Append(cs, model.NewMessage(model.MessageBot, "", s.cfg.Welcome, s.cfg.QuickReplies...))
	}
	return cs
}

// Send 处理用户自由输入，立即返回用户消息
func (s *ChatService) Send(sessionID, text string) (model.ChatMessage, error) {
	return s.handle(sessionID, text, false)
}

// QuickReply 处理快捷回复
func (s *ChatService) QuickReply(sessionID, phrase string) (model.ChatMessage, error) {
	return s.handle(sessionID, phrase, true)
}

// Wait 等待所有延迟回复结束
func (s *ChatService) Wait() {
	s.wg.Wait()
}

func (s *ChatService) handle(sessionID, text string, quick bool) (model.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return model.ChatMessage{}, ErrEmptyMessage
	}
	cs, err := s.sessions.Get(sessionID)
	if err != nil {
		return model.ChatMessage{}, err
	}

	var resp responder.Response
	if quick {
		resp = s.quickReply(text)
	} else {
		resp = s.responder.Respond(text)
	}

	ctx, userMsg := s.sessions.beginRequest(cs, text)

	s.logger.Info("处理用户消息",
		zap.String("sessionId", sessionID),
		zap.String("requestId", userMsg.RequestID),
		zap.Bool("quickReply", quick),
		zap.String("source", string(resp.Source)),
		zap.String("keyword", resp.Keyword),
		zap.Int("suggestions", len(resp.SuggestedArticles)))

	s.wg.Add(1)
	go s.deliver(ctx, cs, userMsg.RequestID, resp)

	return userMsg, nil
}

// quickReply 推荐文章标题作为选项被点击时回复文章摘要，其余交给应答器
func (s *ChatService) quickReply(phrase string) responder.Response {
	if s.cfg.Articles != nil {
		if a, err := s.cfg.Articles.ArticleByTitle(phrase); err == nil {
			return responder.Response{
				Reply:  fmt.Sprintf("%s: %s", a.Title, a.Excerpt),
				Source: responder.SourceArticle,
			}
		}
	}
	return s.responder.QuickReply(phrase)
}

// deliver 按延迟依次追加 bot 消息和可选的 system 消息
func (s *ChatService) deliver(ctx context.Context, cs *ChatSession, requestID string, resp responder.Response) {
	defer s.wg.Done()
	defer s.sessions.endRequest(cs, requestID)

	if !sleep(ctx, s.cfg.ReplyDelay) {
		s.logger.Debug("回复已被取代", zap.String("requestId", requestID))
		return
	}
	bot := model.NewMessage(model.MessageBot, requestID, resp.Reply)
	if !s.sessions.appendIfCurrent(cs, requestID, bot) {
		return
	}

	if len(resp.SuggestedArticles) == 0 {
		return
	}
	if !sleep(ctx, s.cfg.ArticleDelay) {
		return
	}
	titles := make([]string, len(resp.SuggestedArticles))
	for i, a := range resp.SuggestedArticles {
		titles[i] = a.Title
	}
	s.sessions.appendIfCurrent(cs, requestID, model.NewMessage(model.MessageSystem, requestID, suggestionsIntro, titles...))
}

// sleep 等待 d，ctx 取消时返回 false
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
