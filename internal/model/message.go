package model

import (
	"time"

	"github.com/google/uuid"
)

// MessageType 消息类型，决定前端展示位置和样式
type MessageType string

const (
	MessageUser   MessageType = "user"
	MessageBot    MessageType = "bot"
	MessageSystem MessageType = "system"
)

// ChatMessage 聊天消息
type ChatMessage struct {
	ID        string      `json:"id"`
	RequestID string      `json:"requestId,omitempty"` // 同一轮问答共享，用于识别过期回复
	Type      MessageType `json:"type"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
	Options   []string    `json:"options,omitempty"` // 快捷回复按钮
}

// NewMessage 创建消息
func NewMessage(typ MessageType, requestID, text string, options ...string) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		RequestID: requestID,
		Type:      typ,
		Text:      text,
		Timestamp: time.Now(),
		Options:   options,
	}
}

// KeywordResponse 关键词 -> 预设回复
type KeywordResponse struct {
	Keyword string `json:"keyword" yaml:"keyword"`
	Reply   string `json:"reply" yaml:"reply"`
}

// QuickReply 快捷回复短语及其固定回复
type QuickReply struct {
	Phrase string `json:"phrase" yaml:"phrase"`
	Reply  string `json:"reply" yaml:"reply"`
}
