package model

// 服务端推送帧类型
const (
	FrameSession   = "SESSION"
	FrameMessage   = "MESSAGE"
	FrameFAQResult = "FAQ_RESULT"
	FrameToast     = "TOAST"
	FrameError     = "ERROR"
)

// 客户端上行帧类型
const (
	FrameChat        = "CHAT"
	FrameQuickReply  = "QUICK_REPLY"
	FrameFAQSearch   = "FAQ_SEARCH"
	FrameFAQCategory = "FAQ_CATEGORY"
	FrameHeartbeat   = "HEARTBEAT"
)

// ServerFrame 服务端推送
type ServerFrame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ClientFrame 客户端上行
type ClientFrame struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Query    string `json:"query,omitempty"`
	Category string `json:"category,omitempty"`
}

// SessionInfo SESSION 帧内容，连接建立后首先推送
type SessionInfo struct {
	SessionID string `json:"sessionId"`
}
