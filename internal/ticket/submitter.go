package ticket

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewReference 生成工单编号，形如 TKT-1A2B3C4D
func NewReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TKT-" + strings.ToUpper(id[:8])
}

// MockSubmitter 本地模拟提交，固定延迟后总是成功
type MockSubmitter struct {
	delay  time.Duration
	logger *zap.Logger
}

// NewMockSubmitter 创建模拟提交器
func NewMockSubmitter(delay time.Duration, logger *zap.Logger) *MockSubmitter {
	return &MockSubmitter{delay: delay, logger: logger}
}

// Submit 模拟网络延迟，ctx 取消时提前返回
func (s *MockSubmitter) Submit(ctx context.Context, form Form) (Receipt, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Receipt{}, ctx.Err()
		case <-timer.C:
		}
	}

	receipt := Receipt{Reference: NewReference(), CreatedAt: time.Now()}
	s.logger.Debug("模拟工单已生成", zap.String("reference", receipt.Reference))
	return receipt, nil
}
