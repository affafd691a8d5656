package ticket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/supportbot/support-center/internal/model"
	"go.uber.org/zap"
)

const (
	ticketKeyPrefix = "ticket:"
	ticketListKey   = "tickets"
	maxListed       = 1000 // tickets 列表保留的编号数
)

var ErrTicketNotFound = errors.New("工单不存在")

// redisCommander RedisStore 使用的 redis 命令子集，*redis.Client 满足该接口
type redisCommander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error)
}

var _ redisCommander = (*redis.Client)(nil)

// RedisStore 将工单写入 Redis：ticket:<ref> 存 JSON，tickets 列表按提交时间倒序保存编号
type RedisStore struct {
	client redisCommander
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore 创建 Redis 工单存储，ttl 为 0 表示不过期
func NewRedisStore(client redisCommander, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

// Submit 保存工单并返回编号
func (s *RedisStore) Submit(ctx context.Context, form Form) (Receipt, error) {
	record := model.TicketRecord{
		Reference: NewReference(),
		Name:      form.Name,
		Email:     form.Email,
		Subject:   form.Subject,
		Message:   form.Message,
		Priority:  string(form.Priority),
		Category:  form.Category,
		CreatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return Receipt{}, fmt.Errorf("序列化工单失败: %w", err)
	}

	// 工单与列表在同一个 MULTI 中写入，列表截断到 maxListed
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, ticketKeyPrefix+record.Reference, data, s.ttl)
		pipe.LPush(ctx, ticketListKey, record.Reference)
		pipe.LTrim(ctx, ticketListKey, 0, maxListed-1)
		return nil
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("写入工单失败: %w", err)
	}

	s.logger.Info("工单已写入 Redis", zap.String("reference", record.Reference))
	return Receipt{Reference: record.Reference, CreatedAt: record.CreatedAt}, nil
}

// Get 按编号读取工单
func (s *RedisStore) Get(ctx context.Context, reference string) (*model.TicketRecord, error) {
	data, err := s.client.Get(ctx, ticketKeyPrefix+reference).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("读取工单失败: %w", err)
	}

	var record model.TicketRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("解析工单失败: %w", err)
	}
	return &record, nil
}

// List 列出最近的 limit 个工单，已过期的编号被跳过
func (s *RedisStore) List(ctx context.Context, limit int) ([]model.TicketRecord, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	refs, err := s.client.LRange(ctx, ticketListKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("读取工单列表失败: %w", err)
	}

	out := make([]model.TicketRecord, 0, len(refs))
	for _, ref := range refs {
		record, err := s.Get(ctx, ref)
		if errors.Is(err, ErrTicketNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *record)
	}
	return out, nil
}
