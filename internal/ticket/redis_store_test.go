package ticket

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRedis 内存实现的 redisCommander
type fakeRedis struct {
	mu       sync.Mutex
	kv       map[string]string
	lists    map[string][]string
	ttls     map[string]time.Duration
	trims    []int64 // 每次 LTrim 的 stop
	failExec error   // 非空时事务整体失败，不写入任何数据
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		kv:    map[string]string{},
		lists: map[string][]string{},
		ttls:  map[string]time.Duration{},
	}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	cmd := redis.NewStringCmd(ctx)
	v, ok := f.kv[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (f *fakeRedis) LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.lists[key]
	n := int64(len(list))
	if stop < 0 || stop >= n {
		stop = n - 1
	}
	cmd := redis.NewStringSliceCmd(ctx)
	if start > stop {
		cmd.SetVal([]string{})
		return cmd
	}
	cmd.SetVal(append([]string(nil), list[start:stop+1]...))
	return cmd
}

// TxPipelined 收集管道中的命令，成功时一次性应用
func (f *fakeRedis) TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error) {
	pipe := &fakePipe{}
	if err := fn(pipe); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failExec != nil {
		for _, c := range pipe.cmds {
			c.SetErr(f.failExec)
		}
		return pipe.cmds, f.failExec
	}
	for _, op := range pipe.ops {
		op(f)
	}
	return pipe.cmds, nil
}

// fakePipe 只实现 RedisStore 用到的命令，其余方法未实现
type fakePipe struct {
	redis.Pipeliner
	ops  []func(f *fakeRedis)
	cmds []redis.Cmder
}

func (p *fakePipe) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	p.cmds = append(p.cmds, cmd)
	p.ops = append(p.ops, func(f *fakeRedis) {
		switch v := value.(type) {
		case []byte:
			f.kv[key] = string(v)
		case string:
			f.kv[key] = v
		}
		f.ttls[key] = expiration
		cmd.SetVal("OK")
	})
	return cmd
}

func (p *fakePipe) LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	p.cmds = append(p.cmds, cmd)
	p.ops = append(p.ops, func(f *fakeRedis) {
		for _, v := range values {
			f.lists[key] = append([]string{v.(string)}, f.lists[key]...)
		}
		cmd.SetVal(int64(len(f.lists[key])))
	})
	return cmd
}

func (p *fakePipe) LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	p.cmds = append(p.cmds, cmd)
	p.ops = append(p.ops, func(f *fakeRedis) {
		f.trims = append(f.trims, stop)
		list := f.lists[key]
		if stop >= 0 && stop+1 < int64(len(list)) {
			f.lists[key] = list[start : stop+1]
		}
		cmd.SetVal("OK")
	})
	return cmd
}

func TestRedisStore_SubmitAndGet(t *testing.T) {
	fake := newFakeRedis()
	store := NewRedisStore(fake, 24*time.Hour, zap.NewNop())
	ctx := context.Background()

	receipt, err := store.Submit(ctx, validForm().Normalize())
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.Reference)
	assert.Equal(t, 24*time.Hour, fake.ttls["ticket:"+receipt.Reference])

	record, err := store.Get(ctx, receipt.Reference)
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", record.Name)
	assert.Equal(t, "high", record.Priority)

	_, err = store.Get(ctx, "TKT-MISSING")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestRedisStore_ListNewestFirst(t *testing.T) {
	fake := newFakeRedis()
	store := NewRedisStore(fake, 0, zap.NewNop())
	ctx := context.Background()

	var refs []string
	for _, subject := range []string{"first", "second", "third"} {
		f := validForm()
		f.Subject = subject
		r, err := store.Submit(ctx, f)
		require.NoError(t, err)
		refs = append(refs, r.Reference)
	}
	// 过期的工单编号应被跳过
	delete(fake.kv, "ticket:"+refs[1])

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "third", all[0].Subject)
	assert.Equal(t, "first", all[1].Subject)

	latest, err := store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, refs[2], latest[0].Reference)
}

func TestRedisStore_SubmitError(t *testing.T) {
	fake := newFakeRedis()
	fake.failExec = errors.New("connection refused")
	store := NewRedisStore(fake, 0, zap.NewNop())

	_, err := store.Submit(context.Background(), validForm())
	assert.ErrorContains(t, err, "connection refused")

	// 事务失败时既不留下工单也不留下编号
	assert.Empty(t, fake.kv)
	assert.Empty(t, fake.lists[ticketListKey])
}

func TestRedisStore_TrimsTicketList(t *testing.T) {
	fake := newFakeRedis()
	store := NewRedisStore(fake, 0, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := store.Submit(context.Background(), validForm())
		require.NoError(t, err)
	}
	assert.Equal(t, []int64{maxListed - 1, maxListed - 1, maxListed - 1}, fake.trims)
	assert.Len(t, fake.lists[ticketListKey], 3)
}
