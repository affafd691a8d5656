package ticket

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State 工单提交流程状态
type State string

const (
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
)

var ErrInvalidState = errors.New("当前状态不允许该操作")

// Receipt 提交回执
type Receipt struct {
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"createdAt"`
}

// Submitter 工单提交后端
type Submitter interface {
	Submit(ctx context.Context, form Form) (Receipt, error)
}

// Notifier 提交过程通知（toast）
type Notifier interface {
	Info(ctx context.Context, message string)
	Success(ctx context.Context, message string)
	Failure(ctx context.Context, message string)
}

// Flow 工单提交状态机：
// editing -> validating -> (editing 带字段错误 | submitting -> submitted)
// submitted 为终态，Reset 后重新进入 editing。
type Flow struct {
	mu        sync.Mutex
	state     State
	form      Form
	errors    FieldErrors
	receipt   Receipt
	submitter Submitter
	notifier  Notifier
	logger    *zap.Logger
}

// NewFlow 创建状态机，notifier 可为 nil
func NewFlow(submitter Submitter, notifier Notifier, logger *zap.Logger) *Flow {
	return &Flow{
		state:     StateEditing,
		errors:    FieldErrors{},
		submitter: submitter,
		notifier:  notifier,
		logger:    logger,
	}
}

// Edit 更新表单内容，同时清除先前的字段错误
func (f *Flow) Edit(form Form) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateEditing {
		return ErrInvalidState
	}
	f.form = form
	f.errors = FieldErrors{}
	return nil
}

// Submit 校验并提交。校验失败返回 *ValidationError，提交失败返回后端错误，
// 两种情况都回到 editing 并保留表单，可修改后重试。
func (f *Flow) Submit(ctx context.Context) (Receipt, error) {
	f.mu.Lock()
	if f.state != StateEditing {
		f.mu.Unlock()
		return Receipt{}, ErrInvalidState
	}

	f.state = StateValidating
	form := f.form.Normalize()
	if errs := Validate(form); len(errs) > 0 {
		f.errors = errs
		f.state = StateEditing
		f.mu.Unlock()
		f.logger.Debug("工单校验失败", zap.Int("fields", len(errs)))
		return Receipt{}, &ValidationError{Fields: errs}
	}

	f.errors = FieldErrors{}
	f.state = StateSubmitting
	f.mu.Unlock()

	if f.notifier != nil {
		f.notifier.Info(ctx, "Submitting your ticket...")
	}

	receipt, err := f.submitter.Submit(ctx, form)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = StateEditing
		f.logger.Error("工单提交失败", zap.String("subject", form.Subject), zap.Error(err))
		if f.notifier != nil {
			f.notifier.Failure(ctx, "We couldn't submit your ticket. Please try again.")
		}
		return Receipt{}, fmt.Errorf("提交工单失败: %w", err)
	}

	f.state = StateSubmitted
	f.receipt = receipt
	f.logger.Info("工单提交成功",
		zap.String("reference", receipt.Reference),
		zap.String("priority", string(form.Priority)),
		zap.String("category", form.Category))
	if f.notifier != nil {
		f.notifier.Success(ctx, fmt.Sprintf("Ticket %s submitted. We'll be in touch soon.", receipt.Reference))
	}
	return receipt, nil
}

// Reset 对应“再提交一个”，只能从 submitted 触发，清空表单
func (f *Flow) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateSubmitted {
		return ErrInvalidState
	}
	f.state = StateEditing
	f.form = Form{}
	f.errors = FieldErrors{}
	f.receipt = Receipt{}
	return nil
}

// State 当前状态
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Errors 最近一次校验的字段错误
func (f *Flow) Errors() FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(FieldErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Form 当前表单
func (f *Flow) Form() Form {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form
}

// Reference 提交成功后的工单编号
func (f *Flow) Reference() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.receipt.Reference
}
