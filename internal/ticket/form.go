package ticket

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Priority 工单优先级
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Form 工单表单
type Form struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,loose_email"`
	Subject  string   `json:"subject" validate:"required"`
	Message  string   `json:"message" validate:"required"`
	Priority Priority `json:"priority" validate:"oneof=low medium high urgent"`
	Category string   `json:"category"`
}

// Normalize 去除首尾空白并补全默认优先级
func (f Form) Normalize() Form {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Subject = strings.TrimSpace(f.Subject)
	f.Message = strings.TrimSpace(f.Message)
	f.Category = strings.TrimSpace(f.Category)
	f.Priority = Priority(strings.ToLower(strings.TrimSpace(string(f.Priority))))
	if f.Priority == "" {
		f.Priority = PriorityMedium
	}
	return f
}

// FieldErrors 字段 -> 错误提示
type FieldErrors map[string]string

// ValidationError 表单校验失败
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("表单校验失败: %s", strings.Join(keys, ", "))
}

var (
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	validate     = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

var fieldNames = map[string]string{
	"Name":     "name",
	"Email":    "email",
	"Subject":  "subject",
	"Message":  "message",
	"Priority": "priority",
}

var requiredMessages = map[string]string{
	"name":    "Name is required",
	"email":   "Email is required",
	"subject": "Subject is required",
	"message": "Message is required",
}

// Validate 校验表单，返回空 map 表示通过。调用前无需 Normalize。
func Validate(f Form) FieldErrors {
	f = f.Normalize()
	errs := FieldErrors{}

	err := validate.Struct(f)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["form"] = err.Error()
		return errs
	}

	for _, fe := range verrs {
		field := fieldNames[fe.StructField()]
		switch fe.Tag() {
		case "required":
			errs[field] = requiredMessages[field]
		case "loose_email":
			errs[field] = "Please enter a valid email address"
		case "oneof":
			errs[field] = "Priority must be one of low, medium, high, urgent"
		default:
			errs[field] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return errs
}
