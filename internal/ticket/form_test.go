package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validForm() Form {
	return Form{
		Name:     "Asha Verma",
		Email:    "asha@example.com",
		Subject:  "Cannot access course",
		Message:  "The video player shows a black screen.",
		Priority: PriorityHigh,
		Category: "technical",
	}
}

func TestValidate_ValidForm(t *testing.T) {
	assert.Empty(t, Validate(validForm()))
}

func TestValidate_RequiredFields(t *testing.T) {
	errs := Validate(Form{Name: "  ", Email: "", Subject: "", Message: "\n"})
	assert.Equal(t, FieldErrors{
		"name":    "Name is required",
		"email":   "Email is required",
		"subject": "Subject is required",
		"message": "Message is required",
	}, errs)
}

func TestValidate_EmptyMessage(t *testing.T) {
	f := validForm()
	f.Message = ""
	assert.Equal(t, FieldErrors{"message": "Message is required"}, Validate(f))
}

func TestValidate_Email(t *testing.T) {
	for _, tc := range []struct {
		email string
		ok    bool
	}{
		{"not-an-email", false},
		{"user@domain", false},
		{"@.", false},
		{"a@b.c", true},
		{"first.last+tag@sub.example.org", true},
	} {
		f := validForm()
		f.Email = tc.email
		errs := Validate(f)
		if tc.ok {
			assert.Empty(t, errs, tc.email)
		} else {
			assert.Equal(t, "Please enter a valid email address", errs["email"], tc.email)
		}
	}
}

func TestValidate_Priority(t *testing.T) {
	f := validForm()
	f.Priority = "critical"
	assert.Contains(t, Validate(f), "priority")

	f.Priority = "URGENT"
	assert.Empty(t, Validate(f))

	f.Priority = ""
	assert.Empty(t, Validate(f))
}

func TestNormalize_DefaultsPriority(t *testing.T) {
	f := Form{Name: " Asha ", Priority: ""}.Normalize()
	assert.Equal(t, "Asha", f.Name)
	assert.Equal(t, PriorityMedium, f.Priority)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: FieldErrors{"message": "x", "email": "y"}}
	assert.Contains(t, err.Error(), "email, message")
}
