// internal/escalation/validation.go
package escalation

import (
	"fmt"
	"strings"

	"support-chat-backend/internal/common/errors"
	"support-chat-backend/internal/common/validation"
)

// validate checks the contact fields. Failures surface inline in the
// submission form, so messages name the offending field.
func validate(req *Request) error {
	var problems []string

	if strings.TrimSpace(req.FirstName) == "" {
		problems = append(problems, "firstName is required")
	}
	if strings.TrimSpace(req.LastName) == "" {
		problems = append(problems, "lastName is required")
	}
	if strings.TrimSpace(req.Question) == "" {
		problems = append(problems, "question is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		problems = append(problems, "email is required")
	} else if !validation.ValidateEmail(req.Email) {
		problems = append(problems, fmt.Sprintf("email %q is malformed", req.Email))
	}
	if req.Phone != "" && !validation.ValidatePhone(req.Phone) {
		problems = append(problems, fmt.Sprintf("phone %q is malformed", req.Phone))
	}
	if req.CCEmail != "" && !validation.ValidateEmail(req.CCEmail) {
		problems = append(problems, fmt.Sprintf("ccEmail %q is malformed", req.CCEmail))
	}

	if len(problems) > 0 {
		return errors.NewValidationError(strings.Join(problems, "; "))
	}
	return nil
}
