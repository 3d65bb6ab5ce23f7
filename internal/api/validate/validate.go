// Package validate holds request-level validation shared by handlers.
// Domain rules that need store state (referential checks, time windows)
// live in the services layer instead.
package validate

import (
	"fmt"
	"regexp"
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// usernameRx: lowercase letters, digits, underscore, 3-20 chars.
var usernameRx = regexp.MustCompile(`^[a-z0-9_]{3,20}$`)

func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func MaxLen(field string, v *string, limit int) error {
	if v == nil {
		return nil
	}
	if len(*v) > limit {
		return fmt.Errorf("%s exceeds %d characters", field, limit)
	}
	return nil
}

func Email(v string) error {
	if v == "" {
		return fmt.Errorf("email is required")
	}
	if len(v) > 320 || !emailRx.MatchString(v) {
		return fmt.Errorf("invalid email")
	}
	return nil
}

func Username(v string) error {
	if v == "" {
		return fmt.Errorf("username is required")
	}
	if !usernameRx.MatchString(v) {
		return fmt.Errorf("username must match %s", usernameRx.String())
	}
	return nil
}

func Password(v string) error {
	if len(v) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}

// Progress validates a study-material progress percentage.
func Progress(v int) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("progress must be between 0 and 100")
	}
	return nil
}

// PositiveID validates a path or body id.
func PositiveID(field string, v int64) error {
	if v <= 0 {
		return fmt.Errorf("%s must be a positive integer", field)
	}
	return nil
}

// -------- Request specific helpers ----------

func RegisterUser(username, password, email string, name *string) error {
	if err := Username(username); err != nil {
		return err
	}
	if err := Password(password); err != nil {
		return err
	}
	if err := Email(email); err != nil {
		return err
	}
	return MaxLen("name", name, 100)
}

func CreateMaterial(title string, description *string, progress int) error {
	if err := NonEmpty("title", title); err != nil {
		return err
	}
	if len(title) > 200 {
		return fmt.Errorf("title exceeds 200 characters")
	}
	if err := MaxLen("description", description, 2000); err != nil {
		return err
	}
	return Progress(progress)
}

func CreateSession(title, subject string) error {
	if err := NonEmpty("title", title); err != nil {
		return err
	}
	return NonEmpty("subject", subject)
}

func CreateFlashcard(question, answer string) error {
	if err := NonEmpty("question", question); err != nil {
		return err
	}
	return NonEmpty("answer", answer)
}
