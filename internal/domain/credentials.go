package domain

import "errors"

// Credentials is the stored portal login. The password is kept in plain
// text on disk; the store documents this as a known weakness.
type Credentials struct {
	Enrollment string
	Password   string
	Institute  Institute
}

// Validate checks that the credentials are usable for a login attempt.
func (c *Credentials) Validate() error {
	if c == nil {
		return errors.New("credentials are nil")
	}
	if c.Enrollment == "" {
		return errors.New("enrollment number is required")
	}
	if c.Password == "" {
		return errors.New("password is required")
	}
	if !ValidInstitutes[string(c.Institute)] {
		return errors.New("unknown institute: " + string(c.Institute))
	}
	return nil
}
