package service

import (
	"errors"
	"fmt"
)

var (
	// ErrCourseNotFound indicates the course id does not resolve.
	ErrCourseNotFound = errors.New("course not found")
	// ErrNoActiveCourse indicates the admin session has not selected a course yet.
	ErrNoActiveCourse = errors.New("no active course selected")
	// ErrStudentNotFound indicates the student does not exist in the active course.
	ErrStudentNotFound = errors.New("student not found")
	// ErrDuplicateStudent indicates the national id is already registered.
	ErrDuplicateStudent = errors.New("a student with this national id already exists")
	// ErrInvalidCredentials is returned for any failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken indicates an account with the username exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidScore indicates the grade score does not fit decimal(4,2).
	ErrInvalidScore = errors.New("invalid score")
	// ErrInvalidSchedule indicates the scheduled date could not be parsed.
	ErrInvalidSchedule = errors.New("invalid scheduled date")
	// ErrFileRequired indicates the upload form carried no file.
	ErrFileRequired = errors.New("file is required")
	// ErrUploadTooLarge indicates the payload exceeded the configured limit.
	ErrUploadTooLarge = errors.New("file exceeds maximum allowed size")
)

// FieldError reports a user-correctable problem with a single form field.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldError(field, message string, err error) error {
	return &FieldError{Field: field, Message: message, Err: err}
}
