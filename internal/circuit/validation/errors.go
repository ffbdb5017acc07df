package validation

import (
	"strconv"
	"strings"
)

// ============================================================
// Validation errors
// ============================================================

// Issue — одно нарушение: путь до поля и причина.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return i.Path + ": " + i.Message
}

// Error возвращается Validate, если кандидат не прошел проверку.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return strings.Join(parts, ", ")
}

// HasPath сообщает, есть ли нарушение с указанным путем или вложенным в него.
func (e *Error) HasPath(path string) bool {
	for _, issue := range e.Issues {
		if issue.Path == path || strings.HasPrefix(issue.Path, path+".") {
			return true
		}
	}
	return false
}

type collector struct {
	issues []Issue
}

func (c *collector) add(path, message string) {
	c.issues = append(c.issues, Issue{Path: path, Message: message})
}

func (c *collector) err() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &Error{Issues: c.issues}
}

const rootPath = "(root)"

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func index(path string, i int) string {
	return path + "." + strconv.Itoa(i)
}
