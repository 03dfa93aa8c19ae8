package models

import (
	"strings"
	"unicode/utf8"

	"task-service.com/task-service/internal/constants"
)

// ResolveResult decides the outcome of a task from its title: an even
// number of characters succeeds, an odd number fails.
func ResolveResult(title string) (constants.TaskStatus, string) {
	if utf8.RuneCountInString(strings.TrimSpace(title))%2 == 0 {
		return constants.StatusDone, constants.ResultSuccess
	}
	return constants.StatusFailed, constants.ResultError
}
