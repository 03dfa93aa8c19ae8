package constants

import "fmt"

type TaskStatus string

const (
	StatusNew        TaskStatus = "new"
	StatusProcessing TaskStatus = "processing"
	StatusDone       TaskStatus = "done"
	StatusFailed     TaskStatus = "failed"
)

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var transitions = map[TaskStatus][]TaskStatus{
	StatusNew:        {StatusProcessing},
	StatusProcessing: {StatusDone, StatusFailed},
}

func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown task status %q", s)
	}
	return status, nil
}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusNew, StatusProcessing, StatusDone, StatusFailed:
		return true
	}
	return false
}

func (s TaskStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusFailed
}

// CanTransitionTo reports whether next is a legal successor of s.
// Statuses never revert: new -> processing -> {done, failed}.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s TaskStatus) String() string {
	return string(s)
}
