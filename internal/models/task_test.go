package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-service.com/task-service/internal/constants"
	apperrors "task-service.com/task-service/internal/errors"
)

func TestNewTask(t *testing.T) {
	task, err := NewTask("  Process report \n")
	require.NoError(t, err)

	assert.Equal(t, "Process report", task.Title)
	assert.Equal(t, constants.StatusNew, task.Status)
	assert.Zero(t, task.ID)
	assert.False(t, task.IsPersisted())
	assert.Nil(t, task.Result)
	assert.False(t, task.CreatedAt.IsZero())
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	assert.Equal(t, "UTC", task.CreatedAt.Location().String())
}

func TestNewTask_InvalidTitle(t *testing.T) {
	for _, title := range []string{"", " ", "\t\n  ", strings.Repeat("x", MaxTitleLength+1)} {
		task, err := NewTask(title)
		assert.Nil(t, task)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTitle, "title %q", title)
	}
}

func TestNewTask_MaxLengthCountsCharacters(t *testing.T) {
	task, err := NewTask(strings.Repeat("é", MaxTitleLength))
	require.NoError(t, err)
	assert.Equal(t, MaxTitleLength, len([]rune(task.Title)))
}

func TestResolveResult(t *testing.T) {
	cases := []struct {
		title  string
		status constants.TaskStatus
		result string
	}{
		{"abcd", constants.StatusDone, constants.ResultSuccess},
		{"abc", constants.StatusFailed, constants.ResultError},
		{"Process report", constants.StatusDone, constants.ResultSuccess},
		{"héllo", constants.StatusFailed, constants.ResultError},
		{" ab ", constants.StatusDone, constants.ResultSuccess},
	}

	for _, tc := range cases {
		status, result := ResolveResult(tc.title)
		assert.Equal(t, tc.status, status, tc.title)
		assert.Equal(t, tc.result, result, tc.title)

		again, _ := ResolveResult(tc.title)
		assert.Equal(t, status, again)
	}
}

func TestTask_Clone(t *testing.T) {
	result := "success"
	task := &Task{ID: 1, Title: "abcd", Status: constants.StatusDone, Result: &result}

	c := task.Clone()
	*c.Result = "changed"

	assert.Equal(t, "success", *task.Result)
}
