package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dto "task-service.com/task-service/internal/data_models"
)

func TestValidate_CreateTaskRequest(t *testing.T) {
	v := New()

	assert.EqualError(t, v.Validate(&dto.CreateTaskRequest{}), "title is required")

	blank := "  "
	assert.NoError(t, v.Validate(&dto.CreateTaskRequest{Title: &blank}), "blank titles are rejected by the domain, not here")
}

func TestValidate_ListTasksQuery(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&dto.ListTasksQuery{Page: 1, Size: 10}))
	assert.NoError(t, v.Validate(&dto.ListTasksQuery{Status: "done", Page: 3, Size: 100}))

	assert.EqualError(t, v.Validate(&dto.ListTasksQuery{Page: 0, Size: 10}), "page must be at least 1")
	assert.EqualError(t, v.Validate(&dto.ListTasksQuery{Page: 1, Size: 101}), "size must be at most 100")
	assert.EqualError(t, v.Validate(&dto.ListTasksQuery{Status: "pending", Page: 1, Size: 10}),
		"status must be one of [new processing done failed]")
}
