package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-task-management/internal/task"
	repo "voice-task-management/internal/task/repository"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name    string
		input   task.CreateInput
		wantErr error
		check   func(t *testing.T, out task.CreateOutput)
	}{
		{
			name:  "defaults applied",
			input: task.CreateInput{Title: "  Call John  "},
			check: func(t *testing.T, out task.CreateOutput) {
				assert.Equal(t, "Call John", out.Task.Title)
				assert.Equal(t, "Low", out.Task.Priority)
				assert.Equal(t, "To Do", out.Task.Status)
				assert.Nil(t, out.Task.DueDate)
			},
		},
		{
			name:  "case-insensitive labels and due date",
			input: task.CreateInput{Title: "Pay rent", Priority: "urgent", Status: "in progress", DueDate: "2023-11-01"},
			check: func(t *testing.T, out task.CreateOutput) {
				assert.Equal(t, "Urgent", out.Task.Priority)
				assert.Equal(t, "In Progress", out.Task.Status)
				require.NotNil(t, out.Task.DueDate)
				assert.True(t, out.Task.DueDate.Equal(time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)))
			},
		},
		{name: "empty title", input: task.CreateInput{Title: "   "}, wantErr: task.ErrEmptyTitle},
		{name: "unknown priority", input: task.CreateInput{Title: "x", Priority: "Medium"}, wantErr: task.ErrInvalidPriority},
		{name: "unknown status", input: task.CreateInput{Title: "x", Status: "Blocked"}, wantErr: task.ErrInvalidStatus},
		{name: "impossible date", input: task.CreateInput{Title: "x", DueDate: "2023-02-30"}, wantErr: task.ErrInvalidDueDate},
		{name: "relative date rejected", input: task.CreateInput{Title: "x", DueDate: "tomorrow"}, wantErr: task.ErrInvalidDueDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestUseCase(t, nil, nil)
			out, err := uc.Create(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, out)
		})
	}
}

func TestCreate_StoreError(t *testing.T) {
	uc, r := newTestUseCase(t, nil, nil)
	r.err = errStore

	_, err := uc.Create(context.Background(), task.CreateInput{Title: "x"})
	assert.ErrorIs(t, err, errStore)
}

func TestList(t *testing.T) {
	uc, r := newTestUseCase(t, nil, nil)
	ctx := context.Background()
	_, _ = r.CreateTask(ctx, repo.CreateTaskOptions{Title: "a", Priority: "High", Status: "To Do"})
	_, _ = r.CreateTask(ctx, repo.CreateTaskOptions{Title: "b", Priority: "Low", Status: "Done"})

	out, err := uc.List(ctx, task.ListInput{Status: "done"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
	assert.Equal(t, "b", out.Tasks[0].Title)
	assert.Equal(t, "Done", r.listOpt.Status)
	assert.Equal(t, defaultLimit, out.Limit)

	_, err = uc.List(ctx, task.ListInput{Limit: 1000, DueDate: "2023-10-28"})
	require.NoError(t, err)
	assert.Equal(t, maxLimit, r.listOpt.Limit)
	require.NotNil(t, r.listOpt.DueOn)

	_, err = uc.List(ctx, task.ListInput{Priority: "Medium"})
	assert.ErrorIs(t, err, task.ErrInvalidPriority)
	_, err = uc.List(ctx, task.ListInput{Status: "Blocked"})
	assert.ErrorIs(t, err, task.ErrInvalidStatus)
	_, err = uc.List(ctx, task.ListInput{DueDate: "28/10/2023"})
	assert.ErrorIs(t, err, task.ErrInvalidDueDate)
}

func TestDetail(t *testing.T) {
	uc, _ := newTestUseCase(t, nil, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, task.CreateInput{Title: "Call John"})
	require.NoError(t, err)

	out, err := uc.Detail(ctx, created.Task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Call John", out.Task.Title)

	_, err = uc.Detail(ctx, "missing")
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps other fields", func(t *testing.T) {
		uc, _ := newTestUseCase(t, nil, nil)
		created, err := uc.Create(ctx, task.CreateInput{Title: "Call John", Description: "about Q3", DueDate: "2023-10-28"})
		require.NoError(t, err)

		out, err := uc.Update(ctx, task.UpdateInput{ID: created.Task.ID, Status: strPtr("done")})
		require.NoError(t, err)
		assert.Equal(t, "Done", out.Task.Status)
		assert.Equal(t, "Call John", out.Task.Title)
		assert.Equal(t, "about Q3", out.Task.Description)
		assert.NotNil(t, out.Task.DueDate)
	})

	t.Run("empty due date clears it", func(t *testing.T) {
		uc, _ := newTestUseCase(t, nil, nil)
		created, err := uc.Create(ctx, task.CreateInput{Title: "Call John", DueDate: "2023-10-28"})
		require.NoError(t, err)

		out, err := uc.Update(ctx, task.UpdateInput{ID: created.Task.ID, DueDate: strPtr("")})
		require.NoError(t, err)
		assert.Nil(t, out.Task.DueDate)
	})

	t.Run("validation", func(t *testing.T) {
		uc, _ := newTestUseCase(t, nil, nil)
		created, err := uc.Create(ctx, task.CreateInput{Title: "Call John"})
		require.NoError(t, err)
		id := created.Task.ID

		_, err = uc.Update(ctx, task.UpdateInput{ID: id, Title: strPtr(" ")})
		assert.ErrorIs(t, err, task.ErrEmptyTitle)
		_, err = uc.Update(ctx, task.UpdateInput{ID: id, Priority: strPtr("Medium")})
		assert.ErrorIs(t, err, task.ErrInvalidPriority)
		_, err = uc.Update(ctx, task.UpdateInput{ID: id, Status: strPtr("Blocked")})
		assert.ErrorIs(t, err, task.ErrInvalidStatus)
		_, err = uc.Update(ctx, task.UpdateInput{ID: id, DueDate: strPtr("next week")})
		assert.ErrorIs(t, err, task.ErrInvalidDueDate)
		_, err = uc.Update(ctx, task.UpdateInput{ID: "missing", Title: strPtr("x")})
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})
}

func TestDelete(t *testing.T) {
	uc, r := newTestUseCase(t, nil, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, task.CreateInput{Title: "Call John"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.Task.ID))
	assert.Empty(t, r.tasks)
	assert.ErrorIs(t, uc.Delete(ctx, created.Task.ID), task.ErrTaskNotFound)
}
