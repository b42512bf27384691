package database

import (
	"errors"
	"sync"
	"testing"

	"github.com/adamanr/workflow_portal/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextID(t *testing.T) {
	tests := []struct {
		name  string
		tasks []entity.Task
		want  uint64
	}{
		{name: "empty", tasks: nil, want: 1},
		{name: "sequential", tasks: []entity.Task{{ID: 1}, {ID: 2}, {ID: 3}}, want: 4},
		{name: "gaps", tasks: []entity.Task{{ID: 7}, {ID: 2}}, want: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextID(tt.tasks))
		})
	}
}

func TestCollection_Insert(t *testing.T) {
	c := NewCollection(entity.Task{ID: 1}, entity.Task{ID: 2}, entity.Task{ID: 3})

	task := c.Insert(func(id uint64) entity.Task {
		return entity.Task{ID: id, Title: "Write tests"}
	})

	assert.Equal(t, uint64(4), task.ID)
	assert.Equal(t, 4, c.Count(nil))

	empty := NewCollection[entity.Task]()
	first := empty.Insert(func(id uint64) entity.Task { return entity.Task{ID: id} })
	assert.Equal(t, uint64(1), first.ID)
}

func TestCollection_InsertBatch(t *testing.T) {
	c := NewCollection(entity.Payslip{ID: 3})

	added := c.InsertBatch(3, func(i int, id uint64) entity.Payslip {
		return entity.Payslip{ID: id, EmployeeID: string(rune('A' + i))}
	})

	require.Len(t, added, 3)
	assert.Equal(t, []uint64{4, 5, 6}, []uint64{added[0].ID, added[1].ID, added[2].ID})
	assert.Equal(t, "C", added[2].EmployeeID)
}

func TestCollection_ListKeepsInsertionOrder(t *testing.T) {
	c := NewCollection(entity.Holiday{ID: 2, Name: "b"}, entity.Holiday{ID: 1, Name: "a"})
	c.Insert(func(id uint64) entity.Holiday { return entity.Holiday{ID: id, Name: "c"} })

	names := []string{}
	for _, h := range c.List(nil) {
		names = append(names, h.Name)
	}

	assert.Equal(t, []string{"b", "a", "c"}, names)
}

func TestCollection_ListReturnsCopy(t *testing.T) {
	c := NewCollection(entity.Task{ID: 1, Title: "original"})

	list := c.List(nil)
	list[0].Title = "changed"

	got, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "original", got.Title)
}

func TestCollection_Update(t *testing.T) {
	c := NewCollection(entity.Task{ID: 1, Status: entity.TaskPending})

	updated, err := c.Update(1, func(t entity.Task) (entity.Task, error) {
		t.Status = entity.TaskCompleted
		return t, nil
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskCompleted, updated.Status)

	_, err = c.Update(99, func(t entity.Task) (entity.Task, error) { return t, nil })
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestCollection_UpdateFailureLeavesStateUntouched(t *testing.T) {
	c := NewCollection(entity.Task{ID: 1, Title: "keep"})
	boom := errors.New("boom")

	_, err := c.Update(1, func(t entity.Task) (entity.Task, error) {
		t.Title = "lost"
		return t, boom
	})

	assert.ErrorIs(t, err, boom)
	got, _ := c.Get(1)
	assert.Equal(t, "keep", got.Title)
}

func TestCollection_ConcurrentInsertsKeepIDsUnique(t *testing.T) {
	c := NewCollection[entity.Task]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Insert(func(id uint64) entity.Task { return entity.Task{ID: id} })
		}()
	}
	wg.Wait()

	seen := map[uint64]bool{}
	for _, task := range c.List(nil) {
		assert.False(t, seen[task.ID], "duplicate id %d", task.ID)
		seen[task.ID] = true
	}
	assert.Len(t, seen, 50)
}
