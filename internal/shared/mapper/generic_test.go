package mapper

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSlice(t *testing.T) {
	t.Run("maps all elements", func(t *testing.T) {
		got := MapSlice([]int{1, 2, 3}, strconv.Itoa)
		assert.Equal(t, []string{"1", "2", "3"}, got)
	})

	t.Run("nil input returns nil", func(t *testing.T) {
		got := MapSlice(nil, strconv.Itoa)
		assert.Nil(t, got)
	})

	t.Run("empty input returns empty slice", func(t *testing.T) {
		got := MapSlice([]int{}, strconv.Itoa)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestMapSliceWithError(t *testing.T) {
	t.Run("maps all elements", func(t *testing.T) {
		got, err := MapSliceWithError([]string{"1", "2"}, strconv.Atoi)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, got)
	})

	t.Run("stops at first error", func(t *testing.T) {
		calls := 0
		_, err := MapSliceWithError([]int{1, 2, 3}, func(i int) (int, error) {
			calls++
			if i == 2 {
				return 0, errors.New("boom")
			}
			return i, nil
		})
		require.Error(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("nil input returns nil", func(t *testing.T) {
		got, err := MapSliceWithError(nil, strconv.Atoi)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestMapSliceWithID(t *testing.T) {
	type row struct {
		ID   uint
		Name string
	}

	t.Run("wraps errors with item ID", func(t *testing.T) {
		rows := []row{{ID: 1, Name: "ok"}, {ID: 42, Name: ""}}
		_, err := MapSliceWithID(rows,
			func(r row) (string, error) {
				if r.Name == "" {
					return "", errors.New("empty name")
				}
				return r.Name, nil
			},
			func(r row) uint { return r.ID },
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "42")
	})
}
