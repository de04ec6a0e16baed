package pulse

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignal(t *testing.T) {
	t.Run("read and write", func(t *testing.T) {
		count := NewSignal(0)
		assert.Equal(t, 0, count.Read())

		count.Write(10)
		assert.Equal(t, 10, count.Read())
	})

	t.Run("zero values", func(t *testing.T) {
		err := NewSignal[error](nil)
		assert.Nil(t, err.Read())

		err.Write(errors.New("oops"))
		assert.EqualError(t, err.Read(), "oops")

		err.Write(nil)
		assert.Nil(t, err.Read())
	})

	t.Run("equal writes do not propagate", func(t *testing.T) {
		log := []string{}

		count := NewSignal(10)

		NewEffect(func() {
			log = append(log, fmt.Sprintf("changed %d", count.Read()))
		})

		count.Write(10)
		count.Write(10)

		assert.Equal(t, []string{
			"changed 10",
		}, log)
	})

	t.Run("custom equality", func(t *testing.T) {
		log := []string{}

		name := NewSignal("hello").WithEqual(strings.EqualFold)

		NewEffect(func() {
			log = append(log, name.Read())
		})

		name.Write("HELLO") // equal under fold, keeps the old value
		assert.Equal(t, "hello", name.Read())

		name.Write("world")

		assert.Equal(t, []string{
			"hello",
			"world",
		}, log)
	})

	t.Run("update", func(t *testing.T) {
		count := NewSignal(1)

		count.Update(func(v int) int { return v + 1 })
		assert.Equal(t, 2, count.Read())
	})

	t.Run("update does not track its read", func(t *testing.T) {
		a := NewSignal(0)
		b := NewSignal(0)

		NewEffect(func() {
			a.Read()
			b.Update(func(v int) int { return v + 1 })
		}, AllowWrites())

		assert.Equal(t, 1, b.Read())

		a.Write(1)
		assert.Equal(t, 2, b.Read())
	})

	t.Run("mutate always propagates", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)

		NewEffect(func() {
			log = append(log, fmt.Sprintf("changed %d", count.Read()))
		})

		count.Mutate(func(v *int) {})

		assert.Equal(t, []string{
			"changed 0",
			"changed 0",
		}, log)
	})

	t.Run("mutate in place", func(t *testing.T) {
		log := []string{}

		items := NewSignal([]int{1, 2, 3})

		NewEffect(func() {
			log = append(log, fmt.Sprintf("len %d", len(items.Read())))
		})

		items.Mutate(func(v *[]int) {
			*v = append(*v, 4)
		})

		assert.Equal(t, []int{1, 2, 3, 4}, items.Read())
		assert.Equal(t, []string{
			"len 3",
			"len 4",
		}, log)
	})

	t.Run("read only view", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		view := count.ReadOnly()

		NewEffect(func() {
			log = append(log, fmt.Sprintf("changed %d", view.Read()))
		})

		count.Write(10)

		assert.Equal(t, 10, view.Read())
		assert.Equal(t, 10, view.Peek())
		assert.Equal(t, []string{
			"changed 0",
			"changed 10",
		}, log)
	})

	t.Run("peek does not track", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)

		NewEffect(func() {
			log = append(log, fmt.Sprintf("peeked %d", count.Peek()))
		})

		count.Write(10)

		assert.Equal(t, []string{
			"peeked 0",
		}, log)
	})

	t.Run("concurrent read/write", func(t *testing.T) {
		var wg sync.WaitGroup
		count := NewSignal(0)

		wg.Go(func() {
			count.Write(count.Read() + 1)
		})

		wg.Wait()
		assert.Equal(t, 1, count.Read())
	})
}
