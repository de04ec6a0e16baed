package pulse

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputed(t *testing.T) {
	t.Run("derives value from signal", func(t *testing.T) {
		log := []string{}

		count := NewSignal(1)
		double := NewComputed(func() int {
			log = append(log, "doubling")
			return count.Read() * 2
		})
		plustwo := NewComputed(func() int {
			log = append(log, "adding")
			return double.Read() + 2
		})

		assert.Equal(t, 1, count.Read())
		assert.Equal(t, 2, double.Read())
		assert.Equal(t, 4, plustwo.Read())

		count.Write(10)
		assert.Equal(t, 10, count.Read())
		assert.Equal(t, 20, double.Read())
		assert.Equal(t, 22, plustwo.Read())

		assert.Equal(t, []string{
			"doubling",
			"adding",
			"doubling",
			"adding",
		}, log)
	})

	t.Run("memoizes between changes", func(t *testing.T) {
		calls := 0

		count := NewSignal(1)
		double := NewComputed(func() int {
			calls++
			return count.Read() * 2
		})

		double.Read()
		double.Read()
		double.Read()
		assert.Equal(t, 1, calls)

		count.Write(2)
		assert.Equal(t, 4, double.Read())
		double.Read()
		assert.Equal(t, 2, calls)
	})

	t.Run("does not propagate when value unchanged", func(t *testing.T) {
		log := []string{}

		count := NewSignal(1)
		a := NewComputed(func() int {
			log = append(log, "running a")
			return count.Read() * 0 // always returns 0
		})
		b := NewComputed(func() int {
			log = append(log, "running b")
			return a.Read() + 1
		})

		a.Read()
		b.Read()

		count.Write(10) // recomputes a on read, but not b since a's value didn't change
		assert.Equal(t, 1, b.Read())

		assert.Equal(t, []string{
			"running a",
			"running b",
			"running a",
		}, log)
	})

	t.Run("custom equality", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		threshold := NewComputed(func() int {
			return count.Read()
		}).WithEqual(func(a, b int) bool {
			return (a > 10) == (b > 10)
		})

		NewEffect(func() {
			log = append(log, fmt.Sprintf("above: %v", threshold.Read() > 10))
		})

		count.Write(5) // same side of the threshold, no rerun
		count.Write(20)

		assert.Equal(t, []string{
			"above: false",
			"above: true",
		}, log)
	})

	t.Run("detects self cycle", func(t *testing.T) {
		var c *Computed[int]
		c = NewComputed(func() int {
			return c.Read() + 1
		})

		err := capturePanic(func() { c.Read() })
		assert.ErrorIs(t, err, ErrCycleDetected)
	})

	t.Run("detects mutual cycle", func(t *testing.T) {
		var a, b *Computed[int]
		a = NewComputed(func() int {
			return b.Read() + 1
		})
		b = NewComputed(func() int {
			return a.Read() + 1
		})

		err := capturePanic(func() { a.Read() })
		assert.ErrorIs(t, err, ErrCycleDetected)
	})

	t.Run("retries after a panic", func(t *testing.T) {
		fail := true

		count := NewSignal(1)
		double := NewComputed(func() int {
			if fail {
				panic("boom")
			}
			return count.Read() * 2
		})

		err := capturePanic(func() { double.Read() })
		assert.EqualError(t, err, "boom")

		fail = false
		assert.Equal(t, 2, double.Read())
	})

	t.Run("recovers after dependency change", func(t *testing.T) {
		count := NewSignal(1)
		double := NewComputed(func() int {
			v := count.Read()
			if v == 2 {
				panic("boom")
			}
			return v * 2
		})

		assert.Equal(t, 2, double.Read())

		count.Write(2)
		err := capturePanic(func() { double.Read() })
		assert.EqualError(t, err, "boom")

		count.Write(3)
		assert.Equal(t, 6, double.Read())
	})

	t.Run("cannot write signals", func(t *testing.T) {
		other := NewSignal(0)
		bad := NewComputed(func() int {
			other.Write(1)
			return 0
		})

		err := capturePanic(func() { bad.Read() })
		assert.ErrorIs(t, err, ErrInvalidWrite)
	})

	t.Run("disposed reads do not track", func(t *testing.T) {
		count := NewSignal(1)
		double := NewComputed(func() int {
			return count.Read() * 2
		})
		assert.Equal(t, 2, double.Read())

		double.Dispose()

		log := []string{}
		NewEffect(func() {
			log = append(log, fmt.Sprintf("%d", double.Read()))
		})

		count.Write(5)
		assert.Equal(t, []string{"2"}, log)

		// no edge was registered in either direction
		var buf bytes.Buffer
		assert.NoError(t, WriteDOT(&buf, double))
		assert.NotContains(t, buf.String(), "->")
	})

	t.Run("dispose detaches from the graph", func(t *testing.T) {
		log := []string{}

		count := NewSignal(1)
		double := NewComputed(func() int {
			log = append(log, "computing")
			return count.Read() * 2
		})

		NewEffect(func() {
			log = append(log, fmt.Sprintf("effect %d", double.Read()))
		})

		count.Write(2)
		double.Dispose()
		double.Dispose() // idempotent
		count.Write(3)

		assert.Equal(t, 4, double.Read()) // last value, no recompute
		assert.Equal(t, []string{
			"computing",
			"effect 2",
			"computing",
			"effect 4",
		}, log)
	})
}
