package pulse

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUntrack(t *testing.T) {
	t.Run("does not track reads", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)

		NewEffect(func() {
			c := Untrack(count.Read)
			log = append(log, fmt.Sprintf("effect %d", c))
		})

		count.Write(10)

		assert.Equal(t, []string{
			"effect 0",
		}, log)
	})

	t.Run("returns the value", func(t *testing.T) {
		count := NewSignal(42)
		assert.Equal(t, 42, Untrack(count.Read))
	})

	t.Run("write restrictions still apply", func(t *testing.T) {
		count := NewSignal(0)
		other := NewSignal(0)

		err := capturePanic(func() {
			NewEffect(func() {
				count.Read()
				Untrack(func() int {
					other.Write(1)
					return 0
				})
			})
		})

		assert.ErrorIs(t, err, ErrInvalidWrite)
	})
}
