package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalGetSet(t *testing.T) {
	s := NewSignal(1)
	assert.Equal(t, 1, s.Get())

	s.Set(5)
	assert.Equal(t, 5, s.Get())
}

func TestSignalUpdate(t *testing.T) {
	s := NewSignal([]string{"a"})
	s.Update(func(v []string) []string {
		return append(v, "b")
	})
	assert.Equal(t, []string{"a", "b"}, s.Get())
}

func TestSignalSubscribe(t *testing.T) {
	s := NewSignal(0)

	var seen []int
	unsubscribe := s.Subscribe(func(v int) {
		seen = append(seen, v)
	})

	s.Set(1)
	s.Update(func(v int) int { return v + 1 })
	assert.Equal(t, []int{1, 2}, seen)

	unsubscribe()
	s.Set(10)
	assert.Equal(t, []int{1, 2}, seen)
}
