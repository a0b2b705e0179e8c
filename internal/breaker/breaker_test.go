package breaker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errServer = errors.New("server down")
var errBadInput = errors.New("no such ticket")

func TestBreakerTripsAfterThreshold(t *testing.T) {
	b := New("test", 2, nil)
	calls := 0
	fail := func() error {
		calls++
		return errServer
	}

	assert.ErrorIs(t, b.Execute(fail), errServer)
	assert.ErrorIs(t, b.Execute(fail), errServer)

	err := b.Execute(fail)
	assert.True(t, IsOpen(err))
	assert.Equal(t, 2, calls)
}

func TestBreakerIgnoresSuccessfulErrors(t *testing.T) {
	b := New("test", 1, func(err error) bool { return errors.Is(err, errBadInput) })

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, b.Execute(func() error { return errBadInput }), errBadInput)
	}
	assert.NoError(t, b.Execute(func() error { return nil }))
}

func TestNilBreakerRunsEveryCall(t *testing.T) {
	b := New("disabled", 0, nil)
	assert.Nil(t, b)

	calls := 0
	for i := 0; i < 10; i++ {
		assert.ErrorIs(t, b.Execute(func() error {
			calls++
			return errServer
		}), errServer)
	}
	assert.Equal(t, 10, calls)
}
