package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	all := []Status{StatusNew, StatusProcessing, StatusCompleted, StatusCancelled}
	allowed := map[[2]Status]bool{
		{StatusNew, StatusProcessing}:       true,
		{StatusNew, StatusCancelled}:        true,
		{StatusProcessing, StatusCompleted}: true,
		{StatusProcessing, StatusCancelled}: true,
	}
	for _, from := range all {
		for _, to := range all {
			err := CanTransition(from, to)
			if allowed[[2]Status{from, to}] {
				assert.NoError(t, err, "%s -> %s", from, to)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", from, to)
			}
		}
	}
}

func TestTerminal(t *testing.T) {
	assert.False(t, StatusNew.Terminal())
	assert.False(t, StatusProcessing.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.Empty(t, NextStatuses(StatusCompleted))
	assert.ElementsMatch(t, []Status{StatusProcessing, StatusCancelled}, NextStatuses(StatusNew))
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" Processing ")
	assert.NoError(t, err)
	assert.Equal(t, StatusProcessing, st)

	_, err = ParseStatus("shipped")
	assert.ErrorIs(t, err, ErrValidation)
}
