package messaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	data := ResumeRatedEvent{RatingID: "r1", Filename: "cv.pdf", Score: 7, MaxScore: 10}

	event, err := NewEvent(EventResumeRated, "resume-service", "req-1", data)
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, EventResumeRated, event.Type)
	assert.Equal(t, "resume-service", event.Source)
	assert.Equal(t, "req-1", event.CorrelationID)
	assert.False(t, event.Timestamp.IsZero())

	var got ResumeRatedEvent
	require.NoError(t, event.UnmarshalData(&got))
	assert.Equal(t, data, got)
}

func TestNewEvent_UniqueIDs(t *testing.T) {
	a, err := NewEvent(EventResumeRated, "s", "", nil)
	require.NoError(t, err)
	b, err := NewEvent(EventResumeRated, "s", "", nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCorrelationID(t *testing.T) {
	assert.Empty(t, getCorrelationID(context.Background()))
	assert.Equal(t, "abc", getCorrelationID(WithCorrelationID(context.Background(), "abc")))
}

func TestNewEvent_UnmarshalableData(t *testing.T) {
	_, err := NewEvent(EventResumeRated, "s", "", make(chan int))
	assert.Error(t, err)
}
