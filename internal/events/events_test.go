package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)

	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true

	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := &KafkaPublisher{writer: w}

	e := New(TypeVoteCast, 7)
	e.VoterID = 3
	e.CandidateID = 101
	require.NoError(t, p.Publish(context.Background(), e))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "7", string(msg.Key))
	assert.Equal(t, []kafka.Header{{Key: "type", Value: []byte("vote.cast")}}, msg.Headers)

	var got Event
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, TypeVoteCast, got.Type)
	assert.EqualValues(t, 101, got.CandidateID)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	boom := errors.New("broker down")
	p := &KafkaPublisher{writer: &recordingWriter{err: boom}}

	err := p.Publish(context.Background(), New(TypeElectionDeleted, 7))
	assert.ErrorIs(t, err, boom)
}

func TestNew(t *testing.T) {
	a := New(TypeElectionDeleted, 1)
	b := New(TypeElectionDeleted, 1)

	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.OccurredAt.IsZero())
}
