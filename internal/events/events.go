// Package events publishes ballot lifecycle notifications after the
// corresponding store write has committed.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/vietanh2810/evoting-api/internal/config"
)

type Type string

const (
	TypeVoteCast         Type = "vote.cast"
	TypeElectionDeleted  Type = "election.deleted"
	TypeCandidateDeleted Type = "candidate.deleted"
)

type Event struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	ElectionID  int64     `json:"election_id"`
	VoterID     int64     `json:"voter_id,omitempty"`
	CandidateID int64     `json:"candidate_id,omitempty"`
	VotesPurged int64     `json:"votes_purged,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func New(t Type, electionID int64) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		ElectionID: electionID,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(conf *config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(conf.Brokers...),
			Topic:                  conf.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

// Publish keys messages by election so one election's events stay ordered
// within a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(e.ElectionID, 10)),
		Value: data,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("p.writer.WriteMessages -> %w", err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
