package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/radieske/bet-ledger/pkg/contracts/events"
)

// KafkaPublisher publica os eventos de ciclo de vida das apostas
// em tópicos separados (bet_placed / bet_resolved)
type KafkaPublisher struct {
	Placed   *kafka.Writer
	Resolved *kafka.Writer
}

func NewKafkaPublisher(placed, resolved *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Placed: placed, Resolved: resolved}
}

func (p *KafkaPublisher) PublishBetPlaced(ctx context.Context, e events.BetPlaced) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return p.Placed.WriteMessages(ctx, kafka.Message{Key: []byte(e.BetID), Value: b})
}

func (p *KafkaPublisher) PublishBetResolved(ctx context.Context, e events.BetResolved) error {
	e.Ts = time.Now()
	b, _ := json.Marshal(e)
	return p.Resolved.WriteMessages(ctx, kafka.Message{Key: []byte(e.BetID), Value: b})
}
