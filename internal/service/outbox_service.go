package service

import (
	"context"
	"time"

	"QuickAI/internal/model"
	"QuickAI/internal/pkg"
	"QuickAI/internal/repository/mysql"

	"github.com/rs/zerolog"
)

type Sender func(ctx context.Context, ob *model.CreationOutbox) error

// OutboxRelayer 周期性地把 creation_outbox 里的待投递事件交给 sender
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	maxRetry  int
	sender    Sender
	log       zerolog.Logger
}

func NewOutboxRelayer(repo *mysql.OutboxRepository, sender Sender, log zerolog.Logger) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      repo,
		batchSize: 200,
		interval:  time.Second,
		maxRetry:  5,
		sender:    sender,
		log:       log,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		r.log.Error().Err(err).Msg("outbox query failed")
		return
	}
	for i := range rows {
		ob := rows[i]
		if err := r.sender(ctx, &ob); err != nil {
			r.log.Warn().Err(err).Uint64("outbox_id", ob.ID).Msg("outbox send failed")
			if err := r.repo.MarkRetry(ctx, ob.ID, r.maxRetry); err != nil {
				r.log.Error().Err(err).Uint64("outbox_id", ob.ID).Msg("outbox retry update failed")
			}
			continue
		}
		if err := r.repo.MarkSent(ctx, ob.ID); err != nil {
			r.log.Error().Err(err).Uint64("outbox_id", ob.ID).Msg("outbox sent update failed")
		}
	}
}

// KafkaSender 事件按 creation_id 作 key 投递，同一作品的事件保序
func KafkaSender(p *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.CreationOutbox) error {
		return p.Send(ctx, pkg.CreationKey(ob.CreationID), []byte(ob.Payload))
	}
}

// LogSender 未配置 broker 时的降级 sender
func LogSender(log zerolog.Logger) Sender {
	return func(ctx context.Context, ob *model.CreationOutbox) error {
		log.Info().
			Str("event", ob.EventType).
			Str("user_id", ob.UserID).
			Uint64("creation_id", ob.CreationID).
			Msg("outbox event")
		return nil
	}
}
