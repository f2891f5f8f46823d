package service

import (
	"context"
	"encoding/json"
	"log"

	"mufessir/internal/dto"
	"mufessir/internal/entity"
	"mufessir/internal/repository/specification"
	"mufessir/internal/repository/unitofwork"
	"mufessir/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.EmbedTafsirMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing tafsir embedding for TafsirId: %s", payload.TafsirId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	tafsir, err := uow.TafsirRepository().FindOne(ctx, specification.ByStringID{ID: payload.TafsirId})
	if err != nil {
		log.Printf("[ERROR] Failed to get tafsir %s: %v", payload.TafsirId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if tafsir == nil {
		log.Printf("[ERROR] Tafsir not found: %s", payload.TafsirId)
		msg.Ack() // Tafsir deleted? Ack.
		return
	}
	if len(tafsir.Embedding) > 0 {
		// Another worker already backfilled it.
		msg.Ack()
		return
	}

	if cs.embeddingProvider == nil {
		log.Printf("[WARN] No embedding provider configured, dropping backfill for tafsir %s", tafsir.Id)
		msg.Ack()
		return
	}

	verse, err := uow.VerseRepository().FindOne(ctx, specification.ByStringID{ID: tafsir.VerseId})
	if err != nil {
		log.Printf("[ERROR] Failed to get verse %s: %v", tafsir.VerseId, err)
		msg.Nack()
		return
	}

	vector, err := cs.embeddingProvider.Embed(ctx, entity.EmbeddingInput(verse, tafsir))
	if err != nil {
		log.Printf("[ERROR] Failed to embed tafsir %s: %v", tafsir.Id, err)
		msg.Nack()
		return
	}

	if err := uow.TafsirRepository().UpdateEmbedding(ctx, tafsir.Id, vector); err != nil {
		log.Printf("[ERROR] Failed to store embedding for tafsir %s: %v", tafsir.Id, err)
		msg.Nack()
		return
	}

	log.Printf("[INFO] Stored embedding for tafsir %s (%d dims)", tafsir.Id, len(vector))
	msg.Ack()
}
