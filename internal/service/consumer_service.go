package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"llm-council-be/internal/dto"
	"llm-council-be/internal/pkg/logger"
	"llm-council-be/internal/repository/specification"
	"llm-council-be/internal/repository/unitofwork"
	"llm-council-be/pkg/council"
	"llm-council-be/pkg/events"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	engine     *council.Engine
	log        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	engine *council.Engine,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		engine:     engine,
		log:        log,
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

// processMessage titles a conversation after its first council turn. Title
// generation hits an LLM, so it runs here instead of blocking the send path.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var envelope events.Envelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		cs.log.Error("consumer", "failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}
	if envelope.Type != events.CouncilTurnCompleted {
		msg.Ack()
		return
	}

	var payload dto.PublishCouncilTurnMessage
	if err := envelope.Decode(&payload); err != nil {
		cs.log.Error("consumer", "failed to decode event payload", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: payload.ConversationId})
	if err != nil {
		cs.log.Error("consumer", "failed to get conversation", map[string]interface{}{
			"conversation_id": payload.ConversationId.String(),
			"error":           err.Error(),
		})
		msg.Nack()
		return
	}
	if conversation == nil {
		cs.log.Warn("consumer", "conversation not found", map[string]interface{}{
			"conversation_id": payload.ConversationId.String(),
		})
		msg.Ack() // Deleted meanwhile? Ack.
		return
	}

	title := cs.engine.GenerateTitle(ctx, payload.FirstMessage)
	conversation.Title = title

	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		cs.log.Error("consumer", "failed to update conversation title", map[string]interface{}{
			"conversation_id": payload.ConversationId.String(),
			"error":           err.Error(),
		})
		msg.Nack()
		return
	}

	cs.log.Info("consumer", "conversation titled", map[string]interface{}{
		"conversation_id": payload.ConversationId.String(),
		"title":           title,
	})
	msg.Ack()
}
