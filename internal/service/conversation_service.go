package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"llm-council-be/internal/config"
	"llm-council-be/internal/dto"
	"llm-council-be/internal/entity"
	"llm-council-be/internal/pkg/logger"
	"llm-council-be/internal/repository/specification"
	"llm-council-be/internal/repository/unitofwork"
	"llm-council-be/pkg/council"
	"llm-council-be/pkg/events"
)

var ErrConversationNotFound = errors.New("conversation not found")

const defaultConversationTitle = "New Conversation"

type IConversationService interface {
	GetAll(ctx context.Context) ([]*dto.ConversationResponse, error)
	Create(ctx context.Context, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ConversationDetailResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SendMessage(ctx context.Context, conversationId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	StreamMessage(ctx context.Context, conversationId uuid.UUID, req *dto.SendMessageRequest) (<-chan council.Event, error)
}

type conversationService struct {
	uowFactory       unitofwork.RepositoryFactory
	personaService   IPersonaService
	publisherService IPublisherService
	engine           *council.Engine
	councilCfg       config.CouncilConfig
	log              logger.ILogger
}

func NewConversationService(
	uowFactory unitofwork.RepositoryFactory,
	personaService IPersonaService,
	publisherService IPublisherService,
	engine *council.Engine,
	councilCfg config.CouncilConfig,
	log logger.ILogger,
) IConversationService {
	return &conversationService{
		uowFactory:       uowFactory,
		personaService:   personaService,
		publisherService: publisherService,
		engine:           engine,
		councilCfg:       councilCfg,
		log:              log,
	}
}

func (s *conversationService) GetAll(ctx context.Context) ([]*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		result = append(result, &dto.ConversationResponse{
			Id:        c.Id,
			Title:     c.Title,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return result, nil
}

func (s *conversationService) Create(ctx context.Context, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	title := req.Title
	if title == "" {
		title = defaultConversationTitle
	}

	conversation := entity.Conversation{
		Id:        uuid.New(),
		Title:     title,
		CreatedAt: time.Now(),
	}
	if err := uow.ConversationRepository().Create(ctx, &conversation); err != nil {
		return nil, err
	}

	return &dto.ConversationResponse{
		Id:        conversation.Id,
		Title:     conversation.Title,
		CreatedAt: conversation.CreatedAt,
	}, nil
}

func (s *conversationService) Show(ctx context.Context, id uuid.UUID) (*dto.ConversationDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, ErrConversationNotFound
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ConversationDetailResponse{
		Id:        conversation.Id,
		Title:     conversation.Title,
		CreatedAt: conversation.CreatedAt,
		Messages:  make([]dto.ChatMessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		res.Messages = append(res.Messages, dto.ChatMessageResponse{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			Stage1:    m.Stage1,
			Stage2:    m.Stage2,
			Stage3:    m.Stage3,
			Metadata:  m.Metadata,
			CreatedAt: m.CreatedAt,
		})
	}
	return res, nil
}

func (s *conversationService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if conversation == nil {
		return ErrConversationNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteAllByConversationIdUnscoped(ctx, id); err != nil {
		return err
	}
	if err := uow.ConversationRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

// SendMessage runs a full batch deliberation for one user turn. The user turn
// is persisted before the stages run; the assistant turn after. First-turn
// conversations get their title generated by the event consumer, never here.
func (s *conversationService) SendMessage(ctx context.Context, conversationId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, members, firstTurn, err := s.prepareTurn(ctx, uow, conversationId, req)
	if err != nil {
		return nil, err
	}

	result := s.engine.Run(ctx, req.Content, members, s.turnSubject(conversation, firstTurn))

	if err := s.persistAssistantTurn(ctx, uow, conversationId, result); err != nil {
		return nil, err
	}

	if firstTurn {
		s.publishTurnCompleted(ctx, conversationId, req.Content)
	}

	return &dto.SendMessageResponse{
		ConversationId: conversation.Id,
		Title:          conversation.Title,
		Stage1:         result.Stage1,
		Stage2:         result.Stage2,
		Stage3:         result.Stage3,
		Metadata:       result.Metadata,
	}, nil
}

// StreamMessage validates and persists the user turn synchronously, then
// returns the live event channel. The assistant turn is persisted once stage 3
// completes; a mid-stream failure persists nothing for that turn.
func (s *conversationService) StreamMessage(ctx context.Context, conversationId uuid.UUID, req *dto.SendMessageRequest) (<-chan council.Event, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, members, firstTurn, err := s.prepareTurn(ctx, uow, conversationId, req)
	if err != nil {
		return nil, err
	}

	events := s.engine.RunStream(ctx, req.Content, members, s.turnSubject(conversation, firstTurn), firstTurn)

	// The assistant turn is assembled from the stage payloads as the events
	// pass through, and persisted only once stage 3 completes.
	out := make(chan council.Event)
	go func() {
		defer close(out)
		var turn council.Result
		for ev := range events {
			switch ev.Type {
			case council.EventStage1Complete:
				turn.Stage1 = ev.Stage1
			case council.EventStage2Complete:
				turn.Stage2 = ev.Stage2
				if ev.Metadata != nil {
					turn.Metadata = *ev.Metadata
				}
			case council.EventStage3Complete:
				if ev.Stage3 != nil {
					turn.Stage3 = *ev.Stage3
				}
				uow := s.uowFactory.NewUnitOfWork(ctx)
				if err := s.persistAssistantTurn(ctx, uow, conversationId, turn); err != nil {
					s.log.Error("conversation", "assistant turn persist failed", map[string]interface{}{
						"conversation_id": conversationId.String(),
						"error":           err.Error(),
					})
				}
			case council.EventTitleComplete:
				s.persistTitle(ctx, conversationId, ev.Title)
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// prepareTurn loads the conversation, resolves the member panel and persists
// the user message. firstTurn reflects the message count before this turn.
func (s *conversationService) prepareTurn(ctx context.Context, uow unitofwork.UnitOfWork, conversationId uuid.UUID, req *dto.SendMessageRequest) (*entity.Conversation, []council.Member, bool, error) {
	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, nil, false, err
	}
	if conversation == nil {
		return nil, nil, false, ErrConversationNotFound
	}

	members, err := s.personaService.ResolveMembers(ctx, req.PersonaIds)
	if err != nil {
		return nil, nil, false, err
	}
	if len(members) == 0 {
		members = s.defaultMembers()
	}

	count, err := uow.ChatMessageRepository().Count(ctx, specification.ByConversationID{ConversationID: conversationId})
	if err != nil {
		return nil, nil, false, err
	}
	firstTurn := count == 0

	userMessage := entity.ChatMessage{
		Id:             uuid.New(),
		ConversationId: conversationId,
		Role:           entity.MessageRoleUser,
		Content:        req.Content,
		CreatedAt:      time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &userMessage); err != nil {
		return nil, nil, false, err
	}

	return conversation, members, firstTurn, nil
}

func (s *conversationService) persistAssistantTurn(ctx context.Context, uow unitofwork.UnitOfWork, conversationId uuid.UUID, result council.Result) error {
	assistantMessage := entity.ChatMessage{
		Id:             uuid.New(),
		ConversationId: conversationId,
		Role:           entity.MessageRoleAssistant,
		Content:        result.Stage3.Response,
		Stage1:         result.Stage1,
		Stage2:         result.Stage2,
		Stage3:         &result.Stage3,
		Metadata:       &result.Metadata,
		CreatedAt:      time.Now(),
	}
	return uow.ChatMessageRepository().Create(ctx, &assistantMessage)
}

func (s *conversationService) defaultMembers() []council.Member {
	members := make([]council.Member, 0, len(s.councilCfg.Models))
	for _, m := range s.councilCfg.Models {
		members = append(members, council.Member{Model: m})
	}
	return members
}

// turnSubject gives the chairman the conversation topic. A first turn has no
// meaningful title yet, so no subject is framed.
func (s *conversationService) turnSubject(conversation *entity.Conversation, firstTurn bool) string {
	if firstTurn || conversation.Title == defaultConversationTitle {
		return ""
	}
	return conversation.Title
}

func (s *conversationService) publishTurnCompleted(ctx context.Context, conversationId uuid.UUID, firstMessage string) {
	payload, err := events.NewEnvelope(events.CouncilTurnCompleted, dto.PublishCouncilTurnMessage{
		ConversationId: conversationId,
		FirstMessage:   firstMessage,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Warn("conversation", "turn-completed publish failed", map[string]interface{}{
			"conversation_id": conversationId.String(),
			"error":           err.Error(),
		})
	}
}

func (s *conversationService) persistTitle(ctx context.Context, conversationId uuid.UUID, title string) {
	if title == "" {
		return
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil || conversation == nil {
		return
	}
	conversation.Title = title
	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		s.log.Warn("conversation", "title persist failed", map[string]interface{}{
			"conversation_id": conversationId.String(),
			"error":           err.Error(),
		})
	}
}
