package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"llm-council-be/internal/dto"
	"llm-council-be/internal/entity"
	"llm-council-be/internal/repository/specification"
	"llm-council-be/internal/repository/unitofwork"
	"llm-council-be/pkg/council"
)

var ErrPersonaNotFound = errors.New("persona not found")

type IPersonaService interface {
	GetAll(ctx context.Context) ([]*dto.PersonaResponse, error)
	Create(ctx context.Context, req *dto.CreatePersonaRequest) (*dto.PersonaResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePersonaRequest) (*dto.PersonaResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ResolveMembers turns stored persona ids into council members, keeping
	// request order. Any unknown id fails the whole resolution.
	ResolveMembers(ctx context.Context, personaIds []uuid.UUID) ([]council.Member, error)
}

type personaService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPersonaService(uowFactory unitofwork.RepositoryFactory) IPersonaService {
	return &personaService{uowFactory: uowFactory}
}

func (s *personaService) GetAll(ctx context.Context) ([]*dto.PersonaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	personas, err := uow.PersonaRepository().FindAll(ctx, specification.OrderBy{Field: "created_at"})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.PersonaResponse, 0, len(personas))
	for _, p := range personas {
		result = append(result, toPersonaResponse(p))
	}
	return result, nil
}

func (s *personaService) Create(ctx context.Context, req *dto.CreatePersonaRequest) (*dto.PersonaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	persona := entity.Persona{
		Id:          uuid.New(),
		Name:        req.Name,
		Prompt:      req.Prompt,
		Description: req.Description,
		Model:       req.Model,
		CreatedAt:   time.Now(),
	}
	if err := uow.PersonaRepository().Create(ctx, &persona); err != nil {
		return nil, err
	}

	return toPersonaResponse(&persona), nil
}

func (s *personaService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePersonaRequest) (*dto.PersonaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	persona, err := uow.PersonaRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if persona == nil {
		return nil, ErrPersonaNotFound
	}

	if req.Name != nil {
		persona.Name = *req.Name
	}
	if req.Prompt != nil {
		persona.Prompt = *req.Prompt
	}
	if req.Description != nil {
		persona.Description = *req.Description
	}
	if req.Model != nil {
		persona.Model = *req.Model
	}
	now := time.Now()
	persona.UpdatedAt = &now

	if err := uow.PersonaRepository().Update(ctx, persona); err != nil {
		return nil, err
	}
	return toPersonaResponse(persona), nil
}

func (s *personaService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	persona, err := uow.PersonaRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if persona == nil {
		return ErrPersonaNotFound
	}

	return uow.PersonaRepository().Delete(ctx, id)
}

func (s *personaService) ResolveMembers(ctx context.Context, personaIds []uuid.UUID) ([]council.Member, error) {
	if len(personaIds) == 0 {
		return nil, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	personas, err := uow.PersonaRepository().FindAll(ctx, specification.ByIDs{IDs: personaIds})
	if err != nil {
		return nil, err
	}

	byId := make(map[uuid.UUID]*entity.Persona, len(personas))
	for _, p := range personas {
		byId[p.Id] = p
	}

	members := make([]council.Member, 0, len(personaIds))
	for _, id := range personaIds {
		p, ok := byId[id]
		if !ok {
			return nil, errors.Wrapf(ErrPersonaNotFound, "id %s", id)
		}
		members = append(members, council.Member{
			Model: p.Model,
			Persona: &council.Persona{
				Name:        p.Name,
				Prompt:      p.Prompt,
				Description: p.Description,
			},
		})
	}
	return members, nil
}

func toPersonaResponse(p *entity.Persona) *dto.PersonaResponse {
	return &dto.PersonaResponse{
		Id:          p.Id,
		Name:        p.Name,
		Prompt:      p.Prompt,
		Description: p.Description,
		Model:       p.Model,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
