package service

import (
	"context"

	"llm-council-be/internal/config"
	"llm-council-be/internal/dto"
	"llm-council-be/pkg/llm/catalog"
)

type IConfigService interface {
	GetConfig(ctx context.Context) (*dto.CouncilConfigResponse, error)
	RefreshModels(ctx context.Context) (*dto.CouncilConfigResponse, error)
}

type configService struct {
	cfg     *config.Config
	catalog *catalog.Catalog
}

func NewConfigService(cfg *config.Config, cat *catalog.Catalog) IConfigService {
	return &configService{
		cfg:     cfg,
		catalog: cat,
	}
}

func (s *configService) GetConfig(ctx context.Context) (*dto.CouncilConfigResponse, error) {
	providerModels := s.catalog.Get(ctx)
	return s.buildResponse(providerModels), nil
}

func (s *configService) RefreshModels(ctx context.Context) (*dto.CouncilConfigResponse, error) {
	providerModels := s.catalog.Refresh(ctx)
	return s.buildResponse(providerModels), nil
}

func (s *configService) buildResponse(providerModels map[string][]string) *dto.CouncilConfigResponse {
	return &dto.CouncilConfigResponse{
		CouncilModels:  s.cfg.Council.Models,
		ChairmanModel:  s.cfg.Council.ChairmanModel,
		TitleModel:     s.cfg.Council.TitleModel,
		ProviderModels: providerModels,
	}
}
