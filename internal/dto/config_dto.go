package dto

type CouncilConfigResponse struct {
	CouncilModels  []string            `json:"council_models"`
	ChairmanModel  string              `json:"chairman_model"`
	TitleModel     string              `json:"title_model"`
	ProviderModels map[string][]string `json:"provider_models"`
}
