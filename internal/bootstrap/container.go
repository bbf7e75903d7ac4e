package bootstrap

import (
	"time"

	"llm-council-be/internal/config"
	"llm-council-be/internal/controller"
	"llm-council-be/internal/pkg/logger"
	"llm-council-be/internal/repository/unitofwork"
	"llm-council-be/internal/service"
	"llm-council-be/pkg/council"
	"llm-council-be/pkg/llm/catalog"
	"llm-council-be/pkg/llm/router"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ConversationController controller.IConversationController
	PersonaController      controller.IPersonaController
	ConfigController       controller.IConfigController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM Plumbing
	providerCfg := router.Config{
		OpenAIKey:     cfg.Keys.OpenAI,
		XAIKey:        cfg.Keys.XAI,
		GoogleKey:     cfg.Keys.Google,
		OpenRouterKey: cfg.Keys.OpenRouter,
	}
	llmRouter := router.New(providerCfg, sysLogger)
	modelCatalog := catalog.New(providerCfg, time.Duration(cfg.Council.CatalogTTLSeconds)*time.Second, sysLogger)

	engine := council.NewEngine(
		llmRouter,
		cfg.Council.ChairmanModel,
		cfg.Council.TitleModel,
		time.Duration(cfg.Council.QueryTimeoutSeconds)*time.Second,
		sysLogger,
	)

	// 4. Services
	// Consumer logs go to their own file to keep the request log clean.
	consumerLogger := logger.NewIsolatedLogger("logs/consumer.log")

	publisherService := service.NewPublisherService(cfg.Events.CouncilTurnTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Events.CouncilTurnTopic,
		uowFactory,
		engine,
		consumerLogger,
	)

	personaService := service.NewPersonaService(uowFactory)
	configService := service.NewConfigService(cfg, modelCatalog)
	conversationService := service.NewConversationService(
		uowFactory,
		personaService,
		publisherService,
		engine,
		cfg.Council,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		ConversationController: controller.NewConversationController(conversationService),
		PersonaController:      controller.NewPersonaController(personaService),
		ConfigController:       controller.NewConfigController(configService),

		ConsumerService: consumerService,

		Logger: sysLogger,
	}
}
