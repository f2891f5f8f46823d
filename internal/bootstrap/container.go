package bootstrap

import (
	"log"

	"mufessir/internal/config"
	"mufessir/internal/controller"
	"mufessir/internal/pkg/logger"
	"mufessir/internal/pkg/mailer"
	"mufessir/internal/pkg/serverutils"
	"mufessir/internal/repository/unitofwork"
	"mufessir/internal/service"
	"mufessir/pkg/demo"
	"mufessir/pkg/embedding"
	"mufessir/pkg/llm"
	llmOpenai "mufessir/pkg/llm/openai"
	pktNats "mufessir/pkg/nats"
	"mufessir/pkg/similarity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	VerseController   controller.IVerseController
	FilterController  controller.IFilterController
	TafseerController controller.ITafseerController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.From,
		cfg.SMTP.SenderName,
		cfg.App.BaseURL,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var (
		embeddingProvider embedding.EmbeddingProvider
		llmProvider       llm.LLMProvider
		scorer            similarity.Scorer
	)
	if cfg.AiDisabled() {
		scorer = similarity.NewLexicalScorer()
		log.Printf("[INFO] AI providers disabled, running on lexical similarity only")
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.APIKey, cfg.Ai.BaseURL, cfg.Ai.EmbedModel)
		llmProvider = llmOpenai.NewOpenAIProvider(cfg.Ai.APIKey, cfg.Ai.BaseURL, cfg.Ai.Model)
		scorer = similarity.NewEmbeddingScorer(embeddingProvider)
		log.Printf("[INFO] Using OpenAI providers (model: %s, embeddings: %s)", cfg.Ai.Model, cfg.Ai.EmbedModel)
	}

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	var demoStore *demo.Store
	if cfg.Demo.Enabled {
		demoStore = demo.NewStore()
		if count, err := demoStore.Load(cfg.Demo.AnswersPath); err != nil {
			log.Printf("[WARN] Failed to load demo answers from %s: %v", cfg.Demo.AnswersPath, err)
			demoStore = nil
		} else {
			log.Printf("[INFO] Demo mode active with %d precomputed answers", count)
		}
	}

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.EmbedTafsirTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.EmbedTafsirTopic,
		uowFactory,
		embeddingProvider,
	)

	authService := service.NewAuthService(uowFactory, emailService, natsPub, cfg.Auth.JWTSecret, cfg.Quota.DailyCeiling)
	verseService := service.NewVerseService(uowFactory)
	filterService := service.NewFilterService(uowFactory)
	tafseerService := service.NewTafseerService(
		uowFactory,
		llmProvider,
		embeddingProvider,
		scorer,
		demoStore,
		publisherService,
		natsPub,
		service.GenerationSettings{
			Temperature: cfg.Ai.Temperature,
			MaxTokens:   cfg.Ai.MaxTokens,
			SampleMode:  cfg.Ai.SimilarityMode == "sample",
			AiDisabled:  cfg.AiDisabled(),
		},
		sysLogger,
	)

	quotaMiddleware := serverutils.QuotaMiddleware(uowFactory, cfg.Quota.DailyCeiling, sysLogger)

	// 6. Controllers
	return &Container{
		AuthController:    controller.NewAuthController(authService, cfg.Auth.JWTSecret),
		VerseController:   controller.NewVerseController(verseService),
		FilterController:  controller.NewFilterController(filterService),
		TafseerController: controller.NewTafseerController(tafseerService, quotaMiddleware, cfg.Auth.JWTSecret, sysLogger),
		ConsumerService:   consumerService,
		Logger:            sysLogger,
	}
}
