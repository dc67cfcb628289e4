package bootstrap

import (
	"notesphere-be/internal/config"
	"notesphere-be/internal/controller"
	"notesphere-be/internal/pkg/logger"
	"notesphere-be/internal/repository/implementation"
	"notesphere-be/internal/service"
	"notesphere-be/pkg/consistency"
	"notesphere-be/pkg/database"
	"notesphere-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	NoteController       controller.INoteController
	TagController        controller.ITagController
	CollectionController controller.ICollectionController
	ShareController      controller.IShareController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *database.Mongo, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	publisher := events.NewPublisher(pubSub)

	// Repositories
	userRepository := implementation.NewUserRepository(db.Database())
	noteRepository := implementation.NewNoteRepository(db.Database())
	tagRepository := implementation.NewTagRepository(db.Database())
	collectionRepository := implementation.NewCollectionRepository(db.Database())
	membershipRepository := implementation.NewMembershipRepository(db.Database())
	shareRepository := implementation.NewShareRepository(db.Database())

	// Consistency helpers
	counters := consistency.NewCounters(tagRepository, collectionRepository)
	defaultFlag := consistency.NewDefaultFlag(collectionRepository)
	cascade := consistency.NewCascade(
		noteRepository,
		tagRepository,
		collectionRepository,
		membershipRepository,
		shareRepository,
		counters,
		sysLogger,
	)

	// Services
	authService := service.NewAuthService(userRepository, cfg.Auth.JwtSecret, cfg.Auth.AccessTokenTTL)
	userService := service.NewUserService(userRepository)
	noteService := service.NewNoteService(
		noteRepository,
		membershipRepository,
		shareRepository,
		counters,
		cascade,
		publisher,
		sysLogger,
	)
	tagService := service.NewTagService(tagRepository, noteRepository, cascade)
	collectionService := service.NewCollectionService(
		collectionRepository,
		noteRepository,
		membershipRepository,
		counters,
		defaultFlag,
		cascade,
	)
	shareService := service.NewShareService(
		shareRepository,
		noteRepository,
		userService,
		publisher,
		sysLogger,
	)
	consumerService := service.NewConsumerService(pubSub, sysLogger)

	return &Container{
		AuthController:       controller.NewAuthController(authService, userService, cfg.Auth.JwtSecret),
		NoteController:       controller.NewNoteController(noteService, cfg.Auth.JwtSecret),
		TagController:        controller.NewTagController(tagService, cfg.Auth.JwtSecret),
		CollectionController: controller.NewCollectionController(collectionService, cfg.Auth.JwtSecret),
		ShareController:      controller.NewShareController(shareService, cfg.Auth.JwtSecret),
		ConsumerService:      consumerService,
		Logger:               sysLogger,
	}
}
