package bootstrap

import (
	"context"
	"log"
	"time"

	"digraph-be/internal/config"
	"digraph-be/internal/controller"
	"digraph-be/internal/handler"
	"digraph-be/internal/pkg/logger"
	"digraph-be/internal/repository/memory"
	"digraph-be/internal/repository/unitofwork"
	"digraph-be/internal/service"
	"digraph-be/internal/websocket"
	"digraph-be/pkg/events"
	"digraph-be/pkg/flash"
	pktNats "digraph-be/pkg/nats"
	"digraph-be/pkg/pagetitle"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	TopicController  controller.ITopicController
	LinkController   controller.ILinkController
	SearchController controller.ISearchController
	UserController   controller.IUserController
	AuthController   controller.IAuthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	FlashService    *service.FlashService // nil without NATS

	// WebSockets & Flash
	FlashHandler *handler.FlashHandler
	WebSocketHub *websocket.Hub

	Logger logger.ILogger

	db      *gorm.DB
	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	flashLogger := logger.NewIsolatedLogger(cfg.App.FlashLogFilePath)
	connections := memory.NewConnectionRepository(cfg.Links.ConnectionCacheTTL)

	if cfg.Auth.JwtSecret == "" {
		log.Println("[WARN] JWT_SECRET is empty, tokens are trivially forgeable")
	}

	// 2. Job queue
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	c := &Container{Logger: sysLogger, db: db}
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. Infrastructure
	// A failed NATS connection leaves the interfaces nil so services skip
	// publishing instead of calling into a nil *Publisher.
	var eventPublisher events.Publisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPublisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	} else {
		c.closers = append(c.closers, natsSub.Close)
	}

	rdb := connectRedis(cfg.App.RedisURL)
	if rdb != nil {
		c.closers = append(c.closers, func() { rdb.Close() })
	}

	// 4. Flash delivery: polling queue plus live websocket tabs
	queue := flash.NewQueue(cfg.Flash.QueueTTL, cfg.Flash.QueueSize)
	wsHub := websocket.NewHub(rdb, flashLogger)
	messenger := flash.Fanout{queue, wsHub}
	wsHub.OnDismiss(messenger.RemoveMessage)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Links.TitleTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Links.TitleTopic,
		uowFactory,
		pagetitle.NewFetcher(cfg.Links.TitleFetchTimeout),
		eventPublisher,
		sysLogger,
	)

	topicService := service.NewTopicService(uowFactory, connections, eventPublisher, sysLogger)
	linkService := service.NewLinkService(uowFactory, connections, publisherService, eventPublisher, sysLogger)
	searchService := service.NewSearchService(nil)
	authService := service.NewAuthService(uowFactory, cfg.Auth.JwtSecret, eventPublisher, sysLogger)
	userService := service.NewUserService(uowFactory, eventPublisher, sysLogger)

	if natsSub != nil {
		c.FlashService = service.NewFlashService(natsSub, messenger, flashLogger)
	}

	// 6. Controllers
	c.TopicController = controller.NewTopicController(topicService, messenger, cfg.Auth.JwtSecret)
	c.LinkController = controller.NewLinkController(linkService, messenger, cfg.Auth.JwtSecret)
	c.SearchController = controller.NewSearchController(searchService)
	c.UserController = controller.NewUserController(userService, cfg.Auth.JwtSecret)
	c.AuthController = controller.NewAuthController(authService)
	c.FlashHandler = handler.NewFlashHandler(queue, messenger, wsHub, cfg.Auth.JwtSecret, flashLogger)
	c.WebSocketHub = wsHub
	c.ConsumerService = consumerService

	return c
}

func connectRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: url,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Flash alerts stay on this instance", err)
		rdb.Close()
		return nil
	}
	return rdb
}

// Ready reports whether the database answers a ping within a second
func (c *Container) Ready() bool {
	sqlDB, err := c.db.DB()
	if err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx) == nil
}

// Close releases the connections opened by NewContainer, newest first
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.Logger.Sync()
}
