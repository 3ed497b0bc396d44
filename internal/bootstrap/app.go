package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"raidboard/internal/app"
	"raidboard/internal/bot"
	"raidboard/internal/config"
	"raidboard/internal/index"
	"raidboard/internal/model"
	mysqlClient "raidboard/internal/platform/mysql"
	rabbitmqClient "raidboard/internal/platform/rabbitmq"
	redisClient "raidboard/internal/platform/redis"
	"raidboard/internal/recognition"
	"raidboard/internal/repository"
	"raidboard/internal/store"
	"raidboard/internal/worker"
)

type App struct {
	Config *config.Config
	Redis  *redis.Client
	MySQL  *gorm.DB
	MQConn *amqp.Connection

	Raids     store.RaidStore
	Rooms     store.KeyedSet
	Admins    *store.AdminSet
	ScanMuted store.KeyedSet

	Bosses *index.Index
	Gyms   *index.Index

	AuditPublisher *rabbitmqClient.AuditPublisher
	AuditWorker    *worker.AuditPersistWorker
	AdminService   *app.AdminService

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	a := &App{
		Config:    cfg,
		StartedAt: time.Now(),
	}

	raidTTL := time.Duration(cfg.Store.RaidTTLHours) * time.Hour

	switch cfg.Store.Backend {
	case "memory":
		a.Raids = store.NewMemoryRaidStore(raidTTL)
		a.Rooms = store.NewMemoryKeyedSet()
		a.ScanMuted = store.NewMemoryKeyedSet()
		a.Admins, err = store.NewAdminSet(ctx, store.NewMemoryKeyedSet(), cfg.Bot.SuperAdmin)
		if err != nil {
			return nil, fmt.Errorf("seed admin set failed: %w", err)
		}
	case "redis", "":
		redisCli, err := redisClient.New(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.Redis = redisCli

		a.Raids = store.NewRedisRaidStore(redisCli, raidTTL)
		a.Rooms = store.NewRedisKeyedSet(redisCli, "room")
		a.ScanMuted = store.NewRedisKeyedSet(redisCli, "scanmute")
		a.Admins, err = store.NewAdminSet(ctx, store.NewRedisKeyedSet(redisCli, "admin"), cfg.Bot.SuperAdmin)
		if err != nil {
			return nil, fmt.Errorf("seed admin set failed: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	a.Bosses = index.New("bosses")
	if cfg.Index.BossesSource != "" {
		if err := a.Bosses.Load(ctx, cfg.Index.BossesSource); err != nil {
			log.Printf("bosses index unavailable: %v", err)
		}
	}
	a.Gyms = index.New("gyms")
	if cfg.Index.GymsSource != "" {
		if err := a.Gyms.Load(ctx, cfg.Index.GymsSource); err != nil {
			log.Printf("gyms index unavailable: %v", err)
		}
	}

	// The audit pipeline is optional: without a broker URL the bot
	// runs with no durable interaction trail.
	var auditRepo *repository.AuditRepository
	if cfg.RabbitMQ.URL != "" {
		mysqlDB, err := mysqlClient.New(ctx, cfg.MySQL)
		if err != nil {
			return nil, err
		}
		if err := mysqlDB.AutoMigrate(&model.InteractionRecord{}); err != nil {
			return nil, fmt.Errorf("auto migrate tables failed: %w", err)
		}
		a.MySQL = mysqlDB

		mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ)
		if err != nil {
			return nil, err
		}
		a.MQConn = mqConn

		auditRepo = repository.NewAuditRepository(mysqlDB)
		a.AuditPublisher = rabbitmqClient.NewAuditPublisher(mqConn, cfg.RabbitMQ.AuditQueue)
		a.AuditWorker = worker.NewAuditPersistWorker(mqConn, auditRepo, cfg.RabbitMQ.AuditQueue)
		if err := a.AuditWorker.Start(ctx); err != nil {
			return nil, fmt.Errorf("start audit worker failed: %w", err)
		}
	}

	a.AdminService = app.NewAdminService(
		cfg.Admin.PasswordHash,
		cfg.Admin.JWTSecret,
		time.Duration(cfg.Admin.JWTExpireMinute)*time.Minute,
		a.Raids,
		a.Rooms,
		auditRepo,
	)

	return a, nil
}

// NewBotService builds the edit protocol handler around a chat
// transport and a recognizer supplied by the caller.
func (a *App) NewBotService(selfID int64, messenger bot.Messenger, recognizer recognition.Recognizer) *bot.Service {
	deps := bot.Deps{
		SelfID:     selfID,
		Messenger:  messenger,
		Raids:      a.Raids,
		Rooms:      a.Rooms,
		Admins:     a.Admins,
		ScanMuted:  a.ScanMuted,
		Bosses:     a.Bosses,
		Recognizer: recognizer,
	}
	if a.AuditPublisher != nil {
		deps.Audit = a.AuditPublisher
	}
	return bot.New(deps)
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.AuditWorker != nil {
		a.AuditWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
