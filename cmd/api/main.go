package main

import (
	"context"
	"os/signal"
	"syscall"

	"QuickAI/internal/ai"
	"QuickAI/internal/config"
	"QuickAI/internal/handler"
	"QuickAI/internal/model"
	"QuickAI/internal/pkg"
	"QuickAI/internal/repository/mysql"
	"QuickAI/internal/repository/redis"
	"QuickAI/internal/router"
	"QuickAI/internal/service"
	"QuickAI/internal/storage"
)

func main() {
	cfg := config.Load()
	log := pkg.NewLogger()
	pkg.SetJWTSecret(cfg.JWT.Secret)

	if err := mysql.InitDB(cfg.MySQL.DSN); err != nil {
		log.Fatal().Err(err).Msg("mysql init failed")
	}

	// 自动建表（开发阶段 OK）
	if err := mysql.DB.AutoMigrate(
		&model.Creation{},
		&model.CreationLike{},
		&model.CreationOutbox{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto migrate failed")
	}

	if err := redis.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Fatal().Err(err).Msg("redis init failed")
	}
	defer redis.Close()

	// 外部服务客户端
	chat := ai.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.BaseURL, cfg.Gemini.Model)
	image := ai.NewClipDropClient(cfg.ClipDrop.APIKey, cfg.ClipDrop.BaseURL)
	uploader, err := storage.NewCloudinaryStore(cfg.Cloudinary.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("cloudinary init failed")
	}
	mailer := pkg.NewSMTPMailer(pkg.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	// 仓储与服务
	creationRepo := &mysql.CreationRepository{DB: mysql.DB}
	likeRepo := &mysql.CreationLikeRepository{DB: mysql.DB}
	outboxRepo := &mysql.OutboxRepository{DB: mysql.DB}
	entRepo := &redis.EntitlementRepository{}

	entSvc := service.NewEntitlementService(entRepo, cfg.Quota.FreeLimit, mailer, log)
	genSvc := service.NewGenerationService(chat, image, uploader, creationRepo, entSvc, log)
	creationSvc := service.NewCreationService(creationRepo, likeRepo)

	// outbox 投递：有 broker 走 kafka，否则降级打日志
	sender := service.LogSender(log)
	if len(cfg.Kafka.Brokers) > 0 {
		producer := pkg.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	relayer := service.NewOutboxRelayer(outboxRepo, sender, log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	go relayer.Run(ctx)

	r := router.InitRouter(
		handler.NewAIHandler(genSvc, cfg.Upload.Dir, cfg.Upload.MaxSize, log),
		handler.NewCreationHandler(creationSvc),
		handler.NewBillingHandler(entSvc, cfg.Billing.Secret),
		entSvc,
		log,
	)

	log.Info().Str("port", cfg.Server.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
