// cmd/chat-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	awsclients "support-chat-backend/internal/common/aws"
	"support-chat-backend/internal/common/config"
	"support-chat-backend/internal/common/database"
	"support-chat-backend/internal/common/logger"
	"support-chat-backend/internal/common/observability"
	"support-chat-backend/internal/chat"
	"support-chat-backend/internal/escalation"
	"support-chat-backend/internal/server"
	"support-chat-backend/internal/store"
	"support-chat-backend/internal/translate"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting chat server...")

	obs := observability.New("chat-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init AWS service clients ---
	clients, err := awsclients.NewClients(ctx, cfg.AWS.Region)
	if err != nil {
		zapLog.Fatal("aws client initialization failed", zap.Error(err))
	}
	zapLog.Info("AWS service clients initialized", zap.String("region", cfg.AWS.Region))

	// --- Wire the conversation pipeline ---
	retention := cfg.Chat.Retention()
	cache := store.NewRedisStore(redis.Client, retention)
	durable := store.NewDynamoStore(clients.DynamoDB, cfg.AWS.DynamoDB.TableName, retention)
	stores := store.NewResolver(cache, durable, log)

	gateway := chat.NewGateway(clients.QBusiness, cfg.AWS.QBusiness.ApplicationID, log)

	translateSvc := translate.NewService(clients.Translate, log)
	var translator chat.Translator
	if cfg.AWS.Translate.Enabled {
		translator = translateSvc
	}

	manager := chat.NewManager(gateway, stores, translator, cfg.Chat.DefaultLanguage, log)
	manager.SetConfidenceThreshold(cfg.Chat.ConfidenceThreshold)

	var snsAPI escalation.SNSAPI
	topicARN := ""
	if cfg.AWS.SNS.Enabled {
		snsAPI = clients.SNS
		topicARN = cfg.AWS.SNS.TopicARN
	}
	escalationSvc := escalation.NewService(clients.SES, snsAPI, escalation.Config{
		SourceEmail: cfg.AWS.SES.SourceEmail,
		HelpDesk:    cfg.AWS.SES.HelpDesk,
		CCRequester: cfg.Escalation.CCRequester,
		TopicARN:    topicARN,
	}, log)

	router := server.NewRouter(server.Dependencies{
		Manager:        manager,
		Stores:         stores,
		Escalation:     escalationSvc,
		Translate:      translateSvc,
		Obs:            obs,
		Redis:          redis,
		RequestTimeout: config.GetDuration(cfg.Server.RequestTimeout),
		Log:            log,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("Server stopped")
}
