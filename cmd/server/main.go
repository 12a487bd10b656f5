package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/VitaminP8/articlery/internal/api"
	"github.com/VitaminP8/articlery/internal/article"
	"github.com/VitaminP8/articlery/internal/config"
	"github.com/VitaminP8/articlery/internal/engagement"
	"github.com/VitaminP8/articlery/internal/storage/memory"
	"github.com/VitaminP8/articlery/internal/storage/postgres"
	"github.com/VitaminP8/articlery/internal/subscription"
	"github.com/VitaminP8/articlery/internal/user"
	"github.com/VitaminP8/articlery/models"
	"github.com/VitaminP8/articlery/pkg/logger"
)

func main() {
	storageType := flag.String("storage", "memory", "Тип хранилища: memory или postgres")
	flag.Parse()

	// загружаем .env из нашего config.go
	config.LoadEnv()

	log := logger.New()

	var articleStore article.ArticleStorage
	var userStore user.UserStorage

	switch *storageType {
	case "postgres":
		if err := postgres.InitDB(); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		err := postgres.DB.AutoMigrate(&models.User{}, &models.Article{}).Error
		if err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}

		log.Info().Msg("Используется PostgreSQL хранилище")
		articleStore = postgres.NewArticlePostgresStorage()
		userStore = postgres.NewUserPostgresStorage()

	case "memory":
		log.Info().Msg("Используется in-memory хранилище")
		articleStore = memory.NewArticleMemoryStorage()
		userStore = memory.NewUserMemoryStorage()

	default:
		log.Fatal().Msgf("неизвестный тип хранилища: %s", *storageType)
	}

	manager := subscription.NewSubscriptionManager()
	service := engagement.NewService(articleStore, manager)

	router := api.NewRouter(articleStore, userStore, service, manager, log)

	port := config.GetEnvOrDefault("PORT", "8080")
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// запуск HTTP сервера
	go func() {
		log.Info().Msgf("Сервер запущен на http://localhost:%s/", port)
		// строка не возвращается (блокирует поток) пока не выполнится server.Shutdown() или не произойдет фатальная ошибка
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Ошибка сервера")
		}
	}()

	// Ожидание SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // ждет сигнал

	log.Info().Msg("Завершение...")

	if *storageType == "postgres" {
		if err := postgres.CloseDB(); err != nil {
			log.Error().Err(err).Msg("Ошибка при закрытии базы данных")
		}
	}

	if err := server.Shutdown(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Ошибка при завершении сервера")
	}

	log.Info().Msg("Сервер остановлен корректно")
}
