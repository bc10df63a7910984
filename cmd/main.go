package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"file-sharing-server/config"
	_ "file-sharing-server/docs"
	"file-sharing-server/internal/handler"
	"file-sharing-server/internal/repository"
	"file-sharing-server/internal/security"
	"file-sharing-server/internal/service"
	"file-sharing-server/internal/util"
)

type limiters struct {
	sensitive func(http.Handler) http.Handler
	regular   func(http.Handler) http.Handler
}

// @title File-sharing-server
// @version 1.0
// @description REST API для хранения файлов и совместного доступа к ним

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger, err := util.InitLogger(cfg.Logger.Level, cfg.Logger.Development)
	if err != nil {
		log.Fatalf("Ошибка создания логгера: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		logger.Fatal("Не удалось подключиться к БД", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("Ошибка при закрытии БД", zap.Error(err))
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		logger.Fatal("Ошибка подключения к Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("Ошибка при закрытии Redis", zap.Error(err))
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	jwtRepo := repository.NewJWTRepository(db)
	fileRepo := repository.NewFileRepository(db)
	grantRepo := repository.NewGrantRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, cfg.TTL.FileCacheTTL())
	counterCache := repository.NewRedisCounterCache(redisClient.Client)

	blobStore, err := repository.NewS3BlobStore(ctx, &cfg.S3Config)
	if err != nil {
		logger.Fatal("Ошибка создания S3 хранилища", zap.Error(err))
	}

	resolver := service.NewPermissionResolver(db, fileRepo, grantRepo, blobStore, cfg.TTL.CredentialTTL(), cfg.S3Config.BlobTimeout())
	coordinator := service.NewSharingCoordinator(db, fileRepo, grantRepo, userRepo, teamRepo)
	policy := service.NewUploadPolicy(cfg.Upload.MaxBytes, cfg.Upload.AllowedTypes)
	fileService := service.NewFileService(db, fileRepo, cacheRepo, blobStore, resolver, coordinator, grantRepo, policy)
	teamService := service.NewTeamService(db, teamRepo, userRepo, fileRepo, coordinator)

	jwtService := security.NewJWTService(&cfg.JWT)
	userService := service.NewUserService(db, userRepo, teamRepo, coordinator, jwtService, jwtRepo, &cfg.Admin)
	authService := service.NewAuthenticationService(db, jwtRepo, &cfg.JWT, jwtService, userRepo)

	authHandler := handler.NewAuthenticationHandler(authService, jwtService, []byte(cfg.JWT.SecretKey))
	userHandler := handler.NewUserHandler(userService)
	fileHandler := handler.NewFileHandler(fileService)
	teamHandler := handler.NewTeamHandler(teamService)

	window := cfg.RateLimit.WindowDuration()
	limit := limiters{
		sensitive: security.RateLimit(service.NewAdmissionController(counterCache, service.AdmissionSensitive, cfg.RateLimit.SensitiveLimit, window)),
		regular:   security.RateLimit(service.NewAdmissionController(counterCache, service.AdmissionDefault, cfg.RateLimit.DefaultLimit, window)),
	}
	authenticate := security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtRepo, jwtService, cfg.Admin.AdminToken)

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(security.RequestLogger(logger))
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupAuthRoutes(router, authHandler, authenticate, limit)
	setupUserRoutes(router, userHandler, authenticate, limit)
	setupFileRoutes(router, fileHandler, authenticate, limit, policy.MaxBytes())
	setupTeamRoutes(router, teamHandler, authenticate, limit)

	runServer(ctx, srv, logger)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler, authenticate func(http.Handler) http.Handler, limit limiters) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(limit.regular)
			r.Get("/me", h.GetCurrentUsersUUID)
			r.Head("/me", h.GetCurrentUsersUUID)
		})
		r.Group(func(r chi.Router) {
			r.Use(limit.sensitive)
			r.Post("/", h.Login)
			r.Post("/refresh", h.RefreshToken)
			r.Delete("/{token}", h.Logout)
		})
	})
}

func setupUserRoutes(r chi.Router, h *handler.UserHandler, authenticate func(http.Handler) http.Handler, limit limiters) {
	r.With(limit.sensitive).Post("/api/register", h.RegisterUser)

	r.Route("/api/users", func(r chi.Router) {
		r.Use(authenticate)

		r.With(limit.regular).Get("/", h.ListUsers)

		r.Route("/{uuid}", func(r chi.Router) {
			r.With(limit.regular).Get("/", h.GetUser)
			r.With(limit.regular).Head("/", h.GetUserHead)
			r.With(limit.sensitive).Put("/", h.UpdateUser)
			r.With(limit.sensitive).Put("/password", h.UpdatePassword)
			r.With(limit.sensitive).Delete("/", h.DeleteUser)
		})
	})
}

func setupFileRoutes(r chi.Router, h *handler.FileHandler, authenticate func(http.Handler) http.Handler, limit limiters, maxUpload int64) {
	r.Route("/api/files", func(r chi.Router) {
		r.With(limit.regular).Get("/permissions", h.ListPermissionLevels)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.With(limit.regular).Get("/", h.ListFiles)
			r.With(limit.sensitive, security.UploadGuard(maxUpload)).Post("/", h.UploadFile)

			r.Route("/{id}", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(limit.regular)
					r.Get("/", h.GetFile)
					r.Get("/permission", h.GetPermission)
					r.Get("/grants", h.ListGrants)
				})
				r.Group(func(r chi.Router) {
					r.Use(limit.sensitive)
					r.With(security.UploadGuard(maxUpload)).Put("/", h.UpdateFile)
					r.Delete("/", h.DeleteFile)
					r.Post("/share", h.ShareFile)
					r.Post("/revoke", h.RevokeAccess)
				})
			})
		})
	})
}

func setupTeamRoutes(r chi.Router, h *handler.TeamHandler, authenticate func(http.Handler) http.Handler, limit limiters) {
	r.Route("/api/teams", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(limit.regular)

		r.Get("/", h.ListTeams)
		r.Post("/", h.CreateTeam)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetTeam)
			r.Patch("/", h.UpdateTeam)
			r.Delete("/", h.DeleteTeam)
			r.Get("/files", h.ListTeamFiles)
			r.Post("/members", h.AddMember)
			r.Delete("/members/{user}", h.RemoveMember)
		})
	})
}

func runServer(ctx context.Context, server *http.Server, logger *zap.Logger) {
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("сервер запущен", zap.String("addr", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("ошибка работы сервера", zap.Error(err))
		}
	case sig := <-signalChannel:
		logger.Info("получен сигнал остановки работы сервера", zap.String("signal", sig.String()))
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		logger.Error("ошибка при остановке сервера", zap.Error(err))
	} else {
		logger.Info("Сервер успешно остановлен")
	}
}
