package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"petcuidado/config"
	"petcuidado/internal/pkg/cache"
	"petcuidado/internal/pkg/database"
	"petcuidado/internal/pkg/logger"
	"petcuidado/internal/pkg/token"

	"petcuidado/internal/api/auth"
	"petcuidado/internal/api/consulta"
	"petcuidado/internal/api/dashboard"
	"petcuidado/internal/api/exame"
	"petcuidado/internal/api/pet"
	"petcuidado/internal/api/prescricao"
	"petcuidado/internal/api/router"
	"petcuidado/internal/api/vacina"
	"petcuidado/internal/repository/consultarepo"
	"petcuidado/internal/repository/dashboardrepo"
	"petcuidado/internal/repository/examerepo"
	"petcuidado/internal/repository/perfilrepo"
	"petcuidado/internal/repository/petrepo"
	"petcuidado/internal/repository/prescricaorepo"
	"petcuidado/internal/repository/vacinarepo"
	"petcuidado/internal/service/authservice"
	"petcuidado/internal/service/consultaservice"
	"petcuidado/internal/service/dashboardservice"
	"petcuidado/internal/service/exameservice"
	"petcuidado/internal/service/petservice"
	"petcuidado/internal/service/prescricaoservice"
	"petcuidado/internal/service/vacinaservice"
)

// @title PetCuidado API
// @version 1.0
// @description API de acompanhamento veterinário: mascotas, consultas, vacinas, prescrições e exames.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @BasePath /v1
func main() {
	// O godotenv.Load() procura por um arquivo .env na raiz; a ausência dele
	// não é fatal, pois as variáveis podem vir do ambiente (ex: Docker).
	if err := godotenv.Load(); err != nil {
		log.Println("Aviso: arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", nil)

	// 1. Infraestrutura

	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	log.Info("Cliente Redis inicializado.", nil)

	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)

	// 2. Injeção de dependências: Repository -> Service -> Handler

	perfilRepo := perfilrepo.NewProfileRepository(db, cacheClient, cfg.DBTimeout, log)
	petRepo := petrepo.NewPetRepository(db, cfg.DBTimeout, log)
	consultaRepo := consultarepo.NewConsultaRepository(db, cfg.DBTimeout, log)
	vacinaRepo := vacinarepo.NewVacinaRepository(db, cfg.DBTimeout, log)
	prescricaoRepo := prescricaorepo.NewPrescricaoRepository(db, cfg.DBTimeout, log)
	exameRepo := examerepo.NewExameRepository(db, cfg.DBTimeout, log)
	dashboardRepo := dashboardrepo.NewDashboardRepository(db, cfg.DBTimeout, log)

	authSvc := authservice.NewService(perfilRepo, tokenSvc, cacheClient, log)
	petSvc := petservice.NewService(petRepo, log)
	consultaSvc := consultaservice.NewService(consultaRepo, log)
	vacinaSvc := vacinaservice.NewService(vacinaRepo, log)
	prescricaoSvc := prescricaoservice.NewService(prescricaoRepo, log)
	exameSvc := exameservice.NewService(exameRepo, log)
	dashboardSvc := dashboardservice.NewService(dashboardRepo, log)

	handlers := router.Handlers{
		Auth:       auth.NewHandler(authSvc, log),
		Pet:        pet.NewHandler(petSvc, log),
		Consulta:   consulta.NewHandler(consultaSvc, log),
		Vacina:     vacina.NewHandler(vacinaSvc, log),
		Prescricao: prescricao.NewHandler(prescricaoSvc, log),
		Exame:      exame.NewHandler(exameSvc, log),
		Dashboard:  dashboard.NewHandler(dashboardSvc, log),
	}

	// 3. Roteador e servidor

	r := router.NewRouter(handlers, router.Deps{
		TokenService:         tokenSvc,
		CacheClient:          cacheClient,
		RateLimitMaxRequests: cfg.RateLimitMaxRequests,
		RateLimitPeriod:      cfg.RateLimitPeriod,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 4. Execução e graceful shutdown

	go func() {
		log.Info("Servidor PetCuidado ouvindo.", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
