package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func main() {
	godotenv.Load()
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal().Err(err).Msg("falha ao conectar no banco")
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("falha ao conectar no RabbitMQ")
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	historyRepo := database.NewHistoryRepository(db)

	// 2. Producer e Worker (feed de atividade do dashboard)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	worker := queue.NewWorker(rabbitMQ.Ch)
	go worker.Start(queue.QueueName)

	// 3. UseCases
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, historyRepo, producer)
	updateLeadUC := usecase.NewUpdateLeadUseCase(leadRepo, historyRepo)
	moveStageUC := usecase.NewMoveStageUseCase(leadRepo, leadRepo, producer)
	confirmPaymentUC := usecase.NewConfirmPaymentUseCase(leadRepo, leadRepo, producer)
	addNoteUC := usecase.NewAddNoteUseCase(historyRepo)

	// 4. Handlers
	leadHandler := handlers.NewLeadHandler(createLeadUC, updateLeadUC, moveStageUC, confirmPaymentUC, addNoteUC)
	boardHandler := handlers.NewBoardHandler(leadRepo)
	historyHandler := handlers.NewHistoryHandler(historyRepo, leadRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 5. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	// Rotas do funil exigem ator autenticado
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(os.Getenv("JWT_SECRET")))

		r.Post("/leads", leadHandler.HandleCreate)
		r.Patch("/leads/{id}", leadHandler.HandleUpdate)
		r.Post("/leads/{id}/move", leadHandler.HandleMove)
		r.Post("/leads/{id}/closing", leadHandler.HandleConfirmClosing)
		r.Post("/leads/{id}/confirm-payment", leadHandler.HandleConfirmPayment)
		r.Post("/leads/{id}/notes", leadHandler.HandleAddNote)
		r.Get("/leads/{id}/history", historyHandler.HandleGetHistory)
		r.Get("/board", boardHandler.HandleGetBoard)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("🔥 Server LigueCRM rodando")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal().Err(err).Msg("servidor caiu")
	}
}
