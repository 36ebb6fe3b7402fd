package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz-attempt-service/internal/app"
	"quiz-attempt-service/internal/config"
	"quiz-attempt-service/internal/domain"
	"quiz-attempt-service/internal/infra/memory"
	pginfra "quiz-attempt-service/internal/infra/postgres"
	redisinfra "quiz-attempt-service/internal/infra/redis"
	transport "quiz-attempt-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz attempt server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 30*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.QuestionLoader
	switch {
	case pool != nil && cfg.Questions.Set != "":
		loader = pginfra.NewQuestionLoader(pool, cfg.Questions.Set)
	case cfg.Questions.File != "":
		loader = memory.NewFileLoader(cfg.Questions.File)
	default:
		loader = memory.NewStaticLoader(sampleQuestions())
	}

	questionTTL := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)
	var questionRepo app.QuestionRepository
	if redisClient != nil {
		questionRepo = redisinfra.NewQuestionCache(redisClient, loader, questionTTL)
	} else {
		questionRepo = memory.NewQuestionRepository(loader, questionTTL)
	}

	var scores app.ScoreStore
	switch {
	case pool != nil:
		scores = pginfra.NewScoreStore(pool)
	case cfg.Scores.Memory:
		scores = memory.NewScoreStore()
	default:
		// Mirrors the unconfigured-backing-store state: results still show,
		// the leaderboard reports unavailable.
		scores = memory.NewUnconfiguredScoreStore()
	}

	var sessions app.SessionStore
	if redisClient != nil {
		sessions = redisinfra.NewAttemptStore(redisClient, redisTTL)
	} else {
		sessions = memory.NewAttemptStore()
	}

	service := app.NewAttemptService(sessions, questionRepo, scores, cfg.Leaderboard.Size)
	handler := transport.NewHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", handler.ServeWS)
	mux.HandleFunc("/leaderboard", handler.ServeLeaderboard)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz attempt service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuestions keeps the service runnable with no question source
// configured; swap in a questions file or a Postgres set for real use.
func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:          1,
			Prompt:      "Which organ secretes insulin?",
			Kind:        domain.KindSingle,
			Options:     []string{"Liver", "Pancreas", "Spleen", "Kidney"},
			AnswerIndex: 1,
		},
		{
			ID:         2,
			Prompt:     "Hypoxia is a shortage of oxygen in the tissues.",
			Kind:       domain.KindBoolean,
			AnswerBool: true,
		},
		{
			ID:          3,
			Prompt:      "Which of these is a sign of inflammation?",
			Kind:        domain.KindSingle,
			Options:     []string{"Pallor", "Redness", "Bradycardia"},
			AnswerIndex: 1,
		},
	}
}
