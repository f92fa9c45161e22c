package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"quiz-import/cmd/seed_initial_data/internal/seedmodels"
	"quiz-import/internal/config"
	"quiz-import/internal/database"
	"quiz-import/internal/domain"
	"quiz-import/internal/logger"
	"quiz-import/internal/parser"
	"quiz-import/internal/repository"
	"quiz-import/internal/util"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const defaultSeedFilePath = "config/seed/sample_quizzes.yaml"

type seeder struct {
	quizzes   domain.QuizRepository
	questions domain.QuestionRepository
	txManager domain.TransactionManager
	parser    *parser.Parser
	log       *zap.Logger
}

func main() {
	seedFilePath := flag.String("file", defaultSeedFilePath, "seed file path")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Loading seed data from file", zap.String("path", *seedFilePath))
	seed, err := loadSeedFile(*seedFilePath)
	if err != nil {
		log.Fatal("Failed to load seed file", zap.Error(err))
	}

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	s := &seeder{
		quizzes:   repository.NewQuizDatabaseAdapter(db),
		questions: repository.NewQuestionDatabaseAdapter(db),
		txManager: repository.NewTransactionManagerAdapter(db),
		parser:    parser.New(),
		log:       log,
	}
	for _, sq := range seed.Quizzes {
		if err := s.seedQuiz(ctx, sq); err != nil {
			log.Error("Error seeding quiz, transaction rolled back", zap.String("quiz", sq.Title), zap.Error(err))
		}
	}
	log.Info("Initial data seeding process completed.")
}

func loadSeedFile(path string) (*seedmodels.SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed seedmodels.SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	for i, sq := range seed.Quizzes {
		if !util.IsULID(sq.ID) {
			return nil, fmt.Errorf("seed quiz %d: id %q is not a ULID", i+1, sq.ID)
		}
	}
	return &seed, nil
}

// seedQuiz creates the quiz when missing and imports its questions when the
// quiz has none yet, so running the seeder twice changes nothing.
func (s *seeder) seedQuiz(ctx context.Context, sq seedmodels.SeedQuiz) error {
	return s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.quizzes.GetQuizByID(ctx, sq.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			if err := s.quizzes.CreateQuiz(ctx, &domain.Quiz{ID: sq.ID, Title: sq.Title}); err != nil {
				return err
			}
			s.log.Info("Created quiz", zap.String("id", sq.ID), zap.String("title", sq.Title))
		}

		next, err := s.questions.NextPosition(ctx, sq.ID)
		if err != nil {
			return err
		}
		if next > 1 {
			s.log.Info("Quiz already has questions, skipping", zap.String("id", sq.ID))
			return nil
		}

		questions := s.parser.Parse(sq.Questions)
		if len(questions) == 0 {
			s.log.Warn("Seed quiz has no parsable questions", zap.String("id", sq.ID))
			return nil
		}
		if err := s.questions.AppendQuestions(ctx, sq.ID, questions); err != nil {
			return err
		}
		s.log.Info("Seeded questions", zap.String("id", sq.ID), zap.Int("count", len(questions)))
		return nil
	})
}
