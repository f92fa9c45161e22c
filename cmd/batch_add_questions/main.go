package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"quiz-import/internal/config"
	"quiz-import/internal/database"
	"quiz-import/internal/domain"
	"quiz-import/internal/dto"
	"quiz-import/internal/logger"
	"quiz-import/internal/parser"
	"quiz-import/internal/repository"
	"quiz-import/internal/service"
	"quiz-import/internal/util"
	"quiz-import/internal/validation"

	"go.uber.org/zap"
)

// questionImporter is the part of service.ImportService this command needs.
type questionImporter interface {
	ImportIntoQuiz(ctx context.Context, quizID string, req dto.ImportQuizRequest) (*dto.ImportResultResponse, error)
}

func main() {
	quizID := flag.String("quiz", "", "ID of the quiz the questions are appended to")
	dir := flag.String("dir", "", "directory of .txt files to import (files given as arguments are imported too)")
	flag.Parse()

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

	if !util.IsULID(*quizID) {
		log.Fatal("A valid quiz ID is required", zap.String("quiz", *quizID))
	}

	paths, err := collectFiles(*dir, flag.Args())
	if err != nil {
		log.Fatal("Failed to collect input files", zap.Error(err))
	}
	if len(paths) == 0 {
		log.Fatal("No .txt files to import")
	}

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	importSvc := service.NewImportService(
		parser.New(),
		repository.NewQuestionDatabaseAdapter(db),
		repository.NewTransactionManagerAdapter(db),
		nil,
		cfg.Import,
		log,
	)

	imported, err := importFiles(context.Background(), importSvc, *quizID, paths, log)
	if err != nil {
		log.Fatal("Batch import failed", zap.Error(err), zap.Int("imported", imported))
	}
	log.Info("Batch import completed", zap.String("quiz_id", *quizID), zap.Int("imported", imported))
}

// collectFiles returns the .txt files of dir, sorted by name, followed by the
// explicitly given files in argument order.
func collectFiles(dir string, args []string) ([]string, error) {
	var paths []string
	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", dir, err)
		}
		for _, e := range entries {
			if !e.IsDir() && validation.IsTextFile(e.Name()) {
				paths = append(paths, filepath.Join(dir, e.Name()))
			}
		}
		sort.Strings(paths)
	}
	for _, a := range args {
		if !validation.IsTextFile(a) {
			return nil, domain.NewUnsupportedFileError(a)
		}
		paths = append(paths, a)
	}
	return paths, nil
}

// importFiles appends each file to the quiz in order, one transaction per
// file. Files without questions are skipped; any other error stops the run.
func importFiles(ctx context.Context, svc questionImporter, quizID string, paths []string, log *zap.Logger) (int, error) {
	total := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return total, fmt.Errorf("read %s: %w", path, err)
		}

		res, err := svc.ImportIntoQuiz(ctx, quizID, dto.ImportQuizRequest{Text: string(data)})
		if err != nil {
			var domainErr *domain.DomainError
			if errors.As(err, &domainErr) && domainErr.Code == domain.CodeNoQuestionsFound {
				log.Warn("No questions found, skipping file", zap.String("file", path))
				continue
			}
			return total, fmt.Errorf("import %s: %w", path, err)
		}
		total += res.ImportedCount
		log.Info("Imported file", zap.String("file", path), zap.Int("questions", res.ImportedCount))
	}
	return total, nil
}
