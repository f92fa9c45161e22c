package service

import (
	"context"
	"errors"
	"runtime"

	"quiz-import/internal/config"
	"quiz-import/internal/domain"
	"quiz-import/internal/dto"
	"quiz-import/internal/parser"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// NoQuestionsWarning is attached to previews whose text yields nothing.
const NoQuestionsWarning = "no parseable questions found"

// ImportService turns quiz text into questions and appends them to quizzes.
type ImportService interface {
	Preview(ctx context.Context, text string) (*dto.ImportPreviewResponse, error)
	PreviewBatch(ctx context.Context, texts []string) ([]dto.ImportPreviewResponse, error)
	ImportIntoQuiz(ctx context.Context, quizID string, req dto.ImportQuizRequest) (*dto.ImportResultResponse, error)
	ListQuizQuestions(ctx context.Context, quizID string) (*dto.QuizQuestionsResponse, error)
}

type importServiceImpl struct {
	parser    *parser.Parser
	repo      domain.QuestionRepository
	txManager domain.TransactionManager
	drafts    DraftStore
	cfg       config.ImportConfig
	logger    *zap.Logger
}

// NewImportService creates an ImportService. drafts may be nil, in which case
// previews carry no draft id and imports accept text only.
func NewImportService(
	p *parser.Parser,
	repo domain.QuestionRepository,
	txManager domain.TransactionManager,
	drafts DraftStore,
	cfg config.ImportConfig,
	logger *zap.Logger,
) ImportService {
	if p == nil {
		p = parser.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &importServiceImpl{
		parser:    p,
		repo:      repo,
		txManager: txManager,
		drafts:    drafts,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *importServiceImpl) checkSize(text string) error {
	if s.cfg.MaxInputBytes > 0 && len(text) > s.cfg.MaxInputBytes {
		return domain.NewInputTooLargeError(len(text), s.cfg.MaxInputBytes)
	}
	return nil
}

// Preview parses text without touching the database. Non-empty results are
// kept as a draft when a draft store is configured.
func (s *importServiceImpl) Preview(ctx context.Context, text string) (*dto.ImportPreviewResponse, error) {
	if err := s.checkSize(text); err != nil {
		return nil, err
	}

	questions := s.parser.Parse(text)
	resp := &dto.ImportPreviewResponse{
		Count:     len(questions),
		Questions: dto.NewQuestionResponses(questions),
	}

	if len(questions) == 0 {
		resp.Warning = NoQuestionsWarning
		s.logger.Info("Preview found no questions", zap.Int("input_bytes", len(text)))
		return resp, nil
	}

	inferred := 0
	for _, q := range questions {
		if q.AnswerInferred {
			inferred++
		}
	}
	s.logger.Info("Preview parsed questions",
		zap.Int("input_bytes", len(text)),
		zap.Int("questions", len(questions)),
		zap.Int("answers_inferred", inferred),
	)

	if s.drafts != nil {
		draftID, err := s.drafts.Save(ctx, questions)
		if err != nil {
			// The preview is still usable; the caller can import by text.
			s.logger.Warn("Failed to store import draft", zap.Error(err))
		} else {
			resp.DraftID = draftID
		}
	}
	return resp, nil
}

// PreviewBatch previews independent texts concurrently. Results keep the
// order of texts and each text is parsed in its own session.
func (s *importServiceImpl) PreviewBatch(ctx context.Context, texts []string) ([]dto.ImportPreviewResponse, error) {
	if s.cfg.MaxBatchItems > 0 && len(texts) > s.cfg.MaxBatchItems {
		return nil, domain.ValidationErrors{domain.NewOutOfRangeError("texts", len(texts), 1, s.cfg.MaxBatchItems)}
	}
	for _, text := range texts {
		if err := s.checkSize(text); err != nil {
			return nil, err
		}
	}

	results := make([]dto.ImportPreviewResponse, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, text := range texts {
		g.Go(func() error {
			resp, err := s.Preview(gctx, text)
			if err != nil {
				return err
			}
			results[i] = *resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ImportIntoQuiz appends the questions of req to the quiz in one transaction.
// A draft is consumed only after the transaction commits.
func (s *importServiceImpl) ImportIntoQuiz(ctx context.Context, quizID string, req dto.ImportQuizRequest) (*dto.ImportResultResponse, error) {
	questions, err := s.questionsFor(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, domain.NewNoQuestionsFoundError()
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		exists, err := s.repo.QuizExists(txCtx, quizID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.NewQuizNotFoundError(quizID)
		}
		return s.repo.AppendQuestions(txCtx, quizID, questions)
	})
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		s.logger.Error("Failed to import questions", zap.String("quizID", quizID), zap.Error(err))
		return nil, domain.NewInternalError("failed to import questions", err)
	}

	if req.DraftID != "" && s.drafts != nil {
		if err := s.drafts.Delete(ctx, req.DraftID); err != nil {
			s.logger.Warn("Failed to delete consumed draft", zap.String("draftID", req.DraftID), zap.Error(err))
		}
	}

	s.logger.Info("Imported questions",
		zap.String("quizID", quizID),
		zap.Int("questions", len(questions)),
		zap.Bool("from_draft", req.DraftID != ""),
	)
	return &dto.ImportResultResponse{
		QuizID:        quizID,
		ImportedCount: len(questions),
		Questions:     dto.NewQuestionResponses(questions),
	}, nil
}

func (s *importServiceImpl) questionsFor(ctx context.Context, req dto.ImportQuizRequest) ([]domain.Question, error) {
	if req.DraftID != "" {
		if s.drafts == nil {
			return nil, domain.NewDraftNotFoundError(req.DraftID)
		}
		questions, err := s.drafts.Load(ctx, req.DraftID)
		if err != nil {
			var domainErr *domain.DomainError
			if errors.As(err, &domainErr) {
				return nil, err
			}
			return nil, domain.NewInternalError("failed to load draft", err)
		}
		return questions, nil
	}

	if err := s.checkSize(req.Text); err != nil {
		return nil, err
	}
	return s.parser.Parse(req.Text), nil
}

// ListQuizQuestions returns the stored questions of a quiz in order.
func (s *importServiceImpl) ListQuizQuestions(ctx context.Context, quizID string) (*dto.QuizQuestionsResponse, error) {
	exists, err := s.repo.QuizExists(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to check quiz", err)
	}
	if !exists {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	questions, err := s.repo.GetQuestionsByQuizID(ctx, quizID)
	if err != nil {
		s.logger.Error("Failed to list quiz questions", zap.String("quizID", quizID), zap.Error(err))
		return nil, domain.NewInternalError("failed to list questions", err)
	}
	return &dto.QuizQuestionsResponse{
		QuizID:    quizID,
		Count:     len(questions),
		Questions: dto.NewQuestionResponses(questions),
	}, nil
}
