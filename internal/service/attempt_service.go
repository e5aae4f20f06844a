package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/PriyanshVijay26/quiz-master/internal/config"
	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/repository"
	"github.com/PriyanshVijay26/quiz-master/internal/util"
	"github.com/PriyanshVijay26/quiz-master/pkg/logger"
	"github.com/PriyanshVijay26/quiz-master/pkg/monitoring"
	"github.com/PriyanshVijay26/quiz-master/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SubmitScoreInput 分数字段使用指针，0 分是合法提交
type SubmitScoreInput struct {
	QuizID       *uint   `json:"quiz_id"`
	TotalScored  *int    `json:"total_scored"`
	TotalMarks   *int    `json:"total_marks"`
	Remarks      *string `json:"remarks"`
	TabChanges   *int    `json:"tab_changes"`
	TimeTook     *string `json:"time_took"`
	DurationQuiz *string `json:"duration_quiz"`
}

type QuizAccess struct {
	QuizID        uint `json:"quiz_id"`
	CanStart      bool `json:"can_start"`
	CanViewResult bool `json:"can_view_result"`
}

type AttemptService struct {
	ScoreRepo *repository.ScoreRepository
	QuizRepo  *repository.QuizRepository
	Tx        *repository.TxManager
	Storage   *StorageService
	Cfg       *config.Config
}

func NewAttemptService(
	scoreRepo *repository.ScoreRepository,
	quizRepo *repository.QuizRepository,
	tx *repository.TxManager,
	storage *StorageService,
	cfg *config.Config,
) *AttemptService {
	return &AttemptService{
		ScoreRepo: scoreRepo,
		QuizRepo:  quizRepo,
		Tx:        tx,
		Storage:   storage,
		Cfg:       cfg,
	}
}

func (s *AttemptService) findQuiz(quizID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

func (s *AttemptService) findScore(userID, quizID uint) (*model.Score, error) {
	score, err := s.ScoreRepo.FindByUserAndQuiz(userID, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrScoreNotFound
		}
		return nil, err
	}
	return score, nil
}

// Access 未作答可开始，已作答只能查看结果
func (s *AttemptService) Access(userID, quizID uint) (*QuizAccess, error) {
	if _, err := s.findQuiz(quizID); err != nil {
		return nil, err
	}

	attempted, err := s.ScoreRepo.ExistsForUserAndQuiz(userID, quizID)
	if err != nil {
		return nil, err
	}
	return &QuizAccess{
		QuizID:        quizID,
		CanStart:      !attempted,
		CanViewResult: attempted,
	}, nil
}

func (s *AttemptService) Submit(ctx context.Context, userID uint, in SubmitScoreInput) (*model.Score, error) {
	ctx, span := tracing.StartSpan(ctx, "attempt.submit")
	defer span.End()

	if in.QuizID == nil || in.TotalScored == nil {
		return nil, util.ErrScoreRequired
	}
	span.SetAttributes(attribute.Int64("quiz.id", int64(*in.QuizID)))

	quiz, err := s.findQuiz(*in.QuizID)
	if err != nil {
		return nil, err
	}

	score := &model.Score{
		UserID:             userID,
		QuizID:             quiz.ID,
		TimeStampOfAttempt: time.Now().UTC(),
		TotalScored:        *in.TotalScored,
		DurationQuiz:       quiz.TimeDuration,
	}
	if in.TotalMarks != nil {
		score.TotalMarks = *in.TotalMarks
	}
	if in.Remarks != nil {
		score.Remarks = *in.Remarks
	}
	if in.TabChanges != nil {
		score.TabChanges = *in.TabChanges
	}
	if in.TimeTook != nil {
		score.TimeTook = *in.TimeTook
	}
	if in.DurationQuiz != nil {
		score.DurationQuiz = *in.DurationQuiz
	}

	err = s.Tx.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.ScoreRepo.WithTx(tx)
		attempted, err := repo.ExistsForUserAndQuiz(userID, quiz.ID)
		if err != nil {
			return err
		}
		if attempted {
			return util.ErrQuizAlreadyAttempted
		}
		return repo.Create(score)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, util.ErrQuizAlreadyAttempted
	}
	if err != nil {
		return nil, err
	}

	monitoring.ScoresSubmitted.Inc()
	logger.Log.Info("Quiz attempt submitted",
		zap.Uint("userId", userID),
		zap.Uint("quizId", quiz.ID),
		zap.Int("totalScored", score.TotalScored),
		zap.Int("tabChanges", score.TabChanges),
	)
	return score, nil
}

// AttachRecordings 上传录屏并追加到作答记录，也接受外部托管的地址
func (s *AttemptService) AttachRecordings(ctx context.Context, userID, quizID uint, files []*multipart.FileHeader, externalURLs []string) (*model.Score, error) {
	ctx, span := tracing.StartSpan(ctx, "attempt.recordings")
	defer span.End()
	span.SetAttributes(attribute.Int("recording.files", len(files)))

	if _, err := s.findScore(userID, quizID); err != nil {
		return nil, err
	}

	var urls []string
	for _, u := range externalURLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	var uploaded []string
	for _, file := range files {
		url, err := s.uploadRecording(ctx, file)
		if err != nil {
			s.removeRecordings(ctx, uploaded)
			return nil, err
		}
		if url != "" {
			uploaded = append(uploaded, url)
		}
	}
	urls = append(urls, uploaded...)
	if len(urls) == 0 {
		return nil, util.ErrRecordingRequired
	}

	var score *model.Score
	err := s.Tx.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.ScoreRepo.WithTx(tx)
		current, err := repo.FindByUserAndQuiz(userID, quizID)
		if err != nil {
			return err
		}
		current.RecordingURL = append(current.RecordingURL, urls...)
		if err := repo.UpdateRecordings(current.ID, current.RecordingURL); err != nil {
			return err
		}
		score = current
		return nil
	})
	if err != nil {
		s.removeRecordings(ctx, uploaded)
		return nil, err
	}
	return score, nil
}

// removeRecordings 回收本次已上传但未能记录的录屏，失败只记录日志
func (s *AttemptService) removeRecordings(ctx context.Context, urls []string) {
	for _, url := range urls {
		key := KeyFromURL(util.RecordingDir, url)
		if err := s.Storage.Delete(ctx, key); err != nil {
			logger.Log.Warn("Failed to delete recording", zap.String("key", key), zap.Error(err))
		}
	}
}

func (s *AttemptService) uploadRecording(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if !util.HasAllowedExtension(file.Filename, util.AllowedRecordingExtensions) {
		monitoring.UploadCounter.WithLabelValues("recording", "skipped").Inc()
		logger.Log.Info("Recording skipped", zap.String("filename", file.Filename))
		return "", nil
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if mimeType, err := util.ValidateMimeType(src, util.AllowedRecordingMimeTypes); err != nil {
		if !errors.Is(err, util.ErrInvalidFileType) {
			return "", err
		}
		monitoring.UploadCounter.WithLabelValues("recording", "skipped").Inc()
		logger.Log.Info("Recording skipped", zap.String("filename", file.Filename), zap.String("mimeType", mimeType))
		return "", nil
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	key := NewObjectKey(util.RecordingDir, file.Filename)
	url, err := s.Storage.Upload(ctx, key, src, file.Size, util.ContentTypeFor(file.Filename))
	if err != nil {
		monitoring.UploadCounter.WithLabelValues("recording", "error").Inc()
		return "", fmt.Errorf("upload recording: %w", err)
	}
	monitoring.UploadCounter.WithLabelValues("recording", "ok").Inc()

	if s.Cfg != nil && s.Cfg.Recording.Probe {
		s.probe(key)
	}
	return url, nil
}

// probe 仅记录日志，ffprobe 不可用时不影响上传
func (s *AttemptService) probe(key string) {
	path, ok := s.Storage.LocalPath(key)
	if !ok {
		return
	}
	info, err := util.ProbeMedia(path)
	if err != nil {
		logger.Log.Warn("Recording probe failed", zap.String("key", key), zap.Error(err))
		return
	}
	logger.Log.Info("Recording stored",
		zap.String("key", key),
		zap.Float64("duration", info.Duration),
		zap.Int("width", info.Width),
		zap.Int("height", info.Height),
		zap.String("format", info.Format),
	)
}

func (s *AttemptService) Result(userID, quizID uint) (*model.Score, error) {
	return s.findScore(userID, quizID)
}

func (s *AttemptService) ListMine(userID uint) ([]model.Score, error) {
	return s.ScoreRepo.ListByUser(userID)
}

func (s *AttemptService) ListAll(filter repository.ScoreFilter) ([]model.Score, error) {
	return s.ScoreRepo.List(filter)
}

func (s *AttemptService) Get(id uint) (*model.Score, error) {
	score, err := s.ScoreRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrScoreNotFound
		}
		return nil, err
	}
	return score, nil
}

func (s *AttemptService) Flag(ctx context.Context, id uint, flagged bool) (*model.Score, error) {
	score, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	repo := s.ScoreRepo.WithTx(s.ScoreRepo.DB.WithContext(ctx))
	if err := repo.SetFlagged(id, flagged); err != nil {
		return nil, err
	}
	score.Flagged = flagged

	monitoring.ScoresFlagged.WithLabelValues(fmt.Sprintf("%t", flagged)).Inc()
	logger.Log.Info("Score flag changed", zap.Uint("scoreId", id), zap.Bool("flagged", flagged))
	return score, nil
}
