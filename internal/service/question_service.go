package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/repository"
	"github.com/PriyanshVijay26/quiz-master/internal/util"
	"github.com/PriyanshVijay26/quiz-master/pkg/logger"
	"github.com/PriyanshVijay26/quiz-master/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuestionInput 同时支持 JSON 与 multipart 表单
type QuestionInput struct {
	QuizID            *uint   `json:"quiz_id" form:"quiz_id"`
	QuestionStatement *string `json:"question_statement" form:"question_statement"`
	Option1           *string `json:"option1" form:"option1"`
	Option2           *string `json:"option2" form:"option2"`
	Option3           *string `json:"option3" form:"option3"`
	Option4           *string `json:"option4" form:"option4"`
	CorrectOption     *int    `json:"correct_option" form:"correct_option"`
}

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	QuizRepo     *repository.QuizRepository
	Tx           *repository.TxManager
	Storage      *StorageService
	Cache        *CatalogCache
}

func NewQuestionService(
	questionRepo *repository.QuestionRepository,
	quizRepo *repository.QuizRepository,
	tx *repository.TxManager,
	storage *StorageService,
	cache *CatalogCache,
) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		QuizRepo:     quizRepo,
		Tx:           tx,
		Storage:      storage,
		Cache:        cache,
	}
}

func (s *QuestionService) requireQuiz(quizID uint) error {
	ok, err := s.QuizRepo.Exists(quizID)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrQuizNotFound
	}
	return nil
}

func validCorrectOption(option int) bool {
	return option >= 1 && option <= 4
}

func (s *QuestionService) List(quizID uint) ([]model.Question, error) {
	if err := s.requireQuiz(quizID); err != nil {
		return nil, err
	}
	return s.QuestionRepo.ListByQuiz(quizID)
}

func (s *QuestionService) ListCached(ctx context.Context, quizID uint) ([]model.Question, error) {
	name := fmt.Sprintf("quizzes:%d:questions", quizID)

	var questions []model.Question
	key, hit := s.Cache.Get(ctx, name, &questions)
	if hit {
		return questions, nil
	}

	questions, err := s.List(quizID)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, key, questions)
	return questions, nil
}

func (s *QuestionService) Get(quizID, id uint) (*model.Question, error) {
	question, err := s.QuestionRepo.FindInQuiz(quizID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return question, nil
}

// uploadImage 扩展名不在白名单时静默跳过，返回空字符串
func (s *QuestionService) uploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", nil
	}
	if !util.HasAllowedExtension(file.Filename, util.AllowedImageExtensions) {
		monitoring.UploadCounter.WithLabelValues("image", "skipped").Inc()
		logger.Log.Info("Question image skipped", zap.String("filename", file.Filename))
		return "", nil
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if mimeType, err := util.ValidateMimeType(src, util.AllowedImageMimeTypes); err != nil {
		if !errors.Is(err, util.ErrInvalidFileType) {
			return "", err
		}
		monitoring.UploadCounter.WithLabelValues("image", "skipped").Inc()
		logger.Log.Info("Question image skipped", zap.String("filename", file.Filename), zap.String("mimeType", mimeType))
		return "", nil
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	key := NewObjectKey(util.ImageDir, file.Filename)
	url, err := s.Storage.Upload(ctx, key, src, file.Size, util.ContentTypeFor(file.Filename))
	if err != nil {
		monitoring.UploadCounter.WithLabelValues("image", "error").Inc()
		return "", fmt.Errorf("upload image: %w", err)
	}
	monitoring.UploadCounter.WithLabelValues("image", "ok").Inc()
	return url, nil
}

// removeImage 尽力删除存储中的图片，失败只记录日志
func (s *QuestionService) removeImage(ctx context.Context, url string) {
	if url == "" {
		return
	}
	key := KeyFromURL(util.ImageDir, url)
	if err := s.Storage.Delete(ctx, key); err != nil {
		logger.Log.Warn("Failed to delete question image", zap.String("key", key), zap.Error(err))
	}
}

func (s *QuestionService) Create(ctx context.Context, quizID uint, in QuestionInput, image *multipart.FileHeader) (*model.Question, error) {
	if err := s.requireQuiz(quizID); err != nil {
		return nil, err
	}
	if in.QuestionStatement == nil || strings.TrimSpace(*in.QuestionStatement) == "" || in.CorrectOption == nil {
		return nil, util.ErrQuestionRequired
	}
	if !validCorrectOption(*in.CorrectOption) {
		return nil, util.ErrInvalidCorrectOption
	}

	question := &model.Question{
		QuizID:            quizID,
		QuestionStatement: *in.QuestionStatement,
		CorrectOption:     *in.CorrectOption,
	}
	applyOptions(question, in)

	url, err := s.uploadImage(ctx, image)
	if err != nil {
		return nil, err
	}

	err = s.Tx.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.QuestionRepo.WithTx(tx)
		if err := repo.Create(question); err != nil {
			return err
		}
		if url == "" {
			return nil
		}
		return repo.SavePhoto(&model.Photo{QuestionID: question.ID, PhotoURL: url})
	})
	if err != nil {
		s.removeImage(ctx, url)
		return nil, err
	}

	question.PhotoURL = url
	s.Cache.Invalidate(ctx)
	return question, nil
}

func applyOptions(q *model.Question, in QuestionInput) {
	if in.Option1 != nil {
		q.Option1 = *in.Option1
	}
	if in.Option2 != nil {
		q.Option2 = *in.Option2
	}
	if in.Option3 != nil {
		q.Option3 = *in.Option3
	}
	if in.Option4 != nil {
		q.Option4 = *in.Option4
	}
}

// Update 合并字段；上传新图片时覆盖已有 Photo 的地址，没有则新建
func (s *QuestionService) Update(ctx context.Context, quizID, id uint, in QuestionInput, image *multipart.FileHeader) (*model.Question, error) {
	question, err := s.Get(quizID, id)
	if err != nil {
		return nil, err
	}

	if in.QuestionStatement != nil {
		if strings.TrimSpace(*in.QuestionStatement) == "" {
			return nil, util.ErrQuestionRequired
		}
		question.QuestionStatement = *in.QuestionStatement
	}
	if in.CorrectOption != nil {
		if !validCorrectOption(*in.CorrectOption) {
			return nil, util.ErrInvalidCorrectOption
		}
		question.CorrectOption = *in.CorrectOption
	}
	applyOptions(question, in)
	if in.QuizID != nil && *in.QuizID != question.QuizID {
		if err := s.requireQuiz(*in.QuizID); err != nil {
			return nil, err
		}
		question.QuizID = *in.QuizID
	}

	url, err := s.uploadImage(ctx, image)
	if err != nil {
		return nil, err
	}

	var oldURL string
	err = s.Tx.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.QuestionRepo.WithTx(tx)
		if err := repo.Update(question); err != nil {
			return err
		}
		if url == "" {
			return nil
		}

		photo := question.Photo
		if photo == nil {
			photo = &model.Photo{QuestionID: question.ID}
		} else {
			oldURL = photo.PhotoURL
		}
		photo.PhotoURL = url
		return repo.SavePhoto(photo)
	})
	if err != nil {
		s.removeImage(ctx, url)
		return nil, err
	}

	if url != "" {
		s.removeImage(ctx, oldURL)
		question.PhotoURL = url
	}
	s.Cache.Invalidate(ctx)
	return question, nil
}

// Delete 同一事务内先删图片记录再删题目，提交后尽力删除存储文件
func (s *QuestionService) Delete(ctx context.Context, quizID, id uint) error {
	question, err := s.Get(quizID, id)
	if err != nil {
		return err
	}

	err = s.Tx.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.QuestionRepo.WithTx(tx)
		if err := repo.DeletePhotos(question.ID); err != nil {
			return err
		}
		return repo.Delete(question.ID)
	})
	if err != nil {
		return err
	}

	if question.Photo != nil {
		s.removeImage(ctx, question.Photo.PhotoURL)
	}
	s.Cache.Invalidate(ctx)
	return nil
}
