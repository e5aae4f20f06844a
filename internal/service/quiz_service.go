package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/repository"
	"github.com/PriyanshVijay26/quiz-master/internal/util"

	"gorm.io/gorm"
)

type QuizInput struct {
	ChapterID    *uint   `json:"chapter_id"`
	DateOfQuiz   *string `json:"date_of_quiz"`
	TimeDuration *string `json:"time_duration"`
	Remarks      *string `json:"remarks"`
}

type QuizService struct {
	QuizRepo    *repository.QuizRepository
	ChapterRepo *repository.ChapterRepository
	Cache       *CatalogCache
}

func NewQuizService(quizRepo *repository.QuizRepository, chapterRepo *repository.ChapterRepository, cache *CatalogCache) *QuizService {
	return &QuizService{
		QuizRepo:    quizRepo,
		ChapterRepo: chapterRepo,
		Cache:       cache,
	}
}

func (s *QuizService) requireChapter(chapterID uint) error {
	ok, err := s.ChapterRepo.Exists(chapterID)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrChapterNotFound
	}
	return nil
}

func (s *QuizService) List(chapterID uint) ([]model.Quiz, error) {
	if err := s.requireChapter(chapterID); err != nil {
		return nil, err
	}
	return s.QuizRepo.ListByChapter(chapterID)
}

func (s *QuizService) ListCached(ctx context.Context, chapterID uint) ([]model.Quiz, error) {
	name := fmt.Sprintf("chapters:%d:quizzes", chapterID)

	var quizzes []model.Quiz
	key, hit := s.Cache.Get(ctx, name, &quizzes)
	if hit {
		return quizzes, nil
	}

	quizzes, err := s.List(chapterID)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, key, quizzes)
	return quizzes, nil
}

func (s *QuizService) Get(chapterID, id uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindInChapter(chapterID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

// Create 先校验时长再校验日期：时长格式错误时总是返回时长相关的提示
func (s *QuizService) Create(ctx context.Context, chapterID uint, in QuizInput) (*model.Quiz, error) {
	if err := s.requireChapter(chapterID); err != nil {
		return nil, err
	}

	if in.TimeDuration == nil {
		return nil, util.ErrInvalidQuizDuration
	}
	duration, err := util.NormalizeQuizDuration(*in.TimeDuration)
	if err != nil {
		return nil, err
	}

	if in.DateOfQuiz == nil {
		return nil, util.ErrInvalidQuizDate
	}
	date, err := util.ParseQuizDate(*in.DateOfQuiz)
	if err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		ChapterID:    chapterID,
		DateOfQuiz:   date,
		TimeDuration: duration,
	}
	if in.Remarks != nil {
		quiz.Remarks = *in.Remarks
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx)
	return quiz, nil
}

func (s *QuizService) Update(ctx context.Context, chapterID, id uint, in QuizInput) (*model.Quiz, error) {
	quiz, err := s.Get(chapterID, id)
	if err != nil {
		return nil, err
	}

	if in.TimeDuration != nil {
		duration, err := util.NormalizeQuizDuration(*in.TimeDuration)
		if err != nil {
			return nil, err
		}
		quiz.TimeDuration = duration
	}
	if in.DateOfQuiz != nil {
		date, err := util.ParseQuizDate(*in.DateOfQuiz)
		if err != nil {
			return nil, err
		}
		quiz.DateOfQuiz = date
	}
	if in.Remarks != nil {
		quiz.Remarks = *in.Remarks
	}
	if in.ChapterID != nil && *in.ChapterID != quiz.ChapterID {
		if err := s.requireChapter(*in.ChapterID); err != nil {
			return nil, err
		}
		quiz.ChapterID = *in.ChapterID
	}

	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx)
	return quiz, nil
}

func (s *QuizService) Delete(ctx context.Context, chapterID, id uint) error {
	if _, err := s.Get(chapterID, id); err != nil {
		return err
	}
	if err := s.QuizRepo.Delete(id); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx)
	return nil
}
