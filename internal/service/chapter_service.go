package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/repository"
	"github.com/PriyanshVijay26/quiz-master/internal/util"

	"gorm.io/gorm"
)

type ChapterInput struct {
	SubjectID   *uint   `json:"subject_id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type ChapterService struct {
	ChapterRepo *repository.ChapterRepository
	SubjectRepo *repository.SubjectRepository
	Cache       *CatalogCache
}

func NewChapterService(chapterRepo *repository.ChapterRepository, subjectRepo *repository.SubjectRepository, cache *CatalogCache) *ChapterService {
	return &ChapterService{
		ChapterRepo: chapterRepo,
		SubjectRepo: subjectRepo,
		Cache:       cache,
	}
}

func (s *ChapterService) requireSubject(subjectID uint) error {
	ok, err := s.SubjectRepo.Exists(subjectID)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrSubjectNotFound
	}
	return nil
}

func (s *ChapterService) List(subjectID uint) ([]model.Chapter, error) {
	if err := s.requireSubject(subjectID); err != nil {
		return nil, err
	}
	return s.ChapterRepo.ListBySubject(subjectID)
}

func (s *ChapterService) ListCached(ctx context.Context, subjectID uint) ([]model.Chapter, error) {
	name := fmt.Sprintf("subjects:%d:chapters", subjectID)

	var chapters []model.Chapter
	key, hit := s.Cache.Get(ctx, name, &chapters)
	if hit {
		return chapters, nil
	}

	chapters, err := s.List(subjectID)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, key, chapters)
	return chapters, nil
}

func (s *ChapterService) Get(subjectID, id uint) (*model.Chapter, error) {
	chapter, err := s.ChapterRepo.FindInSubject(subjectID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChapterNotFound
		}
		return nil, err
	}
	return chapter, nil
}

func (s *ChapterService) Create(ctx context.Context, subjectID uint, in ChapterInput) (*model.Chapter, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, util.ErrChapterNameRequired
	}
	if err := s.requireSubject(subjectID); err != nil {
		return nil, err
	}

	chapter := &model.Chapter{
		SubjectID: subjectID,
		Name:      strings.TrimSpace(*in.Name),
	}
	if in.Description != nil {
		chapter.Description = *in.Description
	}

	if err := s.ChapterRepo.Create(chapter); err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx)
	return chapter, nil
}

// Update 只合并请求中出现的字段，subject_id 可迁移到其他已存在的科目
func (s *ChapterService) Update(ctx context.Context, subjectID, id uint, in ChapterInput) (*model.Chapter, error) {
	chapter, err := s.Get(subjectID, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, util.ErrChapterNameRequired
		}
		chapter.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		chapter.Description = *in.Description
	}
	if in.SubjectID != nil && *in.SubjectID != chapter.SubjectID {
		if err := s.requireSubject(*in.SubjectID); err != nil {
			return nil, err
		}
		chapter.SubjectID = *in.SubjectID
	}

	if err := s.ChapterRepo.Update(chapter); err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx)
	return chapter, nil
}

func (s *ChapterService) Delete(ctx context.Context, subjectID, id uint) error {
	if _, err := s.Get(subjectID, id); err != nil {
		return err
	}
	if err := s.ChapterRepo.Delete(id); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx)
	return nil
}
