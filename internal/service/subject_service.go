package service

import (
	"context"
	"errors"
	"strings"

	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/repository"
	"github.com/PriyanshVijay26/quiz-master/internal/util"

	"gorm.io/gorm"
)

type SubjectInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type SubjectService struct {
	SubjectRepo *repository.SubjectRepository
	Cache       *CatalogCache
}

func NewSubjectService(subjectRepo *repository.SubjectRepository, cache *CatalogCache) *SubjectService {
	return &SubjectService{SubjectRepo: subjectRepo, Cache: cache}
}

func (s *SubjectService) List() ([]model.Subject, error) {
	return s.SubjectRepo.FindAll()
}

// ListCached 用户端读取，优先走缓存
func (s *SubjectService) ListCached(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	key, hit := s.Cache.Get(ctx, "subjects", &subjects)
	if hit {
		return subjects, nil
	}

	subjects, err := s.SubjectRepo.FindAll()
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, key, subjects)
	return subjects, nil
}

func (s *SubjectService) Get(id uint) (*model.Subject, error) {
	subject, err := s.SubjectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}
	return subject, nil
}

func (s *SubjectService) Create(ctx context.Context, in SubjectInput) (*model.Subject, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, util.ErrSubjectNameRequired
	}

	subject := &model.Subject{Name: strings.TrimSpace(*in.Name)}
	if in.Description != nil {
		subject.Description = *in.Description
	}

	if err := s.SubjectRepo.Create(subject); err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx)
	return subject, nil
}

func (s *SubjectService) Update(ctx context.Context, id uint, in SubjectInput) (*model.Subject, error) {
	subject, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, util.ErrSubjectNameRequired
		}
		subject.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		subject.Description = *in.Description
	}

	if err := s.SubjectRepo.Update(subject); err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx)
	return subject, nil
}

func (s *SubjectService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.SubjectRepo.Delete(id); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx)
	return nil
}
