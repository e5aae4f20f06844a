package repository

import (
	"github.com/PriyanshVijay26/quiz-master/internal/model"

	"gorm.io/gorm"
)

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

func (r *SubjectRepository) WithTx(tx *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: tx}
}

func (r *SubjectRepository) Create(subject *model.Subject) error {
	return r.DB.Create(subject).Error
}

func (r *SubjectRepository) FindByID(id uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.First(&subject, id).Error
	return &subject, err
}

func (r *SubjectRepository) FindAll() ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Order("id asc").Find(&subjects).Error
	return subjects, err
}

func (r *SubjectRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Subject{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *SubjectRepository) Update(subject *model.Subject) error {
	return r.DB.Save(subject).Error
}

func (r *SubjectRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Subject{}, id).Error
}
