package repository

import (
	"github.com/PriyanshVijay26/quiz-master/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChapterRepository struct {
	DB *gorm.DB
}

func NewChapterRepository(db *gorm.DB) *ChapterRepository {
	return &ChapterRepository{DB: db}
}

func (r *ChapterRepository) WithTx(tx *gorm.DB) *ChapterRepository {
	return &ChapterRepository{DB: tx}
}

func (r *ChapterRepository) Create(chapter *model.Chapter) error {
	return r.DB.Omit(clause.Associations).Create(chapter).Error
}

// FindInSubject 按所属科目查找章节
func (r *ChapterRepository) FindInSubject(subjectID, id uint) (*model.Chapter, error) {
	var chapter model.Chapter
	err := r.DB.Where("id = ? AND subject_id = ?", id, subjectID).First(&chapter).Error
	return &chapter, err
}

func (r *ChapterRepository) ListBySubject(subjectID uint) ([]model.Chapter, error) {
	var chapters []model.Chapter
	err := r.DB.Where("subject_id = ?", subjectID).Order("id asc").Find(&chapters).Error
	return chapters, err
}

func (r *ChapterRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Chapter{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *ChapterRepository) Update(chapter *model.Chapter) error {
	return r.DB.Omit(clause.Associations).Save(chapter).Error
}

func (r *ChapterRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Chapter{}, id).Error
}
