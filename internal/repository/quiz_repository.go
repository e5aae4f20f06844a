package repository

import (
	"github.com/PriyanshVijay26/quiz-master/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) WithTx(tx *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: tx}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Omit(clause.Associations).Create(quiz).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) FindInChapter(chapterID, id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Where("id = ? AND chapter_id = ?", id, chapterID).First(&quiz).Error
	return &quiz, err
}

func (r *QuizRepository) ListByChapter(chapterID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("chapter_id = ?", chapterID).Order("date_of_quiz asc, id asc").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Omit(clause.Associations).Save(quiz).Error
}

func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Quiz{}, id).Error
}
