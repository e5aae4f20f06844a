package repository

import (
	"github.com/PriyanshVijay26/quiz-master/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) WithTx(tx *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: tx}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Omit(clause.Associations).Create(question).Error
}

func (r *QuestionRepository) FindInQuiz(quizID, id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.Preload("Photo").Where("id = ? AND quiz_id = ?", id, quizID).First(&question).Error
	return &question, err
}

func (r *QuestionRepository) ListByQuiz(quizID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Preload("Photo").Where("quiz_id = ?", quizID).Order("id asc").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Omit(clause.Associations).Save(question).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

func (r *QuestionRepository) SavePhoto(photo *model.Photo) error {
	return r.DB.Save(photo).Error
}

func (r *QuestionRepository) DeletePhotos(questionID uint) error {
	return r.DB.Where("question_id = ?", questionID).Delete(&model.Photo{}).Error
}
