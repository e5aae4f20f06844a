package repository

import (
	"github.com/PriyanshVijay26/quiz-master/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

func (r *ScoreRepository) WithTx(tx *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: tx}
}

// ScoreFilter 管理端查询条件，零值表示不过滤
type ScoreFilter struct {
	QuizID  uint
	UserID  uint
	Flagged *bool
}

func (r *ScoreRepository) Create(score *model.Score) error {
	return r.DB.Omit(clause.Associations).Create(score).Error
}

func (r *ScoreRepository) FindByID(id uint) (*model.Score, error) {
	var score model.Score
	err := r.DB.Preload("User").First(&score, id).Error
	return &score, err
}

func (r *ScoreRepository) FindByUserAndQuiz(userID, quizID uint) (*model.Score, error) {
	var score model.Score
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).First(&score).Error
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *ScoreRepository) ExistsForUserAndQuiz(userID, quizID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Score{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error
	return count > 0, err
}

func (r *ScoreRepository) ListByUser(userID uint) ([]model.Score, error) {
	var scores []model.Score
	err := r.DB.Where("user_id = ?", userID).Order("time_stamp_of_attempt desc").Find(&scores).Error
	return scores, err
}

func (r *ScoreRepository) List(filter ScoreFilter) ([]model.Score, error) {
	var scores []model.Score
	query := r.DB.Preload("User")
	if filter.QuizID > 0 {
		query = query.Where("quiz_id = ?", filter.QuizID)
	}
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Flagged != nil {
		query = query.Where("flagged = ?", *filter.Flagged)
	}
	err := query.Order("time_stamp_of_attempt desc").Find(&scores).Error
	return scores, err
}

func (r *ScoreRepository) UpdateRecordings(id uint, urls []string) error {
	return r.DB.Model(&model.Score{}).
		Where("id = ?", id).
		Update("recording_url", datatypes.NewJSONSlice(urls)).Error
}

func (r *ScoreRepository) SetFlagged(id uint, flagged bool) error {
	return r.DB.Model(&model.Score{}).
		Where("id = ?", id).
		Update("flagged", flagged).Error
}
