package model

import (
	"time"

	"gorm.io/datatypes"
)

// Score 一次测验作答记录，(user_id, quiz_id) 唯一
// swagger:model Score
type Score struct {
	BaseModel
	UserID             uint                        `gorm:"not null;uniqueIndex:idx_scores_user_quiz,priority:1" json:"user_id"`
	QuizID             uint                        `gorm:"not null;uniqueIndex:idx_scores_user_quiz,priority:2;index" json:"quiz_id"`
	User               *User                       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Quiz               *Quiz                       `gorm:"foreignKey:QuizID" json:"-"`
	TimeStampOfAttempt time.Time                   `json:"time_stamp_of_attempt"`
	TotalScored        int                         `json:"total_scored"`
	TotalMarks         int                         `json:"total_marks"`
	Remarks            string                      `gorm:"type:text" json:"remarks"` // 可存放用户所选选项
	TabChanges         int                         `gorm:"default:0" json:"tab_changes"`
	TimeTook           string                      `gorm:"size:32" json:"time_took"`
	DurationQuiz       string                      `gorm:"size:32" json:"duration_quiz"`
	RecordingURL       datatypes.JSONSlice[string] `gorm:"column:recording_url" json:"recording_url"`
	Flagged            bool                        `gorm:"default:false;index" json:"flagged"`
}

func (Score) TableName() string {
	return "scores"
}
