package model

import (
	"time"

	"gorm.io/gorm"
)

// swagger:model Subject
type Subject struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
}

func (Subject) TableName() string {
	return "subjects"
}

// swagger:model Chapter
type Chapter struct {
	BaseModel
	SubjectID   uint     `gorm:"index;not null" json:"subject_id"`
	Subject     *Subject `gorm:"foreignKey:SubjectID" json:"-"`
	Name        string   `gorm:"size:255;not null" json:"name"`
	Description string   `gorm:"size:255" json:"description"`
}

func (Chapter) TableName() string {
	return "chapters"
}

// swagger:model Quiz
type Quiz struct {
	BaseModel
	ChapterID    uint      `gorm:"index;not null" json:"chapter_id"`
	Chapter      *Chapter  `gorm:"foreignKey:ChapterID" json:"-"`
	DateOfQuiz   time.Time `json:"date_of_quiz"`
	TimeDuration string    `gorm:"size:32" json:"time_duration"` // 规范化后的时长，如 0:30:00
	Remarks      string    `gorm:"size:255" json:"remarks"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model Question
type Question struct {
	BaseModel
	QuizID            uint   `gorm:"index;not null" json:"quiz_id"`
	Quiz              *Quiz  `gorm:"foreignKey:QuizID" json:"-"`
	QuestionStatement string `gorm:"type:text" json:"question_statement"`
	Option1           string `gorm:"size:255" json:"option1"`
	Option2           string `gorm:"size:255" json:"option2"`
	Option3           string `gorm:"size:255" json:"option3"`
	Option4           string `gorm:"size:255" json:"option4"`
	CorrectOption     int    `json:"correct_option"`
	Photo             *Photo `gorm:"foreignKey:QuestionID" json:"-"`
	PhotoURL          string `gorm:"-" json:"photo_url,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// AfterFind 预加载了图片时补充 photo_url
func (q *Question) AfterFind(tx *gorm.DB) error {
	if q.Photo != nil {
		q.PhotoURL = q.Photo.PhotoURL
	}
	return nil
}

// swagger:model Photo
type Photo struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"question_id"`
	PhotoURL   string `gorm:"size:512" json:"photo_url"`
}

func (Photo) TableName() string {
	return "photos"
}
