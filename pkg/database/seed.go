package database

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/util"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed.yaml
var defaultSeed []byte

type SeedData struct {
	Roles    []SeedRole    `yaml:"roles"`
	Admins   []SeedAdmin   `yaml:"admins"`
	Subjects []SeedSubject `yaml:"subjects"`
}

type SeedRole struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type SeedAdmin struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	FullName string `yaml:"full_name"`
}

type SeedSubject struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Chapters    []SeedChapter `yaml:"chapters"`
}

type SeedChapter struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Quizzes     []SeedQuiz `yaml:"quizzes"`
}

type SeedQuiz struct {
	DateOfQuiz   string         `yaml:"date_of_quiz"`
	TimeDuration string         `yaml:"time_duration"`
	Remarks      string         `yaml:"remarks"`
	Questions    []SeedQuestion `yaml:"questions"`
}

type SeedQuestion struct {
	QuestionStatement string   `yaml:"question_statement"`
	Options           []string `yaml:"options"`
	CorrectOption     int      `yaml:"correct_option"`
}

// LoadSeedFile 读取种子文件，path 为空时使用内置默认数据
func LoadSeedFile(path string) ([]byte, error) {
	if path == "" {
		return defaultSeed, nil
	}
	return os.ReadFile(path)
}

// Seed 幂等地写入角色、管理员与示例题库
func Seed(db *gorm.DB, raw []byte) error {
	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse seed data: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, r := range data.Roles {
			role := model.Role{Name: r.Name}
			if err := tx.Where(model.Role{Name: r.Name}).
				Attrs(model.Role{Description: r.Description}).
				FirstOrCreate(&role).Error; err != nil {
				return err
			}
		}

		for _, a := range data.Admins {
			if err := seedAdmin(tx, a); err != nil {
				return err
			}
		}

		for _, s := range data.Subjects {
			if err := seedSubject(tx, s); err != nil {
				return err
			}
		}
		return nil
	})
}

func seedAdmin(tx *gorm.DB, a SeedAdmin) error {
	var existing model.User
	err := tx.Where("email = ?", a.Email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var adminRole model.Role
	if err := tx.Where("name = ?", model.RoleAdmin).First(&adminRole).Error; err != nil {
		return fmt.Errorf("admin role missing: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := &model.User{
		Email:        a.Email,
		Password:     string(hashed),
		FullName:     a.FullName,
		Active:       true,
		FsUniquifier: uuid.NewString(),
		ConfirmedAt:  &now,
		LastActivity: now,
		Roles:        []model.Role{adminRole},
	}
	return tx.Create(user).Error
}

func seedSubject(tx *gorm.DB, s SeedSubject) error {
	subject := model.Subject{}
	if err := tx.Where(model.Subject{Name: s.Name}).
		Attrs(model.Subject{Description: s.Description}).
		FirstOrCreate(&subject).Error; err != nil {
		return err
	}

	for _, c := range s.Chapters {
		chapter := model.Chapter{}
		if err := tx.Where(model.Chapter{SubjectID: subject.ID, Name: c.Name}).
			Attrs(model.Chapter{Description: c.Description}).
			FirstOrCreate(&chapter).Error; err != nil {
			return err
		}

		for _, q := range c.Quizzes {
			if err := seedQuiz(tx, chapter.ID, q); err != nil {
				return err
			}
		}
	}
	return nil
}

func seedQuiz(tx *gorm.DB, chapterID uint, q SeedQuiz) error {
	date, err := util.ParseQuizDate(q.DateOfQuiz)
	if err != nil {
		return fmt.Errorf("seed quiz %q: %w", q.Remarks, err)
	}
	duration, err := util.NormalizeQuizDuration(q.TimeDuration)
	if err != nil {
		return fmt.Errorf("seed quiz %q: %w", q.Remarks, err)
	}

	quiz := model.Quiz{}
	if err := tx.Where(model.Quiz{ChapterID: chapterID, Remarks: q.Remarks}).
		Attrs(model.Quiz{DateOfQuiz: date, TimeDuration: duration}).
		FirstOrCreate(&quiz).Error; err != nil {
		return err
	}

	for _, item := range q.Questions {
		if item.CorrectOption < 1 || item.CorrectOption > 4 {
			return fmt.Errorf("seed question %q: %w", item.QuestionStatement, util.ErrInvalidCorrectOption)
		}
		opts := make([]string, 4)
		copy(opts, item.Options)

		question := model.Question{}
		if err := tx.Where(model.Question{QuizID: quiz.ID, QuestionStatement: item.QuestionStatement}).
			Attrs(model.Question{
				Option1:       opts[0],
				Option2:       opts[1],
				Option3:       opts[2],
				Option4:       opts[3],
				CorrectOption: item.CorrectOption,
			}).
			FirstOrCreate(&question).Error; err != nil {
			return err
		}
	}
	return nil
}
