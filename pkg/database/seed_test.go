package database

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PriyanshVijay26/quiz-master/internal/config"
	"github.com/PriyanshVijay26/quiz-master/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)), logger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func count(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}

func TestSeedIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	raw, err := LoadSeedFile("")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, Seed(db, raw))

		assert.Equal(t, int64(2), count(t, db, &model.Role{}))
		assert.Equal(t, int64(1), count(t, db, &model.User{}))
		assert.Equal(t, int64(3), count(t, db, &model.Subject{}))
		assert.Equal(t, int64(9), count(t, db, &model.Chapter{}))
		assert.Equal(t, int64(2), count(t, db, &model.Quiz{}))
		assert.Equal(t, int64(2), count(t, db, &model.Question{}))
	}

	var admin model.User
	require.NoError(t, db.Preload("Roles").Where("email = ?", "admin@example.com").First(&admin).Error)
	assert.True(t, admin.Active)
	assert.True(t, admin.HasRole(model.RoleAdmin))
	assert.False(t, admin.HasRole(model.RoleUser))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("adminpassword")))

	var quiz model.Quiz
	require.NoError(t, db.Where("remarks = ?", "Basic algebra quiz").First(&quiz).Error)
	assert.Equal(t, "0:30:00", quiz.TimeDuration)
	assert.Equal(t, "2024-05-03", quiz.DateOfQuiz.Format("2006-01-02"))

	var question model.Question
	require.NoError(t, db.Where("quiz_id = ?", quiz.ID).Order("id asc").First(&question).Error)
	assert.Equal(t, 2, question.CorrectOption)
	assert.Equal(t, "2", question.Option2)
}

func TestSeedRollsBackOnInvalidQuestion(t *testing.T) {
	db := openTestDB(t)
	raw := []byte(`
roles:
  - name: admin
subjects:
  - name: Broken
    chapters:
      - name: Broken chapter
        quizzes:
          - date_of_quiz: "2024-01-01"
            time_duration: "01:00"
            remarks: Broken quiz
            questions:
              - question_statement: Bad option
                options: ["a", "b"]
                correct_option: 5
`)

	err := Seed(db, raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid correct option")

	assert.Zero(t, count(t, db, &model.Role{}))
	assert.Zero(t, count(t, db, &model.Subject{}))
	assert.Zero(t, count(t, db, &model.Quiz{}))
}

func TestSeedRejectsMalformedYAML(t *testing.T) {
	db := openTestDB(t)
	assert.Error(t, Seed(db, []byte("roles: [")))
}

func TestDialector(t *testing.T) {
	_, err := Dialector(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)

	d, err := Dialector(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	d, err = Dialector(&config.DatabaseConfig{Driver: "postgres", Host: "localhost", Port: 5432})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = Dialector(&config.DatabaseConfig{Driver: "mysql", Host: "localhost", Port: 3306})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())
}

func TestInitRedisDisabled(t *testing.T) {
	rdb, err := InitRedis(&config.RedisConfig{Enabled: false})
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}
