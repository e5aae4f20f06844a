package service

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PriyanshVijay26/quiz-master/internal/config"
	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/repository"
	"github.com/PriyanshVijay26/quiz-master/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
	db, err := database.Open(sqlite.Open(dsn), gormlogger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:  config.ServerConfig{Mode: "test"},
		JWT:     config.JWTConfig{Secret: "test-secret-test-secret-test-secret", ExpireTime: time.Hour},
		Storage: config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
		Redis:   config.RedisConfig{CacheTTLSeconds: 300},
	}
}

type fixture struct {
	cfg *config.Config
	db  *gorm.DB

	users     *repository.UserRepository
	subjects  *repository.SubjectRepository
	chapters  *repository.ChapterRepository
	quizzes   *repository.QuizRepository
	questions *repository.QuestionRepository
	scores    *repository.ScoreRepository
	chats     *repository.ChatRepository

	storage     *StorageService
	auth        *AuthService
	subjectSvc  *SubjectService
	chapterSvc  *ChapterService
	quizSvc     *QuizService
	questionSvc *QuestionService
	attemptSvc  *AttemptService
	chatSvc     *ChatService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := testConfig(t)
	db := newTestDB(t)
	tx := repository.NewTxManager(db)
	cache := NewCatalogCache(nil, cfg.CacheTTL())

	f := &fixture{
		cfg:       cfg,
		db:        db,
		users:     repository.NewUserRepository(db),
		subjects:  repository.NewSubjectRepository(db),
		chapters:  repository.NewChapterRepository(db),
		quizzes:   repository.NewQuizRepository(db),
		questions: repository.NewQuestionRepository(db),
		scores:    repository.NewScoreRepository(db),
		chats:     repository.NewChatRepository(db),
		storage:   NewStorageService(cfg),
	}

	f.auth = NewAuthService(f.users, tx, cfg)
	f.subjectSvc = NewSubjectService(f.subjects, cache)
	f.chapterSvc = NewChapterService(f.chapters, f.subjects, cache)
	f.quizSvc = NewQuizService(f.quizzes, f.chapters, cache)
	f.questionSvc = NewQuestionService(f.questions, f.quizzes, tx, f.storage, cache)
	f.attemptSvc = NewAttemptService(f.scores, f.quizzes, tx, f.storage, cfg)
	f.chatSvc = NewChatService(f.chats, f.users, nil)
	return f
}

func (f *fixture) createUser(t *testing.T, email string, role model.RoleName) *model.User {
	t.Helper()

	r, err := f.users.EnsureRole(role, "")
	require.NoError(t, err)

	user := &model.User{
		Email:        email,
		Password:     "not-a-real-hash",
		Active:       true,
		FsUniquifier: uuid.NewString(),
		Roles:        []model.Role{*r},
	}
	require.NoError(t, f.users.Create(user))
	return user
}

// createQuiz 建立 Mathematics / Algebra 下的一个测验
func (f *fixture) createQuiz(t *testing.T) *model.Quiz {
	t.Helper()
	ctx := context.Background()

	subject, err := f.subjectSvc.Create(ctx, SubjectInput{Name: strPtr("Mathematics")})
	require.NoError(t, err)
	chapter, err := f.chapterSvc.Create(ctx, subject.ID, ChapterInput{Name: strPtr("Algebra")})
	require.NoError(t, err)
	quiz, err := f.quizSvc.Create(ctx, chapter.ID, QuizInput{
		DateOfQuiz:   strPtr("2024-05-03"),
		TimeDuration: strPtr("00:30"),
	})
	require.NoError(t, err)
	return quiz
}

func (f *fixture) countPhotos(t *testing.T, questionID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, f.db.Model(&model.Photo{}).Where("question_id = ?", questionID).Count(&count).Error)
	return count
}

// listStored 列出本地存储某个目录下的文件名，目录不存在时为空
func (f *fixture) listStored(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(filepath.Join(f.cfg.Storage.LocalPath, dir))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func uintPtr(u uint) *uint    { return &u }
func boolPtr(b bool) *bool    { return &b }

// fileHeader 构造 multipart 上传中的单个文件
func fileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File[field][0]
}
