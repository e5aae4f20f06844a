package service

import (
	"context"
	"testing"
	"time"

	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/util"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectAndChapterLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.subjectSvc.Create(ctx, SubjectInput{Name: strPtr("  ")})
	assert.ErrorIs(t, err, util.ErrSubjectNameRequired)

	subject, err := f.subjectSvc.Create(ctx, SubjectInput{Name: strPtr("Physics"), Description: strPtr("Mechanics and waves")})
	require.NoError(t, err)

	updated, err := f.subjectSvc.Update(ctx, subject.ID, SubjectInput{Description: strPtr("Classical physics")})
	require.NoError(t, err)
	assert.Equal(t, "Physics", updated.Name)
	assert.Equal(t, "Classical physics", updated.Description)

	_, err = f.chapterSvc.Create(ctx, subject.ID+100, ChapterInput{Name: strPtr("Kinematics")})
	assert.ErrorIs(t, err, util.ErrSubjectNotFound)

	chapter, err := f.chapterSvc.Create(ctx, subject.ID, ChapterInput{Name: strPtr("Kinematics")})
	require.NoError(t, err)
	assert.Equal(t, subject.ID, chapter.SubjectID)

	chapters, err := f.chapterSvc.ListCached(ctx, subject.ID)
	require.NoError(t, err)
	require.Len(t, chapters, 1)
	assert.Equal(t, "Kinematics", chapters[0].Name)

	_, err = f.chapterSvc.Get(subject.ID+100, chapter.ID)
	assert.ErrorIs(t, err, util.ErrChapterNotFound)

	require.NoError(t, f.chapterSvc.Delete(ctx, subject.ID, chapter.ID))
	_, err = f.chapterSvc.Get(subject.ID, chapter.ID)
	assert.ErrorIs(t, err, util.ErrChapterNotFound)

	require.NoError(t, f.subjectSvc.Delete(ctx, subject.ID))
	_, err = f.subjectSvc.Get(subject.ID)
	assert.ErrorIs(t, err, util.ErrSubjectNotFound)
}

func TestQuizCreateNormalizesDuration(t *testing.T) {
	f := newFixture(t)
	quiz := f.createQuiz(t)

	assert.Equal(t, "0:30:00", quiz.TimeDuration)
	assert.Equal(t, "2024-05-03", quiz.DateOfQuiz.Format(util.DateFormat))

	quizzes, err := f.quizSvc.List(quiz.ChapterID)
	require.NoError(t, err)
	require.Len(t, quizzes, 1)
	assert.Equal(t, quiz.ID, quizzes[0].ID)
}

func TestQuizCreateChecksDurationBeforeDate(t *testing.T) {
	f := newFixture(t)
	quiz := f.createQuiz(t)
	ctx := context.Background()

	_, err := f.quizSvc.Create(ctx, quiz.ChapterID, QuizInput{
		DateOfQuiz:   strPtr("not-a-date"),
		TimeDuration: strPtr("90"),
	})
	assert.ErrorIs(t, err, util.ErrInvalidQuizDuration)

	_, err = f.quizSvc.Create(ctx, quiz.ChapterID, QuizInput{
		DateOfQuiz:   strPtr("03-05-2024"),
		TimeDuration: strPtr("01:15"),
	})
	assert.ErrorIs(t, err, util.ErrInvalidQuizDate)

	_, err = f.quizSvc.Create(ctx, quiz.ChapterID+100, QuizInput{
		DateOfQuiz:   strPtr("2024-05-03"),
		TimeDuration: strPtr("01:15"),
	})
	assert.ErrorIs(t, err, util.ErrChapterNotFound)
}

func TestQuizUpdateKeepsUnsetFields(t *testing.T) {
	f := newFixture(t)
	quiz := f.createQuiz(t)

	updated, err := f.quizSvc.Update(context.Background(), quiz.ChapterID, quiz.ID, QuizInput{Remarks: strPtr("Mid-term")})
	require.NoError(t, err)
	assert.Equal(t, "Mid-term", updated.Remarks)
	assert.Equal(t, "0:30:00", updated.TimeDuration)

	stored, err := f.quizSvc.Get(quiz.ChapterID, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mid-term", stored.Remarks)
	assert.Equal(t, "0:30:00", stored.TimeDuration)
}

func TestCatalogCacheWithoutRedis(t *testing.T) {
	cache := NewCatalogCache(nil, 0)
	ctx := context.Background()

	var dest []string
	key, hit := cache.Get(ctx, "subjects", &dest)
	assert.False(t, hit)
	assert.Empty(t, key)
	cache.Set(ctx, key, []string{"Mathematics"})
	cache.Invalidate(ctx)
	_, hit = cache.Get(ctx, "subjects", &dest)
	assert.False(t, hit)
	assert.Nil(t, dest)
}

func newRedisCache(t *testing.T) *CatalogCache {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewCatalogCache(rdb, time.Minute)
}

func TestCatalogCacheHitAndInvalidate(t *testing.T) {
	cache := newRedisCache(t)
	ctx := context.Background()

	var dest []string
	key, hit := cache.Get(ctx, "subjects", &dest)
	require.False(t, hit)
	assert.Equal(t, "catalog:v0:subjects", key)

	cache.Set(ctx, key, []string{"Mathematics"})
	_, hit = cache.Get(ctx, "subjects", &dest)
	require.True(t, hit)
	assert.Equal(t, []string{"Mathematics"}, dest)

	cache.Invalidate(ctx)
	dest = nil
	key, hit = cache.Get(ctx, "subjects", &dest)
	assert.False(t, hit)
	assert.Equal(t, "catalog:v1:subjects", key)
}

func TestCatalogCacheFillAfterInvalidateIsNotServed(t *testing.T) {
	cache := newRedisCache(t)
	ctx := context.Background()

	// 读取未命中后、回填之前发生了一次变更
	var dest []string
	key, hit := cache.Get(ctx, "subjects", &dest)
	require.False(t, hit)
	cache.Invalidate(ctx)
	cache.Set(ctx, key, []string{"old"})

	dest = nil
	_, hit = cache.Get(ctx, "subjects", &dest)
	assert.False(t, hit)
	assert.Nil(t, dest)
}

func TestSubjectListCachedSeesMutations(t *testing.T) {
	f := newFixture(t)
	cache := newRedisCache(t)
	f.subjectSvc.Cache = cache
	ctx := context.Background()

	_, err := f.subjectSvc.Create(ctx, SubjectInput{Name: strPtr("Mathematics")})
	require.NoError(t, err)

	subjects, err := f.subjectSvc.ListCached(ctx)
	require.NoError(t, err)
	require.Len(t, subjects, 1)

	var cached []model.Subject
	_, hit := cache.Get(ctx, "subjects", &cached)
	require.True(t, hit)
	assert.Len(t, cached, 1)

	_, err = f.subjectSvc.Create(ctx, SubjectInput{Name: strPtr("Physics")})
	require.NoError(t, err)

	subjects, err = f.subjectSvc.ListCached(ctx)
	require.NoError(t, err)
	assert.Len(t, subjects, 2)
}
