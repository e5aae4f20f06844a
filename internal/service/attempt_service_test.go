package service

import (
	"context"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/repository"
	"github.com/PriyanshVijay26/quiz-master/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var webmBytes = []byte("\x1a\x45\xdf\xa3fake-recording-data")

func TestSubmitScoreOncePerQuiz(t *testing.T) {
	f := newFixture(t)
	quiz := f.createQuiz(t)
	user := f.createUser(t, "student@example.com", model.RoleUser)
	ctx := context.Background()

	access, err := f.attemptSvc.Access(user.ID, quiz.ID)
	require.NoError(t, err)
	assert.True(t, access.CanStart)
	assert.False(t, access.CanViewResult)

	score, err := f.attemptSvc.Submit(ctx, user.ID, SubmitScoreInput{
		QuizID:      uintPtr(quiz.ID),
		TotalScored: intPtr(8),
		TotalMarks:  intPtr(10),
		TabChanges:  intPtr(2),
		TimeTook:    strPtr("0:12:40"),
	})
	require.NoError(t, err)
	assert.Equal(t, 8, score.TotalScored)
	assert.Equal(t, "0:30:00", score.DurationQuiz)
	assert.False(t, score.Flagged)

	access, err = f.attemptSvc.Access(user.ID, quiz.ID)
	require.NoError(t, err)
	assert.False(t, access.CanStart)
	assert.True(t, access.CanViewResult)

	_, err = f.attemptSvc.Submit(ctx, user.ID, SubmitScoreInput{QuizID: uintPtr(quiz.ID), TotalScored: intPtr(10)})
	assert.ErrorIs(t, err, util.ErrQuizAlreadyAttempted)

	result, err := f.attemptSvc.Result(user.ID, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, score.ID, result.ID)
	assert.Equal(t, 8, result.TotalScored)
	assert.Equal(t, 2, result.TabChanges)
}

func TestSubmitScoreAcceptsZero(t *testing.T) {
	f := newFixture(t)
	quiz := f.createQuiz(t)
	user := f.createUser(t, "student@example.com", model.RoleUser)

	score, err := f.attemptSvc.Submit(context.Background(), user.ID, SubmitScoreInput{
		QuizID:      uintPtr(quiz.ID),
		TotalScored: intPtr(0),
	})
	require.NoError(t, err)
	assert.Zero(t, score.TotalScored)
}

func TestSubmitScoreValidation(t *testing.T) {
	f := newFixture(t)
	quiz := f.createQuiz(t)
	user := f.createUser(t, "student@example.com", model.RoleUser)
	ctx := context.Background()

	_, err := f.attemptSvc.Submit(ctx, user.ID, SubmitScoreInput{QuizID: uintPtr(quiz.ID)})
	assert.ErrorIs(t, err, util.ErrScoreRequired)

	_, err = f.attemptSvc.Submit(ctx, user.ID, SubmitScoreInput{TotalScored: intPtr(3)})
	assert.ErrorIs(t, err, util.ErrScoreRequired)

	_, err = f.attemptSvc.Submit(ctx, user.ID, SubmitScoreInput{QuizID: uintPtr(quiz.ID + 100), TotalScored: intPtr(3)})
	assert.ErrorIs(t, err, util.ErrQuizNotFound)

	_, err = f.attemptSvc.Result(user.ID, quiz.ID)
	assert.ErrorIs(t, err, util.ErrScoreNotFound)
}

func TestAttachRecordings(t *testing.T) {
	f := newFixture(t)
	quiz := f.createQuiz(t)
	user := f.createUser(t, "student@example.com", model.RoleUser)
	ctx := context.Background()

	_, err := f.attemptSvc.AttachRecordings(ctx, user.ID, quiz.ID, nil, []string{"https://cdn.example.com/a.webm"})
	assert.ErrorIs(t, err, util.ErrScoreNotFound)

	_, err = f.attemptSvc.Submit(ctx, user.ID, SubmitScoreInput{QuizID: uintPtr(quiz.ID), TotalScored: intPtr(5)})
	require.NoError(t, err)

	_, err = f.attemptSvc.AttachRecordings(ctx, user.ID, quiz.ID, nil, []string{"  "})
	assert.ErrorIs(t, err, util.ErrRecordingRequired)

	score, err := f.attemptSvc.AttachRecordings(ctx, user.ID, quiz.ID, nil, []string{"https://cdn.example.com/a.webm"})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/a.webm"}, []string(score.RecordingURL))

	files := []*multipart.FileHeader{
		fileHeader(t, "recording", "screen.webm", webmBytes),
		fileHeader(t, "recording", "notes.txt", []byte("skipped")),
	}
	score, err = f.attemptSvc.AttachRecordings(ctx, user.ID, quiz.ID, files, nil)
	require.NoError(t, err)
	require.Len(t, score.RecordingURL, 2)
	assert.True(t, strings.HasPrefix(score.RecordingURL[1], "/uploads/recordings/"))

	stored, err := f.attemptSvc.Result(user.ID, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, []string(score.RecordingURL), []string(stored.RecordingURL))
}

func TestAttachRecordingsSkipsMismatchedContent(t *testing.T) {
	f := newFixture(t)
	quiz := f.createQuiz(t)
	user := f.createUser(t, "student@example.com", model.RoleUser)
	ctx := context.Background()

	_, err := f.attemptSvc.Submit(ctx, user.ID, SubmitScoreInput{QuizID: uintPtr(quiz.ID), TotalScored: intPtr(5)})
	require.NoError(t, err)

	files := []*multipart.FileHeader{fileHeader(t, "recording", "renamed.webm", []byte("plain text notes"))}
	_, err = f.attemptSvc.AttachRecordings(ctx, user.ID, quiz.ID, files, nil)
	assert.ErrorIs(t, err, util.ErrRecordingRequired)
	assert.Empty(t, f.listStored(t, util.RecordingDir))
}

func TestAttachRecordingsRemovesUploadsOnFailure(t *testing.T) {
	f := newFixture(t)
	quiz := f.createQuiz(t)
	user := f.createUser(t, "student@example.com", model.RoleUser)
	ctx := context.Background()

	_, err := f.attemptSvc.Submit(ctx, user.ID, SubmitScoreInput{QuizID: uintPtr(quiz.ID), TotalScored: intPtr(5)})
	require.NoError(t, err)

	// 第二个文件没有内容，打开时报错
	files := []*multipart.FileHeader{
		fileHeader(t, "recording", "first.webm", webmBytes),
		{Filename: "broken.webm"},
	}
	_, err = f.attemptSvc.AttachRecordings(ctx, user.ID, quiz.ID, files, nil)
	require.Error(t, err)
	assert.Empty(t, f.listStored(t, util.RecordingDir))

	stored, err := f.attemptSvc.Result(user.ID, quiz.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.RecordingURL)
}

func TestFlagScoreAndFilter(t *testing.T) {
	f := newFixture(t)
	quiz := f.createQuiz(t)
	alice := f.createUser(t, "alice@example.com", model.RoleUser)
	bob := f.createUser(t, "bob@example.com", model.RoleUser)
	ctx := context.Background()

	first, err := f.attemptSvc.Submit(ctx, alice.ID, SubmitScoreInput{QuizID: uintPtr(quiz.ID), TotalScored: intPtr(9), TabChanges: intPtr(7)})
	require.NoError(t, err)
	_, err = f.attemptSvc.Submit(ctx, bob.ID, SubmitScoreInput{QuizID: uintPtr(quiz.ID), TotalScored: intPtr(6)})
	require.NoError(t, err)

	flagged, err := f.attemptSvc.Flag(ctx, first.ID, true)
	require.NoError(t, err)
	assert.True(t, flagged.Flagged)

	scores, err := f.attemptSvc.ListAll(repository.ScoreFilter{QuizID: quiz.ID})
	require.NoError(t, err)
	assert.Len(t, scores, 2)

	scores, err = f.attemptSvc.ListAll(repository.ScoreFilter{Flagged: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, alice.ID, scores[0].UserID)
	require.NotNil(t, scores[0].User)
	assert.Equal(t, "alice@example.com", scores[0].User.Email)

	mine, err := f.attemptSvc.ListMine(bob.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 6, mine[0].TotalScored)

	_, err = f.attemptSvc.Flag(ctx, 9999, true)
	assert.ErrorIs(t, err, util.ErrScoreNotFound)
}
