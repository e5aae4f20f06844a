package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasAllowedExtension(t *testing.T) {
	assert.True(t, HasAllowedExtension("diagram.PNG", AllowedImageExtensions))
	assert.True(t, HasAllowedExtension("a.b.jpeg", AllowedImageExtensions))
	assert.True(t, HasAllowedExtension("anim.gif", AllowedImageExtensions))
	assert.False(t, HasAllowedExtension("notes.pdf", AllowedImageExtensions))
	assert.False(t, HasAllowedExtension("noext", AllowedImageExtensions))
	assert.False(t, HasAllowedExtension("png", AllowedImageExtensions))
	assert.True(t, HasAllowedExtension("attempt.webm", AllowedRecordingExtensions))
}

func TestValidateMimeType(t *testing.T) {
	png := "\x89PNG\r\n\x1a\n" + strings.Repeat("\x00", 16)
	mime, err := ValidateMimeType(strings.NewReader(png), []string{"image/"})
	assert.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	mime, err = ValidateMimeType(strings.NewReader("plain text"), []string{"image/"})
	assert.ErrorIs(t, err, ErrInvalidFileType)
	assert.Equal(t, "text/plain; charset=utf-8", mime)

	webm := "\x1a\x45\xdf\xa3" + strings.Repeat("\x00", 16)
	mime, err = ValidateMimeType(strings.NewReader(webm), AllowedRecordingMimeTypes)
	assert.NoError(t, err)
	assert.Equal(t, "video/webm", mime)

	_, err = ValidateMimeType(strings.NewReader(png), AllowedRecordingMimeTypes)
	assert.ErrorIs(t, err, ErrInvalidFileType)
}
