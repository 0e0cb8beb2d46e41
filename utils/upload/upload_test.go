package upload

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func header(name, contentType string, size int64) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: name,
		Header:   h,
		Size:     size,
	}
}

func TestImageRuleValidate(t *testing.T) {
	assert.NoError(t, ImageRule.Validate(header("photo.jpg", "image/jpeg", 1024)))
	assert.NoError(t, ImageRule.Validate(header("photo.PNG", "image/png", 1024)))

	err := ImageRule.Validate(header("photo.jpg", "image/jpeg", 6*1024*1024))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	err = ImageRule.Validate(header("script.exe", "image/jpeg", 1024))
	assert.ErrorIs(t, err, ErrDisallowedType)

	err = ImageRule.Validate(header("photo.jpg", "application/octet-stream", 1024))
	assert.ErrorIs(t, err, ErrDisallowedType)

	err = ImageRule.Validate(header("", "image/jpeg", 1024))
	assert.ErrorIs(t, err, ErrMissingFilename)
}

func TestDocumentRuleValidate(t *testing.T) {
	assert.NoError(t, DocumentRule.Validate(header("notes.pdf", "application/pdf", 1024)))
	assert.NoError(t, DocumentRule.Validate(header("slides.pptx", "application/vnd.openxmlformats-officedocument.presentationml.presentation", 1024)))
	assert.NoError(t, DocumentRule.Validate(header("readme.txt", "text/plain", 1024)))

	err := DocumentRule.Validate(header("notes.pdf", "application/pdf", 11*1024*1024))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	err = DocumentRule.Validate(header("photo.jpg", "image/jpeg", 1024))
	assert.ErrorIs(t, err, ErrDisallowedType)
}

func TestNewSaverCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	saver, err := NewSaver(dir + "/uploads")
	assert.NoError(t, err)
	assert.Equal(t, dir+"/uploads", saver.BaseDir())
}
