package upload

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrDisallowedType  = errors.New("file type is not allowed")
	ErrMissingFilename = errors.New("uploaded file has no name")
)

// Rule describes what a given upload field accepts. Extensions are
// lower-case with the leading dot; MIME prefixes are matched against the
// declared Content-Type of the part.
type Rule struct {
	MaxSize      int64
	Extensions   []string
	MIMEPrefixes []string
	Subdir       string
	NamePrefix   string
}

// ImageRule accepts faculty photos and lab images.
var ImageRule = Rule{
	MaxSize:      5 * 1024 * 1024,
	Extensions:   []string{".jpeg", ".jpg", ".png", ".gif"},
	MIMEPrefixes: []string{"image/"},
	NamePrefix:   "image",
}

// DocumentRule accepts teaching material documents.
var DocumentRule = Rule{
	MaxSize:      10 * 1024 * 1024,
	Extensions:   []string{".pdf", ".doc", ".docx", ".ppt", ".pptx", ".xls", ".xlsx", ".txt"},
	MIMEPrefixes: []string{"application/", "text/"},
	Subdir:       "materials",
	NamePrefix:   "material",
}

// Saver stores multipart uploads under a base directory and hands back
// the relative URL path persisted alongside the owning row.
type Saver struct {
	baseDir string
}

// NewSaver creates the base directory (and known subdirectories) up
// front so request handlers never race on mkdir.
func NewSaver(baseDir string) (*Saver, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, DocumentRule.Subdir), 0o755); err != nil {
		return nil, err
	}
	return &Saver{baseDir: baseDir}, nil
}

// BaseDir returns the directory uploads are stored under.
func (s *Saver) BaseDir() string {
	return s.baseDir
}

// Validate checks the header against the rule without touching disk.
func (r Rule) Validate(file *multipart.FileHeader) error {
	if file.Filename == "" {
		return ErrMissingFilename
	}
	if file.Size > r.MaxSize {
		return fmt.Errorf("%w (%d bytes, max %d)", ErrFileTooLarge, file.Size, r.MaxSize)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !contains(r.Extensions, ext) {
		return fmt.Errorf("%w: extension %q", ErrDisallowedType, ext)
	}

	declared := file.Header.Get("Content-Type")
	for _, prefix := range r.MIMEPrefixes {
		if strings.HasPrefix(declared, prefix) {
			return nil
		}
	}
	return fmt.Errorf("%w: content type %q", ErrDisallowedType, declared)
}

// Save validates the upload and streams it to disk, returning the
// relative URL path to persist. If the caller's database write fails
// afterwards the file is left behind; see the project notes on upload
// cleanup.
func (s *Saver) Save(c *fiber.Ctx, file *multipart.FileHeader, rule Rule) (string, error) {
	if err := rule.Validate(file); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s-%s%s", rule.NamePrefix, uuid.New().String(), strings.ToLower(filepath.Ext(file.Filename)))
	dest := filepath.Join(s.baseDir, rule.Subdir, name)
	if err := c.SaveFile(file, dest); err != nil {
		return "", err
	}

	rel := "/uploads"
	if rule.Subdir != "" {
		rel += "/" + rule.Subdir
	}
	return rel + "/" + name, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
