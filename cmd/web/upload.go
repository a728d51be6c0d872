package main

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

const maxUploadBytes = 10 << 20

// Extensions accepted for product images.
var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

var errImageType = errors.New("file type not allowed; use png, jpg, jpeg or gif")

func allowedImage(filename string) bool {
	return allowedImageExts[strings.ToLower(filepath.Ext(filename))]
}

// sanitizeFilename strips any path components and reduces the name to a
// safe character set. An upload reusing an existing name overwrites the
// earlier file.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// saveProductImage validates the upload against the extension allow-list
// and writes it into the upload directory, returning the stored filename.
func (app *application) saveProductImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	if !allowedImage(header.Filename) {
		return "", errImageType
	}

	if err := os.MkdirAll(app.uploadDir, 0o755); err != nil {
		return "", err
	}

	name := sanitizeFilename(header.Filename)
	dst, err := os.Create(filepath.Join(app.uploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return name, nil
}
