// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package certificate

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/edura-app/edura/internal/platform/apperr"
	"github.com/edura-app/edura/pkg/uuidv7"
)

// certificateTemplate is the printable artifact body. Kept deliberately
// self-contained: no external assets, so the file renders anywhere.
const certificateTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Certificate of Completion</title>
<style>
  body { font-family: Georgia, serif; text-align: center; margin: 6em; }
  .frame { border: 6px double #2c3e50; padding: 4em; }
  h1 { letter-spacing: 0.2em; text-transform: uppercase; }
  .student { font-size: 2em; margin: 1em 0; }
  .course { font-size: 1.4em; font-style: italic; }
  .date { margin-top: 3em; color: #555; }
</style>
</head>
<body>
<div class="frame">
  <h1>Certificate of Completion</h1>
  <p>This certifies that</p>
  <p class="student">{{.StudentName}}</p>
  <p>has successfully completed every chapter of</p>
  <p class="course">{{.CourseTitle}}</p>
  <p class="date">Issued on {{.IssuedOn}}</p>
</div>
</body>
</html>
`

// FileRenderer implements [Renderer] by writing HTML artifacts into a local
// directory. The returned location is the bare file name, opaque to callers
// and meaningless outside this renderer.
type FileRenderer struct {
	directory string
	tmpl      *template.Template
}

// NewFileRenderer prepares the artifact directory and parses the template.
func NewFileRenderer(directory string) (*FileRenderer, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, fmt.Errorf("renderer: failed to create artifact directory: %w", err)
	}

	tmpl, err := template.New("certificate").Parse(certificateTemplate)
	if err != nil {
		return nil, fmt.Errorf("renderer: failed to parse template: %w", err)
	}

	return &FileRenderer{directory: directory, tmpl: tmpl}, nil
}

/*
Render writes a certificate artifact and returns its location.

Description: The file name embeds a fresh UUIDv7, so re-rendering never
overwrites an earlier artifact. Safe to call again after a failed issuance.

Parameters:
  - context: context.Context (honored for cancellation before the write)
  - studentName: string
  - courseTitle: string
  - issuedAt: time.Time

Returns:
  - string: Opaque artifact location
  - error: Template or filesystem failures
*/
func (renderer *FileRenderer) Render(context context.Context, studentName, courseTitle string, issuedAt time.Time) (string, error) {
	if err := context.Err(); err != nil {
		return "", err
	}

	name := fmt.Sprintf("cert-%s.html", uuidv7.New())

	file, err := os.Create(filepath.Join(renderer.directory, name))
	if err != nil {
		return "", fmt.Errorf("renderer: failed to create artifact: %w", err)
	}
	defer file.Close()

	data := struct {
		StudentName string
		CourseTitle string
		IssuedOn    string
	}{
		StudentName: studentName,
		CourseTitle: courseTitle,
		IssuedOn:    issuedAt.Format("January 2, 2006"),
	}

	if err := renderer.tmpl.Execute(file, data); err != nil {
		return "", fmt.Errorf("renderer: failed to render artifact: %w", err)
	}

	return name, nil
}

/*
Resolve maps an artifact location back to an absolute file path.

Description: Locations are bare file names issued by Render. Anything that
does not resolve to a direct child of the artifact directory is rejected, so
stored locations can never be abused for path traversal.

Parameters:
  - location: string (as stored on the certificate row)

Returns:
  - string: Absolute path suitable for serving
  - error: apperr.NotFound for malformed locations or missing files
*/
func (renderer *FileRenderer) Resolve(location string) (string, error) {
	if location == "" || location != filepath.Base(location) || strings.HasPrefix(location, ".") {
		return "", apperr.NotFound("Certificate artifact")
	}

	path := filepath.Join(renderer.directory, location)
	if _, err := os.Stat(path); err != nil {
		return "", apperr.NotFound("Certificate artifact")
	}

	return path, nil
}
