// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package certificate_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edura-app/edura/internal/learn/certificate"
)

/*
TestFileRenderer_Render verifies artifact creation and content substitution.
*/
func TestFileRenderer_Render(t *testing.T) {
	dir := t.TempDir()
	renderer, err := certificate.NewFileRenderer(dir)
	require.NoError(t, err)

	issuedAt := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	location, err := renderer.Render(context.Background(), "Minh Nguyen", "Go from the Ground Up", issuedAt)
	require.NoError(t, err)
	assert.Equal(t, location, filepath.Base(location))

	content, err := os.ReadFile(filepath.Join(dir, location))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Minh Nguyen")
	assert.Contains(t, string(content), "Go from the Ground Up")
	assert.Contains(t, string(content), "March 14, 2026")
}

func TestFileRenderer_Render_UniqueLocations(t *testing.T) {
	renderer, err := certificate.NewFileRenderer(t.TempDir())
	require.NoError(t, err)

	first, err := renderer.Render(context.Background(), "A", "B", time.Now())
	require.NoError(t, err)
	second, err := renderer.Render(context.Background(), "A", "B", time.Now())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestFileRenderer_Render_EscapesMarkup(t *testing.T) {
	dir := t.TempDir()
	renderer, err := certificate.NewFileRenderer(dir)
	require.NoError(t, err)

	location, err := renderer.Render(context.Background(), "<script>alert(1)</script>", "Course", time.Now())
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, location))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "<script>")
}

/*
TestFileRenderer_Resolve verifies the traversal guard on stored locations.
*/
func TestFileRenderer_Resolve(t *testing.T) {
	dir := t.TempDir()
	renderer, err := certificate.NewFileRenderer(dir)
	require.NoError(t, err)

	location, err := renderer.Render(context.Background(), "A", "B", time.Now())
	require.NoError(t, err)

	path, err := renderer.Resolve(location)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, location), path)

	for _, malformed := range []string{"", "../secrets", "sub/dir.html", ".hidden", "missing.html"} {
		_, err := renderer.Resolve(malformed)
		assert.Error(t, err, malformed)
	}
}
