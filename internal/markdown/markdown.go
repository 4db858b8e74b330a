// Copyright (c) 2025-2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package markdown renders authored Markdown into sanitized HTML.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md converts Markdown to HTML. Unsafe raw HTML is allowed here and
// stripped afterwards by the sanitizer, so authored inline HTML survives
// sanitization rather than being escaped.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// sanitizer strips dangerous elements (scripts, event handlers) while
// keeping the tags reasonable for user-generated content.
var sanitizer = bluemonday.UGCPolicy()

// Render converts Markdown source to sanitized HTML.
func Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return sanitizer.Sanitize(buf.String()), nil
}

// SanitizeText strips all HTML from plain-text input such as comments.
func SanitizeText(s string) string {
	return bluemonday.StrictPolicy().Sanitize(s)
}
