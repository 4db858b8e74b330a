// Copyright (c) 2025-2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"testing"
	"testing/fstest"
	"time"
)

func testTemplatesFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`{{define "base"}}<html><body>{{template "flash" .}}{{template "content" .}}</body></html>{{end}}`),
		},
		"partials/flash.html": &fstest.MapFile{
			Data: []byte(`{{define "flash"}}{{if .Flash}}<div class="{{.FlashType}}">{{.Flash}}</div>{{end}}{{end}}`),
		},
		"site/index.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}<h1>{{.Title}}</h1>{{end}}`),
		},
		"auth/login.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}<form></form>{{end}}`),
		},
	}
}

func TestNew_ParsesPages(t *testing.T) {
	r, err := New(Config{TemplatesFS: testTemplatesFS()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, name := range []string{"site/index", "auth/login"} {
		if _, ok := r.templates[name]; !ok {
			t.Errorf("template %q not parsed", name)
		}
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	r, err := New(Config{TemplatesFS: testTemplatesFS()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	err = r.Render(nil, nil, "site/missing", TemplateData{})
	if err == nil {
		t.Fatal("Render() error = nil, want not-found error")
	}
}

func TestTemplateFuncs(t *testing.T) {
	funcs := (&Renderer{}).templateFuncs()

	ts := time.Date(2025, time.August, 3, 14, 30, 0, 0, time.UTC)

	postDate := funcs["postDate"].(func(time.Time) string)
	if got := postDate(ts); got != "August 3, 2025" {
		t.Errorf("postDate = %q, want %q", got, "August 3, 2025")
	}

	formatDate := funcs["formatDate"].(func(time.Time) string)
	if got := formatDate(ts); got != "Aug 3, 2025" {
		t.Errorf("formatDate = %q, want %q", got, "Aug 3, 2025")
	}

	truncate := funcs["truncate"].(func(string, int) string)
	if got := truncate("hello world", 5); got != "hello..." {
		t.Errorf("truncate = %q, want %q", got, "hello...")
	}
	if got := truncate("hi", 5); got != "hi" {
		t.Errorf("truncate = %q, want %q", got, "hi")
	}
}
