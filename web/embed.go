// Package web embeds the dashboard shell and its static assets into the
// server binary so deployments stay a single file.
package web

import "embed"

// TemplatesFS holds the HTML templates rendered server-side.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds the stylesheet and client script.
//
//go:embed static/*
var StaticFS embed.FS
