package guidebook

import "embed"

// EmbeddedAssets contains the static assets shipped with guidebook:
// guidebook.js (live session client) and guidebook.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
