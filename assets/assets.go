// Package assets embeds the portal's static files.
package assets

import "embed"

//go:embed css/* js/*
var Assets embed.FS
