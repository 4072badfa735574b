package assets

import "embed"

// ConfigFS contains embedded config templates (under assets/config).
//
//go:embed config/**
var ConfigFS embed.FS
