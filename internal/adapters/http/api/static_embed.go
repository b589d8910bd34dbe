package api

import (
	"embed"
	"io/fs"
)

//go:embed static/*
var staticFS embed.FS

// dashboardFS serves the dashboard page from the embed root, so the
// binary carries its own monitoring UI.
var dashboardFS fs.FS = func() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// Should never happen with a correct embed layout.
		return staticFS
	}
	return sub
}()
