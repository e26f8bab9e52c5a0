package main

import (
	"embed"
	"io/fs"
)

//go:embed all:frontend
var frontend embed.FS

// frontendFS roots the embedded assets at the frontend directory so the file
// server resolves / to index.html.
func frontendFS() fs.FS {
	sub, err := fs.Sub(frontend, "frontend")
	if err != nil {
		panic(err)
	}
	return sub
}
