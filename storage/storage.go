// Package storage uploads motion snapshots and clips somewhere they can be
// viewed from away from home.
package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/barnybug/motionnotify/config"
)

// Uploader stores a local file and returns where it was put.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// RemotePath is /<folder>/<basename of local>.
func RemotePath(folder, localPath string) string {
	return path.Join("/", folder, filepath.Base(localPath))
}

// New builds the uploader for the configured backend. The "none" backend
// returns a nil Uploader.
func New(conf *config.Config) (Uploader, error) {
	switch conf.Storage.Backend {
	case "dropbox":
		return NewDropbox(conf.Dropbox.Access_Token, conf.Dropbox.Folder)
	case "dir":
		return NewDir(conf.Storage.Path, conf.Dropbox.Folder), nil
	case "none":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown storage backend: %s", conf.Storage.Backend)
}
