package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/barnybug/motionnotify/util"
	"github.com/pkg/errors"
)

// Dir copies media into a local directory, typically a NAS mount.
type Dir struct {
	Root   string
	Folder string
}

func NewDir(root, folder string) *Dir {
	return &Dir{Root: util.ExpandUser(root), Folder: folder}
}

func (self *Dir) Upload(ctx context.Context, localPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dest := filepath.Join(self.Root, filepath.FromSlash(RemotePath(self.Folder, localPath)))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", errors.Wrap(err, "creating folder")
	}

	src, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	tmp := dest + ".part"
	dst, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(tmp)
		return "", errors.Wrapf(err, "copying to %s", dest)
	}
	if err := dst.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	dest, err = available(dest)
	if err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return dest, nil
}

// available picks a name that is not taken, adding " (1)", " (2)"... before
// the extension the way Dropbox autorenames.
func available(dest string) (string, error) {
	ext := filepath.Ext(dest)
	base := strings.TrimSuffix(dest, ext)
	name := dest
	for i := 1; ; i++ {
		_, err := os.Lstat(name)
		if os.IsNotExist(err) {
			return name, nil
		}
		if err != nil {
			return "", err
		}
		name = fmt.Sprintf("%s (%d)%s", base, i, ext)
	}
}
