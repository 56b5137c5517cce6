package storage

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/users"
	"github.com/pkg/errors"
)

// ChunkSize is the largest single request body; bigger files go through an
// upload session. Dropbox refuses single uploads over 150MiB.
var ChunkSize int64 = 64 << 20

type Dropbox struct {
	Folder string
	files  files.Client
}

// NewDropbox links the account for the access token and logs who it is.
func NewDropbox(token, folder string) (*Dropbox, error) {
	conf := dropbox.Config{Token: token, LogLevel: dropbox.LogOff}
	account, err := users.New(conf).GetCurrentAccount()
	if err != nil {
		return nil, errors.Wrap(err, "dropbox account")
	}
	name := account.Email
	if account.Name != nil {
		name = account.Name.DisplayName
	}
	log.Printf("linked account: %s", name)
	return &Dropbox{Folder: folder, files: files.New(conf)}, nil
}

func (self *Dropbox) Upload(ctx context.Context, localPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	remote := RemotePath(self.Folder, localPath)
	var meta *files.FileMetadata
	if info.Size() <= ChunkSize {
		arg := files.NewUploadArg(remote)
		arg.Autorename = true
		meta, err = self.files.Upload(arg, f)
	} else {
		meta, err = self.uploadSession(ctx, remote, f, info.Size())
	}
	if err != nil {
		return "", errors.Wrapf(err, "dropbox upload %s", remote)
	}
	return meta.PathDisplay, nil
}

func (self *Dropbox) uploadSession(ctx context.Context, remote string, r io.Reader, size int64) (*files.FileMetadata, error) {
	start, err := self.files.UploadSessionStart(files.NewUploadSessionStartArg(), io.LimitReader(r, ChunkSize))
	if err != nil {
		return nil, err
	}
	offset := ChunkSize
	for size-offset > ChunkSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cursor := files.NewUploadSessionCursor(start.SessionId, uint64(offset))
		arg := files.NewUploadSessionAppendArg(cursor)
		if err := self.files.UploadSessionAppendV2(arg, io.LimitReader(r, ChunkSize)); err != nil {
			return nil, err
		}
		offset += ChunkSize
	}
	cursor := files.NewUploadSessionCursor(start.SessionId, uint64(offset))
	commit := files.NewCommitInfo(remote)
	commit.Autorename = true
	return self.files.UploadSessionFinish(files.NewUploadSessionFinishArg(cursor, commit), r)
}
