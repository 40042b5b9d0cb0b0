package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bharat3214/Genei/internal/client/client"
	"github.com/bharat3214/Genei/internal/filex"
	"github.com/bharat3214/Genei/internal/netx"
)

// DocumentService moves research paper full texts between local files and
// object storage.
type DocumentService interface {
	Upload(ctx context.Context, paperID int64, path string) (key string, err error)
	Download(ctx context.Context, paperID int64) (path string, err error)
}

type documentService struct {
	client      client.Client
	downloadDir string
}

func NewDocumentService(c client.Client, downloadDir string) DocumentService {
	return &documentService{client: c, downloadDir: downloadDir}
}

// Upload asks the server for a presigned PUT URL and streams the file to it.
func (s *documentService) Upload(ctx context.Context, paperID int64, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}

	link, err := s.client.RequestDocumentUpload(ctx, paperID)
	if err != nil {
		return "", err
	}
	if err := netx.UploadToPresignedURL(ctx, link.URL, f, fi.Size()); err != nil {
		return "", err
	}
	return link.Key, nil
}

// Download fetches the paper's document into the download directory and
// returns the local path. A partial file is removed on failure.
func (s *documentService) Download(ctx context.Context, paperID int64) (path string, err error) {
	link, err := s.client.DocumentURL(ctx, paperID)
	if err != nil {
		return "", err
	}

	dir, err := filex.EnsureDir(s.downloadDir)
	if err != nil {
		return "", err
	}
	path = filepath.Join(dir, filex.DocumentFileName(link.Key))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			err = errors.Join(err, os.Remove(path))
			path = ""
		}
	}()

	if _, err = netx.DownloadFromPresignedURL(ctx, link.URL, f); err != nil {
		return path, err
	}
	return path, nil
}
