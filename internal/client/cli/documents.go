package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Upload attaches a local file as a research paper's full text.
func (a *App) Upload(ctx context.Context, args []string) error {
	paperID, err := parseID(args, 0, "paper id")
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return errors.New("missing file path")
	}
	path := strings.Join(args[1:], " ")

	key, err := a.documentService.Upload(ctx, paperID, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Uploaded %s as %s\n", path, key)
	return nil
}

// Download saves a research paper's full text into the download directory.
func (a *App) Download(ctx context.Context, args []string) error {
	paperID, err := parseID(args, 0, "paper id")
	if err != nil {
		return err
	}

	path, err := a.documentService.Download(ctx, paperID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved to %s\n", path)
	return nil
}
