package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"blorkfield-site/models"
	"blorkfield-site/utils"
)

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// NewDriveService creates a new DriveService instance.
// credentialsPath should be the path to a Service Account JSON file.
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	client, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(drive.DriveReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &DriveService{client: client}, nil
}

// ListImages lists the image files directly inside a Drive folder
func (ds *DriveService) ListImages(ctx context.Context, folderID string) ([]models.DriveAsset, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", strings.ReplaceAll(folderID, "'", `\'`))

	var assets []models.DriveAsset
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		for _, f := range r.Files {
			if !strings.HasPrefix(strings.ToLower(f.MimeType), "image/") && !utils.IsImageFile(f.Name) {
				continue
			}
			assets = append(assets, models.DriveAsset{DriveFileID: f.Id, FileName: f.Name, MimeType: f.MimeType})
		}

		pageToken = r.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return assets, nil
}

// DownloadImage downloads the content of a Drive file
func (ds *DriveService) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}
	return data, nil
}
