package service

import (
	"context"

	"blorkfield-site/models"
)

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListImages(ctx context.Context, folderID string) ([]models.DriveAsset, error)
	DownloadImage(ctx context.Context, fileID string) ([]byte, error)
}
