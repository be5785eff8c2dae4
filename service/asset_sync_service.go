package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"blorkfield-site/logger"
	"blorkfield-site/models"
	"blorkfield-site/repository"
)

// AssetSyncService downloads the images referenced by the catalog from a
// Drive folder into the local asset source directory.
type AssetSyncService struct {
	driveService DriveServiceInterface
	repository   repository.CatalogRepositoryInterface
	sourceDir    string
	log          logger.Logger
}

// NewAssetSyncService creates a new AssetSyncService
func NewAssetSyncService(
	driveService DriveServiceInterface,
	repo repository.CatalogRepositoryInterface,
	sourceDir string,
	log logger.Logger,
) *AssetSyncService {
	return &AssetSyncService{driveService: driveService, repository: repo, sourceDir: sourceDir, log: log}
}

// SyncCatalogImages fetches every catalog image not yet on disk.
// Files are matched by name; images absent from the folder are reported in Missing.
func (s *AssetSyncService) SyncCatalogImages(ctx context.Context, folderID string) (*models.SyncResult, error) {
	s.log.Info("Starting asset sync", logger.String("folder_id", folderID), logger.String("source_dir", s.sourceDir))

	if err := os.MkdirAll(s.sourceDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create asset directory: %w", err)
	}

	driveAssets, err := s.driveService.ListImages(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images from Drive: %w", err)
	}

	byName := make(map[string]models.DriveAsset, len(driveAssets))
	for _, a := range driveAssets {
		if _, dup := byName[a.FileName]; dup {
			s.log.Warn("Duplicate file name in Drive folder, keeping first", logger.String("file", a.FileName))
			continue
		}
		byName[a.FileName] = a
	}

	refs := catalogImages(s.repository.GetAll(ctx))
	result := &models.SyncResult{Total: len(refs), Missing: []string{}, Errors: []string{}}

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dst := filepath.Join(s.sourceDir, filepath.FromSlash(ref.name))
		if _, err := os.Stat(dst); err == nil {
			s.log.Debug("Skipping image already on disk", logger.String("image", ref.name))
			result.Skipped++
			continue
		}

		asset, ok := byName[filepath.Base(ref.name)]
		if !ok {
			s.log.Warn("Catalog image not found in Drive", logger.String("image", ref.name))
			result.Missing = append(result.Missing, ref.name)
			continue
		}

		data, err := s.driveService.DownloadImage(ctx, asset.DriveFileID)
		if err != nil {
			msg := fmt.Sprintf("download %s (%s): %v", ref.name, asset.DriveFileID, err)
			s.log.Error("Failed to download image", logger.String("image", ref.name), logger.Error(err))
			result.Errors = append(result.Errors, msg)
			continue
		}

		if err := writeAsset(s.sourceDir, ref.name, data); err != nil {
			s.log.Error("Failed to save image", logger.String("image", ref.name), logger.Error(err))
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		result.Downloaded++
	}

	s.log.Info("Asset sync completed",
		logger.Int("total", result.Total),
		logger.Int("downloaded", result.Downloaded),
		logger.Int("skipped", result.Skipped),
		logger.Int("missing", len(result.Missing)),
		logger.Int("failed", len(result.Errors)),
	)
	return result, nil
}
