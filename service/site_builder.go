package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"blorkfield-site/logger"
	"blorkfield-site/models"
	"blorkfield-site/repository"
	"blorkfield-site/utils"
)

// BuildOptions configures a static site build
type BuildOptions struct {
	OutputDir     string
	AssetsBaseURL string
	Optimize      bool
	Site          SiteInfo
}

// BuildResult summarizes what a build wrote
type BuildResult struct {
	OutputDir string   `json:"outputDir"`
	Products  int      `json:"products"`
	Assets    []string `json:"assets"`
	Missing   []string `json:"missing"`
}

// SiteBuilder writes the listing page, the catalog JSON and the images to disk
type SiteBuilder struct {
	repository repository.CatalogRepositoryInterface
	sourceDir  string
	optimizer  *ImageOptimizer
	log        logger.Logger
}

// NewSiteBuilder creates a builder reading images from sourceDir
func NewSiteBuilder(
	repo repository.CatalogRepositoryInterface,
	sourceDir string,
	optimizer *ImageOptimizer,
	log logger.Logger,
) *SiteBuilder {
	return &SiteBuilder{repository: repo, sourceDir: sourceDir, optimizer: optimizer, log: log}
}

// Build writes index.html, products.json and assets/ under opts.OutputDir.
// Images missing from the source directory are reported, not fatal.
func (b *SiteBuilder) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	assetsDir := filepath.Join(opts.OutputDir, "assets")
	if err := os.MkdirAll(assetsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	products := b.repository.GetAll(ctx)
	result := &BuildResult{OutputDir: opts.OutputDir, Products: len(products), Assets: []string{}, Missing: []string{}}

	rewrites, err := b.publishImages(ctx, products, assetsDir, opts.Optimize, result)
	if err != nil {
		return nil, err
	}

	catalog := NewCatalogService(b.repository, NewCardRenderer(NewPathResolver(opts.AssetsBaseURL, rewrites)), opts.Site, b.log)

	page, err := catalog.RenderCatalogHTML(ctx)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(opts.OutputDir, "index.html"), []byte(page), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write index.html: %w", err)
	}

	data, err := catalog.ExportJSON(ctx)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(opts.OutputDir, "products.json"), data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write products.json: %w", err)
	}

	sort.Strings(result.Assets)
	b.log.Info("Site built",
		logger.String("output_dir", opts.OutputDir),
		logger.Int("products", result.Products),
		logger.Int("assets", len(result.Assets)),
		logger.Strings("missing", result.Missing),
	)
	return result, nil
}

type imageRef struct {
	name    string
	variant string
}

// catalogImages lists the local images referenced by products, first use wins
func catalogImages(products []models.Product) []imageRef {
	var refs []imageRef
	seen := map[string]bool{}
	add := func(name, variant string) {
		if name == "" || utils.IsRemoteImage(name) {
			return
		}
		cleaned := utils.CleanImageName(name)
		if cleaned == "" || seen[cleaned] {
			return
		}
		seen[cleaned] = true
		refs = append(refs, imageRef{name: cleaned, variant: variant})
	}
	for _, p := range products {
		add(p.BannerImage, VariantBanner)
		add(p.ThumbnailImage, VariantThumb)
	}
	return refs
}

// publishImages copies or optimizes every referenced image into assetsDir and
// returns the catalog name -> published name rewrites.
func (b *SiteBuilder) publishImages(ctx context.Context, products []models.Product, assetsDir string, optimize bool, result *BuildResult) (map[string]string, error) {
	rewrites := map[string]string{}

	for _, ref := range catalogImages(products) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		srcPath := filepath.Join(b.sourceDir, filepath.FromSlash(ref.name))
		if _, err := os.Stat(srcPath); errors.Is(err, fs.ErrNotExist) {
			b.log.Warn("Catalog image not found", logger.String("image", ref.name), logger.String("source_dir", b.sourceDir))
			result.Missing = append(result.Missing, ref.name)
			continue
		}

		if optimize && b.optimizer != nil {
			outName, data, err := b.optimizer.Process(ref.name, ref.variant)
			if err == nil {
				if err := writeAsset(assetsDir, outName, data); err != nil {
					return nil, err
				}
				rewrites[ref.name] = outName
				result.Assets = append(result.Assets, outName)
				continue
			}
			b.log.Warn("Publishing original image", logger.String("image", ref.name), logger.Error(err))
		}

		if err := copyAsset(srcPath, assetsDir, ref.name); err != nil {
			return nil, err
		}
		result.Assets = append(result.Assets, ref.name)
	}

	return rewrites, nil
}

func writeAsset(assetsDir, name string, data []byte) error {
	dst := filepath.Join(assetsDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create asset directory: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("failed to write asset %s: %w", name, err)
	}
	return nil
}

func copyAsset(srcPath, assetsDir, name string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open image %s: %w", name, err)
	}
	defer src.Close()

	dst := filepath.Join(assetsDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create asset directory: %w", err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create asset %s: %w", name, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy image %s: %w", name, err)
	}
	return out.Close()
}
