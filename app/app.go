package app

import (
	"fmt"
	"net/http"

	"blorkfield-site/app/controller"
	"blorkfield-site/app/router"
	"blorkfield-site/config"
	"blorkfield-site/logger"
	"blorkfield-site/repository"
	"blorkfield-site/service"
)

// App holds the initialized catalog and shared dependencies
type App struct {
	Config  *config.Config
	Log     logger.Logger
	Catalog *repository.CatalogRepository
	// Source describes where the catalog was loaded from
	Source string
}

// Initialize loads and validates the catalog.
// An invalid catalog stops initialization with a *utils.ValidationError.
func Initialize(cfg *config.Config, log logger.Logger) (*App, error) {
	products := repository.DefaultProducts()
	source := "built-in"

	if cfg.Catalog.Path != "" {
		loaded, err := repository.LoadProductsFile(cfg.Catalog.Path)
		if err != nil {
			return nil, err
		}
		products = loaded
		source = cfg.Catalog.Path
	}

	repo, err := repository.NewCatalogRepository(products)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s catalog: %w", source, err)
	}

	log.Debug("Catalog loaded", logger.String("source", source), logger.Int("products", repo.Len()))
	return &App{Config: cfg, Log: log, Catalog: repo, Source: source}, nil
}

// SiteInfo returns the page metadata from the configuration
func (a *App) SiteInfo() service.SiteInfo {
	return service.SiteInfo{
		Title:       a.Config.Site.Title,
		Description: a.Config.Site.Description,
		BaseURL:     a.Config.Site.BaseURL,
	}
}

// CatalogService renders with images resolved against the configured asset base URL
func (a *App) CatalogService() *service.CatalogService {
	renderer := service.NewCardRenderer(service.NewPathResolver(a.Config.Assets.BaseURL, nil))
	return service.NewCatalogService(a.Catalog, renderer, a.SiteInfo(), a.Log)
}

// Handler builds the preview server. Images are always served from the
// asset source directory under /assets/.
func (a *App) Handler() http.Handler {
	renderer := service.NewCardRenderer(service.NewPathResolver("/assets/", nil))
	catalogService := service.NewCatalogService(a.Catalog, renderer, a.SiteInfo(), a.Log)

	controllers := &router.Controllers{
		Catalog: controller.NewCatalogController(a.Catalog, catalogService, a.Log),
	}
	return router.SetupRoutes(controllers, a.Config.Assets.SourceDir, a.Log)
}

// SiteBuilder creates a builder wired to the configured asset directories
func (a *App) SiteBuilder() *service.SiteBuilder {
	optimizer := service.NewImageOptimizer(a.Config.Assets.SourceDir, a.Config.Assets.CacheDir, a.Log)
	return service.NewSiteBuilder(a.Catalog, a.Config.Assets.SourceDir, optimizer, a.Log)
}
