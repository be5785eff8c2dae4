package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"blorkfield-site/config"
	"blorkfield-site/logger"
	"blorkfield-site/service"
	"blorkfield-site/utils"
)

// Version is set at build time with -ldflags "-X blorkfield-site/app.Version=..."
var Version = "dev"

type cli struct {
	cfgFile string
	debug   bool

	cfg *config.Config
	log logger.Logger
}

// Execute runs the root command until it finishes or the process is interrupted
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the blorkfield command tree
func NewRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "blorkfield",
		Short:         "Build and preview the Blorkfield product catalog site",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsConfig(cmd) {
				return nil
			}
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default ./site.yaml or ./config/site.yaml)")
	root.PersistentFlags().BoolVar(&c.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		c.validateCommand(),
		c.buildCommand(),
		c.serveCommand(),
		c.previewCommand(),
		c.assetsCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "blorkfield %s\n", Version)
			},
		},
	)
	return root
}

// needsConfig is false for commands that must work with a broken config
func needsConfig(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}
	return true
}

func (c *cli) setup() error {
	cfg, err := config.Load(viper.New(), c.cfgFile)
	if err != nil {
		return err
	}
	if c.debug {
		cfg.Log.Level = "debug"
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Development: cfg.Log.Development})
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.log = log
	return nil
}

func (c *cli) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog for missing fields, bad URLs and duplicate ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			a, err := Initialize(c.cfg, c.log)
			if err != nil {
				var ve *utils.ValidationError
				if errors.As(err, &ve) {
					fmt.Fprintln(out, "✗ catalog is invalid:")
					for _, line := range strings.Split(strings.TrimPrefix(ve.Error(), "invalid catalog: "), "; ") {
						fmt.Fprintf(out, "  - %s\n", line)
					}
				}
				return err
			}

			products := a.Catalog.GetAll(cmd.Context())
			fmt.Fprintf(out, "✓ %s catalog is valid: %d products\n", a.Source, len(products))
			for _, p := range products {
				fmt.Fprintf(out, "  %-16s %s\n", p.ID, p.Title)
			}
			return nil
		},
	}
}

func (c *cli) buildCommand() *cobra.Command {
	var outDir string
	var noOptimize bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write index.html, products.json and images to the output directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := Initialize(c.cfg, c.log)
			if err != nil {
				return err
			}

			if outDir == "" {
				outDir = c.cfg.Build.OutputDir
			}

			result, err := a.SiteBuilder().Build(cmd.Context(), service.BuildOptions{
				OutputDir:     outDir,
				AssetsBaseURL: c.cfg.Assets.BaseURL,
				Optimize:      c.cfg.Assets.Optimize && !noOptimize,
				Site:          a.SiteInfo(),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ built %d products into %s (%d assets)\n", result.Products, result.OutputDir, len(result.Assets))
			for _, m := range result.Missing {
				fmt.Fprintf(out, "  ! missing image: %s\n", m)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (overrides build.output_dir)")
	cmd.Flags().BoolVar(&noOptimize, "no-optimize", false, "copy images without resizing")
	return cmd
}

func (c *cli) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rendered catalog and its JSON API for local preview",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := Initialize(c.cfg, c.log)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = c.cfg.Server.Address
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           a.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return runServer(cmd.Context(), srv, c.log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.address)")
	return cmd
}

// runServer serves until ctx is done, then shuts down gracefully
func runServer(ctx context.Context, srv *http.Server, log logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", logger.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info("Server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func (c *cli) previewCommand() *cobra.Command {
	var format, outFile string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Capture the rendered page as PNG or PDF with headless Chrome",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != "png" && format != "pdf" {
				return fmt.Errorf("invalid format %q: valid formats are png, pdf", format)
			}
			if outFile == "" {
				outFile = filepath.Join(c.cfg.Build.OutputDir, "preview."+format)
			}

			a, err := Initialize(c.cfg, c.log)
			if err != nil {
				return err
			}

			// The page is served on a loopback port for the browser to load.
			ln, err := net.Listen("tcp", "127.0.0.1:0")
			if err != nil {
				return fmt.Errorf("failed to listen: %w", err)
			}
			srv := &http.Server{Handler: a.Handler(), ReadHeaderTimeout: 10 * time.Second}
			go func() { _ = srv.Serve(ln) }()
			defer srv.Close()

			preview := service.NewPreviewService(service.PreviewOptions{
				ChromePath: c.cfg.Preview.ChromePath,
				Timeout:    c.cfg.Preview.Timeout,
				Width:      c.cfg.Preview.Width,
				Height:     c.cfg.Preview.Height,
			}, c.log)

			pageURL := "http://" + ln.Addr().String() + "/"
			var data []byte
			if format == "pdf" {
				data, err = preview.PrintPDF(cmd.Context(), pageURL)
			} else {
				data, err = preview.CapturePNG(cmd.Context(), pageURL)
			}
			if err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(outFile), 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := os.WriteFile(outFile, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outFile, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ wrote %s (%d bytes)\n", outFile, len(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "png", "output format: png or pdf")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <build.output_dir>/preview.<format>)")
	return cmd
}

func (c *cli) assetsCommand() *cobra.Command {
	assets := &cobra.Command{
		Use:   "assets",
		Short: "Manage catalog images",
	}

	var folderID string
	sync := &cobra.Command{
		Use:   "sync",
		Short: "Download catalog images missing from the asset directory from Google Drive",
		RunE: func(cmd *cobra.Command, args []string) error {
			if folderID == "" {
				folderID = c.cfg.Drive.FolderID
			}
			if folderID == "" {
				return errors.New("no Drive folder: set --folder, drive.folder_id or DRIVE_FOLDER_ID")
			}
			if c.cfg.Drive.CredentialsPath == "" {
				return errors.New("no Drive credentials: set drive.credentials_path or GOOGLE_APPLICATION_CREDENTIALS")
			}

			a, err := Initialize(c.cfg, c.log)
			if err != nil {
				return err
			}

			drive, err := service.NewDriveService(cmd.Context(), c.cfg.Drive.CredentialsPath)
			if err != nil {
				return err
			}

			result, err := service.NewAssetSyncService(drive, a.Catalog, c.cfg.Assets.SourceDir, c.log).
				SyncCatalogImages(cmd.Context(), folderID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ %d downloaded, %d already present, %d missing, %d failed (of %d images)\n",
				result.Downloaded, result.Skipped, len(result.Missing), len(result.Errors), result.Total)
			for _, m := range result.Missing {
				fmt.Fprintf(out, "  ! not in Drive: %s\n", m)
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("%d images failed to sync", len(result.Errors))
			}
			return nil
		},
	}
	sync.Flags().StringVar(&folderID, "folder", "", "Drive folder id (overrides drive.folder_id)")

	assets.AddCommand(sync)
	return assets
}
