package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"k8s.io/klog"

	"github.com/openshift-eng/org-directory/pkg/api"
	"github.com/openshift-eng/org-directory/pkg/config"
	"github.com/openshift-eng/org-directory/pkg/datasource"
	"github.com/openshift-eng/org-directory/pkg/identity"
	"github.com/openshift-eng/org-directory/pkg/members"
)

type options struct {
	ConfigPath string
	Listen     string
}

func main() {
	if err := run(); err != nil {
		klog.Exitf("org-directory failed: %v", err)
	}
}

func run() error {
	emptyFlags := flag.NewFlagSet("empty", flag.ContinueOnError)
	klog.InitFlags(emptyFlags)
	opt := &options{}
	pflag.StringVar(&opt.ConfigPath, "config", "/etc/org-directory/config.yaml", "Path to the service configuration file.")
	pflag.StringVar(&opt.Listen, "listen", "", "Listen address, overriding the configured value.")
	pflag.CommandLine.AddGoFlag(emptyFlags.Lookup("v"))
	pflag.Parse()
	klog.SetOutput(os.Stderr)

	cfg, err := config.Load(opt.ConfigPath)
	if err != nil {
		return err
	}
	if opt.Listen != "" {
		cfg.Listen = opt.Listen
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fs := afero.NewOsFs()
	orgSources := make([]datasource.DataSource, 0, len(cfg.OrgSources))
	for i, src := range cfg.OrgSources {
		source, err := buildSource(ctx, fs, src)
		if err != nil {
			return fmt.Errorf("org source %d: %w", i, err)
		}
		orgSources = append(orgSources, source)
	}
	linkSource, err := buildSource(ctx, fs, cfg.Identity.Source)
	if err != nil {
		return fmt.Errorf("identity source: %w", err)
	}

	memberService := members.NewService(orgSources...)
	linkService := identity.NewService(linkSource, time.Duration(cfg.Identity.CacheTTL))

	logger := logrus.New()
	handler := api.NewMembersHandler(memberService, linkService, time.Duration(cfg.SnapshotTTL), cfg.DefaultPageSize, logger.WithField("component", "members"))

	// Upstream document changes drop the cached state early instead of
	// waiting out the TTL.
	for _, source := range orgSources {
		if err := source.Watch(ctx, func() error {
			handler.InvalidateSnapshot()
			return nil
		}); err != nil {
			klog.Warningf("Failed to watch %s: %v", source, err)
		}
	}
	if err := linkSource.Watch(ctx, func() error {
		linkService.Invalidate()
		return nil
	}); err != nil {
		klog.Warningf("Failed to watch %s: %v", linkSource, err)
	}

	server := &http.Server{
		Addr:              cfg.Listen,
		Handler:           api.NewRouter(handler, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		klog.Infof("Listening on %s", cfg.Listen)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		klog.Infof("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

func buildSource(ctx context.Context, fs afero.Fs, src config.Source) (datasource.DataSource, error) {
	if src.File != "" {
		return datasource.NewFileDataSource(fs, src.File), nil
	}
	return datasource.NewGCSDataSource(ctx, datasource.GCSConfig{
		Bucket:          src.GCS.Bucket,
		ObjectPath:      src.GCS.ObjectPath,
		CredentialsJSON: src.GCS.CredentialsJSON,
		CheckInterval:   time.Duration(src.GCS.CheckInterval),
	})
}
