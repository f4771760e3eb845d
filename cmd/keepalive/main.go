package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"go-portfolio-site/config"
	"go-portfolio-site/pkg/keepalive"
	"go-portfolio-site/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	targetURL string
	timeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "keepalive",
	Short: "Post a synthetic contact submission so the hosted store stays active",
	Long: `Sends one fixed contact form submission to the site's contact endpoint.
Schedule it (cron, CI) often enough that the hosted database never idles
long enough to be paused. Exits non-zero unless the endpoint answers 200.`,
	SilenceUsage: true,
	RunE:         runKeepAlive,
}

func init() {
	rootCmd.Flags().StringVarP(&targetURL, "url", "u", "", "Contact endpoint URL (defaults to CONTACT_API_URL)")
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", 10*time.Second, "Request timeout")
}

func runKeepAlive(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger.Init(cfg.LogLevel)

	url := targetURL
	if url == "" {
		url = cfg.ContactAPIURL
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	if err := keepalive.Ping(ctx, &http.Client{Timeout: timeout}, url); err != nil {
		logger.Log.Error("Keep-alive failed", "url", url, "error", err)
		return err
	}
	logger.Log.Info("Keep-alive succeeded", "url", url)
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
