// Package cmd implements the command-line interface of the pattern harvester.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/north-cloud/pattern-harvester/cmd/catalogs"
	"github.com/jonesrussell/north-cloud/pattern-harvester/cmd/extract"
	"github.com/jonesrussell/north-cloud/pattern-harvester/cmd/harvest"
	"github.com/jonesrussell/north-cloud/pattern-harvester/cmd/schedule"
	"github.com/jonesrussell/north-cloud/pattern-harvester/cmd/status"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/config"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug logging for all commands.
	Debug bool

	rootCmd = &cobra.Command{
		Use:   "pattern-harvester",
		Short: "Harvest pattern PDFs and extract their text and diagrams",
		Long: `pattern-harvester walks paginated catalog listings, downloads every linked
pattern document and writes its text and representative image into mirrored
per-category trees. Re-runs skip documents that are already complete.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment variables are visible to Viper.
	_ = godotenv.Load()

	// Parse flags early so --config and --debug apply before any logger exists.
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pattern-harvester version %s\n", Version)
		},
	})

	rootCmd.AddCommand(harvest.Command())
	rootCmd.AddCommand(extract.Command())
	rootCmd.AddCommand(schedule.Command())
	rootCmd.AddCommand(status.Command())
	rootCmd.AddCommand(catalogs.Command())
}

// initConfig reads in the config file and environment variables.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Environment variables take precedence over file values and defaults.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config.SetDefaults(viper.GetViper())

	// The config file is optional: defaults and environment variables are enough.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config file not found: %v (using defaults and environment variables)\n", err)
	}

	if err := bindCommandLineFlags(); err != nil {
		return err
	}
	if err := bindAppEnvVars(); err != nil {
		return err
	}
	if err := bindMinIOEnvVars(); err != nil {
		return err
	}

	setupDevelopmentLogging()
	return nil
}

func bindCommandLineFlags() error {
	if err := viper.BindPFlag("app.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}
	return nil
}

// bindAppEnvVars maps the conventional short environment names onto config keys.
func bindAppEnvVars() error {
	bindings := map[string][]string{
		"app.environment":          {"APP_ENV"},
		"app.debug":                {"APP_DEBUG"},
		"logger.level":             {"LOG_LEVEL"},
		"logger.encoding":          {"LOG_FORMAT"},
		"catalog.file":             {"CATALOG_FILE"},
		"metrics.addr":             {"METRICS_ADDR"},
		"storage.backend":          {"STORAGE_BACKEND"},
		"crawler.user_agent":       {"CRAWLER_USER_AGENT", "HARVESTER_USER_AGENT"},
		"fetcher.user_agent":       {"FETCHER_USER_AGENT", "HARVESTER_USER_AGENT"},
		"schedule.cron":            {"HARVEST_SCHEDULE"},
		"pipeline.batch_delay":     {"BATCH_DELAY"},
		"storage.completion":       {"COMPLETION_POLICY"},
		"fetcher.max_redirects":    {"FETCHER_MAX_REDIRECTS"},
		"crawler.page_timeout":     {"CRAWLER_PAGE_TIMEOUT"},
		"fetcher.refetch":          {"FETCHER_REFETCH"},
		"extractor.dpi":            {"EXTRACTOR_DPI"},
		"extractor.max_image_side": {"EXTRACTOR_MAX_IMAGE_SIDE"},
	}
	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := viper.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", strings.Join(envs, ","), err)
		}
	}
	return nil
}

func bindMinIOEnvVars() error {
	for _, key := range []string{
		"endpoint", "access_key", "secret_key", "use_ssl",
		"bucket", "state_bucket", "create_bucket", "upload_timeout",
	} {
		env := "MINIO_" + strings.ToUpper(key)
		if err := viper.BindEnv("minio."+key, env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	return nil
}

// setupDevelopmentLogging switches to console output in development and to debug level
// when requested. The environment alone never changes the level.
func setupDevelopmentLogging() {
	debugFlag := Debug || viper.GetBool("app.debug")

	if debugFlag {
		viper.Set("logger.level", "debug")
	}
	if viper.GetString("app.environment") == "development" {
		viper.Set("logger.development", true)
		viper.Set("logger.encoding", "console")
	}

	Debug = debugFlag
}
