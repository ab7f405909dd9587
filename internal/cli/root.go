package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ppiankov/factview/internal/logging"
	"github.com/ppiankov/factview/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version is overridden at build time with -ldflags
var Version = "v0.1.0"

var (
	cfgFile string
	verbose bool
	logFile string
	logger  = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "factview",
	Short: "factview - present fact-check verdicts from an evaluation service",
	Long: `factview submits a text sample to an external fact-checking service
(the OpenFactCheck evaluate-response API) and presents its verdict:
detected claims, per-claim factuality, supporting citations and an
overall credibility score.

factview does not verify facts itself. It displays what the service
concluded.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
}

// Execute runs the root command; cancelling ctx stops long-running commands
func Execute(ctx context.Context) error {
	defer func() { _ = logger.Sync() }()
	return rootCmd.ExecuteContext(ctx)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("factview %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.factview/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("log-file"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in .env, the config file and FACTVIEW_* environment variables
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".factview"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	bindEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		}
	}
}

// bindEnv maps FACTVIEW_* variables onto config keys. The service URL and
// the OpenAI key also answer to their conventional unprefixed names.
func bindEnv() {
	viper.SetEnvPrefix("FACTVIEW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = viper.BindEnv("api.base_url", "FACTVIEW_API_URL", "API_URL")
	_ = viper.BindEnv("llm.api_key", "FACTVIEW_LLM_API_KEY", "OPENAI_API_KEY")

	// Unmarshal only sees keys viper knows about
	defaults := model.DefaultConfig()
	viper.SetDefault("api.timeout", defaults.API.Timeout)
	viper.SetDefault("api.max_body_bytes", defaults.API.MaxBodyBytes)
	viper.SetDefault("http.user_agent", defaults.HTTP.UserAgent)
	viper.SetDefault("http.http_proxy", "")
	viper.SetDefault("http.https_proxy", "")
	viper.SetDefault("http.no_proxy", "")
	viper.SetDefault("citations.cap", defaults.Citations.Cap)
	viper.SetDefault("concurrency.workers", defaults.Concurrency.Workers)
	viper.SetDefault("rate_limiting.requests_per_second", defaults.RateLimiting.RequestsPerSecond)
	viper.SetDefault("rate_limiting.burst_size", defaults.RateLimiting.BurstSize)
	viper.SetDefault("server.addr", defaults.Server.Addr)
	viper.SetDefault("server.session_ttl", defaults.Server.SessionTTL)
	viper.SetDefault("server.allowed_origins", defaults.Server.AllowedOrigins)
	viper.SetDefault("output.include_footer", defaults.Output.IncludeFooter)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("llm.provider", "")
	viper.SetDefault("llm.model", "")
	viper.SetDefault("llm.base_url", "")
	viper.SetDefault("llm.timeout", defaults.LLM.Timeout)
	viper.SetDefault("llm.strict_evidence", defaults.LLM.StrictEvidence)
	viper.SetDefault("llm.max_tokens", defaults.LLM.MaxTokens)
}

// loadConfig merges defaults, config file, env and flags.
// It does not validate; commands that talk to the service call requireAPI.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// requireAPI loads the configuration and checks it before any submission
func requireAPI() (*model.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogger builds the process logger. The TUI owns the terminal, so it
// logs to a file even when none is configured.
func setupLogger(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	file := cfg.Log.File
	if file == "" && cmd.Name() == tuiCmd.Name() {
		file = filepath.Join(os.TempDir(), "factview.log")
	}

	l, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		File:    file,
		Verbose: verbose,
	})
	if err != nil {
		return err
	}
	logger = l
	return nil
}
