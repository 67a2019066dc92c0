package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/marquee/internal/config"
	"github.com/lepinkainen/marquee/internal/tui"
)

var (
	stdout io.Writer = os.Stdout
	runTUI           = tui.Run
)

// CLI represents the complete command structure for the marquee application
type CLI struct {
	// Global flags
	APIKey      string `name:"api-key" help:"OMDb API key (defaults to omdb.api_key or OMDB_API_KEY)"`
	Storage     string `help:"Favorites storage backend (sqlite or file)"`
	StoragePath string `help:"Path to the favorites database or JSON file"`
	LogLevel    string `help:"Log level (debug, info, warn, error)"`

	TUI       TUICmd       `cmd:"" default:"1" help:"Browse trending movies and search interactively"`
	Search    SearchCmd    `cmd:"" help:"Search movies by title"`
	Trending  TrendingCmd  `cmd:"" help:"List the trending movies"`
	Show      ShowCmd      `cmd:"" help:"Show details for a title"`
	Favorites FavoritesCmd `cmd:"" help:"List or change favorite titles"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("marquee"),
		kong.Description("Look up movies on OMDb and keep a list of favorites."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	kctx.BindTo(ctx, (*context.Context)(nil))

	if err := kctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	if err := config.BindEnv(viper.GetViper()); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}
}

func updateGlobalConfig(cli *CLI) {
	overrides := map[string]string{
		config.KeyAPIKey:         cli.APIKey,
		config.KeyStorageBackend: cli.Storage,
		config.KeyStoragePath:    cli.StoragePath,
		config.KeyLogLevel:       cli.LogLevel,
	}
	for key, value := range overrides {
		if value != "" {
			viper.Set(key, value)
		}
	}
}

func initLogging() {
	setLogOutput(os.Stderr, slog.LevelInfo)
}

func setLogOutput(w io.Writer, level slog.Level) {
	handler := humanlog.NewHandler(w, &humanlog.Options{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// loadConfig resolves the configuration and applies its log level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	setLogOutput(os.Stderr, cfg.Log.Level)
	return cfg, nil
}
