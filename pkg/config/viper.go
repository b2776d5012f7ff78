// Package config is responsible for initializing the application's
// configuration. It uses the Viper library to read settings from a config
// file, environment variables, and command-line flags, providing a unified
// configuration system.
package config

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/JakeFAU/startup-discovery/internal/logging"
)

// InitConfig initializes the application's configuration using Viper. It
// sets up default values, defines configuration search paths, and enables
// reading from environment variables. Call once at application startup.
func InitConfig() {
	viper.SetConfigName("config")
	viper.AddConfigPath(".")                // Current working directory
	viper.AddConfigPath("/etc/discovery/")  // System-wide configuration
	viper.AddConfigPath("$HOME/.discovery") // User-specific configuration

	const defaultUA = "StartupDiscovery/1.0 (+http://github.com/JakeFAU/startup-discovery)"
	viper.SetDefault("discovery.user_agent", defaultUA)
	viper.SetDefault("discovery.target_count", 150)
	viper.SetDefault("discovery.workers", 4)
	viper.SetDefault("discovery.source_limit", 50)
	viper.SetDefault("discovery.source_timeout", "60s")
	viper.SetDefault("discovery.request_timeout", "15s")
	viper.SetDefault("discovery.retry_attempts", 3)
	viper.SetDefault("discovery.enrich_timeout", "5s")
	viper.SetDefault("discovery.domain_delay", "500ms")
	viper.SetDefault("discovery.render_enabled", false)
	viper.SetDefault("discovery.render_timeout", "20s")
	viper.SetDefault("discovery.enable_linkedin", false)
	viper.SetDefault("discovery.tier2_live_sources", false)
	viper.SetDefault("discovery.output_path", "data/discovered_startups.json")

	viper.SetDefault("sink.provider", "file")
	viper.SetDefault("database.provider", "noop")
	viper.SetDefault("queue.provider", "noop")

	viper.SetDefault("server.addr", ":8080")

	viper.SetEnvPrefix("DISCOVERY") // e.g. DISCOVERY_DISCOVERY_TARGET_COUNT=200
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logging.L.Warn("Config file not found; using defaults and environment variables.")
		} else {
			logging.L.Error("Error reading config file", zap.Error(err))
		}
	} else {
		logging.L.Info("Using config file", zap.String("path", viper.ConfigFileUsed()))
	}
}
