package cmd

import (
	"log"

	"github.com/licitops/secop-scout/internal/bidder"
	"github.com/licitops/secop-scout/internal/matching"
	"github.com/licitops/secop-scout/internal/secop"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "secop-scout"
)

type Config struct {
	Search        *secop.SearchParams `mapstructure:"search"`
	Bidder        *bidder.Profile     `mapstructure:"bidder"`
	ContractsFile string              `mapstructure:"contracts-file"`
	SeenFile      string              `mapstructure:"seen-file"`
	UserAgent     string              `mapstructure:"user-agent"`
	AppTokenFile  string              `mapstructure:"app-token-file"`
	Screening     *ScreeningConfig    `mapstructure:"screening"`
	Matching      *MatchingConfig     `mapstructure:"matching"`
	AI            *AIConfig           `mapstructure:"ai"`
}

type ScreeningConfig struct {
	Entities  []string `mapstructure:"entities"`
	MinBudget float64  `mapstructure:"min-budget"`
}

type MatchingConfig struct {
	// Vocabulary overrides the built-in SECOP II label sets.
	Vocabulary *matching.Vocabulary `mapstructure:"vocabulary"`
}

type AIConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Provider  string        `mapstructure:"provider"`
	BatchSize int           `mapstructure:"batch-size"`
	Gemini    *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "secop-scout is a cli for finding winnable tenders on SECOP II and scoring them against your company profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("app-token-file", "SECOP_APP_TOKEN_FILE"); err != nil {
		log.Fatalf("binding SECOP_APP_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is secop-scout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
