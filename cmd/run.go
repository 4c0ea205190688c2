package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/licitops/secop-scout/internal/ai"
	"github.com/licitops/secop-scout/internal/ai/gemini"
	"github.com/licitops/secop-scout/internal/bidder"
	"github.com/licitops/secop-scout/internal/logger"
	"github.com/licitops/secop-scout/internal/matching"
	"github.com/licitops/secop-scout/internal/pipeline"
	"github.com/licitops/secop-scout/internal/screening"
	"github.com/licitops/secop-scout/internal/secop"
	"github.com/licitops/secop-scout/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowRanking      = "Show ranked results"
	PromptNo               = "Exit"
	PromptReportByEntities = "Report by contracting entities"
	PromptResultsToFile    = "Dump results to file"
	PromptMarkAllSeen      = "Mark all tenders as seen"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptShowRanking, PromptReportByEntities, PromptResultsToFile, PromptMarkAllSeen, PromptNo},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the secop-scout main command",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "print the ranking and exit without the interactive prompt")
	runCmd.Flags().Bool("no-ai", false, "skip the external classifier even when enabled in the config")
	runCmd.Flags().IntP("concurrency", "c", 0, "how many analysis batches run at once (default 4)")
	runCmd.Flags().StringP("seen-file", "s", "", "special file with already reviewed tenders. Default is unset.")

	viper.BindPFlag("seen-file", runCmd.Flags().Lookup("seen-file"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the secop-scout", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.Bidder == nil || len(config.Bidder.Categories) == 0 {
		logger.Fatal("bidder categories are required under bidder.categories to match tenders")
	}

	if config.Search == nil {
		logger.Fatal("a search section is required to query the feed")
	}

	client := secop.New(ctx, logger, resolveAppToken(config, logger))

	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	logger.Info("starting the search", zap.String("text", config.Search.Text))

	tenders, err := getTenders(client, config, logger)
	if err != nil {
		logger.Fatal("getting available tenders", zap.Error(err))
	}

	if tenders.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no tenders found"))
		return
	}

	screened, err := screen(ctx, config, logger, tenders)
	if err != nil {
		logger.Fatal("screening failed", zap.Error(err))
	}
	tenders = screened

	if tenders.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no tenders left after screening"))
		return
	}

	contracts := loadContracts(config, logger)

	analyzer := &pipeline.Analyzer{
		Logger:      logger,
		Classifier:  prepareClassifier(ctx, cmd, config.AI, logger),
		Options:     matchingOptions(config),
		Concurrency: concurrencyFromFlag(cmd),
	}
	if config.AI != nil && config.AI.BatchSize > 0 {
		analyzer.BatchSize = config.AI.BatchSize
	}

	results := analyzer.Run(ctx, tenders, config.Bidder, contracts)
	matching.Rank(results)

	action := PromptShowRanking
	for {
		var err error
		if cmd.Flag("auto-approve").Value.String() == "false" {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		logger.Info("current list of tenders", zap.Int("count", tenders.Len()))

		if err := handleAction(action, logger, tenders, results); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if cmd.Flag("auto-approve").Value.String() == "true" {
			return
		}
	}
}

func handleAction(action string, log *zap.Logger, tenders *secop.Tenders, results []*matching.Result) error {
	switch action {
	case PromptShowRanking:
		printRanking(log, results)
		return nil
	case PromptNo:
		log.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptReportByEntities:
		pretty, _ := json.MarshalIndent(tenders.ReportByEntity(), "", "  ")
		log.Info(string(pretty), zap.Int("tenders count", tenders.Len()))
		return nil
	case PromptResultsToFile:
		filename, err := resultsToTmpFile(results)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		log.Info("dumping results to file", zap.String("filename", filename))
		return nil
	case PromptMarkAllSeen:
		return markAllSeen(log, tenders)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printRanking(log *zap.Logger, results []*matching.Result) {
	for _, result := range results {
		fields := logger.AnalysisFields(result.Tender.ID, result.Analysis)
		fields = append(fields,
			zap.String("entity", result.Tender.Entity),
			zap.String("url", string(result.Tender.URL)),
			zap.String("advice", result.Analysis.Advice),
		)
		log.Info(result.Tender.Name, fields...)
	}
}

func markAllSeen(log *zap.Logger, tenders *secop.Tenders) error {
	seenFile := viper.GetString("seen-file")
	if seenFile == "" {
		return errors.New("seen-file is not configured")
	}

	seen, err := secop.GetSeenTendersFromFile(seenFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		seen = &secop.SeenTenders{}
	}

	seen.Append(tenders.ToSeen())

	if err := seen.ToFile(seenFile); err != nil {
		return err
	}

	log.Info("appended to seen file", zap.String("filename", seenFile), zap.Int("count", tenders.Len()))
	return nil
}

func resultsToTmpFile(results []*matching.Result) (string, error) {
	file, err := os.CreateTemp("", "analyses_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func resolveAppToken(config *Config, log *zap.Logger) string {
	token, err := secrets.Load(secrets.Source{
		Name: "socrata app token",
		File: strings.TrimSpace(config.AppTokenFile),
		Env:  "SECOP_APP_TOKEN",
	})
	if err != nil {
		// The open data API answers without a token, just throttled harder.
		log.Info("running without a socrata app token", zap.Error(err))
		return ""
	}
	return token
}

func getTenders(client *secop.Client, config *Config, log *zap.Logger) (*secop.Tenders, error) {
	results, err := client.Search(config.Search)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	log.Info("getting tenders", zap.Int("count", results.Len()))
	return results, nil
}

func screen(ctx context.Context, config *Config, log *zap.Logger, tenders *secop.Tenders) (*secop.Tenders, error) {
	cfg := &screening.Config{
		SeenFile: viper.GetString("seen-file"),
	}
	if config.Screening != nil {
		cfg.Entities = config.Screening.Entities
		cfg.MinBudget = config.Screening.MinBudget
	}
	if config.SeenFile != "" && cfg.SeenFile == "" {
		cfg.SeenFile = config.SeenFile
	}

	steps := []screening.Filter{
		screening.NewSeenFile(),
		screening.NewEntities(),
		screening.NewMinBudget(),
	}

	return screening.Run(ctx, cfg, screening.Deps{Logger: log}, steps, tenders)
}

func loadContracts(config *Config, log *zap.Logger) []bidder.ContractRecord {
	if config.ContractsFile == "" {
		log.Info("no contracts file configured, scoring without history")
		return nil
	}

	contracts, err := bidder.LoadContracts(config.ContractsFile, log)
	if err != nil {
		log.Warn("loading contracts failed, scoring without history", zap.Error(err))
		return nil
	}

	log.Info("loaded historical contracts", zap.Int("count", len(contracts)))
	return contracts
}

func matchingOptions(config *Config) matching.Options {
	opts := matching.Options{}
	if config.Matching != nil && config.Matching.Vocabulary != nil {
		opts.Vocabulary = config.Matching.Vocabulary
	}
	return opts
}

func concurrencyFromFlag(cmd *cobra.Command) int {
	if cmd == nil {
		return 0
	}
	flag := cmd.Flag("concurrency")
	if flag == nil {
		return 0
	}
	parsed := 0
	fmt.Sscanf(flag.Value.String(), "%d", &parsed)
	return parsed
}

func prepareClassifier(ctx context.Context, cmd *cobra.Command, config *AIConfig, log *zap.Logger) ai.Classifier {
	if cmd != nil {
		if flag := cmd.Flag("no-ai"); flag != nil && strings.EqualFold(flag.Value.String(), "true") {
			log.Info("external classifier disabled", zap.String("reason", "no-ai flag is set"))
			return nil
		}
	}

	if config == nil || !config.Enabled {
		return nil
	}

	classifier, err := newClassifier(ctx, config, log)
	if err != nil {
		log.Warn("skipping external classifier", zap.Error(err))
		return nil
	}
	return classifier
}

func newClassifier(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Classifier, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	genLogger := logger.WithFields(log, logger.CommonFields("gemini", cfg.Gemini.Model)...)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewClassifier(generator, genLogger, cfg.Gemini.MaxLogLength), nil
}
