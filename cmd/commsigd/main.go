// commsigd is the communication-signature service daemon and its CLI.
//
// Subcommands:
//
//	serve      run the HTTP service
//	ask        answer one message from the command line
//	questions  print the survey questionnaire as JSON
//	version    print the build version
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	commsig "github.com/commsiglabs/commsig-go"
	"github.com/commsiglabs/commsig-go/server"
	"github.com/commsiglabs/commsig-go/store"
)

const version = "0.3.0"

var (
	verbose bool
	logger  *zap.Logger

	askMessage   string
	askSignature string
	askTraits    []string
)

var rootCmd = &cobra.Command{
	Use:   "commsigd",
	Short: "commsigd - communication signature assessment service",
	Long: `commsigd serves trait-based communication assessments over HTTP.

Users take a short survey, get scored into a communication signature,
and can then ask the chat endpoint about their strengths, growth areas,
team role and adaptation style.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	Long: `Starts the assessment service on COMMSIG_ADDR (default :8080).

The storage backend is chosen by COMMSIG_STORE: memory (default),
redis or sqlite. Redis is configured with COMMSIG_REDIS_ADDR,
COMMSIG_REDIS_PASSWORD and COMMSIG_REDIS_DB, sqlite with
COMMSIG_SQLITE_PATH. A .env file in the working directory is loaded
before reading the environment.`,
	RunE: runServe,
}

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer one message from the command line",
	Long: `Runs a single message through the response engine and prints the reply.

Without --traits the engine answers as it would for a user who has not
taken the survey yet.

Example:
  commsigd ask -m "what are my strengths" --traits drive=action --traits expression=direct`,
	RunE: runAsk,
}

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the survey questionnaire as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(commsig.Survey())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("commsigd %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	askCmd.Flags().StringVarP(&askMessage, "message", "m", "", "Message to answer (required)")
	askCmd.Flags().StringVar(&askSignature, "signature", "", "Signature title (derived from traits when omitted)")
	askCmd.Flags().StringSliceVar(&askTraits, "traits", nil, "Trait assignments as dimension=value pairs")
	askCmd.MarkFlagRequired("message")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := commsig.NewServiceConfigFromEnv()
	if err != nil {
		return err
	}

	storage, err := buildStorage(cfg)
	if err != nil {
		return err
	}

	srv := server.New(cfg, storage)
	srv.SetLogger(logger)
	return srv.Run()
}

// buildStorage picks the backend named by the configuration.
func buildStorage(cfg *commsig.ServiceConfig) (commsig.Storage, error) {
	switch cfg.Store {
	case commsig.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return store.NewRedisStorage(client), nil
	case commsig.StoreSQLite:
		return store.NewSQLiteStorage(store.SQLiteConfig{Path: cfg.SQLitePath})
	default:
		return commsig.NewInMemoryStorage(), nil
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
	profile, err := profileFromFlags()
	if err != nil {
		return err
	}

	responder := commsig.NewResponder()
	reply := responder.Respond(askMessage, profile)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(reply)
}

// profileFromFlags assembles a trait profile from --traits and --signature.
// No --traits means no profile.
func profileFromFlags() (*commsig.TraitProfile, error) {
	if len(askTraits) == 0 {
		return nil, nil
	}

	traits := make(map[commsig.TraitDimension]string, len(askTraits))
	for _, pair := range askTraits {
		dim, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid trait %q, want dimension=value", pair)
		}
		traits[commsig.TraitDimension(strings.TrimSpace(dim))] = strings.TrimSpace(value)
	}

	signature := askSignature
	if signature == "" {
		signature = commsig.DeriveSignature(traits)
	}
	return &commsig.TraitProfile{Signature: signature, Traits: traits}, nil
}
