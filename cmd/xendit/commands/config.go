package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/xendit-client/internal/constants"
	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
	"github.com/fivetwenty-io/xendit-client/pkg/xenditclient"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Config keys shared by flags, environment and the config file.
const (
	keyConfig    = "config"
	keyAPI       = "api"
	keySecretKey = "secret_key"
	keyForUserID = "for_user_id"
	keyOutput    = "output"
	keyVerbose   = "verbose"
	keyRateLimit = "rate_limit"
)

// Config represents the CLI configuration file.
type Config struct {
	API       string `json:"api,omitempty"         yaml:"api,omitempty"`
	SecretKey string `json:"secret_key,omitempty"  yaml:"secret_key,omitempty"`
	ForUserID string `json:"for_user_id,omitempty" yaml:"for_user_id,omitempty"`
	Output    string `json:"output,omitempty"      yaml:"output,omitempty"`
	RateLimit int    `json:"rate_limit,omitempty"  yaml:"rate_limit,omitempty"`
}

// AddGlobalFlags registers the persistent flags and binds them to viper.
func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.xendit/config.yml)")
	flags.StringP("api", "a", "", "API endpoint URL (default "+constants.DefaultAPIEndpoint+")")
	flags.String("secret-key", "", "secret API key (prefer XENDIT_SECRET_KEY)")
	flags.String("for-user-id", "", "act on behalf of a sub-account")
	flags.StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	flags.Int("rate-limit", 0, "client-side limit in requests per minute (0 disables)")
	flags.BoolP("verbose", "v", false, "verbose output")

	_ = viper.BindPFlag(keyConfig, flags.Lookup("config"))
	_ = viper.BindPFlag(keyAPI, flags.Lookup("api"))
	_ = viper.BindPFlag(keySecretKey, flags.Lookup("secret-key"))
	_ = viper.BindPFlag(keyForUserID, flags.Lookup("for-user-id"))
	_ = viper.BindPFlag(keyOutput, flags.Lookup("output"))
	_ = viper.BindPFlag(keyRateLimit, flags.Lookup("rate-limit"))
	_ = viper.BindPFlag(keyVerbose, flags.Lookup("verbose"))
}

// InitConfig points viper at the config file and the XENDIT_* environment.
// A missing config file is not an error.
func InitConfig() error {
	cfgFile := viper.GetString(keyConfig)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".xendit")

		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("XENDIT")
	viper.SetEnvKeyReplacer(EnvKeyReplacer())
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

// EnvKeyReplacer maps config keys to XENDIT_* environment variable names.
func EnvKeyReplacer() *strings.Replacer {
	return strings.NewReplacer("-", "_", ".", "_")
}

func loadConfig() *Config {
	return &Config{
		API:       viper.GetString(keyAPI),
		SecretKey: viper.GetString(keySecretKey),
		ForUserID: viper.GetString(keyForUserID),
		Output:    viper.GetString(keyOutput),
		RateLimit: viper.GetInt(keyRateLimit),
	}
}

// configFilePath returns the config file in use, or the default location.
func configFilePath() (string, error) {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile, nil
	}

	if configFile := viper.GetString(keyConfig); configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".xendit", "config.yml"), nil
}

func saveConfig(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// newLogger returns a console zerolog logger when verbose output is on.
func newLogger(w io.Writer) xendit.Logger {
	if !viper.GetBool(keyVerbose) {
		return nil
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger().
		Level(zerolog.DebugLevel)

	return xendit.NewZerologLogger(logger)
}

// CreateClient builds a Xendit client from flags, environment and config file.
func CreateClient(cmd *cobra.Command) (xendit.Client, error) {
	config := loadConfig()
	if config.SecretKey == "" {
		return nil, constants.ErrNoSecretKey
	}

	clientConfig := &xendit.Config{
		APIEndpoint: config.API,
		SecretKey:   config.SecretKey,
		ForUserID:   config.ForUserID,
		Logger:      newLogger(cmd.ErrOrStderr()),
	}

	if config.RateLimit > 0 {
		clientConfig.RateLimiter = &xendit.RateLimiterConfig{
			MaxRequests: config.RateLimit,
			Window:      time.Minute,
		}
	}

	client, err := xenditclient.New(cmdContext(cmd), clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "View and modify the CLI configuration stored in ~/.xendit/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigSetKeyCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration with the secret key masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.SecretKey != "" {
				config.SecretKey = maskSecret(config.SecretKey)
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), format, config, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("API", valueOrNA(config.API))
				_ = table.Append("Secret Key", valueOrNA(config.SecretKey))
				_ = table.Append("For User ID", valueOrNA(config.ForUserID))
				_ = table.Append("Output", valueOrNA(config.Output))
				_ = table.Append("Rate Limit", strconv.Itoa(config.RateLimit))
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set one of: api, for_user_id, output, rate_limit",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfig(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])

			return nil
		},
	}
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case keyAPI:
		config.API = value
	case keyForUserID:
		config.ForUserID = value
	case keyOutput:
		err := validateOutputFormat(value)
		if err != nil {
			return err
		}

		config.Output = value
	case keyRateLimit:
		limit, err := strconv.Atoi(value)
		if err != nil || limit < 0 {
			return fmt.Errorf("%w: rate_limit must be a non-negative integer", ErrInvalidConfigValue)
		}

		config.RateLimit = limit
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	return nil
}

func newConfigSetKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key [SECRET_KEY]",
		Short: "Store the secret API key",
		Long:  "Store the secret API key in the config file. When no argument is given the key is read without echo.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var secretKey string

			if len(args) == 1 {
				secretKey = args[0]
			} else {
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Secret key: ")

				raw, err := term.ReadPassword(int(os.Stdin.Fd()))
				if err != nil {
					return fmt.Errorf("failed to read secret key: %w", err)
				}

				_, _ = fmt.Fprintln(cmd.ErrOrStderr())
				secretKey = string(raw)
			}

			secretKey = strings.TrimSpace(secretKey)
			if secretKey == "" {
				return constants.ErrNoSecretKey
			}

			config := loadConfig()
			config.SecretKey = secretKey

			err := saveConfig(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Secret key saved")

			return nil
		},
	}
}

func maskSecret(secret string) string {
	const visible = 4
	if len(secret) <= visible {
		return constants.MaskedSecret
	}

	return constants.MaskedSecret + secret[len(secret)-visible:]
}
