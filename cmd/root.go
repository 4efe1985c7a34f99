package cmd

import (
	"log"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/work24-mcp/work24-mcp/internal/work24"
	"github.com/work24-mcp/work24-mcp/internal/youth"
)

const (
	app = "work24-mcp"
)

type Config struct {
	BaseURL string `mapstructure:"base-url"`
	// RateLimit caps upstream calls per second. Zero disables it.
	RateLimit float64           `mapstructure:"rate-limit"`
	Recruit   *CredentialConfig `mapstructure:"recruit"`
	Training  *CredentialConfig `mapstructure:"training"`
	Youth     *YouthConfig      `mapstructure:"youth"`
	Server    *ServerConfig     `mapstructure:"server"`
}

// CredentialConfig holds one API family key. AuthKeyFile wins over AuthKey.
type CredentialConfig struct {
	AuthKey     string `mapstructure:"auth-key"`
	AuthKeyFile string `mapstructure:"auth-key-file"`
}

type YouthConfig struct {
	ProgramsFile string `mapstructure:"programs-file"`
	// Cache keeps the first loaded catalog for the life of the process.
	Cache bool `mapstructure:"cache"`
}

type ServerConfig struct {
	Transport string `mapstructure:"transport"`
	Addr      string `mapstructure:"addr"`
	Endpoint  string `mapstructure:"endpoint"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "work24-mcp exposes the Work24 (고용24) open API and a youth program matcher as MCP tools",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

var envBindings = map[string]string{
	"base-url":               "WORK24_BASE_URL",
	"rate-limit":             "WORK24_RATE_LIMIT",
	"recruit.auth-key":       work24.Recruit.EnvVar(),
	"recruit.auth-key-file":  work24.Recruit.EnvVar() + "_FILE",
	"training.auth-key":      work24.Training.EnvVar(),
	"training.auth-key-file": work24.Training.EnvVar() + "_FILE",
	"youth.programs-file":    "YOUTH_PROGRAMS_FILE",
}

func init() {
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("base-url", work24.DefaultBaseURL)
	viper.SetDefault("youth.programs-file", youth.DefaultCatalogPath)
	viper.SetDefault("server.transport", transportStdio)
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.endpoint", "/mcp")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is work24-mcp.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional: everything can come from the environment.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if config == nil {
		config = &Config{}
	}
	if config.Recruit == nil {
		config.Recruit = &CredentialConfig{}
	}
	if config.Training == nil {
		config.Training = &CredentialConfig{}
	}
	if config.Youth == nil {
		config.Youth = &YouthConfig{}
	}
	if config.Server == nil {
		config.Server = &ServerConfig{}
	}

	return config, nil
}
