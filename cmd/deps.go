package cmd

import (
	"log"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/work24-mcp/work24-mcp/internal/logger"
	"github.com/work24-mcp/work24-mcp/internal/secrets"
	"github.com/work24-mcp/work24-mcp/internal/tools"
	"github.com/work24-mcp/work24-mcp/internal/work24"
	"github.com/work24-mcp/work24-mcp/internal/youth"
)

// setup builds the logger and reads the config. It exits on failure like the
// rest of the commands do.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	return logger, config
}

func resolveCredentials(config *Config, logger *zap.Logger) (work24.Credentials, error) {
	creds := work24.Credentials{}
	sources := []struct {
		api work24.API
		cfg *CredentialConfig
	}{
		{api: work24.Recruit, cfg: config.Recruit},
		{api: work24.Training, cfg: config.Training},
	}

	for _, src := range sources {
		secret, err := secrets.LoadOptional(secrets.Source{
			Name:  src.api.EnvVar(),
			Value: src.cfg.AuthKey,
			File:  src.cfg.AuthKeyFile,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "loading %s credential", src.api)
		}
		if secret == "" {
			// Not fatal: tools of this family fail with a configuration error on use.
			logger.Warn("credential is not configured",
				zap.String("api", string(src.api)),
				zap.String("hint", "set "+src.api.EnvVar()+" or "+src.api.EnvVar()+"_FILE"),
			)
			continue
		}
		creds[src.api] = secret
	}

	return creds, nil
}

func newRegistry(config *Config, logger *zap.Logger) (*tools.Registry, error) {
	creds, err := resolveCredentials(config, logger)
	if err != nil {
		return nil, err
	}

	client := work24.New(logger, creds)
	if config.BaseURL != "" {
		client.BaseURL = config.BaseURL
	}
	if config.RateLimit > 0 {
		client.Limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}

	var source youth.Source = youth.NewFileSource(config.Youth.ProgramsFile, logger)
	if config.Youth.Cache {
		source = youth.NewCached(source)
	}

	return tools.NewRegistry(tools.Deps{
		Work24: client,
		Youth:  youth.NewService(source, youth.NewMatcher(logger)),
		Logger: logger,
	}), nil
}
