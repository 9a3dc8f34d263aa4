package config

import "github.com/spf13/viper"

type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	PostgresConn  string `mapstructure:"POSTGRES_CONN"`
	PostgresDB    string `mapstructure:"POSTGRES_DATABASE"`
	MigrationURL  string `mapstructure:"MIGRATION_URL"`
	PublicBaseURL string `mapstructure:"PUBLIC_BASE_URL"`
}

// LoadConfig reads app.env from the given path, falling back to process env vars.
func LoadConfig(path string) (cfg Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err = viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return
		}
		err = nil
	}

	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("MIGRATION_URL", "file://migrations/bid-migrations")
	viper.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")

	err = viper.Unmarshal(&cfg)

	return
}
