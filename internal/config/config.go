package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Telegram TelegramConfig
	DB       DBConfig
	Redis    RedisConfig
	Quiz     QuizConfig
	Logger   LoggerConfig
	Server   ServerConfig
}

type TelegramConfig struct {
	Token string
	// Channel is the chat the bot checks membership against, e.g. "@myquiz".
	Channel string
	// AdminChatID receives forwarded issue reports.
	AdminChatID int64
	// MembershipFailOpen treats a failed membership check as membership.
	MembershipFailOpen bool
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type QuizConfig struct {
	QuestionsPerRound int
	FeedbackDelay     time.Duration
	SessionIdleTTL    time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

type ServerConfig struct {
	Port int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("db.sslmode", "disable")
	viper.SetDefault("quiz.questions_per_round", 10)
	viper.SetDefault("quiz.feedback_delay", time.Second)
	viper.SetDefault("quiz.session_idle_ttl", 30*time.Minute)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("server.port", 10000)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional when everything comes from the environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Telegram: TelegramConfig{
			Token:              viper.GetString("telegram.token"),
			Channel:            viper.GetString("telegram.channel"),
			AdminChatID:        viper.GetInt64("telegram.admin_chat_id"),
			MembershipFailOpen: viper.GetBool("telegram.membership_fail_open"),
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
			SSLMode:  viper.GetString("db.sslmode"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Quiz: QuizConfig{
			QuestionsPerRound: viper.GetInt("quiz.questions_per_round"),
			FeedbackDelay:     viper.GetDuration("quiz.feedback_delay"),
			SessionIdleTTL:    viper.GetDuration("quiz.session_idle_ttl"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		Server: ServerConfig{
			Port: viper.GetInt("server.port"),
		},
	}

	// Override with environment variables if set
	if token := os.Getenv("TELEGRAM_TOKEN"); token != "" {
		config.Telegram.Token = token
	}
	if channel := os.Getenv("TELEGRAM_CHANNEL"); channel != "" {
		config.Telegram.Channel = channel
	}
	if adminChat := os.Getenv("TELEGRAM_ADMIN_CHAT_ID"); adminChat != "" {
		if id, err := strconv.ParseInt(adminChat, 10, 64); err == nil {
			config.Telegram.AdminChatID = id
		}
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.DB.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	return config, nil
}

// GetDSN returns the Postgres connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
		c.DB.SSLMode,
	)
}
