package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Session SessionConfig
	Vote    VoteConfig
	Log     LogConfig
}

type ServerConfig struct {
	Address        string
	Mode           string   // gin 模式: debug / release / test
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DBConfig struct {
	Driver   string // postgres 或 sqlite
	URL      string // 設定時優先於個別欄位，例如 DATABASE_URL
	Host     string
	User     string
	Password string
	Name     string
	Port     int
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`
	Path     string // sqlite 檔案路徑
}

// SessionConfig 是新建會議時的預設計時器（秒）
type SessionConfig struct {
	GSLTime float64 `mapstructure:"gsl_time"`
	ModTime float64 `mapstructure:"mod_time"`
}

type VoteConfig struct {
	// AllowUnlistedChoices 為 true 時，投下不在選項內的票會新增一個計票欄位
	AllowUnlistedChoices bool `mapstructure:"allow_unlisted_choices"`
}

type LogConfig struct {
	Level  string
	Format string // json 或 text
}

const envPrefix = "MUN"

// Load 讀取 config.yaml 並套用環境變數覆寫。
// 未指定路徑時從 ./pkg/config 讀取；找不到設定檔時只使用預設值。
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./pkg/config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// 部署平台（如 Render）以 DATABASE_URL 提供連線字串
	if err := v.BindEnv("db.url", envPrefix+"_DB_URL", "DATABASE_URL"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &config, nil
}

// LoadEnvFile 將 .env 檔中的變數載入環境，已存在的環境變數不會被覆寫。
// 檔案不存在時忽略。
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", p, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":3000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.url", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "password")
	v.SetDefault("db.name", "mun_db")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.path", "data/mun.db")

	v.SetDefault("session.gsl_time", 90)
	v.SetDefault("session.mod_time", 45)

	v.SetDefault("vote.allow_unlisted_choices", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// DSN 回傳 PostgreSQL 連線字串
func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone)
}
