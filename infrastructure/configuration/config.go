package configuration

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"satorii/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	YouTube     YouTube     `json:"youtube"`
	Piped       Piped       `json:"piped"`
	Suggest     Suggest     `json:"suggest"`
	Cache       Cache       `json:"cache"`
	Filter      Filter      `json:"filter"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	Logger      Logger      `json:"logger"`
}

type App struct {
	Port           int      `json:"port"`
	AllowedOrigins []string `json:"allowedOrigins"`
}

type YouTube struct {
	// APIKeys is the ordered credential pool; the first key is tried first.
	APIKeys    []string      `json:"apiKeys"`
	BaseURL    string        `json:"baseURL"`
	RegionCode string        `json:"regionCode"`
	MaxResults int64         `json:"maxResults"`
	Timeout    time.Duration `json:"timeout"`
}

type Piped struct {
	Instances []string      `json:"instances"`
	Timeout   time.Duration `json:"timeout"`
}

type Suggest struct {
	URL     string        `json:"url"`
	Timeout time.Duration `json:"timeout"`
}

type Cache struct {
	// Driver is one of memory, redis, postgres, mssql, mongo
	Driver      string        `json:"driver"`
	SearchTTL   time.Duration `json:"searchTTL"`
	DetailsTTL  time.Duration `json:"detailsTTL"`
	TrendingTTL time.Duration `json:"trendingTTL"`
	// ChannelIconTTL of zero keeps icons until explicitly invalidated
	ChannelIconTTL time.Duration `json:"channelIconTTL"`
}

type Filter struct {
	ShortsMaxSeconds  int `json:"shortsMaxSeconds"`
	RelatedMinResults int `json:"relatedMinResults"`
}

type Database struct {
	Psql  Db `json:"psql"`
	Mssql Db `json:"mssql"`
	Mongo Db `json:"mongo"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type RedisClient struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Password     string `json:"password"`
	DatabaseName string `json:"databaseName"`
	Username     string `json:"username"`
}

type Logger struct {
	Format string `json:"format"`
	Level  string `json:"level"`
}

var C Config

func init() {
	Reload()
}

// Reload re-reads the config file and environment into C. Call it after
// LoadEnvFromFile so values from env files take effect.
func Reload() {
	C = Config{}
	LoadConfig()
	initApp(&C)
	initYouTube(&C)
	initCache(&C)
	initDatabase(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
	if C.Logger.Format != "" || C.Logger.Level != "" {
		logger.Configure(C.Logger.Format, C.Logger.Level)
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initApp(C *Config) {
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10001
	}
	if len(C.App.AllowedOrigins) == 0 {
		C.App.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
}

func initYouTube(C *Config) {
	if keys := splitList(os.Getenv("YOUTUBE_API_KEYS")); len(keys) > 0 {
		C.YouTube.APIKeys = keys
	}
	C.YouTube.APIKeys = usableKeys(C.YouTube.APIKeys)
	if C.YouTube.BaseURL == "" {
		C.YouTube.BaseURL = getEnv("YOUTUBE_BASE_URL", "")
	}
	if C.YouTube.RegionCode == "" {
		C.YouTube.RegionCode = getEnv("YOUTUBE_REGION_CODE", "US")
	}
	if C.YouTube.MaxResults == 0 {
		C.YouTube.MaxResults = 20
	}
	if C.YouTube.Timeout == 0 {
		C.YouTube.Timeout = 15 * time.Second
	}
	if instances := splitList(os.Getenv("PIPED_INSTANCES")); len(instances) > 0 {
		C.Piped.Instances = instances
	}
	if len(C.Piped.Instances) == 0 {
		C.Piped.Instances = []string{
			"https://pipedapi.kavin.rocks",
			"https://pipedapi.tobychui.com",
			"https://pipedapi.smnz.de",
		}
	}
	if C.Piped.Timeout == 0 {
		C.Piped.Timeout = 5 * time.Second
	}
	if C.Suggest.URL == "" {
		C.Suggest.URL = "https://suggestqueries.google.com/complete/search"
	}
	if C.Suggest.Timeout == 0 {
		C.Suggest.Timeout = 5 * time.Second
	}
	if C.Filter.ShortsMaxSeconds == 0 {
		C.Filter.ShortsMaxSeconds = 60
	}
	if C.Filter.RelatedMinResults == 0 {
		C.Filter.RelatedMinResults = 6
	}
}

func initCache(C *Config) {
	if v := os.Getenv("CACHE_DRIVER"); v != "" {
		C.Cache.Driver = v
	}
	if C.Cache.Driver == "" {
		C.Cache.Driver = "memory"
	}
	if C.Cache.SearchTTL == 0 {
		C.Cache.SearchTTL = 24 * time.Hour
	}
	if C.Cache.DetailsTTL == 0 {
		C.Cache.DetailsTTL = 24 * time.Hour
	}
	if C.Cache.TrendingTTL == 0 {
		C.Cache.TrendingTTL = 6 * time.Hour
	}
	if C.RedisClient.Host == "" {
		C.RedisClient.Host = getEnv("REDIS_HOST", "localhost")
	}
	if C.RedisClient.Port == "" {
		C.RedisClient.Port = getEnv("REDIS_PORT", "6379")
	}
	if C.RedisClient.Password == "" {
		C.RedisClient.Password = os.Getenv("REDIS_PASSWORD")
	}
	if C.RedisClient.Username == "" {
		C.RedisClient.Username = os.Getenv("REDIS_USERNAME")
	}
}

func initDatabase(C *Config) {
	fill := func(dst *string, envKey, def string) {
		if *dst == "" {
			*dst = getEnv(envKey, def)
		}
	}
	fill(&C.Database.Psql.Name, "DB_NAME", "satorii")
	fill(&C.Database.Psql.Host, "DB_HOST", "localhost")
	fill(&C.Database.Psql.Port, "DB_PORT", "5432")
	fill(&C.Database.Psql.User, "DB_USER", "postgres")
	fill(&C.Database.Psql.Password, "DB_PASSWORD", "")

	fill(&C.Database.Mssql.Name, "MSSQL_DB_NAME", "satorii")
	fill(&C.Database.Mssql.Host, "MSSQL_HOST", "localhost")
	fill(&C.Database.Mssql.Port, "MSSQL_PORT", "1433")
	fill(&C.Database.Mssql.User, "MSSQL_USER", "sa")
	fill(&C.Database.Mssql.Password, "MSSQL_PASSWORD", "")

	fill(&C.Database.Mongo.Name, "MONGO_DB_NAME", "satorii")
	fill(&C.Database.Mongo.Host, "MONGO_HOST", "localhost")
	fill(&C.Database.Mongo.Port, "MONGO_PORT", "27017")
	fill(&C.Database.Mongo.User, "MONGO_USER", "")
	fill(&C.Database.Mongo.Password, "MONGO_PASSWORD", "")
}
