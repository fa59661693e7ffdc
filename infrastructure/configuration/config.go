package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"ttphotos/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	TikTok      TikTok      `json:"tiktok"`
	Posting     Posting     `json:"posting"`
	Content     Content     `json:"content"`
	Pubsub      Pubsub      `json:"pubsub"`
}

type App struct {
	Port          int    `json:"port"`
	BaseURL       string `json:"baseURL"`       // public base URL used in slide links
	SessionSecret string `json:"sessionSecret"` // signs the session cookie
	CronSecret    string `json:"cronSecret"`    // guards /cron/upload-posts
}

type Database struct {
	Psql Db `json:"psql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	URL      string `json:"url"` // full connection string, wins when set
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type TikTok struct {
	ClientKey    string   `json:"clientKey"`
	ClientSecret string   `json:"clientSecret"`
	RedirectURI  string   `json:"redirectURI"`
	Scopes       []string `json:"scopes"`
	PrivacyLevel string   `json:"privacyLevel"` // SELF_ONLY | PUBLIC_TO_EVERYONE | ...
	BaseURL      string   `json:"baseURL"`      // override for tests
}

type Posting struct {
	Times           []string `json:"times"`           // "HH:MM" slots, UTC
	PollAttempts    int      `json:"pollAttempts"`    // publish status poll budget
	PollBackoffSec  int      `json:"pollBackoffSec"`  // seconds between polls
	TriggerMinutes  int      `json:"triggerMinutes"`  // in-process ticker, 0 disables
	HashtagsPerPost int      `json:"hashtagsPerPost"` //
}

type Content struct {
	PhotosDir string `json:"photosDir"`
	FontsDir  string `json:"fontsDir"`
}

type Pubsub struct {
	ProjectID string `json:"projectID"`
	Topic     string `json:"topic"`
}

var C Config

func init() {
	Reload()
}

// Reload re-reads configuration. Called again from main after late
// environment loading so .env values take effect.
func Reload() {
	LoadConfig()
	initApp(&C)
	initDatabase(&C)
	initTikTok(&C)
	initPosting(&C)
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
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10080
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
		C.App.Port = 10080
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		C.App.BaseURL = v
	}
	if C.App.BaseURL == "" {
		C.App.BaseURL = fmt.Sprintf("http://localhost:%d", C.App.Port)
	}
	C.App.BaseURL = strings.TrimRight(C.App.BaseURL, "/")
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		C.App.SessionSecret = v
	}
	if v := os.Getenv("CRON_SECRET"); v != "" {
		C.App.CronSecret = v
	}
	if C.App.SessionSecret == "" {
		logger.GetLogger().Warn("App.SessionSecret not set; session cookies cannot be issued. Provide SESSION_SECRET via environment.")
	}
}

func initDatabase(C *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		C.Database.Psql.URL = v
	}
	if C.Database.Psql.Name == "" {
		C.Database.Psql.Name = os.Getenv("DB_NAME")
	}
	if C.Database.Psql.Host == "" {
		C.Database.Psql.Host = os.Getenv("DB_HOST")
	}
	if C.Database.Psql.User == "" {
		C.Database.Psql.User = os.Getenv("DB_USER")
	}
	if C.Database.Psql.Password == "" {
		C.Database.Psql.Password = os.Getenv("DB_PASSWORD")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = os.Getenv("DB_PORT")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = "5432"
	}
	if C.RedisClient.Host == "" {
		C.RedisClient.Host = os.Getenv("REDIS_HOST")
	}
	if C.RedisClient.Port == "" {
		if v := os.Getenv("REDIS_PORT"); v != "" {
			C.RedisClient.Port = v
		} else {
			C.RedisClient.Port = "6379"
		}
	}
}

func initTikTok(C *Config) {
	if v := os.Getenv("TIKTOK_CLIENT_KEY"); v != "" {
		C.TikTok.ClientKey = v
	}
	if v := os.Getenv("TIKTOK_CLIENT_SECRET"); v != "" {
		C.TikTok.ClientSecret = v
	}
	if v := os.Getenv("TIKTOK_REDIRECT_URI"); v != "" {
		C.TikTok.RedirectURI = v
	}
	if len(C.TikTok.Scopes) == 0 {
		C.TikTok.Scopes = []string{"user.info.basic", "video.publish", "video.upload"}
	}
	// The intended production default was never settled upstream; keep it a
	// setting and default to the safe side.
	if v := os.Getenv("TIKTOK_PRIVACY_LEVEL"); v != "" {
		C.TikTok.PrivacyLevel = v
	}
	if C.TikTok.PrivacyLevel == "" {
		C.TikTok.PrivacyLevel = "SELF_ONLY"
	}
	if C.TikTok.BaseURL == "" {
		C.TikTok.BaseURL = "https://open.tiktokapis.com"
	}
	if C.TikTok.ClientKey == "" || C.TikTok.ClientSecret == "" {
		logger.GetLogger().Warn("TikTok client credentials not configured - login and publishing will fail")
	}
}

func initPosting(C *Config) {
	if len(C.Posting.Times) == 0 {
		// Five optimal slots, expressed in UTC (original audience is UTC+3).
		C.Posting.Times = []string{"21:00", "06:00", "09:00", "12:00", "15:00"}
	}
	if C.Posting.PollAttempts == 0 {
		C.Posting.PollAttempts = 4
	}
	if C.Posting.PollBackoffSec == 0 {
		C.Posting.PollBackoffSec = 2
	}
	if C.Posting.HashtagsPerPost == 0 {
		C.Posting.HashtagsPerPost = 5
	}
	if C.Content.PhotosDir == "" {
		if v := os.Getenv("PHOTOS_DIR"); v != "" {
			C.Content.PhotosDir = v
		} else {
			C.Content.PhotosDir = "public/photos"
		}
	}
	if C.Content.FontsDir == "" {
		if v := os.Getenv("FONTS_DIR"); v != "" {
			C.Content.FontsDir = v
		} else {
			C.Content.FontsDir = "public/fonts"
		}
	}
	if v := os.Getenv("PUBSUB_PROJECT_ID"); v != "" {
		C.Pubsub.ProjectID = v
	}
	if C.Pubsub.Topic == "" {
		C.Pubsub.Topic = "post-outcomes"
	}
}
