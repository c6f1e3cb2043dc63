package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SheetConfig identifies one tabular source: a spreadsheet and a named
// range inside it.
type SheetConfig struct {
	SpreadsheetID string `mapstructure:"spreadsheet_id"`
	Range         string `mapstructure:"range"`
}

// SheetsConfig controls the tabular feed source. Standard and Deep select
// independent sheet/mapping configurations, one per feed mode.
type SheetsConfig struct {
	APIKey        string      `mapstructure:"api_key"`
	BaseURL       string      `mapstructure:"base_url"`
	FetchInterval string      `mapstructure:"fetch_interval"` // duration string, e.g., "10m"
	Standard      SheetConfig `mapstructure:"standard"`
	Deep          SheetConfig `mapstructure:"deep"`
}

// OpenAIConfig holds generative endpoint credentials.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"` // optional, for compatible endpoints
}

// InsightConfig controls the insight subsystem.
type InsightConfig struct {
	Namespace   string `mapstructure:"namespace"`    // logical application namespace for shared collections
	UserAuthor  string `mapstructure:"user_author"`  // author id stamped on human comments
	ReplyAuthor string `mapstructure:"reply_author"` // author id stamped on AI replies
}

// BookmarksConfig controls local bookmark persistence.
type BookmarksConfig struct {
	Path string `mapstructure:"path"`
}

// Config is the top-level configuration structure.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Sheets    SheetsConfig    `mapstructure:"sheets"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Insight   InsightConfig   `mapstructure:"insight"`
	Bookmarks BookmarksConfig `mapstructure:"bookmarks"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Sheets.BaseURL == "" {
		c.Sheets.BaseURL = "https://sheets.googleapis.com"
	}
	if c.Sheets.FetchInterval == "" {
		c.Sheets.FetchInterval = "10m"
	}
	if c.Sheets.Standard.Range == "" {
		c.Sheets.Standard.Range = "news!A1:O"
	}
	if c.Sheets.Deep.Range == "" {
		c.Sheets.Deep.Range = "deep!A1:J"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Insight.Namespace == "" {
		c.Insight.Namespace = "newsdesk"
	}
	if c.Insight.UserAuthor == "" {
		c.Insight.UserAuthor = "reader"
	}
	if c.Insight.ReplyAuthor == "" {
		c.Insight.ReplyAuthor = "ai-curator"
	}
	if c.Bookmarks.Path == "" {
		c.Bookmarks.Path = "./bookmarks.json"
	}
}
