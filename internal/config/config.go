package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
	} `yaml:"server"`

	Workers struct {
		PoolSize   int           `yaml:"pool_size" default:"3"` // max adapters dispatched concurrently
		QueueSize  int           `yaml:"queue_size" default:"100"`
		RateLimit  int           `yaml:"rate_limit" default:"60"` // requests per minute per domain
		Timeout    time.Duration `yaml:"timeout" default:"120s"`  // per-adapter unit timeout
		MaxRetries int           `yaml:"max_retries" default:"3"`
	} `yaml:"workers"`

	Tasks struct {
		MaxConcurrentTasks int           `yaml:"max_concurrent_tasks" default:"50"`
		TaskTimeout        time.Duration `yaml:"task_timeout" default:"600s"`
		CleanupInterval    time.Duration `yaml:"cleanup_interval" default:"1h"`
		MaxTaskAge         time.Duration `yaml:"max_task_age" default:"24h"`
		ProgressEvery      int           `yaml:"progress_every" default:"5"` // snapshot cadence in items
		MaxRetries         int           `yaml:"max_retries" default:"3"`
	} `yaml:"tasks"`

	Scraper struct {
		UserAgent      string        `yaml:"user_agent"`
		Sources        []string      `yaml:"sources"`
		MaxRetries     int           `yaml:"max_retries" default:"3"`
		RequestTimeout time.Duration `yaml:"request_timeout" default:"30s"`
		HeadlessMode   bool          `yaml:"headless_mode" default:"true"`
		StealthMode    bool          `yaml:"stealth_mode" default:"true"`
		MaxPostings    int           `yaml:"max_postings" default:"25"` // per source per run
		LinkedIn       struct {
			Email    string `yaml:"email"`
			Password string `yaml:"password"`
		} `yaml:"linkedin"`
	} `yaml:"scraper"`

	Firecrawl struct {
		APIKey     string        `yaml:"api_key"`
		APIURL     string        `yaml:"api_url" default:"https://api.firecrawl.dev"`
		Timeout    time.Duration `yaml:"timeout" default:"60s"`
		MaxRetries int           `yaml:"max_retries" default:"3"`
		Formats    []string      `yaml:"formats" default:"html"`
	} `yaml:"firecrawl"`

	LLM struct {
		Provider    string        `yaml:"provider" default:"claude"`
		APIKey      string        `yaml:"api_key"`
		Model       string        `yaml:"model" default:"claude-3-haiku-20240307"`
		MaxTokens   int           `yaml:"max_tokens" default:"1024"`
		Temperature float32       `yaml:"temperature" default:"0.0"`
		Timeout     time.Duration `yaml:"timeout" default:"30s"`
	} `yaml:"llm"`

	// Contacts configures the contact extraction heuristics. The scoring
	// weights are hand-tuned values exposed here so deployments can adjust
	// them without a rebuild.
	Contacts struct {
		Region         string   `yaml:"region" default:"IN"` // numbering-plan home region
		WebmailDomains []string `yaml:"webmail_domains"`
		Scoring        struct {
			WebmailPenalty         float64 `yaml:"webmail_penalty" default:"0.3"`
			BusinessDomainBonus    float64 `yaml:"business_domain_bonus" default:"0.4"`
			IndicatorBonus         float64 `yaml:"indicator_bonus" default:"0.2"`
			HiringPatternBonus     float64 `yaml:"hiring_pattern_bonus" default:"0.3"`
			PersonalPatternPenalty float64 `yaml:"personal_pattern_penalty" default:"0.2"`
			BusinessOverallBonus   float64 `yaml:"business_overall_bonus" default:"0.2"`
			SameDomainBonus        float64 `yaml:"same_domain_bonus" default:"0.3"`
			PhoneBase              float64 `yaml:"phone_base" default:"0.5"`
			PhoneMobileBonus       float64 `yaml:"phone_mobile_bonus" default:"0.3"`
			PhoneCarrierBonus      float64 `yaml:"phone_carrier_bonus" default:"0.1"`
			PhoneChatAppBonus      float64 `yaml:"phone_chat_app_bonus" default:"0.1"`
		} `yaml:"scoring"`
	} `yaml:"contacts"`

	// Analyzer configures the description analysis heuristics.
	Analyzer struct {
		MinDescriptionLength int     `yaml:"min_description_length" default:"50"`
		CategoryThreshold    float64 `yaml:"category_threshold" default:"0.3"`
		Scoring              struct {
			UrgencyPerKeyword float64 `yaml:"urgency_per_keyword" default:"0.2"`
			QualityLongText   float64 `yaml:"quality_long_text" default:"0.2"`   // length > 500
			QualityVeryLong   float64 `yaml:"quality_very_long" default:"0.1"`   // length > 1000
			QualityPerSection float64 `yaml:"quality_per_section" default:"0.15"`
			QualityHasEmail   float64 `yaml:"quality_has_email" default:"0.1"`
			QualityHasSalary  float64 `yaml:"quality_has_salary" default:"0.1"`
			MatchSkillWeight  float64 `yaml:"match_skill_weight" default:"0.6"`
			MatchExpWeight    float64 `yaml:"match_exp_weight" default:"0.3"`
			MatchLocWeight    float64 `yaml:"match_loc_weight" default:"0.1"`
		} `yaml:"scoring"`
	} `yaml:"analyzer"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`

	Redis struct {
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"redis"`

	Scheduler struct {
		Enabled          bool   `yaml:"enabled" default:"true"`
		TaskCleanupSpec  string `yaml:"task_cleanup_spec" default:"@every 1h"`
		PostingSweepSpec string `yaml:"posting_sweep_spec" default:"@every 24h"`
	} `yaml:"scheduler"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	// Expand ${VAR} syntax
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1] // Remove ${ and }
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if env var not found
	})

	// Expand $VAR syntax (but avoid replacing ${VAR} that was already processed)
	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:] // Remove $
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if env var not found
	})

	return s
}

// DefaultWebmailDomains are the personal mail providers that lower an
// email candidate's business score.
var DefaultWebmailDomains = []string{
	"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "live.com",
	"aol.com", "icloud.com", "protonmail.com", "tutanota.com",
}

// DefaultSources are the adapters dispatched when a request names none.
var DefaultSources = []string{"linkedin", "naukri", "indeed", "twitter"}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.Workers.PoolSize = 3
	config.Workers.QueueSize = 100
	config.Workers.RateLimit = 60
	config.Workers.Timeout = 120 * time.Second
	config.Workers.MaxRetries = 3

	config.Tasks.MaxConcurrentTasks = 50
	config.Tasks.TaskTimeout = 600 * time.Second
	config.Tasks.CleanupInterval = 1 * time.Hour
	config.Tasks.MaxTaskAge = 24 * time.Hour
	config.Tasks.ProgressEvery = 5
	config.Tasks.MaxRetries = 3

	config.Scraper.MaxRetries = 3
	config.Scraper.RequestTimeout = 30 * time.Second
	config.Scraper.HeadlessMode = true
	config.Scraper.StealthMode = true
	config.Scraper.MaxPostings = 25
	config.Scraper.Sources = append([]string(nil), DefaultSources...)
	config.Scraper.UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	config.Firecrawl.APIURL = "https://api.firecrawl.dev"
	config.Firecrawl.MaxRetries = 3
	config.Firecrawl.Timeout = 60 * time.Second
	config.Firecrawl.Formats = []string{"html"}

	config.LLM.Provider = "claude"
	config.LLM.Model = "claude-3-haiku-20240307"
	config.LLM.MaxTokens = 1024
	config.LLM.Temperature = 0.0
	config.LLM.Timeout = 30 * time.Second

	config.Contacts.Region = "IN"
	config.Contacts.WebmailDomains = append([]string(nil), DefaultWebmailDomains...)
	config.Contacts.Scoring.WebmailPenalty = 0.3
	config.Contacts.Scoring.BusinessDomainBonus = 0.4
	config.Contacts.Scoring.IndicatorBonus = 0.2
	config.Contacts.Scoring.HiringPatternBonus = 0.3
	config.Contacts.Scoring.PersonalPatternPenalty = 0.2
	config.Contacts.Scoring.BusinessOverallBonus = 0.2
	config.Contacts.Scoring.SameDomainBonus = 0.3
	config.Contacts.Scoring.PhoneBase = 0.5
	config.Contacts.Scoring.PhoneMobileBonus = 0.3
	config.Contacts.Scoring.PhoneCarrierBonus = 0.1
	config.Contacts.Scoring.PhoneChatAppBonus = 0.1

	config.Analyzer.MinDescriptionLength = 50
	config.Analyzer.CategoryThreshold = 0.3
	config.Analyzer.Scoring.UrgencyPerKeyword = 0.2
	config.Analyzer.Scoring.QualityLongText = 0.2
	config.Analyzer.Scoring.QualityVeryLong = 0.1
	config.Analyzer.Scoring.QualityPerSection = 0.15
	config.Analyzer.Scoring.QualityHasEmail = 0.1
	config.Analyzer.Scoring.QualityHasSalary = 0.1
	config.Analyzer.Scoring.MatchSkillWeight = 0.6
	config.Analyzer.Scoring.MatchExpWeight = 0.3
	config.Analyzer.Scoring.MatchLocWeight = 0.1

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.Output = "stdout"

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second

	config.Scheduler.Enabled = true
	config.Scheduler.TaskCleanupSpec = "@every 1h"
	config.Scheduler.PostingSweepSpec = "@every 24h"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			// Expand environment variables in the YAML content
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if poolSize := os.Getenv("WORKER_POOL_SIZE"); poolSize != "" {
		if n, err := strconv.Atoi(poolSize); err == nil && n > 0 {
			c.Workers.PoolSize = n
		}
	}

	if sources := os.Getenv("SCRAPER_SOURCES"); sources != "" {
		parts := strings.Split(sources, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cleaned = append(cleaned, strings.ToLower(p))
			}
		}
		if len(cleaned) > 0 {
			c.Scraper.Sources = cleaned
		}
	}

	if email := os.Getenv("LINKEDIN_EMAIL"); email != "" {
		c.Scraper.LinkedIn.Email = email
	}

	if password := os.Getenv("LINKEDIN_PASSWORD"); password != "" {
		c.Scraper.LinkedIn.Password = password
	}

	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		c.LLM.APIKey = apiKey
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		c.LLM.Provider = provider
	}

	if model := os.Getenv("LLM_MODEL"); model != "" {
		c.LLM.Model = model
	}

	if firecrawlAPIKey := os.Getenv("FIRECRAWL_API_KEY"); firecrawlAPIKey != "" {
		c.Firecrawl.APIKey = firecrawlAPIKey
	}

	if firecrawlAPIURL := os.Getenv("FIRECRAWL_API_URL"); firecrawlAPIURL != "" {
		c.Firecrawl.APIURL = firecrawlAPIURL
	}

	if region := os.Getenv("CONTACT_REGION"); region != "" {
		c.Contacts.Region = strings.ToUpper(region)
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if redisTimeout := os.Getenv("REDIS_TIMEOUT"); redisTimeout != "" {
		if timeout, err := time.ParseDuration(redisTimeout); err == nil {
			c.Redis.Timeout = timeout
		}
	}

	if schedulerEnabled := os.Getenv("SCHEDULER_ENABLED"); schedulerEnabled != "" {
		c.Scheduler.Enabled = schedulerEnabled == "true" || schedulerEnabled == "1"
	}
}
