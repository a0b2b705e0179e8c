package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Branch  BranchConfig  `toml:"branch"`
	Tracker TrackerConfig `toml:"tracker"`
	Tickets TicketsConfig `toml:"tickets"`
	Source  SourceConfig  `toml:"source"`
	Chat    ChatConfig    `toml:"chat"`
	Git     GitConfig     `toml:"git"`

	// Compiled regex from Tickets.Pattern (not serialized)
	ticketRegex *regexp.Regexp
}

type BranchConfig struct {
	Tracked string `toml:"tracked"`
}

type TrackerConfig struct {
	BaseURL          string   `toml:"base_url"`
	CommentPath      string   `toml:"comment_path"`
	BrowseURL        string   `toml:"browse_url"`
	Login            string   `toml:"login"`
	Password         string   `toml:"password"`
	VisibilityRole   string   `toml:"visibility_role"`
	Timeout          Duration `toml:"timeout"`
	BreakerThreshold uint32   `toml:"breaker_threshold"`
}

type TicketsConfig struct {
	Pattern string `toml:"pattern"`
	Dedupe  bool   `toml:"dedupe"`
}

type SourceConfig struct {
	// BaseURL is prefixed to the commit sha to link the commit in a source browser
	BaseURL string `toml:"base_url"`
}

type ChatConfig struct {
	WebhookURL string `toml:"webhook_url"`
	Channel    string `toml:"channel"`
	Username   string `toml:"username"`
	IconEmoji  string `toml:"icon_emoji"`
}

type GitConfig struct {
	// Backend is "git" (shell out) or "go-git"
	Backend string `toml:"backend"`
}

// Duration is a time.Duration read from a TOML string such as "10s"
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func DefaultConfig() *Config {
	return &Config{
		Branch: BranchConfig{
			Tracked: "refs/heads/master",
		},
		Tracker: TrackerConfig{
			BaseURL:          "https://jira.example.com/rest/api/2/issue",
			CommentPath:      "/comment",
			BrowseURL:        "https://jira.example.com/browse/",
			Login:            "git",
			Timeout:          Duration(10 * time.Second),
			BreakerThreshold: 5,
		},
		Tickets: TicketsConfig{
			Pattern: "[A-Z]{3}-[0-9]{1,6}",
		},
		Chat: ChatConfig{
			Channel:   "#commits",
			Username:  "git",
			IconEmoji: ":git:",
		},
		Git: GitConfig{
			Backend: "git",
		},
	}
}

// Environment variables that override file values. Credentials belong here (or in a .env file)
// rather than in the TOML.
const (
	EnvBranch          = "TICKETHOOK_BRANCH"
	EnvTrackerURL      = "TICKETHOOK_TRACKER_URL"
	EnvTrackerLogin    = "TICKETHOOK_TRACKER_LOGIN"
	EnvTrackerPassword = "TICKETHOOK_TRACKER_PASSWORD"
	EnvChatWebhook     = "TICKETHOOK_CHAT_WEBHOOK"
	EnvBreakerLimit    = "TICKETHOOK_BREAKER_THRESHOLD"
)

// Load builds the configuration: defaults, then the TOML file at path (if any), then the
// environment. A .env file in the current directory is loaded into the environment first.
func Load(path string) (*Config, error) {
	// Missing .env is fine
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(expandTilde(path))
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.compileRegex(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	overrides := []struct {
		key   string
		field *string
	}{
		{EnvBranch, &c.Branch.Tracked},
		{EnvTrackerURL, &c.Tracker.BaseURL},
		{EnvTrackerLogin, &c.Tracker.Login},
		{EnvTrackerPassword, &c.Tracker.Password},
		{EnvChatWebhook, &c.Chat.WebhookURL},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok {
			*o.field = v
		}
	}

	if v := os.Getenv(EnvBreakerLimit); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvBreakerLimit, v, err)
		}
		c.Tracker.BreakerThreshold = uint32(n)
	}
	return nil
}

// Validate checks the values that would otherwise fail silently at push time
func (c *Config) Validate() error {
	if c.Branch.Tracked == "" {
		return fmt.Errorf("branch.tracked must not be empty")
	}
	switch c.Git.Backend {
	case "git", "go-git":
	default:
		return fmt.Errorf("invalid git.backend %q (want \"git\" or \"go-git\")", c.Git.Backend)
	}
	if c.Tracker.Timeout < 0 {
		return fmt.Errorf("tracker.timeout must not be negative")
	}
	return nil
}

func (c *Config) compileRegex() error {
	// Empty pattern = ticket extraction disabled
	if c.Tickets.Pattern == "" {
		c.ticketRegex = nil
		return nil
	}
	re, err := regexp.Compile("(?i)(" + c.Tickets.Pattern + ")")
	if err != nil {
		return fmt.Errorf("invalid tickets.pattern %q: %w", c.Tickets.Pattern, err)
	}
	c.ticketRegex = re
	return nil
}

// TicketRegex returns the compiled ticket pattern regex (nil if disabled)
func (c *Config) TicketRegex() *regexp.Regexp {
	// Safe even if compileRegex() was never called
	return c.ticketRegex
}

// TrackerEnabled returns true if comments should be posted to the issue tracker
func (c *Config) TrackerEnabled() bool {
	return c.Tracker.BaseURL != ""
}

// ChatEnabled returns true if comments should be mirrored to the chat webhook
func (c *Config) ChatEnabled() bool {
	return c.Chat.WebhookURL != ""
}

// TrackerTimeout returns the HTTP timeout for both notifiers
func (c *Config) TrackerTimeout() time.Duration {
	return time.Duration(c.Tracker.Timeout)
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
