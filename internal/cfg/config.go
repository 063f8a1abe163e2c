package cfg

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml"
)

type Config struct {
	HTTPListenAddr          string   `toml:"http_server_listen_addr"`
	GithubWebhookEndpoint   string   `toml:"github_webhook_endpoint"`
	GithubWebhookSecret     string   `toml:"github_webhook_secret"`
	GithubAPIToken          string   `toml:"github_api_token"`
	LogFormat               string   `toml:"log_format"`
	LogLevel                string   `toml:"log_level"`
	LogTimeKey              string   `toml:"log_time_key"`
	DryRun                  bool     `toml:"dry_run"`
	MergeQueueTriggerLabels []string `toml:"merge_queue_trigger_labels"`
	Queue                   Queue    `toml:"queue"`
	Rules                   []*Rule  `toml:"rule"`
}

type Queue struct {
	Workers               int `toml:"workers"`
	MaxAttempts           int `toml:"max_attempts"`
	RepoDequeuesPerMinute int `toml:"repo_dequeues_per_minute"`
	RetryDelaySeconds     int `toml:"retry_delay_seconds"`
	RetentionHours        int `toml:"terminal_retention_hours"`
}

type Rule struct {
	Name        string        `toml:"name"`
	FilterQuery string        `toml:"filter_query"`
	Actions     []*RuleAction `toml:"action"`
}

// RuleAction describes the action a matching rule enqueues.
// Param values are text/template strings evaluated against the event.
type RuleAction struct {
	Kind     string            `toml:"kind"`
	Priority string            `toml:"priority"`
	Params   map[string]string `toml:"params"`
}

func Load(reader io.Reader) (*Config, error) {
	var result Config

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *Config) Marshal(writer io.Writer) error {
	return toml.NewEncoder(writer).Encode(r)
}

// ApplyEnvFallbacks fills fields that the config file left empty from
// environment variables.
func (r *Config) ApplyEnvFallbacks() {
	envStr(&r.HTTPListenAddr, "MERGANSER_HTTP_LISTEN_ADDR")
	envStr(&r.GithubWebhookEndpoint, "MERGANSER_GITHUB_WEBHOOK_ENDPOINT")
	envStr(&r.GithubWebhookSecret, "MERGANSER_GITHUB_WEBHOOK_SECRET", "GITHUB_WEBHOOK_SECRET")
	envStr(&r.GithubAPIToken, "MERGANSER_GITHUB_API_TOKEN", "GITHUB_TOKEN")
	envStr(&r.LogFormat, "MERGANSER_LOG_FORMAT")
	envStr(&r.LogLevel, "MERGANSER_LOG_LEVEL")
}

// ApplyDefaults sets the documented default for every unset field.
func (r *Config) ApplyDefaults() {
	if r.HTTPListenAddr == "" {
		r.HTTPListenAddr = ":8084"
	}

	if r.GithubWebhookEndpoint == "" {
		r.GithubWebhookEndpoint = "/webhooks/github"
	}

	if r.LogFormat == "" {
		r.LogFormat = "logfmt"
	}

	if r.LogLevel == "" {
		r.LogLevel = "info"
	}

	if r.LogTimeKey == "" {
		r.LogTimeKey = "time_iso8601"
	}

	if len(r.MergeQueueTriggerLabels) == 0 {
		r.MergeQueueTriggerLabels = []string{
			"claude-auto", "auto-merge", "docs-only", "chore-only", "tests-only",
		}
	}

	if r.Queue.Workers == 0 {
		r.Queue.Workers = 5
	}

	if r.Queue.MaxAttempts == 0 {
		r.Queue.MaxAttempts = 3
	}

	if r.Queue.RepoDequeuesPerMinute == 0 {
		r.Queue.RepoDequeuesPerMinute = 10
	}

	if r.Queue.RetryDelaySeconds == 0 {
		r.Queue.RetryDelaySeconds = 1
	}

	if r.Queue.RetentionHours == 0 {
		r.Queue.RetentionHours = 24
	}
}

func (r *Config) Validate() error {
	if r.Queue.Workers < 1 {
		return errors.New("queue.workers must be >=1")
	}

	if r.Queue.MaxAttempts < 1 {
		return errors.New("queue.max_attempts must be >=1")
	}

	if r.Queue.RepoDequeuesPerMinute < 1 {
		return errors.New("queue.repo_dequeues_per_minute must be >=1")
	}

	switch r.LogFormat {
	case "logfmt", "json", "console":
	default:
		return fmt.Errorf("log_format must be logfmt, json or console, is: %q", r.LogFormat)
	}

	for i, rule := range r.Rules {
		if rule.Name == "" {
			return fmt.Errorf("rule %d: name must be set", i)
		}

		if rule.FilterQuery == "" {
			return fmt.Errorf("rule %q: filter_query must be set", rule.Name)
		}

		if len(rule.Actions) == 0 {
			return fmt.Errorf("rule %q: at least 1 action must be defined", rule.Name)
		}

		for _, action := range rule.Actions {
			if action.Kind == "" {
				return fmt.Errorf("rule %q: action kind must be set", rule.Name)
			}
		}
	}

	return nil
}

func envStr(dst *string, keys ...string) {
	if *dst != "" {
		return
	}

	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			*dst = v
			return
		}
	}
}
