package cfg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleCfg = `
http_server_listen_addr = ":9000"
github_webhook_endpoint = "/hooks/gh"
github_api_token = "token123"
log_format = "json"
merge_queue_trigger_labels = ["auto-merge"]

[queue]
workers = 2
max_attempts = 5
repo_dequeues_per_minute = 3

[[rule]]
name = "close-stale"
filter_query = ".action == \"labeled\""

  [[rule.action]]
  kind = "add-label"
  priority = "low"
    [rule.action.params]
    labels = "stale"
`

func TestLoad(t *testing.T) {
	cfg, err := Load(strings.NewReader(exampleCfg))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTPListenAddr)
	assert.Equal(t, "/hooks/gh", cfg.GithubWebhookEndpoint)
	assert.Equal(t, "token123", cfg.GithubAPIToken)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{"auto-merge"}, cfg.MergeQueueTriggerLabels)
	assert.Equal(t, 2, cfg.Queue.Workers)
	assert.Equal(t, 5, cfg.Queue.MaxAttempts)
	assert.Equal(t, 3, cfg.Queue.RepoDequeuesPerMinute)

	require.Len(t, cfg.Rules, 1)
	rule := cfg.Rules[0]
	assert.Equal(t, "close-stale", rule.Name)
	assert.Equal(t, `.action == "labeled"`, rule.FilterQuery)
	require.Len(t, rule.Actions, 1)
	assert.Equal(t, "add-label", rule.Actions[0].Kind)
	assert.Equal(t, "low", rule.Actions[0].Priority)
	assert.Equal(t, "stale", rule.Actions[0].Params["labels"])
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	assert.Equal(t, ":8084", cfg.HTTPListenAddr)
	assert.Equal(t, "/webhooks/github", cfg.GithubWebhookEndpoint)
	assert.Equal(t, "logfmt", cfg.LogFormat)
	assert.Equal(t, 5, cfg.Queue.Workers)
	assert.Equal(t, 3, cfg.Queue.MaxAttempts)
	assert.Equal(t, 10, cfg.Queue.RepoDequeuesPerMinute)
	assert.Equal(t, 1, cfg.Queue.RetryDelaySeconds)
	assert.Equal(t, 24, cfg.Queue.RetentionHours)
	assert.Contains(t, cfg.MergeQueueTriggerLabels, "claude-auto")

	require.NoError(t, cfg.Validate())
}

func TestEnvFallbackOnlyFillsEmptyFields(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "from-env")
	t.Setenv("MERGANSER_LOG_FORMAT", "console")

	cfg := Config{LogFormat: "json"}
	cfg.ApplyEnvFallbacks()

	assert.Equal(t, "from-env", cfg.GithubAPIToken)
	assert.Equal(t, "json", cfg.LogFormat, "file value must win over env")
}

func TestEnvFallbackPrefersMerganserVar(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "generic")
	t.Setenv("MERGANSER_GITHUB_API_TOKEN", "specific")

	var cfg Config
	cfg.ApplyEnvFallbacks()

	assert.Equal(t, "specific", cfg.GithubAPIToken)
}

func TestValidateRejectsRuleWithoutFilter(t *testing.T) {
	cfg := Config{
		Rules: []*Rule{{Name: "broken"}},
	}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filter_query")
}
