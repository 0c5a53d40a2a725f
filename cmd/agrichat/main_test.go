package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/at-ishikawa/agrichat/internal/config"
	"github.com/at-ishikawa/agrichat/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantLevel slog.Level
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
			wantLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			logger := slog.Default()
			assert.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel <= slog.LevelDebug, logger.Enabled(t.Context(), slog.LevelDebug))
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "agrichat", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
	assert.False(t, cmd.HasSubCommands())
}

func TestRootCommand_Execute(t *testing.T) {
	tests := []struct {
		name              string
		apiKey            string
		configContent     string
		args              []string
		input             string
		wantErr           error
		wantErrorContains string
		wantOutput        []string
		wantNotOutput     []string
	}{
		{
			name:          "missing API key stops before the menu",
			apiKey:        "",
			input:         "1\n水稻\n",
			wantErr:       config.ErrPlaceholderAPIKey,
			wantOutput:    []string{"⚠️  请先配置您的 DashScope API Key！"},
			wantNotOutput: []string{"请选择您要咨询的农业类别"},
		},
		{
			name:       "placeholder API key stops before the menu",
			apiKey:     "your_api_key_here",
			input:      "q\n",
			wantErr:    config.ErrPlaceholderAPIKey,
			wantOutput: []string{"⚠️  请先配置您的 DashScope API Key！"},
		},
		{
			name:       "quit right away",
			apiKey:     "sk-test",
			input:      "q\n",
			wantOutput: []string{"请选择您要咨询的农业类别：", "  [9] 农业机械与智能农业", "👋 感谢使用智慧农博士，祝您丰收！"},
		},
		{
			name:   "invalid configuration",
			apiKey: "sk-test",
			configContent: `dashscope:
  endpoint: ftp://example.com
`,
			input:             "q\n",
			wantErrorContains: "dashscope.endpoint must be an https URL",
		},
		{
			name:              "positional arguments are rejected",
			apiKey:            "sk-test",
			args:              []string{"extra"},
			input:             "q\n",
			wantErrorContains: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.UnsetEnv(t, testutil.DashScopeEnvKeys...)
			if tt.apiKey != "" {
				t.Setenv("DASHSCOPE_API_KEY", tt.apiKey)
			}
			configPath := testutil.SetupTestConfig(t, t.TempDir(), tt.configContent)

			var out bytes.Buffer
			cmd := newRootCommand()
			cmd.SetArgs(append([]string{"--config", configPath}, tt.args...))
			cmd.SetIn(strings.NewReader(tt.input))
			cmd.SetOut(&out)
			cmd.SetErr(&out)

			err := cmd.Execute()

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrorContains != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrorContains)
			default:
				require.NoError(t, err)
			}
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
			for _, notWant := range tt.wantNotOutput {
				assert.NotContains(t, out.String(), notWant)
			}
		})
	}
}
