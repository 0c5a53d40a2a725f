package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/at-ishikawa/agrichat/internal/catalog"
	"github.com/at-ishikawa/agrichat/internal/cli"
	"github.com/at-ishikawa/agrichat/internal/inference/dashscope"
	"github.com/at-ishikawa/agrichat/internal/typewriter"
)

func runChat(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Stop before any request is made with an unusable key
	if err := cfg.DashScope.RequireAPIKey(); err != nil {
		_, _ = fmt.Fprintln(stdout, "⚠️  请先配置您的 DashScope API Key！（环境变量 DASHSCOPE_API_KEY）")
		return fmt.Errorf("cfg.DashScope.RequireAPIKey() > %w", err)
	}

	client := dashscope.NewClient(cfg.DashScope)
	defer func() {
		_ = client.Close()
	}()
	slog.Default().Debug("Using DashScope provider",
		slog.String("model", client.GetModel()),
		slog.Duration("timeout", cfg.DashScope.Timeout),
	)

	renderer := typewriter.New(stdout, typewriter.WithDelay(cfg.Typewriter.Delay))
	session := cli.NewChatSession(catalog.Default(), client, renderer, stdin, stdout)
	return session.Run(ctx, session)
}
