// Package main 是媒体目录 Outbox 发布 worker 的进程入口：持续将
// 已提交的视频事件从 catalog.outbox_events 发布到视频事件主题。
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	configloader "github.com/bionicotaku/lingo-services-media/internal/infrastructure/configloader"
	outboxpublisher "github.com/bionicotaku/lingo-utils/outbox/publisher"
	"github.com/go-kratos/kratos/v2/log"
)

type outboxTaskApp struct {
	Runner *outboxpublisher.Runner
	Logger log.Logger
}

func main() {
	ctx := context.Background()

	confFlag := flag.String("conf", "", "config path or directory, eg: -conf configs/config.yaml")
	flag.Parse()

	params := configloader.Params{ConfPath: *confFlag}
	app, cleanup, err := wireOutboxTask(ctx, params)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	logger := app.Logger
	if logger == nil {
		logger = log.NewStdLogger(os.Stdout)
	}
	helper := log.NewHelper(logger)

	if app.Runner == nil {
		helper.Warn("outbox runner disabled (missing messaging.pubsub configuration)")
		return
	}

	helper.Info("starting catalog outbox publisher")

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Runner.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		helper.Errorf("outbox runner stopped unexpectedly: %v", err)
		os.Exit(1)
	}

	helper.Info("catalog outbox publisher stopped")
}
