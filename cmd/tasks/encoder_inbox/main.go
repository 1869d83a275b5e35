// Package main 提供转码结果 Inbox Runner 的独立入口，负责消费编码器回传事件
// 并推进 catalog.media 的状态机。
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	configloader "github.com/bionicotaku/lingo-services-media/internal/infrastructure/configloader"
	"github.com/go-kratos/kratos/v2/log"
)

type encoderInboxApp struct {
	Task   runner
	Logger log.Logger
}

type runner interface {
	Run(ctx context.Context) error
}

func main() {
	ctx := context.Background()

	confFlag := flag.String("conf", "", "config path or directory, eg: -conf configs/config.yaml")
	flag.Parse()

	params := configloader.Params{ConfPath: *confFlag}
	app, cleanup, err := wireEncoderInboxTask(ctx, params)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	logger := app.Logger
	if logger == nil {
		logger = log.NewStdLogger(os.Stdout)
	}
	helper := log.NewHelper(logger)

	if app.Task == nil {
		helper.Warn("encoder inbox runner disabled (missing messaging.encoder configuration)")
		return
	}

	helper.Info("starting encoder inbox task")

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Task.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		helper.Errorf("encoder inbox runner stopped unexpectedly: %v", err)
		os.Exit(1)
	}

	helper.Info("encoder inbox task stopped")
}
