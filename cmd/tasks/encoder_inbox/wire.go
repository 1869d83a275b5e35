//go:build wireinject
// +build wireinject

// Package main 为 encoder inbox 任务提供 Wire 依赖注入定义。
package main

import (
	"context"
	"fmt"

	configloader "github.com/bionicotaku/lingo-services-media/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-media/internal/repositories"
	"github.com/bionicotaku/lingo-services-media/internal/services"
	encoderinbox "github.com/bionicotaku/lingo-services-media/internal/tasks/encoderinbox"

	"github.com/bionicotaku/lingo-utils/gclog"
	"github.com/bionicotaku/lingo-utils/gcpubsub"
	obswire "github.com/bionicotaku/lingo-utils/observability"
	"github.com/bionicotaku/lingo-utils/pgxpoolx"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

//go:generate go run github.com/google/wire/cmd/wire

var encoderInboxRepoSet = wire.NewSet(
	repositories.NewInboxRepository,
	repositories.NewVideoRepository,
	wire.Bind(new(services.VideosRepository), new(*repositories.VideoRepository)),
)

func wireEncoderInboxTask(context.Context, configloader.Params) (*encoderInboxApp, func(), error) {
	panic(wire.Build(
		configloader.ProviderSet,
		configloader.ProvideEncoderPubSubConfig,
		gclog.ProviderSet,
		obswire.ProviderSet,
		pgxpoolx.ProviderSet,
		txmanager.ProviderSet,
		gcpubsub.ProviderSet,
		encoderInboxRepoSet,
		services.NewMediaStatusService,
		encoderinbox.ProvideTask,
		newEncoderInboxApp,
	))
}

func newEncoderInboxApp(_ *obswire.Component, logger log.Logger, task *encoderinbox.Task) (*encoderInboxApp, error) {
	if task == nil {
		return &encoderInboxApp{Logger: logger}, nil
	}
	if logger == nil {
		return nil, fmt.Errorf("logger not initialized")
	}
	return &encoderInboxApp{
		Task:   task,
		Logger: logger,
	}, nil
}
