package encoderinbox

import (
	"context"
	"io"
	"testing"

	"github.com/bionicotaku/lingo-services-media/internal/models/entities"
	"github.com/bionicotaku/lingo-services-media/internal/models/vo"
	"github.com/bionicotaku/lingo-services-media/internal/services"
	"github.com/bionicotaku/lingo-utils/outbox/store"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

type fakeVideosRepository struct {
	video   *entities.Video
	updated *entities.Video
}

func (f *fakeVideosRepository) Get(_ context.Context, _ txmanager.Session, videoID uuid.UUID) (*entities.Video, error) {
	if f.video == nil || f.video.ID != videoID {
		return nil, entities.NewNotFoundError(entities.AggregateTypeVideo, videoID)
	}
	return f.video, nil
}

func (f *fakeVideosRepository) Update(_ context.Context, _ txmanager.Session, video *entities.Video) error {
	f.updated = video
	return nil
}

func (f *fakeVideosRepository) Insert(context.Context, txmanager.Session, *entities.Video) error {
	return nil
}

func (f *fakeVideosRepository) Delete(context.Context, txmanager.Session, uuid.UUID) error {
	return nil
}

func (f *fakeVideosRepository) Search(context.Context, txmanager.Session, vo.SearchInput) ([]*entities.Video, int64, error) {
	return nil, 0, nil
}

func newHandlerFixture(t *testing.T, withMedia bool) (*resultHandler, *fakeVideosRepository, *entities.Video) {
	t.Helper()
	video, err := entities.NewVideo("Encoder Target", "Description", false, false, 2022, 100, entities.RatingL)
	if err != nil {
		t.Fatalf("build video: %v", err)
	}
	if withMedia {
		video.UpdateMedia(video.ID.String() + "/media.mp4")
		video.ClearEvents()
	}

	repo := &fakeVideosRepository{video: video}
	logger := log.NewStdLogger(io.Discard)
	mediaStatus := services.NewMediaStatusService(repo, nil, logger)
	handler := newResultHandler(mediaStatus, logger, nil)
	return handler, repo, video
}

func TestHandlerAppliesCompletedResult(t *testing.T) {
	handler, repo, video := newHandlerFixture(t, true)

	err := handler.Handle(context.Background(), nil, &EncoderResult{
		VideoID:            video.ID.String(),
		Status:             statusCompleted,
		EncodedVideoFolder: video.ID.String() + "/encoded",
	}, nil)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if repo.updated == nil {
		t.Fatal("expected aggregate to be persisted")
	}
	if video.Media.Status != entities.MediaStatusCompleted {
		t.Fatalf("unexpected status: %s", video.Media.Status)
	}
	if video.Media.EncodedPath == nil || *video.Media.EncodedPath != video.ID.String()+"/encoded" {
		t.Fatalf("unexpected encoded path: %v", video.Media.EncodedPath)
	}
}

func TestHandlerAppliesProcessingResult(t *testing.T) {
	handler, _, video := newHandlerFixture(t, true)

	err := handler.Handle(context.Background(), nil, &EncoderResult{
		VideoID: video.ID.String(),
		Status:  statusProcessing,
	}, nil)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if video.Media.Status != entities.MediaStatusProcessing {
		t.Fatalf("unexpected status: %s", video.Media.Status)
	}
}

func TestHandlerAppliesErrorResult(t *testing.T) {
	handler, _, video := newHandlerFixture(t, true)
	if err := video.UpdateAsEncoded("stale/path"); err != nil {
		t.Fatalf("seed encoded state: %v", err)
	}

	err := handler.Handle(context.Background(), nil, &EncoderResult{
		VideoID: video.ID.String(),
		Status:  statusError,
		Error:   "codec not supported",
	}, nil)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if video.Media.Status != entities.MediaStatusError {
		t.Fatalf("unexpected status: %s", video.Media.Status)
	}
	if video.Media.EncodedPath != nil {
		t.Fatal("expected encoded path to be cleared")
	}
}

func TestHandlerFallsBackToInboxAggregateID(t *testing.T) {
	handler, _, video := newHandlerFixture(t, true)
	aggregateID := video.ID.String()

	err := handler.Handle(context.Background(), nil, &EncoderResult{
		Status: statusProcessing,
	}, &store.InboxEvent{AggregateID: &aggregateID})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if video.Media.Status != entities.MediaStatusProcessing {
		t.Fatalf("unexpected status: %s", video.Media.Status)
	}
}

func TestHandlerAcksUnparsableVideoID(t *testing.T) {
	handler, repo, _ := newHandlerFixture(t, true)

	err := handler.Handle(context.Background(), nil, &EncoderResult{
		VideoID: "not-a-uuid",
		Status:  statusProcessing,
	}, nil)
	if err != nil {
		t.Fatalf("expected unparsable video id to be acked, got %v", err)
	}
	if repo.updated != nil {
		t.Fatal("expected no persistence for unparsable video id")
	}

	err = handler.Handle(context.Background(), nil, &EncoderResult{Status: statusProcessing}, nil)
	if err != nil {
		t.Fatalf("expected missing video id to be acked, got %v", err)
	}
	if repo.updated != nil {
		t.Fatal("expected no persistence for missing video id")
	}
}

func TestHandlerAcksUnknownStatus(t *testing.T) {
	handler, repo, video := newHandlerFixture(t, true)

	err := handler.Handle(context.Background(), nil, &EncoderResult{
		VideoID: video.ID.String(),
		Status:  "QUEUED",
	}, nil)
	if err != nil {
		t.Fatalf("expected unknown status to be acked, got %v", err)
	}
	if repo.updated != nil {
		t.Fatal("expected no persistence for unknown status")
	}
}

func TestHandlerAcksMissingVideo(t *testing.T) {
	handler, _, _ := newHandlerFixture(t, true)

	err := handler.Handle(context.Background(), nil, &EncoderResult{
		VideoID: uuid.NewString(),
		Status:  statusCompleted,
	}, nil)
	if err != nil {
		t.Fatalf("expected missing video to be acked, got %v", err)
	}
}

func TestHandlerAcksVideoWithoutMedia(t *testing.T) {
	handler, repo, video := newHandlerFixture(t, false)

	err := handler.Handle(context.Background(), nil, &EncoderResult{
		VideoID: video.ID.String(),
		Status:  statusCompleted,
	}, nil)
	if err != nil {
		t.Fatalf("expected video without media to be acked, got %v", err)
	}
	if repo.updated != nil {
		t.Fatal("expected no persistence without media")
	}
}
