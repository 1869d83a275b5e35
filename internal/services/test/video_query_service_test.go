package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bionicotaku/lingo-services-media/internal/models/entities"
	"github.com/bionicotaku/lingo-services-media/internal/models/vo"
	"github.com/bionicotaku/lingo-services-media/internal/services"
	"github.com/google/uuid"
)

func TestVideoQueryGet(t *testing.T) {
	existing := existingVideo(t)
	existing.UpdateThumb("stored/thumb.png")
	repo := &videosRepoStub{getVideo: existing}
	svc := services.NewVideoQueryService(repo, discardLogger())

	output, err := svc.Get(context.Background(), existing.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.VideoID != existing.ID || output.Title != existing.Title {
		t.Fatalf("unexpected output %+v", output)
	}
	if output.ThumbPath == nil || *output.ThumbPath != "stored/thumb.png" {
		t.Fatal("thumb path should be mapped")
	}
}

func TestVideoQueryGetNotFound(t *testing.T) {
	svc := services.NewVideoQueryService(&videosRepoStub{}, discardLogger())
	_, err := svc.Get(context.Background(), uuid.New())
	var notFound *entities.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
}

func TestVideoQuerySearchNormalizesPaging(t *testing.T) {
	repo := &videosRepoStub{
		searchVideos: []*entities.Video{existingVideo(t)},
		searchTotal:  42,
	}
	svc := services.NewVideoQueryService(repo, discardLogger())

	output, err := svc.Search(context.Background(), vo.SearchInput{Page: 0, PerPage: 0, Search: "demo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastSearch.Page != 1 || repo.lastSearch.PerPage != 15 {
		t.Fatalf("expected normalized paging, repo got page=%d per_page=%d", repo.lastSearch.Page, repo.lastSearch.PerPage)
	}
	if output.Page != 1 || output.PerPage != 15 || output.Total != 42 {
		t.Fatalf("unexpected output paging %+v", output)
	}
	if len(output.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(output.Items))
	}
}

func TestVideoQuerySearchError(t *testing.T) {
	repo := &videosRepoStub{searchErr: errors.New("db down")}
	svc := services.NewVideoQueryService(repo, discardLogger())
	if _, err := svc.Search(context.Background(), vo.SearchInput{}); err == nil {
		t.Fatal("expected error")
	}
}
