package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bionicotaku/lingo-services-media/internal/models/entities"
	"github.com/bionicotaku/lingo-services-media/internal/services"
	"github.com/google/uuid"
)

func newDeleteService(repo *videosRepoStub, storage *storageStub, outbox *outboxStub, tx *txManagerStub) *services.DeleteVideoService {
	return services.NewDeleteVideoService(repo, storage, outbox, tx, discardLogger())
}

func TestDeleteVideoRemovesStoredMediaAfterCommit(t *testing.T) {
	existing := existingVideo(t)
	existing.UpdateMedia("stored/media.mp4")
	existing.UpdateTrailer("stored/trailer.mp4")
	existing.ClearEvents()

	repo := &videosRepoStub{getVideo: existing}
	storage := &storageStub{}
	outbox := &outboxStub{}
	svc := newDeleteService(repo, storage, outbox, &txManagerStub{})

	if err := svc.Delete(context.Background(), existing.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != existing.ID {
		t.Fatalf("expected aggregate delete, got %v", repo.deleted)
	}
	if len(storage.deletes) != 2 ||
		storage.deletes[0] != "stored/media.mp4" ||
		storage.deletes[1] != "stored/trailer.mp4" {
		t.Fatalf("unexpected storage cleanup %v", storage.deletes)
	}
	types := eventTypes(outbox.messages)
	if len(types) != 1 || types[0] != "catalog.video.deleted" {
		t.Fatalf("unexpected event types %v", types)
	}
}

func TestDeleteVideoTxFailureKeepsStorage(t *testing.T) {
	existing := existingVideo(t)
	existing.UpdateMedia("stored/media.mp4")
	existing.ClearEvents()

	repo := &videosRepoStub{getVideo: existing, deleteErr: errors.New("db down")}
	storage := &storageStub{}
	svc := newDeleteService(repo, storage, &outboxStub{}, &txManagerStub{})

	if err := svc.Delete(context.Background(), existing.ID); err == nil {
		t.Fatal("expected error")
	}
	if len(storage.deletes) != 0 {
		t.Fatal("storage must stay intact when the transaction fails")
	}
}

func TestDeleteVideoNotFound(t *testing.T) {
	svc := newDeleteService(&videosRepoStub{}, &storageStub{}, &outboxStub{}, &txManagerStub{})

	err := svc.Delete(context.Background(), uuid.New())
	var notFound *entities.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
}
