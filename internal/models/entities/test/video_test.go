package entities_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/bionicotaku/lingo-services-media/internal/models/entities"
	"github.com/google/uuid"
)

func TestNewVideoValid(t *testing.T) {
	video, err := entities.NewVideo("Title", "Description", true, false, 2022, 120.5, entities.RatingL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if video.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
	if video.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
	if video.Media != nil || video.Trailer != nil || video.Thumb != nil {
		t.Fatal("attachments should start empty")
	}
}

func TestNewVideoCollectsAllViolations(t *testing.T) {
	_, err := entities.NewVideo("", "", true, false, 2022, 120.5, entities.RatingL)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var validation *entities.EntityValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected *EntityValidationError, got %T", err)
	}
	if len(validation.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %d: %v", len(validation.Violations), validation.Violations)
	}
	if validation.Violations[0] != "'Title' should not be empty or null" {
		t.Fatalf("unexpected first violation: %q", validation.Violations[0])
	}
	if validation.Violations[1] != "'Description' should not be empty or null" {
		t.Fatalf("unexpected second violation: %q", validation.Violations[1])
	}
}

func TestNewVideoLengthBounds(t *testing.T) {
	longTitle := strings.Repeat("a", 256)
	_, err := entities.NewVideo(longTitle, "ok", true, false, 2022, 10, entities.RatingAge12)
	var validation *entities.EntityValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if validation.Violations[0] != "'Title' should be less or equal 255 characters long" {
		t.Fatalf("unexpected violation: %q", validation.Violations[0])
	}

	longDescription := strings.Repeat("d", 4001)
	_, err = entities.NewVideo("ok", longDescription, true, false, 2022, 10, entities.RatingAge12)
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if validation.Violations[0] != "'Description' should be less or equal 4000 characters long" {
		t.Fatalf("unexpected violation: %q", validation.Violations[0])
	}

	if _, err := entities.NewVideo(strings.Repeat("a", 255), strings.Repeat("d", 4000), true, false, 2022, 10, entities.RatingAge12); err != nil {
		t.Fatalf("boundary lengths should be valid: %v", err)
	}
}

func TestNewVideoLengthBoundsCountRunes(t *testing.T) {
	// 255 个多字节字符（765 字节）仍在标题上限内。
	if _, err := entities.NewVideo(strings.Repeat("电", 255), strings.Repeat("影", 4000), true, false, 2022, 10, entities.RatingAge12); err != nil {
		t.Fatalf("multibyte boundary lengths should be valid: %v", err)
	}

	_, err := entities.NewVideo(strings.Repeat("电", 256), "ok", true, false, 2022, 10, entities.RatingAge12)
	var validation *entities.EntityValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if validation.Violations[0] != "'Title' should be less or equal 255 characters long" {
		t.Fatalf("unexpected violation: %q", validation.Violations[0])
	}

	_, err = entities.NewVideo("ok", strings.Repeat("影", 4001), true, false, 2022, 10, entities.RatingAge12)
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if validation.Violations[0] != "'Description' should be less or equal 4000 characters long" {
		t.Fatalf("unexpected violation: %q", validation.Violations[0])
	}
}

func TestUpdateKeepsRatingWhenNil(t *testing.T) {
	video := mustVideo(t)
	if err := video.Update("New title", "New description", false, true, 2023, 90, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if video.Rating != entities.RatingL {
		t.Fatalf("rating should be kept, got %s", video.Rating)
	}

	rating := entities.RatingAge18
	if err := video.Update("New title", "New description", false, true, 2023, 90, &rating); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if video.Rating != entities.RatingAge18 {
		t.Fatalf("rating should be replaced, got %s", video.Rating)
	}
}

func TestUpdateInvalid(t *testing.T) {
	video := mustVideo(t)
	err := video.Update("", "desc", false, true, 2020, 10, nil)
	var validation *entities.EntityValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// 校验失败时聚合保持更新前的状态。
	if video.Title != "Title" || video.Description != "Description" {
		t.Fatalf("failed update must not mutate the aggregate: %q / %q", video.Title, video.Description)
	}
	if !video.Opened || video.Published || video.YearLaunched != 2022 {
		t.Fatal("failed update must keep the previous field values")
	}
}

func TestRelationSetsAreIdempotent(t *testing.T) {
	video := mustVideo(t)
	id := uuid.New()

	video.AddCategory(id)
	video.AddCategory(id)
	if got := len(video.Categories()); got != 1 {
		t.Fatalf("expected 1 category, got %d", got)
	}

	video.RemoveCategory(id)
	video.RemoveCategory(id)
	if got := len(video.Categories()); got != 0 {
		t.Fatalf("expected 0 categories, got %d", got)
	}

	other := uuid.New()
	video.AddGenre(id)
	video.AddGenre(other)
	video.RemoveAllGenres()
	if got := len(video.Genres()); got != 0 {
		t.Fatalf("expected genres cleared, got %d", got)
	}

	video.SetCastMembers([]uuid.UUID{id, id, other})
	if got := len(video.CastMembers()); got != 2 {
		t.Fatalf("expected set to dedupe, got %d", got)
	}
}

func TestCategoriesReturnsCopy(t *testing.T) {
	video := mustVideo(t)
	video.AddCategory(uuid.New())

	ids := video.Categories()
	ids[0] = uuid.New()
	if video.Categories()[0] == ids[0] {
		t.Fatal("mutating the returned slice must not affect the aggregate")
	}
}

func TestUpdateMediaRaisesEvent(t *testing.T) {
	video := mustVideo(t)
	video.UpdateMedia("path/media.mp4")

	if video.Media == nil || video.Media.FilePath != "path/media.mp4" {
		t.Fatal("media should be attached")
	}
	events := video.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 queued event, got %d", len(events))
	}
	evt, ok := events[0].(entities.VideoMediaUpdated)
	if !ok {
		t.Fatalf("unexpected event type %T", events[0])
	}
	if evt.VideoID != video.ID || evt.FilePath != "path/media.mp4" {
		t.Fatalf("unexpected event payload: %+v", evt)
	}
	if evt.EventName() != "video.media.updated" {
		t.Fatalf("unexpected event name %q", evt.EventName())
	}

	video.ClearEvents()
	if len(video.Events()) != 0 {
		t.Fatal("events should be cleared")
	}
}

func TestUpdateTrailerDoesNotRaiseEvent(t *testing.T) {
	video := mustVideo(t)
	video.UpdateTrailer("path/trailer.mp4")
	if video.Trailer == nil {
		t.Fatal("trailer should be attached")
	}
	if len(video.Events()) != 0 {
		t.Fatal("trailer update must not queue events")
	}
}

func TestMediaOperationsWithoutMedia(t *testing.T) {
	video := mustVideo(t)
	for name, op := range map[string]func() error{
		"sent_to_encode": video.UpdateAsSentToEncode,
		"encoded":        func() error { return video.UpdateAsEncoded("encoded/path") },
		"encoding_error": video.UpdateAsEncodingError,
	} {
		err := op()
		var validation *entities.EntityValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
		if len(validation.Violations) != 1 || validation.Violations[0] != "There is no Media" {
			t.Fatalf("%s: unexpected violations %v", name, validation.Violations)
		}
	}
}

func mustVideo(t *testing.T) *entities.Video {
	t.Helper()
	video, err := entities.NewVideo("Title", "Description", true, false, 2022, 120.5, entities.RatingL)
	if err != nil {
		t.Fatalf("build video: %v", err)
	}
	return video
}
