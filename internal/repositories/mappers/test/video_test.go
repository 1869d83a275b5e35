package mappers_test

import (
	"testing"

	"github.com/bionicotaku/lingo-services-media/internal/models/entities"
	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/bionicotaku/lingo-services-media/internal/repositories/mappers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoToRow(t *testing.T) {
	video, err := entities.NewVideo("Title", "Description", true, false, 2022, 120, entities.RatingAge16)
	require.NoError(t, err)
	video.UpdateThumb("thumb.png")
	video.UpdateMedia("media.mp4")
	video.UpdateTrailer("trailer.mp4")

	row := mappers.VideoToRow(video)

	assert.Equal(t, video.ID, row.VideoID)
	assert.Equal(t, "Title", row.Title)
	assert.Equal(t, "Description", row.Description)
	assert.Equal(t, int32(2022), row.YearLaunched)
	assert.True(t, row.Opened)
	assert.False(t, row.Published)
	assert.Equal(t, float64(120), row.Duration)
	assert.Equal(t, "16", row.Rating)
	assert.Equal(t, video.CreatedAt, row.CreatedAt)

	require.NotNil(t, row.ThumbPath)
	assert.Equal(t, "thumb.png", *row.ThumbPath)
	assert.Nil(t, row.ThumbHalfPath)
	assert.Nil(t, row.BannerPath)

	require.NotNil(t, row.MediaID)
	assert.Equal(t, video.Media.ID, *row.MediaID)
	require.NotNil(t, row.TrailerID)
	assert.Equal(t, video.Trailer.ID, *row.TrailerID)
}

func TestMediaToRow(t *testing.T) {
	media := entities.NewMedia("media.mp4")
	media.UpdateAsEncoded("encoded/media")

	row := mappers.MediaToRow(media)

	assert.Equal(t, media.ID, row.MediaID)
	assert.Equal(t, "media.mp4", row.FilePath)
	require.NotNil(t, row.EncodedPath)
	assert.Equal(t, "encoded/media", *row.EncodedPath)
	assert.Equal(t, "completed", row.Status)
}

func TestVideoFromRowRoundTrip(t *testing.T) {
	video, err := entities.NewVideo("Round Trip", "Description", false, true, 2021, 95.5, entities.RatingER)
	require.NoError(t, err)
	video.UpdateBanner("banner.png")
	video.UpdateMedia("media.mp4")

	categoryID := uuid.New()
	genreID := uuid.New()

	row := mappers.VideoToRow(video)
	mediaRow := mappers.MediaToRow(video.Media)
	rebuilt := mappers.VideoFromRow(row, &mediaRow, nil, po.VideoRelations{
		Categories: []uuid.UUID{categoryID},
		Genres:     []uuid.UUID{genreID},
	})

	assert.Equal(t, video.ID, rebuilt.ID)
	assert.Equal(t, video.Title, rebuilt.Title)
	assert.Equal(t, video.Description, rebuilt.Description)
	assert.Equal(t, video.YearLaunched, rebuilt.YearLaunched)
	assert.Equal(t, video.Opened, rebuilt.Opened)
	assert.Equal(t, video.Published, rebuilt.Published)
	assert.Equal(t, video.Duration, rebuilt.Duration)
	assert.Equal(t, entities.RatingER, rebuilt.Rating)

	assert.Nil(t, rebuilt.Thumb)
	require.NotNil(t, rebuilt.Banner)
	assert.Equal(t, "banner.png", rebuilt.Banner.Path)

	require.NotNil(t, rebuilt.Media)
	assert.Equal(t, video.Media.ID, rebuilt.Media.ID)
	assert.Equal(t, "media.mp4", rebuilt.Media.FilePath)
	assert.Equal(t, entities.MediaStatusPending, rebuilt.Media.Status)
	assert.Nil(t, rebuilt.Trailer)

	assert.Equal(t, []uuid.UUID{categoryID}, rebuilt.Categories())
	assert.Equal(t, []uuid.UUID{genreID}, rebuilt.Genres())
	assert.Empty(t, rebuilt.CastMembers())

	assert.Empty(t, rebuilt.Events())
}

func TestMediaIDOrNil(t *testing.T) {
	assert.Nil(t, mappers.MediaIDOrNil(nil))

	media := entities.NewMedia("media.mp4")
	got := mappers.MediaIDOrNil(media)
	require.NotNil(t, got)
	assert.Equal(t, media.ID, *got)
}
