package vo_test

import (
	"testing"

	"github.com/bionicotaku/lingo-services-media/internal/models/entities"
	"github.com/bionicotaku/lingo-services-media/internal/models/vo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVideoOutput(t *testing.T) {
	video, err := entities.NewVideo("Title", "Description", true, false, 2022, 120, entities.RatingAge12)
	require.NoError(t, err)

	categoryID := uuid.New()
	genreID := uuid.New()
	castID := uuid.New()
	video.SetCategories([]uuid.UUID{categoryID})
	video.SetGenres([]uuid.UUID{genreID})
	video.SetCastMembers([]uuid.UUID{castID})

	video.UpdateThumb("thumb.png")
	video.UpdateBanner("banner.png")
	video.UpdateMedia("media.mp4")
	require.NoError(t, video.UpdateAsEncoded("encoded/media"))

	out := vo.NewVideoOutput(video)
	require.NotNil(t, out)

	assert.Equal(t, video.ID, out.VideoID)
	assert.Equal(t, "Title", out.Title)
	assert.Equal(t, "Description", out.Description)
	assert.Equal(t, 2022, out.YearLaunched)
	assert.True(t, out.Opened)
	assert.False(t, out.Published)
	assert.Equal(t, float64(120), out.Duration)
	assert.Equal(t, "12", out.Rating)
	assert.Equal(t, []uuid.UUID{categoryID}, out.Categories)
	assert.Equal(t, []uuid.UUID{genreID}, out.Genres)
	assert.Equal(t, []uuid.UUID{castID}, out.CastMembers)

	require.NotNil(t, out.ThumbPath)
	assert.Equal(t, "thumb.png", *out.ThumbPath)
	require.NotNil(t, out.BannerPath)
	assert.Equal(t, "banner.png", *out.BannerPath)
	assert.Nil(t, out.ThumbHalfPath)

	require.NotNil(t, out.Media)
	assert.Equal(t, "media.mp4", out.Media.FilePath)
	assert.Equal(t, "completed", out.Media.Status)
	require.NotNil(t, out.Media.EncodedPath)
	assert.Equal(t, "encoded/media", *out.Media.EncodedPath)
	assert.Nil(t, out.Trailer)
}

func TestNewVideoOutputWithoutAttachments(t *testing.T) {
	video, err := entities.NewVideo("Bare", "No attachments", false, false, 2020, 90, entities.RatingL)
	require.NoError(t, err)

	out := vo.NewVideoOutput(video)
	require.NotNil(t, out)
	assert.Nil(t, out.ThumbPath)
	assert.Nil(t, out.ThumbHalfPath)
	assert.Nil(t, out.BannerPath)
	assert.Nil(t, out.Media)
	assert.Nil(t, out.Trailer)
	assert.Empty(t, out.Categories)
}

func TestNewVideoOutputNilSafety(t *testing.T) {
	assert.Nil(t, vo.NewVideoOutput(nil))
}
