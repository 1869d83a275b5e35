package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/bionicotaku/lingo-services-media/internal/models/entities"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// 对象键中的槽位名。拼接规则为 {videoId}/{slot}.{ext}。
const (
	slotThumb     = "thumb"
	slotBanner    = "banner"
	slotThumbHalf = "thumbhalf"
	slotMedia     = "media"
	slotTrailer   = "trailer"
)

func storageKey(videoID uuid.UUID, slot, extension string) string {
	ext := strings.TrimPrefix(extension, ".")
	return fmt.Sprintf("%s/%s.%s", videoID, slot, ext)
}

// videoFiles 汇总一次请求携带的全部待上传文件，任意槽位可为空。
type videoFiles struct {
	Thumb     *FileInput
	Banner    *FileInput
	ThumbHalf *FileInput
	Media     *FileInput
	Trailer   *FileInput
}

// uploadTracker 记录已成功写入对象存储的键，供失败路径反向补偿。
type uploadTracker struct {
	keys []string
}

func (t *uploadTracker) record(key string) {
	t.keys = append(t.keys, key)
}

// mediaUploader 按固定顺序（thumb → banner → thumbhalf → media → trailer）
// 上传文件并把返回的存储路径写回聚合。顺序固定使失败点可预测，
// 补偿范围恰好等于已记录的键集合。
type mediaUploader struct {
	storage StorageGateway
	log     *log.Helper
}

func newMediaUploader(storage StorageGateway, logger log.Logger) *mediaUploader {
	return &mediaUploader{
		storage: storage,
		log:     log.NewHelper(logger),
	}
}

func (u *mediaUploader) uploadAll(ctx context.Context, video *entities.Video, files videoFiles, tracker *uploadTracker) error {
	steps := []struct {
		slot  string
		file  *FileInput
		apply func(string)
	}{
		{slotThumb, files.Thumb, video.UpdateThumb},
		{slotBanner, files.Banner, video.UpdateBanner},
		{slotThumbHalf, files.ThumbHalf, video.UpdateThumbHalf},
		{slotMedia, files.Media, video.UpdateMedia},
		{slotTrailer, files.Trailer, video.UpdateTrailer},
	}
	for _, step := range steps {
		if step.file == nil {
			continue
		}
		key := storageKey(video.ID, step.slot, step.file.Extension)
		path, err := u.storage.Upload(ctx, key, step.file.Reader, step.file.Size, step.file.ContentType)
		if err != nil {
			return fmt.Errorf("upload %s: %w", step.slot, err)
		}
		tracker.record(path)
		step.apply(path)
	}
	return nil
}

// rollbackUploads 按上传的相反顺序删除已写入的对象。删除基于与请求
// 取消解耦的 context 执行：即便调用方已超时，补偿也要尽力完成。
// 单个删除失败只记日志，不中断其余补偿。
func (u *mediaUploader) rollbackUploads(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}
	cleanupCtx := context.WithoutCancel(ctx)
	for i := len(keys) - 1; i >= 0; i-- {
		if err := u.storage.Delete(cleanupCtx, keys[i]); err != nil {
			u.log.WithContext(cleanupCtx).Warnf("rollback upload failed: key=%s err=%v", keys[i], err)
		}
	}
}
