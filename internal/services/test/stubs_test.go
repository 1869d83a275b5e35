package services_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/bionicotaku/lingo-services-media/internal/models/entities"
	"github.com/bionicotaku/lingo-services-media/internal/models/vo"
	"github.com/bionicotaku/lingo-services-media/internal/repositories"
	"github.com/bionicotaku/lingo-services-media/internal/services"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ---- stubs ----

type videosRepoStub struct {
	getVideo     *entities.Video
	getErr       error
	insertErr    error
	updateErr    error
	deleteErr    error
	searchVideos []*entities.Video
	searchTotal  int64
	searchErr    error

	inserted   []*entities.Video
	updated    []*entities.Video
	deleted    []uuid.UUID
	lastSearch vo.SearchInput
}

func (s *videosRepoStub) Insert(_ context.Context, _ txmanager.Session, video *entities.Video) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, video)
	return nil
}

func (s *videosRepoStub) Update(_ context.Context, _ txmanager.Session, video *entities.Video) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated = append(s.updated, video)
	return nil
}

func (s *videosRepoStub) Get(_ context.Context, _ txmanager.Session, videoID uuid.UUID) (*entities.Video, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.getVideo == nil {
		return nil, entities.NewNotFoundError(entities.AggregateTypeVideo, videoID)
	}
	return s.getVideo, nil
}

func (s *videosRepoStub) Delete(_ context.Context, _ txmanager.Session, videoID uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, videoID)
	return nil
}

func (s *videosRepoStub) Search(_ context.Context, _ txmanager.Session, input vo.SearchInput) ([]*entities.Video, int64, error) {
	s.lastSearch = input
	if s.searchErr != nil {
		return nil, 0, s.searchErr
	}
	return s.searchVideos, s.searchTotal, nil
}

// refRepoStub 以固定的已知 id 集合回应存在性查询。
type refRepoStub struct {
	known map[uuid.UUID]struct{}
	err   error
	calls int
}

func newRefRepoStub(ids ...uuid.UUID) *refRepoStub {
	known := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}
	return &refRepoStub{known: known}
}

func (s *refRepoStub) GetIdsListByIds(_ context.Context, _ txmanager.Session, ids []uuid.UUID) ([]uuid.UUID, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	var out []uuid.UUID
	for _, id := range ids {
		if _, ok := s.known[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

type outboxStub struct {
	messages []repositories.OutboxMessage
	err      error
}

func (s *outboxStub) Enqueue(_ context.Context, _ txmanager.Session, msg repositories.OutboxMessage) error {
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, msg)
	return nil
}

// storageStub 记录上传与删除的对象键。failAt 为 1 起始的调用序号，
// 第 failAt 次 Upload 调用返回错误。
type storageStub struct {
	failAt  int
	uploads []string
	deletes []string
}

func (s *storageStub) Upload(_ context.Context, key string, _ io.Reader, _ int64, _ string) (string, error) {
	if s.failAt > 0 && len(s.uploads)+1 == s.failAt {
		return "", errStorageDown
	}
	s.uploads = append(s.uploads, key)
	return key, nil
}

func (s *storageStub) Delete(_ context.Context, key string) error {
	s.deletes = append(s.deletes, key)
	return nil
}

type stubSession struct{}

func (stubSession) Tx() pgx.Tx               { return nil }
func (stubSession) Context() context.Context { return context.Background() }

// txManagerStub 直接执行闭包；commitErr 模拟 fn 成功但事务提交失败。
type txManagerStub struct {
	commitErr error
	calls     int
}

func (s *txManagerStub) WithinTx(ctx context.Context, _ txmanager.TxOptions, fn func(context.Context, txmanager.Session) error) error {
	s.calls++
	if err := fn(ctx, stubSession{}); err != nil {
		return err
	}
	return s.commitErr
}

func (s *txManagerStub) WithinReadOnlyTx(ctx context.Context, _ txmanager.TxOptions, fn func(context.Context, txmanager.Session) error) error {
	return fn(ctx, stubSession{})
}

// ---- helpers ----

var errStorageDown = errDownstream("storage unavailable")

type errDownstream string

func (e errDownstream) Error() string { return string(e) }

func discardLogger() log.Logger {
	return log.NewStdLogger(io.Discard)
}

func newResolver(categories, genres, castMembers *refRepoStub) *services.RelationResolver {
	return services.NewRelationResolver(categories, genres, castMembers, discardLogger())
}

func fileInput(ext string) *services.FileInput {
	return &services.FileInput{
		Extension:   ext,
		ContentType: "application/octet-stream",
		Size:        4,
		Reader:      strings.NewReader("data"),
	}
}

func existingVideo(t *testing.T) *entities.Video {
	t.Helper()
	video, err := entities.NewVideo("Existing", "An existing video", true, false, 2021, 95, entities.RatingAge14)
	if err != nil {
		t.Fatalf("build video: %v", err)
	}
	return video
}

func eventTypes(messages []repositories.OutboxMessage) []string {
	out := make([]string, len(messages))
	for i, msg := range messages {
		out[i] = msg.EventType
	}
	return out
}
