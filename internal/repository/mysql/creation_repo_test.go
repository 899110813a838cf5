package mysql

import (
	"context"
	"testing"
	"time"

	"QuickAI/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWritesOutbox(t *testing.T) {
	db := newTestDB(t)
	repo := &CreationRepository{DB: db}
	ctx := context.Background()

	creation := &model.Creation{UserID: "user_1", Prompt: "test", Content: "hello", Type: model.TypeBlogArticle}
	require.NoError(t, repo.Create(ctx, creation))
	require.NotZero(t, creation.ID)

	var events []model.CreationOutbox
	require.NoError(t, db.Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, model.EventCreationCreated, events[0].EventType)
	assert.Equal(t, creation.ID, events[0].CreationID)
	assert.Equal(t, "user_1", events[0].UserID)
}

func TestListPublishedFiltersAndOrders(t *testing.T) {
	db := newTestDB(t)
	repo := &CreationRepository{DB: db}
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rows := []*model.Creation{
		{UserID: "u1", Prompt: "old", Content: "c1", Type: model.TypeImage, Publish: true, CreatedAt: base},
		{UserID: "u2", Prompt: "hidden", Content: "c2", Type: model.TypeImage, Publish: false, CreatedAt: base.Add(time.Hour)},
		{UserID: "u3", Prompt: "new", Content: "c3", Type: model.TypeImage, Publish: true, CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, r := range rows {
		require.NoError(t, db.Create(r).Error)
	}

	list, err := repo.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// 时间倒序，未发布的不出现
	assert.Equal(t, "new", list[0].Prompt)
	assert.Equal(t, "old", list[1].Prompt)
}

func TestListByUserAttachesLikes(t *testing.T) {
	db := newTestDB(t)
	repo := &CreationRepository{DB: db}
	likeRepo := &CreationLikeRepository{DB: db}
	ctx := context.Background()

	creation := &model.Creation{UserID: "owner", Prompt: "p", Content: "c", Type: model.TypeArticle}
	require.NoError(t, db.Create(creation).Error)

	_, err := likeRepo.Toggle(ctx, creation.ID, "fan_1")
	require.NoError(t, err)
	_, err = likeRepo.Toggle(ctx, creation.ID, "fan_2")
	require.NoError(t, err)

	list, err := repo.ListByUser(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.ElementsMatch(t, []string{"fan_1", "fan_2"}, list[0].Likes)
}

func TestListByUserEmptyLikesIsArray(t *testing.T) {
	db := newTestDB(t)
	repo := &CreationRepository{DB: db}

	creation := &model.Creation{UserID: "owner", Prompt: "p", Content: "c", Type: model.TypeArticle}
	require.NoError(t, db.Create(creation).Error)

	list, err := repo.ListByUser(context.Background(), "owner")
	require.NoError(t, err)
	require.Len(t, list, 1)
	// likes 序列化成 [] 而不是 null
	assert.NotNil(t, list[0].Likes)
	assert.Empty(t, list[0].Likes)
}

func TestFindByIDMissing(t *testing.T) {
	db := newTestDB(t)
	repo := &CreationRepository{DB: db}

	_, err := repo.FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrCreationNotFound)
}
