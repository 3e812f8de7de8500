package integration

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"digraph-be/internal/entity"
	"digraph-be/internal/model"
	"digraph-be/internal/repository/specification"
	"digraph-be/internal/repository/unitofwork"
	"digraph-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()

	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err, "Failed to connect to DB")
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Topic{}, &model.Link{}))
	return db
}

func createUser(t *testing.T, uow unitofwork.UnitOfWork) *entity.User {
	t.Helper()
	user := &entity.User{
		Id:       uuid.New(),
		Email:    "test-integration-" + uuid.New().String() + "@example.com",
		FullName: "Integration Test User",
		Status:   entity.UserStatusActive,
	}
	require.NoError(t, uow.UserRepository().Create(context.Background(), user))
	t.Cleanup(func() {
		ctx := context.Background()
		uow.LinkRepository().DeleteAllByUserIdUnscoped(ctx, user.Id)
		uow.TopicRepository().DeleteAllByUserIdUnscoped(ctx, user.Id)
		uow.UserRepository().DeleteUnscoped(ctx, user.Id)
	})
	return user
}

func TestTopicRepository(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	user := createUser(t, uow)
	repo := uow.TopicRepository()

	science := &entity.Topic{Id: uuid.New(), Name: "Science", ParentTopicIds: []uuid.UUID{entity.RootTopicID}, UserId: user.Id}
	physics := &entity.Topic{Id: uuid.New(), Name: "Physics", ParentTopicIds: []uuid.UUID{science.Id}, UserId: user.Id}
	chemistry := &entity.Topic{Id: uuid.New(), Name: "Chemistry", ParentTopicIds: []uuid.UUID{science.Id, entity.RootTopicID}, UserId: user.Id}
	for _, topic := range []*entity.Topic{science, physics, chemistry} {
		require.NoError(t, repo.Create(ctx, topic))
	}

	t.Run("ChildOf matches jsonb parents", func(t *testing.T) {
		children, err := repo.FindAll(ctx,
			specification.VisibleTo{UserID: user.Id},
			specification.ChildOf{ParentID: science.Id},
			specification.OrderBy{Field: "name"},
		)
		require.NoError(t, err)
		require.Len(t, children, 2)
		assert.Equal(t, "Chemistry", children[0].Name)
		assert.Equal(t, "Physics", children[1].Name)
	})

	t.Run("ChildOfAny", func(t *testing.T) {
		count, err := repo.Count(ctx,
			specification.UserOwnedBy{UserID: user.Id},
			specification.ChildOfAny{ParentIDs: []uuid.UUID{entity.RootTopicID, science.Id}},
		)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("ByName ignores case", func(t *testing.T) {
		found, err := repo.FindOne(ctx, specification.UserOwnedBy{UserID: user.Id}, specification.ByName{Name: "physics"})
		require.NoError(t, err)
		assert.Equal(t, physics.Id, found.Id)
	})

	t.Run("root is visible to everyone", func(t *testing.T) {
		root, err := repo.FindOne(ctx, specification.VisibleTo{UserID: uuid.New()}, specification.ByID{ID: entity.RootTopicID})
		require.NoError(t, err)
		if root == nil {
			t.Skip("root topic not seeded, run cmd/migrate first")
		}
		assert.True(t, root.IsRoot())
	})

	t.Run("update parents in a transaction", func(t *testing.T) {
		tx := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
		require.NoError(t, tx.Begin(ctx))
		defer tx.Rollback()

		physics.ParentTopicIds = []uuid.UUID{chemistry.Id}
		require.NoError(t, tx.TopicRepository().Update(ctx, physics))
		require.NoError(t, tx.Commit())

		found, err := repo.FindOne(ctx, specification.ByID{ID: physics.Id})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{chemistry.Id}, found.ParentTopicIds)
	})

	t.Run("Transaction rolls back when fn fails", func(t *testing.T) {
		ghost := &entity.Topic{Id: uuid.New(), Name: "Ghost", ParentTopicIds: []uuid.UUID{entity.RootTopicID}, UserId: user.Id}
		boom := errors.New("boom")

		err := uow.Transaction(ctx, func(tx unitofwork.UnitOfWork) error {
			require.NoError(t, tx.TopicRepository().Create(ctx, ghost))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		found, err := repo.FindOne(ctx, specification.ByID{ID: ghost.Id})
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestLinkRepository(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	user := createUser(t, uow)
	repo := uow.LinkRepository()

	link := &entity.Link{
		Id:             uuid.New(),
		Url:            "https://example.com/oil-prices",
		ParentTopicIds: []uuid.UUID{entity.RootTopicID},
		UserId:         user.Id,
	}
	require.NoError(t, repo.Create(ctx, link))

	t.Run("UpdateTitle", func(t *testing.T) {
		require.NoError(t, repo.UpdateTitle(ctx, link.Id, "Oil Prices Today"))
		found, err := repo.FindOne(ctx, specification.ByID{ID: link.Id})
		require.NoError(t, err)
		assert.Equal(t, "Oil Prices Today", found.Title)
	})

	t.Run("LinkMatches title or url", func(t *testing.T) {
		for _, phrase := range []string{"oil", "PRICES", "example.com"} {
			count, err := repo.Count(ctx, specification.UserOwnedBy{UserID: user.Id}, specification.LinkMatches{Phrase: phrase})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count, phrase)
		}
		count, err := repo.Count(ctx, specification.UserOwnedBy{UserID: user.Id}, specification.LinkMatches{Phrase: "100%"})
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("Delete frees the url", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, link.Id))
		count, err := repo.Count(ctx, specification.UserOwnedBy{UserID: user.Id}, specification.ByUrl{Url: link.Url})
		require.NoError(t, err)
		assert.Zero(t, count)

		again := &entity.Link{Id: uuid.New(), Url: link.Url, ParentTopicIds: []uuid.UUID{entity.RootTopicID}, UserId: user.Id}
		assert.NoError(t, repo.Create(ctx, again))
	})
}
