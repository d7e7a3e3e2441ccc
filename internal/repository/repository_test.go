package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bookdrive/internal/db"
	"bookdrive/internal/migration"
	"bookdrive/internal/model"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	gormDB, err := db.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	_, err = migration.NewRunner(gormDB, migration.History).Migrate(context.Background(), "")
	require.NoError(t, err)
	return NewStore(gormDB)
}

func newUser(email string) *model.User {
	now := time.Now()
	return &model.User{
		UID:          uuid.New(),
		Email:        email,
		Password:     "hash",
		Role:         model.RoleEmployee,
		IsActive:     true,
		CreatedDate:  now,
		ModifiedDate: now,
	}
}

func TestUserRepository_Unique(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t).Users()

	first := newUser("a@example.com")
	require.NoError(t, repo.Create(ctx, first))

	assert.Error(t, repo.Create(ctx, newUser("a@example.com")), "duplicate email")

	sameUID := newUser("b@example.com")
	sameUID.UID = first.UID
	assert.Error(t, repo.Create(ctx, sameUID), "duplicate uid")

	found, err := repo.FindByUID(ctx, first.UID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
	assert.Equal(t, model.RoleEmployee, found.Role)
	assert.False(t, found.DateJoined.IsZero())
}

func TestUserRepository_InactiveUserStaysInactive(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t).Users()

	user := newUser("idle@example.com")
	user.IsActive = false
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByEmail(ctx, "idle@example.com")
	require.NoError(t, err)
	assert.False(t, found.IsActive)
}

func TestUserRepository_DeleteCascadesSponsors(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	user := newUser("owner@example.com")
	require.NoError(t, store.Users().Create(ctx, user))
	sponsor := &model.Sponsor{Name: model.Ptr("Owned"), UserID: &user.ID}
	require.NoError(t, store.Sponsors().Create(ctx, sponsor))

	require.NoError(t, store.Users().Delete(ctx, user.ID))

	_, err := store.Sponsors().FindByID(ctx, sponsor.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, store.Users().Delete(ctx, user.ID), gorm.ErrRecordNotFound)
}

func TestStore_WithTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	boom := errors.New("boom")

	err := store.WithTransaction(ctx, func(ctx context.Context, tx Store) error {
		if err := tx.NonProfits().Create(ctx, &model.NonProfit{Name: model.Ptr("Gone")}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = store.NonProfits().FindByName(ctx, "Gone")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBookRepository_Counters(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t).Books()

	book := &model.Book{Name: model.Ptr("Counting")}
	require.NoError(t, repo.Create(ctx, book))

	require.NoError(t, repo.DecrementSponsors(ctx, book.ID))
	require.NoError(t, repo.IncrementSponsors(ctx, book.ID))
	require.NoError(t, repo.IncrementSponsors(ctx, book.ID))
	require.NoError(t, repo.DecrementSponsors(ctx, book.ID))

	found, err := repo.FindByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.CurrentSponsors)
}

func TestBookRepository_Links(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	books := store.Books()

	book := &model.Book{Name: model.Ptr("Linked")}
	require.NoError(t, books.Create(ctx, book))
	sponsor := &model.Sponsor{Name: model.Ptr("Acme")}
	require.NoError(t, store.Sponsors().Create(ctx, sponsor))

	require.NoError(t, books.LinkSponsor(ctx, book.ID, sponsor.ID))
	require.NoError(t, books.LinkSponsor(ctx, book.ID, sponsor.ID))

	sponsors, err := books.ListSponsors(ctx, book.ID)
	require.NoError(t, err)
	require.Len(t, sponsors, 1)
	assert.Equal(t, "Acme", model.Deref(sponsors[0].Name))

	// deleting the sponsor drops the link row with it
	require.NoError(t, store.Sponsors().Delete(ctx, sponsor.ID))
	sponsors, err = books.ListSponsors(ctx, book.ID)
	require.NoError(t, err)
	assert.Empty(t, sponsors)
}

func TestNonProfitAndReportTypes(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	np := &model.NonProfit{Name: model.Ptr("Helpers"), URL: model.Ptr("https://helpers.example.org")}
	require.NoError(t, store.NonProfits().Create(ctx, np))
	np.About = model.Ptr("We help")
	require.NoError(t, store.NonProfits().Update(ctx, np))

	list, err := store.NonProfits().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "We help", model.Deref(list[0].About))
	require.NoError(t, store.NonProfits().Delete(ctx, np.ID))

	require.NoError(t, store.ReportTypes().Create(ctx, &model.ReportType{ReportType: model.Ptr("Monthly")}))
	require.NoError(t, store.ReportTypes().Create(ctx, &model.ReportType{}))
	rt, err := store.ReportTypes().FindByLabel(ctx, "Monthly")
	require.NoError(t, err)
	assert.NotZero(t, rt.ReportTypeID)

	all, err := store.ReportTypes().List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Nil(t, all[1].ReportType)

	rt.ReportType = model.Ptr("Quarterly")
	require.NoError(t, store.ReportTypes().Update(ctx, rt))
	got, err := store.ReportTypes().FindByID(ctx, rt.ReportTypeID)
	require.NoError(t, err)
	assert.Equal(t, "Quarterly", model.Deref(got.ReportType))
	require.NoError(t, store.ReportTypes().Delete(ctx, rt.ReportTypeID))
	assert.ErrorIs(t, store.ReportTypes().Delete(ctx, rt.ReportTypeID), gorm.ErrRecordNotFound)
}

func TestDrawingRepository_ListActive(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t).Drawings()

	require.NoError(t, repo.Create(ctx, &model.Drawing{Subject: model.Ptr("cat"), IsActive: model.Ptr(true)}))
	require.NoError(t, repo.Create(ctx, &model.Drawing{Subject: model.Ptr("dog"), IsActive: model.Ptr(false)}))
	require.NoError(t, repo.Create(ctx, &model.Drawing{Subject: model.Ptr("fox")}))

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "cat", model.Deref(active[0].Subject))
}
