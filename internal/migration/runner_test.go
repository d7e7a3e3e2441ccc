package migration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bookdrive/internal/db"
	"bookdrive/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := db.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormDB
}

func appliedNames(t *testing.T, r *Runner) []string {
	t.Helper()
	statuses, err := r.Status(context.Background())
	require.NoError(t, err)

	var names []string
	for _, st := range statuses {
		if st.Status == StatusApplied {
			names = append(names, st.Name)
		}
	}
	return names
}

func TestValidateChain(t *testing.T) {
	noop := func(*gorm.DB) error { return nil }

	assert.NoError(t, ValidateChain(History))
	assert.NoError(t, NewRunner(nil, History).Validate())

	tests := []struct {
		name  string
		steps []Step
	}{
		{"first has dependency", []Step{{Name: "a", DependsOn: "z", Up: noop}}},
		{"skips predecessor", []Step{{Name: "a", Up: noop}, {Name: "b", DependsOn: "a", Up: noop}, {Name: "c", DependsOn: "a", Up: noop}}},
		{"duplicate name", []Step{{Name: "a", Up: noop}, {Name: "a", DependsOn: "a", Up: noop}}},
		{"missing up", []Step{{Name: "a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateChain(tt.steps), ErrBrokenHistory)
		})
	}
}

func TestMigrate_All(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	r := NewRunner(gormDB, History)

	n, err := r.Migrate(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	m := gormDB.Migrator()
	for _, table := range []string{"users", "report_type", "drawings", "nonprofits", "sponsors", "books", "sponsor_books", "books_sponsors", "books_drawings", "schema_migrations"} {
		assert.True(t, m.HasTable(table), table)
	}
	assert.True(t, m.HasColumn(&model.Book{}, "cover_url"))

	// second run is a no-op
	n, err = r.Migrate(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, n)

	statuses, err := r.Status(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	for _, st := range statuses {
		assert.Equal(t, StatusApplied, st.Status)
		require.NotNil(t, st.AppliedAt)
		assert.WithinDuration(t, time.Now(), *st.AppliedAt, time.Minute)
	}
}

func TestMigrate_CoverURLOnExistingBooks(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	r := NewRunner(gormDB, History)

	_, err := r.Migrate(ctx, "0002_sponsor_books")
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_initial", "0002_sponsor_books"}, appliedNames(t, r))

	m := gormDB.Migrator()
	require.False(t, m.HasColumn(&model.Book{}, "cover_url"))
	require.False(t, m.HasTable("books_drawings"))

	now := time.Now()
	require.NoError(t, gormDB.Exec(
		"INSERT INTO books (name, current_sponsors, total_sponsors, created_on, modified_on) VALUES (?, ?, ?, ?, ?)",
		"Old Book", 0, 1, now, now,
	).Error)

	applied, err := r.Apply(ctx, "0003_books_cover_url_drawings")
	require.NoError(t, err)
	assert.True(t, applied)

	assert.True(t, m.HasColumn(&model.Book{}, "cover_url"))
	assert.True(t, m.HasTable("books_drawings"))

	var book model.Book
	require.NoError(t, gormDB.Where("name = ?", "Old Book").First(&book).Error)
	assert.Nil(t, book.CoverURL)

	var links int64
	require.NoError(t, gormDB.Model(&model.BookDrawing{}).Where("book_id = ?", book.ID).Count(&links).Error)
	assert.Zero(t, links)
}

func TestApply_NoOpWhenApplied(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newTestDB(t), History)

	applied, err := r.Apply(ctx, "0001_initial")
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = r.Apply(ctx, "0001_initial")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, []string{"0001_initial"}, appliedNames(t, r))
}

func TestApply_DependencyNotApplied(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	r := NewRunner(gormDB, History)

	_, err := r.Apply(ctx, "0003_books_cover_url_drawings")
	assert.ErrorIs(t, err, ErrDependencyNotApplied)

	_, err = r.Apply(ctx, "0001_initial")
	require.NoError(t, err)
	_, err = r.Apply(ctx, "0003_books_cover_url_drawings")
	assert.ErrorIs(t, err, ErrDependencyNotApplied)
	assert.False(t, gormDB.Migrator().HasTable("books_drawings"))

	_, err = r.Apply(ctx, "9999_unknown")
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestLoad_InconsistentHistory(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	r := NewRunner(gormDB, History)

	_, err := r.Status(ctx)
	require.NoError(t, err)
	require.NoError(t, gormDB.Create(&SchemaMigration{Name: "0002_sponsor_books", AppliedAt: time.Now()}).Error)

	_, err = r.Migrate(ctx, "")
	assert.ErrorIs(t, err, ErrInconsistentHistory)
	_, err = r.Rollback(ctx, 1)
	assert.ErrorIs(t, err, ErrInconsistentHistory)
}

func TestMigrate_BrokenHistory(t *testing.T) {
	noop := func(*gorm.DB) error { return nil }
	r := NewRunner(newTestDB(t), []Step{{Name: "a", Up: noop}, {Name: "b", Up: noop}})

	_, err := r.Migrate(context.Background(), "")

	assert.ErrorIs(t, err, ErrBrokenHistory)
}

func TestPlan(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newTestDB(t), History)

	plan, err := r.Plan(ctx, "0002_sponsor_books")
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "0001_initial", plan[0].Name)
	assert.Equal(t, "0002_sponsor_books", plan[1].Name)

	_, err = r.Migrate(ctx, "0001_initial")
	require.NoError(t, err)
	plan, err = r.Plan(ctx, "")
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "0002_sponsor_books", plan[0].Name)

	_, err = r.Plan(ctx, "nope")
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestRollback(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	r := NewRunner(gormDB, History)

	_, err := r.Migrate(ctx, "0002_sponsor_books")
	require.NoError(t, err)
	require.True(t, gormDB.Migrator().HasTable("sponsor_books"))

	reverted, err := r.Rollback(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"0002_sponsor_books"}, reverted)
	assert.False(t, gormDB.Migrator().HasTable("sponsor_books"))
	assert.Equal(t, []string{"0001_initial"}, appliedNames(t, r))

	// reapplying after a rollback works
	n, err := r.Migrate(ctx, "0002_sponsor_books")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRollback_CoverURLKeepsLinksAndSponsorships(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	r := NewRunner(gormDB, History)

	_, err := r.Migrate(ctx, "")
	require.NoError(t, err)

	book := &model.Book{Name: model.Ptr("Kept"), CoverURL: model.Ptr("https://cdn.example.com/kept.png")}
	require.NoError(t, gormDB.Create(book).Error)
	sponsor := &model.Sponsor{Name: model.Ptr("Acme")}
	require.NoError(t, gormDB.Create(sponsor).Error)
	require.NoError(t, gormDB.Create(&model.BookSponsor{BookID: book.ID, SponsorID: sponsor.ID}).Error)
	require.NoError(t, gormDB.Create(&model.SponsoredBook{SponsorID: &sponsor.ID, BookID: &book.ID}).Error)

	reverted, err := r.Rollback(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"0003_books_cover_url_drawings"}, reverted)

	m := gormDB.Migrator()
	assert.False(t, m.HasColumn(&model.Book{}, "cover_url"))
	assert.False(t, m.HasTable("books_drawings"))

	var books, links, sponsorships int64
	require.NoError(t, gormDB.Table("books").Count(&books).Error)
	require.NoError(t, gormDB.Table("books_sponsors").Count(&links).Error)
	require.NoError(t, gormDB.Table("sponsor_books").Count(&sponsorships).Error)
	assert.Equal(t, int64(1), books)
	assert.Equal(t, int64(1), links)
	assert.Equal(t, int64(1), sponsorships)

	// and forward again
	n, err := r.Migrate(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, m.HasColumn(&model.Book{}, "cover_url"))
}

func TestRollback_Irreversible(t *testing.T) {
	ctx := context.Background()
	noop := func(*gorm.DB) error { return nil }
	r := NewRunner(newTestDB(t), []Step{{Name: "a", Up: noop}})

	_, err := r.Migrate(ctx, "")
	require.NoError(t, err)

	reverted, err := r.Rollback(ctx, 5)
	assert.ErrorIs(t, err, ErrIrreversible)
	assert.Empty(t, reverted)
}

func TestMigrate_FailedStepNotRecorded(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	steps := []Step{
		{Name: "a", Up: func(*gorm.DB) error { return nil }},
		{Name: "b", DependsOn: "a", Up: func(*gorm.DB) error { return boom }},
	}
	r := NewRunner(newTestDB(t), steps)

	n, err := r.Migrate(ctx, "")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"a"}, appliedNames(t, r))
}
