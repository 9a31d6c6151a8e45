package service

import (
	"context"
	"testing"

	domainerrors "github.com/reserveapp/reserve-server/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLibraryService(t *testing.T) *LibraryService {
	t.Helper()
	return NewLibraryService(newTestStore(t), testLogger())
}

func TestLibraryAddListRemove(t *testing.T) {
	svc := newLibraryService(t)
	ctx := context.Background()

	first, err := svc.AddBook(ctx, "client-1", AddLibraryBookInput{
		BookID: "bk-gitanjali",
		Title:  "Gitanjali",
		Author: "Rabindranath Tagore",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	// Discovery suggestions carry synthesized IDs and are accepted too.
	second, err := svc.AddBook(ctx, "client-1", AddLibraryBookInput{
		BookID: "discovered-the-lemonade-war",
		Title:  "The Lemonade War",
	})
	require.NoError(t, err)

	books, err := svc.ListBooks(ctx, "client-1")
	require.NoError(t, err)
	assert.Len(t, books, 2)

	require.NoError(t, svc.RemoveBook(ctx, "client-1", second.ID))
	books, err = svc.ListBooks(ctx, "client-1")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Gitanjali", books[0].Title)
}

func TestLibraryValidation(t *testing.T) {
	svc := newLibraryService(t)
	ctx := context.Background()

	_, err := svc.AddBook(ctx, "", AddLibraryBookInput{Title: "Walden"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.AddBook(ctx, "client-1", AddLibraryBookInput{Title: "  "})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	err = svc.RemoveBook(ctx, "client-1", "missing-entry")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestLibraryScopedByClient(t *testing.T) {
	svc := newLibraryService(t)
	ctx := context.Background()

	_, err := svc.AddBook(ctx, "client-1", AddLibraryBookInput{Title: "The Guide"})
	require.NoError(t, err)
	_, err = svc.AddBook(ctx, "client-2", AddLibraryBookInput{Title: "Walden"})
	require.NoError(t, err)

	books, err := svc.ListBooks(ctx, "client-2")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Walden", books[0].Title)
}

func TestSetCurrentClearsOtherEntries(t *testing.T) {
	svc := newLibraryService(t)
	ctx := context.Background()

	first, err := svc.AddBook(ctx, "client-1", AddLibraryBookInput{Title: "The Guide"})
	require.NoError(t, err)
	second, err := svc.AddBook(ctx, "client-1", AddLibraryBookInput{Title: "Walden"})
	require.NoError(t, err)

	_, err = svc.SetCurrent(ctx, "client-1", first.ID)
	require.NoError(t, err)
	current, err := svc.SetCurrent(ctx, "client-1", second.ID)
	require.NoError(t, err)
	assert.True(t, current.IsCurrent)

	books, err := svc.ListBooks(ctx, "client-1")
	require.NoError(t, err)
	for _, book := range books {
		assert.Equal(t, book.ID == second.ID, book.IsCurrent)
	}

	_, err = svc.SetCurrent(ctx, "client-1", "missing-entry")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPreferencesUpdateAndDefaults(t *testing.T) {
	svc := newLibraryService(t)
	ctx := context.Background()

	prefs, err := svc.GetPreferences(ctx, "client-1")
	require.NoError(t, err)
	assert.Empty(t, prefs.ExcludeBookIDs)

	origin := "required"
	location := "Mumbai"
	updated, err := svc.UpdatePreferences(ctx, "client-1", UpdatePreferencesInput{
		OriginPreference: &origin,
		Location:         &location,
	})
	require.NoError(t, err)
	assert.Equal(t, "required", updated.OriginPreference)
	assert.Equal(t, "Mumbai", updated.Location)

	bad := "sideways"
	_, err = svc.UpdatePreferences(ctx, "client-1", UpdatePreferencesInput{OriginPreference: &bad})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}
