package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtistCRUD(t *testing.T) {
	ctx := setupDB(t)

	artist, err := ArtistCreate(ctx, ArtistInput{
		Name:        "  Nova  ",
		Bio:         "Singer",
		SocialLinks: map[string]string{"instagram": "https://instagram.com/nova"},
		Age:         intPtr(27),
	})
	require.NoError(t, err)
	assert.NotZero(t, artist.ID)
	assert.Equal(t, "Nova", artist.Name)

	got, err := ArtistByID(ctx, artist.ID)
	require.NoError(t, err)
	assert.Equal(t, "Singer", got.Bio)
	assert.Equal(t, "https://instagram.com/nova", got.SocialLinks["instagram"])
	require.NotNil(t, got.Age)
	assert.Equal(t, 27, *got.Age)

	updated, err := ArtistUpdate(ctx, artist.ID, func(in *ArtistInput) error {
		in.Bio = "Singer and songwriter"
		in.SocialLinks["twitter"] = "https://x.com/nova"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Singer and songwriter", updated.Bio)
	assert.Len(t, updated.SocialLinks, 2)

	require.NoError(t, ArtistDelete(ctx, artist.ID))
	_, err = ArtistByID(ctx, artist.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, ArtistDelete(ctx, artist.ID), ErrNotFound)
}

func TestArtistValidation(t *testing.T) {
	ctx := setupDB(t)

	tests := []struct {
		name  string
		input ArtistInput
		field string
	}{
		{"missing name", ArtistInput{Bio: "x"}, "name"},
		{"blank name", ArtistInput{Name: "   ", Bio: "x"}, "name"},
		{"missing bio", ArtistInput{Name: "A"}, "bio"},
		{"negative age", ArtistInput{Name: "A", Bio: "x", Age: intPtr(-1)}, "age"},
		{"age too high", ArtistInput{Name: "A", Bio: "x", Age: intPtr(151)}, "age"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ArtistCreate(ctx, tt.input)
			assert.Contains(t, validationFields(t, err), tt.field)
		})
	}
}

func TestArtistDuplicateName(t *testing.T) {
	ctx := setupDB(t)

	_, err := ArtistCreate(ctx, ArtistInput{Name: "Nova", Bio: "x"})
	require.NoError(t, err)
	_, err = ArtistCreate(ctx, ArtistInput{Name: "Nova", Bio: "y"})
	assert.Equal(t, "already exists", validationFields(t, err)["name"])
}

func TestArtistDeleteDetachesGallery(t *testing.T) {
	ctx := setupDB(t)

	artist, err := ArtistCreate(ctx, ArtistInput{Name: "Nova", Bio: "x"})
	require.NoError(t, err)
	item, err := GalleryCreate(ctx, GalleryInput{Title: "Live", Description: "show", ArtistID: &artist.ID})
	require.NoError(t, err)
	require.NotNil(t, item.Artist)

	require.NoError(t, ArtistDelete(ctx, artist.ID))
	item, err = GalleryByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, item.ArtistID)
	assert.Nil(t, item.Artist)
}
