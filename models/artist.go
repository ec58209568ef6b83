package models

import (
	"context"
	"strings"

	"github.com/Franklin-pro/simpo-planet-studio-bn/db"

	"gorm.io/gorm"
)

type Artist struct {
	Model
	Name        string            `gorm:"type:varchar(200);uniqueIndex;not null" json:"name"`
	Bio         string            `gorm:"type:text" json:"bio"`
	ImageURL    string            `gorm:"type:varchar(1024)" json:"imageUrl"`
	SocialLinks map[string]string `gorm:"serializer:json" json:"socialLinks"`
	Age         *int              `json:"age,omitempty"`
	Management  string            `gorm:"type:varchar(200)" json:"management,omitempty"`
}

type ArtistInput struct {
	Name        string            `json:"name" validate:"required,max=200"`
	Bio         string            `json:"bio" validate:"required"`
	ImageURL    string            `json:"imageUrl"`
	SocialLinks map[string]string `json:"socialLinks"`
	Age         *int              `json:"age" validate:"omitempty,gte=0,lte=150"`
	Management  string            `json:"management" validate:"max=200"`
}

func (in *ArtistInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Management = strings.TrimSpace(in.Management)
}

func (a *Artist) input() ArtistInput {
	links := make(map[string]string, len(a.SocialLinks))
	for k, v := range a.SocialLinks {
		links[k] = v
	}
	return ArtistInput{
		Name:        a.Name,
		Bio:         a.Bio,
		ImageURL:    a.ImageURL,
		SocialLinks: links,
		Age:         a.Age,
		Management:  a.Management,
	}
}

func (a *Artist) apply(in ArtistInput) {
	a.Name = in.Name
	a.Bio = in.Bio
	a.ImageURL = in.ImageURL
	a.SocialLinks = in.SocialLinks
	if a.SocialLinks == nil {
		a.SocialLinks = map[string]string{}
	}
	a.Age = in.Age
	a.Management = in.Management
}

func (a *Artist) columns() []string {
	return []string{"Name", "Bio", "ImageURL", "SocialLinks", "Age", "Management"}
}

func ArtistCreate(ctx context.Context, in ArtistInput) (Artist, error) {
	return create[Artist](ctx, in, "name")
}

func ArtistList(ctx context.Context) ([]Artist, error) {
	return find[Artist](ctx, newestFirst)
}

func ArtistByID(ctx context.Context, id uint64) (Artist, error) {
	return byID[Artist](ctx, id)
}

func ArtistUpdate(ctx context.Context, id uint64, patch func(*ArtistInput) error) (Artist, error) {
	return update[Artist](ctx, id, patch, "name")
}

// ArtistDelete detaches the gallery items referencing the artist before removing it
func ArtistDelete(ctx context.Context, id uint64) error {
	ctx, cancel := db.Context(ctx)
	defer cancel()
	return db.Instance.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Gallery{}).Where("artist_id = ?", id).UpdateColumn("artist_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&Artist{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
