package models

import (
	"context"
	"errors"
	"strings"

	"github.com/Franklin-pro/simpo-planet-studio-bn/db"

	"gorm.io/gorm"
)

type Gallery struct {
	Model
	Title        string  `gorm:"type:varchar(300);not null" json:"title"`
	Description  string  `gorm:"type:text" json:"description"`
	Image        string  `gorm:"type:varchar(1024)" json:"image"`
	ThumbnailURL string  `gorm:"type:varchar(1024)" json:"thumbnailUrl"`
	VideoURL     string  `gorm:"type:varchar(1024)" json:"videoUrl"`
	LikeCount    int64   `gorm:"not null;default:0;index" json:"likeCount"`
	ArtistID     *uint64 `gorm:"index" json:"artistId"`
	Artist       *Artist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"artist,omitempty"`

	LikedBy []string `gorm:"-" json:"likedBy"`
}

// Gallery items are stored in "galleries" by default
func (Gallery) TableName() string {
	return "gallery_items"
}

type GalleryInput struct {
	Title        string  `json:"title" validate:"required,max=300"`
	Description  string  `json:"description" validate:"required"`
	Image        string  `json:"image"`
	ThumbnailURL string  `json:"-"`
	VideoURL     string  `json:"videoUrl"`
	ArtistID     *uint64 `json:"artistId"`
}

func (in *GalleryInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	if in.ArtistID != nil && *in.ArtistID == 0 {
		in.ArtistID = nil
	}
}

func (g *Gallery) input() GalleryInput {
	return GalleryInput{
		Title:       g.Title,
		Description: g.Description,
		Image:       g.Image,
		VideoURL:    g.VideoURL,
		ArtistID:    g.ArtistID,
	}
}

func (g *Gallery) apply(in GalleryInput) {
	g.Title = in.Title
	g.Description = in.Description
	switch {
	case in.ThumbnailURL != "":
		g.ThumbnailURL = in.ThumbnailURL
	case in.Image != g.Image:
		// a new image without a new thumbnail drops the old thumbnail
		g.ThumbnailURL = ""
	}
	g.Image = in.Image
	g.VideoURL = in.VideoURL
	if g.ArtistID == nil || in.ArtistID == nil || *g.ArtistID != *in.ArtistID {
		g.Artist = nil
	}
	g.ArtistID = in.ArtistID
}

func (g *Gallery) columns() []string {
	return []string{"Title", "Description", "Image", "ThumbnailURL", "VideoURL", "ArtistID"}
}

func withArtist(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Artist")
}

// checkArtist rejects references to artists that don't exist
func checkArtist(ctx context.Context, in *GalleryInput) error {
	if in.ArtistID == nil {
		return nil
	}
	if _, err := ArtistByID(ctx, *in.ArtistID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return NewValidationError("artistId", "does not exist")
		}
		return err
	}
	return nil
}

func GalleryCreate(ctx context.Context, in GalleryInput) (Gallery, error) {
	in.normalize()
	if err := checkArtist(ctx, &in); err != nil {
		return Gallery{}, err
	}
	item, err := create[Gallery](ctx, in, "")
	if err != nil {
		return item, err
	}
	return GalleryByID(ctx, item.ID)
}

func GalleryList(ctx context.Context) ([]Gallery, error) {
	items, err := find[Gallery](ctx, withArtist, newestFirst)
	for i := range items {
		items[i].LikedBy = []string{}
	}
	return items, err
}

// GalleryByID returns the item together with the distinct likers
func GalleryByID(ctx context.Context, id uint64) (Gallery, error) {
	item, err := byID[Gallery](ctx, id, withArtist)
	if err != nil {
		return item, err
	}
	ctx, cancel := db.Context(ctx)
	defer cancel()
	item.LikedBy = []string{}
	err = db.Instance.WithContext(ctx).Model(&Like{}).
		Where("gallery_id = ?", id).
		Distinct("liker").Order("liker").
		Pluck("liker", &item.LikedBy).Error
	return item, err
}

func GalleryUpdate(ctx context.Context, id uint64, patch func(*GalleryInput) error) (Gallery, error) {
	checked := func(in *GalleryInput) error {
		if err := patch(in); err != nil {
			return err
		}
		in.normalize()
		return checkArtist(ctx, in)
	}
	item, err := update[Gallery](ctx, id, checked, "")
	if err != nil {
		return item, err
	}
	return GalleryByID(ctx, id)
}

func GalleryDelete(ctx context.Context, id uint64) error {
	ctx, cancel := db.Context(ctx)
	defer cancel()
	return db.Instance.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Like{}, "gallery_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&Gallery{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// GalleryLike adds one like. There is no de-duplication per liker.
func GalleryLike(ctx context.Context, id uint64, liker string) (Gallery, error) {
	dbCtx, cancel := db.Context(ctx)
	defer cancel()
	err := db.Instance.WithContext(dbCtx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Gallery{}).Where("id = ?", id).
			UpdateColumn("like_count", gorm.Expr("like_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Create(&Like{GalleryID: id, Liker: liker}).Error
	})
	if err != nil {
		return Gallery{}, err
	}
	return GalleryByID(ctx, id)
}
