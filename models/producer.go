package models

import (
	"context"
	"strings"
	"time"

	"github.com/Franklin-pro/simpo-planet-studio-bn/utils"

	"gorm.io/gorm"
)

const (
	LevelJunior    = "Junior"
	LevelMidLevel  = "Mid-level"
	LevelSenior    = "Senior"
	LevelLegendary = "Legendary"
)

type Credit struct {
	Project string `json:"project"`
	Role    string `json:"role"`
	Year    int    `json:"year" validate:"gte=1900,notfuture"`
}

type SocialMedia struct {
	Instagram  string `gorm:"type:varchar(300)" json:"instagram"`
	Twitter    string `gorm:"type:varchar(300)" json:"twitter"`
	Facebook   string `gorm:"type:varchar(300)" json:"facebook"`
	Spotify    string `gorm:"type:varchar(300)" json:"spotify"`
	SoundCloud string `gorm:"type:varchar(300)" json:"soundCloud"`
	Youtube    string `gorm:"type:varchar(300)" json:"youtube"`
	AppleMusic string `gorm:"type:varchar(300)" json:"appleMusic"`
}

type Producer struct {
	Model
	Name            string      `gorm:"type:varchar(200);not null" json:"name"`
	Level           string      `gorm:"type:varchar(20);not null;index" json:"level"`
	Image           string      `gorm:"type:varchar(1024)" json:"image"`
	Bio             string      `gorm:"type:text" json:"bio"`
	Genres          []string    `gorm:"serializer:json" json:"genres"`
	Skills          []string    `gorm:"serializer:json" json:"skills"`
	ContactEmail    string      `gorm:"type:varchar(200)" json:"contactEmail"`
	YearsExperience int         `json:"yearsExperience"`
	Credits         []Credit    `gorm:"serializer:json" json:"credits"`
	SocialMedia     SocialMedia `gorm:"embedded;embeddedPrefix:social_" json:"socialMedia"`
	IsFeatured      bool        `gorm:"not null;default:false;index" json:"isFeatured"`
}

type ProducerInput struct {
	Name            string      `json:"name" validate:"required,max=200"`
	Level           string      `json:"level" validate:"oneof=Junior Mid-level Senior Legendary"`
	Image           string      `json:"image"`
	Bio             string      `json:"bio" validate:"required,min=50,max=500"`
	Genres          []string    `json:"genres" validate:"min=1"`
	Skills          []string    `json:"skills" validate:"min=1"`
	ContactEmail    string      `json:"contactEmail" validate:"required,email"`
	YearsExperience *int        `json:"yearsExperience" validate:"required,gte=0,lte=50"`
	Credits         []Credit    `json:"credits" validate:"dive"`
	SocialMedia     SocialMedia `json:"socialMedia"`
	IsFeatured      bool        `json:"isFeatured"`
}

func (in *ProducerInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Bio = strings.TrimSpace(in.Bio)
	in.ContactEmail = strings.TrimSpace(in.ContactEmail)
	if in.Level == "" {
		in.Level = LevelJunior
	}
	in.Genres = trimAll(in.Genres)
	in.Skills = trimAll(in.Skills)
	for i := range in.Credits {
		in.Credits[i].Project = strings.TrimSpace(in.Credits[i].Project)
		in.Credits[i].Role = strings.TrimSpace(in.Credits[i].Role)
		if in.Credits[i].Year == 0 {
			in.Credits[i].Year = time.Now().Year()
		}
	}
	s := &in.SocialMedia
	for _, v := range []*string{&s.Instagram, &s.Twitter, &s.Facebook, &s.Spotify, &s.SoundCloud, &s.Youtube, &s.AppleMusic} {
		*v = strings.TrimSpace(*v)
	}
}

// trimAll trims values and drops the empty ones, order is kept
func trimAll(values []string) []string {
	result := []string{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}

func (p *Producer) input() ProducerInput {
	years := p.YearsExperience
	return ProducerInput{
		Name:            p.Name,
		Level:           p.Level,
		Image:           p.Image,
		Bio:             p.Bio,
		Genres:          p.Genres,
		Skills:          p.Skills,
		ContactEmail:    p.ContactEmail,
		YearsExperience: &years,
		Credits:         p.Credits,
		SocialMedia:     p.SocialMedia,
		IsFeatured:      p.IsFeatured,
	}
}

func (p *Producer) apply(in ProducerInput) {
	p.Name = in.Name
	p.Level = in.Level
	p.Image = in.Image
	p.Bio = in.Bio
	p.Genres = in.Genres
	p.Skills = in.Skills
	p.ContactEmail = in.ContactEmail
	p.YearsExperience = *in.YearsExperience
	p.Credits = in.Credits
	if p.Credits == nil {
		p.Credits = []Credit{}
	}
	p.SocialMedia = in.SocialMedia
	p.IsFeatured = in.IsFeatured
}

func (p *Producer) columns() []string {
	return []string{"Name", "Level", "Image", "Bio", "Genres", "Skills", "ContactEmail", "YearsExperience", "Credits", "IsFeatured",
		"social_instagram", "social_twitter", "social_facebook", "social_spotify", "social_sound_cloud", "social_youtube", "social_apple_music"}
}

// ProducerSummary is the short profile shown on listing cards
type ProducerSummary struct {
	Name     string `json:"name"`
	Image    string `json:"image"`
	Level    string `json:"level"`
	ShortBio string `json:"shortBio"`
}

func (p *Producer) Summary() ProducerSummary {
	return ProducerSummary{
		Name:     p.Name,
		Image:    p.Image,
		Level:    p.Level,
		ShortBio: utils.Truncate(p.Bio, 100),
	}
}

type ProducerFilter struct {
	Level    string // case-insensitive
	Featured *bool
}

func (f ProducerFilter) scope(tx *gorm.DB) *gorm.DB {
	if level := strings.TrimSpace(f.Level); level != "" {
		tx = tx.Where("LOWER(level) = ?", strings.ToLower(level))
	}
	if f.Featured != nil {
		tx = tx.Where("is_featured = ?", *f.Featured)
	}
	return tx
}

func ProducerCreate(ctx context.Context, in ProducerInput) (Producer, error) {
	return create[Producer](ctx, in, "")
}

func ProducerList(ctx context.Context, filter ProducerFilter) ([]Producer, error) {
	return find[Producer](ctx, filter.scope, newestFirst)
}

func ProducerByID(ctx context.Context, id uint64) (Producer, error) {
	return byID[Producer](ctx, id)
}

func ProducerUpdate(ctx context.Context, id uint64, patch func(*ProducerInput) error) (Producer, error) {
	return update[Producer](ctx, id, patch, "")
}

func ProducerDelete(ctx context.Context, id uint64) error {
	return remove[Producer](ctx, id)
}
