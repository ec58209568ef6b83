package models

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type PortfolioEntry struct {
	Title string `json:"title"`
	Year  int    `json:"year" validate:"omitempty,gte=1888,notfuture"`
	Role  string `json:"role"`
}

type FilmmakerContact struct {
	Email string `gorm:"type:varchar(200)" json:"email" validate:"omitempty,email"`
	Phone string `gorm:"type:varchar(50)" json:"phone"`
}

type Filmmaker struct {
	Model
	Name           string           `gorm:"type:varchar(200);not null" json:"name"`
	Bio            string           `gorm:"type:text" json:"bio"`
	Image          string           `gorm:"type:varchar(1024)" json:"image"`
	Specialization string           `gorm:"type:varchar(30);not null;index" json:"specialization"`
	Experience     int              `json:"experience"`
	Portfolio      []PortfolioEntry `gorm:"serializer:json" json:"portfolio"`
	Contact        FilmmakerContact `gorm:"embedded;embeddedPrefix:contact_" json:"contact"`
	IsActive       bool             `gorm:"not null;index" json:"isActive"`
}

type FilmmakerInput struct {
	Name           string           `json:"name" validate:"required,max=200"`
	Bio            string           `json:"bio" validate:"required"`
	Image          string           `json:"image"`
	Specialization string           `json:"specialization" validate:"required,oneof=Director Producer Cinematographer Editor Writer"`
	Experience     int              `json:"experience" validate:"gte=0,lte=100"`
	Portfolio      []PortfolioEntry `json:"portfolio" validate:"dive"`
	Contact        FilmmakerContact `json:"contact"`
	IsActive       *bool            `json:"isActive"`
}

func (in *FilmmakerInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Contact.Email = strings.TrimSpace(in.Contact.Email)
	in.Contact.Phone = strings.TrimSpace(in.Contact.Phone)
	if in.IsActive == nil {
		active := true
		in.IsActive = &active
	}
	if in.Portfolio == nil {
		in.Portfolio = []PortfolioEntry{}
	}
}

func (f *Filmmaker) input() FilmmakerInput {
	active := f.IsActive
	return FilmmakerInput{
		Name:           f.Name,
		Bio:            f.Bio,
		Image:          f.Image,
		Specialization: f.Specialization,
		Experience:     f.Experience,
		Portfolio:      f.Portfolio,
		Contact:        f.Contact,
		IsActive:       &active,
	}
}

func (f *Filmmaker) apply(in FilmmakerInput) {
	f.Name = in.Name
	f.Bio = in.Bio
	f.Image = in.Image
	f.Specialization = in.Specialization
	f.Experience = in.Experience
	f.Portfolio = in.Portfolio
	f.Contact = in.Contact
	f.IsActive = *in.IsActive
}

func (f *Filmmaker) columns() []string {
	return []string{"Name", "Bio", "Image", "Specialization", "Experience", "Portfolio", "IsActive", "contact_email", "contact_phone"}
}

type FilmmakerFilter struct {
	Specialization string
	IsActive       *bool
}

func (f FilmmakerFilter) scope(tx *gorm.DB) *gorm.DB {
	if f.Specialization != "" {
		tx = tx.Where("specialization = ?", f.Specialization)
	}
	if f.IsActive != nil {
		tx = tx.Where("is_active = ?", *f.IsActive)
	}
	return tx
}

func FilmmakerCreate(ctx context.Context, in FilmmakerInput) (Filmmaker, error) {
	return create[Filmmaker](ctx, in, "")
}

func FilmmakerList(ctx context.Context, filter FilmmakerFilter) ([]Filmmaker, error) {
	return find[Filmmaker](ctx, filter.scope, newestFirst)
}

func FilmmakerByID(ctx context.Context, id uint64) (Filmmaker, error) {
	return byID[Filmmaker](ctx, id)
}

func FilmmakerUpdate(ctx context.Context, id uint64, patch func(*FilmmakerInput) error) (Filmmaker, error) {
	return update[Filmmaker](ctx, id, patch, "")
}

func FilmmakerDelete(ctx context.Context, id uint64) error {
	return remove[Filmmaker](ctx, id)
}
