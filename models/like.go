package models

import "time"

// Like is one like of a gallery item. The same liker may like an item many times.
type Like struct {
	ID        uint64    `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	GalleryID uint64    `gorm:"not null;index"`
	Gallery   Gallery   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Liker     string    `gorm:"type:varchar(200);not null"`
}
