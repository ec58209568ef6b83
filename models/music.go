package models

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/Franklin-pro/simpo-planet-studio-bn/db"
	"github.com/Franklin-pro/simpo-planet-studio-bn/utils"

	"gorm.io/gorm"
)

const (
	MusicSortNewest  = "newest"
	MusicSortOldest  = "oldest"
	MusicSortPopular = "popular"
	MusicSortTitle   = "title"

	musicDefaultLimit = 10
	musicMaxLimit     = 100
)

// Music is a track. Artist is the display name of the performer, not a reference.
type Music struct {
	Model
	Title         string     `gorm:"type:varchar(300);not null" json:"title"`
	Artist        string     `gorm:"type:varchar(200);index;not null" json:"artist"`
	Album         string     `gorm:"type:varchar(300)" json:"album"`
	Genre         string     `gorm:"type:varchar(100);index" json:"genre"`
	ReleaseDate   *time.Time `json:"releaseDate"`
	Duration      int        `gorm:"not null" json:"duration"` // seconds
	CoverImageURL string     `gorm:"type:varchar(1024)" json:"coverImageUrl"`
	AudioURL      string     `gorm:"type:varchar(1024);not null" json:"audioUrl"`
	Lyrics        string     `gorm:"type:text" json:"lyrics,omitempty"`
	Tags          []string   `gorm:"serializer:json" json:"tags"`
	PlayCount     int64      `gorm:"not null;default:0;index" json:"playCount"`
	LastPlayed    *time.Time `json:"lastPlayed"`
	IsActive      bool       `gorm:"not null;default:true;index" json:"isActive"`

	// Computed on read
	FormattedDuration string  `gorm:"-" json:"formattedDuration"`
	Popularity        float64 `gorm:"-" json:"popularity"`
}

type MusicInput struct {
	Title         string     `json:"title" validate:"required,max=300"`
	Artist        string     `json:"artist" validate:"required,max=200"`
	Album         string     `json:"album" validate:"max=300"`
	Genre         string     `json:"genre" validate:"max=100"`
	ReleaseDate   *time.Time `json:"releaseDate"`
	Duration      int        `json:"duration" validate:"required,gt=0"`
	CoverImageURL string     `json:"coverImageUrl"`
	AudioURL      string     `json:"audioUrl" validate:"required"`
	Lyrics        string     `json:"lyrics"`
	Tags          []string   `json:"tags"`
}

func (in *MusicInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Artist = strings.TrimSpace(in.Artist)
	in.Album = strings.TrimSpace(in.Album)
	in.Genre = strings.TrimSpace(in.Genre)
	in.Tags = utils.NormalizeSet(in.Tags)
}

func (m *Music) input() MusicInput {
	return MusicInput{
		Title:         m.Title,
		Artist:        m.Artist,
		Album:         m.Album,
		Genre:         m.Genre,
		ReleaseDate:   m.ReleaseDate,
		Duration:      m.Duration,
		CoverImageURL: m.CoverImageURL,
		AudioURL:      m.AudioURL,
		Lyrics:        m.Lyrics,
		Tags:          m.Tags,
	}
}

func (m *Music) apply(in MusicInput) {
	m.Title = in.Title
	m.Artist = in.Artist
	m.Album = in.Album
	m.Genre = in.Genre
	m.ReleaseDate = in.ReleaseDate
	m.Duration = in.Duration
	m.CoverImageURL = in.CoverImageURL
	m.AudioURL = in.AudioURL
	m.Lyrics = in.Lyrics
	m.Tags = in.Tags
	if m.ID == 0 {
		m.IsActive = true
	}
}

func (m *Music) columns() []string {
	return []string{"Title", "Artist", "Album", "Genre", "ReleaseDate", "Duration", "CoverImageURL", "AudioURL", "Lyrics", "Tags"}
}

// AfterFind fills in the computed fields
func (m *Music) AfterFind(tx *gorm.DB) error {
	m.compute(time.Now())
	return nil
}

func (m *Music) compute(now time.Time) {
	m.FormattedDuration = utils.FormatDuration(m.Duration)
	if m.Tags == nil {
		m.Tags = []string{}
	}
	// plays per day since the track was added, the first day counts as a full day
	days := math.Max(1, now.Sub(m.CreatedAt).Hours()/24)
	m.Popularity = math.Round(float64(m.PlayCount)/days*100) / 100
}

// ActiveMusic is the predicate every read of music goes through
func ActiveMusic(tx *gorm.DB) *gorm.DB {
	return tx.Where("is_active = ?", true)
}

type MusicQuery struct {
	Genre  string
	Search string
	Sort   string
	Limit  int
	Page   int
}

func (q *MusicQuery) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = musicDefaultLimit
	}
	if q.Limit > musicMaxLimit {
		q.Limit = musicMaxLimit
	}
}

type MusicPage struct {
	Docs    []Music `json:"docs"`
	Total   int64   `json:"total"`
	Page    int     `json:"page"`
	Pages   int     `json:"pages"`
	Limit   int     `json:"limit"`
	HasNext bool    `json:"hasNext"`
	HasPrev bool    `json:"hasPrev"`
}

// escapeLike makes user input literal inside a LIKE pattern. '!' is the escape character,
// a backslash would need different quoting on MySQL.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(strings.ToLower(s))
}

// contains is a case-insensitive substring match on column
func contains(column, value string) (string, string) {
	return "LOWER(" + column + ") LIKE ? ESCAPE '!'", "%" + escapeLike(value) + "%"
}

func (q MusicQuery) filter(tx *gorm.DB) *gorm.DB {
	tx = ActiveMusic(tx)
	if genre := strings.TrimSpace(q.Genre); genre != "" {
		clause, arg := contains("genre", genre)
		tx = tx.Where(clause, arg)
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		title, arg := contains("title", search)
		artist, _ := contains("artist", search)
		album, _ := contains("album", search)
		tx = tx.Where(title+" OR "+artist+" OR "+album, arg, arg, arg)
	}
	return tx
}

func (q MusicQuery) order(tx *gorm.DB) *gorm.DB {
	switch q.Sort {
	case MusicSortOldest:
		return tx.Order("created_at ASC").Order("id ASC")
	case MusicSortPopular:
		return tx.Order("play_count DESC").Order("id ASC")
	case MusicSortTitle:
		return tx.Order("title ASC").Order("id ASC")
	}
	return newestFirst(tx)
}

// MusicList returns one page of active tracks matching the query
func MusicList(ctx context.Context, q MusicQuery) (MusicPage, error) {
	q.normalize()
	page := MusicPage{Docs: []Music{}, Page: q.Page, Limit: q.Limit}
	ctx, cancel := db.Context(ctx)
	defer cancel()
	tx := db.Instance.WithContext(ctx).Model(&Music{}).Scopes(q.filter)
	if err := tx.Count(&page.Total).Error; err != nil {
		return page, err
	}
	err := db.Instance.WithContext(ctx).Scopes(q.filter, q.order).
		Limit(q.Limit).Offset((q.Page - 1) * q.Limit).
		Find(&page.Docs).Error
	if err != nil {
		return page, err
	}
	page.Pages = int((page.Total + int64(q.Limit) - 1) / int64(q.Limit))
	page.HasNext = q.Page < page.Pages
	page.HasPrev = q.Page > 1
	return page, nil
}

func MusicCreate(ctx context.Context, in MusicInput) (Music, error) {
	music, err := create[Music](ctx, in, "")
	if err == nil {
		music.compute(time.Now())
	}
	return music, err
}

func MusicByID(ctx context.Context, id uint64) (Music, error) {
	return byID[Music](ctx, id, ActiveMusic)
}

func MusicUpdate(ctx context.Context, id uint64, patch func(*MusicInput) error) (Music, error) {
	music, err := update[Music](ctx, id, patch, "", ActiveMusic)
	if err == nil {
		music.compute(time.Now())
	}
	return music, err
}

// MusicDelete marks the track inactive, the row is kept
func MusicDelete(ctx context.Context, id uint64) error {
	ctx, cancel := db.Context(ctx)
	defer cancel()
	result := db.Instance.WithContext(ctx).Model(&Music{}).Scopes(ActiveMusic).Where("id = ?", id).
		UpdateColumns(map[string]any{"is_active": false, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MusicPlay counts one play and stamps lastPlayed
func MusicPlay(ctx context.Context, id uint64) (Music, error) {
	err := increment[Music](ctx, id, "play_count", map[string]any{"last_played": time.Now()}, ActiveMusic)
	if err != nil {
		return Music{}, err
	}
	return MusicByID(ctx, id)
}
