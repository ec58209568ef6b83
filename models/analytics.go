package models

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/Franklin-pro/simpo-planet-studio-bn/db"

	"gorm.io/gorm"
)

const (
	topItems    = 5
	recentDays  = 7
	monthLayout = "2006-01"
)

type OverviewCounts struct {
	TotalUsers        int64 `json:"totalUsers"`
	TotalAdmins       int64 `json:"totalAdmins"`
	TotalRegularUsers int64 `json:"totalRegularUsers"`
	TotalGalleryItems int64 `json:"totalGalleryItems"`
	TotalArtists      int64 `json:"totalArtists"`
	TotalMusic        int64 `json:"totalMusic"`
	TotalProducers    int64 `json:"totalProducers"`
	TotalFilmmakers   int64 `json:"totalFilmmakers"`
	TotalContacts     int64 `json:"totalContacts"`
}

type Engagement struct {
	TotalLikes        int64     `json:"totalLikes"`
	AverageLikes      int64     `json:"averageLikes"`
	TopGalleryItems   []Gallery `json:"topGalleryItems"`
	TotalMusicPlays   int64     `json:"totalMusicPlays"`
	AverageMusicPlays int64     `json:"averageMusicPlays"`
	TopMusicTracks    []Music   `json:"topMusicTracks"`
}

type RecentActivity struct {
	NewUsersLast7Days   int64 `json:"newUsersLast7Days"`
	NewGalleryLast7Days int64 `json:"newGalleryLast7Days"`
}

type RoleCount struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

type Summary struct {
	TotalContent    int64 `json:"totalContent"`
	TotalEngagement int64 `json:"totalEngagement"`
	ActiveUsers     int64 `json:"activeUsers"`
}

type OverviewReport struct {
	Overview         OverviewCounts `json:"overview"`
	Engagement       Engagement     `json:"engagement"`
	RecentActivity   RecentActivity `json:"recentActivity"`
	UserDistribution []RoleCount    `json:"userDistribution"`
	Summary          Summary        `json:"summary"`
}

type MonthlyPoint struct {
	Month   string `json:"month"`
	Artists int64  `json:"artists"`
	Musics  int64  `json:"musics"`
	Listens int64  `json:"listens"`
}

// counter collects the first error so a report can be built as a flat sequence of queries
type counter struct {
	tx  *gorm.DB
	err error
}

func (c *counter) count(model any, scopes ...Scope) (n int64) {
	if c.err == nil {
		c.err = c.tx.Model(model).Scopes(scopes...).Count(&n).Error
	}
	return n
}

func (c *counter) sum(model any, column string, scopes ...Scope) (n int64) {
	if c.err == nil {
		c.err = c.tx.Model(model).Scopes(scopes...).Select("COALESCE(SUM(" + column + "), 0)").Scan(&n).Error
	}
	return n
}

func (c *counter) scan(dest any, scopes ...Scope) {
	if c.err == nil {
		c.err = c.tx.Scopes(scopes...).Find(dest).Error
	}
}

func average(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return int64(math.Round(float64(total) / float64(count)))
}

func since(t time.Time) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("created_at >= ?", t)
	}
}

func roles(names ...string) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("role IN ?", names)
	}
}

func top(column string) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Order(column + " DESC").Order("id ASC").Limit(topItems)
	}
}

// Overview builds the dashboard report. The queries don't share a transaction, small skew between counts is accepted.
func Overview(ctx context.Context) (report OverviewReport, err error) {
	return overview(ctx, time.Now())
}

func overview(ctx context.Context, now time.Time) (report OverviewReport, err error) {
	ctx, cancel := db.Context(ctx)
	defer cancel()
	c := &counter{tx: db.Instance.WithContext(ctx)}

	o := &report.Overview
	o.TotalUsers = c.count(&User{})
	o.TotalAdmins = c.count(&User{}, roles(RoleAdmin, RoleSuperAdmin))
	o.TotalRegularUsers = c.count(&User{}, roles(RoleUser))
	o.TotalGalleryItems = c.count(&Gallery{})
	o.TotalArtists = c.count(&Artist{})
	o.TotalMusic = c.count(&Music{}, ActiveMusic)
	o.TotalProducers = c.count(&Producer{})
	o.TotalFilmmakers = c.count(&Filmmaker{})
	o.TotalContacts = c.count(&Contact{})

	e := &report.Engagement
	e.TopGalleryItems = []Gallery{}
	e.TopMusicTracks = []Music{}
	e.TotalLikes = c.sum(&Gallery{}, "like_count")
	e.AverageLikes = average(e.TotalLikes, o.TotalGalleryItems)
	c.scan(&e.TopGalleryItems, top("like_count"))
	e.TotalMusicPlays = c.sum(&Music{}, "play_count", ActiveMusic)
	e.AverageMusicPlays = average(e.TotalMusicPlays, o.TotalMusic)
	c.scan(&e.TopMusicTracks, ActiveMusic, top("play_count"))
	for i := range e.TopGalleryItems {
		e.TopGalleryItems[i].LikedBy = []string{}
	}

	weekAgo := now.Add(-recentDays * 24 * time.Hour)
	report.RecentActivity.NewUsersLast7Days = c.count(&User{}, since(weekAgo))
	report.RecentActivity.NewGalleryLast7Days = c.count(&Gallery{}, since(weekAgo))

	report.UserDistribution = []RoleCount{}
	if c.err == nil {
		c.err = c.tx.Model(&User{}).Select("role, COUNT(*) AS count").Group("role").Order("role").Scan(&report.UserDistribution).Error
	}

	report.Summary = Summary{
		TotalContent:    o.TotalArtists + o.TotalMusic + o.TotalGalleryItems + o.TotalProducers + o.TotalFilmmakers,
		TotalEngagement: e.TotalLikes + e.TotalMusicPlays,
		ActiveUsers:     o.TotalUsers,
	}
	return report, c.err
}

// trendStart is the first instant of the month months-1 before now, in UTC
func trendStart(now time.Time, months int) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month()-time.Month(months-1), 1, 0, 0, 0, 0, time.UTC)
}

// MonthlyTrend counts artists and active tracks created per calendar month, oldest month first
func MonthlyTrend(ctx context.Context, months int) ([]MonthlyPoint, error) {
	return monthlyTrend(ctx, months, time.Now())
}

func monthlyTrend(ctx context.Context, months int, now time.Time) ([]MonthlyPoint, error) {
	if months < 1 {
		months = 1
	}
	start := trendStart(now, months)
	ctx, cancel := db.Context(ctx)
	defer cancel()
	tx := db.Instance.WithContext(ctx)

	// SQLite compares timestamps as text, so the query window is widened by a day and the exact bound applied below
	window := since(start.Add(-24 * time.Hour))
	var artists []time.Time
	if err := tx.Model(&Artist{}).Scopes(window).Pluck("created_at", &artists).Error; err != nil {
		return nil, err
	}
	var tracks []struct {
		CreatedAt time.Time
		PlayCount int64
	}
	if err := tx.Model(&Music{}).Scopes(ActiveMusic, window).Select("created_at, play_count").Scan(&tracks).Error; err != nil {
		return nil, err
	}

	buckets := map[string]*MonthlyPoint{}
	bucket := func(t time.Time) *MonthlyPoint {
		key := t.UTC().Format(monthLayout)
		if buckets[key] == nil {
			buckets[key] = &MonthlyPoint{Month: key}
		}
		return buckets[key]
	}
	for _, created := range artists {
		if !created.Before(start) {
			bucket(created).Artists++
		}
	}
	for _, track := range tracks {
		if !track.CreatedAt.Before(start) {
			p := bucket(track.CreatedAt)
			p.Musics++
			p.Listens += track.PlayCount
		}
	}

	result := make([]MonthlyPoint, 0, len(buckets))
	for _, p := range buckets {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	if len(result) > months {
		result = result[len(result)-months:]
	}
	return result, nil
}
