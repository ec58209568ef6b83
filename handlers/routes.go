package handlers

import (
	"github.com/Franklin-pro/simpo-planet-studio-bn/auth"
	"github.com/Franklin-pro/simpo-planet-studio-bn/storage"
	"github.com/Franklin-pro/simpo-planet-studio-bn/utils"

	"github.com/gin-gonic/gin"
)

// Routes registers every endpoint. Session middleware must already be installed on router.
func Routes(router *gin.Engine) {
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, individual end-points can override that
	authRouter := &auth.Router{Base: router}

	router.GET("/health", Health)

	// Admin accounts
	router.POST("/admin/login", AdminLogin)
	router.POST("/admin/logout", AdminLogout)
	authRouter.POST("/admin/create", AdminCreate, auth.Admin)
	authRouter.GET("/admin/users", AdminUsers)

	// Dashboard
	authRouter.GET("/dashboard/analytics", DashboardAnalytics, auth.Admin)
	authRouter.GET("/dashboard/monthly-data", DashboardMonthly, auth.Admin)

	// Artists
	authRouter.POST("/artists", ArtistCreate, auth.Admin)
	router.GET("/artists", ArtistList)
	router.GET("/artists/:id", ArtistGet)
	authRouter.PUT("/artists/:id", ArtistUpdate, auth.Admin)
	authRouter.DELETE("/artists/:id", ArtistDelete, auth.Admin)

	// Music
	authRouter.POST("/music", MusicCreate, auth.Admin)
	router.GET("/music", MusicList)
	router.GET("/music/:id", MusicGet)
	authRouter.PUT("/music/:id", MusicUpdate, auth.Admin)
	authRouter.DELETE("/music/:id", MusicDelete, auth.Admin)
	router.PUT("/music/:id/play", MusicPlay)

	// Gallery
	authRouter.POST("/gallery", GalleryCreate, auth.Admin)
	router.GET("/gallery", GalleryList)
	router.GET("/gallery/:id", GalleryGet)
	authRouter.PUT("/gallery/:id", GalleryUpdate, auth.Admin)
	authRouter.DELETE("/gallery/:id", GalleryDelete, auth.Admin)
	router.POST("/gallery/:id/like", GalleryLike)

	// Producers
	authRouter.POST("/producers", ProducerCreate, auth.Admin)
	router.GET("/producers", ProducerList)
	router.GET("/producers/:id", ProducerGet)
	router.GET("/producers/:id/summary", ProducerSummary)
	authRouter.PUT("/producers/:id", ProducerUpdate, auth.Admin)
	authRouter.DELETE("/producers/:id", ProducerDelete, auth.Admin)

	// Filmmakers
	authRouter.POST("/filmmakers", FilmmakerCreate, auth.Admin)
	router.GET("/filmmakers", FilmmakerList)
	router.GET("/filmmakers/:id", FilmmakerGet)
	authRouter.PUT("/filmmakers/:id", FilmmakerUpdate, auth.Admin)
	authRouter.DELETE("/filmmakers/:id", FilmmakerDelete, auth.Admin)

	// Contact messages
	router.POST("/contacts", ContactCreate)
	authRouter.GET("/contacts", ContactList, auth.Admin)
	authRouter.GET("/contacts/:id", ContactGet, auth.Admin)
	authRouter.PUT("/contacts/:id", ContactUpdate, auth.Admin)
	authRouter.DELETE("/contacts/:id", ContactDelete, auth.Admin)

	// Uploaded media
	if disk, ok := storage.Default.(*storage.DiskStorage); ok {
		media := router.Group("/media")
		media.GET("/*path", MediaServe(disk))
	}
}
