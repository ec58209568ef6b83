package handlers

import (
	"net/http"

	"github.com/Franklin-pro/simpo-planet-studio-bn/models"

	"github.com/gin-gonic/gin"
)

var trendRanges = map[string]int{
	"6months":  6,
	"12months": 12,
}

func DashboardAnalytics(c *gin.Context, user *models.User) {
	report, err := models.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err, "analytics")
		return
	}
	respondOK(c, http.StatusOK, "analytics retrieved", report)
}

func DashboardMonthly(c *gin.Context, user *models.User) {
	months, ok := trendRanges[c.DefaultQuery("range", "6months")]
	if !ok {
		badRequest(c, "range must be 6months or 12months", nil)
		return
	}
	trend, err := models.MonthlyTrend(c.Request.Context(), months)
	if err != nil {
		respondError(c, err, "monthly data")
		return
	}
	respondOK(c, http.StatusOK, "monthly data retrieved", trend)
}
