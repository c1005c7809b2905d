package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TorqueWorks01/garage-scheduler/internal/cache"
	"github.com/TorqueWorks01/garage-scheduler/internal/httperr"
	"github.com/TorqueWorks01/garage-scheduler/internal/models"
)

const catalogCacheKey = "catalog:services"

type PublicHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPublicHandler(db *gorm.DB, cache *cache.Cache) *PublicHandler {
	return &PublicHandler{db: db, cache: cache}
}

// ListServices serves the public service catalog. The unfiltered listing
// is cached in redis and invalidated whenever an admin mutates a service.
func (h *PublicHandler) ListServices(c *gin.Context) {
	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))
	filtered := category != "" || query != ""

	ctx := c.Request.Context()

	if !filtered {
		if b, ok := h.cache.Get(ctx, catalogCacheKey); ok {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", b)
			return
		}
	}

	q := h.db.Where("active = true")

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not load the service catalog.")
		return
	}

	body := gin.H{
		"success":  true,
		"services": services,
	}

	if !filtered {
		if b, err := json.Marshal(body); err == nil {
			h.cache.Set(ctx, catalogCacheKey, b)
		}
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, body)
}
