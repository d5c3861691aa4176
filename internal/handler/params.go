package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eduhub/eduhub-backend/internal/config"
)

// parsePagination reads ?page= and ?per_page= with sane bounds.
func parsePagination(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(config.DefaultPageSize)))
	if perPage < 1 || perPage > 100 {
		perPage = config.DefaultPageSize
	}
	return page, perPage
}

// queryInt reads an optional integer query param, nil when absent.
func queryInt(c *gin.Context, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
