package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TorqueWorks01/garage-scheduler/internal/timezone"
)

// parseID reads a numeric path parameter; 0 means invalid.
func parseID(c *gin.Context, name string) uint {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

// parseInstant accepts RFC3339 or shop-local "2006-01-02 15:04".
func parseInstant(value string, tz string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	return time.ParseInLocation(
		"2006-01-02 15:04",
		value,
		timezone.Location(tz),
	)
}

func parseDate(value string, tz string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		value,
		timezone.Location(tz),
	)
}
