package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chorequest/internal/engine"
)

// tolerant to the stored type (int / int64 / float64 / string)
func getInt64FromCtx(c *gin.Context, key string) (int64, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case float64:
		return int64(t), true
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func getUserID(c *gin.Context) int64 {
	id, _ := getInt64FromCtx(c, "user_id")
	return id
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// respondEngineError maps domain sentinels onto HTTP statuses. Anything
// unrecognized is a 500.
func respondEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, engine.ErrAlreadyCompleted):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task already completed"})
	case errors.Is(err, engine.ErrNotOwner):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not your task"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
