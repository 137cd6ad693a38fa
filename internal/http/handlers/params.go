package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// postIDParam parses a positive integer path id.
func postIDParam(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}
