package utils

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

var ErrInvalidID = errors.New("Invalid ID")

// GetIDParam parses the named path parameter as a positive row id.
func GetIDParam(ctx *gin.Context, name string) (uint, error) {
	idStr := ctx.Param(name)

	if idStr == "" {
		return 0, ErrInvalidID
	}

	id, err := strconv.ParseUint(idStr, 10, 32)

	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}

	return uint(id), nil
}

// ParseIDList parses a comma separated list of ids such as "1,2,3".
func ParseIDList(value string) ([]uint, error) {
	var ids []uint

	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, ErrInvalidID
		}

		ids = append(ids, uint(id))
	}

	return ids, nil
}

// QueryFlag reports whether a query parameter is set to a truthy value.
func QueryFlag(ctx *gin.Context, name string) bool {
	value, err := strconv.ParseBool(ctx.Query(name))
	return err == nil && value
}
