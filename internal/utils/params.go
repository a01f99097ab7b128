package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// IDParam parses a positive integer route parameter such as "project_id".
func IDParam(ctx *gin.Context, name string) (uint, error) {
	value := ctx.Param(name)

	if value == "" {
		return 0, errors.New(name + " not found")
	}

	id, err := strconv.ParseUint(value, 10, 32)

	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}

	return uint(id), nil
}

func GetProjectID(ctx *gin.Context) (uint, error) {
	return IDParam(ctx, "project_id")
}

func GetBoardID(ctx *gin.Context) (uint, error) {
	return IDParam(ctx, "board_id")
}

func GetListID(ctx *gin.Context) (uint, error) {
	return IDParam(ctx, "list_id")
}

func GetCardID(ctx *gin.Context) (uint, error) {
	return IDParam(ctx, "card_id")
}
