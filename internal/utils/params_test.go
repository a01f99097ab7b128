package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramContext(name, value string) *gin.Context {
	gin.SetMode(gin.TestMode)

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Params = gin.Params{{Key: name, Value: value}}

	return ctx
}

func TestIDParam(t *testing.T) {
	id, err := IDParam(paramContext("project_id", "42"), "project_id")
	assert.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestIDParamRejectsMissing(t *testing.T) {
	_, err := IDParam(paramContext("project_id", "42"), "board_id")
	assert.Error(t, err)
}

func TestIDParamRejectsGarbage(t *testing.T) {
	for _, value := range []string{"abc", "-1", "0", "1.5"} {
		_, err := IDParam(paramContext("card_id", value), "card_id")
		assert.Error(t, err, "value %q", value)
	}
}
