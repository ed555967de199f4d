package response

import (
	"Naomi/internal/api/dto"
	"Naomi/internal/service"
	stdjson "encoding/json"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callError(t *testing.T, err error) dto.Response {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, err)

	var body dto.Response
	require.NoError(t, stdjson.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorStdJSONTypeError(t *testing.T) {
	err := &stdjson.UnmarshalTypeError{Value: "string", Type: reflect.TypeOf(0), Field: "kind"}

	body := callError(t, err)

	assert.Equal(t, BadRequest, body.Code)
	assert.Equal(t, "Json错误", body.Message)
}

func TestErrorGoccyJSONTypeError(t *testing.T) {
	err := &json.UnmarshalTypeError{Value: "string", Type: reflect.TypeOf(0), Field: "kind"}

	body := callError(t, err)

	assert.Equal(t, BadRequest, body.Code)
	assert.Equal(t, "Json错误", body.Message)
}

func TestErrorMappedBusinessError(t *testing.T) {
	body := callError(t, service.ErrPostNotFound)

	assert.Equal(t, NotFound, body.Code)
	assert.Equal(t, service.ErrPostNotFound.Error(), body.Message)
}

func TestErrorUnknownFallsBackTo500(t *testing.T) {
	body := callError(t, assert.AnError)

	assert.Equal(t, InternalServerError, body.Code)
}
