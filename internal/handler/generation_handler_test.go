package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/maestre-ai/maestre-api/internal/middleware"
	"github.com/maestre-ai/maestre-api/internal/models"
)

func TestRequestLanguage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		query  string
		header string
		want   string
	}{
		{name: "query wins", query: "es", header: "en-US,en;q=0.9", want: "es"},
		{name: "header primary tag", header: "es-ES,es;q=0.9,en;q=0.8", want: "es"},
		{name: "header without region", header: "fr", want: "fr"},
		{name: "defaults to english", want: "en"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			target := "/tools/artifacts/export"
			if tc.query != "" {
				target += "?lang=" + tc.query
			}
			c.Request = httptest.NewRequest(http.MethodPost, target, nil)
			if tc.header != "" {
				c.Request.Header.Set("Accept-Language", tc.header)
			}

			assert.Equal(t, tc.want, requestLanguage(c))
		})
	}
}

func TestClaimsFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	assert.Nil(t, claimsFromContext(c))

	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1"})
	claims := claimsFromContext(c)
	if assert.NotNil(t, claims) {
		assert.Equal(t, "user-1", claims.UserID)
	}
}
