package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DMH695/score/internal/ctxutil"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Имя операции должно быть доступно обработчикам через контекст запроса.
func TestRequestLogInjectsOp(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(requestLog(zap.NewNop().Sugar()))

	var op string
	var ok bool
	r.GET("/students/:id", func(c *gin.Context) {
		op, ok = ctxutil.Op(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/students/7", nil))

	if !ok || op != "GET /students/:id" {
		t.Errorf("имя операции %q (%v), ожидали GET /students/:id", op, ok)
	}
}
