package httpapi

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/DMH695/score/internal/config"
	"github.com/DMH695/score/internal/ctxutil"
	"github.com/DMH695/score/internal/metrics"
	"github.com/gin-gonic/gin"
)

// adminHeader — пароль администратора пересылается открытым текстом в этом
// заголовке при каждом запросе; токенов и сессий нет, проверка на каждый вызов.
const adminHeader = "X-Admin-Password"

func AdminAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(adminHeader) != cfg.AdminPassword {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "неверный пароль администратора"})
			return
		}
		c.Next()
	}
}

// CheckAdminPassword — проверка пароля при входе в админку.
func CheckAdminPassword(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "введите пароль"})
			return
		}
		if input.Password != cfg.AdminPassword {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "неверный пароль"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "вход выполнен"})
	}
}

// CheckResetPassword — второй, отдельный пароль, который открывает
// диалог полного сброса баллов.
func CheckResetPassword(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "введите пароль сброса"})
			return
		}
		if input.Password != cfg.ResetPassword {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "неверный пароль сброса"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "пароль подтверждён"})
	}
}

func Healthz(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := ctxutil.WithTimeout(c.Request.Context(), 800*time.Millisecond)
		defer cancel()
		t0 := time.Now()
		if err := database.PingContext(ctx); err != nil {
			c.String(http.StatusServiceUnavailable, "db not ok: %s", err)
			return
		}
		metrics.ObserveDBPing(time.Since(t0))
		c.String(http.StatusOK, "ok")
	}
}
