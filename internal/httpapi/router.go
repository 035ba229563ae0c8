package httpapi

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/DMH695/score/internal/config"
	"github.com/DMH695/score/internal/ctxutil"
	"github.com/DMH695/score/internal/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter собирает весь REST-контракт: публичное API, логин-эндпоинты и
// закрытую админскую группу за заголовком X-Admin-Password.
func NewRouter(cfg *config.Config, database *sql.DB, log *zap.SugaredLogger) *gin.Engine {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestMetrics(), requestLog(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigins},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", adminHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.GET("/healthz", Healthz(database))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	public := r.Group("/api")
	{
		public.GET("/students", GetStudents(database))
		public.GET("/students/search", SearchStudents(database))
		public.GET("/students/:id", GetStudent(database))
		public.GET("/ranks", GetRanks(database))
		public.GET("/templates", GetTemplates(database))
		public.GET("/records", GetRecords(database))
	}

	r.POST("/api/admin/login", CheckAdminPassword(cfg))
	r.POST("/api/admin/verify-reset", CheckResetPassword(cfg))

	admin := r.Group("/api/admin")
	admin.Use(AdminAuth(cfg))
	{
		admin.POST("/students", CreateStudent(database))
		admin.PUT("/students/:id", UpdateStudent(database))
		admin.DELETE("/students/:id", DeleteStudent(database))
		admin.POST("/students/batch", BatchCreateStudents(database))

		admin.POST("/score", ModifyScore(database))
		admin.POST("/score/batch", BatchModifyScore(database))
		admin.DELETE("/score/:id", UndoScoreRecord(database))

		admin.POST("/templates", CreateTemplate(database))
		admin.PUT("/templates/:id", UpdateTemplate(database))
		admin.DELETE("/templates/:id", DeleteTemplate(database))

		admin.POST("/ranks", CreateRank(database))
		admin.PUT("/ranks/:id", UpdateRank(database))
		admin.DELETE("/ranks/:id", DeleteRank(database))

		admin.POST("/reset", ResetAllScores(database))
		admin.GET("/statistics", GetStatistics(database))
		admin.GET("/export", ExportWorkbook(database))
	}

	return r
}

func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		if c.Writer.Status() >= 500 {
			metrics.HandlerErrors.Inc()
		}
	}
}

// requestLog кладёт имя операции в контекст запроса: оно уезжает в логи
// и в обёртку ошибок, уходящих в Sentry.
func requestLog(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		op := c.Request.Method + " " + route
		c.Request = c.Request.WithContext(ctxutil.WithOp(c.Request.Context(), op))

		start := time.Now()
		c.Next()
		log.Debugw("http",
			"op", op,
			"status", c.Writer.Status(),
			"dur", time.Since(start),
		)
	}
}
