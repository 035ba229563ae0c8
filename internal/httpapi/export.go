package httpapi

import (
	"database/sql"
	"net/http"

	"github.com/DMH695/score/internal/db"
	"github.com/DMH695/score/internal/export"
	"github.com/gin-gonic/gin"
)

// ExportWorkbook отдаёт xlsx с текущим рейтингом и полным журналом операций.
func ExportWorkbook(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		students, err := db.ListStudents(ctx, database)
		if err != nil {
			internalErr(c, err)
			return
		}
		ranks, err := db.ListRanksDesc(ctx, database)
		if err != nil {
			internalErr(c, err)
			return
		}
		records, _, err := db.ListRecords(ctx, database, db.RecordFilter{Page: 1, PageSize: 100000})
		if err != nil {
			internalErr(c, err)
			return
		}

		wb, err := export.LeaderboardWorkbook(buildLeaderboard(students, ranks), records)
		if err != nil {
			internalErr(c, err)
			return
		}

		c.Header("Content-Disposition", `attachment; filename="`+export.FileName()+`"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Status(http.StatusOK)
		if err := wb.File.Write(c.Writer); err != nil {
			_ = c.Error(err)
		}
	}
}
