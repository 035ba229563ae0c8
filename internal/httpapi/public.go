package httpapi

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/DMH695/score/internal/ctxutil"
	"github.com/DMH695/score/internal/db"
	"github.com/DMH695/score/internal/models"
	"github.com/DMH695/score/internal/observability"
	"github.com/gin-gonic/gin"
)

func internalErr(c *gin.Context, err error) {
	if op, ok := ctxutil.Op(c.Request.Context()); ok {
		err = fmt.Errorf("%s: %w", op, err)
	}
	observability.CaptureErr(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
}

// buildLeaderboard навешивает на отсортированный список учеников места 1..N
// и поля текущего/следующего ранга. ranksDesc — по убыванию min_score.
func buildLeaderboard(students []models.Student, ranksDesc []models.Rank) []models.StudentWithRank {
	out := make([]models.StudentWithRank, len(students))
	for i, s := range students {
		out[i] = models.StudentWithRank{Student: s, Ranking: i + 1}
		if r := models.RankFor(ranksDesc, s.Score); r != nil {
			out[i].RankName = r.Name
			out[i].RankColor = r.Color
			out[i].RankIcon = r.Icon
		}
		if next, gap := models.NextRankFor(ranksDesc, s.Score); next != nil {
			out[i].NextRank = next.Name
			out[i].NextRankScore = gap
		}
	}
	return out
}

// GetStudents — таблица лидеров: все ученики с местами и рангами.
func GetStudents(database *sql.DB) gin.HandlerFunc {
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
		c.JSON(http.StatusOK, gin.H{"data": buildLeaderboard(students, ranks)})
	}
}

// GetStudent — детальная страница: ученик, последние записи, место и ранги.
func GetStudent(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный id"})
			return
		}

		student, err := db.GetStudent(ctx, database, id)
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ученик не найден"})
			return
		}
		if err != nil {
			internalErr(c, err)
			return
		}

		records, err := db.RecordsByStudent(ctx, database, id, 50)
		if err != nil {
			internalErr(c, err)
			return
		}
		higher, err := db.CountHigherScores(ctx, database, student.Score)
		if err != nil {
			internalErr(c, err)
			return
		}
		ranks, err := db.ListRanksDesc(ctx, database)
		if err != nil {
			internalErr(c, err)
			return
		}

		detail := models.StudentDetail{
			Student: student,
			Records: records,
			Ranking: int(higher) + 1,
		}
		if r := models.RankFor(ranks, student.Score); r != nil {
			detail.RankName = r.Name
			detail.RankColor = r.Color
			detail.RankIcon = r.Icon
		}
		if next, gap := models.NextRankFor(ranks, student.Score); next != nil {
			detail.NextRank = next.Name
			detail.NextRankScore = gap
		}
		c.JSON(http.StatusOK, gin.H{"data": detail})
	}
}

func SearchStudents(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		keyword := c.Query("keyword")
		if keyword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "введите поисковый запрос"})
			return
		}
		students, err := db.SearchStudents(c.Request.Context(), database, keyword)
		if err != nil {
			internalErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": students})
	}
}

func GetRanks(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ranks, err := db.ListRanks(c.Request.Context(), database)
		if err != nil {
			internalErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": ranks})
	}
}

func GetTemplates(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		templates, err := db.ListTemplates(c.Request.Context(), database)
		if err != nil {
			internalErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": templates})
	}
}

func GetRecords(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
		studentID, _ := strconv.ParseInt(c.Query("student_id"), 10, 64)

		records, total, err := db.ListRecords(c.Request.Context(), database, db.RecordFilter{
			Page:      page,
			PageSize:  pageSize,
			StudentID: studentID,
			Category:  c.Query("category"),
		})
		if err != nil {
			internalErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"data":      records,
			"total":     total,
			"page":      page,
			"page_size": pageSize,
		})
	}
}
