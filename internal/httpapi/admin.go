package httpapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/DMH695/score/internal/db"
	"github.com/DMH695/score/internal/metrics"
	"github.com/DMH695/score/internal/models"
	"github.com/gin-gonic/gin"
)

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный id"})
		return 0, false
	}
	return id, true
}

// ==== ученики ====

func CreateStudent(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			StudentNo string `json:"student_no" binding:"required"`
			Name      string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		student, err := db.CreateStudent(c.Request.Context(), database, input.StudentNo, input.Name)
		if err != nil {
			internalErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": student})
	}
}

func UpdateStudent(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var input struct {
			StudentNo string `json:"student_no"`
			Name      string `json:"name"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		student, err := db.UpdateStudent(c.Request.Context(), database, id, input.StudentNo, input.Name)
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ученик не найден"})
			return
		}
		if err != nil {
			internalErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": student})
	}
}

func DeleteStudent(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		err := db.DeleteStudent(c.Request.Context(), database, id)
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ученик не найден"})
			return
		}
		if err != nil {
			internalErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "ученик удалён"})
	}
}

func BatchCreateStudents(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Students []models.Student `json:"students" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		students, err := db.BatchCreateStudents(c.Request.Context(), database, input.Students)
		if err != nil {
			internalErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": students})
	}
}

// ==== баллы ====

func ModifyScore(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			StudentID int64  `json:"student_id" binding:"required"`
			Value     int    `json:"value" binding:"required"`
			Reason    string `json:"reason"`
			Category  string `json:"category"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		record, newScore, err := db.ModifyScore(c.Request.Context(), database,
			input.StudentID, input.Value, input.Reason, input.Category)
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ученик не найден"})
			return
		}
		if err != nil {
			internalErr(c, err)
			return
		}
		metrics.ScoreMutations.WithLabelValues("modify").Inc()
		c.JSON(http.StatusOK, gin.H{"data": record, "new_score": newScore})
	}
}

func BatchModifyScore(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			StudentIDs []int64 `json:"student_ids" binding:"required"`
			Value      int     `json:"value" binding:"required"`
			Reason     string  `json:"reason"`
			Category   string  `json:"category"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		err := db.BatchModifyScore(c.Request.Context(), database,
			input.StudentIDs, input.Value, input.Reason, input.Category)
		if err != nil {
			internalErr(c, err)
			return
		}
		metrics.ScoreMutations.WithLabelValues("batch").Inc()
		c.JSON(http.StatusOK, gin.H{"message": "баллы начислены"})
	}
}

func UndoScoreRecord(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		err := db.UndoRecord(c.Request.Context(), database, id)
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "запись не найдена"})
			return
		}
		if err != nil {
			internalErr(c, err)
			return
		}
		metrics.ScoreMutations.WithLabelValues("undo").Inc()
		c.JSON(http.StatusOK, gin.H{"message": "операция отменена"})
	}
}

// ==== шаблоны ====

func CreateTemplate(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var t models.ScoreTemplate
		if err := c.ShouldBindJSON(&t); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		t, err := db.CreateTemplate(c.Request.Context(), database, t)
		if err != nil {
			internalErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": t})
	}
}

func UpdateTemplate(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var t models.ScoreTemplate
		if err := c.ShouldBindJSON(&t); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		t.ID = id
		t, err := db.UpdateTemplate(c.Request.Context(), database, t)
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "шаблон не найден"})
			return
		}
		if err != nil {
			internalErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": t})
	}
}

func DeleteTemplate(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		err := db.DeleteTemplate(c.Request.Context(), database, id)
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "шаблон не найден"})
			return
		}
		if err != nil {
			internalErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "шаблон удалён"})
	}
}

// ==== ранги ====

func CreateRank(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r models.Rank
		if err := c.ShouldBindJSON(&r); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		r, err := db.CreateRank(c.Request.Context(), database, r)
		if err != nil {
			internalErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": r})
	}
}

func UpdateRank(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var r models.Rank
		if err := c.ShouldBindJSON(&r); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		r.ID = id
		r, err := db.UpdateRank(c.Request.Context(), database, r)
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ранг не найден"})
			return
		}
		if err != nil {
			internalErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": r})
	}
}

func DeleteRank(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		err := db.DeleteRank(c.Request.Context(), database, id)
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ранг не найден"})
			return
		}
		if err != nil {
			internalErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "ранг удалён"})
	}
}

// ==== система ====

// ResetAllScores — необратимый сброс: нули всем, журнал подчистую.
// Клиент обязан прежде подтвердить отдельный пароль через /verify-reset.
func ResetAllScores(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.ResetAllScores(c.Request.Context(), database); err != nil {
			internalErr(c, err)
			return
		}
		metrics.ScoreMutations.WithLabelValues("reset").Inc()
		c.JSON(http.StatusOK, gin.H{"message": "баллы сброшены"})
	}
}

func GetStatistics(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := db.GetStatistics(c.Request.Context(), database)
		if err != nil {
			internalErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": st})
	}
}
