package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/DMH695/score/internal/models"
)

// Login проверяет пароль администратора. Токенов нет: тот же пароль
// прикладывается к каждому последующему админскому вызову.
func (c *Client) Login(ctx context.Context, password string) error {
	return c.do(ctx, http.MethodPost, "/admin/login", map[string]string{"password": password}, nil, nil)
}

// VerifyResetPassword — проверка отдельного пароля сброса; только она
// открывает дорогу к ResetAllScores.
func (c *Client) VerifyResetPassword(ctx context.Context, password string) error {
	return c.do(ctx, http.MethodPost, "/admin/verify-reset", map[string]string{"password": password}, nil, nil)
}

// ==== ученики ====

type StudentInput struct {
	StudentNo string `json:"student_no"`
	Name      string `json:"name"`
}

func (c *Client) CreateStudent(ctx context.Context, password string, in StudentInput) (models.Student, error) {
	var resp struct {
		Data models.Student `json:"data"`
	}
	err := c.doAdmin(ctx, http.MethodPost, "/admin/students", password, in, &resp)
	return resp.Data, err
}

func (c *Client) UpdateStudent(ctx context.Context, password string, id int64, in StudentInput) (models.Student, error) {
	var resp struct {
		Data models.Student `json:"data"`
	}
	err := c.doAdmin(ctx, http.MethodPut, "/admin/students/"+strconv.FormatInt(id, 10), password, in, &resp)
	return resp.Data, err
}

func (c *Client) DeleteStudent(ctx context.Context, password string, id int64) error {
	return c.doAdmin(ctx, http.MethodDelete, "/admin/students/"+strconv.FormatInt(id, 10), password, nil, nil)
}

func (c *Client) BatchCreateStudents(ctx context.Context, password string, students []StudentInput) ([]models.Student, error) {
	var resp struct {
		Data []models.Student `json:"data"`
	}
	err := c.doAdmin(ctx, http.MethodPost, "/admin/students/batch", password,
		map[string][]StudentInput{"students": students}, &resp)
	return resp.Data, err
}

// ==== баллы ====

type ScoreInput struct {
	StudentID int64  `json:"student_id"`
	Value     int    `json:"value"`
	Reason    string `json:"reason"`
	Category  string `json:"category"`
}

// ModifyScore применяет одну знакопеременную дельту к ученику и возвращает
// созданную запись вместе с новой суммой баллов.
func (c *Client) ModifyScore(ctx context.Context, password string, in ScoreInput) (models.ScoreRecord, int, error) {
	var resp struct {
		Data     models.ScoreRecord `json:"data"`
		NewScore int                `json:"new_score"`
	}
	err := c.doAdmin(ctx, http.MethodPost, "/admin/score", password, in, &resp)
	return resp.Data, resp.NewScore, err
}

type BatchScoreInput struct {
	StudentIDs []int64 `json:"student_ids"`
	Value      int     `json:"value"`
	Reason     string  `json:"reason"`
	Category   string  `json:"category"`
}

func (c *Client) BatchModifyScore(ctx context.Context, password string, in BatchScoreInput) error {
	return c.doAdmin(ctx, http.MethodPost, "/admin/score/batch", password, in, nil)
}

// UndoScoreRecord отменяет запись журнала; сервер возвращает ученику
// её значение и удаляет запись.
func (c *Client) UndoScoreRecord(ctx context.Context, password string, recordID int64) error {
	return c.doAdmin(ctx, http.MethodDelete, "/admin/score/"+strconv.FormatInt(recordID, 10), password, nil, nil)
}

// ==== шаблоны ====

type TemplateInput struct {
	Name     string `json:"name"`
	Value    int    `json:"value"`
	Category string `json:"category"`
}

func (c *Client) CreateTemplate(ctx context.Context, password string, in TemplateInput) (models.ScoreTemplate, error) {
	var resp struct {
		Data models.ScoreTemplate `json:"data"`
	}
	err := c.doAdmin(ctx, http.MethodPost, "/admin/templates", password, in, &resp)
	return resp.Data, err
}

func (c *Client) UpdateTemplate(ctx context.Context, password string, id int64, in TemplateInput) (models.ScoreTemplate, error) {
	var resp struct {
		Data models.ScoreTemplate `json:"data"`
	}
	err := c.doAdmin(ctx, http.MethodPut, "/admin/templates/"+strconv.FormatInt(id, 10), password, in, &resp)
	return resp.Data, err
}

func (c *Client) DeleteTemplate(ctx context.Context, password string, id int64) error {
	return c.doAdmin(ctx, http.MethodDelete, "/admin/templates/"+strconv.FormatInt(id, 10), password, nil, nil)
}

// ==== ранги ====

type RankInput struct {
	Name      string `json:"name"`
	MinScore  int    `json:"min_score"`
	Color     string `json:"color"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
}

func (c *Client) CreateRank(ctx context.Context, password string, in RankInput) (models.Rank, error) {
	var resp struct {
		Data models.Rank `json:"data"`
	}
	err := c.doAdmin(ctx, http.MethodPost, "/admin/ranks", password, in, &resp)
	return resp.Data, err
}

func (c *Client) UpdateRank(ctx context.Context, password string, id int64, in RankInput) (models.Rank, error) {
	var resp struct {
		Data models.Rank `json:"data"`
	}
	err := c.doAdmin(ctx, http.MethodPut, "/admin/ranks/"+strconv.FormatInt(id, 10), password, in, &resp)
	return resp.Data, err
}

func (c *Client) DeleteRank(ctx context.Context, password string, id int64) error {
	return c.doAdmin(ctx, http.MethodDelete, "/admin/ranks/"+strconv.FormatInt(id, 10), password, nil, nil)
}

// ==== система ====

// ResetAllScores — необратимый полный сброс. Вызывающий обязан сначала
// подтвердить пароль сброса через VerifyResetPassword.
func (c *Client) ResetAllScores(ctx context.Context, password string) error {
	return c.doAdmin(ctx, http.MethodPost, "/admin/reset", password, nil, nil)
}

func (c *Client) Statistics(ctx context.Context, password string) (models.Statistics, error) {
	var resp struct {
		Data models.Statistics `json:"data"`
	}
	err := c.doAdmin(ctx, http.MethodGet, "/admin/statistics", password, nil, &resp)
	return resp.Data, err
}

// ExportWorkbook скачивает xlsx с рейтингом и журналом.
func (c *Client) ExportWorkbook(ctx context.Context, password string) ([]byte, error) {
	return c.raw(ctx, "/admin/export", password)
}
