package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/DMH695/score/internal/models"
)

// Students — таблица лидеров с вычисленными местами и рангами.
func (c *Client) Students(ctx context.Context) ([]models.StudentWithRank, error) {
	var resp struct {
		Data []models.StudentWithRank `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, "/students", nil, nil, &resp)
	return resp.Data, err
}

func (c *Client) Student(ctx context.Context, id int64) (models.StudentDetail, error) {
	var resp struct {
		Data models.StudentDetail `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, "/students/"+strconv.FormatInt(id, 10), nil, nil, &resp)
	return resp.Data, err
}

func (c *Client) SearchStudents(ctx context.Context, keyword string) ([]models.Student, error) {
	var resp struct {
		Data []models.Student `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, "/students/search?keyword="+url.QueryEscape(keyword), nil, nil, &resp)
	return resp.Data, err
}

func (c *Client) Ranks(ctx context.Context) ([]models.Rank, error) {
	var resp struct {
		Data []models.Rank `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, "/ranks", nil, nil, &resp)
	return resp.Data, err
}

func (c *Client) Templates(ctx context.Context) ([]models.ScoreTemplate, error) {
	var resp struct {
		Data []models.ScoreTemplate `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, "/templates", nil, nil, &resp)
	return resp.Data, err
}

type RecordsQuery struct {
	Page      int
	PageSize  int
	StudentID int64
	Category  string
}

type RecordsPage struct {
	Data     []models.ScoreRecord `json:"data"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

func (c *Client) Records(ctx context.Context, q RecordsQuery) (RecordsPage, error) {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if q.StudentID > 0 {
		params.Set("student_id", strconv.FormatInt(q.StudentID, 10))
	}
	if q.Category != "" {
		params.Set("category", q.Category)
	}

	path := "/records"
	if enc := params.Encode(); enc != "" {
		path += "?" + enc
	}
	var resp RecordsPage
	err := c.do(ctx, http.MethodGet, path, nil, nil, &resp)
	return resp, err
}
