package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"collabcore/internal/model"
	"collabcore/internal/notice"
	"collabcore/internal/repository"
	repoMocks "collabcore/internal/repository/mocks"
	"collabcore/internal/storage"
	storeMocks "collabcore/internal/storage/mocks"
)

func decodeError(t *testing.T, r io.Reader) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(r).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))
	app.Get("/health-nodb", HealthCheck(nil))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "up", body["journal"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("journal disabled", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health-nodb", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "disabled", body["journal"])
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "collabcore_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	app := fiber.New()
	app.Get("/metrics", Metrics(reg))

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "collabcore_test_total 1")
}

func TestListNotices(t *testing.T) {
	feed := notice.NewFeed(10)
	feed.ShowSuccess("first")
	first, _ := feed.Last()
	feed.ShowError("second")

	app := fiber.New()
	app.Get("/notices", ListNotices(feed))

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/notices?after="+first.ID, nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Items []model.Notice `json:"items"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "second", body.Items[0].Text)
	assert.Equal(t, model.NoticeError, body.Items[0].Level)
}

func TestListJournal(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		setupMocks func(m *repoMocks.MockNoticeRepository)
		wantStatus int
		wantCode   string
		wantTotal  int
	}{
		{
			name: "success",
			url:  "/notices/journal?limit=5&offset=10",
			setupMocks: func(m *repoMocks.MockNoticeRepository) {
				m.On("List", mock.Anything, repository.PageQuery{Limit: 5, Offset: 10}).
					Return(&repository.PageResult[model.Notice]{Items: []model.Notice{{ID: "n1"}}, Total: 11}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantTotal:  11,
		},
		{
			name:       "invalid limit",
			url:        "/notices/journal?limit=abc",
			setupMocks: func(m *repoMocks.MockNoticeRepository) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_LIMIT",
		},
		{
			name:       "invalid offset",
			url:        "/notices/journal?offset=x",
			setupMocks: func(m *repoMocks.MockNoticeRepository) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_OFFSET",
		},
		{
			name: "repository error",
			url:  "/notices/journal",
			setupMocks: func(m *repoMocks.MockNoticeRepository) {
				m.On("List", mock.Anything, repository.PageQuery{Limit: 20, Offset: 0}).Return(nil, errors.New("db down")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(repoMocks.MockNoticeRepository)
			tt.setupMocks(repo)
			app := fiber.New()
			app.Get("/notices/journal", ListJournal(notice.NewJournal(repo, nil)))

			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, resp.Body).Error.Code)
			} else {
				var body struct {
					Total int `json:"total"`
				}
				json.NewDecoder(resp.Body).Decode(&body)
				assert.Equal(t, tt.wantTotal, body.Total)
			}
			repo.AssertExpectations(t)
		})
	}

	t.Run("disabled", func(t *testing.T) {
		app := fiber.New()
		app.Get("/notices/journal", ListJournal(nil))
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/notices/journal", nil))
		assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
		assert.Equal(t, "JOURNAL_DISABLED", decodeError(t, resp.Body).Error.Code)
	})
}

func TestGetJournalNotice(t *testing.T) {
	repo := new(repoMocks.MockNoticeRepository)
	app := fiber.New()
	app.Get("/notices/journal/:noticeId", GetJournalNotice(notice.NewJournal(repo, nil)))

	repo.On("FindByID", mock.Anything, "n1").Return(&model.Notice{ID: "n1", Text: "Phase created successfully"}, nil).Once()
	repo.On("FindByID", mock.Anything, "missing").Return(nil, sql.ErrNoRows).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/notices/journal/n1", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/notices/journal/missing", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	repo.AssertExpectations(t)
}

func multipartBody(t *testing.T, field, filename, content string, values map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range values {
		require.NoError(t, writer.WriteField(k, v))
	}
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		part.Write([]byte(content))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestStageFile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		st := new(storeMocks.MockStorage)
		app := fiber.New()
		app.Post("/staged", StageFile(st))

		st.On("Put", mock.Anything, mock.MatchedBy(storage.ValidKey), mock.Anything, mock.MatchedBy(func(o storage.PutObjectOptions) bool {
			return o.Size == 11 && o.Metadata["original-filename"] == "people.csv"
		})).Return(func(_ context.Context, key string, _ io.Reader, o storage.PutObjectOptions) storage.ObjectInfo {
			return storage.ObjectInfo{Key: key, Size: o.Size}
		}, nil).Once()

		body, ct := multipartBody(t, "file", "people.csv", "hello world", nil)
		req := httptest.NewRequest(http.MethodPost, "/staged", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var staged storage.Staged
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&staged))
		assert.True(t, strings.HasSuffix(staged.Key, ".csv"))
		assert.Equal(t, "people.csv", staged.Filename)
		st.AssertExpectations(t)
	})

	t.Run("missing file", func(t *testing.T) {
		app := fiber.New()
		app.Post("/staged", StageFile(new(storeMocks.MockStorage)))

		body, ct := multipartBody(t, "", "", "", map[string]string{"x": "y"})
		req := httptest.NewRequest(http.MethodPost, "/staged", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "FILE_REQUIRED", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("backend failure", func(t *testing.T) {
		st := new(storeMocks.MockStorage)
		app := fiber.New()
		app.Post("/staged", StageFile(st))
		st.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, errors.New("bucket gone")).Once()

		body, ct := multipartBody(t, "file", "a.pdf", "x", nil)
		req := httptest.NewRequest(http.MethodPost, "/staged", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, "STAGING_FAILED", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("disabled", func(t *testing.T) {
		app := fiber.New()
		app.Post("/staged", StageFile(nil))
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/staged", nil))
		assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
	})
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("hidden detail") })

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeError(t, resp.Body)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.NotContains(t, body.Error.Message, "hidden")

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp.Body).Error.Code)
}

func TestSwaggerDocs(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app, Deps{})

	t.Run("docs redirect to the swagger ui", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/docs", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
		assert.Equal(t, "/swagger/index.html", resp.Header.Get("Location"))
	})

	t.Run("every route is documented", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var doc struct {
			Info struct {
				Title string `json:"title"`
			} `json:"info"`
			Paths map[string]map[string]json.RawMessage `json:"paths"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
		assert.Equal(t, "Collaboration Console API", doc.Info.Title)

		for _, r := range app.GetRoutes(true) {
			if r.Method == http.MethodHead || strings.HasPrefix(r.Path, "/swagger") || r.Path == "/docs" {
				continue
			}
			path := r.Path
			for _, p := range r.Params {
				path = strings.Replace(path, ":"+p, "{"+p+"}", 1)
			}
			assert.Contains(t, doc.Paths[path], strings.ToLower(r.Method), "%s %s", r.Method, r.Path)
		}
	})
}
