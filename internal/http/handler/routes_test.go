package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"collabcore/internal/engine"
	"collabcore/internal/model"
	"collabcore/internal/notice"
	storeMocks "collabcore/internal/storage/mocks"
	"collabcore/internal/transport"
	trMocks "collabcore/internal/transport/mocks"
	"collabcore/internal/workspace"
)

type testServer struct {
	app  *fiber.App
	tr   *trMocks.MockTransport
	st   *storeMocks.MockStorage
	feed *notice.Feed
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := &testServer{
		tr:   new(trMocks.MockTransport),
		st:   new(storeMocks.MockStorage),
		feed: notice.NewFeed(20),
	}
	sessions := workspace.NewSessions(engine.Deps{Transport: s.tr, Notifier: s.feed}, 2)
	t.Cleanup(sessions.CloseAll)

	s.app = fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	RegisterRoutes(s.app, Deps{Sessions: sessions, Feed: s.feed, Staging: s.st})
	return s
}

func member(id, user string, phases ...string) model.Participation {
	p := model.Participation{ID: id, User: model.User{ID: user, Name: "User " + user, Email: user + "@example.com"}}
	for _, ph := range phases {
		p.Phases = append(p.Phases, model.PhaseRef{ID: ph})
	}
	return p
}

// enter opens project p1 with two phases, three participations and one draft notification.
func (s *testServer) enter(t *testing.T) {
	t.Helper()
	s.tr.On("Get", mock.Anything, "phases/project/p1", url.Values(nil)).Return([]model.Phase{
		{ID: "ph2", Name: "Two", StartedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "ph1", Name: "One", StartedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}, nil).Once()
	s.tr.On("Get", mock.Anything, "mentors", url.Values(nil)).Return([]model.MentorProfile{{ID: "m1"}}, nil).Once()
	s.tr.On("Get", mock.Anything, "projects/p1/participations", url.Values(nil)).
		Return([]model.Participation{member("r1", "u1", "ph1"), member("r2", "u2", "ph1"), member("r3", "u3", "ph2")}, nil).Once()
	s.tr.On("Get", mock.Anything, "notifications/project/p1", url.Values{}).
		Return(transport.Page[model.Notification]{Items: []model.Notification{{ID: "n1", Title: "Hello", Status: model.StatusDraft}}, Total: 1}, nil).Once()

	resp := s.do(t, http.MethodPost, "/projects/p1/workspace", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func (s *testServer) do(t *testing.T, method, target string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (s *testServer) lastNotice(t *testing.T) model.Notice {
	t.Helper()
	n, ok := s.feed.Last()
	require.True(t, ok, "expected a notice")
	return n
}

func decodeJSON[T any](t *testing.T, r io.Reader) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(r).Decode(&v))
	return v
}

func TestWorkspaceLifecycle(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/projects/p1/workspace", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "WORKSPACE_NOT_OPEN", decodeError(t, resp.Body).Error.Code)

	s.enter(t)

	resp = s.do(t, http.MethodGet, "/projects/p1/workspace", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sum := decodeJSON[workspace.Summary](t, resp.Body)
	assert.Equal(t, "p1", sum.ProjectID)
	assert.Equal(t, 3, sum.Participations)
	assert.Equal(t, map[string]int{"ph1": 2, "ph2": 1}, sum.CountsByPhase)
	assert.Equal(t, "ph1", sum.Phases[0].ID, "phases come sorted by start date")

	resp = s.do(t, http.MethodDelete, "/projects/p1/workspace", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = s.do(t, http.MethodDelete, "/projects/p1/workspace", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = s.do(t, http.MethodGet, "/projects/p1/phases", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	s.tr.AssertExpectations(t)
}

func TestPhaseRoutes(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		method     string
		target     string
		body       any
		setupMocks func(tr *trMocks.MockTransport)
		wantStatus int
		wantCode   string
		wantNotice string
	}{
		{
			name:   "create",
			method: http.MethodPost,
			target: "/projects/p1/phases",
			body:   model.PhaseDTO{ID: "ignored", Name: "Three", StartedAt: start, EndedAt: start.AddDate(0, 1, 0)},
			setupMocks: func(tr *trMocks.MockTransport) {
				tr.On("Post", mock.Anything, "phases/p1", mock.MatchedBy(func(d model.PhaseDTO) bool {
					return d.ID == "" && d.Name == "Three"
				})).Return(model.Phase{ID: "ph3", Name: "Three", StartedAt: start}, nil).Once()
			},
			wantStatus: http.StatusCreated,
			wantNotice: "Phase created successfully",
		},
		{
			name:       "create with inverted dates",
			method:     http.MethodPost,
			target:     "/projects/p1/phases",
			body:       model.PhaseDTO{Name: "Bad", StartedAt: start, EndedAt: start.AddDate(0, 0, -1)},
			setupMocks: func(tr *trMocks.MockTransport) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "OPERATION_FAILED",
		},
		{
			name:       "update with mismatching id",
			method:     http.MethodPatch,
			target:     "/projects/p1/phases/ph1",
			body:       model.PhaseDTO{ID: "ph2", Name: "One"},
			setupMocks: func(tr *trMocks.MockTransport) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "ID_MISMATCH",
		},
		{
			name:   "update",
			method: http.MethodPatch,
			target: "/projects/p1/phases/ph1",
			body:   model.PhaseDTO{Name: "Renamed", StartedAt: start, EndedAt: start},
			setupMocks: func(tr *trMocks.MockTransport) {
				tr.On("Patch", mock.Anything, "phases/ph1", mock.MatchedBy(func(d model.PhaseDTO) bool {
					return d.ID == "ph1" && d.Name == "Renamed"
				})).Return(model.Phase{ID: "ph1", Name: "Renamed"}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "delete failure",
			method: http.MethodDelete,
			target: "/projects/p1/phases/ph2",
			setupMocks: func(tr *trMocks.MockTransport) {
				tr.On("Delete", mock.Anything, "phases/ph2").Return(errors.New("in use")).Once()
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "OPERATION_FAILED",
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			target: "/projects/p1/phases/ph2",
			setupMocks: func(tr *trMocks.MockTransport) {
				tr.On("Delete", mock.Anything, "phases/ph2").Return(nil).Once()
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "select unknown phase",
			method:     http.MethodPut,
			target:     "/projects/p1/phases/current",
			body:       selectRequest{ID: "nope"},
			setupMocks: func(tr *trMocks.MockTransport) {},
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.enter(t)
			tt.setupMocks(s.tr)

			resp := s.do(t, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, resp.Body).Error.Code)
			}
			if tt.wantNotice != "" {
				assert.Equal(t, tt.wantNotice, s.lastNotice(t).Text)
			}
			s.tr.AssertExpectations(t)
		})
	}
}

func TestListPhasesAndMentors(t *testing.T) {
	s := newTestServer(t)
	s.enter(t)

	resp := s.do(t, http.MethodPut, "/projects/p1/phases/current", selectRequest{ID: "ph2"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/projects/p1/phases", nil)
	body := decodeJSON[struct {
		Items   []model.Phase `json:"items"`
		Current *model.Phase  `json:"current"`
	}](t, resp.Body)
	require.Len(t, body.Items, 2)
	assert.Equal(t, []string{"ph1", "ph2"}, []string{body.Items[0].ID, body.Items[1].ID})
	require.NotNil(t, body.Current)
	assert.Equal(t, "ph2", body.Current.ID)

	resp = s.do(t, http.MethodGet, "/projects/p1/mentors", nil)
	mentors := decodeJSON[struct {
		Items []model.MentorProfile `json:"items"`
	}](t, resp.Body)
	assert.Len(t, mentors.Items, 1)
}

type participationPage struct {
	Items       []model.Participation `json:"items"`
	Selected    []bool                `json:"selected"`
	Total       int                   `json:"total"`
	Page        int                   `json:"page"`
	PageSize    int                   `json:"page_size"`
	AllSelected bool                  `json:"all_selected"`
}

func TestParticipationRoutes(t *testing.T) {
	t.Run("filters and pages", func(t *testing.T) {
		s := newTestServer(t)
		s.enter(t)

		resp := s.do(t, http.MethodGet, "/projects/p1/participations?phaseId=ph1&page=1", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		page := decodeJSON[participationPage](t, resp.Body)
		assert.Equal(t, 2, page.Total)
		assert.Equal(t, 2, page.PageSize)
		assert.Len(t, page.Items, 2)

		resp = s.do(t, http.MethodGet, "/projects/p1/participations?q=U3", nil)
		page = decodeJSON[participationPage](t, resp.Body)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "r3", page.Items[0].ID)

		resp = s.do(t, http.MethodGet, "/projects/p1/participations?page=0", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("select all then move", func(t *testing.T) {
		s := newTestServer(t)
		s.enter(t)

		s.do(t, http.MethodGet, "/projects/p1/participations?phaseId=ph1", nil)
		resp := s.do(t, http.MethodPost, "/projects/p1/selection/all", nil)
		assert.Equal(t, 2, decodeJSON[map[string]int](t, resp.Body)["count"])

		s.tr.On("Post", mock.Anything, "phases/participants/move",
			model.MoveParticipationsDTO{IDs: []string{"r1", "r2"}, PhaseID: "ph2"}).Return(nil, nil).Once()
		s.tr.On("Get", mock.Anything, "projects/p1/participations", url.Values(nil)).
			Return([]model.Participation{member("r1", "u1", "ph2"), member("r2", "u2", "ph2"), member("r3", "u3", "ph2")}, nil).Once()

		resp = s.do(t, http.MethodPost, "/projects/p1/participations/move", phaseTarget{PhaseID: "ph2"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		sum := decodeJSON[workspace.Summary](t, resp.Body)
		assert.Zero(t, sum.Selected)
		assert.Equal(t, 3, sum.CountsByPhase["ph2"])
		assert.Equal(t, "Participants moved successfully", s.lastNotice(t).Text)
		s.tr.AssertExpectations(t)
	})

	t.Run("remove without selection", func(t *testing.T) {
		s := newTestServer(t)
		s.enter(t)

		resp := s.do(t, http.MethodPost, "/projects/p1/participations/remove", phaseTarget{PhaseID: "ph1"})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, model.NoticeError, s.lastNotice(t).Level)
		s.tr.AssertNotCalled(t, "Post", mock.Anything, "phases/participants/remove", mock.Anything)
	})

	t.Run("toggle and clear selection", func(t *testing.T) {
		s := newTestServer(t)
		s.enter(t)

		resp := s.do(t, http.MethodPost, "/projects/p1/selection/toggle", toggleRequest{Key: "u1-none"})
		assert.Equal(t, true, decodeJSON[map[string]any](t, resp.Body)["selected"])

		resp = s.do(t, http.MethodGet, "/projects/p1/selection", nil)
		sel := decodeJSON[struct {
			Keys []string `json:"keys"`
		}](t, resp.Body)
		assert.Equal(t, []string{"u1-none"}, sel.Keys)

		resp = s.do(t, http.MethodDelete, "/projects/p1/selection", nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp = s.do(t, http.MethodPost, "/projects/p1/selection/toggle", toggleRequest{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("grouped and counts", func(t *testing.T) {
		s := newTestServer(t)
		s.enter(t)

		resp := s.do(t, http.MethodGet, "/projects/p1/participations/counts", nil)
		assert.Equal(t, map[string]int{"ph1": 2, "ph2": 1}, decodeJSON[map[string]int](t, resp.Body))

		resp = s.do(t, http.MethodGet, "/projects/p1/participations/grouped", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestImportParticipants(t *testing.T) {
	reload := func(tr *trMocks.MockTransport) {
		tr.On("Get", mock.Anything, "projects/p1/participations", url.Values(nil)).
			Return([]model.Participation{member("r1", "u1"), member("r2", "u2"), member("r3", "u3"), member("r4", "u4")}, nil).Once()
	}

	t.Run("multipart upload", func(t *testing.T) {
		s := newTestServer(t)
		s.enter(t)
		s.tr.On("PostMultipart", mock.Anything, "projects/p1/participants/csv", mock.MatchedBy(func(f transport.Multipart) bool {
			return f.Field == "file" && len(f.Files) == 1 && f.Files[0].Name == "people.csv"
		})).Return(nil, nil).Once()
		reload(s.tr)

		body, ct := multipartBody(t, "file", "people.csv", "email\na@b.c\n", nil)
		req := httptest.NewRequest(http.MethodPost, "/projects/p1/participations/import", body)
		req.Header.Set("Content-Type", ct)
		resp, err := s.app.Test(req, -1)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 4, decodeJSON[map[string]int](t, resp.Body)["participations"])
		s.tr.AssertExpectations(t)
	})

	t.Run("staged key is forwarded then discarded", func(t *testing.T) {
		s := newTestServer(t)
		s.enter(t)
		s.st.OnStaged("staged/abc.csv", "people.csv", "text/csv", "email\n")
		s.st.On("Delete", mock.Anything, "staged/abc.csv").Return(nil).Once()
		s.tr.On("PostMultipart", mock.Anything, "projects/p1/participants/csv", mock.Anything).Return(nil, nil).Once()
		reload(s.tr)

		resp := s.do(t, http.MethodPost, "/projects/p1/participations/import", stagedKey{Key: "staged/abc.csv"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		s.st.AssertExpectations(t)
		s.tr.AssertExpectations(t)
	})

	t.Run("invalid staged key", func(t *testing.T) {
		s := newTestServer(t)
		s.enter(t)

		resp := s.do(t, http.MethodPost, "/projects/p1/participations/import", stagedKey{Key: "../etc/passwd"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_KEY", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("not a csv", func(t *testing.T) {
		s := newTestServer(t)
		s.enter(t)

		body, ct := multipartBody(t, "file", "people.xlsx", "x", nil)
		req := httptest.NewRequest(http.MethodPost, "/projects/p1/participations/import", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := s.app.Test(req, -1)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "Please choose a .csv file", s.lastNotice(t).Text)
	})
}

func TestNotificationRoutes(t *testing.T) {
	t.Run("list by status", func(t *testing.T) {
		s := newTestServer(t)
		s.enter(t)
		s.tr.On("Get", mock.Anything, "notifications/project/p1", url.Values{"status": {"sent"}, "page": {"2"}}).
			Return(transport.Page[model.Notification]{Items: []model.Notification{{ID: "n7", Status: model.StatusSent}}, Total: 11}, nil).Once()

		resp := s.do(t, http.MethodGet, "/projects/p1/notifications?status=sent&page=2", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeJSON[struct {
			Items []model.Notification `json:"items"`
			Total int                  `json:"total"`
		}](t, resp.Body)
		assert.Equal(t, 11, body.Total)
		assert.Equal(t, "n7", body.Items[0].ID)

		resp = s.do(t, http.MethodGet, "/projects/p1/notifications?status=archived", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_STATUS", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("create and send with attachments", func(t *testing.T) {
		s := newTestServer(t)
		s.enter(t)
		dto := model.NotifyParticipantsDTO{Title: "Kickoff", Body: "See you", PhaseID: "ph1"}
		s.tr.On("Post", mock.Anything, "projects/p1/notification", dto).
			Return(model.Notification{ID: "n2", Title: "Kickoff", Status: model.StatusDraft}, nil).Once()
		s.tr.On("PostMultipart", mock.Anything, "notifications/n2/attachments", mock.MatchedBy(func(f transport.Multipart) bool {
			return f.Field == "attachments" && len(f.Files) == 1 && f.Files[0].Name == "agenda.pdf"
		})).Return(model.Notification{ID: "n2", Title: "Kickoff", Attachments: []model.Attachment{{ID: "a1", Filename: "agenda.pdf"}}}, nil).Once()
		s.tr.On("Post", mock.Anything, "projects/notify/n2", struct{}{}).Return(nil, nil).Once()

		body, ct := multipartBody(t, "attachments", "agenda.pdf", "%PDF", map[string]string{
			"title": "Kickoff", "body": "See you", "phase_id": "ph1", "send": "true",
		})
		req := httptest.NewRequest(http.MethodPost, "/projects/p1/notifications", body)
		req.Header.Set("Content-Type", ct)
		resp, err := s.app.Test(req, -1)
		require.NoError(t, err)

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		n := decodeJSON[model.Notification](t, resp.Body)
		assert.Equal(t, "n2", n.ID)
		assert.Equal(t, model.StatusSent, n.Status)
		s.tr.AssertExpectations(t)
	})

	t.Run("send failure reports the error text", func(t *testing.T) {
		s := newTestServer(t)
		s.enter(t)
		s.tr.On("Post", mock.Anything, "projects/notify/n1", struct{}{}).Return(nil, errors.New("smtp down")).Once()

		resp := s.do(t, http.MethodPost, "/projects/p1/notifications/n1/send", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "An error occurred while sending the notification", decodeError(t, resp.Body).Error.Message)
	})

	t.Run("update, activate and delete", func(t *testing.T) {
		s := newTestServer(t)
		s.enter(t)
		s.tr.On("Patch", mock.Anything, "notifications/n1", model.NotifyParticipantsDTO{Title: "Hello again"}).
			Return(model.Notification{ID: "n1", Title: "Hello again", Status: model.StatusDraft}, nil).Once()
		s.tr.On("Delete", mock.Anything, "notifications/n1").Return(nil).Once()

		resp := s.do(t, http.MethodPatch, "/projects/p1/notifications/n1", notificationRequest{Title: "Hello again"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Hello again", decodeJSON[model.Notification](t, resp.Body).Title)

		resp = s.do(t, http.MethodPut, "/projects/p1/notifications/active", selectRequest{ID: "n1"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp = s.do(t, http.MethodPut, "/projects/p1/notifications/active", selectRequest{ID: "missing"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = s.do(t, http.MethodDelete, "/projects/p1/notifications/n1", nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = s.do(t, http.MethodGet, "/projects/p1/notifications/active", nil)
		assert.Nil(t, decodeJSON[map[string]any](t, resp.Body)["active"])
		s.tr.AssertExpectations(t)
	})

	t.Run("attachments of a sent notification stay", func(t *testing.T) {
		s := newTestServer(t)
		s.enter(t)
		s.tr.On("Post", mock.Anything, "projects/notify/n1", struct{}{}).
			Return(model.Notification{ID: "n1", Status: model.StatusSent}, nil).Once()

		resp := s.do(t, http.MethodPost, "/projects/p1/notifications/n1/send", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = s.do(t, http.MethodDelete, "/projects/p1/notifications/n1/attachments", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "Attachments cannot be changed once the notification is sent", s.lastNotice(t).Text)
		s.tr.AssertNotCalled(t, "Delete", mock.Anything, "notifications/n1/attachments")
	})

	t.Run("reload keeps the selection", func(t *testing.T) {
		s := newTestServer(t)
		s.enter(t)
		s.tr.On("Get", mock.Anything, "notifications/project/p1", url.Values{}).
			Return(transport.Page[model.Notification]{Items: []model.Notification{{ID: "n1"}, {ID: "n3"}}, Total: 2}, nil).Once()

		resp := s.do(t, http.MethodPost, "/projects/p1/notifications/reload?select=n3", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeJSON[struct {
			Active *model.Notification `json:"active"`
		}](t, resp.Body)
		require.NotNil(t, body.Active)
		assert.Equal(t, "n3", body.Active.ID)
	})
}
