package participation

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"collabcore/internal/engine"
	"collabcore/internal/model"
	noticeMocks "collabcore/internal/notice/mocks"
	"collabcore/internal/transport"
	trMocks "collabcore/internal/transport/mocks"
)

func part(id, user, venture string, phases ...string) model.Participation {
	p := model.Participation{ID: id, User: model.User{ID: user, Name: "User " + user, Email: user + "@example.com"}}
	if venture != "" {
		p.Venture = &model.Venture{ID: venture, Name: "Venture " + venture}
	}
	for _, ph := range phases {
		p.Phases = append(p.Phases, model.PhaseRef{ID: ph})
	}
	return p
}

func newEngine() (*Engine, *trMocks.MockTransport, *noticeMocks.RecordingNotifier) {
	tr := new(trMocks.MockTransport)
	n := &noticeMocks.RecordingNotifier{}
	return NewEngine(engine.Deps{Transport: tr, Notifier: n}, 0), tr, n
}

func load(t *testing.T, e *Engine, tr *trMocks.MockTransport, list []model.Participation) {
	t.Helper()
	tr.On("Get", mock.Anything, "projects/p1/participations", url.Values(nil)).Return(list, nil).Once()
	e.LoadParticipations(context.Background(), "p1")
	require.Len(t, e.All(), len(list))
}

func keys(list []model.Participation) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}

func TestEngine_LoadParticipations(t *testing.T) {
	t.Run("failure yields empty list and an error notice", func(t *testing.T) {
		e, tr, n := newEngine()
		load(t, e, tr, []model.Participation{part("1", "u1", ""), part("2", "u2", "")})

		tr.On("Get", mock.Anything, "projects/p1/participations", url.Values(nil)).Return(nil, errors.New("boom")).Once()
		e.LoadParticipations(context.Background(), "p1")

		assert.Empty(t, e.All())
		assert.Zero(t, e.Total())
		assert.False(t, e.Loading())
		assert.Equal(t, []string{msgLoadFailed}, n.Errors)
		assert.Empty(t, n.Successes)
	})

	t.Run("deduplicates on composite key", func(t *testing.T) {
		e, tr, _ := newEngine()
		tr.On("Get", mock.Anything, "projects/p1/participations", url.Values(nil)).
			Return([]model.Participation{part("1", "u1", "v1"), part("2", "u1", "v1"), part("3", "u1", "")}, nil).Once()

		e.LoadParticipations(context.Background(), "p1")
		assert.Equal(t, []string{"1", "3"}, keys(e.All()))
	})
}

func TestViews(t *testing.T) {
	list := []model.Participation{
		part("1", "alice", "acme", "ph1"),
		part("2", "bob", "", "ph1", "ph2"),
		part("3", "carol", "globex"),
	}
	list[0].User.Name = "Alice Martin"
	list[2].Venture.Name = "Globex Corp"

	assert.Equal(t, []string{"1", "2", "3"}, keys(ByPhase(list, "")))
	assert.Equal(t, []string{"1", "2"}, keys(ByPhase(list, "ph1")))
	assert.Empty(t, ByPhase(list, "missing"))

	assert.Equal(t, []string{"1"}, keys(Search(list, "  MARTIN ")))
	assert.Equal(t, []string{"2"}, keys(Search(list, "bob@example")))
	assert.Equal(t, []string{"3"}, keys(Search(list, "globex corp")))
	assert.Len(t, Search(list, "   "), 3)

	assert.Equal(t, []string{"2"}, keys(Apply(list, Filter{PhaseID: "ph2", Query: "bob"})))
	assert.Empty(t, Apply(list, Filter{PhaseID: "ph2", Query: "alice"}))
}

func TestPaginate(t *testing.T) {
	list := make([]int, 45)
	for i := range list {
		list[i] = i
	}

	tests := []struct {
		name     string
		page     int
		wantLen  int
		wantHead int
	}{
		{"first page", 1, 20, 0},
		{"second page", 2, 20, 20},
		{"partial last page", 3, 5, 40},
		{"overflow", 4, 0, -1},
		{"zero page", 0, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(list, tt.page, 20)
			assert.Len(t, got, tt.wantLen)
			if tt.wantHead >= 0 {
				assert.Equal(t, tt.wantHead, got[0])
			}
		})
	}
}

func TestCountsAndGroups(t *testing.T) {
	phases := []model.Phase{{ID: "ph1"}, {ID: "ph2"}, {ID: "ph3"}}
	list := []model.Participation{
		part("1", "a", "", "ph1"),
		part("2", "b", "", "ph1", "ph2"),
		part("3", "c", "", "gone"),
		part("4", "d", "", "ph1", "ph1"),
	}

	assert.Equal(t, map[string]int{"ph1": 3, "ph2": 1, "ph3": 0}, CountsByPhase(list, phases))

	g := GroupByPhase(list, phases)
	require.Len(t, g.Groups, 3)
	assert.Equal(t, []string{"1", "2", "4"}, keys(g.Groups[0].Participations))
	assert.Equal(t, []string{"2"}, keys(g.Groups[1].Participations))
	assert.Empty(t, g.Groups[2].Participations)
	assert.Equal(t, []string{"3"}, keys(g.Unassigned))
}

func TestSelection_KeyIdentity(t *testing.T) {
	a := part("rec-1", "u1", "v1", "ph1")
	b := part("rec-2", "u1", "v1")
	b.User.Name = "Renamed"

	s := NewSelection()
	assert.True(t, s.Toggle(a.Key()))
	assert.True(t, s.IsSelected(b.Key()))
	assert.False(t, s.IsSelected(part("rec-3", "u1", "").Key()))

	assert.False(t, s.Toggle(b.Key()))
	assert.Zero(t, s.Count())
}

func TestSelection_SelectAllFilteredSpansPages(t *testing.T) {
	e, tr, _ := newEngine()
	list := make([]model.Participation, 0, 50)
	for i := 0; i < 50; i++ {
		p := part(fmt.Sprintf("r%d", i), fmt.Sprintf("u%d", i), "")
		if i%2 == 0 {
			p.User.Name = fmt.Sprintf("Match %d", i)
		}
		list = append(list, p)
	}
	load(t, e, tr, list)

	f := Filter{Query: "match"}
	filtered := e.View(f)
	require.Len(t, filtered, 25)
	require.Len(t, e.Page(f, 1), 20)

	s := NewSelection()
	s.SelectAllFiltered(filtered)
	assert.Equal(t, 25, s.Count())
	assert.True(t, s.AllSelected(filtered))
	assert.Len(t, s.ParticipationIDs(e.All()), 25)

	s.SelectAllFiltered(filtered)
	assert.Zero(t, s.Count(), "selecting an already fully selected list deselects it")
	assert.False(t, s.AllSelected(nil))
}

func TestSelection_KeysAndClear(t *testing.T) {
	s := NewSelection()
	s.Toggle("b-none")
	s.Toggle("a-v1")
	assert.Equal(t, []string{"a-v1", "b-none"}, s.Keys())
	s.Clear()
	assert.Zero(t, s.Count())
}

func TestEngine_MoveToPhase(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		ids        []string
		phaseID    string
		setupMocks func(tr *trMocks.MockTransport)
		wantCalled bool
		wantOK     []string
		wantErr    []string
	}{
		{
			name:    "success does not patch local membership",
			ids:     []string{"1"},
			phaseID: "phX",
			setupMocks: func(tr *trMocks.MockTransport) {
				tr.On("Post", mock.Anything, "phases/participants/move",
					model.MoveParticipationsDTO{IDs: []string{"1"}, PhaseID: "phX"}).Return(nil, nil).Once()
			},
			wantCalled: true,
			wantOK:     []string{msgMoved},
		},
		{
			name:    "failure",
			ids:     []string{"1"},
			phaseID: "phX",
			setupMocks: func(tr *trMocks.MockTransport) {
				tr.On("Post", mock.Anything, "phases/participants/move", mock.Anything).Return(nil, errors.New("boom")).Once()
			},
			wantErr: []string{msgMoveFailed},
		},
		{
			name:       "empty ids skip the call",
			ids:        nil,
			phaseID:    "phX",
			setupMocks: func(tr *trMocks.MockTransport) {},
			wantErr:    []string{msgNeedsSelection},
		},
		{
			name:       "empty phase skips the call",
			ids:        []string{"1"},
			setupMocks: func(tr *trMocks.MockTransport) {},
			wantErr:    []string{msgNeedsSelection},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, tr, n := newEngine()
			load(t, e, tr, []model.Participation{part("1", "u1", "", "ph1")})
			tt.setupMocks(tr)

			called := false
			e.MoveToPhase(ctx, tt.ids, tt.phaseID, func() { called = true })

			assert.Equal(t, tt.wantCalled, called)
			assert.Equal(t, tt.wantOK, n.Successes)
			assert.Equal(t, tt.wantErr, n.Errors)
			assert.Equal(t, []model.PhaseRef{{ID: "ph1"}}, e.All()[0].Phases)
			assert.False(t, e.Saving())
			tr.AssertExpectations(t)
		})
	}
}

func TestEngine_RemoveFromPhase(t *testing.T) {
	e, tr, n := newEngine()
	load(t, e, tr, []model.Participation{part("1", "u1", "", "ph1")})

	tr.On("Post", mock.Anything, "phases/participants/remove",
		model.MoveParticipationsDTO{IDs: []string{"1"}, PhaseID: "ph1"}).Return(nil, nil).Once()

	called := false
	e.RemoveFromPhase(context.Background(), []string{"1"}, "ph1", func() { called = true })

	assert.True(t, called)
	assert.Equal(t, []string{msgRemoved}, n.Successes)
	assert.True(t, e.All()[0].InPhase("ph1"))
}

func TestEngine_ImportParticipantsCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads under field file", func(t *testing.T) {
		e, tr, n := newEngine()
		r := strings.NewReader("email\nada@example.com\n")
		file := transport.File{Name: "Participants.CSV", Reader: r}

		tr.On("PostMultipart", mock.Anything, "projects/p1/participants/csv", mock.MatchedBy(func(f transport.Multipart) bool {
			return f.Field == "file" && len(f.Files) == 1 && f.Files[0].Name == "Participants.CSV" && f.Files[0].ContentType == "text/csv"
		})).Return(nil, nil).Once()

		called := false
		e.ImportParticipantsCSV(ctx, "p1", file, func() { called = true })

		assert.True(t, called)
		assert.Equal(t, []string{msgImported}, n.Successes)
		assert.False(t, e.ImportingCSV())
		tr.AssertExpectations(t)
	})

	t.Run("refuses other extensions", func(t *testing.T) {
		e, tr, n := newEngine()
		e.ImportParticipantsCSV(ctx, "p1", transport.File{Name: "people.xlsx", Reader: strings.NewReader("x")}, nil)

		tr.AssertNotCalled(t, "PostMultipart", mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, []string{msgNotCSV}, n.Errors)
	})

	t.Run("failure leaves state untouched", func(t *testing.T) {
		e, tr, n := newEngine()
		load(t, e, tr, []model.Participation{part("1", "u1", "")})
		tr.On("PostMultipart", mock.Anything, "projects/p1/participants/csv", mock.Anything).
			Return(nil, &transport.StatusError{Code: 422, Message: "bad header"}).Once()

		called := false
		e.ImportParticipantsCSV(ctx, "p1", transport.File{Name: "a.csv", Reader: strings.NewReader("x")}, func() { called = true })

		assert.False(t, called)
		assert.Len(t, e.All(), 1)
		assert.Equal(t, []string{msgImportFailed}, n.Errors)
	})
}
