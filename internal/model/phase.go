package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Phase is a time-boxed sub-stage of a project.
// The owning project is not an attribute; it is supplied as a request parameter.
type Phase struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Slug         string        `json:"slug,omitempty"`
	StartedAt    time.Time     `json:"started_at"`
	EndedAt      time.Time     `json:"ended_at"`
	Mentors      []MentorRef   `json:"mentors,omitempty"`
	Deliverables []Deliverable `json:"deliverables,omitempty"`
}

// UnmarshalJSON accepts started_at and ended_at as RFC 3339 timestamps or as plain dates.
func (p *Phase) UnmarshalJSON(b []byte) error {
	type plain Phase
	aux := struct {
		*plain
		StartedAt flexTime `json:"started_at"`
		EndedAt   flexTime `json:"ended_at"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	p.StartedAt, p.EndedAt = time.Time(aux.StartedAt), time.Time(aux.EndedAt)
	return nil
}

// Ref returns the lightweight reference used by participations and notifications.
func (p Phase) Ref() PhaseRef {
	return PhaseRef{ID: p.ID, Name: p.Name}
}

// PhaseRef points at a phase without carrying its full payload.
type PhaseRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Deliverable is an expected output of a phase.
type Deliverable struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// MentorRef is a mentor assigned to a phase.
// The API returns either a bare id string or a user object, both decode here.
type MentorRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

func (m *MentorRef) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		*m = MentorRef{ID: id}
		return nil
	}
	type plain MentorRef
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*m = MentorRef(p)
	return nil
}

// MentorProfile is an eligible mentor assignee returned by the mentors listing.
type MentorProfile struct {
	ID         string   `json:"id"`
	User       User     `json:"user"`
	Expertises []string `json:"expertises,omitempty"`
}

// PhaseDTO is the create/update payload for a phase.
// ID is ignored on create and required on update.
type PhaseDTO struct {
	ID           string           `json:"id,omitempty"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	StartedAt    time.Time        `json:"started_at"`
	EndedAt      time.Time        `json:"ended_at"`
	Mentors      []string         `json:"mentors,omitempty"`
	Deliverables []DeliverableDTO `json:"deliverables,omitempty"`
}

func (d *PhaseDTO) UnmarshalJSON(b []byte) error {
	type plain PhaseDTO
	aux := struct {
		*plain
		StartedAt flexTime `json:"started_at"`
		EndedAt   flexTime `json:"ended_at"`
	}{plain: (*plain)(d)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	d.StartedAt, d.EndedAt = time.Time(aux.StartedAt), time.Time(aux.EndedAt)
	return nil
}

type DeliverableDTO struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// DateLayout is the date-only form the API uses for phase bounds.
const DateLayout = "2006-01-02"

// flexTime decodes a JSON string holding either an RFC 3339 timestamp or a DateLayout date.
// Plain dates are midnight UTC. null and "" decode to the zero time.
type flexTime time.Time

func (f *flexTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = flexTime{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	t, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*f = flexTime(t)
	return nil
}

// ParseDate parses an RFC 3339 timestamp or a DateLayout date.
func ParseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: want %s or RFC 3339", raw, DateLayout)
	}
	return t, nil
}
