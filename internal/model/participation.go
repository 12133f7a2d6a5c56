package model

// User is the minimal user projection the console needs.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Venture is the company a participant may be attached to.
type Venture struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Participation associates a user (optionally with a venture) to a project.
type Participation struct {
	ID      string     `json:"id"`
	User    User       `json:"user"`
	Venture *Venture   `json:"venture"`
	Phases  []PhaseRef `json:"phases"`
}

// Key is the selection identity of a participation: userID + "-" + (ventureID or "none").
// The record id is deliberately not part of it.
func (p Participation) Key() string {
	venture := "none"
	if p.Venture != nil && p.Venture.ID != "" {
		venture = p.Venture.ID
	}
	return p.User.ID + "-" + venture
}

// InPhase reports whether the participation is assigned to phaseID.
func (p Participation) InPhase(phaseID string) bool {
	for _, ph := range p.Phases {
		if ph.ID == phaseID {
			return true
		}
	}
	return false
}

// MoveParticipationsDTO is the payload of the bulk move/remove endpoints.
type MoveParticipationsDTO struct {
	IDs     []string `json:"ids"`
	PhaseID string   `json:"phaseId"`
}
