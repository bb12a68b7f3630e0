package domain

import (
	"github.com/HadiRehman/NLSA-USA/internal/optional"
)

// PlayerPatch is the upsert payload. Statistic keys arrive flattened next to
// the profile fields, which is how the admin console submits them.
type PlayerPatch struct {
	ID            string                 `json:"Id"`
	SportCategory optional.Value[string] `json:"SportCategory"`
	PlayerName    optional.Value[string] `json:"PlayerName"`
	EventName     optional.Value[string] `json:"EventName"`
	EventDate     optional.Value[string] `json:"EventDate"`
	DateOfBirth   optional.Value[string] `json:"DateOfBirth"`
	CityLocation  optional.Value[string] `json:"CityLocation"`
	Email         optional.Value[string] `json:"Email"`
	JerseyNumber  optional.Value[string] `json:"JerseyNumber"`
	DocumentFile  optional.Value[string] `json:"DocumentFile"`
	VideoFile     optional.Value[string] `json:"VideoFile"`
	Status        optional.Value[Status] `json:"Status"`
	StatsPatch
}

// eventDate folds the registration form's DateOfBirth key into EventDate.
func (p PlayerPatch) eventDate() optional.Value[string] {
	if p.EventDate.Present() {
		return p.EventDate
	}
	return p.DateOfBirth
}

// ProfileDelta holds the top-level fields to write; unset entries are left untouched.
type ProfileDelta struct {
	SportCategory optional.Value[string]
	PlayerName    optional.Value[string]
	EventName     optional.Value[string]
	EventDate     optional.Value[string]
	CityLocation  optional.Value[string]
	Email         optional.Value[string]
	JerseyNumber  optional.Value[string]
	DocumentFile  optional.Value[string]
	VideoFile     optional.Value[string]
	Status        optional.Value[Status]
}

// Apply writes the delta onto p. Null clears a profile field.
func (d ProfileDelta) Apply(p *Player) {
	applyString(&p.SportCategory, d.SportCategory)
	applyString(&p.PlayerName, d.PlayerName)
	applyString(&p.EventName, d.EventName)
	applyString(&p.EventDate, d.EventDate)
	applyString(&p.CityLocation, d.CityLocation)
	applyString(&p.Email, d.Email)
	applyString(&p.JerseyNumber, d.JerseyNumber)
	if d.DocumentFile.Present() {
		p.DocumentFile = d.DocumentFile.Ptr()
	}
	if d.VideoFile.Present() {
		p.VideoFile = d.VideoFile.Ptr()
	}
	if s, ok := d.Status.Get(); ok {
		p.Status = s
	}
}

func applyString(dst *string, v optional.Value[string]) {
	if v.Present() {
		*dst = v.Or("")
	}
}
