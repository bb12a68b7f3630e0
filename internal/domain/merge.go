package domain

import (
	"strings"

	"github.com/HadiRehman/NLSA-USA/internal/optional"
)

// Merge computes what an upsert writes. With no existing record it validates
// a creation: all profile fields are mandatory, status starts Pending and
// every stat not supplied is null. Otherwise only supplied fields change.
//
// The returned Stats is the complete map to store in place of the old one.
func Merge(existing *Player, in PlayerPatch) (ProfileDelta, Stats, error) {
	delta := ProfileDelta{
		SportCategory: in.SportCategory,
		PlayerName:    in.PlayerName,
		EventName:     in.EventName,
		EventDate:     in.eventDate(),
		CityLocation:  in.CityLocation,
		Email:         in.Email,
		JerseyNumber:  in.JerseyNumber,
		DocumentFile:  in.DocumentFile,
		VideoFile:     in.VideoFile,
	}

	if existing == nil {
		if err := requireProfile(delta); err != nil {
			return ProfileDelta{}, nil, err
		}
		delta.Status = optional.Some(StatusPending)
		return delta, mergeStats(EmptyStats(), in.StatsPatch), nil
	}

	if s, ok := in.Status.Get(); ok {
		delta.Status = optional.Some(s)
	}
	base := existing.Stats
	if base == nil {
		base = Stats{}
	}
	return delta, mergeStats(base.Clone(), in.StatsPatch), nil
}

func mergeStats(base Stats, in StatsPatch) Stats {
	for _, f := range AllStats {
		v := in.Get(f)
		if !v.Present() {
			continue
		}
		base[f] = v.Ptr()
	}
	return base
}

func requireProfile(d ProfileDelta) error {
	fields := []struct {
		name string
		v    optional.Value[string]
	}{
		{"SportCategory", d.SportCategory},
		{"PlayerName", d.PlayerName},
		{"EventName", d.EventName},
		{"EventDate", d.EventDate},
		{"CityLocation", d.CityLocation},
		{"Email", d.Email},
		{"JerseyNumber", d.JerseyNumber},
	}

	var missing []string
	for _, f := range fields {
		if v, ok := f.v.Get(); !ok || strings.TrimSpace(v) == "" {
			missing = append(missing, f.name)
		}
	}
	return missingFields("all fields required", missing)
}

// NewPlayer validates a creation payload and builds the record to insert.
// ID and timestamps are left for the store to assign.
func NewPlayer(in PlayerPatch) (*Player, error) {
	delta, stats, err := Merge(nil, in)
	if err != nil {
		return nil, err
	}
	p := &Player{Stats: stats}
	delta.Apply(p)
	return p, nil
}
