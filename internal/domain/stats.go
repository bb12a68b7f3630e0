package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/HadiRehman/NLSA-USA/internal/optional"
)

type StatField string

const (
	StatAtBats             StatField = "AtBats"
	StatHits               StatField = "Hits"
	StatRuns               StatField = "Runs"
	StatRBI                StatField = "RBI"
	StatHR                 StatField = "HR"
	StatSB                 StatField = "SB"
	StatBB                 StatField = "BB"
	StatK                  StatField = "K"
	StatAVG                StatField = "AVG"
	StatErrors             StatField = "Errors"
	StatAssists            StatField = "Assists"
	StatPutouts            StatField = "Putouts"
	StatPitchingInnings    StatField = "PitchingInnings"
	StatPitchingStrikeouts StatField = "PitchingStrikeouts"
	StatERA                StatField = "ERA"
)

// AllStats is the canonical display order.
var AllStats = []StatField{
	StatAtBats, StatHits, StatRuns, StatRBI, StatHR, StatSB, StatBB, StatK, StatAVG,
	StatErrors, StatAssists, StatPutouts, StatPitchingInnings, StatPitchingStrikeouts, StatERA,
}

// RequiredStats must resolve before a player can be approved.
var RequiredStats = []StatField{
	StatAtBats, StatHits, StatRuns, StatRBI, StatHR, StatSB, StatBB, StatK, StatAVG,
}

var statLabels = map[StatField]string{
	StatAtBats:             "At Bats (AB)",
	StatHits:               "Hits (H)",
	StatRuns:               "Runs (R)",
	StatRBI:                "RBI",
	StatHR:                 "Home Runs (HR)",
	StatSB:                 "Stolen Bases (SB)",
	StatBB:                 "Walks (BB)",
	StatK:                  "Strikeouts (K)",
	StatAVG:                "Batting Average (AVG)",
	StatErrors:             "Errors",
	StatAssists:            "Assists",
	StatPutouts:            "Putouts",
	StatPitchingInnings:    "Pitching Innings",
	StatPitchingStrikeouts: "Pitching Strikeouts",
	StatERA:                "ERA",
}

func (f StatField) Label() string {
	if l, ok := statLabels[f]; ok {
		return l
	}
	return string(f)
}

// StatValue is kept as text; the console submits numbers and free-form strings alike.
type StatValue string

func (v *StatValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StatValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("stat value must be a string or number: %w", err)
	}
	*v = StatValue(n.String())
	return nil
}

func (v StatValue) Blank() bool {
	return strings.TrimSpace(string(v)) == ""
}

// Stats maps every stat to its value; nil means null.
type Stats map[StatField]*StatValue

// EmptyStats returns a map with every stat present and null.
func EmptyStats() Stats {
	s := make(Stats, len(AllStats))
	for _, f := range AllStats {
		s[f] = nil
	}
	return s
}

// Lookup returns the value only when it is not missing.
func (s Stats) Lookup(f StatField) (StatValue, bool) {
	v, ok := s[f]
	if !ok || v == nil || v.Blank() {
		return "", false
	}
	return *v, true
}

func (s Stats) Clone() Stats {
	out := make(Stats, len(s))
	for k, v := range s {
		if v == nil {
			out[k] = nil
			continue
		}
		c := *v
		out[k] = &c
	}
	return out
}

// StatsPatch carries the statistic keys of an upsert payload.
type StatsPatch struct {
	AtBats             optional.Value[StatValue] `json:"AtBats"`
	Hits               optional.Value[StatValue] `json:"Hits"`
	Runs               optional.Value[StatValue] `json:"Runs"`
	RBI                optional.Value[StatValue] `json:"RBI"`
	HR                 optional.Value[StatValue] `json:"HR"`
	SB                 optional.Value[StatValue] `json:"SB"`
	BB                 optional.Value[StatValue] `json:"BB"`
	K                  optional.Value[StatValue] `json:"K"`
	AVG                optional.Value[StatValue] `json:"AVG"`
	Errors             optional.Value[StatValue] `json:"Errors"`
	Assists            optional.Value[StatValue] `json:"Assists"`
	Putouts            optional.Value[StatValue] `json:"Putouts"`
	PitchingInnings    optional.Value[StatValue] `json:"PitchingInnings"`
	PitchingStrikeouts optional.Value[StatValue] `json:"PitchingStrikeouts"`
	ERA                optional.Value[StatValue] `json:"ERA"`
}

func (p *StatsPatch) field(f StatField) *optional.Value[StatValue] {
	switch f {
	case StatAtBats:
		return &p.AtBats
	case StatHits:
		return &p.Hits
	case StatRuns:
		return &p.Runs
	case StatRBI:
		return &p.RBI
	case StatHR:
		return &p.HR
	case StatSB:
		return &p.SB
	case StatBB:
		return &p.BB
	case StatK:
		return &p.K
	case StatAVG:
		return &p.AVG
	case StatErrors:
		return &p.Errors
	case StatAssists:
		return &p.Assists
	case StatPutouts:
		return &p.Putouts
	case StatPitchingInnings:
		return &p.PitchingInnings
	case StatPitchingStrikeouts:
		return &p.PitchingStrikeouts
	case StatERA:
		return &p.ERA
	}
	return nil
}

// Get returns the incoming value for f, unset for unknown fields.
func (p StatsPatch) Get(f StatField) optional.Value[StatValue] {
	if v := p.field(f); v != nil {
		return *v
	}
	return optional.Unset[StatValue]()
}

// Set is used by callers building a patch in code.
func (p *StatsPatch) Set(f StatField, v optional.Value[StatValue]) {
	if dst := p.field(f); dst != nil {
		*dst = v
	}
}

func (p StatsPatch) Empty() bool {
	for _, f := range AllStats {
		if p.Get(f).Present() {
			return false
		}
	}
	return true
}
