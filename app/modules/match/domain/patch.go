package matchdomain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// MaxResultGoals caps goals entered by an administrator.
const MaxResultGoals = 30

// Optional distinguishes an absent JSON field from an explicit null.
// Set is true whenever the field was present; Value is nil for null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns a present Optional carrying null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Value = nil
		return nil
	}
	v := new(T)
	if err := json.Unmarshal(b, v); err != nil {
		return err
	}
	o.Value = v
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// ResultPatch is the administrative update of a match result. Only fields
// that are Set are applied.
type ResultPatch struct {
	HomeGoals          Optional[int]    `json:"homeGoals"`
	AwayGoals          Optional[int]    `json:"awayGoals"`
	DecidedByPenalties Optional[bool]   `json:"decidedByPenalties"`
	PenWinner          Optional[string] `json:"penWinner"`
	HomeTeam           Optional[string] `json:"homeTeam"`
	AwayTeam           Optional[string] `json:"awayTeam"`
}

// IsEmpty reports whether no field is set.
func (p ResultPatch) IsEmpty() bool {
	return !p.HomeGoals.Set && !p.AwayGoals.Set && !p.DecidedByPenalties.Set &&
		!p.PenWinner.Set && !p.HomeTeam.Set && !p.AwayTeam.Set
}

// Apply validates p field by field and returns the patched copy of m. The
// patched match always satisfies: decided by penalties implies a draw with a
// penalty winner equal to one of the two team names.
func (p ResultPatch) Apply(m Match) (Match, error) {
	if p.IsEmpty() {
		return m, ErrEmptyPatch
	}
	if err := validGoals(p.HomeGoals, ErrInvalidHomeGoals); err != nil {
		return m, err
	}
	if err := validGoals(p.AwayGoals, ErrInvalidAwayGoals); err != nil {
		return m, err
	}

	out := m
	if p.HomeTeam.Set {
		name, err := teamName(p.HomeTeam)
		if err != nil {
			return m, err
		}
		out.HomeTeam = name
	}
	if p.AwayTeam.Set {
		name, err := teamName(p.AwayTeam)
		if err != nil {
			return m, err
		}
		out.AwayTeam = name
	}
	if p.HomeGoals.Set {
		out.HomeGoals = copyPtr(p.HomeGoals.Value)
	}
	if p.AwayGoals.Set {
		out.AwayGoals = copyPtr(p.AwayGoals.Value)
	}
	if p.DecidedByPenalties.Set {
		out.DecidedByPenalties = p.DecidedByPenalties.Value != nil && *p.DecidedByPenalties.Value
	}
	if p.PenWinner.Set {
		out.PenWinner = nil
		if p.PenWinner.Value != nil {
			if w := strings.TrimSpace(*p.PenWinner.Value); w != "" {
				out.PenWinner = &w
			}
		}
	}

	if !out.DecidedByPenalties {
		out.PenWinner = nil
		return out, nil
	}

	if !out.Stage.IsKnockout() {
		return m, ErrPenaltiesInGroupStage
	}
	if out.HomeGoals == nil || out.AwayGoals == nil || *out.HomeGoals != *out.AwayGoals {
		return m, ErrPenaltyMatchMustBeDraw
	}
	if out.PenWinner == nil {
		return m, ErrPenaltyWinnerRequired
	}
	if *out.PenWinner != out.HomeTeam && *out.PenWinner != out.AwayTeam {
		return m, ErrPenaltyWinnerNotInMatch
	}
	return out, nil
}

func validGoals(o Optional[int], errInvalid error) error {
	if !o.Set || o.Value == nil {
		return nil
	}
	if *o.Value < 0 || *o.Value > MaxResultGoals {
		return errInvalid
	}
	return nil
}

func teamName(o Optional[string]) (string, error) {
	if o.Value == nil {
		return "", ErrInvalidTeamName
	}
	name := strings.TrimSpace(*o.Value)
	if name == "" {
		return "", ErrInvalidTeamName
	}
	return name, nil
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
