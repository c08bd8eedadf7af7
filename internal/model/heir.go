package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Relation is the heir's relationship to the decedent.
type Relation uint8

const (
	RelationSpouse Relation = iota + 1
	RelationChild
	RelationFather
	RelationMother
	RelationSibling
	RelationPaternalGrandfather
	RelationPaternalGrandmother
	RelationMaternalGrandfather
	RelationMaternalGrandmother
	RelationChildSpouse
)

var relationNames = map[Relation]string{
	RelationSpouse:              "spouse",
	RelationChild:               "child",
	RelationFather:              "father",
	RelationMother:              "mother",
	RelationSibling:             "sibling",
	RelationPaternalGrandfather: "paternal_grandfather",
	RelationPaternalGrandmother: "paternal_grandmother",
	RelationMaternalGrandfather: "maternal_grandfather",
	RelationMaternalGrandmother: "maternal_grandmother",
	RelationChildSpouse:         "child_spouse",
}

func (r Relation) String() string {
	if s, ok := relationNames[r]; ok {
		return s
	}
	return fmt.Sprintf("Relation(%d)", uint8(r))
}

// MarshalText encodes the zero value as an empty label so that an
// incomplete record still round-trips.
func (r Relation) MarshalText() ([]byte, error) {
	if r == 0 {
		return []byte{}, nil
	}
	s, ok := relationNames[r]
	if !ok {
		return nil, fmt.Errorf("unknown relation %d", uint8(r))
	}
	return []byte(s), nil
}

func (r *Relation) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*r = 0
		return nil
	}
	for k, v := range relationNames {
		if v == string(b) {
			*r = k
			return nil
		}
	}
	return fmt.Errorf("unknown relation %q", string(b))
}

// Status is the heir's inheritance status.
type Status uint8

const (
	StatusNormal Status = iota + 1
	StatusDeceased
	StatusDeceasedWithoutIssue
	StatusRenounced
	StatusRepresentation
	StatusReTransfer
)

var statusNames = map[Status]string{
	StatusNormal:               "normal",
	StatusDeceased:             "deceased",
	StatusDeceasedWithoutIssue: "deceased_without_issue",
	StatusRenounced:            "renounced",
	StatusRepresentation:       "representation",
	StatusReTransfer:           "re_transfer",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

func (s Status) MarshalText() ([]byte, error) {
	if s == 0 {
		return []byte{}, nil
	}
	n, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown status %d", uint8(s))
	}
	return []byte(n), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*s = 0
		return nil
	}
	for k, v := range statusNames {
		if v == string(b) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", string(b))
}

// IsDead reports whether the heir died before the decedent.
func (s Status) IsDead() bool {
	return s == StatusDeceased || s == StatusDeceasedWithoutIssue
}

// Decedent is the person whose estate is distributed.
type Decedent struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	DeathDate   string           `json:"death_date,omitempty"`
	EstateValue *decimal.Decimal `json:"estate_value,omitempty"`
}

// Person is one heir record. RepresentedID references, by ID, the heir in
// the same list whose slot this record steps into; the references may form
// cycles while the list is being edited.
type Person struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Relation      Relation `json:"relation"`
	Status        Status   `json:"status"`
	BirthDate     string   `json:"birth_date,omitempty"`
	DeathDate     string   `json:"death_date,omitempty"`
	MarriageDate  string   `json:"marriage_date,omitempty"`
	DivorceDate   string   `json:"divorce_date,omitempty"`
	RepresentedID string   `json:"represented_id,omitempty"`
}

// IsRoot reports whether the heir claims directly rather than through
// another heir's slot.
func (p *Person) IsRoot() bool {
	return p.RepresentedID == ""
}

// IsCurrentSpouse reports whether p is a spouse who is neither divorced nor dead.
func (p *Person) IsCurrentSpouse() bool {
	return p.Relation == RelationSpouse && p.DivorceDate == "" && !p.Status.IsDead()
}
