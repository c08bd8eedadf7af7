// Package validator reports structural and date problems in a heir list as
// per-field diagnostics. It never fails: every problem becomes a
// model.ValidationError, so an editor can show them while the list is still
// being filled in.
package validator

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"inheritance-engine/internal/model"
)

var heirFields = []string{
	"id",
	"name",
	"relation",
	"status",
	"birth_date",
	"death_date",
	"marriage_date",
	"divorce_date",
	"represented_id",
}

var decedentFields = []string{"death_date", "estate_value"}

type validator struct {
	decedent model.Decedent
	heirs    []model.Person
	byID     map[string]int
	errs     []model.ValidationError
}

// Validate checks heirs against decedent and returns every problem found,
// or an empty slice.
func Validate(decedent model.Decedent, heirs []model.Person) []model.ValidationError {
	v := &validator{
		decedent: decedent,
		heirs:    heirs,
		byID:     make(map[string]int, len(heirs)),
		errs:     []model.ValidationError{},
	}
	for i := range heirs {
		if _, ok := v.byID[heirs[i].ID]; !ok {
			v.byID[heirs[i].ID] = i
		}
	}

	v.checkDecedent()
	for i := range heirs {
		v.checkHeir(i)
	}
	v.checkSpouses()
	v.checkCycles()

	return v.errs
}

func (v *validator) add(id, field, msg string) {
	v.errs = append(v.errs, model.ValidationError{ID: id, Field: field, Message: msg})
}

// collect flattens an ozzo error map in a fixed field order.
func (v *validator) collect(id string, fields []string, err error) {
	if err == nil {
		return
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		v.add(id, "", err.Error())
		return
	}
	for _, f := range fields {
		if e, ok := errs[f]; ok && e != nil {
			v.add(id, f, e.Error())
		}
	}
}

func (v *validator) checkDecedent() {
	d := &v.decedent
	err := validation.ValidateStruct(d,
		validation.Field(&d.DeathDate, validation.Date(model.DateLayout).Error("death date must be a valid YYYY-MM-DD date")),
		validation.Field(&d.EstateValue, validation.By(nonNegative)),
	)
	v.collect(d.ID, decedentFields, err)
}

func (v *validator) checkHeir(i int) {
	p := &v.heirs[i]
	dateRule := func(what string) validation.Rule {
		return validation.Date(model.DateLayout).Error(what + " must be a valid YYYY-MM-DD date")
	}
	origin := p.Status == model.StatusReTransfer && p.IsRoot()

	err := validation.ValidateStruct(p,
		validation.Field(&p.ID,
			validation.Required.Error("ID is required"),
			validation.By(v.unique(i)),
		),
		validation.Field(&p.Name, validation.By(notBlank)),
		validation.Field(&p.Relation, validation.Required.Error("relation is required")),
		validation.Field(&p.Status, validation.Required.Error("status is required")),
		validation.Field(&p.BirthDate, dateRule("birth date")),
		validation.Field(&p.DeathDate,
			validation.When(p.Status.IsDead(), validation.Required.Error("death date is required for a deceased heir")),
			validation.When(origin, validation.Required.Error("death date is required for a re-transfer heir")),
			dateRule("death date"),
			validation.By(notBefore(p.BirthDate, "death date cannot be earlier than birth date")),
			validation.When(origin, validation.By(v.afterDecedentDeath)),
		),
		validation.Field(&p.MarriageDate, dateRule("marriage date")),
		validation.Field(&p.DivorceDate,
			dateRule("divorce date"),
			validation.By(notBefore(p.MarriageDate, "divorce date cannot be earlier than marriage date")),
		),
		validation.Field(&p.RepresentedID,
			validation.When(p.Status == model.StatusRepresentation,
				validation.Required.Error("a representation heir must name the heir it represents"),
			),
			validation.By(v.resolves),
			validation.When(p.Status == model.StatusRepresentation, validation.By(v.representsDeceased)),
		),
	)
	v.collect(p.ID, heirFields, err)
}

func (v *validator) unique(i int) validation.RuleFunc {
	return func(value interface{}) error {
		id, _ := value.(string)
		if first, ok := v.byID[id]; ok && first != i {
			return errors.New("ID is already used by another heir")
		}
		return nil
	}
}

func (v *validator) resolves(value interface{}) error {
	id, _ := value.(string)
	if id == "" {
		return nil
	}
	if _, ok := v.byID[id]; !ok {
		return fmt.Errorf("represented heir %q does not exist", id)
	}
	return nil
}

func (v *validator) representsDeceased(value interface{}) error {
	id, _ := value.(string)
	i, ok := v.byID[id]
	if !ok {
		return nil
	}
	if !v.heirs[i].Status.IsDead() {
		return fmt.Errorf("represented heir %q must be deceased", id)
	}
	return nil
}

func (v *validator) afterDecedentDeath(value interface{}) error {
	s, _ := value.(string)
	death, ok := model.ParseDate(s)
	if !ok {
		return nil
	}
	decedentDeath, ok := model.ParseDate(v.decedent.DeathDate)
	if !ok {
		return nil
	}
	if !death.After(decedentDeath) {
		return errors.New("a re-transfer heir must die after the decedent")
	}
	return nil
}

// checkSpouses allows one current spouse per back-reference context: the
// root list and each representation or re-transfer line.
func (v *validator) checkSpouses() {
	seen := make(map[string]string)
	for i := range v.heirs {
		p := &v.heirs[i]
		if !p.IsCurrentSpouse() {
			continue
		}
		first, dup := seen[p.RepresentedID]
		if !dup {
			seen[p.RepresentedID] = p.ID
			continue
		}
		if p.IsRoot() {
			v.add(p.ID, "relation", fmt.Sprintf("only one current spouse is allowed; %q is already the current spouse", first))
		} else {
			v.add(p.ID, "relation", fmt.Sprintf("only one current spouse is allowed in the line of %q; %q is already the current spouse", p.RepresentedID, first))
		}
	}
}

// checkCycles follows each heir's back-references and reports the first ID
// that repeats. Heirs on the loop and heirs whose chain only runs into it
// get different messages.
func (v *validator) checkCycles() {
	for i := range v.heirs {
		p := &v.heirs[i]
		visited := map[string]bool{p.ID: true}
		for cur := p.RepresentedID; cur != ""; {
			if visited[cur] {
				if cur == p.ID {
					v.add(p.ID, "represented_id", fmt.Sprintf("circular reference through %q", cur))
				} else {
					v.add(p.ID, "represented_id", fmt.Sprintf("chain leads into a cycle through %q", cur))
				}
				break
			}
			visited[cur] = true
			next, ok := v.byID[cur]
			if !ok {
				break
			}
			cur = v.heirs[next].RepresentedID
		}
	}
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("name is required")
	}
	return nil
}

// notBefore fails when the validated date is earlier than ref. Unparsable
// dates are left to the date format rule.
func notBefore(ref, msg string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		t, ok := model.ParseDate(s)
		if !ok {
			return nil
		}
		r, ok := model.ParseDate(ref)
		if !ok {
			return nil
		}
		if t.Before(r) {
			return errors.New(msg)
		}
		return nil
	}
}

func nonNegative(value interface{}) error {
	d, _ := value.(*decimal.Decimal)
	if d != nil && d.IsNegative() {
		return errors.New("estate value cannot be negative")
	}
	return nil
}
