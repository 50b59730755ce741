package tourpackage

import (
	"github.com/tidwall/gjson"

	"tourmarket/internal/apperr"
	"tourmarket/internal/money"
	"tourmarket/internal/validation"
)

// Patch is a partial package update. Only fields present in the request body are set.
type Patch struct {
	Name        *string
	Description *string
	Destination *string
	Duration    *int
	Price       *money.Amount
	ImageURL    *string

	// Admin fields.
	OrganizerID *string
	Status      *string
}

func (p Patch) touchesContent() bool {
	return p.Name != nil || p.Description != nil || p.Destination != nil ||
		p.Duration != nil || p.Price != nil || p.ImageURL != nil
}

func (p Patch) touchesAdmin() bool {
	return p.OrganizerID != nil || p.Status != nil
}

// Fields lists the body keys the patch carries.
func (p Patch) Fields() []string {
	var out []string
	add := func(set bool, name string) {
		if set {
			out = append(out, name)
		}
	}
	add(p.Name != nil, "name")
	add(p.Description != nil, "description")
	add(p.Destination != nil, "destination")
	add(p.Duration != nil, "duration")
	add(p.Price != nil, "price")
	add(p.ImageURL != nil, "imageUrl")
	add(p.OrganizerID != nil, "organizerId")
	add(p.Status != nil, "status")
	return out
}

// ParsePatch reads a JSON update body. Keys that are absent stay nil; keys with the
// wrong JSON type are a ValidationError. imageUrl may be null to clear it.
func ParsePatch(body []byte) (Patch, error) {
	var p Patch
	if !gjson.ValidBytes(body) {
		return p, apperr.Validation("invalid json", nil)
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return p, apperr.Validation("request body must be a JSON object", nil)
	}

	bad := map[string]string{}
	str := func(key string) *string {
		v := doc.Get(key)
		if !v.Exists() {
			return nil
		}
		if v.Type != gjson.String {
			bad[key] = "string"
			return nil
		}
		s := v.String()
		return &s
	}

	p.Name = str("name")
	p.Description = str("description")
	p.Destination = str("destination")
	p.OrganizerID = str("organizerId")
	p.Status = str("status")

	if v := doc.Get("imageUrl"); v.Exists() {
		switch v.Type {
		case gjson.Null:
			empty := ""
			p.ImageURL = &empty
		case gjson.String:
			s := v.String()
			p.ImageURL = &s
		default:
			bad["imageUrl"] = "string"
		}
	}

	if v := doc.Get("duration"); v.Exists() {
		n, ok := validation.WholeNumber(v.Raw)
		if v.Type != gjson.Number || !ok {
			bad["duration"] = "integer"
		} else {
			d := int(n)
			p.Duration = &d
		}
	}

	if v := doc.Get("price"); v.Exists() {
		var raw string
		switch v.Type {
		case gjson.Number:
			raw = v.Raw
		case gjson.String:
			raw = v.String()
		}
		amt, err := money.Parse(raw)
		if raw == "" || err != nil {
			bad["price"] = "number"
		} else {
			p.Price = &amt
		}
	}

	if len(bad) > 0 {
		return Patch{}, apperr.Validation("Validation Error", bad)
	}
	return p, nil
}
