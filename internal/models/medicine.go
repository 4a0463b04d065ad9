package models

import "encoding/json"

// MedicineType classifies a medicine's form.
type MedicineType string

const (
	TypeTablet    MedicineType = "Tablet"
	TypeCapsule   MedicineType = "Capsule"
	TypeSyrup     MedicineType = "Syrup"
	TypeInjection MedicineType = "Injection"
	TypeDrops     MedicineType = "Drops"
	TypeInhaler   MedicineType = "Inhaler"
	TypeCream     MedicineType = "Cream"
	TypeOther     MedicineType = "Other"
)

// MedicineTypes lists every valid type, in display order.
var MedicineTypes = []MedicineType{
	TypeTablet, TypeCapsule, TypeSyrup, TypeInjection,
	TypeDrops, TypeInhaler, TypeCream, TypeOther,
}

// NormalizeType maps free-form input to a valid MedicineType.
// Empty or unrecognized values fall back to Tablet.
func NormalizeType(s string) MedicineType {
	for _, t := range MedicineTypes {
		if s == string(t) {
			return t
		}
	}
	return TypeTablet
}

// Medicine is one entry of the user's medicine list.
// Like User, the identifier may arrive as "_id" or "id".
type Medicine struct {
	ID        string       `json:"_id"`
	Name      string       `json:"name"`
	Dosage    string       `json:"dosage"`
	Frequency string       `json:"frequency"`
	Type      MedicineType `json:"type,omitempty"`
	User      string       `json:"user"`
	CreatedAt string       `json:"createdAt,omitempty"`
}

func (m *Medicine) UnmarshalJSON(data []byte) error {
	type alias Medicine
	aux := struct {
		*alias
		AltID string `json:"id"`
	}{alias: (*alias)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = aux.AltID
	}
	if m.Type == "" {
		m.Type = TypeTablet
	}
	return nil
}

// MedicineFields carries the user-editable fields of a medicine for
// create and update calls. User is the owning user's identifier.
type MedicineFields struct {
	Name      string       `json:"name"`
	Dosage    string       `json:"dosage"`
	Frequency string       `json:"frequency"`
	Type      MedicineType `json:"type"`
	User      string       `json:"user"`
}
