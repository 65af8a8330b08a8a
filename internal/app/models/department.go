package models

import "encoding/json"

type Department struct {
	ID          string `json:"-"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Faculty     string `json:"faculty"`
	Description string `json:"description"`
}

func (d *Department) UnmarshalJSON(data []byte) error {
	var w struct {
		ID          string `json:"id"`
		MongoID     string `json:"_id"`
		Name        string `json:"name"`
		Code        string `json:"code"`
		Faculty     string `json:"faculty"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*d = Department{
		ID:          firstNonEmpty(w.ID, w.MongoID),
		Name:        w.Name,
		Code:        w.Code,
		Faculty:     w.Faculty,
		Description: w.Description,
	}
	return nil
}

// DepartmentPayload is the body for department create/update.
type DepartmentPayload struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Faculty     string `json:"faculty"`
	Description string `json:"description"`
}

// DepartmentNames maps department id to display name.
func DepartmentNames(depts []Department) map[string]string {
	names := make(map[string]string, len(depts))
	for _, d := range depts {
		if d.ID != "" {
			names[d.ID] = d.Name
		}
	}
	return names
}
