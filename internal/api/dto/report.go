package dto

type QualityCheckDTO struct {
	Name   string `json:"name"`
	Value  int64  `json:"value"`
	Passed bool   `json:"passed"`
}

type DataQualityDTO struct {
	Status      string             `json:"status"`
	Checks      []*QualityCheckDTO `json:"checks"`
	Issues      []string           `json:"issues"`
	GeneratedAt string             `json:"generated_at"`
}
