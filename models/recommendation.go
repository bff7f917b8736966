package models

// SimilarProperty is a property ranked against a reference property.
type SimilarProperty struct {
	Property
	Score int `json:"score"`
}
