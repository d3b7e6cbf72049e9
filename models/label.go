package models

type Label struct {
	ID          uint   `json:"id" gorm:"primarykey"`
	Name        string `json:"name" gorm:"size:200;not null;index"`
	Description string `json:"description,omitempty"`
	FoundedYear *int   `json:"founded_year,omitempty"`

	// Releases keep their rows when the label goes away; the reference is
	// cleared instead.
	Releases []Release `json:"releases,omitempty" gorm:"constraint:OnDelete:SET NULL"`
}
