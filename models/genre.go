package models

type Genre struct {
	ID          uint   `json:"id" gorm:"primarykey"`
	Name        string `json:"name" gorm:"size:100;not null;index"`
	Description string `json:"description,omitempty"`

	Tracks []Track `json:"tracks,omitempty" gorm:"many2many:track_genres;constraint:OnDelete:CASCADE"`
}
