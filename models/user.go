package models

import (
	"time"
)

type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type User struct {
	UserID       string    `json:"userId" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-"`
	AuthProvider string    `json:"authProvider" gorm:"not null;default:'email'"` // email, google
	Role         string    `json:"role" gorm:"not null;default:'user'"`
	ProfilePic   string    `json:"profilePic,omitempty"`
	Address      *Address  `json:"address,omitempty" gorm:"serializer:json"`
	Mobile       string    `json:"mobile,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
