package domain

import "time"

type User struct {
	UID                  string    `json:"uid,omitempty"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Password             string    `json:"-"`
	GoogleID             string    `json:"googleId,omitempty"`
	Phone                string    `json:"phone,omitempty"`
	Image                string    `json:"image,omitempty"`
	NotificationsEnabled bool      `json:"notificationsEnabled"`
	DarkMode             bool      `json:"darkMode"`
	Joined               time.Time `json:"joined"`
	Address              string    `json:"address,omitempty"`
	City                 string    `json:"city,omitempty"`
	Pincode              string    `json:"pincode,omitempty"`
	Landmark             string    `json:"landmark,omitempty"`
}

// ProfileUpdate carries the fields of the profile upsert call. Joined is
// optional; a nil value keeps the stored join date.
type ProfileUpdate struct {
	UID      string
	Name     string
	Email    string
	Phone    string
	Joined   *time.Time
	Address  string
	City     string
	Pincode  string
	Landmark string
}
