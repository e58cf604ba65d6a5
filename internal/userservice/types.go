package userservice

import (
	"database/sql"
	"time"

	"github.com/moonhalo/blogapi/internal/common"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"

	// AuthTokenTime is how long a signed auth cookie stays valid.
	AuthTokenTime time.Duration = 7 * 24 * time.Hour
)

type UserService struct {
	m      *UserModel
	mb     common.MessageProducer
	secret []byte
}

type UserModel struct {
	db *sql.DB
}

type User struct {
	ID              int        `json:"id"`
	Username        string     `json:"username"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Password        Password   `json:"-"`
	ImageURL        string     `json:"image_url"`
	Location        string     `json:"location"`
	Bio             string     `json:"bio"`
	PersonalWebsite string     `json:"personal_website"`
	DateOfBirth     *time.Time `json:"date_of_birth"`
	Role            Role       `json:"role"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Version         int        `json:"version"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}
