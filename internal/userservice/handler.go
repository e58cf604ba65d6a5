package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/moonhalo/blogapi/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("unauthorized access")
)

func NewUserService(db *sql.DB, mb common.MessageProducer, secret []byte) *UserService {
	return &UserService{
		m:      newUserModel(db),
		mb:     mb,
		secret: secret,
	}
}

// RegisterUser creates a new user account and publishes a user.created event
// so the mail service can send the welcome email.
func (s *UserService) RegisterUser(ctx context.Context, username, name, email, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Name:     name,
		Email:    email,
		Password: Password{Plain: password},
	}

	err := u.Password.set(u.Password.Plain)
	if err != nil {
		return nil, err
	}

	err = s.m.insert(ctx, &u)
	if err != nil {
		return nil, err
	}

	data := struct {
		Email    string
		Username string
	}{
		Email:    u.Email,
		Username: u.Username,
	}

	emailData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	err = s.mb.Publish(ctx, emailData, common.UserCreatedKey, common.UserExchange)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// AuthenticateUser checks the email/password pair and returns the matching
// user. A missing account and a wrong password are indistinguishable to the
// caller.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*User, error) {
	v := common.NewValidator()
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuthenticationFailure
	}

	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getByID(ctx, id)
}

type UpdateProfileRequest struct {
	Username        *string    `json:"username"`
	Name            *string    `json:"name"`
	Email           *string    `json:"email"`
	Location        *string    `json:"location"`
	Bio             *string    `json:"bio"`
	PersonalWebsite *string    `json:"personal_website"`
	DateOfBirth     *time.Time `json:"date_of_birth"`
}

// UpdateProfile applies the provided fields to the user's profile; nil fields
// keep their stored value.
func (s *UserService) UpdateProfile(ctx context.Context, id int, req *UpdateProfileRequest) (*User, error) {
	user, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.PersonalWebsite != nil {
		user.PersonalWebsite = *req.PersonalWebsite
	}
	if req.DateOfBirth != nil {
		user.DateOfBirth = req.DateOfBirth
	}

	v := common.NewValidator()
	validateUsername(v, user.Username)
	validateEmail(v, user.Email)
	validateWebsite(v, user.PersonalWebsite)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err = s.m.update(ctx, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdatePassword changes the user's password after checking the current one.
func (s *UserService) UpdatePassword(ctx context.Context, id int, current, updated string) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	v.Check(current != "", "current_password", "must be provided")
	validatePassword(v, updated)
	if !v.Valid() {
		return v.ValidationError()
	}

	user, err := s.m.getByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := user.Password.compare(current)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAuthenticationFailure
	}

	if err := user.Password.set(updated); err != nil {
		return err
	}

	return s.m.updatePassword(ctx, user.Password, user.ID, user.Version)
}

// UpdateAvatar stores the durable URL returned by the media pipeline.
func (s *UserService) UpdateAvatar(ctx context.Context, id int, imageURL string) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	v.Check(imageURL != "", "image_url", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.updateAvatar(ctx, id, imageURL)
}
