package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Franklin-pro/simpo-planet-studio-bn/db"

	"golang.org/x/crypto/bcrypt"
)

const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleUser       = "user"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type User struct {
	Model
	Username   string `gorm:"type:varchar(100);index:uniq_username,unique" json:"username"`
	Email      string `gorm:"type:varchar(150);index:uniq_email,unique" json:"email"`
	Password   string `gorm:"type:varchar(100)" json:"-"`
	Role       string `gorm:"type:varchar(20);not null;index" json:"role"`
	RememberMe bool   `json:"rememberMe"`
}

type UserInput struct {
	Username   string `json:"username" validate:"required,min=3,max=100"`
	Email      string `json:"email" validate:"required,email,max=150"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
	Role       string `json:"role" validate:"oneof=superadmin admin user"`
	RememberMe bool   `json:"rememberMe"`
}

func (in *UserInput) normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Role == "" {
		in.Role = RoleAdmin
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

func (u *User) SetPassword(plainTextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func UserCreate(ctx context.Context, in UserInput) (u User, err error) {
	if err = prepare(&in); err != nil {
		return u, err
	}
	u.Username = in.Username
	u.Email = in.Email
	u.Role = in.Role
	u.RememberMe = in.RememberMe
	if err = u.SetPassword(in.Password); err != nil {
		return u, err
	}
	ctx, cancel := db.Context(ctx)
	defer cancel()
	err = db.Instance.WithContext(ctx).Create(&u).Error
	if db.IsDuplicate(err) {
		// either index may have fired, report against whichever value is taken
		return u, userConflict(ctx, in)
	}
	return u, translate(err, "")
}

func userConflict(ctx context.Context, in UserInput) error {
	var count int64
	err := db.Instance.WithContext(ctx).Model(&User{}).Where("username = ?", in.Username).Count(&count).Error
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return NewValidationError("username", "already exists")
	}
	return NewValidationError("email", "already exists")
}

// UserLogin checks the credentials. Unknown email and wrong password fail the same way.
func UserLogin(ctx context.Context, email, plainTextPassword string) (u User, err error) {
	ctx, cancel := db.Context(ctx)
	defer cancel()
	email = strings.ToLower(strings.TrimSpace(email))
	err = db.Instance.WithContext(ctx).First(&u, "email = ?", email).Error
	if err = translate(err, ""); err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plainTextPassword)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func UserByID(ctx context.Context, id uint64) (User, error) {
	return byID[User](ctx, id)
}

func UserList(ctx context.Context) ([]User, error) {
	return find[User](ctx, newestFirst)
}

// UserSeed creates the initial superadmin unless an account with that email exists
func UserSeed(ctx context.Context, username, email, password string) (created bool, err error) {
	if email == "" || password == "" {
		return false, nil
	}
	dbCtx, cancel := db.Context(ctx)
	var count int64
	err = db.Instance.WithContext(dbCtx).Model(&User{}).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).Count(&count).Error
	cancel()
	if err != nil || count > 0 {
		return false, err
	}
	_, err = UserCreate(ctx, UserInput{Username: username, Email: email, Password: password, Role: RoleSuperAdmin})
	return err == nil, err
}
