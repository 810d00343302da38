package service

import (
	"github.com/Bayrii/drivelog/database"
	"github.com/Bayrii/drivelog/database/model"
	"github.com/Bayrii/drivelog/logger"
	"github.com/Bayrii/drivelog/util/common"
	"github.com/Bayrii/drivelog/util/crypto"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
)

// UserService is the credential store: it creates and verifies
// username/password accounts and owns no ownership logic.
type UserService struct{}

// CheckUser verifies a credential pair and returns the matching user, or
// nil when the username is unknown or the password does not match. Store
// errors are logged and treated as a failed login.
func (s *UserService) CheckUser(username string, password string) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("username = ?", username).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}

	return user
}

// Register creates a new account. Rule violations are collected into a
// ValidationError; a taken username is reported the same way.
func (s *UserService) Register(username string, password string) (*model.User, error) {
	var violations []string
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		violations = append(violations, "username must be between 3 and 50 characters")
	}
	if len(password) < minPasswordLen {
		violations = append(violations, "password must be at least 6 characters")
	}
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	db := database.GetDB()

	var count int64
	if err := db.Model(model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, storeFailure("check username", err)
	}
	if count > 0 {
		return nil, &ValidationError{Violations: []string{"username already exists"}}
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, storeFailure("hash password", err)
	}

	user := &model.User{Username: username, Password: hash}
	if err := db.Create(user).Error; err != nil {
		return nil, storeFailure("create user", err)
	}
	return user, nil
}

// GetFirstUser returns the first account, used by the CLI settings view.
func (s *UserService) GetFirstUser() (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateFirstUser resets the first account's credentials, creating the
// account when none exists. Used by the CLI reset command.
func (s *UserService) UpdateFirstUser(username string, password string) error {
	if username == "" {
		return common.NewError("username can not be empty")
	} else if password == "" {
		return common.NewError("password can not be empty")
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	db := database.GetDB()
	user := &model.User{}
	err = db.Model(model.User{}).First(user).Error
	if database.IsNotFound(err) {
		user.Username = username
		user.Password = hash
		return db.Model(model.User{}).Create(user).Error
	} else if err != nil {
		return err
	}
	user.Username = username
	user.Password = hash
	return db.Save(user).Error
}
