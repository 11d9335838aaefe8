package inmemdb

import (
	"context"

	"github.com/tundavala/escola/core/user"
)

type userRepository struct {
	db *table[user.User]
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.user}
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, r := range repo.db.rows {
		if r.val.Username == usr.Username {
			return user.User{}, user.ErrUsernameExists
		}
	}

	usr.ID = repo.db.newID()
	usr.CreatedAt = nowFunc()
	repo.db.insert(usr.ID, usr.CreatedAt, usr)
	return usr, nil
}

func (repo *userRepository) GetUserByUsername(_ context.Context, username string) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, r := range repo.db.rows {
		if r.val.Username == username {
			return r.val, nil
		}
	}
	return user.User{}, user.ErrNotFound
}
