package data

import (
	"errors"
)

var (
	// ErrRecordNotFound is returned by the store when looking up a video
	// that doesn't exist.
	ErrRecordNotFound = errors.New("record not found")
)

// Models is 'container' which can hold and respresent all your models
type Models struct {
	Videos interface {
		Insert(video *Video) error
		GetAll() ([]*Video, error)
		Get(id int64) (*Video, error)
		Update(video *Video) error
		Delete(id int64) error
		DeleteAll() error
		Count() int
	}
}

// NewModels return a Models struct backed by a fresh in-memory store.
func NewModels() Models {
	return Models{
		Videos: NewVideoModel(),
	}
}
