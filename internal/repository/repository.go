// Package repository holds the gorm-backed stores. Lookups return nil, nil
// when no row matches; unique-key violations come back as ErrDuplicate.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

var ErrDuplicate = errors.New("duplicate record")

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
