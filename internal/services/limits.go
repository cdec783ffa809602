package services

import (
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/solidarias/internal/common"
	"github.com/dmitrijs2005/solidarias/internal/models"
)

// checkLen rejects values longer than limit characters.
func checkLen(field, v string, limit int) error {
	if utf8.RuneCountInString(v) > limit {
		return fmt.Errorf("%w: %s must be at most %d characters", common.ErrorValidation, field, limit)
	}
	return nil
}

func checkQuantity(q int) error {
	if q < models.MinQuantity || q > models.MaxQuantity {
		return fmt.Errorf("%w: quantity is out of range", common.ErrorValidation)
	}
	return nil
}
