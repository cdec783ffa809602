package httpapi

import (
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/solidarias/internal/common"
)

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func errValidation(msg string) error { return fmt.Errorf("%w: %s", common.ErrorValidation, msg) }
