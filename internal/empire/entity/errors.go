package entity

import "errors"

var ErrEmpireNotFound = errors.New("empire not found")
