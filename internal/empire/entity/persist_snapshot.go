package entity

import "EraRealms/internal/empire/entity/domain"

type EmpirePersistSnapshot struct {
	Version uint64
	State   *domain.Empire
}
