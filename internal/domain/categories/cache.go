package categories

import "time"

type Cache interface {
	GetByOwnerID(ownerID string) ([]Category, bool)
	SetByOwnerID(ownerID string, categories []Category, ttl time.Duration)
	DeleteByOwnerID(ownerID string)
}

type noopCache struct{}

func (noopCache) GetByOwnerID(string) ([]Category, bool) {
	return nil, false
}

func (noopCache) SetByOwnerID(string, []Category, time.Duration) {}

func (noopCache) DeleteByOwnerID(string) {}
