package memory

import (
	"time"

	"chromalyzer-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

type UploadRepository struct {
	cache *cache.Cache
}

// NewUploadRepository creates an in-memory TTL store for uploaded files.
// Expired entries are purged every 10 minutes.
func NewUploadRepository(ttl time.Duration) *UploadRepository {
	c := cache.New(ttl, 10*time.Minute)
	return &UploadRepository{
		cache: c,
	}
}

func (r *UploadRepository) Save(upload *entity.Upload) {
	r.cache.Set(upload.Id.String(), upload, cache.DefaultExpiration)
}

func (r *UploadRepository) Get(id string) (*entity.Upload, bool) {
	if x, found := r.cache.Get(id); found {
		return x.(*entity.Upload), true
	}
	return nil, false
}

func (r *UploadRepository) Delete(id string) {
	r.cache.Delete(id)
}
