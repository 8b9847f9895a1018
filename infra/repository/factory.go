package repository

import (
	"github.com/mgubran1/dispatchgrid/core/factory"
)

type sqliteConf struct {
	Path string `json:"path"`
}

// NewRegistry returns a backend registry with the built-in stores
// registered: "sqlite" (file-backed) and "memory" (volatile, for tests and
// one-shot runs).
func NewRegistry() *factory.Registry[Repository] {
	reg := factory.NewRegistry[Repository]()
	// Registration of the built-ins cannot collide.
	_ = reg.Register("sqlite", func(conf map[string]any) (Repository, error) {
		var c sqliteConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewSQLiteRepository(c.Path)
	})
	_ = reg.Register("memory", func(map[string]any) (Repository, error) {
		return NewMemoryRepository(), nil
	})
	return reg
}
