// Package factory provides a small generic registry used to instantiate
// pluggable backends from configuration. Backends are selected by a name
// string plus a map of raw settings; builders decode the settings into typed
// structs and return the concrete implementation.
//
// Example usage:
//
//	reg := factory.NewRegistry[Store]()
//	reg.Register("sqlite", func(conf map[string]any) (Store, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return OpenSQLite(c.Path)
//	})
//	s, err := reg.Build(factory.BackendConfig{Name: "sqlite", Conf: map[string]any{"path": "dispatch.db"}})
package factory
