package connection

import (
	"context"
	"fmt"
	"log"

	"tasktracker/config"
	"tasktracker/store"
)

// OpenStore opens the backend selected by cfg.StoreDriver.
func OpenStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverFile:
		return store.OpenFile(cfg.DataFile)
	case config.DriverMemory:
		log.Println("store: using in-memory store, data is lost on exit")
		return store.NewMemory(), nil
	case config.DriverSQLite:
		return store.OpenSQLite(cfg.SQLitePath)
	case config.DriverFirestore:
		client, err := FBConnection(ctx, cfg)
		if err != nil {
			return nil, err
		}
		s, err := store.NewFirestore(ctx, client)
		if err != nil {
			client.Close()
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
