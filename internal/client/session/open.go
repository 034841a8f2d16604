package session

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/useradmin/internal/client/storage"
	"github.com/dmitrijs2005/useradmin/internal/cryptox"
	"github.com/dmitrijs2005/useradmin/internal/filex"
	"github.com/dmitrijs2005/useradmin/internal/logging"
)

const (
	DatabaseFile = "session.db"
	KeyFile      = "session.key"
)

// Open prepares dataDir, loads (or creates) the sealing key and the session
// database, and returns a ready Service together with the database handle the
// caller must close.
func Open(ctx context.Context, dataDir string, log logging.Logger) (*Service, *sql.DB, error) {
	dir, err := filex.EnsureDir(dataDir)
	if err != nil {
		return nil, nil, err
	}

	key, err := filex.ReadOrCreate(filepath.Join(dir, KeyFile), cryptox.NewKey)
	if err != nil {
		return nil, nil, fmt.Errorf("session key: %w", err)
	}
	sealer, err := cryptox.NewSealer(key)
	if err != nil {
		return nil, nil, fmt.Errorf("session key %s: %w", filepath.Join(dir, KeyFile), err)
	}

	db, err := storage.InitDatabase(ctx, filepath.Join(dir, DatabaseFile))
	if err != nil {
		return nil, nil, err
	}
	return NewService(db, sealer, log), db, nil
}
