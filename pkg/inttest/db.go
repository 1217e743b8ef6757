package inttest

import (
	"testing"

	"github.com/orlangure/gnomock"
	"github.com/orlangure/gnomock/preset/postgres"
	"github.com/snap-party/snapparty/pkg/config"
	"github.com/snap-party/snapparty/pkg/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SetupDB creates a PostgreSQL container. Gorm is connected to the DB and runs the migrations.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	container, err := gnomock.Start(
		postgres.Preset(
			postgres.WithUser("snap", "snap"),
			postgres.WithDatabase("test_snap"),
		),
	)
	require.NoError(t, err, "failed to start DB")
	t.Cleanup(func() { require.NoError(t, gnomock.Stop(container), "failed to stop DB") })

	db, err := storage.NewDatabase(config.Postgresql{
		Host:         container.Host,
		Port:         container.DefaultPort(),
		Username:     "snap",
		Password:     "snap",
		DatabaseName: "test_snap",
	})
	require.NoError(t, err, "failed to setup DB")
	return db
}
