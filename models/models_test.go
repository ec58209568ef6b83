package models

import (
	"context"
	"strings"
	"testing"

	"github.com/Franklin-pro/simpo-planet-studio-bn/db"

	"github.com/stretchr/testify/require"
)

// setupDB points db.Instance at a fresh in-memory database for the test
func setupDB(t *testing.T) context.Context {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	instance, err := db.OpenInMemory(name)
	require.NoError(t, err)
	old := db.Instance
	db.Instance = instance
	t.Cleanup(func() {
		if sqlDB, err := instance.DB(); err == nil {
			sqlDB.Close()
		}
		db.Instance = old
	})
	require.NoError(t, instance.AutoMigrate(&Artist{}, &Music{}, &Gallery{}, &Like{}, &Producer{}, &Filmmaker{}, &Contact{}, &User{}))
	return context.Background()
}

func intPtr(v int) *int {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}
