package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   uint
	Name string
}

func TestInitDB_SQLite(t *testing.T) {
	db, err := InitDB(DriverSQLite, ":memory:", &widget{})
	require.NoError(t, err)

	require.NoError(t, db.Create(&widget{Name: "a"}).Error)

	var got widget
	require.NoError(t, db.First(&got).Error)
	assert.Equal(t, "a", got.Name)
}

func TestInitDB_UnknownDriver(t *testing.T) {
	_, err := InitDB("oracle", "dsn")
	assert.Error(t, err)
}
