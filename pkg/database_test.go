package sdsignals

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDatabase(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	db.MustExec(`CREATE TABLE StationPositions (
		StationID INTEGER, X REAL, Y REAL, Z REAL, MinGPS INTEGER, MaxGPS INTEGER)`)
	rows := []struct {
		id         int
		x, y, z    float64
		minG, maxG int64
	}{
		{101, 100, 200, 1400, 0, 1000000000},
		{101, 105, 200, 1400, 1000000001, 2000000000},
		{102, 1600, 0, 1420, 0, 2000000000},
		{103, -1500, 50, 1380, 1500000000, 2000000000},
	}
	for _, r := range rows {
		db.MustExec("INSERT INTO StationPositions VALUES (?, ?, ?, ?, ?, ?)",
			r.id, r.x, r.y, r.z, r.minG, r.maxG)
	}
	return db
}

func TestLoadDetectorGeometry(t *testing.T) {
	db := openTestDatabase(t)

	geometry, err := LoadDetectorGeometry(db, 1200000000)

	require.NoError(t, err)
	assert.Equal(t, []int{101, 102}, geometry.StationIDs())
	assert.Equal(t, 105., geometry.Stations[101].X)
	assert.Equal(t, 1420., geometry.Stations[102].Z)
}

func TestLoadDetectorGeometry_Validity(t *testing.T) {
	db := openTestDatabase(t)

	geometry, err := LoadDetectorGeometry(db, 1600000000)

	require.NoError(t, err)
	assert.Equal(t, []int{101, 102, 103}, geometry.StationIDs())
}

func TestLoadDetectorGeometry_NoStations(t *testing.T) {
	db := openTestDatabase(t)

	_, err := LoadDetectorGeometry(db, 2100000000)

	assert.ErrorContains(t, err, "no station positions")
}
