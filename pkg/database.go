package sdsignals

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
	"gonum.org/v1/gonum/spatial/r3"
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

type StationPositionEntry struct {
	StationID int     `db:"StationID"`
	X         float64 `db:"X"`
	Y         float64 `db:"Y"`
	Z         float64 `db:"Z"`
}

// LoadDetectorGeometry reads the station positions valid at the given GPS
// second.
func LoadDetectorGeometry(db *sqlx.DB, gpsSecond uint32) (DetectorGeometry, error) {
	query := "SELECT StationID, X, Y, Z FROM StationPositions WHERE MinGPS <= ? and MaxGPS >= ? ORDER BY StationID"

	if configuration.Verbosity > 0 {
		logger.Info("Station positions read from DB", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s, GPS second: %d", query, gpsSecond)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query, gpsSecond, gpsSecond)
	if err != nil {
		errMessage := fmt.Errorf("error querying database: %w", err)
		return DetectorGeometry{}, errMessage
	}
	defer rows.Close()

	geometry := NewDetectorGeometry()
	for rows.Next() {
		result := StationPositionEntry{}
		err := rows.StructScan(&result)
		if err != nil {
			errMessage := fmt.Errorf("error scanning DB row: %w", err)
			return DetectorGeometry{}, errMessage
		}
		geometry.AddStation(result.StationID, r3.Vec{X: result.X, Y: result.Y, Z: result.Z})
	}
	if err := rows.Err(); err != nil {
		return DetectorGeometry{}, fmt.Errorf("error iterating DB rows: %w", err)
	}
	if geometry.NStations() == 0 {
		return DetectorGeometry{}, fmt.Errorf("no station positions valid at GPS second %d", gpsSecond)
	}
	return geometry, nil
}
