package migrations

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"open_toilet/internal/models"
)

// Run brings the database schema up to date. Versioned steps recorded in
// schema_migrations run first (each at most once), then AutoMigrate keeps
// the normalized tables current. Must complete before the router accepts
// traffic; it is not safe to run concurrently with live requests.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.SchemaMigration{}); err != nil {
		return err
	}

	if err := apply(db, 1, splitFlatRestrooms); err != nil {
		return err
	}

	return db.AutoMigrate(&models.Location{}, &models.Restroom{}, &models.AccessCode{})
}

// apply runs step unless the version is already recorded as applied.
func apply(db *gorm.DB, version int, step func(*gorm.DB) error) error {
	var applied models.SchemaMigration
	err := db.First(&applied, "version = ?", version).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := step(db); err != nil {
		return err
	}
	return db.Create(&models.SchemaMigration{Version: version, AppliedAt: time.Now()}).Error
}

// legacyRestroom mirrors the original flat schema, where restrooms
// carried their own coordinates and there was no locations table.
type legacyRestroom struct {
	ID        uint
	Name      string
	Latitude  float64
	Longitude float64
	Type      string
	CreatedAt time.Time
}

// legacyAccessCode mirrors the original access_codes table. Its
// table-level UNIQUE(restroom_id, code) clause predates GORM, so the
// table is rebuilt rather than altered in place.
type legacyAccessCode struct {
	ID         uint
	RestroomID uint
	Code       string
	Likes      int
	Dislikes   int
	CreatedAt  time.Time
}

// splitFlatRestrooms migrates a flat restrooms table into the normalized
// location/restroom schema: one Location per distinct exact coordinate
// pair (named after the earliest restroom at that point), restroom rows
// re-inserted with their original id and created_at. The access_codes
// table is rebuilt the same way — renamed aside, recreated from the
// model, rows copied with id and created_at preserved — because the
// original's hand-written DDL cannot be altered in place. Code rows keep
// pointing at the right restrooms since restroom ids are preserved.
// A no-op when the flat shape is not present.
func splitFlatRestrooms(db *gorm.DB) error {
	m := db.Migrator()
	if !m.HasTable("restrooms") ||
		!m.HasColumn("restrooms", "latitude") ||
		m.HasColumn("restrooms", "location_id") {
		return nil
	}

	logrus.Info("migrating flat restrooms table to location/restroom schema")

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Migrator().RenameTable("restrooms", "restrooms_legacy"); err != nil {
			return err
		}
		hadCodes := tx.Migrator().HasTable("access_codes")
		if hadCodes {
			if err := tx.Migrator().RenameTable("access_codes", "access_codes_legacy"); err != nil {
				return err
			}
		}
		if err := tx.AutoMigrate(&models.Location{}, &models.Restroom{}, &models.AccessCode{}); err != nil {
			return err
		}

		var rows []legacyRestroom
		err := tx.Raw(`SELECT id, name, latitude, longitude, type, created_at
			FROM restrooms_legacy ORDER BY created_at, id`).Scan(&rows).Error
		if err != nil {
			return err
		}

		// Rows arrive oldest first, so the first restroom seen at each
		// coordinate pair names the location.
		type point struct{ lat, lng float64 }
		locationIDs := make(map[point]uint)
		for _, row := range rows {
			p := point{row.Latitude, row.Longitude}
			locationID, ok := locationIDs[p]
			if !ok {
				location := models.Location{
					Name:      row.Name,
					Latitude:  row.Latitude,
					Longitude: row.Longitude,
				}
				if err := tx.Create(&location).Error; err != nil {
					return err
				}
				locationID = location.ID
				locationIDs[p] = locationID
			}

			restroom := models.Restroom{
				Model: gorm.Model{
					ID:        row.ID,
					CreatedAt: row.CreatedAt,
					UpdatedAt: row.CreatedAt,
				},
				Name:       row.Name,
				Type:       row.Type,
				LocationID: locationID,
			}
			if err := tx.Create(&restroom).Error; err != nil {
				return err
			}
		}

		if hadCodes {
			var codes []legacyAccessCode
			err := tx.Raw(`SELECT id, restroom_id, code, likes, dislikes, created_at
				FROM access_codes_legacy ORDER BY id`).Scan(&codes).Error
			if err != nil {
				return err
			}
			for _, row := range codes {
				code := models.AccessCode{
					Model: gorm.Model{
						ID:        row.ID,
						CreatedAt: row.CreatedAt,
						UpdatedAt: row.CreatedAt,
					},
					RestroomID: row.RestroomID,
					Code:       row.Code,
					Likes:      row.Likes,
					Dislikes:   row.Dislikes,
				}
				if err := tx.Create(&code).Error; err != nil {
					return err
				}
			}
		}

		// Explicit ids bypass the sequences on Postgres; bump them so new
		// inserts don't collide with preserved ids.
		if tx.Dialector.Name() == "postgres" {
			for _, table := range []string{"restrooms", "access_codes"} {
				err := tx.Exec(`SELECT setval(pg_get_serial_sequence('` + table + `', 'id'),
					(SELECT COALESCE(MAX(id), 1) FROM ` + table + `))`).Error
				if err != nil {
					return err
				}
			}
		}

		if hadCodes {
			if err := tx.Migrator().DropTable("access_codes_legacy"); err != nil {
				return err
			}
		}
		return tx.Migrator().DropTable("restrooms_legacy")
	})
}
