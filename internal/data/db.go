package data

import (
	"context"
	"database/sql"
	"time"

	"github.com/ansel1/merry"
	"github.com/fpawel/antenna/internal/antdata"
	"github.com/fpawel/antenna/internal/pkg"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	PlaneHorizontal = "horizontal"
	PlaneVertical   = "vertical"
)

func Open(filename string) (*sqlx.DB, error) {
	db, err := pkg.OpenSqliteDBx(filename)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(SQLCreate); err != nil {
		_ = db.Close()
		return nil, merry.Prependf(err, "create schema of %s", filename)
	}
	return db, nil
}

type Antenna struct {
	AntennaID    int64             `db:"antenna_id"`
	UUID         string            `db:"uuid"`
	CreatedAt    time.Time         `db:"created_at"`
	Name         string            `db:"name"`
	Make         string            `db:"make"`
	Frequency    antdata.NullFloat `db:"frequency"`
	HWidth       antdata.NullFloat `db:"h_width"`
	VWidth       antdata.NullFloat `db:"v_width"`
	FrontToBack  antdata.NullFloat `db:"front_to_back"`
	Gain         float64           `db:"gain"`
	Tilt         float64           `db:"tilt"`
	Polarization string            `db:"polarization"`
	Comment      string            `db:"comment"`
}

type patternPoint struct {
	Plane string            `db:"plane"`
	Angle int               `db:"angle"`
	Loss  antdata.NullFloat `db:"loss"`
}

// SaveSpecs stores the record with both patterns and returns its new id.
func SaveSpecs(ctx context.Context, db *sqlx.DB, s antdata.Specs) (int64, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	antennaID, err := saveSpecs(ctx, tx, s)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	return antennaID, tx.Commit()
}

func saveSpecs(ctx context.Context, tx *sqlx.Tx, s antdata.Specs) (int64, error) {
	r, err := tx.NamedExecContext(ctx, `
INSERT INTO antenna(uuid, name, make, frequency, h_width, v_width, front_to_back, gain, tilt, polarization, comment)
VALUES (:uuid, :name, :make, :frequency, :h_width, :v_width, :front_to_back, :gain, :tilt, :polarization, :comment)`,
		Antenna{
			UUID:         uuid.New().String(),
			Name:         s.Name,
			Make:         s.Make,
			Frequency:    s.Frequency,
			HWidth:       s.HWidth,
			VWidth:       s.VWidth,
			FrontToBack:  s.FrontToBack,
			Gain:         s.Gain,
			Tilt:         s.Tilt,
			Polarization: s.Polarization,
			Comment:      s.Comment,
		})
	if err != nil {
		return 0, err
	}
	antennaID, err := pkg.SqlGetNewInsertedID(r)
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PreparexContext(ctx,
		`INSERT INTO pattern(antenna_id, plane, angle, loss) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = stmt.Close() }()

	for _, x := range []struct {
		plane   string
		pattern antdata.Pattern
	}{
		{PlaneHorizontal, s.Horizontal},
		{PlaneVertical, s.Vertical},
	} {
		for _, p := range x.pattern {
			if _, err := stmt.ExecContext(ctx, antennaID, x.plane, p.Angle, p.Loss); err != nil {
				return 0, merry.Prependf(err, "%s %d", x.plane, p.Angle)
			}
		}
	}
	return antennaID, nil
}

func ListAntennas(ctx context.Context, db *sqlx.DB) (xs []Antenna, err error) {
	err = db.SelectContext(ctx, &xs, `SELECT * FROM antenna ORDER BY antenna_id`)
	return
}

func GetAntenna(ctx context.Context, db *sqlx.DB, antennaID int64) (x Antenna, err error) {
	err = db.GetContext(ctx, &x, `SELECT * FROM antenna WHERE antenna_id = ?`, antennaID)
	if err == sql.ErrNoRows {
		err = merry.Errorf("antenna %d not found", antennaID)
	}
	return
}

func GetAntennaID(ctx context.Context, db *sqlx.DB, antennaUUID string) (antennaID int64, err error) {
	err = db.GetContext(ctx, &antennaID, `SELECT antenna_id FROM antenna WHERE uuid = ?`, antennaUUID)
	if err == sql.ErrNoRows {
		err = merry.Errorf("antenna %s not found", antennaUUID)
	}
	return
}

func GetLastAntennaID(ctx context.Context, db *sqlx.DB) (antennaID int64, err error) {
	err = db.GetContext(ctx, &antennaID, `SELECT antenna_id FROM last_antenna`)
	if err == sql.ErrNoRows {
		err = merry.New("no antennas saved")
	}
	return
}

// GetSpecs restores the record saved by SaveSpecs.
func GetSpecs(ctx context.Context, db *sqlx.DB, antennaID int64) (antdata.Specs, error) {
	a, err := GetAntenna(ctx, db, antennaID)
	if err != nil {
		return antdata.Specs{}, err
	}
	s := antdata.Specs{
		Name:         a.Name,
		Make:         a.Make,
		Frequency:    a.Frequency,
		HWidth:       a.HWidth,
		VWidth:       a.VWidth,
		FrontToBack:  a.FrontToBack,
		Gain:         a.Gain,
		Tilt:         a.Tilt,
		Polarization: a.Polarization,
		Comment:      a.Comment,
	}
	var xs []patternPoint
	if err := db.SelectContext(ctx, &xs,
		`SELECT plane, angle, loss FROM pattern WHERE antenna_id = ? ORDER BY plane, angle`, antennaID); err != nil {
		return s, err
	}
	for _, x := range xs {
		p := antdata.Point{Angle: x.Angle, Loss: x.Loss}
		if x.Plane == PlaneHorizontal {
			s.Horizontal = append(s.Horizontal, p)
		} else {
			s.Vertical = append(s.Vertical, p)
		}
	}
	return s, nil
}

func DeleteAntenna(ctx context.Context, db *sqlx.DB, antennaID int64) error {
	r, err := db.ExecContext(ctx, `DELETE FROM antenna WHERE antenna_id = ?`, antennaID)
	if err != nil {
		return err
	}
	n, err := r.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return merry.Errorf("expected 1 row affected, got %d", n)
	}
	return nil
}
