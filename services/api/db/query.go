package db

import (
	"strconv"
	"strings"
	"time"
)

// ResultQuery holds filters for retrieving a zone's evaluations.
type ResultQuery struct {
	ZoneID string
	Limit  int
	Since  *time.Time
	Until  *time.Time
}

const evaluationsBase = `
    SELECT id, zone_id, evaluated_at, result, readings
    FROM stressindex.evaluations
    WHERE zone_id = $1`

func (q ResultQuery) build() (string, []any) {
	args := []any{q.ZoneID}
	var sql strings.Builder
	sql.WriteString(evaluationsBase)

	if q.Since != nil {
		args = append(args, *q.Since)
		sql.WriteString(" AND evaluated_at >= $" + strconv.Itoa(len(args)))
	}
	if q.Until != nil {
		args = append(args, *q.Until)
		sql.WriteString(" AND evaluated_at <= $" + strconv.Itoa(len(args)))
	}
	sql.WriteString(" ORDER BY evaluated_at DESC")
	if q.Limit > 0 {
		args = append(args, q.Limit)
		sql.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}
	return sql.String(), args
}
