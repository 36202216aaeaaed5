package db

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blakelange123/vibelux-stressindex/internal/stress"
	"github.com/blakelange123/vibelux-stressindex/services/watcher/internal/models"
)

func TestRowArgs(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	snap := stress.Snapshot{Plant: stress.PlantState{Stage: stress.Seedling, SapFlow: 12}}
	row := models.EvaluationRow{
		ID:       uuid.New(),
		ZoneID:   "a1",
		TS:       at,
		Snapshot: snap,
		Result:   stress.Evaluate(snap, at),
	}

	args, err := rowArgs(row)
	require.NoError(t, err)
	require.Len(t, args, 15)
	assert.Equal(t, row.ID, args[0])
	assert.Equal(t, "a1", args[1])
	assert.Equal(t, at, args[2])
	assert.Equal(t, "seedling", args[3])
	assert.Equal(t, row.Result.Overall, args[4])

	var readings stress.Snapshot
	require.NoError(t, json.Unmarshal(args[14].([]byte), &readings))
	assert.Equal(t, snap, readings)
}
