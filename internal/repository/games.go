package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/novafree/nova-server-go/internal/game"
)

// ErrNotFound is returned when a game record does not exist.
var ErrNotFound = errors.New("game record not found")

// GameRepository stores serialized game snapshots, one row per game.
type GameRepository struct {
	db *DB
}

// NewGameRepository creates a GameRepository.
func NewGameRepository(db *DB) *GameRepository {
	return &GameRepository{db: db}
}

// Save upserts a game snapshot.
func (r *GameRepository) Save(ctx context.Context, v *game.GameView) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling game %s: %w", v.GameID, err)
	}
	_, err = r.db.pool.Exec(ctx, `
		INSERT INTO games (game_id, round, phase, state, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (game_id) DO UPDATE
		SET round = EXCLUDED.round,
		    phase = EXCLUDED.phase,
		    state = EXCLUDED.state,
		    updated_at = now()`,
		v.GameID, v.Round, v.Phase, payload)
	if err != nil {
		return fmt.Errorf("saving game %s: %w", v.GameID, err)
	}
	r.db.logger.Debug("game snapshot saved",
		zap.String("game_id", v.GameID),
		zap.Int("round", v.Round),
		zap.String("phase", v.Phase),
	)
	return nil
}

// Load returns the stored snapshot of one game.
func (r *GameRepository) Load(ctx context.Context, gameID string) (*game.GameView, error) {
	var payload []byte
	err := r.db.pool.QueryRow(ctx,
		`SELECT state FROM games WHERE game_id = $1`, gameID,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading game %s: %w", gameID, err)
	}
	var v game.GameView
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, fmt.Errorf("unmarshaling game %s: %w", gameID, err)
	}
	return &v, nil
}

// ListUnfinished returns the IDs of games that have not reached the final
// tally, for restoring on server start.
func (r *GameRepository) ListUnfinished(ctx context.Context) ([]string, error) {
	rows, err := r.db.pool.Query(ctx,
		`SELECT game_id FROM games WHERE phase <> 'FINISHED' ORDER BY game_id`)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning game id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Delete removes a game record.
func (r *GameRepository) Delete(ctx context.Context, gameID string) error {
	_, err := r.db.pool.Exec(ctx, `DELETE FROM games WHERE game_id = $1`, gameID)
	if err != nil {
		return fmt.Errorf("deleting game %s: %w", gameID, err)
	}
	return nil
}
