package database

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// HistoryRepository só sabe anexar e ler. Não existe UPDATE nem DELETE
// nesta tabela em lugar nenhum do código: o ledger é imutável.
type HistoryRepository struct {
	DB *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{DB: db}
}

func (r *HistoryRepository) Append(ctx context.Context, entry *entity.HistoryEntry) error {
	err := insertHistoryEntry(ctx, r.DB, entry)
	if err != nil {
		if isForeignKeyViolation(err) {
			return entity.ErrLeadNotFound
		}
		log.Error().Err(err).Str("lead_id", entry.LeadID).Msg("erro crítico no banco ao anexar histórico")
		return err
	}
	return nil
}

func (r *HistoryRepository) ListForLead(ctx context.Context, leadID string) ([]*entity.HistoryEntry, error) {
	query := `
		SELECT id, lead_id, previous_stage, new_stage, actor_id, actor_name, type, note, created_at
		FROM pipeline_history
		WHERE lead_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*entity.HistoryEntry
	for rows.Next() {
		var e entity.HistoryEntry
		var previousStage, newStage, note sql.NullString

		err := rows.Scan(
			&e.ID, &e.LeadID, &previousStage, &newStage,
			&e.ActorID, &e.ActorName, &e.Type, &note, &e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if previousStage.Valid {
			e.PreviousStage = &previousStage.String
		}
		if newStage.Valid {
			e.NewStage = &newStage.String
		}
		e.Note = note.String

		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insertHistoryEntry é compartilhado com o CommitMove do LeadRepository
// para o append entrar na mesma transação do movimento.
func insertHistoryEntry(ctx context.Context, db execer, entry *entity.HistoryEntry) error {
	query := `
		INSERT INTO pipeline_history (id, lead_id, previous_stage, new_stage, actor_id, actor_name, type, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := db.ExecContext(ctx, query,
		entry.ID, entry.LeadID,
		entry.PreviousStage, entry.NewStage,
		entry.ActorID, entry.ActorName,
		string(entry.Type), nullString(entry.Note),
		entry.CreatedAt,
	)

	return err
}
