package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, name, phone, email, company, segment,
	temperature, lead_source,
	current_stage, stage_updated_at,
	potential_value, sale_value, pending_value, negotiation_type, payment_terms,
	payment_confirmed, payment_confirmed_at,
	owner_id, owner_name, closer_owner_id, closer_owner_name,
	created_at, updated_at
`

func (r *LeadRepository) Create(ctx context.Context, lead *entity.PipelineLead) error {
	query := `
		INSERT INTO pipeline_leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID, lead.Name, lead.Phone,
		nullString(lead.Email), nullString(lead.Company), nullString(lead.Segment),
		lead.Temperature, nullString(lead.LeadSource),
		lead.CurrentStage, lead.StageUpdatedAt,
		lead.PotentialValue, lead.SaleValue, lead.PendingValue,
		nullString(lead.NegotiationType), nullString(lead.PaymentTerms),
		lead.PaymentConfirmed, lead.PaymentConfirmedAt,
		lead.OwnerID, lead.OwnerName,
		nullString(lead.CloserOwnerID), nullString(lead.CloserOwnerName),
		lead.CreatedAt, lead.UpdatedAt,
	)

	if err != nil {
		log.Error().Err(err).Str("lead_id", lead.ID).Msg("erro crítico no banco ao criar lead")
		return err
	}

	return nil
}

// Save grava os campos editáveis. current_stage fica de fora de
// propósito: estágio só muda no CommitMove.
func (r *LeadRepository) Save(ctx context.Context, lead *entity.PipelineLead) error {
	query := `
		UPDATE pipeline_leads SET
			name = $2, phone = $3, email = $4, company = $5, segment = $6,
			temperature = $7, lead_source = $8,
			potential_value = $9, payment_terms = $10,
			updated_at = $11
		WHERE id = $1
	`

	result, err := r.DB.ExecContext(ctx, query,
		lead.ID, lead.Name, lead.Phone,
		nullString(lead.Email), nullString(lead.Company), nullString(lead.Segment),
		lead.Temperature, nullString(lead.LeadSource),
		lead.PotentialValue, nullString(lead.PaymentTerms),
		lead.UpdatedAt,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.ErrLeadNotFound
	}

	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM pipeline_leads WHERE id = $1`, id)
	return err
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.PipelineLead, error) {
	query := `SELECT ` + leadColumns + ` FROM pipeline_leads WHERE id = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return lead, nil
}

func (r *LeadRepository) ListAll(ctx context.Context) ([]*entity.PipelineLead, error) {
	query := `SELECT ` + leadColumns + ` FROM pipeline_leads ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.PipelineLead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

// CommitMove é a unidade atômica do motor de transição: atualiza o lead
// com a precondição de estágio e anexa a entrada do ledger na mesma
// transação. Zero linhas afetadas = outro ator moveu primeiro.
func (r *LeadRepository) CommitMove(ctx context.Context, lead *entity.PipelineLead, fromStage string, entry *entity.HistoryEntry) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	update := `
		UPDATE pipeline_leads SET
			current_stage = $3, stage_updated_at = $4,
			sale_value = $5, pending_value = $6,
			negotiation_type = $7, payment_terms = $8,
			payment_confirmed = $9, payment_confirmed_at = $10,
			closer_owner_id = $11, closer_owner_name = $12,
			updated_at = $13
		WHERE id = $1 AND current_stage = $2
	`

	result, err := tx.ExecContext(ctx, update,
		lead.ID, fromStage,
		lead.CurrentStage, lead.StageUpdatedAt,
		lead.SaleValue, lead.PendingValue,
		nullString(lead.NegotiationType), nullString(lead.PaymentTerms),
		lead.PaymentConfirmed, lead.PaymentConfirmedAt,
		nullString(lead.CloserOwnerID), nullString(lead.CloserOwnerName),
		lead.UpdatedAt,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Ou o lead não existe mais, ou o estágio mudou embaixo de nós.
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM pipeline_leads WHERE id = $1)`, lead.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return entity.ErrLeadNotFound
		}
		return entity.ErrStageConflict
	}

	if err := insertHistoryEntry(ctx, tx, entry); err != nil {
		return err
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.PipelineLead, error) {
	var lead entity.PipelineLead
	var email, company, segment, leadSource sql.NullString
	var negotiationType, paymentTerms sql.NullString
	var closerOwnerID, closerOwnerName sql.NullString
	var paymentConfirmedAt sql.NullTime

	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Phone, &email, &company, &segment,
		&lead.Temperature, &leadSource,
		&lead.CurrentStage, &lead.StageUpdatedAt,
		&lead.PotentialValue, &lead.SaleValue, &lead.PendingValue,
		&negotiationType, &paymentTerms,
		&lead.PaymentConfirmed, &paymentConfirmedAt,
		&lead.OwnerID, &lead.OwnerName, &closerOwnerID, &closerOwnerName,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Email = email.String
	lead.Company = company.String
	lead.Segment = segment.String
	lead.LeadSource = leadSource.String
	lead.NegotiationType = negotiationType.String
	lead.PaymentTerms = paymentTerms.String
	lead.CloserOwnerID = closerOwnerID.String
	lead.CloserOwnerName = closerOwnerName.String
	if paymentConfirmedAt.Valid {
		t := paymentConfirmedAt.Time
		lead.PaymentConfirmedAt = &t
	}

	return &lead, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
