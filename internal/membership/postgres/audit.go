package postgres

import (
	"context"

	"github.com/frahmantamala/hr-management/internal/membership"
	"github.com/jmoiron/sqlx"
)

const auditQuery = `
SELECT t.id AS team_id,
       t.name AS name,
       t.total_members AS stored_members,
       t.member_seed AS seed_members,
       COUNT(e.id) AS live_members
FROM teams t
LEFT JOIN employees e ON e.team_id = t.id
GROUP BY t.id, t.name, t.total_members, t.member_seed
ORDER BY t.id`

// AuditRepository runs the reporting query on the shared sqlx pool.
type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) membership.AuditRepositoryAPI {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Audit(ctx context.Context) ([]membership.TeamAudit, error) {
	var teams []membership.TeamAudit
	if err := r.db.SelectContext(ctx, &teams, auditQuery); err != nil {
		return nil, err
	}
	return teams, nil
}
