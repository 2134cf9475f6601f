package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/RibbonBlockchain/TradelineAI/internal/models"
	"github.com/lib/pq"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetTradeline retrieves a tradeline by id. A missing tradeline returns
// (nil, nil) so callers can treat it as "not applicable" rather than an
// error.
func (r *Repository) GetTradeline(id int64) (*models.Tradeline, error) {
	tradeline := &models.Tradeline{}
	query := `
		SELECT id, name, issuer, account_type, credit_limit, available_limit, interest_rate, is_active, created_at
		FROM credit.tradelines
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&tradeline.ID, &tradeline.Name, &tradeline.Issuer, &tradeline.AccountType,
			&tradeline.CreditLimit, &tradeline.AvailableLimit, &tradeline.InterestRate,
			&tradeline.IsActive, &tradeline.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tradeline: %w", err)
	}
	return tradeline, nil
}

// ListActiveTradelines retrieves all active tradelines
func (r *Repository) ListActiveTradelines() ([]models.Tradeline, error) {
	query := `
		SELECT id, name, issuer, account_type, credit_limit, available_limit, interest_rate, is_active, created_at
		FROM credit.tradelines
		WHERE is_active = TRUE
		ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tradelines: %w", err)
	}
	defer rows.Close()

	var tradelines []models.Tradeline
	for rows.Next() {
		var t models.Tradeline
		if err := rows.Scan(&t.ID, &t.Name, &t.Issuer, &t.AccountType, &t.CreditLimit,
			&t.AvailableLimit, &t.InterestRate, &t.IsActive, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tradeline: %w", err)
		}
		tradelines = append(tradelines, t)
	}
	return tradelines, rows.Err()
}

// ActiveAllocationsByTradeline retrieves the active allocations for a tradeline
func (r *Repository) ActiveAllocationsByTradeline(tradelineID int64) ([]models.Allocation, error) {
	query := `
		SELECT id, agent_id, tradeline_id, credit_limit, is_active, allocation_date
		FROM credit.allocations
		WHERE tradeline_id = $1 AND is_active = TRUE`
	rows, err := r.db.Query(query, tradelineID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	var allocations []models.Allocation
	for rows.Next() {
		var a models.Allocation
		if err := rows.Scan(&a.ID, &a.AgentID, &a.TradelineID, &a.CreditLimit,
			&a.IsActive, &a.AllocationDate); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

// AllocationsByAgent retrieves an agent's allocations with the joined
// tradeline attributes needed for credit profile building
func (r *Repository) AllocationsByAgent(agentID int64) ([]models.Allocation, error) {
	query := `
		SELECT a.id, a.agent_id, a.tradeline_id, a.credit_limit, a.is_active, a.allocation_date,
		       t.account_type, t.issuer
		FROM credit.allocations a
		JOIN credit.tradelines t ON t.id = a.tradeline_id
		WHERE a.agent_id = $1`
	rows, err := r.db.Query(query, agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list agent allocations: %w", err)
	}
	defer rows.Close()

	var allocations []models.Allocation
	for rows.Next() {
		var a models.Allocation
		if err := rows.Scan(&a.ID, &a.AgentID, &a.TradelineID, &a.CreditLimit, &a.IsActive,
			&a.AllocationDate, &a.AccountType, &a.Issuer); err != nil {
			return nil, fmt.Errorf("failed to scan agent allocation: %w", err)
		}
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

// CompletedTransactionsByAllocations retrieves the completed transactions
// across a set of allocations
func (r *Repository) CompletedTransactionsByAllocations(allocationIDs []int64) ([]models.Transaction, error) {
	query := `
		SELECT id, agent_id, allocation_id, amount, merchant, COALESCE(description, ''), status, transaction_date, COALESCE(balance_after, 0)
		FROM credit.transactions
		WHERE allocation_id = ANY($1) AND status = $2
		ORDER BY transaction_date`
	rows, err := r.db.Query(query, pq.Array(allocationIDs), models.TransactionCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// TransactionsByAgent retrieves all transactions made by an agent
func (r *Repository) TransactionsByAgent(agentID int64) ([]models.Transaction, error) {
	query := `
		SELECT id, agent_id, allocation_id, amount, merchant, COALESCE(description, ''), status, transaction_date, COALESCE(balance_after, 0)
		FROM credit.transactions
		WHERE agent_id = $1
		ORDER BY transaction_date`
	rows, err := r.db.Query(query, agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list agent transactions: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.AgentID, &t.AllocationID, &t.Amount, &t.Merchant,
			&t.Description, &t.Status, &t.TransactionDate, &t.BalanceAfter); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// RepaymentsByAllocations retrieves repayments in the given statuses across
// a set of allocations
func (r *Repository) RepaymentsByAllocations(allocationIDs []int64, statuses []string) ([]models.Repayment, error) {
	query := `
		SELECT id, agent_id, allocation_id, amount, due_date, payment_date, status, COALESCE(description, '')
		FROM credit.repayments
		WHERE allocation_id = ANY($1) AND status = ANY($2)
		ORDER BY due_date`
	rows, err := r.db.Query(query, pq.Array(allocationIDs), pq.Array(statuses))
	if err != nil {
		return nil, fmt.Errorf("failed to list repayments: %w", err)
	}
	defer rows.Close()
	return scanRepayments(rows)
}

// RepaymentsByAgent retrieves all repayments owed by an agent
func (r *Repository) RepaymentsByAgent(agentID int64) ([]models.Repayment, error) {
	query := `
		SELECT id, agent_id, allocation_id, amount, due_date, payment_date, status, COALESCE(description, '')
		FROM credit.repayments
		WHERE agent_id = $1
		ORDER BY due_date`
	rows, err := r.db.Query(query, agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list agent repayments: %w", err)
	}
	defer rows.Close()
	return scanRepayments(rows)
}

// ScheduledRepayments retrieves all repayments still in scheduled status
func (r *Repository) ScheduledRepayments() ([]models.Repayment, error) {
	query := `
		SELECT id, agent_id, allocation_id, amount, due_date, payment_date, status, COALESCE(description, '')
		FROM credit.repayments
		WHERE status = $1
		ORDER BY due_date`
	rows, err := r.db.Query(query, models.RepaymentScheduled)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled repayments: %w", err)
	}
	defer rows.Close()
	return scanRepayments(rows)
}

func scanRepayments(rows *sql.Rows) ([]models.Repayment, error) {
	var repayments []models.Repayment
	for rows.Next() {
		var rep models.Repayment
		if err := rows.Scan(&rep.ID, &rep.AgentID, &rep.AllocationID, &rep.Amount,
			&rep.DueDate, &rep.PaymentDate, &rep.Status, &rep.Description); err != nil {
			return nil, fmt.Errorf("failed to scan repayment: %w", err)
		}
		repayments = append(repayments, rep)
	}
	return repayments, rows.Err()
}

// UpdateRepaymentStatus updates the status of a repayment
func (r *Repository) UpdateRepaymentStatus(id int64, status string) error {
	query := `UPDATE credit.repayments SET status = $1 WHERE id = $2`
	if _, err := r.db.Exec(query, status, id); err != nil {
		return fmt.Errorf("failed to update repayment status: %w", err)
	}
	return nil
}

// CreatePerformanceRecord appends a new performance snapshot. Prior records
// are never updated.
func (r *Repository) CreatePerformanceRecord(rec *models.PerformanceRecord) error {
	query := `
		INSERT INTO credit.performance_records (
			tradeline_id, record_date, current_balance, available_credit, utilization_rate,
			transaction_count, transaction_volume, avg_transaction_amount,
			total_repayments, repayments_on_time, repayments_late, payment_ratio,
			risk_score, days_delinquent, interest_accrued)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`
	err := r.db.QueryRow(query,
		rec.TradelineID, rec.RecordDate, rec.CurrentBalance, rec.AvailableCredit, rec.UtilizationRate,
		rec.TransactionCount, rec.TransactionVolume, rec.AvgTransactionAmount,
		rec.TotalRepayments, rec.RepaymentsOnTime, rec.RepaymentsLate, rec.PaymentRatio,
		rec.RiskScore, rec.DaysDelinquent, rec.InterestAccrued).
		Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("failed to create performance record: %w", err)
	}
	return nil
}

// PerformanceRecordsByTradeline retrieves the snapshot history for a
// tradeline, most recent first
func (r *Repository) PerformanceRecordsByTradeline(tradelineID int64) ([]models.PerformanceRecord, error) {
	query := `
		SELECT id, tradeline_id, record_date, current_balance, available_credit, utilization_rate,
		       transaction_count, transaction_volume, avg_transaction_amount,
		       total_repayments, repayments_on_time, repayments_late, payment_ratio,
		       risk_score, days_delinquent, interest_accrued
		FROM credit.performance_records
		WHERE tradeline_id = $1
		ORDER BY record_date DESC`
	rows, err := r.db.Query(query, tradelineID)
	if err != nil {
		return nil, fmt.Errorf("failed to list performance records: %w", err)
	}
	defer rows.Close()

	var records []models.PerformanceRecord
	for rows.Next() {
		var rec models.PerformanceRecord
		if err := rows.Scan(&rec.ID, &rec.TradelineID, &rec.RecordDate, &rec.CurrentBalance,
			&rec.AvailableCredit, &rec.UtilizationRate, &rec.TransactionCount,
			&rec.TransactionVolume, &rec.AvgTransactionAmount, &rec.TotalRepayments,
			&rec.RepaymentsOnTime, &rec.RepaymentsLate, &rec.PaymentRatio,
			&rec.RiskScore, &rec.DaysDelinquent, &rec.InterestAccrued); err != nil {
			return nil, fmt.Errorf("failed to scan performance record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetAgent retrieves an agent by id. A missing agent returns (nil, nil).
func (r *Repository) GetAgent(id int64) (*models.Agent, error) {
	agent := &models.Agent{}
	var history sql.NullString
	query := `
		SELECT id, name, COALESCE(description, ''), COALESCE(purpose, ''), COALESCE(risk_profile, ''),
		       is_active, created_at, credit_score, credit_score_updated, credit_score_history
		FROM credit.agents
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&agent.ID, &agent.Name, &agent.Description, &agent.Purpose, &agent.RiskProfile,
			&agent.IsActive, &agent.CreatedAt, &agent.CreditScore, &agent.CreditScoreUpdated, &history)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}
	agent.CreditScoreHistory = history.String
	return agent, nil
}

// UpdateAgentCreditScore applies update to the agent row inside a
// transaction holding a row lock, so concurrent score updates serialize
// instead of losing history entries. A missing agent returns (nil, nil).
func (r *Repository) UpdateAgentCreditScore(ctx context.Context, agentID int64, update func(agent *models.Agent) error) (*models.Agent, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	agent := &models.Agent{}
	var history sql.NullString
	query := `
		SELECT id, name, COALESCE(description, ''), COALESCE(purpose, ''), COALESCE(risk_profile, ''),
		       is_active, created_at, credit_score, credit_score_updated, credit_score_history
		FROM credit.agents
		WHERE id = $1
		FOR UPDATE`
	err = tx.QueryRowContext(ctx, query, agentID).
		Scan(&agent.ID, &agent.Name, &agent.Description, &agent.Purpose, &agent.RiskProfile,
			&agent.IsActive, &agent.CreatedAt, &agent.CreditScore, &agent.CreditScoreUpdated, &history)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock agent: %w", err)
	}
	agent.CreditScoreHistory = history.String

	if err := update(agent); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE credit.agents
		SET credit_score = $1, credit_score_updated = $2, credit_score_history = $3
		WHERE id = $4`,
		agent.CreditScore, agent.CreditScoreUpdated, agent.CreditScoreHistory, agent.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update agent credit score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit credit score update: %w", err)
	}
	return agent, nil
}
