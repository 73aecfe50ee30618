package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/liliang-cn/askcontract/internal/domain"
)

// ContractRepository handles contract and analysis persistence
type ContractRepository struct {
	db *DB
}

// NewContractRepository creates a new contract repository
func NewContractRepository(db *DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// Create persists a contract and, when present, its analysis in one
// transaction. Nothing is written if any step fails.
func (r *ContractRepository) Create(contract *domain.Contract) error {
	if contract.ID == "" {
		contract.ID = uuid.New().String()
	}
	if contract.UploadedAt.IsZero() {
		contract.UploadedAt = time.Now()
	}

	tagsJSON, _ := json.Marshal(contract.Tags)

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO contracts (id, name, content, file_data, file_size, category, status, tags, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, contract.ID, contract.Name, contract.Content, contract.FileData, contract.FileSize,
		contract.Category, contract.Status, string(tagsJSON), contract.UploadedAt)
	if err != nil {
		return err
	}

	if contract.Analysis != nil {
		if err := saveAnalysisTx(tx, contract.ID, contract.Analysis); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveAnalysis attaches an analysis to a contract, replacing any prior one.
func (r *ContractRepository) SaveAnalysis(contractID string, analysis *domain.Analysis) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := saveAnalysisTx(tx, contractID, analysis); err != nil {
		return err
	}
	return tx.Commit()
}

func saveAnalysisTx(tx *sql.Tx, contractID string, analysis *domain.Analysis) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT INTO analyses (contract_id, payload, analyzed_at)
		VALUES (?, ?, ?)
		ON CONFLICT(contract_id) DO UPDATE SET payload = excluded.payload, analyzed_at = excluded.analyzed_at
	`, contractID, string(payload), analysis.AnalyzedAt)
	return err
}

// Get retrieves a contract with its analysis, or nil when absent.
func (r *ContractRepository) Get(id string) (*domain.Contract, error) {
	row := r.db.QueryRow(`
		SELECT c.id, c.name, c.content, c.file_data, c.file_size, c.category, c.status, c.tags, c.uploaded_at, a.payload
		FROM contracts c
		LEFT JOIN analyses a ON a.contract_id = c.id
		WHERE c.id = ?
	`, id)

	contract, err := scanContract(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return contract, nil
}

// List retrieves contracts matching the filter, newest first.
func (r *ContractRepository) List(filter domain.ContractFilter) ([]*domain.Contract, error) {
	query := `
		SELECT c.id, c.name, c.content, c.file_data, c.file_size, c.category, c.status, c.tags, c.uploaded_at, a.payload
		FROM contracts c
		LEFT JOIN analyses a ON a.contract_id = c.id
	`
	var conds []string
	var args []any
	if filter.Category != "" {
		conds = append(conds, "c.category = ?")
		args = append(args, filter.Category)
	}
	if filter.Status != "" {
		conds = append(conds, "c.status = ?")
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		conds = append(conds, "c.name LIKE ?")
		args = append(args, "%"+filter.Search+"%")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY c.uploaded_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []*domain.Contract
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, contract)
	}
	return contracts, rows.Err()
}

// Update changes the mutable category and status fields.
func (r *ContractRepository) Update(id string, req *domain.UpdateContractRequest) (*domain.Contract, error) {
	contract, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, domain.ErrNotFound
	}

	if req.Category != "" {
		if !domain.ValidCategory(req.Category) {
			return nil, fmt.Errorf("%w: invalid category %q", domain.ErrInvalidRequest, req.Category)
		}
		contract.Category = req.Category
	}
	if req.Status != "" {
		if !domain.ValidStatus(req.Status) {
			return nil, fmt.Errorf("%w: invalid status %q", domain.ErrInvalidRequest, req.Status)
		}
		contract.Status = req.Status
	}

	_, err = r.db.Exec(`UPDATE contracts SET category = ?, status = ? WHERE id = ?`,
		contract.Category, contract.Status, id)
	if err != nil {
		return nil, err
	}
	return contract, nil
}

// Delete removes a contract. The analysis, session and messages cascade.
func (r *ContractRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM contracts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContract(row rowScanner) (*domain.Contract, error) {
	contract := &domain.Contract{}
	var fileData, tagsJSON, analysisJSON sql.NullString

	err := row.Scan(&contract.ID, &contract.Name, &contract.Content, &fileData, &contract.FileSize,
		&contract.Category, &contract.Status, &tagsJSON, &contract.UploadedAt, &analysisJSON)
	if err != nil {
		return nil, err
	}

	if fileData.Valid {
		contract.FileData = fileData.String
	}
	if tagsJSON.Valid && tagsJSON.String != "" {
		json.Unmarshal([]byte(tagsJSON.String), &contract.Tags)
	}
	if analysisJSON.Valid && analysisJSON.String != "" {
		var analysis domain.Analysis
		if err := json.Unmarshal([]byte(analysisJSON.String), &analysis); err == nil {
			contract.Analysis = &analysis
		}
	}
	return contract, nil
}
