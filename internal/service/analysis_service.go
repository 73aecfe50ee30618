package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/liliang-cn/askcontract/internal/domain"
	"github.com/liliang-cn/askcontract/internal/extract"
	"github.com/liliang-cn/askcontract/internal/llm"
	"github.com/liliang-cn/askcontract/internal/parse"
	"github.com/liliang-cn/askcontract/internal/prompt"
	"github.com/liliang-cn/askcontract/internal/repository"
	"go.uber.org/zap"
)

// AnalysisService orchestrates extraction, model calls and persistence for
// uploaded contracts. On success exactly one contract with its analysis is
// persisted; on any failure nothing is.
type AnalysisService struct {
	contractRepo *repository.ContractRepository
	settingsRepo *repository.SettingsRepository
	extractor    *extract.Extractor
	gateway      llm.Gateway
	logger       *zap.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	contractRepo *repository.ContractRepository,
	settingsRepo *repository.SettingsRepository,
	extractor *extract.Extractor,
	gateway llm.Gateway,
	logger *zap.Logger,
) *AnalysisService {
	return &AnalysisService{
		contractRepo: contractRepo,
		settingsRepo: settingsRepo,
		extractor:    extractor,
		gateway:      gateway,
		logger:       logger,
	}
}

// LLMConfig resolves the provider configuration from stored settings. It is
// read once per operation and passed explicitly into every gateway call.
func (s *AnalysisService) LLMConfig() (llm.Config, error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return llm.Config{}, err
	}
	return llm.Config{Provider: settings.Provider, APIKey: settings.APIKey}, nil
}

// Analyze runs the full pipeline for an upload: extract text, analyze,
// categorize, persist. The contract id is assigned before any model call so
// chat grounding never needs a provisional identifier.
func (s *AnalysisService) Analyze(ctx context.Context, file extract.Upload) (*domain.Contract, error) {
	cfg, err := s.LLMConfig()
	if err != nil {
		return nil, err
	}
	// Credential gating precedes all I/O
	if cfg.APIKey == "" {
		return nil, &domain.MissingCredentialsError{}
	}

	fileType := extract.DetectFileType(file.Name)
	if !extract.IsSupported(fileType) {
		return nil, &domain.UnsupportedFormatError{Extension: fileType}
	}

	contract := &domain.Contract{
		ID:         uuid.New().String(),
		Name:       file.Name,
		FileSize:   int64(len(file.Data)),
		Category:   domain.CategoryOther,
		Status:     domain.StatusPending,
		Tags:       []string{},
		UploadedAt: time.Now(),
	}

	// Extraction and the storable encoding are independent
	var text, encoded string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		text, err = s.extractor.Extract(gctx, file, cfg)
		return err
	})
	g.Go(func() error {
		encoded = base64.StdEncoding.EncodeToString(file.Data)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	contract.Content = text
	contract.FileData = encoded

	raw, err := s.gateway.Complete(ctx, prompt.FullAnalysis(text), cfg)
	if err != nil {
		return nil, err
	}
	contract.Analysis = parse.FullAnalysis(raw)

	rawCat, err := s.gateway.Complete(ctx, prompt.Categorize(text), cfg)
	if err != nil {
		return nil, err
	}
	contract.Category = parse.Categorization(rawCat).Category

	if err := s.contractRepo.Create(contract); err != nil {
		return nil, err
	}

	s.logger.Info("contract analyzed",
		zap.String("contract_id", contract.ID),
		zap.String("category", contract.Category),
		zap.Int("risks", len(contract.Analysis.Risks)),
	)
	return contract, nil
}

// DetectRisks runs the adversarial stress-test scan for an upload and
// persists the contract with a risks-only analysis.
func (s *AnalysisService) DetectRisks(ctx context.Context, file extract.Upload) (*domain.Contract, error) {
	cfg, err := s.LLMConfig()
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, &domain.MissingCredentialsError{}
	}

	fileType := extract.DetectFileType(file.Name)
	if !extract.IsSupported(fileType) {
		return nil, &domain.UnsupportedFormatError{Extension: fileType}
	}

	contract := &domain.Contract{
		ID:         uuid.New().String(),
		Name:       file.Name,
		FileSize:   int64(len(file.Data)),
		Category:   domain.CategoryOther,
		Status:     domain.StatusPending,
		Tags:       []string{},
		UploadedAt: time.Now(),
	}

	var text, encoded string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		text, err = s.extractor.Extract(gctx, file, cfg)
		return err
	})
	g.Go(func() error {
		encoded = base64.StdEncoding.EncodeToString(file.Data)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	contract.Content = text
	contract.FileData = encoded

	raw, err := s.gateway.Complete(ctx, prompt.RiskScan(text), cfg)
	if err != nil {
		return nil, err
	}
	risks := parse.Risks(raw)

	contract.Analysis = &domain.Analysis{
		Summary:        fmt.Sprintf("Phân tích rủi ro cho hợp đồng %s", file.Name),
		KeyTerms:       []domain.KeyTerm{},
		ImportantDates: []domain.ImportantDate{},
		Obligations:    []domain.Obligation{},
		Risks:          risks,
		AnalyzedAt:     time.Now(),
	}

	if err := s.contractRepo.Create(contract); err != nil {
		return nil, err
	}

	s.logger.Info("risk scan completed",
		zap.String("contract_id", contract.ID),
		zap.Int("risks", len(risks)),
	)
	return contract, nil
}

// Compare runs a comparison between two stored contracts. The result is
// returned to the caller and not persisted.
func (s *AnalysisService) Compare(ctx context.Context, contract1ID, contract2ID string) (*domain.Comparison, error) {
	cfg, err := s.LLMConfig()
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, &domain.MissingCredentialsError{}
	}

	c1, err := s.contractRepo.Get(contract1ID)
	if err != nil {
		return nil, err
	}
	c2, err := s.contractRepo.Get(contract2ID)
	if err != nil {
		return nil, err
	}
	if c1 == nil || c2 == nil {
		return nil, domain.ErrNotFound
	}

	raw, err := s.gateway.Complete(ctx, prompt.Compare(c1.Content, c2.Content), cfg)
	if err != nil {
		return nil, err
	}

	result := parse.Comparison(raw)
	result.ID = uuid.New().String()
	result.Contract1ID = contract1ID
	result.Contract2ID = contract2ID
	result.ComparedAt = time.Now()
	return &result, nil
}

// RealityCheck analyzes the gap between a stored contract and the situation
// the user describes.
func (s *AnalysisService) RealityCheck(ctx context.Context, contractID string, req *domain.RealityCheckRequest) (*domain.RealityAnalysis, error) {
	cfg, err := s.LLMConfig()
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, &domain.MissingCredentialsError{}
	}

	contract, err := s.contractRepo.Get(contractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, domain.ErrNotFound
	}

	raw, err := s.gateway.Complete(ctx, prompt.RealityGap(contract.Content, req.Description, req.Issues), cfg)
	if err != nil {
		return nil, err
	}

	result := parse.RealityGap(raw)
	return &result, nil
}

// GetContract retrieves a contract by id.
func (s *AnalysisService) GetContract(id string) (*domain.Contract, error) {
	return s.contractRepo.Get(id)
}

// ListContracts lists contracts matching the filter.
func (s *AnalysisService) ListContracts(filter domain.ContractFilter) ([]*domain.Contract, error) {
	return s.contractRepo.List(filter)
}

// UpdateContract changes the mutable category/status fields.
func (s *AnalysisService) UpdateContract(id string, req *domain.UpdateContractRequest) (*domain.Contract, error) {
	return s.contractRepo.Update(id, req)
}

// DeleteContract removes a contract and its dependents.
func (s *AnalysisService) DeleteContract(id string) error {
	return s.contractRepo.Delete(id)
}
