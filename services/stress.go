package services

import (
	"context"
	"fmt"

	"github.com/LovationAdmin/stress-api/models"
)

// DailyFinancialCap is how many leading transactions the daily financial
// analysis looks at.
const DailyFinancialCap = 10

// StressService composes ingestion, classification and narrative assessment.
// It holds no per-request state and is safe for concurrent use.
type StressService struct {
	TransactionsPath string
	DefaultUserID    int

	Health     HealthLoader
	Assessor   NarrativeAssessor
	Classifier NarrativeClassifier
}

func NewStressService(transactionsPath string, defaultUserID int, health HealthLoader, assessor NarrativeAssessor, classifier NarrativeClassifier) *StressService {
	if classifier == nil {
		classifier = NewKeywordClassifier()
	}
	return &StressService{
		TransactionsPath: transactionsPath,
		DefaultUserID:    defaultUserID,
		Health:           health,
		Assessor:         assessor,
		Classifier:       classifier,
	}
}

func (s *StressService) userID(override int) int {
	if override > 0 {
		return override
	}
	return s.DefaultUserID
}

// AnalyzeStress asks for a narrative assessment of the transactions and
// classifies the whole health window of the user.
func (s *StressService) AnalyzeStress(ctx context.Context, userID int) (*models.StressAnalysis, error) {
	transactions, err := LoadTransactions(s.TransactionsPath)
	if err != nil {
		return nil, err
	}

	series, err := s.Health.LoadHealthMetrics(ctx, s.userID(userID))
	if err != nil {
		return nil, err
	}

	narrative, err := s.Assessor.Assess(ctx, BuildFinancialPrompt(transactions))
	if err != nil {
		return nil, err
	}

	mental, err := ClassifyHealthWindow(series.Window())
	if err != nil {
		return nil, fmt.Errorf("classify health window: %w", err)
	}

	return &models.StressAnalysis{
		FinancialStress: s.Classifier.Classify(narrative),
		MentalStress:    mental,
	}, nil
}

// DailyHealthStress classifies each day on its own, in service order.
func (s *StressService) DailyHealthStress(ctx context.Context, userID int) ([]models.DailyStressResult, error) {
	series, err := s.Health.LoadHealthMetrics(ctx, s.userID(userID))
	if err != nil {
		return nil, err
	}

	results := make([]models.DailyStressResult, 0, series.Len())
	for i := 0; i < series.Len(); i++ {
		levels, err := ClassifyHealthWindow(series.Day(i))
		if err != nil {
			return nil, fmt.Errorf("classify day %d: %w", i, err)
		}
		results = append(results, models.DailyStressResult{
			Date:         series.Date[i],
			StressLevels: levels,
		})
	}
	return results, nil
}

// DailyFinancialStress classifies the first DailyFinancialCap transactions
// individually, in file order.
func (s *StressService) DailyFinancialStress(ctx context.Context) ([]models.DailyFinancialStressResult, error) {
	transactions, err := LoadTransactions(s.TransactionsPath)
	if err != nil {
		return nil, err
	}

	if len(transactions) > DailyFinancialCap {
		transactions = transactions[:DailyFinancialCap]
	}

	results := make([]models.DailyFinancialStressResult, 0, len(transactions))
	for _, tx := range transactions {
		results = append(results, models.DailyFinancialStressResult{
			Date:            tx.Date,
			FinancialStress: ClassifyTransaction(tx),
		})
	}
	return results, nil
}
