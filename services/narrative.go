package services

import (
	"fmt"
	"strings"

	"github.com/LovationAdmin/stress-api/models"
	"github.com/LovationAdmin/stress-api/utils"

	"github.com/kr/text"
)

// NarrativeClassifier turns free text into a stress label.
type NarrativeClassifier interface {
	Classify(narrative string) models.StressLabel
}

type keywordRule struct {
	keyword string
	label   models.StressLabel
}

// narrativeKeywords are checked in order; the first match wins.
var narrativeKeywords = []keywordRule{
	{"stress", models.StressHigh},
	{"anxiety", models.StressMedium},
	{"calm", models.StressLow},
}

// KeywordClassifier matches a fixed keyword list, case-insensitively.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

func (KeywordClassifier) Classify(narrative string) models.StressLabel {
	utils.SafeDebug("[Narrative] raw response for stress level analysis: %s", narrative)

	lower := strings.ToLower(narrative)
	for _, rule := range narrativeKeywords {
		if strings.Contains(lower, rule.keyword) {
			return rule.label
		}
	}

	utils.Log().Debug().Msg("[Narrative] stress level not identified in response")
	return models.StressUnknown
}

const financialPromptIntro = "Analyze the financial stress based on these transactions:"

// BuildFinancialPrompt embeds the transaction list into the narrative prompt,
// one indented line per transaction.
func BuildFinancialPrompt(transactions []models.Transaction) string {
	var b strings.Builder
	for _, tx := range transactions {
		fmt.Fprintf(&b, "%s | %s | %s | in %s | out %s | balance %s\n",
			tx.Date, tx.Description, tx.Type,
			tx.MoneyIn.StringFixed(2), tx.MoneyOut.StringFixed(2), tx.Balance.StringFixed(2))
	}
	if b.Len() == 0 {
		return financialPromptIntro + " (none)"
	}
	return financialPromptIntro + "\n" + text.Indent(b.String(), "  ")
}
