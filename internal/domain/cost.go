package domain

import "time"

// CostCategory buckets operational costs for the cost centre view
type CostCategory string

const (
	CostShipping    CostCategory = "shipping"
	CostPackaging   CostCategory = "packaging"
	CostCommissions CostCategory = "commissions"
	CostSalaries    CostCategory = "salaries"
	CostAdSpend     CostCategory = "ad-spend"
	CostTools       CostCategory = "tools"
	CostOther       CostCategory = "other"
)

// CostFrequency is how often a cost recurs
type CostFrequency string

const (
	FrequencyOneTime CostFrequency = "one-time"
	FrequencyMonthly CostFrequency = "monthly"
	FrequencyYearly  CostFrequency = "yearly"
)

// Cost is a single workspace-scoped cost entry
type Cost struct {
	ID          string        `json:"id" bson:"_id"`
	WorkspaceID string        `json:"workspace_id" bson:"workspace"`
	Category    CostCategory  `json:"category" bson:"category"`
	Name        string        `json:"name" bson:"name"`
	Amount      float64       `json:"amount" bson:"amount"`
	Frequency   CostFrequency `json:"frequency" bson:"frequency"`
	Date        time.Time     `json:"date" bson:"date"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}
