package models

type PassiveIncomeRequest struct {
	Ticker              string  `json:"ticker"`
	MonthlyContribution float64 `json:"aporteMensal"`
	Years               int     `json:"anos"`
}

type PassiveIncomeResponse struct {
	Ticker              string  `json:"ticker"`
	MonthlyContribution float64 `json:"aporteMensal"`
	Years               int     `json:"anos"`
	CurrentPrice        float64 `json:"precoAtual"`
	AnnualYield         float64 `json:"dividendYieldAnual"` // percent
	EstimatedShares     float64 `json:"cotasEstimadas"`
	FinalValue          float64 `json:"patrimonioFinalEstimado"`
	MonthlyIncome       float64 `json:"rendaPassivaMensalEstimativa"`
	MagicNumber         float64 `json:"magicNumberCotas"`
}

type PortfolioItem struct {
	Ticker string  `json:"ticker"`
	Weight float64 `json:"peso"` // percent, 0-100
}

type PortfolioRequest struct {
	Assets            []PortfolioItem `json:"ativos"`
	TotalContribution float64         `json:"aporteMensalTotal"`
	Years             int             `json:"anos"`
}

type PortfolioResponse struct {
	TotalContribution  float64                 `json:"aporteMensalTotal"`
	Years              int                     `json:"anos"`
	WeightedYield      float64                 `json:"dividendYieldMedioPonderado"` // percent
	TotalMonthlyIncome float64                 `json:"rendaPassivaMensalTotalEstimativa"`
	TotalFinalValue    float64                 `json:"patrimonioTotalEstimado"`
	Assets             []PassiveIncomeResponse `json:"ativos"`
}
