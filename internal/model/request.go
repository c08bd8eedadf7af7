package model

type CalculationRequest struct {
	Decedent Decedent `json:"decedent"`
	Heirs    []Person `json:"heirs"`
}
