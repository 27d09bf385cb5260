package dto

// FundDoneCountRow reports how many fund draws a user has fully repaid.
type FundDoneCountRow struct {
	UserID    string `json:"userID"`
	DoneCount int    `json:"doneCount"`
}
