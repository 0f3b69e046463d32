package backendapimodels

import (
	"encoding/json"

	"expense-claims-front/models"

	"github.com/pkg/errors"
)

// форматы ответов RPC функций бекенда (PostgREST), поля в snake_case

type UserDetails struct {
	EmpCode  string `json:"emp_code"`
	EmpName  string `json:"emp_name"`
	DeptName string `json:"dept_name"`
}

type HistoryItem struct {
	ID     ApplID `json:"id"`
	Date   string `json:"date"`
	Total  int    `json:"total"`
	Status int    `json:"status_id"`
	Label  string `json:"status"`
}

type DetailItem struct {
	UseDate     string `json:"use_date"`
	Purpose     string `json:"purpose"`
	LineName    string `json:"line_name"`
	DepStation  string `json:"dep_station"`
	ArrStation  string `json:"arr_station"`
	UnitPrice   int    `json:"unit_price"`
	IsRoundTrip bool   `json:"is_round_trip"`
	LineTotal   int    `json:"line_total"`
}

type ExpenseDetails struct {
	ApplID      ApplID       `json:"appl_id"`
	EmpName     string       `json:"emp_name"`
	DeptName    string       `json:"dept_name"`
	ApplDate    string       `json:"appl_date"`
	StatusID    int          `json:"status_id"`
	StatusName  string       `json:"status_name"`
	TotalAmount int          `json:"total_amount"`
	Details     []DetailItem `json:"details"`
}

// SubmitLine - строка заявки в запросе submit_expense_application
type SubmitLine struct {
	UseDate     string `json:"use_date"`
	Purpose     string `json:"purpose"`
	LineName    string `json:"line_name"`
	DepStation  string `json:"dep_station"`
	ArrStation  string `json:"arr_station"`
	UnitPrice   int    `json:"unit_price"`
	IsRoundTrip bool   `json:"is_round_trip"`
}

// ErrorData - тело ошибки PostgREST
type ErrorData struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e ErrorData) GetMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return "бекенд вернул ошибку без описания"
}

// ApplID - идентификатор заявки, бекенд может вернуть строку или число
type ApplID string

func (a *ApplID) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*a = ApplID(asString)
		return nil
	}
	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err == nil {
		*a = ApplID(asNumber.String())
		return nil
	}
	return errors.Errorf("неожиданный формат идентификатора заявки: %s", string(data))
}

func (u UserDetails) Convert() models.User {
	return models.User{
		EmpCode:  u.EmpCode,
		EmpName:  u.EmpName,
		DeptName: u.DeptName,
	}
}

func (h HistoryItem) Convert() models.HistoryEntry {
	return models.HistoryEntry{
		ID:          string(h.ID),
		Date:        h.Date,
		Total:       h.Total,
		StatusID:    models.ClaimStatusID(h.Status),
		StatusLabel: h.Label,
	}
}

func (d ExpenseDetails) Convert() models.ApplicationDetails {
	lines := make([]models.DetailLine, 0, len(d.Details))
	for _, item := range d.Details {
		lines = append(lines, models.DetailLine{
			UseDate:     item.UseDate,
			Purpose:     item.Purpose,
			LineName:    item.LineName,
			DepStation:  item.DepStation,
			ArrStation:  item.ArrStation,
			UnitPrice:   item.UnitPrice,
			IsRoundTrip: item.IsRoundTrip,
			LineTotal:   item.LineTotal,
		})
	}
	return models.ApplicationDetails{
		ApplID:      string(d.ApplID),
		EmpName:     d.EmpName,
		DeptName:    d.DeptName,
		ApplDate:    d.ApplDate,
		StatusID:    models.ClaimStatusID(d.StatusID),
		StatusLabel: d.StatusName,
		TotalAmount: d.TotalAmount,
		Lines:       lines,
	}
}
