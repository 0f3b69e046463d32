package claimapimodels

import sessionapimodels "expense-claims-front/models/api/session"

type StatusView struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Badge string `json:"badge"`
}

type HistoryRowView struct {
	ID             string     `json:"id"`
	Date           string     `json:"date"`
	Total          int        `json:"total"`
	TotalFormatted string     `json:"total_formatted"`
	Status         StatusView `json:"status"`
}

type HistoryView struct {
	Items []HistoryRowView `json:"items"`
	// ошибка последней загрузки истории, показывается вместо списка
	Error string `json:"error,omitempty"`
}

type DetailLineView struct {
	UseDate            string `json:"use_date"`
	Purpose            string `json:"purpose"`
	LineName           string `json:"line_name"`
	DepStation         string `json:"dep_station"`
	ArrStation         string `json:"arr_station"`
	UnitPrice          int    `json:"unit_price"`
	IsRoundTrip        bool   `json:"is_round_trip"`
	LineTotal          int    `json:"line_total"`
	LineTotalFormatted string `json:"line_total_formatted"`
}

type DetailsView struct {
	ApplID               string           `json:"appl_id"`
	EmpName              string           `json:"emp_name"`
	DeptName             string           `json:"dept_name"`
	ApplDate             string           `json:"appl_date"`
	Status               StatusView       `json:"status"`
	TotalAmount          int              `json:"total_amount"`
	TotalAmountFormatted string           `json:"total_amount_formatted"`
	Lines                []DetailLineView `json:"lines"`
}

// ViewState - полное состояние интерфейса сессии
type ViewState struct {
	Screen     string                     `json:"screen"`
	ActivePage string                     `json:"active_page,omitempty"`
	User       *sessionapimodels.UserView `json:"user,omitempty"`
	Form       *FormView                  `json:"form,omitempty"`
	History    *HistoryView               `json:"history,omitempty"`
	Modal      *DetailsView               `json:"modal,omitempty"`
}
