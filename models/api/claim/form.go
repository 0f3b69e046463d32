package claimapimodels

// RowData - значения полей строки заявки как введены пользователем,
// цена сырой строкой, разбор выполняется при отправке
type RowData struct {
	UseDate     string `json:"use_date"`
	Purpose     string `json:"purpose"`
	LineName    string `json:"line_name"`
	DepStation  string `json:"dep_station"`
	ArrStation  string `json:"arr_station"`
	UnitPrice   string `json:"unit_price"`
	IsRoundTrip bool   `json:"is_round_trip"`
}

type RowView struct {
	ID          string `json:"id"`
	UseDate     string `json:"use_date"`
	Purpose     string `json:"purpose"`
	LineName    string `json:"line_name"`
	DepStation  string `json:"dep_station"`
	ArrStation  string `json:"arr_station"`
	UnitPrice   string `json:"unit_price"`
	IsRoundTrip bool   `json:"is_round_trip"`
	// итог строки: цена x2 при поездке туда-обратно
	LineTotal          int    `json:"line_total"`
	LineTotalFormatted string `json:"line_total_formatted"`
}

type FieldRefView struct {
	RowID string `json:"row_id"`
	Field string `json:"field"`
}

type MessageView struct {
	Text    string `json:"text"`
	IsError bool   `json:"is_error"`
}

type FormView struct {
	Rows       []RowView      `json:"rows"`
	Message    *MessageView   `json:"message,omitempty"`
	Highlights []FieldRefView `json:"highlights,omitempty"`
	// первое невалидное поле, фокус ввода
	FocusField *FieldRefView `json:"focus_field,omitempty"`
}

type SubmitResponse struct {
	ApplID string `json:"appl_id"`
}
