package claimform

import (
	"fmt"
	"strconv"
	"strings"

	"expense-claims-front/models"
	backendapimodels "expense-claims-front/models/api/backend"
)

const (
	msgNoUseDate       string = "строка %d: укажите дату поездки"
	msgNoPurpose       string = "строка %d: укажите цель поездки"
	msgNoLineName      string = "строка %d: укажите маршрут"
	msgNoDepStation    string = "строка %d: укажите станцию отправления"
	msgNoArrStation    string = "строка %d: укажите станцию прибытия"
	msgBadUnitPrice    string = "строка %d: тариф должен быть целым числом больше 0"
	msgNothingToSubmit string = "нет данных для отправки заявки"
)

// Result - итог сбора и проверки строк формы
type Result struct {
	Lines      []backendapimodels.SubmitLine
	Messages   []string
	Highlights []models.FieldRef
}

// Validate возвращает итоговую ошибку проверки:
// накопленные сообщения одной ошибкой либо,
// при полностью пустой форме, отдельную ошибку "нет данных"
func (r Result) Validate() error {
	if len(r.Messages) > 0 {
		return models.NewValidationError(strings.Join(r.Messages, "\n"))
	}
	if len(r.Lines) == 0 {
		return models.NewValidationError(msgNothingToSubmit)
	}
	return nil
}

// CollectAndValidate обходит строки в порядке отображения.
// Полностью пустая строка молча пропускается, частично заполненная проверяется:
// все проверки строки выполняются независимо, ошибки накапливаются.
// Валидные строки нормализуются в строки запроса с сохранением порядка
func CollectAndValidate(rows []models.EntryRow) Result {
	res := Result{}
	for idx, row := range rows {
		values := normalizeRow(row)
		if isRowEmpty(values) {
			continue
		}

		rowNum := idx + 1
		rowMessages := []string{}
		checkRule := func(value string, field models.FieldID, msg string) {
			if value == "" {
				rowMessages = append(rowMessages, fmt.Sprintf(msg, rowNum))
				res.Highlights = append(res.Highlights, models.FieldRef{RowID: row.ID, Field: field})
			}
		}
		checkRule(values.UseDate, models.FieldUseDate, msgNoUseDate)
		checkRule(values.Purpose, models.FieldPurpose, msgNoPurpose)
		checkRule(values.LineName, models.FieldLineName, msgNoLineName)
		checkRule(values.DepStation, models.FieldDepStation, msgNoDepStation)
		checkRule(values.ArrStation, models.FieldArrStation, msgNoArrStation)

		if values.UnitPrice <= 0 {
			rowMessages = append(rowMessages, fmt.Sprintf(msgBadUnitPrice, rowNum))
			res.Highlights = append(res.Highlights, models.FieldRef{RowID: row.ID, Field: models.FieldUnitPrice})
		}

		if len(rowMessages) > 0 {
			res.Messages = append(res.Messages, rowMessages...)
			continue
		}
		res.Lines = append(res.Lines, backendapimodels.SubmitLine{
			UseDate:     values.UseDate,
			Purpose:     values.Purpose,
			LineName:    values.LineName,
			DepStation:  values.DepStation,
			ArrStation:  values.ArrStation,
			UnitPrice:   values.UnitPrice,
			IsRoundTrip: values.IsRoundTrip,
		})
	}
	return res
}

type rowValues struct {
	UseDate     string
	Purpose     string
	LineName    string
	DepStation  string
	ArrStation  string
	UnitPrice   int
	IsRoundTrip bool
}

func normalizeRow(row models.EntryRow) rowValues {
	return rowValues{
		UseDate:     strings.TrimSpace(row.UseDate),
		Purpose:     strings.TrimSpace(row.Purpose),
		LineName:    strings.TrimSpace(row.LineName),
		DepStation:  strings.TrimSpace(row.DepStation),
		ArrStation:  strings.TrimSpace(row.ArrStation),
		UnitPrice:   ParsePrice(row.UnitPrice),
		IsRoundTrip: row.IsRoundTrip,
	}
}

// пустая строка - все текстовые поля пустые и тариф равен 0
func isRowEmpty(values rowValues) bool {
	return values.UseDate == "" &&
		values.Purpose == "" &&
		values.LineName == "" &&
		values.DepStation == "" &&
		values.ArrStation == "" &&
		values.UnitPrice == 0
}

// ParsePrice разбирает тариф как введен, нечисловое значение дает 0
func ParsePrice(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return value
}

// LineTotal считает итог строки: тариф x2 при поездке туда-обратно
func LineTotal(row models.EntryRow) int {
	price := ParsePrice(row.UnitPrice)
	if row.IsRoundTrip {
		return price * 2
	}
	return price
}
