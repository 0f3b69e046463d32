package pdfexport

import (
	"bytes"
	"fmt"

	claimview "expense-claims-front/lib/claim-view"
	"expense-claims-front/models"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// GenerateDetails формирует печатную форму заявки:
// шапка с данными сотрудника и таблица строк с итогом
func GenerateDetails(details models.ApplicationDetails) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateDetails panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("L", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Заявка на возмещение расходов", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	statusLabel := details.StatusLabel
	if statusLabel == "" {
		statusLabel = details.StatusID.GetLabel()
	}
	pdf.SetFont("Arial", "", 11)
	writeHeaderField(pdf, "Номер заявки", details.ApplID)
	writeHeaderField(pdf, "Сотрудник", details.EmpName)
	writeHeaderField(pdf, "Подразделение", details.DeptName)
	writeHeaderField(pdf, "Дата подачи", details.ApplDate)
	writeHeaderField(pdf, "Статус", statusLabel)
	pdf.Ln(4)

	headers := []string{"Дата", "Цель", "Маршрут", "Отправление", "Прибытие", "Тариф", "Туда-обратно", "Итого"}
	widths := []float64{24, 60, 40, 32, 32, 24, 28, 28}
	pdf.SetFont("Arial", "B", 10)
	for idx, header := range headers {
		pdf.CellFormat(widths[idx], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, line := range details.Lines {
		roundTrip := ""
		if line.IsRoundTrip {
			roundTrip = "да"
		}
		cells := []string{
			line.UseDate,
			line.Purpose,
			line.LineName,
			line.DepStation,
			line.ArrStation,
			claimview.FormatAmount(line.UnitPrice),
			roundTrip,
			claimview.FormatAmount(line.LineTotal),
		}
		for idx, cell := range cells {
			align := "L"
			if idx >= 5 {
				align = "R"
			}
			pdf.CellFormat(widths[idx], 8, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.Ln(2)
	pdf.CellFormat(0, 8, fmt.Sprintf("Общая сумма: %s", claimview.FormatAmount(details.TotalAmount)), "", 1, "R", false, 0, "")

	return output(pdf)
}

func writeHeaderField(pdf *fpdf.Fpdf, name, value string) {
	pdf.CellFormat(40, 7, name+":", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования pdf")
	}
	return buf.Bytes(), nil
}
