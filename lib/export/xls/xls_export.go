package xlsexport

import (
	"bytes"

	claimview "expense-claims-front/lib/claim-view"
	"expense-claims-front/models"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportHistory(list []models.HistoryEntry) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var historyHeaders = []string{"Номер заявки", "Дата подачи", "Сумма", "Статус"}

// ExportHistory выгружает историю заявок одним листом,
// данные берутся из уже загруженного ответа бекенда
func (i impl) ExportHistory(list []models.HistoryEntry) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, historyHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeHistoryData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "История заявок")
	return f.WriteToBuffer()
}

func writeHistoryData(f *excelize.File, sheet string, list []models.HistoryEntry, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(historyHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Номер заявки"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.ID); err != nil {
			return row, err
		}

		// "Дата подачи"
		col++
		if err := writeColumn(f, sheet, col, row, item.Date); err != nil {
			return row, err
		}

		// "Сумма"
		col++
		if err := writeColumn(f, sheet, col, row, claimview.FormatAmount(item.Total)); err != nil {
			return row, err
		}

		// "Статус"
		col++
		label := item.StatusLabel
		if label == "" {
			label = item.StatusID.GetLabel()
		}
		if err := writeColumn(f, sheet, col, row, label); err != nil {
			return row, err
		}
	}
	return row, nil
}
