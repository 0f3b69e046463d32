package claimview

import (
	"time"

	claimform "expense-claims-front/lib/claim-form"
	"expense-claims-front/models"
	claimapimodels "expense-claims-front/models/api/claim"
	sessionapimodels "expense-claims-front/models/api/session"
)

// Provider - проекция состояния сессии в модели отображения.
// Никаких решений не принимает и состояние не меняет
type Provider interface {
	ViewState(sess *models.Session) claimapimodels.ViewState
	HistoryView(sess *models.Session) claimapimodels.HistoryView
	DetailsView(details models.ApplicationDetails) claimapimodels.DetailsView
	RowView(row models.EntryRow) claimapimodels.RowView
	UserView(user models.User) sessionapimodels.UserView
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

func (i impl) ViewState(sess *models.Session) claimapimodels.ViewState {
	sess.Lock()
	defer sess.Unlock()

	state := claimapimodels.ViewState{
		Screen: string(sess.Screen),
	}
	if sess.Screen != models.ScreenMain {
		return state
	}
	state.ActivePage = string(sess.ActivePage)
	if sess.User != nil {
		user := i.UserView(*sess.User)
		state.User = &user
	}
	form := i.formView(sess)
	state.Form = &form
	history := i.historyView(sess)
	state.History = &history
	if sess.Modal != nil {
		modal := i.DetailsView(*sess.Modal)
		state.Modal = &modal
	}
	return state
}

func (i impl) HistoryView(sess *models.Session) claimapimodels.HistoryView {
	sess.Lock()
	defer sess.Unlock()
	return i.historyView(sess)
}

// historyView ожидает, что сессия уже заблокирована вызывающим
func (i impl) historyView(sess *models.Session) claimapimodels.HistoryView {
	view := claimapimodels.HistoryView{
		Items: make([]claimapimodels.HistoryRowView, 0, len(sess.History)),
		Error: sess.HistoryError,
	}
	for _, entry := range sess.History {
		view.Items = append(view.Items, claimapimodels.HistoryRowView{
			ID:             entry.ID,
			Date:           entry.Date,
			Total:          entry.Total,
			TotalFormatted: FormatAmount(entry.Total),
			Status:         statusView(entry.StatusID, entry.StatusLabel),
		})
	}
	return view
}

func (i impl) formView(sess *models.Session) claimapimodels.FormView {
	view := claimapimodels.FormView{
		Rows: make([]claimapimodels.RowView, 0, len(sess.Rows)),
	}
	for _, row := range sess.Rows {
		view.Rows = append(view.Rows, i.RowView(row))
	}
	for _, ref := range sess.Highlights {
		view.Highlights = append(view.Highlights, claimapimodels.FieldRefView{
			RowID: ref.RowID,
			Field: string(ref.Field),
		})
	}
	// фокус на первом невалидном поле
	if len(view.Highlights) > 0 {
		view.FocusField = &view.Highlights[0]
	}
	if msg := sess.FormMsg; msg != nil {
		// сообщение с истекшим сроком уже не отображается
		if msg.ExpiresAt.IsZero() || time.Now().Before(msg.ExpiresAt) {
			view.Message = &claimapimodels.MessageView{
				Text:    msg.Text,
				IsError: msg.IsError,
			}
		}
	}
	return view
}

func (i impl) RowView(row models.EntryRow) claimapimodels.RowView {
	total := claimform.LineTotal(row)
	return claimapimodels.RowView{
		ID:                 row.ID,
		UseDate:            row.UseDate,
		Purpose:            row.Purpose,
		LineName:           row.LineName,
		DepStation:         row.DepStation,
		ArrStation:         row.ArrStation,
		UnitPrice:          row.UnitPrice,
		IsRoundTrip:        row.IsRoundTrip,
		LineTotal:          total,
		LineTotalFormatted: FormatAmount(total),
	}
}

func (i impl) DetailsView(details models.ApplicationDetails) claimapimodels.DetailsView {
	view := claimapimodels.DetailsView{
		ApplID:               details.ApplID,
		EmpName:              details.EmpName,
		DeptName:             details.DeptName,
		ApplDate:             details.ApplDate,
		Status:               statusView(details.StatusID, details.StatusLabel),
		TotalAmount:          details.TotalAmount,
		TotalAmountFormatted: FormatAmount(details.TotalAmount),
		Lines:                make([]claimapimodels.DetailLineView, 0, len(details.Lines)),
	}
	for _, line := range details.Lines {
		view.Lines = append(view.Lines, claimapimodels.DetailLineView{
			UseDate:            line.UseDate,
			Purpose:            line.Purpose,
			LineName:           line.LineName,
			DepStation:         line.DepStation,
			ArrStation:         line.ArrStation,
			UnitPrice:          line.UnitPrice,
			IsRoundTrip:        line.IsRoundTrip,
			LineTotal:          line.LineTotal,
			LineTotalFormatted: FormatAmount(line.LineTotal),
		})
	}
	return view
}

func (i impl) UserView(user models.User) sessionapimodels.UserView {
	return sessionapimodels.UserView{
		EmpCode:  user.EmpCode,
		EmpName:  user.EmpName,
		DeptName: user.DeptName,
	}
}

// statusView отдает предпочтение названию статуса из бекенда,
// локальный справочник - запасной вариант
func statusView(id models.ClaimStatusID, serverLabel string) claimapimodels.StatusView {
	label := serverLabel
	if label == "" {
		label = id.GetLabel()
	}
	return claimapimodels.StatusView{
		ID:    int(id),
		Label: label,
		Badge: string(id.GetBadge()),
	}
}
