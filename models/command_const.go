package models

// команды пользовательских действий,
// привязка HTTP маршрута к команде - задача контроллеров
type Command string

const (
	CmdLogin           Command = "login"
	CmdLogout          Command = "logout"
	CmdSwitchPage      Command = "switch_page"
	CmdAddRow          Command = "add_row"
	CmdDeleteRow       Command = "delete_row"
	CmdUpdateLineTotal Command = "update_line_total"
	CmdSubmit          Command = "submit"
	CmdShowDetails     Command = "show_details"
	CmdCloseModal      Command = "close_modal"
)

// страницы основного экрана
type PageID string

const (
	PageHistory  PageID = "history"
	PageNewClaim PageID = "new-claim"
)

func (p PageID) IsValid() bool {
	return p == PageHistory || p == PageNewClaim
}
