package models

import (
	"sync"
	"time"
)

// User - данные сотрудника, живут только в сессии
type User struct {
	EmpCode  string `json:"emp_code"`
	EmpName  string `json:"emp_name"`
	DeptName string `json:"dept_name"`
}

// ScreenID - экран приложения, видим ровно один
type ScreenID string

const (
	ScreenLogin ScreenID = "login"
	ScreenMain  ScreenID = "main"
)

// поля строки заявки
type FieldID string

const (
	FieldUseDate    FieldID = "use_date"
	FieldPurpose    FieldID = "purpose"
	FieldLineName   FieldID = "line_name"
	FieldDepStation FieldID = "dep_station"
	FieldArrStation FieldID = "arr_station"
	FieldUnitPrice  FieldID = "unit_price"
)

// EntryRow - редактируемая строка формы заявки, хранит сырые значения полей.
// Цена хранится строкой как введена, разбор - на этапе валидации
type EntryRow struct {
	ID          string `json:"id"`
	UseDate     string `json:"use_date"`
	Purpose     string `json:"purpose"`
	LineName    string `json:"line_name"`
	DepStation  string `json:"dep_station"`
	ArrStation  string `json:"arr_station"`
	UnitPrice   string `json:"unit_price"`
	IsRoundTrip bool   `json:"is_round_trip"`
}

// FieldRef - указание на поле строки для подсветки ошибки
type FieldRef struct {
	RowID string  `json:"row_id"`
	Field FieldID `json:"field"`
}

// Message - сообщение формы, после ExpiresAt больше не отображается
type Message struct {
	Text      string
	IsError   bool
	ExpiresAt time.Time
}

// HistoryEntry - строка истории заявок, проекция ответа бекенда
type HistoryEntry struct {
	ID          string
	Date        string
	Total       int
	StatusID    ClaimStatusID
	StatusLabel string
}

// DetailLine - строка согласованной заявки, итог посчитан бекендом
type DetailLine struct {
	UseDate     string
	Purpose     string
	LineName    string
	DepStation  string
	ArrStation  string
	UnitPrice   int
	IsRoundTrip bool
	LineTotal   int
}

// ApplicationDetails - детали заявки из бекенда
type ApplicationDetails struct {
	ApplID      string
	EmpName     string
	DeptName    string
	ApplDate    string
	StatusID    ClaimStatusID
	StatusLabel string
	TotalAmount int
	Lines       []DetailLine
}

// Session - состояние одной пользовательской сессии.
// Мутации только через обработчики команд под mu
type Session struct {
	mu   sync.Mutex
	busy map[Command]bool

	ID   string
	User *User

	Screen     ScreenID
	ActivePage PageID

	Rows       []EntryRow
	Highlights []FieldRef
	FormMsg    *Message

	History      []HistoryEntry
	HistoryError string

	Modal *ApplicationDetails
}

func NewSession(id string) *Session {
	return &Session{
		ID:     id,
		busy:   map[Command]bool{},
		Screen: ScreenLogin,
	}
}

func (s *Session) Lock() {
	s.mu.Lock()
}

func (s *Session) Unlock() {
	s.mu.Unlock()
}

// TryAcquire выставляет флаг занятости действия.
// Повторный вызов до Release возвращает BusyError
func (s *Session) TryAcquire(cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[cmd] {
		return &BusyError{Action: string(cmd)}
	}
	s.busy[cmd] = true
	return nil
}

func (s *Session) Release(cmd Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.busy, cmd)
}
