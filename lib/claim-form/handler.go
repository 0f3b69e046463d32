package claimform

import (
	"context"
	"fmt"
	"time"

	"expense-claims-front/config"
	expenseclient "expense-claims-front/lib/expense-backend/client"
	sessionstore "expense-claims-front/lib/session/store"
	authutils "expense-claims-front/lib/utils/auth-utils"
	initchecker "expense-claims-front/lib/utils/init-checker"
	"expense-claims-front/models"
	claimapimodels "expense-claims-front/models/api/claim"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Provider - обработчики команд интерфейса.
// Все изменения состояния сессии проходят только через них
type Provider interface {
	Login(ctx context.Context, empCode string) (sess *models.Session, token string, err error)
	Logout(sessionID string)
	GetSession(sessionID string) *models.Session
	SwitchPage(ctx context.Context, sess *models.Session, page models.PageID) error
	AddRow(sess *models.Session) models.EntryRow
	UpdateRow(sess *models.Session, rowID string, data claimapimodels.RowData) error
	DeleteRow(sess *models.Session, rowID string) error
	Submit(ctx context.Context, sess *models.Session) (applID string, err error)
	ShowDetails(ctx context.Context, sess *models.Session, applID string) (*models.ApplicationDetails, error)
	CloseModal(sess *models.Session)
	LoadHistory(ctx context.Context, sess *models.Session)
}

var Instance Provider

func NewHandler() {
	instance := &impl{
		sessions:     sessionstore.NewInstance(),
		backend:      expenseclient.Instance,
		submitMsgTTL: time.Duration(config.Conf.Claim.SubmitMessageTTLInSec) * time.Second,
	}
	initchecker.CheckInit(
		"sessions", instance.sessions,
		"backend", instance.backend,
	)
	Instance = instance
}

type impl struct {
	sessions     sessionstore.Provider
	backend      expenseclient.Provider
	submitMsgTTL time.Duration
}

// загрузка истории - отдельное действие со своим флагом занятости
const cmdLoadHistory = models.Command("load_history")

const msgSubmitDone string = "заявка успешно отправлена"

func (i impl) Login(ctx context.Context, empCode string) (*models.Session, string, error) {
	logger := log.WithField("emp_code", empCode)
	user, err := i.backend.GetUserDetails(ctx, empCode)
	if err != nil {
		return nil, "", err
	}
	sess := i.sessions.Create()
	sess.Lock()
	sess.User = user
	sess.Screen = models.ScreenMain
	sess.ActivePage = models.PageHistory
	sess.Rows = []models.EntryRow{newBlankRow()}
	sess.Unlock()

	token, err := authutils.GetToken(sess.ID, user.EmpCode, user.EmpName)
	if err != nil {
		i.sessions.Delete(sess.ID)
		return nil, "", errors.Wrap(err, "ошибка выпуска токена сессии")
	}
	// ошибка загрузки истории остается в состоянии и вход не ломает
	i.LoadHistory(ctx, sess)
	logger.WithField("session_id", sess.ID).Info("вход выполнен")
	return sess, token, nil
}

func (i impl) Logout(sessionID string) {
	i.sessions.Delete(sessionID)
	log.WithField("session_id", sessionID).Info("выход выполнен")
}

func (i impl) GetSession(sessionID string) *models.Session {
	return i.sessions.Get(sessionID)
}

// SwitchPage идемпотентен: повторное переключение на активную страницу
// меняет только данные, которые страница перезагружает
func (i impl) SwitchPage(ctx context.Context, sess *models.Session, page models.PageID) error {
	if !page.IsValid() {
		return models.NewValidationError(fmt.Sprintf("неизвестная страница: %v", page))
	}
	sess.Lock()
	sess.ActivePage = page
	if page == models.PageNewClaim && len(sess.Rows) == 0 {
		sess.Rows = []models.EntryRow{newBlankRow()}
	}
	sess.Unlock()
	if page == models.PageHistory {
		i.LoadHistory(ctx, sess)
	}
	return nil
}

func (i impl) AddRow(sess *models.Session) models.EntryRow {
	row := newBlankRow()
	sess.Lock()
	defer sess.Unlock()
	sess.Rows = append(sess.Rows, row)
	return row
}

// UpdateRow обновляет поля одной строки, остальные строки не трогает
func (i impl) UpdateRow(sess *models.Session, rowID string, data claimapimodels.RowData) error {
	sess.Lock()
	defer sess.Unlock()
	for idx := range sess.Rows {
		if sess.Rows[idx].ID != rowID {
			continue
		}
		sess.Rows[idx].UseDate = data.UseDate
		sess.Rows[idx].Purpose = data.Purpose
		sess.Rows[idx].LineName = data.LineName
		sess.Rows[idx].DepStation = data.DepStation
		sess.Rows[idx].ArrStation = data.ArrStation
		sess.Rows[idx].UnitPrice = data.UnitPrice
		sess.Rows[idx].IsRoundTrip = data.IsRoundTrip
		return nil
	}
	return models.NewValidationError("строка формы не найдена")
}

func (i impl) DeleteRow(sess *models.Session, rowID string) error {
	sess.Lock()
	defer sess.Unlock()
	for idx := range sess.Rows {
		if sess.Rows[idx].ID != rowID {
			continue
		}
		sess.Rows = append(sess.Rows[:idx], sess.Rows[idx+1:]...)
		return nil
	}
	return models.NewValidationError("строка формы не найдена")
}

// Submit собирает и проверяет форму, при любой ошибке проверки
// запрос на бекенд не выполняется и заявка не уходит частично.
// При ошибке бекенда введенные данные сохраняются для исправления
func (i impl) Submit(ctx context.Context, sess *models.Session) (string, error) {
	if err := sess.TryAcquire(models.CmdSubmit); err != nil {
		return "", err
	}
	defer sess.Release(models.CmdSubmit)

	sess.Lock()
	// сброс подсветки - общий, перед каждой попыткой
	sess.Highlights = nil
	sess.FormMsg = nil
	empCode := sess.User.EmpCode
	rows := make([]models.EntryRow, len(sess.Rows))
	copy(rows, sess.Rows)
	sess.Unlock()

	res := CollectAndValidate(rows)
	if err := res.Validate(); err != nil {
		sess.Lock()
		sess.Highlights = res.Highlights
		sess.FormMsg = &models.Message{Text: err.Error(), IsError: true}
		sess.Unlock()
		return "", err
	}

	applID, err := i.backend.SubmitApplication(ctx, empCode, res.Lines)
	if err != nil {
		sess.Lock()
		sess.FormMsg = &models.Message{Text: err.Error(), IsError: true}
		sess.Unlock()
		return "", err
	}

	sess.Lock()
	sess.Rows = []models.EntryRow{newBlankRow()}
	sess.Highlights = nil
	sess.FormMsg = &models.Message{
		Text:      msgSubmitDone,
		ExpiresAt: time.Now().Add(i.submitMsgTTL),
	}
	sess.ActivePage = models.PageHistory
	sess.Unlock()
	i.LoadHistory(ctx, sess)

	log.
		WithField("emp_code", empCode).
		WithField("appl_id", applID).
		Info("заявка отправлена")
	return applID, nil
}

// ShowDetails не меняет инлайн-сообщения формы,
// ошибка уходит вызывающему как блокирующая
func (i impl) ShowDetails(ctx context.Context, sess *models.Session, applID string) (*models.ApplicationDetails, error) {
	if err := sess.TryAcquire(models.CmdShowDetails); err != nil {
		return nil, err
	}
	defer sess.Release(models.CmdShowDetails)

	details, err := i.backend.GetExpenseDetails(ctx, applID)
	if err != nil {
		return nil, err
	}
	sess.Lock()
	sess.Modal = details
	sess.Unlock()
	return details, nil
}

func (i impl) CloseModal(sess *models.Session) {
	sess.Lock()
	defer sess.Unlock()
	sess.Modal = nil
}

// LoadHistory кладет результат либо текст ошибки в состояние сессии,
// параллельная загрузка в той же сессии молча пропускается
func (i impl) LoadHistory(ctx context.Context, sess *models.Session) {
	if err := sess.TryAcquire(cmdLoadHistory); err != nil {
		return
	}
	defer sess.Release(cmdLoadHistory)

	sess.Lock()
	empCode := sess.User.EmpCode
	sess.Unlock()

	list, err := i.backend.GetExpenseHistory(ctx, empCode)
	sess.Lock()
	defer sess.Unlock()
	if err != nil {
		log.
			WithField("emp_code", empCode).
			WithError(err).
			Error("ошибка загрузки истории заявок")
		sess.History = nil
		sess.HistoryError = fmt.Sprintf("не удалось загрузить историю заявок: %v", err)
		return
	}
	sess.History = list
	sess.HistoryError = ""
}

func newBlankRow() models.EntryRow {
	return models.EntryRow{ID: uuid.NewString()}
}
