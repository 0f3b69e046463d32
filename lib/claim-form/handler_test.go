package claimform

import (
	"context"
	"testing"
	"time"

	"expense-claims-front/config"
	sessionstore "expense-claims-front/lib/session/store"
	"expense-claims-front/models"
	backendapimodels "expense-claims-front/models/api/backend"
	claimapimodels "expense-claims-front/models/api/claim"

	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	user       *models.User
	userErr    error
	history    []models.HistoryEntry
	historyErr error
	details    *models.ApplicationDetails
	detailsErr error
	submitID   string
	submitErr  error

	submitCalls int
	lastLines   []backendapimodels.SubmitLine
}

func (f *fakeBackend) GetUserDetails(ctx context.Context, empCode string) (*models.User, error) {
	return f.user, f.userErr
}

func (f *fakeBackend) GetExpenseHistory(ctx context.Context, empCode string) ([]models.HistoryEntry, error) {
	return f.history, f.historyErr
}

func (f *fakeBackend) GetExpenseDetails(ctx context.Context, applID string) (*models.ApplicationDetails, error) {
	return f.details, f.detailsErr
}

func (f *fakeBackend) SubmitApplication(ctx context.Context, empCode string, lines []backendapimodels.SubmitLine) (string, error) {
	f.submitCalls++
	f.lastLines = lines
	return f.submitID, f.submitErr
}

func getFormInstance(backend *fakeBackend) impl {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 60
	return impl{
		sessions:     sessionstore.NewInstance(),
		backend:      backend,
		submitMsgTTL: 3 * time.Second,
	}
}

func mainSession(i impl) *models.Session {
	sess := i.sessions.Create()
	sess.User = &models.User{EmpCode: "10001", EmpName: "Иванов И.И.", DeptName: "Отдел эксплуатации"}
	sess.Screen = models.ScreenMain
	sess.ActivePage = models.PageNewClaim
	return sess
}

func TestLogin(t *testing.T) {
	t.Run(`success check`, func(t *testing.T) {
		backend := &fakeBackend{
			user:    &models.User{EmpCode: "10001", EmpName: "Иванов И.И.", DeptName: "Отдел эксплуатации"},
			history: []models.HistoryEntry{{ID: "77", Total: 420, StatusID: models.ClaimStatusPending}},
		}
		i := getFormInstance(backend)
		sess, token, err := i.Login(context.TODO(), "10001")
		require.Nil(t, err)
		require.NotEmpty(t, token)
		require.Equal(t, models.ScreenMain, sess.Screen)
		require.Equal(t, models.PageHistory, sess.ActivePage)
		require.Equal(t, "Иванов И.И.", sess.User.EmpName)
		require.Len(t, sess.Rows, 1)
		require.Len(t, sess.History, 1)
		require.Empty(t, sess.HistoryError)
		require.Equal(t, sess, i.GetSession(sess.ID))
	})

	t.Run(`unknown code check`, func(t *testing.T) {
		backend := &fakeBackend{userErr: models.NewNotFoundError("сотрудник не найден: 99999")}
		i := getFormInstance(backend)
		sess, token, err := i.Login(context.TODO(), "99999")
		require.Nil(t, sess)
		require.Empty(t, token)
		require.True(t, models.IsNotFoundError(err))
		require.Equal(t, "сотрудник не найден: 99999", err.Error())
	})

	t.Run(`history failure tolerated check`, func(t *testing.T) {
		backend := &fakeBackend{
			user:       &models.User{EmpCode: "10001"},
			historyErr: models.NewRemoteError("бекенд недоступен"),
		}
		i := getFormInstance(backend)
		sess, _, err := i.Login(context.TODO(), "10001")
		require.Nil(t, err)
		require.Empty(t, sess.History)
		require.Equal(t, "не удалось загрузить историю заявок: бекенд недоступен", sess.HistoryError)
	})
}

func TestLogout(t *testing.T) {
	t.Run(`session removed check`, func(t *testing.T) {
		i := getFormInstance(&fakeBackend{})
		sess := mainSession(i)
		i.Logout(sess.ID)
		require.Nil(t, i.GetSession(sess.ID))
	})
}

func TestRows(t *testing.T) {
	t.Run(`add row check`, func(t *testing.T) {
		i := getFormInstance(&fakeBackend{})
		sess := mainSession(i)
		row := i.AddRow(sess)
		require.NotEmpty(t, row.ID)
		require.Len(t, sess.Rows, 1)
		i.AddRow(sess)
		require.Len(t, sess.Rows, 2)
		require.NotEqual(t, sess.Rows[0].ID, sess.Rows[1].ID)
	})

	t.Run(`update row check`, func(t *testing.T) {
		i := getFormInstance(&fakeBackend{})
		sess := mainSession(i)
		row := i.AddRow(sess)
		other := i.AddRow(sess)
		err := i.UpdateRow(sess, row.ID, claimapimodels.RowData{
			UseDate:     "2025-04-01",
			Purpose:     "совещание",
			UnitPrice:   "120",
			IsRoundTrip: true,
		})
		require.Nil(t, err)
		require.Equal(t, "совещание", sess.Rows[0].Purpose)
		require.Equal(t, "120", sess.Rows[0].UnitPrice)
		require.True(t, sess.Rows[0].IsRoundTrip)
		// соседняя строка не затронута
		require.Equal(t, models.EntryRow{ID: other.ID}, sess.Rows[1])
	})

	t.Run(`unknown row check`, func(t *testing.T) {
		i := getFormInstance(&fakeBackend{})
		sess := mainSession(i)
		err := i.UpdateRow(sess, "нет такой", claimapimodels.RowData{})
		require.True(t, models.IsValidationError(err))
		err = i.DeleteRow(sess, "нет такой")
		require.True(t, models.IsValidationError(err))
	})

	t.Run(`delete row check`, func(t *testing.T) {
		i := getFormInstance(&fakeBackend{})
		sess := mainSession(i)
		first := i.AddRow(sess)
		second := i.AddRow(sess)
		require.Nil(t, i.DeleteRow(sess, first.ID))
		require.Len(t, sess.Rows, 1)
		require.Equal(t, second.ID, sess.Rows[0].ID)
		// последнюю строку тоже можно удалить, форма остается пустой
		require.Nil(t, i.DeleteRow(sess, second.ID))
		require.Empty(t, sess.Rows)
	})
}

func TestSwitchPage(t *testing.T) {
	t.Run(`history page check`, func(t *testing.T) {
		backend := &fakeBackend{history: []models.HistoryEntry{{ID: "77"}}}
		i := getFormInstance(backend)
		sess := mainSession(i)
		require.Nil(t, i.SwitchPage(context.TODO(), sess, models.PageHistory))
		require.Equal(t, models.PageHistory, sess.ActivePage)
		require.Len(t, sess.History, 1)
	})

	t.Run(`new claim page seeds row check`, func(t *testing.T) {
		i := getFormInstance(&fakeBackend{})
		sess := mainSession(i)
		sess.ActivePage = models.PageHistory
		require.Nil(t, i.SwitchPage(context.TODO(), sess, models.PageNewClaim))
		require.Equal(t, models.PageNewClaim, sess.ActivePage)
		require.Len(t, sess.Rows, 1)
	})

	t.Run(`unknown page check`, func(t *testing.T) {
		i := getFormInstance(&fakeBackend{})
		sess := mainSession(i)
		err := i.SwitchPage(context.TODO(), sess, models.PageID("settings"))
		require.True(t, models.IsValidationError(err))
		require.Equal(t, models.PageNewClaim, sess.ActivePage)
	})
}

func TestSubmit(t *testing.T) {
	t.Run(`validation failure check`, func(t *testing.T) {
		backend := &fakeBackend{}
		i := getFormInstance(backend)
		sess := mainSession(i)
		row := i.AddRow(sess)
		require.Nil(t, i.UpdateRow(sess, row.ID, claimapimodels.RowData{Purpose: "совещание"}))

		applID, err := i.Submit(context.TODO(), sess)
		require.Empty(t, applID)
		require.True(t, models.IsValidationError(err))
		// при локальной ошибке запрос на бекенд не уходит
		require.Equal(t, 0, backend.submitCalls)
		require.NotNil(t, sess.FormMsg)
		require.True(t, sess.FormMsg.IsError)
		require.NotEmpty(t, sess.Highlights)
		// введенные данные сохранены
		require.Equal(t, "совещание", sess.Rows[0].Purpose)
	})

	t.Run(`backend failure keeps rows check`, func(t *testing.T) {
		backend := &fakeBackend{submitErr: models.NewRemoteError("duplicate key value violates unique constraint")}
		i := getFormInstance(backend)
		sess := mainSession(i)
		row := i.AddRow(sess)
		require.Nil(t, i.UpdateRow(sess, row.ID, claimapimodels.RowData{
			UseDate:    "2025-04-01",
			Purpose:    "совещание",
			LineName:   "линия",
			DepStation: "А",
			ArrStation: "Б",
			UnitPrice:  "57",
		}))

		applID, err := i.Submit(context.TODO(), sess)
		require.Empty(t, applID)
		require.True(t, models.IsRemoteError(err))
		require.Equal(t, 1, backend.submitCalls)
		// сообщение бекенда показано как есть, строки остались для исправления
		require.Equal(t, "duplicate key value violates unique constraint", sess.FormMsg.Text)
		require.True(t, sess.FormMsg.IsError)
		require.Len(t, sess.Rows, 1)
		require.Equal(t, "совещание", sess.Rows[0].Purpose)
		require.Equal(t, models.PageNewClaim, sess.ActivePage)
	})

	t.Run(`success check`, func(t *testing.T) {
		backend := &fakeBackend{
			submitID: "123",
			history:  []models.HistoryEntry{{ID: "123", Total: 114}},
		}
		i := getFormInstance(backend)
		sess := mainSession(i)
		row := i.AddRow(sess)
		require.Nil(t, i.UpdateRow(sess, row.ID, claimapimodels.RowData{
			UseDate:     "2025-04-01",
			Purpose:     "совещание",
			LineName:    "линия",
			DepStation:  "А",
			ArrStation:  "Б",
			UnitPrice:   "57",
			IsRoundTrip: true,
		}))

		applID, err := i.Submit(context.TODO(), sess)
		require.Nil(t, err)
		require.Equal(t, "123", applID)
		require.Equal(t, 1, backend.submitCalls)
		require.Len(t, backend.lastLines, 1)
		require.Equal(t, 57, backend.lastLines[0].UnitPrice)
		require.True(t, backend.lastLines[0].IsRoundTrip)

		// форма сброшена до одной пустой строки, активна история
		require.Len(t, sess.Rows, 1)
		require.NotEqual(t, row.ID, sess.Rows[0].ID)
		require.Empty(t, sess.Highlights)
		require.Equal(t, models.PageHistory, sess.ActivePage)
		require.Len(t, sess.History, 1)

		require.NotNil(t, sess.FormMsg)
		require.False(t, sess.FormMsg.IsError)
		require.Equal(t, "заявка успешно отправлена", sess.FormMsg.Text)
		require.False(t, sess.FormMsg.ExpiresAt.IsZero())
	})

	t.Run(`busy check`, func(t *testing.T) {
		i := getFormInstance(&fakeBackend{})
		sess := mainSession(i)
		require.Nil(t, sess.TryAcquire(models.CmdSubmit))
		_, err := i.Submit(context.TODO(), sess)
		require.True(t, models.IsBusyError(err))
		sess.Release(models.CmdSubmit)
		// после освобождения флага действие снова доступно
		_, err = i.Submit(context.TODO(), sess)
		require.False(t, models.IsBusyError(err))
	})
}

func TestShowDetails(t *testing.T) {
	t.Run(`modal filled check`, func(t *testing.T) {
		backend := &fakeBackend{
			details: &models.ApplicationDetails{ApplID: "77", EmpName: "Иванов И.И.", TotalAmount: 420},
		}
		i := getFormInstance(backend)
		sess := mainSession(i)
		details, err := i.ShowDetails(context.TODO(), sess, "77")
		require.Nil(t, err)
		require.Equal(t, "77", details.ApplID)
		require.Equal(t, details, sess.Modal)

		i.CloseModal(sess)
		require.Nil(t, sess.Modal)
	})

	t.Run(`backend error check`, func(t *testing.T) {
		backend := &fakeBackend{detailsErr: models.NewNotFoundError("заявка не найдена: 0")}
		i := getFormInstance(backend)
		sess := mainSession(i)
		details, err := i.ShowDetails(context.TODO(), sess, "0")
		require.Nil(t, details)
		require.True(t, models.IsNotFoundError(err))
		require.Nil(t, sess.Modal)
		// инлайн-сообщение формы не затронуто
		require.Nil(t, sess.FormMsg)
	})
}

func TestLoadHistory(t *testing.T) {
	t.Run(`error replaces list check`, func(t *testing.T) {
		backend := &fakeBackend{history: []models.HistoryEntry{{ID: "77"}}}
		i := getFormInstance(backend)
		sess := mainSession(i)
		i.LoadHistory(context.TODO(), sess)
		require.Len(t, sess.History, 1)

		backend.history = nil
		backend.historyErr = models.NewRemoteError("timeout")
		i.LoadHistory(context.TODO(), sess)
		require.Empty(t, sess.History)
		require.Equal(t, "не удалось загрузить историю заявок: timeout", sess.HistoryError)

		// успешная загрузка снимает ошибку
		backend.historyErr = nil
		backend.history = []models.HistoryEntry{{ID: "78"}}
		i.LoadHistory(context.TODO(), sess)
		require.Empty(t, sess.HistoryError)
		require.Len(t, sess.History, 1)
	})

	t.Run(`busy skip check`, func(t *testing.T) {
		backend := &fakeBackend{history: []models.HistoryEntry{{ID: "77"}}}
		i := getFormInstance(backend)
		sess := mainSession(i)
		require.Nil(t, sess.TryAcquire(cmdLoadHistory))
		i.LoadHistory(context.TODO(), sess)
		// параллельная загрузка молча пропущена
		require.Empty(t, sess.History)
	})
}
