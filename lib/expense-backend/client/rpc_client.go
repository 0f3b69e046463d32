package expenseclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"expense-claims-front/models"
	backendapimodels "expense-claims-front/models/api/backend"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Provider - клиент четырех RPC функций бекенда.
// Повторов нет, каждая ошибка сразу возвращается вызывающему
type Provider interface {
	GetUserDetails(ctx context.Context, empCode string) (*models.User, error)
	GetExpenseHistory(ctx context.Context, empCode string) ([]models.HistoryEntry, error)
	GetExpenseDetails(ctx context.Context, applID string) (*models.ApplicationDetails, error)
	SubmitApplication(ctx context.Context, empCode string, lines []backendapimodels.SubmitLine) (applID string, err error)
}

var Instance Provider

type impl struct {
	host    string
	anonKey string
	client  *http.Client
}

func NewProvider(host, anonKey string, requestTimeoutInSec int) {
	Instance = &impl{
		host:    host,
		anonKey: anonKey,
		client: &http.Client{
			Timeout: time.Duration(requestTimeoutInSec) * time.Second,
		},
	}
}

const (
	rpcPath string = "%s/rest/v1/rpc/%s"

	fnGetUserDetails    string = "get_user_details"
	fnGetExpenseHistory string = "get_expense_history"
	fnGetExpenseDetails string = "get_expense_details"
	fnSubmitApplication string = "submit_expense_application"
)

func (i impl) GetUserDetails(ctx context.Context, empCode string) (*models.User, error) {
	payload := map[string]interface{}{"p_emp_code": empCode}
	body, err := i.call(ctx, fnGetUserDetails, payload)
	if err != nil {
		return nil, err
	}
	rec := backendapimodels.UserDetails{}
	found, err := decodeMaybeSingle(body, &rec)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NewNotFoundError(fmt.Sprintf("сотрудник не найден: %v", empCode))
	}
	user := rec.Convert()
	return &user, nil
}

func (i impl) GetExpenseHistory(ctx context.Context, empCode string) ([]models.HistoryEntry, error) {
	payload := map[string]interface{}{"p_emp_code": empCode}
	body, err := i.call(ctx, fnGetExpenseHistory, payload)
	if err != nil {
		return nil, err
	}
	items := []backendapimodels.HistoryItem{}
	if len(body) > 0 && !bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		if err = json.Unmarshal(body, &items); err != nil {
			return nil, models.NewRemoteError("не удалось разобрать ответ бекенда со списком заявок")
		}
	}
	// пустая история - нормальный результат
	list := make([]models.HistoryEntry, 0, len(items))
	for _, item := range items {
		list = append(list, item.Convert())
	}
	return list, nil
}

func (i impl) GetExpenseDetails(ctx context.Context, applID string) (*models.ApplicationDetails, error) {
	payload := map[string]interface{}{"p_appl_id": applID}
	body, err := i.call(ctx, fnGetExpenseDetails, payload)
	if err != nil {
		return nil, err
	}
	rec := backendapimodels.ExpenseDetails{}
	found, err := decodeMaybeSingle(body, &rec)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NewNotFoundError(fmt.Sprintf("заявка не найдена: %v", applID))
	}
	details := rec.Convert()
	return &details, nil
}

func (i impl) SubmitApplication(ctx context.Context, empCode string, lines []backendapimodels.SubmitLine) (string, error) {
	payload := map[string]interface{}{
		"p_emp_code": empCode,
		"p_details":  lines,
	}
	body, err := i.call(ctx, fnSubmitApplication, payload)
	if err != nil {
		return "", err
	}
	var newID backendapimodels.ApplID
	if err = json.Unmarshal(bytes.TrimSpace(body), &newID); err != nil {
		return "", models.NewRemoteError("не удалось разобрать идентификатор новой заявки")
	}
	return string(newID), nil
}

// call выполняет POST на RPC функцию и возвращает тело ответа.
// Не-2xx ответ превращается в RemoteError с сообщением бекенда как есть
func (i impl) call(ctx context.Context, fn string, payload interface{}) ([]byte, error) {
	uri := fmt.Sprintf(rpcPath, i.host, fn)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка сериализации запроса")
	}

	logger := log.
		WithField("external_request", uri).
		WithField("request_body", string(body))

	r, err := http.NewRequestWithContext(ctx, "POST", uri, bytes.NewBuffer(body))
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования запроса")
	}
	r.Header.Add("Content-Type", "application/json")
	r.Header.Add("apikey", i.anonKey)
	r.Header.Add("Authorization", fmt.Sprintf("Bearer %v", i.anonKey))

	response, err := i.client.Do(r)
	responseBody, logger := getResponseBody(logger, response)
	logger = addStatusCode(logger, response)
	if err != nil {
		logger.WithError(err).Error("ошибка отправки запроса в бекенд")
		return nil, models.NewRemoteError(fmt.Sprintf("бекенд недоступен: %v", err))
	}
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	logger.Error("некорректный запрос в бекенд")
	errData := backendapimodels.ErrorData{}
	if len(responseBody) > 0 {
		if err = json.Unmarshal(responseBody, &errData); err != nil {
			logger.WithError(err).Error("ошибка разбора ответа с ошибкой")
		}
	}
	return nil, models.NewRemoteError(errData.GetMessage())
}

// decodeMaybeSingle разбирает ответ, который может быть объектом,
// массивом из 0/1 элементов или null (поведение maybeSingle)
func decodeMaybeSingle(body []byte, out interface{}) (found bool, err error) {
	data := bytes.TrimSpace(body)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return false, nil
	}
	if data[0] == '[' {
		items := []json.RawMessage{}
		if err = json.Unmarshal(data, &items); err != nil {
			return false, models.NewRemoteError("не удалось разобрать ответ бекенда")
		}
		if len(items) == 0 {
			return false, nil
		}
		data = items[0]
	}
	if err = json.Unmarshal(data, out); err != nil {
		return false, models.NewRemoteError("не удалось разобрать ответ бекенда")
	}
	return true, nil
}

func getResponseBody(logger *log.Entry, response *http.Response) ([]byte, *log.Entry) {
	if response != nil {
		responseBody, _ := io.ReadAll(response.Body)
		return responseBody, logger.WithField("response_body", string(responseBody))
	}
	return nil, logger
}

func addStatusCode(logger *log.Entry, response *http.Response) *log.Entry {
	if response != nil {
		return logger.WithField("response_status_code", response.StatusCode)
	}
	return logger
}
