package expenseclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"expense-claims-front/models"
	backendapimodels "expense-claims-front/models/api/backend"

	"github.com/stretchr/testify/require"
)

type rpcCall struct {
	path string
	body string
	head http.Header
}

func newBackendStub(t *testing.T, status int, response string) (*httptest.Server, *rpcCall) {
	t.Helper()
	call := &rpcCall{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.Nil(t, err)
		call.path = r.URL.Path
		call.body = string(body)
		call.head = r.Header.Clone()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, call
}

func getClientInstance(srv *httptest.Server) impl {
	return impl{
		host:    srv.URL,
		anonKey: "anon-key",
		client:  srv.Client(),
	}
}

func TestGetUserDetails(t *testing.T) {
	t.Run(`success check`, func(t *testing.T) {
		srv, call := newBackendStub(t, http.StatusOK,
			`{"emp_code":"10001","emp_name":"Иванов И.И.","dept_name":"Отдел эксплуатации"}`)
		i := getClientInstance(srv)
		user, err := i.GetUserDetails(context.TODO(), "10001")
		require.Nil(t, err)
		require.Equal(t, "10001", user.EmpCode)
		require.Equal(t, "Иванов И.И.", user.EmpName)
		require.Equal(t, "Отдел эксплуатации", user.DeptName)

		require.Equal(t, "/rest/v1/rpc/get_user_details", call.path)
		require.JSONEq(t, `{"p_emp_code":"10001"}`, call.body)
		require.Equal(t, "application/json", call.head.Get("Content-Type"))
		require.Equal(t, "anon-key", call.head.Get("apikey"))
		require.Equal(t, "Bearer anon-key", call.head.Get("Authorization"))
	})

	t.Run(`single element array check`, func(t *testing.T) {
		srv, _ := newBackendStub(t, http.StatusOK,
			`[{"emp_code":"10001","emp_name":"Иванов И.И."}]`)
		i := getClientInstance(srv)
		user, err := i.GetUserDetails(context.TODO(), "10001")
		require.Nil(t, err)
		require.Equal(t, "10001", user.EmpCode)
	})

	t.Run(`not found check`, func(t *testing.T) {
		// maybeSingle: пустой массив и null означают отсутствие записи
		for _, response := range []string{`[]`, `null`, ``} {
			srv, _ := newBackendStub(t, http.StatusOK, response)
			i := getClientInstance(srv)
			user, err := i.GetUserDetails(context.TODO(), "99999")
			require.Nil(t, user)
			require.True(t, models.IsNotFoundError(err), response)
			require.Equal(t, "сотрудник не найден: 99999", err.Error())
		}
	})

	t.Run(`backend error payload check`, func(t *testing.T) {
		srv, _ := newBackendStub(t, http.StatusBadRequest,
			`{"message":"invalid input syntax for type integer","code":"22P02"}`)
		i := getClientInstance(srv)
		_, err := i.GetUserDetails(context.TODO(), "abc")
		require.True(t, models.IsRemoteError(err))
		require.Equal(t, "invalid input syntax for type integer", err.Error())
	})

	t.Run(`error without message check`, func(t *testing.T) {
		srv, _ := newBackendStub(t, http.StatusInternalServerError, ``)
		i := getClientInstance(srv)
		_, err := i.GetUserDetails(context.TODO(), "10001")
		require.True(t, models.IsRemoteError(err))
		require.Equal(t, "бекенд вернул ошибку без описания", err.Error())
	})

	t.Run(`backend unreachable check`, func(t *testing.T) {
		srv, _ := newBackendStub(t, http.StatusOK, `{}`)
		i := getClientInstance(srv)
		srv.Close()
		_, err := i.GetUserDetails(context.TODO(), "10001")
		require.True(t, models.IsRemoteError(err))
		require.Contains(t, err.Error(), "бекенд недоступен")
	})
}

func TestGetExpenseHistory(t *testing.T) {
	t.Run(`success check`, func(t *testing.T) {
		srv, call := newBackendStub(t, http.StatusOK,
			`[{"id":77,"date":"2025-04-01","total":420,"status_id":1,"status":"на рассмотрении"},
			  {"id":"78","date":"2025-04-02","total":114,"status_id":3,"status":"согласована"}]`)
		i := getClientInstance(srv)
		list, err := i.GetExpenseHistory(context.TODO(), "10001")
		require.Nil(t, err)
		require.Equal(t, "/rest/v1/rpc/get_expense_history", call.path)
		require.Len(t, list, 2)
		// идентификатор приходит и числом, и строкой
		require.Equal(t, "77", list[0].ID)
		require.Equal(t, "78", list[1].ID)
		require.Equal(t, 420, list[0].Total)
		require.Equal(t, models.ClaimStatusPending, list[0].StatusID)
		require.Equal(t, "согласована", list[1].StatusLabel)
	})

	t.Run(`empty history check`, func(t *testing.T) {
		for _, response := range []string{`[]`, `null`, ``} {
			srv, _ := newBackendStub(t, http.StatusOK, response)
			i := getClientInstance(srv)
			list, err := i.GetExpenseHistory(context.TODO(), "10001")
			require.Nil(t, err, response)
			require.NotNil(t, list)
			require.Empty(t, list)
		}
	})
}

func TestGetExpenseDetails(t *testing.T) {
	t.Run(`success check`, func(t *testing.T) {
		srv, call := newBackendStub(t, http.StatusOK,
			`{"appl_id":77,"emp_name":"Иванов И.И.","dept_name":"Отдел эксплуатации",
			  "appl_date":"2025-04-01","status_id":3,"status_name":"согласована","total_amount":534,
			  "details":[
				{"use_date":"2025-04-01","purpose":"совещание","line_name":"линия",
				 "dep_station":"А","arr_station":"Б","unit_price":210,"is_round_trip":true,"line_total":420},
				{"use_date":"2025-04-02","purpose":"семинар","line_name":"линия",
				 "dep_station":"Б","arr_station":"В","unit_price":114,"is_round_trip":false,"line_total":114}
			  ]}`)
		i := getClientInstance(srv)
		details, err := i.GetExpenseDetails(context.TODO(), "77")
		require.Nil(t, err)
		require.Equal(t, "/rest/v1/rpc/get_expense_details", call.path)
		require.JSONEq(t, `{"p_appl_id":"77"}`, call.body)
		require.Equal(t, "77", details.ApplID)
		require.Equal(t, models.ClaimStatusApproved, details.StatusID)
		require.Equal(t, 534, details.TotalAmount)
		require.Len(t, details.Lines, 2)
		require.Equal(t, 420, details.Lines[0].LineTotal)
		require.False(t, details.Lines[1].IsRoundTrip)
	})

	t.Run(`not found check`, func(t *testing.T) {
		srv, _ := newBackendStub(t, http.StatusOK, `null`)
		i := getClientInstance(srv)
		details, err := i.GetExpenseDetails(context.TODO(), "0")
		require.Nil(t, details)
		require.True(t, models.IsNotFoundError(err))
		require.Equal(t, "заявка не найдена: 0", err.Error())
	})
}

func TestSubmitApplication(t *testing.T) {
	lines := []backendapimodels.SubmitLine{{
		UseDate:     "2025-04-01",
		Purpose:     "совещание",
		LineName:    "линия",
		DepStation:  "А",
		ArrStation:  "Б",
		UnitPrice:   210,
		IsRoundTrip: true,
	}}

	t.Run(`numeric id check`, func(t *testing.T) {
		srv, call := newBackendStub(t, http.StatusOK, `123`)
		i := getClientInstance(srv)
		applID, err := i.SubmitApplication(context.TODO(), "10001", lines)
		require.Nil(t, err)
		require.Equal(t, "123", applID)
		require.Equal(t, "/rest/v1/rpc/submit_expense_application", call.path)
		require.JSONEq(t, `{
			"p_emp_code": "10001",
			"p_details": [{
				"use_date": "2025-04-01",
				"purpose": "совещание",
				"line_name": "линия",
				"dep_station": "А",
				"arr_station": "Б",
				"unit_price": 210,
				"is_round_trip": true
			}]
		}`, call.body)
	})

	t.Run(`string id check`, func(t *testing.T) {
		srv, _ := newBackendStub(t, http.StatusOK, `"appl-123"`)
		i := getClientInstance(srv)
		applID, err := i.SubmitApplication(context.TODO(), "10001", lines)
		require.Nil(t, err)
		require.Equal(t, "appl-123", applID)
	})

	t.Run(`backend error check`, func(t *testing.T) {
		srv, _ := newBackendStub(t, http.StatusConflict,
			`{"message":"сотрудник заблокирован","code":"P0001"}`)
		i := getClientInstance(srv)
		applID, err := i.SubmitApplication(context.TODO(), "10001", lines)
		require.Empty(t, applID)
		require.True(t, models.IsRemoteError(err))
		require.Equal(t, "сотрудник заблокирован", err.Error())
	})
}
